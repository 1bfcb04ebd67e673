package cmd

import (
	"strings"

	"github.com/signalnine/flexreport/internal/config"
	"github.com/signalnine/flexreport/internal/logger"
	"github.com/signalnine/flexreport/internal/report"
	"github.com/signalnine/flexreport/internal/result"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "FLEXREPORT"

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	v   *viper.Viper
	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:   "flexreport",
		Short: "LaTeX tables, charts and CSV summaries from scheduler simulation results",
		Long: "Reads the result.csv written by the multi-agent scheduling simulator and runs the\n" +
			"configured analyses. Without a subcommand it runs the analyses listed in the config.",
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.report(cmd, a.cfg.Analyses)
		},
	}
	flags := root.PersistentFlags()
	flags.String("config", "flexreport.yaml", "config file path")
	flags.String("input", "", "results CSV (overrides config)")
	flags.String("log-level", "", "log level (debug|info|warn|error) [default: info]")

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	for _, name := range []string{"input", "log-level"} {
		if err := a.v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(newReportCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newValidateCmd(a))
	return root
}

// load reads the config file and applies flag and environment
// overrides. An explicit --config must exist.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	var err error
	if cmd.Flags().Changed("config") {
		a.cfg, err = config.Load(path)
	} else {
		a.cfg, err = config.LoadOptional(path)
	}
	if err != nil {
		return err
	}
	if in := a.v.GetString("input"); in != "" {
		a.cfg.Input = in
	}
	if lvl := a.v.GetString("log-level"); lvl != "" {
		a.cfg.LogLevel = lvl
	}
	return logger.Configure(a.cfg.LogLevel, cmd.ErrOrStderr())
}

func (a *app) report(cmd *cobra.Command, analyses []string) error {
	f, err := result.Load(a.cfg.Input)
	if err != nil {
		return err
	}
	logger.Info("loaded results", "path", a.cfg.Input, "rows", f.Len())
	opts := a.cfg.Options()
	opts.Analyses = analyses
	return report.Generate(f, opts, cmd.OutOrStdout())
}
