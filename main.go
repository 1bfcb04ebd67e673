package main

import (
	"os"

	"github.com/signalnine/flexreport/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
