package result

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/signalnine/flexreport/internal/frame"
)

// Load reads a results table and checks that every required column is
// present.
func Load(path string) (*frame.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening results: %w", err)
	}
	defer file.Close()
	f, err := frame.ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("parsing results %s: %w", path, err)
	}
	if err := CheckColumns(f, Required...); err != nil {
		return nil, fmt.Errorf("invalid results %s: %w", path, err)
	}
	return f, nil
}

// CheckColumns reports the first missing column.
func CheckColumns(f *frame.Frame, names ...string) error {
	for _, n := range names {
		if !f.Has(n) {
			return fmt.Errorf("%w %q", frame.ErrUnknownColumn, n)
		}
	}
	return nil
}

// WriteCSV writes f to dir/name, creating dir if needed.
func WriteCSV(dir, name string, f *frame.Frame, floatDigits int) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if err := f.WriteCSV(file, floatDigits); err != nil {
		file.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}
