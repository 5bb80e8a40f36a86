package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// SeedWatchFile replaces the watched file with a single startup line.
func SeedWatchFile(fs afero.Fs, path string, now time.Time) error {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove watched file: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure watch dir: %w", err)
		}
	}
	line := fmt.Sprintf("[%s] Server started\n", now.Format("15:04:05"))
	if err := afero.WriteFile(fs, path, []byte(line), 0o644); err != nil {
		return fmt.Errorf("seed watched file: %w", err)
	}
	return nil
}
