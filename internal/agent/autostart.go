package agent

import (
	"fmt"
	"path/filepath"

	"github.com/rostart/rostart/internal/catalog"
	"github.com/spf13/afero"
)

const autostartFile = "rostart.desktop"

func (a *Agent) autostartPath() string {
	return filepath.Join(a.opts.AutostartDir, autostartFile)
}

func (a *Agent) AutostartEnabled() (bool, error) {
	return afero.Exists(a.opts.Fs, a.autostartPath())
}

// SetAutostart writes or removes the XDG autostart entry.
func (a *Agent) SetAutostart(enabled bool) error {
	path := a.autostartPath()

	if !enabled {
		if err := a.opts.Fs.Remove(path); err != nil {
			if ok, _ := afero.Exists(a.opts.Fs, path); ok {
				return fmt.Errorf("remove autostart entry: %w", err)
			}
		}
		return nil
	}

	if err := a.opts.Fs.MkdirAll(a.opts.AutostartDir, 0o755); err != nil {
		return fmt.Errorf("create autostart dir: %w", err)
	}
	if err := afero.WriteFile(a.opts.Fs, path, []byte(desktopEntry(a.opts.Exec)), 0o644); err != nil {
		return fmt.Errorf("write autostart entry: %w", err)
	}
	return nil
}

func desktopEntry(execPath string) string {
	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Comment=Welcome Screen
Exec="%s"
Icon=utilities-terminal
Terminal=true
Categories=Utility;
X-GNOME-Autostart-enabled=true
`, catalog.Info.AppName, execPath)
}
