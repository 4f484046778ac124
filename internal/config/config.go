package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HostMode string

const (
	HostLocal  HostMode = "local"
	HostSocket HostMode = "socket"
	HostBoth   HostMode = "both"
)

// Config is read once at startup. The wizard never writes it back.
type Config struct {
	UI   UIConfig   `mapstructure:"ui"`
	Host HostConfig `mapstructure:"host"`
	Log  LogConfig  `mapstructure:"log"`
}

type UIConfig struct {
	Language  string `mapstructure:"language"`
	Dark      bool   `mapstructure:"dark"`
	Autostart bool   `mapstructure:"autostart"`
}

type HostConfig struct {
	Mode             HostMode      `mapstructure:"mode"`
	SocketPath       string        `mapstructure:"socket_path"`
	DriverManager    string        `mapstructure:"driver_manager"`
	DriverManagerURL string        `mapstructure:"driver_manager_url"`
	AutostartDir     string        `mapstructure:"autostart_dir"`
	UpdateStepDelay  time.Duration `mapstructure:"update_step_delay"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Local reports whether the built-in host should act on intents.
func (h HostConfig) Local() bool { return h.Mode == HostLocal || h.Mode == HostBoth }

// Socket reports whether the socket API should be served.
func (h HostConfig) Socket() bool { return h.Mode == HostSocket || h.Mode == HostBoth }

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.Getenv("HOME")
}

func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	return filepath.Join(append([]string{homeDir()}, fallback...)...)
}

// Dir is the directory searched for config.toml.
func Dir() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "rostart")
}

// Load reads configuration from file and env. path overrides ROSTART_CONFIG;
// env var overrides use prefix ROSTART_.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("ui.language", "en")
	v.SetDefault("ui.dark", false)
	v.SetDefault("ui.autostart", true)
	v.SetDefault("host.mode", string(HostBoth))
	v.SetDefault("host.socket_path", "")
	v.SetDefault("host.driver_manager", "ro-control")
	v.SetDefault("host.driver_manager_url", "")
	v.SetDefault("host.autostart_dir", filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "autostart"))
	v.SetDefault("host.update_step_delay", 300*time.Millisecond)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(xdgDir("XDG_STATE_HOME", ".local", "state"), "rostart", "rostart.log"))

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("ROSTART_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(Dir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ROSTART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.Host.Mode {
	case HostLocal, HostSocket, HostBoth:
	default:
		return fmt.Errorf("invalid host.mode %q: want local, socket or both", c.Host.Mode)
	}
	if c.Host.UpdateStepDelay < 0 {
		return fmt.Errorf("invalid host.update_step_delay %s", c.Host.UpdateStepDelay)
	}
	return nil
}
