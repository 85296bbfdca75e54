package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the top-level keypulse configuration.
type Config struct {
	General  GeneralConfig  `toml:"general"`
	API      APIConfig      `toml:"api"`
	Realtime RealtimeConfig `toml:"realtime"`
	Physics  PhysicsConfig  `toml:"physics"`
	Local    LocalConfig    `toml:"local"`
}

// GeneralConfig covers logging and caching shared by all commands.
type GeneralConfig struct {
	LogLevel    string   `toml:"log_level"`
	LogFile     string   `toml:"log_file"`
	CacheDir    string   `toml:"cache_dir"`
	RefreshRate Duration `toml:"refresh_rate"`
}

// APIConfig selects and configures the stats source. An empty Key means
// the hosted API is unavailable and the local client API is used instead.
type APIConfig struct {
	Key      string `toml:"key"`
	BaseURL  string `toml:"base_url"`
	LocalURL string `toml:"local_url"`
}

// RealtimeConfig configures the desktop client's WebSocket plugin feed.
type RealtimeConfig struct {
	Enabled   bool     `toml:"enabled"`
	URL       string   `toml:"url"`
	Reconnect Duration `toml:"reconnect"`
}

// PhysicsConfig seeds the kinetic model.
type PhysicsConfig struct {
	SwitchProfile string `toml:"switch_profile"`
	MetricUnits   bool   `toml:"metric_units"`
}

// LocalConfig points at the desktop client's on-disk databases.
type LocalConfig struct {
	InputDB        string `toml:"input_db"`
	KeyboardLayout string `toml:"keyboard_layout"`
}

// HasAPIKey reports whether the hosted API can be used.
func (c *Config) HasAPIKey() bool { return c.API.Key != "" }

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		General: GeneralConfig{
			LogLevel:    "info",
			LogFile:     filepath.Join(xdgCacheHome(home), "keypulse", "keypulse.log"),
			CacheDir:    filepath.Join(xdgCacheHome(home), "keypulse"),
			RefreshRate: Duration{30 * time.Second},
		},
		API: APIConfig{
			BaseURL:  "https://whatpulse.org/api/v1",
			LocalURL: "http://localhost:3490",
		},
		Realtime: RealtimeConfig{
			Enabled:   true,
			URL:       "ws://127.0.0.1:3489",
			Reconnect: Duration{5 * time.Second},
		},
		Physics: PhysicsConfig{
			SwitchProfile: "Cherry MX Red",
		},
		Local: LocalConfig{
			KeyboardLayout: "QWERTY (US)",
		},
	}
}
