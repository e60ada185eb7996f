package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Database DatabaseConfig `toml:"database"`
	Playback PlaybackConfig `toml:"playback"`
	Render   RenderConfig   `toml:"render"`
}

// APIConfig contains TubeGrow backend connection settings.
type APIConfig struct {
	BaseURL   string  `toml:"base_url"`
	Token     string  `toml:"token"`
	RateLimit float64 `toml:"rate_limit"` // requests per second
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// PlaybackConfig contains settings for the local preview player.
type PlaybackConfig struct {
	MPVPath   string `toml:"mpv_path"`
	SocketDir string `toml:"socket_dir"`
}

// RenderConfig contains settings for local ffmpeg rendering.
type RenderConfig struct {
	FFmpegPath string `toml:"ffmpeg_path"`
	OutputDir  string `toml:"output_dir"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// The CLIPFORGE_TOKEN environment variable, when set, overrides the configured API token.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if token := os.Getenv("CLIPFORGE_TOKEN"); token != "" {
		config.API.Token = token
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	if token := os.Getenv("CLIPFORGE_TOKEN"); token != "" {
		config.API.Token = token
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
