package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TMDB      TMDBConfig      `mapstructure:"tmdb"`
	Radarr    RadarrConfig    `mapstructure:"radarr"`
	Overseerr OverseerrConfig `mapstructure:"overseerr"`
	Favorites FavoritesConfig `mapstructure:"favorites"`
	Filter    FilterConfig    `mapstructure:"filter"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// TMDBConfig holds the catalog API connection details
type TMDBConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Token    string        `mapstructure:"token"`
	Language string        `mapstructure:"language"`
	Timeout  time.Duration `mapstructure:"timeout"`
	// RateLimit is in requests per second; 0 disables throttling.
	RateLimit float64 `mapstructure:"rate_limit"`
	Burst     int     `mapstructure:"burst"`
}

// RadarrConfig holds Radarr API connection details
type RadarrConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	APIKey  string `mapstructure:"api_key"`
}

// OverseerrConfig holds Overseerr API connection details
type OverseerrConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	APIKey  string `mapstructure:"api_key"`
}

// FavoritesConfig locates the favorites file
type FavoritesConfig struct {
	Path string `mapstructure:"path"`
}

// FilterConfig contains named filter expressions
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
