package config

// Config represents the complete configuration structure
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Browse  BrowseConfig  `mapstructure:"browse"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds the catalog service connection details
type TMDBConfig struct {
	URL         string `mapstructure:"url"`
	AccessToken string `mapstructure:"access_token"`
	Language    string `mapstructure:"language"`
	TimeoutSecs int    `mapstructure:"timeout_seconds"`
}

// BrowseConfig contains list browsing settings
type BrowseConfig struct {
	PrefetchDistance int `mapstructure:"prefetch_distance"`
	MaxPages         int `mapstructure:"max_pages"`
}

// FilterConfig contains client-side filter definitions
type FilterConfig struct {
	DefaultExpression string            `mapstructure:"default_expression"`
	Presets           map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
