package config

import (
	"testing"
)

func validConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			URL:         "https://api.themoviedb.org/3",
			AccessToken: "valid-token",
			Language:    "en-US",
			TimeoutSecs: 30,
		},
		Browse: BrowseConfig{
			PrefetchDistance: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(cfg *Config) {},
			wantErr: false,
		},
		{
			name:    "missing URL",
			mutate:  func(cfg *Config) { cfg.TMDB.URL = "" },
			wantErr: true,
		},
		{
			name:    "missing access token",
			mutate:  func(cfg *Config) { cfg.TMDB.AccessToken = "" },
			wantErr: true,
		},
		{
			name:    "placeholder access token",
			mutate:  func(cfg *Config) { cfg.TMDB.AccessToken = "your-access-token-here" },
			wantErr: true,
		},
		{
			name:    "zero timeout",
			mutate:  func(cfg *Config) { cfg.TMDB.TimeoutSecs = 0 },
			wantErr: true,
		},
		{
			name:    "zero prefetch distance",
			mutate:  func(cfg *Config) { cfg.Browse.PrefetchDistance = 0 },
			wantErr: true,
		},
		{
			name:    "negative max pages",
			mutate:  func(cfg *Config) { cfg.Browse.MaxPages = -1 },
			wantErr: true,
		},
		{
			name:    "invalid logging level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid logging format",
			mutate:  func(cfg *Config) { cfg.Logging.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
