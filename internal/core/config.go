package core

import (
	"fmt"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfighcl"
)

// Config represents the main configuration for Globe News
type Config struct {
	Server  ServerConfig  `json:"server"`
	Backend BackendConfig `json:"backend"`
	News    NewsConfig    `json:"news"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `hcl:"host" env:"HOST" default:"0.0.0.0" json:"host"`
	Port int    `hcl:"port" env:"PORT" default:"5000" json:"port"`
}

// BackendConfig contains the backend API connection configuration
type BackendConfig struct {
	URL            string        `hcl:"url" env:"URL" default:"http://localhost:8000" json:"url"`
	APIVersion     string        `hcl:"api_version" env:"API_VERSION" default:"v1" json:"api_version"`
	ReadTimeout    time.Duration `hcl:"read_timeout" env:"READ_TIMEOUT" default:"10s" json:"read_timeout"`
	PreviewTimeout time.Duration `hcl:"preview_timeout" env:"PREVIEW_TIMEOUT" default:"15s" json:"preview_timeout"`
	HealthTimeout  time.Duration `hcl:"health_timeout" env:"HEALTH_TIMEOUT" default:"5s" json:"health_timeout"`
}

// NewsConfig contains news feature configuration
type NewsConfig struct {
	PageSize      int    `hcl:"page_size" env:"PAGE_SIZE" default:"20" json:"page_size"`
	HomePageSize  int    `hcl:"home_page_size" env:"HOME_PAGE_SIZE" default:"24" json:"home_page_size"`
	BreakingLimit int    `hcl:"breaking_limit" env:"BREAKING_LIMIT" default:"10" json:"breaking_limit"`
	CountWorkers  int    `hcl:"count_workers" env:"COUNT_WORKERS" default:"4" json:"count_workers"`
	SiteURL       string `hcl:"site_url" env:"SITE_URL" default:"http://localhost:5000" json:"site_url"`
}

// LoadConfig loads configuration from environment variables and optional HCL files
func LoadConfig() (*Config, error) {
	config := &Config{}

	loader := aconfig.LoaderFor(config, aconfig.Config{
		EnvPrefix: "GLOBE",
		SkipFlags: true,
		Files:     []string{"./config.hcl", "./config.local.hcl"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".hcl": aconfighcl.New(),
		},
	})

	if err := loader.Load(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Backend.URL == "" {
		return fmt.Errorf("backend URL is required")
	}

	if c.Backend.ReadTimeout <= 0 || c.Backend.PreviewTimeout <= 0 || c.Backend.HealthTimeout <= 0 {
		return fmt.Errorf("backend timeouts must be positive")
	}

	if c.News.PageSize <= 0 || c.News.HomePageSize <= 0 {
		return fmt.Errorf("page sizes must be positive")
	}

	if c.News.CountWorkers <= 0 {
		return fmt.Errorf("count workers must be positive")
	}

	return nil
}
