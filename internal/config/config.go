// Package config provides configuration management for the catalog
// crawler. It defines the configuration structure, default values and
// validation rules.
package config

import (
	"net/url"
	"time"
)

// Config holds crawler and server configuration.
type Config struct {
	// Crawl target
	SiteURL   string `mapstructure:"site_url" yaml:"site_url"`     // Landing page of the catalog site
	RootLimit int    `mapstructure:"root_limit" yaml:"root_limit"` // Expand only the first N root categories (0=all)

	// Fetch behaviour
	RequestDelay   time.Duration `mapstructure:"request_delay" yaml:"request_delay"`     // Fixed delay between requests
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"` // HTTP request timeout
	UserAgent      string        `mapstructure:"user_agent" yaml:"user_agent"`           // HTTP User-Agent header

	// Persistence
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"` // Path to SQLite database file

	// HTTP trigger server
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"` // Bind address for the serve command

	// Logging
	LogLevel string `mapstructure:"log_level" yaml:"log_level"` // debug, info, warn, error
	LogFile  string `mapstructure:"log_file" yaml:"log_file"`   // Optional rotating log file path
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		SiteURL:        "https://tiki.vn",
		RootLimit:      0,
		RequestDelay:   1 * time.Second,
		RequestTimeout: 30 * time.Second,
		UserAgent:      "catacrawl/1.0",
		DatabasePath:   "./catalog.db",
		ListenAddr:     "127.0.0.1:8000",
		LogLevel:       "info",
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SiteURL == "" {
		return ErrEmptySiteURL
	}
	if u, err := url.Parse(c.SiteURL); err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidSiteURL
	}

	if c.RequestTimeout <= 0 {
		return ErrInvalidTimeout
	}

	// Keep a minimum politeness delay even when misconfigured.
	if c.RequestDelay < 100*time.Millisecond {
		c.RequestDelay = 100 * time.Millisecond
	}

	if c.RootLimit < 0 {
		return ErrInvalidRootLimit
	}

	if c.DatabasePath == "" {
		return ErrEmptyDatabasePath
	}

	return nil
}
