package config

import "errors"

var (
	// ErrEmptySiteURL is returned when no catalog site URL is configured
	ErrEmptySiteURL = errors.New("site_url cannot be empty")
	// ErrInvalidSiteURL is returned when the site URL is not an absolute http(s) URL
	ErrInvalidSiteURL = errors.New("site_url must be an absolute URL")
	// ErrInvalidTimeout is returned when request timeout is not greater than 0
	ErrInvalidTimeout = errors.New("request_timeout must be greater than 0")
	// ErrInvalidRootLimit is returned when the root category limit is negative
	ErrInvalidRootLimit = errors.New("root_limit cannot be negative")
	// ErrEmptyDatabasePath is returned when database path is empty
	ErrEmptyDatabasePath = errors.New("database_path cannot be empty")
)
