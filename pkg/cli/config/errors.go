package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound     = goerr.New("configuration file not found")
	ErrInvalidConfig      = goerr.New("invalid configuration")
	ErrDuplicateRegion    = goerr.New("duplicate region code")
	ErrInvalidRegion      = goerr.New("invalid region code")
	ErrInvalidCategory    = goerr.New("invalid factor category")
	ErrInvalidScore       = goerr.New("score must be between 0 and 100")
	ErrMissingKeywords    = goerr.New("keyword rule requires at least one keyword")
	ErrMissingName        = goerr.New("name is required")
	ErrMissingCredentials = goerr.New("required credential is not configured")
	ErrUnknownBackend     = goerr.New("unknown repository backend")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	RegionKey     = "region"
	KeywordKey    = "keyword"
	LabelKey      = "label"
	BackendKey    = "backend"
	FlagKey       = "flag"
)
