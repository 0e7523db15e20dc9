// Package config loads process configuration from environment variables.
//
// Values come from the process environment and, optionally, from .env files
// read with github.com/joho/godotenv. Structs are populated by
// github.com/caarlos0/env/v11 using `env`, `envDefault` and `envPrefix` tags.
//
// Each configuration type is parsed once and cached by type name, so Load can
// be called from anywhere without re-reading the environment. Reload and
// ResetCache exist for tests and for processes that change their environment.
//
// App is the configuration of the vendkit binary:
//
//	APP_ENV               development | staging | production
//	APP_NAME              service name attached to log records
//	LOG_LEVEL, LOG_FORMAT logger overrides
//	VENDING_STOCK_FILE    YAML stock file, built-in stock when empty
//	HTTP_ADDR             listen address for serve mode
//	HTTP_*_TIMEOUT        read, write, idle and shutdown timeouts
//
// Errors can be matched with errors.Is against ErrParsingConfig, ErrNilPointer,
// ErrConfigNotLoaded, ErrLoadingEnvFile and ErrInvalidConfig.
package config
