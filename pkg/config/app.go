package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// App is the vendkit process configuration.
type App struct {
	Env       string `env:"APP_ENV" envDefault:"development"`
	Name      string `env:"APP_NAME" envDefault:"vendkit"`
	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`
	// StockFile is a YAML stock file. The built-in stock is used when empty.
	StockFile string `env:"VENDING_STOCK_FILE"`
	HTTP      HTTP   `envPrefix:"HTTP_"`
}

// HTTP configures the JSON API server.
type HTTP struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// LoadApp loads and validates the App configuration.
func LoadApp() (App, error) {
	var cfg App
	if err := Load(&cfg); err != nil {
		return App{}, err
	}
	if err := cfg.Validate(); err != nil {
		return App{}, err
	}
	return cfg, nil
}

// Validate checks values that env parsing alone cannot reject.
func (a App) Validate() error {
	var errs []error

	switch strings.ToLower(a.Env) {
	case "development", "dev", "staging", "stage", "production", "prod":
	default:
		errs = append(errs, fmt.Errorf("APP_ENV %q is not one of development, staging, production", a.Env))
	}

	switch strings.ToLower(a.LogFormat) {
	case "", "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q must be json or text", a.LogFormat))
	}

	switch strings.ToLower(a.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q must be debug, info, warn or error", a.LogLevel))
	}

	if strings.TrimSpace(a.HTTP.Addr) == "" {
		errs = append(errs, errors.New("HTTP_ADDR must not be empty"))
	}
	for name, d := range map[string]time.Duration{
		"HTTP_READ_TIMEOUT":     a.HTTP.ReadTimeout,
		"HTTP_WRITE_TIMEOUT":    a.HTTP.WriteTimeout,
		"HTTP_IDLE_TIMEOUT":     a.HTTP.IdleTimeout,
		"HTTP_SHUTDOWN_TIMEOUT": a.HTTP.ShutdownTimeout,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
}
