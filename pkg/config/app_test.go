package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vendkit/pkg/config"
)

func validApp() config.App {
	return config.App{
		Env:  "development",
		Name: "vendkit",
		HTTP: config.HTTP{
			Addr:            ":8080",
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			IdleTimeout:     time.Second,
			ShutdownTimeout: time.Second,
		},
	}
}

func TestLoadApp(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		unsetAfter(t, "APP_ENV", "APP_NAME", "LOG_LEVEL", "LOG_FORMAT", "VENDING_STOCK_FILE",
			"HTTP_ADDR", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT", "HTTP_SHUTDOWN_TIMEOUT")
		config.ResetCache()

		cfg, err := config.LoadApp()
		require.NoError(t, err)
		assert.Equal(t, "development", cfg.Env)
		assert.Equal(t, "vendkit", cfg.Name)
		assert.Empty(t, cfg.StockFile)
		assert.Equal(t, ":8080", cfg.HTTP.Addr)
		assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
		assert.Equal(t, 60*time.Second, cfg.HTTP.IdleTimeout)
		assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("LOG_FORMAT", "text")
		t.Setenv("VENDING_STOCK_FILE", "/etc/vendkit/stock.yaml")
		t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
		t.Setenv("HTTP_WRITE_TIMEOUT", "3s")
		config.ResetCache()

		cfg, err := config.LoadApp()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.Env)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "/etc/vendkit/stock.yaml", cfg.StockFile)
		assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
		assert.Equal(t, 3*time.Second, cfg.HTTP.WriteTimeout)
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Setenv("APP_ENV", "moon")
		config.ResetCache()

		_, err := config.LoadApp()
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("unparsable duration", func(t *testing.T) {
		t.Setenv("HTTP_READ_TIMEOUT", "soon")
		config.ResetCache()

		_, err := config.LoadApp()
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestAppValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.App)
		valid  bool
	}{
		{"valid", func(*config.App) {}, true},
		{"short env names", func(a *config.App) { a.Env = "prod" }, true},
		{"upper case format", func(a *config.App) { a.LogFormat = "JSON" }, true},
		{"unknown env", func(a *config.App) { a.Env = "qa" }, false},
		{"unknown format", func(a *config.App) { a.LogFormat = "xml" }, false},
		{"unknown level", func(a *config.App) { a.LogLevel = "verbose" }, false},
		{"empty addr", func(a *config.App) { a.HTTP.Addr = " " }, false},
		{"zero timeout", func(a *config.App) { a.HTTP.ShutdownTimeout = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			app := validApp()
			tt.mutate(&app)
			err := app.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}
