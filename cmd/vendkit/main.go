package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dmitrymomot/vendkit/pkg/catalog"
	"github.com/dmitrymomot/vendkit/pkg/config"
	"github.com/dmitrymomot/vendkit/pkg/httpapi"
	"github.com/dmitrymomot/vendkit/pkg/logger"
	"github.com/dmitrymomot/vendkit/pkg/repl"
	"github.com/dmitrymomot/vendkit/pkg/terminal"
)

const (
	modeREPL  = "repl"
	modeServe = "serve"
)

func main() {
	mode := flag.String("mode", modeREPL, "run mode: repl or serve")
	stockFile := flag.String("stock", "", "YAML stock file, overrides VENDING_STOCK_FILE")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *mode, *stockFile); err != nil {
		fmt.Fprintln(os.Stderr, "vendkit:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, mode, stockFile string) error {
	if mode != modeREPL && mode != modeServe {
		return fmt.Errorf("unknown mode %q, want %s or %s", mode, modeREPL, modeServe)
	}

	cfg, err := config.LoadApp()
	if err != nil {
		return err
	}
	if stockFile == "" {
		stockFile = cfg.StockFile
	}

	log := newLogger(cfg, mode)
	logger.SetAsDefault(log)

	stock := catalog.Default()
	if stockFile != "" {
		if stock, err = catalog.LoadFile(ctx, stockFile); err != nil {
			return err
		}
		log.InfoContext(ctx, "stock loaded", slog.String("file", stockFile), slog.Int("products", len(stock.Items)))
	}

	term := terminal.New(stock.Start(), terminal.WithLogger(log))

	if mode == modeServe {
		srv := httpapi.NewServer(
			httpapi.WithAddr(cfg.HTTP.Addr),
			httpapi.WithTimeouts(cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout, cfg.HTTP.IdleTimeout),
			httpapi.WithShutdownTimeout(cfg.HTTP.ShutdownTimeout),
			httpapi.WithServerLogger(log),
		)
		return srv.Run(ctx, httpapi.NewRouter(term, httpapi.WithRouterLogger(log)))
	}

	fmt.Fprintln(os.Stdout, "vending machine ready, type help for commands")
	if err := repl.New(term, repl.WithLogger(log)).Run(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// newLogger writes to stderr at warn level in repl mode unless LOG_LEVEL says otherwise.
func newLogger(cfg config.App, mode string) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(httpapi.RequestIDExtractor()),
	}
	if cfg.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(strings.ToLower(cfg.LogFormat))))
	}
	if mode == modeREPL {
		opts = append(opts, logger.WithOutput(os.Stderr))
		if cfg.LogLevel == "" {
			opts = append(opts, logger.WithLevel(slog.LevelWarn))
		}
	}
	return logger.New(opts...)
}
