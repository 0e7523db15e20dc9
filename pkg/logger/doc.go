// Package logger builds *slog.Logger values for vendkit binaries.
//
// New takes functional options that pick the output format, the minimum level,
// static attributes and ContextExtractor callbacks. The concrete handler is
// wrapped by ContextHandler, which runs the extractors on every record so
// request-scoped values such as the request id end up in the output without
// being passed explicitly. A key the caller already logged is not repeated.
//
// attr.go holds constructors for the attribute keys used across the module
// (session_id, product, phase, coins and so on), keeping key names in one place.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, cfg.Name),
//	    logger.WithLevelName(cfg.LogLevel),
//	    logger.WithContextValue("request_id", requestIDKey),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "product sold",
//	    logger.Product(p.Name().String()),
//	    logger.Coins(change.Values()),
//	)
//
// Error and Errors return an empty attribute for nil errors, so
//
//	log.Info("purchase finished", logger.Error(err))
//
// needs no nil check.
package logger
