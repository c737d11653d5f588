// Package logger builds *slog.Logger values from functional options and
// decorates their handler with context extractors, so dialog-scoped values
// such as the dialog id land in every record logged with a context.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.AppEnv, "ivrkit"),
//	    logger.WithLevel(logger.MustParseLevel(cfg.LogLevel)),
//	    logger.WithContextExtractors(dialog.LoggerExtractor()),
//	)
//
//	log.DebugContext(ctx, "unit finished",
//	    logger.Unit("validation/credit-card"),
//	    logger.Kind("validator"),
//	    logger.Duration(time.Since(start)),
//	)
//
// Attribute helpers in attr.go keep key names consistent across packages.
// NewWriter adapts a logger to io.Writer, one record per written line, which
// the harness uses for interpreter stdout and stderr.
package logger
