// Package logger provides a small factory over log/slog used across the SDK.
//
// Components accept a *slog.Logger through their options and default to a
// discard logger, so logging is opt-in:
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatJSON),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithAttr(slog.String("service", "basekit")),
//	)
package logger
