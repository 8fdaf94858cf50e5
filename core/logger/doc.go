// Package logger provides a structured logging facility based on Zap.
//
// The optimiser is a one-shot CLI whose primary output is the report table, so
// the logger is kept quiet by default (warn level, console encoding) and used
// for diagnostics: HTTP calls, batch counts and skipped manifests are traced at
// debug level.
//
// # Run IDs
//
// Every invocation gets a run id. WithRunID attaches it to the logger so that
// lines written by the different stages of one run can be correlated when the
// JSON encoder is enabled.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log = logger.WithRunID(log, logger.NewRunID())
//	log.Debug("crowd batch", zap.Int("size", 100))
package logger
