// Package logger provides structured logging for the resolution engine.
//
// It wraps zerolog behind a small Logger interface with:
//   - Leveled logging (Debug, Info, Warn, Error, Fatal)
//   - Field attachment via WithField, WithFields and WithError
//   - Console output by default, optional file output
//   - A global instance for packages that are not handed a logger
//
// Basic usage:
//
//	logger.Initialize(&cfg.Logging)
//	log := logger.GetLogger()
//
//	log.WithField("username", "johndoe").Info("resolving profile")
//	log.InfoWithFields("media downloaded", map[string]interface{}{
//	    "file": "photo.jpg",
//	    "size": 1024000,
//	})
//
// Tests use TestLogger from this package to assert on emitted messages
// without touching real output streams.
package logger
