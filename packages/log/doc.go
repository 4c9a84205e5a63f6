// Package log is wave's debug logging.
//
// Logging is off by default. With --debug (or WAVE_DEBUG) the CLI builds a
// zerolog-backed Logger that writes console-formatted events to stderr, each
// tagged with the id of the current invocation:
//
//	logger := log.New(os.Stderr, true)
//	logger.Debug("collection loaded", log.String("path", path))
//
// Library packages never log; only the CLI does.
package log
