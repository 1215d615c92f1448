// Package logger is the public API of sinklog. Most users only need to
// import this package.
//
// A Logger owns an ordered set of uniquely named handlers. Each call to
// Log (or one of the level helpers) reads the clock once, builds a single
// entry and passes it to every handler in registration order. Each handler
// applies its own threshold and template, so the same event may be written
// to the console, a rotating file and a syslog server, or only to some of
// them:
//
//	log, err := logger.NewBuilder().
//	    WithHandler(console).
//	    WithHandler(file).
//	    Build()
//
//	log.Error("link lost", logger.System(network), logger.Context("eth0"))
//
// Logging never fails. Handler problems are reported to the diagnostics
// logger set with WithDiagnostics. The one way logging affects control
// flow is Escalate, which logs the event and returns the supplied error
// wrapped with the message.
//
// The package initializes a default Logger with a console handler at
// WARNING bound to DefaultRegistry. The package-level functions delegate
// to it.
//
// NewSlogHandler adapts a Logger to log/slog.
package logger
