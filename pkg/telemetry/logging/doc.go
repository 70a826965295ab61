// Package logging configures structured logging for the gateway.
//
// The gateway logs through the standard library's log/slog package. Setup
// installs a process-wide default handler from the telemetry configuration:
//
//	logger, err := logging.Setup(cfg.Telemetry.Logging)
//
// Two output formats are supported:
//
//   - json: machine-readable JSON, one object per line (default)
//   - text: key=value pairs for local development
//
// Log levels follow slog conventions: debug, info, warn, error. The
// configured level is a minimum; entries below it are discarded by the
// handler before formatting.
//
// Request-scoped fields such as the request ID are attached at the call
// site by the HTTP middleware and handlers, not by this package.
package logging
