// Package log provides logging with automatic masking of lookup
// provider credentials, built on top of the standard slog package.
//
// Product lookup providers authenticate with API keys carried in HTTP
// headers. Those keys come from the user's environment and must never
// land in log output, even at debug level where request details are
// otherwise logged in full. The RedactHandler wraps any slog.Handler
// and masks attribute values whose key names or value shapes look like
// credentials before they reach the underlying handler.
//
// # Usage
//
//	logger := log.NewRedactedLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("provider request",
//	    "x-api-key", "sk_live_abc123",  // masked
//	    "endpoint", "https://api.upcitemdb.com/prod/trial/lookup",
//	)
//
//	slog.SetDefault(logger)
package log
