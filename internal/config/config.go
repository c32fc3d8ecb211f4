package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values are chosen to work with typical USB barcode scanners and
// public product-database rate limits.
const (
	// DefaultConfirmThreshold is the number of consecutive matching decode
	// attempts required before a code is accepted. A single successful
	// decode is unreliable at typical sampling rates; requiring repetition
	// filters transient misreads without error-correcting the decode itself.
	DefaultConfirmThreshold = 3

	// DefaultSampleInterval is the pause between decode attempts.
	// 250ms is comfortably slower than any scanner can supply frames,
	// so the sampling loop never busy-waits against the capture source.
	DefaultSampleInterval = 250 * time.Millisecond

	// DefaultSessionTimeout bounds one scanning session. A session that
	// has not confirmed a code within this window is abandoned exactly as
	// if the user had cancelled it, so the device handle cannot leak.
	DefaultSessionTimeout = 30 * time.Second

	// DefaultLookupTimeout is the per-provider HTTP timeout. Public
	// product databases occasionally stall; a stalled provider should not
	// block the fallback chain for long.
	DefaultLookupTimeout = 10 * time.Second

	// DefaultResolveConcurrency is the number of codes resolved in
	// parallel by the resolve command. Kept low to stay inside the trial
	// rate limits of the default providers.
	DefaultResolveConcurrency = 4

	// DefaultUserAgent identifies cartscan in provider HTTP requests.
	// Open Food Facts asks API consumers to send a descriptive User-Agent.
	DefaultUserAgent = "cartscan/1.0 (+https://github.com/cartscan/cartscan)"

	// DefaultMaxBodySize limits the provider response body size to read.
	// Product lookups return small JSON documents; 2MB is generous while
	// preventing memory exhaustion from a misbehaving endpoint.
	DefaultMaxBodySize = 2 * 1024 * 1024 // 2MB

	// AppName is the application name used for XDG directory paths.
	AppName = "cartscan"
)

// Config holds all configuration options for cartscan.
// It is populated from CLI flags and the .cartscan file and passed through
// the application via dependency injection rather than global state.
type Config struct {
	// DevicePath is the character device or file to read decode attempts
	// from. Empty means standard input (keyboard-wedge scanners type
	// their decodes wherever the cursor is).
	DevicePath string

	// ConfirmThreshold is the number of consecutive identical decode
	// attempts needed to confirm a code.
	ConfirmThreshold int

	// SampleInterval is the minimum pause between decode attempts.
	SampleInterval time.Duration

	// SessionTimeout bounds a single scanning session. Expiry is treated
	// identically to user cancellation.
	SessionTimeout time.Duration

	// LookupTimeout is the per-provider HTTP timeout.
	LookupTimeout time.Duration

	// ResolveConcurrency is the maximum number of codes resolved in
	// parallel by the resolve command.
	ResolveConcurrency int

	// UserAgent is sent with every provider HTTP request.
	UserAgent string

	// MaxBodySize is the maximum provider response body size in bytes.
	MaxBodySize int64

	// Providers is the ordered lookup provider chain. Order determines
	// precedence: the first enabled provider returning a non-empty name
	// wins. Static per session, never mutated at runtime.
	Providers []Provider

	// DataDir is the directory holding the SQLite list database.
	// Defaults to the XDG data directory.
	DataDir string

	// ConfigFilePath is the path to the configuration file. If empty, the
	// tool searches for .cartscan in the current directory and then in
	// the user's home directory.
	ConfigFilePath string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases; callers override specific values from flags and the config file.
func NewConfig() *Config {
	return &Config{
		ConfirmThreshold:   DefaultConfirmThreshold,
		SampleInterval:     DefaultSampleInterval,
		SessionTimeout:     DefaultSessionTimeout,
		LookupTimeout:      DefaultLookupTimeout,
		ResolveConcurrency: DefaultResolveConcurrency,
		UserAgent:          DefaultUserAgent,
		MaxBodySize:        DefaultMaxBodySize,
		Providers:          DefaultProviders(),
		DataDir:            XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for cartscan.
// On Linux: ~/.local/share/cartscan
// On macOS: ~/Library/Application Support/cartscan
// On Windows: %LOCALAPPDATA%\cartscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for cartscan.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first error found; fixing one error often makes
// others irrelevant.
func (c *Config) Validate() error {
	if c.ConfirmThreshold <= 0 {
		return ErrInvalidThreshold
	}
	if c.SampleInterval <= 0 {
		return ErrInvalidSampleInterval
	}
	if c.SessionTimeout <= 0 {
		return ErrInvalidSessionTimeout
	}
	if c.LookupTimeout <= 0 {
		return ErrInvalidLookupTimeout
	}
	for i := range c.Providers {
		if err := c.Providers[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
