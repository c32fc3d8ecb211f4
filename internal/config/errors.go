package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and Provider.Validate()
// and provide specific information about what is wrong.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidThreshold is returned when the confirmation threshold is
	// not positive. A threshold of zero would confirm a code without any
	// matching sample, defeating the point of the confirmation engine.
	ErrInvalidThreshold = errors.New("invalid confirmation threshold: must be positive")

	// ErrInvalidSampleInterval is returned when the sampling interval is
	// not positive. A zero interval would busy-loop against the capture
	// source.
	ErrInvalidSampleInterval = errors.New("invalid sample interval: must be positive")

	// ErrInvalidSessionTimeout is returned when the session timeout is
	// not positive. Sessions must be bounded so a stuck capture source
	// cannot hold the device handle forever.
	ErrInvalidSessionTimeout = errors.New("invalid session timeout: must be positive")

	// ErrInvalidLookupTimeout is returned when the per-provider HTTP
	// timeout is not positive.
	ErrInvalidLookupTimeout = errors.New("invalid lookup timeout: must be positive")

	// ErrProviderMissingName is returned when a provider entry in the
	// config file has no name. The name identifies the provider in logs.
	ErrProviderMissingName = errors.New("provider entry missing name")

	// ErrProviderMissingEndpoint is returned when a provider entry has no
	// endpoint template.
	ErrProviderMissingEndpoint = errors.New("provider entry missing endpoint")

	// ErrProviderMissingExtraction is returned when a JSON provider has no
	// field path to extract the product name from.
	ErrProviderMissingExtraction = errors.New("provider entry missing name_path extraction rule")

	// ErrProviderUnknownKind is returned when a provider declares a
	// response kind other than "json" or "html".
	ErrProviderUnknownKind = errors.New(`provider response kind must be "json" or "html"`)
)
