package scan

import "errors"

// Capture acquisition errors.
// These are the only scan errors surfaced to the user; everything after
// acquisition is either routine engine input (a decode miss) or treated
// as cancellation.
var (
	// ErrCaptureUnavailable is returned when no capture source exists,
	// e.g. the configured scanner device path does not exist.
	ErrCaptureUnavailable = errors.New("capture source unavailable: no scanner device found")

	// ErrPermissionDenied is returned when the capture source exists but
	// access to it is refused. On Linux this usually means the user is
	// not in the device's group (dialout/input).
	ErrPermissionDenied = errors.New("capture source access denied: check device permissions")

	// ErrSessionCancelled is returned when a session ends without a
	// confirmed code, whether by user cancellation, capture failure
	// mid-stream, or session timeout. All three are handled identically:
	// release the capture source, mutate nothing.
	ErrSessionCancelled = errors.New("scan session cancelled")
)
