package model

import "time"

// ScanCandidate is a single decode attempt from one sampled frame.
// Candidates are ephemeral: they are consumed entirely within one
// scanning session and never persisted.
type ScanCandidate struct {
	// Code is the decoded string value of the barcode.
	Code string `json:"code"`

	// Format is the symbology reported by the decoder (e.g. "ean13",
	// "upca"). Informational only; the confirmation engine keys on Code.
	Format string `json:"format,omitempty"`

	// Timestamp is the time the frame was sampled.
	Timestamp time.Time `json:"timestamp"`
}
