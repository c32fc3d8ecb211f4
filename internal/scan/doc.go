// Package scan implements the barcode acquisition pipeline: the capture
// source abstraction, the confirmation engine that turns a noisy stream of
// per-frame decode attempts into at most one trusted code, and the session
// controller that orchestrates one scan lifecycle.
//
// A session is a linear sequential chain with no shared-memory hazards:
// sample frames, maybe confirm, resolve, persist. Cancellation is
// cooperative and is checked at the top of each sampling iteration; the
// capture source is released exactly once on every exit path because the
// underlying device handle must not leak.
package scan
