// Package lookup resolves confirmed barcodes to human-readable product
// names via an ordered chain of external providers.
//
// The resolver never fails: providers are tried in configuration order,
// the first non-empty name wins, provider errors are absorbed and logged,
// and when nothing matches the caller gets a deterministic fallback label.
// The user always ends up with some list entry after a confirmed scan,
// never a bare error with no resulting action.
package lookup
