// Package model defines the core data structures used throughout cartscan.
//
// This package contains the following main types:
//   - ListEntry: A single shopping list item with text and checked state
//   - Snapshot: The ordered list of entries as persisted and rendered
//   - ScanCandidate: A single decode attempt produced during a scan session
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (store, scan, lookup, render) need to use
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for persistence and
// export output.
package model
