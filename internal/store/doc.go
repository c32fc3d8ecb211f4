// Package store owns the shopping list: the ordered collection of entries,
// every mutation of it, and its persistence.
//
// The store is the sole writer of the list. It is loaded once at startup
// from the persistence collaborator (missing or corrupt state yields an
// empty list, never a fatal error) and thereafter the in-memory list is
// the single source of truth. Every mutation writes the full snapshot
// back out synchronously before the operation is considered complete,
// then notifies the render collaborator.
package store
