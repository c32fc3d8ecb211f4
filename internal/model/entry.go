package model

import "strings"

// Glyphs used when rendering an entry as a line of text.
const (
	// CheckedGlyph marks an entry that has been ticked off.
	CheckedGlyph = "✓"

	// UncheckedGlyph marks an entry that is still open.
	UncheckedGlyph = "○"
)

// ListEntry represents a single item on the shopping list.
//
// Entries have no separate identifier: identity is the positional index
// within the list, and indices are only stable until the next removal.
// Consumers must re-render after any mutation rather than caching indices.
type ListEntry struct {
	// Text is the display string, either a user-entered item name,
	// a resolved product name, or the fallback label for an unresolved
	// barcode. Always non-empty after trimming.
	Text string `json:"text"`

	// Checked reports whether the item has been ticked off.
	Checked bool `json:"checked"`
}

// Line renders the entry as a single share-format line, e.g. "✓ Milk".
func (e ListEntry) Line() string {
	glyph := UncheckedGlyph
	if e.Checked {
		glyph = CheckedGlyph
	}
	return glyph + " " + e.Text
}

// Snapshot is the ordered shopping list exactly as persisted: insertion
// order equals display order. The store package is the only writer.
type Snapshot []ListEntry

// Clone returns a deep copy of the snapshot.
// The store hands clones to collaborators so that renderers and
// persisters can never mutate the owned list.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	copy(out, s)
	return out
}

// ShareText renders the whole list in the line-per-item share format.
// It is pure: no side effects, no trailing newline for an empty list.
func (s Snapshot) ShareText() string {
	lines := make([]string, 0, len(s))
	for _, e := range s {
		lines = append(lines, e.Line())
	}
	return strings.Join(lines, "\n")
}
