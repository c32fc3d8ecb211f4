package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cartscan/cartscan/internal/model"
)

// Store owns the ordered shopping list and is its only writer.
//
// All mutating operations persist the full list synchronously before
// returning and then signal the render collaborator (push model, no
// dirty-flag scheme). The store itself is not safe for concurrent use;
// cartscan mutates the list from a single logical thread of control.
type Store struct {
	// entries is the owned list. Insertion order is display order.
	entries model.Snapshot

	// persister is the persistence collaborator.
	persister Persister

	// onChange is invoked with a snapshot clone after every successful
	// mutation. Nil means no render collaborator is attached.
	onChange func(model.Snapshot)

	// logger is used for structured logging.
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a custom logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithOnChange registers the render collaborator callback. It receives a
// clone of the list after every successful mutation.
func WithOnChange(fn func(model.Snapshot)) Option {
	return func(s *Store) {
		s.onChange = fn
	}
}

// Load creates a Store and reads the persisted list once.
//
// Missing or corrupt persisted state yields an empty list rather than an
// error: a shopping list tool that refuses to start over a damaged file
// would force the user to dig it out by hand anyway.
func Load(ctx context.Context, persister Persister, opts ...Option) (*Store, error) {
	s := &Store{persister: persister}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	snapshot, err := persister.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to load persisted list, starting empty", "error", err)
		snapshot = model.Snapshot{}
	}
	s.entries = snapshot

	return s, nil
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Snapshot returns a clone of the current list.
func (s *Store) Snapshot() model.Snapshot {
	return s.entries.Clone()
}

// Add appends a new unchecked entry with the given text.
// Empty or whitespace-only text is a silent no-op, matching the behavior
// of the input field it replaces.
func (s *Store) Add(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	s.entries = append(s.entries, model.ListEntry{Text: text})
	if err := s.commit(ctx); err != nil {
		// Roll back so memory and disk stay in agreement.
		s.entries = s.entries[:len(s.entries)-1]
		return err
	}

	s.logger.Debug("entry added", "text", text, "length", len(s.entries))
	return nil
}

// Toggle flips the checked state of the entry at index.
func (s *Store) Toggle(ctx context.Context, index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}

	s.entries[index].Checked = !s.entries[index].Checked
	if err := s.commit(ctx); err != nil {
		s.entries[index].Checked = !s.entries[index].Checked
		return err
	}

	s.logger.Debug("entry toggled", "index", index, "checked", s.entries[index].Checked)
	return nil
}

// Edit replaces the text of the entry at index.
// Empty or whitespace-only replacement text is a silent no-op.
func (s *Store) Edit(ctx context.Context, index int, newText string) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}

	newText = strings.TrimSpace(newText)
	if newText == "" {
		return nil
	}

	old := s.entries[index].Text
	s.entries[index].Text = newText
	if err := s.commit(ctx); err != nil {
		s.entries[index].Text = old
		return err
	}

	s.logger.Debug("entry edited", "index", index)
	return nil
}

// Remove deletes the entry at index, shifting subsequent entries down.
// Indices held by consumers are invalid after this call.
func (s *Store) Remove(ctx context.Context, index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}

	removed := s.entries[index]
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	if err := s.commit(ctx); err != nil {
		s.entries = append(s.entries[:index], append(model.Snapshot{removed}, s.entries[index:]...)...)
		return err
	}

	s.logger.Debug("entry removed", "index", index, "length", len(s.entries))
	return nil
}

// Clear empties the list. User confirmation is a UI concern and is not
// enforced here.
func (s *Store) Clear(ctx context.Context) error {
	old := s.entries
	s.entries = model.Snapshot{}
	if err := s.commit(ctx); err != nil {
		s.entries = old
		return err
	}

	s.logger.Debug("list cleared")
	return nil
}

// ExportText produces the line-per-item share rendering of the list.
// Pure: no side effects.
func (s *Store) ExportText() string {
	return s.entries.ShareText()
}

// checkIndex validates an index against the current list bounds.
func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.entries) {
		return fmt.Errorf("%w: index %d, list has %d entries", ErrIndexOutOfRange, index, len(s.entries))
	}
	return nil
}

// commit persists the full snapshot and notifies the render collaborator.
// Persistence happens first: a mutation only counts once it is on disk.
func (s *Store) commit(ctx context.Context) error {
	if err := s.persister.Save(ctx, s.entries); err != nil {
		return fmt.Errorf("failed to persist list: %w", err)
	}
	if s.onChange != nil {
		s.onChange(s.entries.Clone())
	}
	return nil
}

// IsIndexError reports whether err is the store's index-out-of-range error.
// The CLI uses this to print the valid range instead of a raw error.
func IsIndexError(err error) bool {
	return errors.Is(err, ErrIndexOutOfRange)
}
