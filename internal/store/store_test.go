package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/cartscan/cartscan/internal/model"
)

// newTestStore creates a store backed by a MemoryPersister.
func newTestStore(t *testing.T) (*Store, *MemoryPersister) {
	t.Helper()

	p := &MemoryPersister{}
	s, err := Load(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s, p
}

// TestStoreLoad tests store initialization from persisted state.
func TestStoreLoad(t *testing.T) {
	t.Parallel()

	t.Run("loads persisted entries", func(t *testing.T) {
		t.Parallel()

		p := &MemoryPersister{Snapshot: model.Snapshot{{Text: "Milk", Checked: true}}}
		s, err := Load(context.Background(), p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if s.Len() != 1 {
			t.Fatalf("expected 1 entry, got %d", s.Len())
		}
		if got := s.Snapshot()[0]; got.Text != "Milk" || !got.Checked {
			t.Errorf("unexpected entry: %+v", got)
		}
	})

	t.Run("load failure yields empty list not error", func(t *testing.T) {
		t.Parallel()

		p := &MemoryPersister{LoadErr: errors.New("disk gone")}
		s, err := Load(context.Background(), p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Len() != 0 {
			t.Errorf("expected empty list, got %d entries", s.Len())
		}
	})
}

// TestStoreAdd tests appending entries.
func TestStoreAdd(t *testing.T) {
	t.Parallel()

	t.Run("appends unchecked entry and persists", func(t *testing.T) {
		t.Parallel()

		s, p := newTestStore(t)
		if err := s.Add(context.Background(), "Milk"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if s.Len() != 1 {
			t.Fatalf("expected 1 entry, got %d", s.Len())
		}
		if got := s.Snapshot()[0]; got.Text != "Milk" || got.Checked {
			t.Errorf("unexpected entry: %+v", got)
		}
		if p.SaveCalls != 1 {
			t.Errorf("expected 1 save, got %d", p.SaveCalls)
		}
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		s, _ := newTestStore(t)
		if err := s.Add(context.Background(), "  Oat Milk "); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := s.Snapshot()[0].Text; got != "Oat Milk" {
			t.Errorf("got %q, expected %q", got, "Oat Milk")
		}
	})

	t.Run("empty and blank text are silent no-ops", func(t *testing.T) {
		t.Parallel()

		s, p := newTestStore(t)
		for _, text := range []string{"", "   "} {
			if err := s.Add(context.Background(), text); err != nil {
				t.Fatalf("Add(%q) returned error: %v", text, err)
			}
		}
		if s.Len() != 0 {
			t.Errorf("expected empty list, got %d entries", s.Len())
		}
		if p.SaveCalls != 0 {
			t.Errorf("no-op adds must not persist, got %d saves", p.SaveCalls)
		}
	})

	t.Run("rolls back when persistence fails", func(t *testing.T) {
		t.Parallel()

		s, p := newTestStore(t)
		p.SaveErr = errors.New("disk full")

		if err := s.Add(context.Background(), "Milk"); err == nil {
			t.Fatal("expected error, got nil")
		}
		if s.Len() != 0 {
			t.Errorf("failed add must not change the list, got %d entries", s.Len())
		}
	})
}

// TestStoreToggle tests flipping checked state.
func TestStoreToggle(t *testing.T) {
	t.Parallel()

	t.Run("double toggle restores original state", func(t *testing.T) {
		t.Parallel()

		s, _ := newTestStore(t)
		if err := s.Add(context.Background(), "Milk"); err != nil {
			t.Fatal(err)
		}

		if err := s.Toggle(context.Background(), 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !s.Snapshot()[0].Checked {
			t.Error("expected entry checked after first toggle")
		}

		if err := s.Toggle(context.Background(), 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Snapshot()[0].Checked {
			t.Error("expected entry unchecked after second toggle")
		}
	})

	t.Run("invalid index returns ErrIndexOutOfRange", func(t *testing.T) {
		t.Parallel()

		s, _ := newTestStore(t)
		err := s.Toggle(context.Background(), 0)
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("expected ErrIndexOutOfRange, got %v", err)
		}
	})
}

// TestStoreEdit tests replacing entry text.
func TestStoreEdit(t *testing.T) {
	t.Parallel()

	t.Run("replaces text", func(t *testing.T) {
		t.Parallel()

		s, _ := newTestStore(t)
		if err := s.Add(context.Background(), "Milk"); err != nil {
			t.Fatal(err)
		}

		if err := s.Edit(context.Background(), 0, "Oat Milk"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := s.Snapshot()[0].Text; got != "Oat Milk" {
			t.Errorf("got %q, expected %q", got, "Oat Milk")
		}
	})

	t.Run("blank replacement is a no-op", func(t *testing.T) {
		t.Parallel()

		s, p := newTestStore(t)
		if err := s.Add(context.Background(), "Milk"); err != nil {
			t.Fatal(err)
		}
		saves := p.SaveCalls

		if err := s.Edit(context.Background(), 0, "   "); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := s.Snapshot()[0].Text; got != "Milk" {
			t.Errorf("got %q, expected unchanged %q", got, "Milk")
		}
		if p.SaveCalls != saves {
			t.Errorf("no-op edit must not persist, got %d extra saves", p.SaveCalls-saves)
		}
	})

	t.Run("invalid index returns ErrIndexOutOfRange", func(t *testing.T) {
		t.Parallel()

		s, _ := newTestStore(t)
		if err := s.Edit(context.Background(), 3, "Eggs"); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("expected ErrIndexOutOfRange, got %v", err)
		}
	})
}

// TestStoreRemove tests deleting entries.
func TestStoreRemove(t *testing.T) {
	t.Parallel()

	t.Run("removes entry and shifts the rest down", func(t *testing.T) {
		t.Parallel()

		s, _ := newTestStore(t)
		for _, text := range []string{"Milk", "Eggs", "Bread"} {
			if err := s.Add(context.Background(), text); err != nil {
				t.Fatal(err)
			}
		}

		if err := s.Remove(context.Background(), 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := s.Snapshot()
		expected := model.Snapshot{{Text: "Milk"}, {Text: "Bread"}}
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("got %+v, expected %+v", got, expected)
		}
	})

	t.Run("invalid index returns ErrIndexOutOfRange", func(t *testing.T) {
		t.Parallel()

		s, _ := newTestStore(t)
		if err := s.Remove(context.Background(), -1); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("expected ErrIndexOutOfRange, got %v", err)
		}
	})
}

// TestStoreClear tests emptying the list.
func TestStoreClear(t *testing.T) {
	t.Parallel()

	s, p := newTestStore(t)
	for _, text := range []string{"Milk", "Eggs"} {
		if err := s.Add(context.Background(), text); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.Clear(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty list, got %d entries", s.Len())
	}
	if len(p.Snapshot) != 0 {
		t.Errorf("expected empty persisted snapshot, got %d entries", len(p.Snapshot))
	}
}

// TestStoreWriteThrough tests that the persisted snapshot equals the
// in-memory list after every mutation.
func TestStoreWriteThrough(t *testing.T) {
	t.Parallel()

	s, p := newTestStore(t)
	ctx := context.Background()

	ops := []func() error{
		func() error { return s.Add(ctx, "Milk") },
		func() error { return s.Add(ctx, "Eggs") },
		func() error { return s.Toggle(ctx, 0) },
		func() error { return s.Edit(ctx, 1, "Free-range eggs") },
		func() error { return s.Add(ctx, "Bread") },
		func() error { return s.Remove(ctx, 0) },
		func() error { return s.Clear(ctx) },
	}

	for i, op := range ops {
		if err := op(); err != nil {
			t.Fatalf("operation %d failed: %v", i, err)
		}
		if !reflect.DeepEqual(p.Snapshot, s.Snapshot()) {
			t.Fatalf("after operation %d persisted state diverged:\n persisted: %+v\n memory:    %+v",
				i, p.Snapshot, s.Snapshot())
		}
	}
}

// TestStoreOnChange tests render collaborator notification.
func TestStoreOnChange(t *testing.T) {
	t.Parallel()

	t.Run("notified after every successful mutation", func(t *testing.T) {
		t.Parallel()

		var renders int
		p := &MemoryPersister{}
		s, err := Load(context.Background(), p, WithOnChange(func(model.Snapshot) { renders++ }))
		if err != nil {
			t.Fatal(err)
		}

		if err := s.Add(context.Background(), "Milk"); err != nil {
			t.Fatal(err)
		}
		if err := s.Toggle(context.Background(), 0); err != nil {
			t.Fatal(err)
		}

		if renders != 2 {
			t.Errorf("expected 2 render notifications, got %d", renders)
		}
	})

	t.Run("not notified when persistence fails", func(t *testing.T) {
		t.Parallel()

		var renders int
		p := &MemoryPersister{SaveErr: errors.New("disk full")}
		s, err := Load(context.Background(), p, WithOnChange(func(model.Snapshot) { renders++ }))
		if err != nil {
			t.Fatal(err)
		}

		_ = s.Add(context.Background(), "Milk")
		if renders != 0 {
			t.Errorf("expected no render notifications, got %d", renders)
		}
	})
}

// TestStoreExportText tests the share rendering.
func TestStoreExportText(t *testing.T) {
	t.Parallel()

	s, p := newTestStore(t)
	if err := s.Add(context.Background(), "Milk"); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(context.Background(), "Eggs"); err != nil {
		t.Fatal(err)
	}
	if err := s.Toggle(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	saves := p.SaveCalls

	if got := s.ExportText(); got != "○ Milk\n✓ Eggs" {
		t.Errorf("got %q", got)
	}
	if p.SaveCalls != saves {
		t.Error("ExportText must not persist")
	}
}
