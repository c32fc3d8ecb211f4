package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/cartscan/cartscan/internal/model"
)

// TestSQLitePersister tests the SQLite snapshot round-trip.
func TestSQLitePersister(t *testing.T) {
	t.Parallel()

	t.Run("load on fresh database returns empty snapshot", func(t *testing.T) {
		t.Parallel()

		p, err := OpenSQLite(t.TempDir(), DefaultOptions())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer p.Close()

		snapshot, err := p.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(snapshot) != 0 {
			t.Errorf("expected empty snapshot, got %d entries", len(snapshot))
		}
	})

	t.Run("save then load round-trips the snapshot", func(t *testing.T) {
		t.Parallel()

		p, err := OpenSQLite(t.TempDir(), DefaultOptions())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer p.Close()

		want := model.Snapshot{
			{Text: "Milk"},
			{Text: "Eggs", Checked: true},
		}
		if err := p.Save(context.Background(), want); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := p.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %+v, expected %+v", got, want)
		}
	})

	t.Run("second save replaces the first", func(t *testing.T) {
		t.Parallel()

		p, err := OpenSQLite(t.TempDir(), DefaultOptions())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer p.Close()

		if err := p.Save(context.Background(), model.Snapshot{{Text: "Milk"}}); err != nil {
			t.Fatal(err)
		}
		if err := p.Save(context.Background(), model.Snapshot{{Text: "Bread"}}); err != nil {
			t.Fatal(err)
		}

		got, err := p.Load(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Text != "Bread" {
			t.Errorf("expected single Bread entry, got %+v", got)
		}
	})

	t.Run("corrupt blob loads as empty snapshot", func(t *testing.T) {
		t.Parallel()

		p, err := OpenSQLite(t.TempDir(), DefaultOptions())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer p.Close()

		if _, err := p.db.ExecContext(context.Background(),
			"INSERT INTO snapshots (key, value) VALUES (?, ?)",
			snapshotKey, "{not json"); err != nil {
			t.Fatal(err)
		}

		got, err := p.Load(context.Background())
		if err != nil {
			t.Fatalf("corrupt state must not error, got %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected empty snapshot, got %+v", got)
		}
	})

	t.Run("persisted state survives reopen", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		p, err := OpenSQLite(dir, DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if err := p.Save(context.Background(), model.Snapshot{{Text: "Milk"}}); err != nil {
			t.Fatal(err)
		}
		if err := p.Close(); err != nil {
			t.Fatal(err)
		}

		reopened, err := OpenSQLite(dir, DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		defer reopened.Close()

		got, err := reopened.Load(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Text != "Milk" {
			t.Errorf("expected persisted Milk entry, got %+v", got)
		}
	})
}

// TestOpenSQLiteWithoutCreate tests the mode=rw open path.
func TestOpenSQLiteWithoutCreate(t *testing.T) {
	t.Parallel()

	opts := Options{CreateIfNotExists: false, EnableWAL: false}
	if _, err := OpenSQLite(t.TempDir(), opts); err == nil {
		t.Error("expected error opening missing database, got nil")
	}
}
