package lookup

import (
	"context"
	"sync"
	"testing"
	"time"
)

// slowProvider resolves after a per-code delay so completion order
// differs from input order.
type slowProvider struct {
	mu    sync.Mutex
	delay map[string]time.Duration
}

// Name implements Provider.
func (s *slowProvider) Name() string {
	return "slow"
}

// Lookup implements Provider.
func (s *slowProvider) Lookup(_ context.Context, code string) (string, error) {
	s.mu.Lock()
	d := s.delay[code]
	s.mu.Unlock()
	time.Sleep(d)
	return "name-" + code, nil
}

// TestBatchResolveAll tests concurrent resolution.
func TestBatchResolveAll(t *testing.T) {
	t.Parallel()

	t.Run("results preserve input order regardless of completion order", func(t *testing.T) {
		t.Parallel()

		provider := &slowProvider{delay: map[string]time.Duration{
			"a": 40 * time.Millisecond,
			"b": 20 * time.Millisecond,
			"c": 0,
		}}
		b := NewBatchResolver(NewResolver([]Provider{provider}), WithConcurrency(3))

		results, err := b.ResolveAll(context.Background(), []string{"a", "b", "c"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(results) != 3 {
			t.Fatalf("expected 3 results, got %d", len(results))
		}
		for i, code := range []string{"a", "b", "c"} {
			if results[i].Code != code {
				t.Errorf("result %d code = %q, expected %q", i, results[i].Code, code)
			}
			if results[i].Name != "name-"+code {
				t.Errorf("result %d name = %q, expected %q", i, results[i].Name, "name-"+code)
			}
		}
	})

	t.Run("empty input yields empty results", func(t *testing.T) {
		t.Parallel()

		b := NewBatchResolver(NewResolver(nil))
		results, err := b.ResolveAll(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected no results, got %d", len(results))
		}
	})

	t.Run("cancelled context aborts the batch", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		b := NewBatchResolver(NewResolver(nil), WithConcurrency(1))
		codes := []string{"a", "b", "c", "d"}

		if _, err := b.ResolveAll(ctx, codes); err == nil {
			t.Error("expected cancellation error, got nil")
		}
	})
}
