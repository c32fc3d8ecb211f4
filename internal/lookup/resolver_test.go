package lookup

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/cartscan/cartscan/internal/config"
)

// mockProvider is a scripted Provider that counts its lookups.
type mockProvider struct {
	name   string
	result string
	err    error
	calls  int
}

// Name implements Provider.
func (m *mockProvider) Name() string {
	return m.name
}

// Lookup implements Provider.
func (m *mockProvider) Lookup(_ context.Context, _ string) (string, error) {
	m.calls++
	return m.result, m.err
}

// TestResolverResolve tests the fallback chain semantics.
func TestResolverResolve(t *testing.T) {
	t.Parallel()

	t.Run("first match wins and later providers are not queried", func(t *testing.T) {
		t.Parallel()

		p1 := &mockProvider{name: "p1", err: errors.New("no match")}
		p2 := &mockProvider{name: "p2", result: "Milk"}
		p3 := &mockProvider{name: "p3", result: "Other"}

		r := NewResolver([]Provider{p1, p2, p3})

		if got := r.Resolve(context.Background(), "012345678905"); got != "Milk" {
			t.Errorf("got %q, expected Milk", got)
		}
		if p1.calls != 1 {
			t.Errorf("p1 called %d times, expected 1", p1.calls)
		}
		if p2.calls != 1 {
			t.Errorf("p2 called %d times, expected 1", p2.calls)
		}
		if p3.calls != 0 {
			t.Errorf("p3 called %d times, expected 0 (short-circuit)", p3.calls)
		}
	})

	t.Run("all providers failing yields the fallback label", func(t *testing.T) {
		t.Parallel()

		r := NewResolver([]Provider{
			&mockProvider{name: "p1", err: errors.New("timeout")},
			&mockProvider{name: "p2", err: errors.New("malformed response")},
		})

		want := "Unknown product (012345678905)"
		if got := r.Resolve(context.Background(), "012345678905"); got != want {
			t.Errorf("got %q, expected %q", got, want)
		}
	})

	t.Run("empty chain yields the fallback label", func(t *testing.T) {
		t.Parallel()

		r := NewResolver(nil)

		want := "Unknown product (96385074)"
		if got := r.Resolve(context.Background(), "96385074"); got != want {
			t.Errorf("got %q, expected %q", got, want)
		}
	})

	t.Run("empty provider answer falls through to the next", func(t *testing.T) {
		t.Parallel()

		p1 := &mockProvider{name: "p1", result: "   "}
		p2 := &mockProvider{name: "p2", result: "Bread"}
		r := NewResolver([]Provider{p1, p2})

		if got := r.Resolve(context.Background(), "012345678905"); got != "Bread" {
			t.Errorf("got %q, expected Bread", got)
		}
	})

	t.Run("resolved names are whitespace-collapsed", func(t *testing.T) {
		t.Parallel()

		p := &mockProvider{name: "p", result: "  Oat\t\tMilk \n Barista "}
		r := NewResolver([]Provider{p})

		if got := r.Resolve(context.Background(), "012345678905"); got != "Oat Milk Barista" {
			t.Errorf("got %q, expected collapsed name", got)
		}
	})
}

// TestNewResolverFromConfig tests chain construction from configuration.
func TestNewResolverFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("disabled providers are excluded from the chain", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.Providers = []config.Provider{
			{Name: "on", Enabled: true, Endpoint: "https://a.example/{code}", NamePath: "name"},
			{Name: "off", Enabled: false, Endpoint: "https://b.example/{code}", NamePath: "name"},
		}

		r := NewResolverFromConfig(cfg, &http.Client{Timeout: time.Second})
		if r.ProviderCount() != 1 {
			t.Errorf("expected 1 provider in chain, got %d", r.ProviderCount())
		}
	})

	t.Run("all providers disabled resolves to fallback", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		for i := range cfg.Providers {
			cfg.Providers[i].Enabled = false
		}

		r := NewResolverFromConfig(cfg, &http.Client{Timeout: time.Second})

		want := "Unknown product (012345678905)"
		if got := r.Resolve(context.Background(), "012345678905"); got != want {
			t.Errorf("got %q, expected %q", got, want)
		}
	})
}

// TestFallbackLabel tests the deterministic fallback format.
func TestFallbackLabel(t *testing.T) {
	t.Parallel()

	if got := FallbackLabel("123"); got != "Unknown product (123)" {
		t.Errorf("got %q", got)
	}
}
