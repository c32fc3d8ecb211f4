package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/cartscan/cartscan/internal/config"
)

// Resolver maps a confirmed barcode to a display name through the
// ordered provider chain.
//
// Resolve never fails. Every provider error is absorbed: a lookup
// failure must never leave the user with a bare error instead of a list
// entry, so the worst case is the fallback label.
type Resolver struct {
	// providers is the ordered chain. Only enabled descriptors make it
	// in here; order determines precedence.
	providers []Provider

	// logger is used for structured logging.
	logger *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets a custom logger for the resolver.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver builds a resolver over an explicit provider chain.
// Order is preserved; the first provider returning a non-empty name wins.
func NewResolver(providers []Provider, opts ...ResolverOption) *Resolver {
	r := &Resolver{providers: providers}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// NewResolverFromConfig builds the resolver from configuration: one
// HTTPProvider per enabled descriptor, sharing one HTTP client.
func NewResolverFromConfig(cfg *config.Config, client *http.Client, opts ...ResolverOption) *Resolver {
	if client == nil {
		client = NewClient(cfg.LookupTimeout)
	}

	providers := make([]Provider, 0, len(cfg.Providers))
	for _, descriptor := range cfg.Providers {
		if !descriptor.Enabled {
			continue
		}
		providers = append(providers, NewHTTPProvider(descriptor, client,
			WithUserAgent(cfg.UserAgent),
			WithMaxBodySize(cfg.MaxBodySize),
		))
	}
	return NewResolver(providers, opts...)
}

// FallbackLabel is the deterministic label used when no provider
// resolves a code.
func FallbackLabel(code string) string {
	return fmt.Sprintf("Unknown product (%s)", code)
}

// Resolve returns the product name for code: the first enabled
// provider's non-empty answer, or the fallback label. Later providers
// are not queried once one matches.
func (r *Resolver) Resolve(ctx context.Context, code string) string {
	for _, provider := range r.providers {
		name, err := provider.Lookup(ctx, code)
		if err != nil {
			// Network failure, timeout, malformed response, missing
			// field: all just mean "no match here".
			r.logger.Debug("provider lookup failed",
				"provider", provider.Name(),
				"code", code,
				"error", err,
			)
			continue
		}

		name = cleanName(name)
		if name == "" {
			continue
		}

		r.logger.Debug("code resolved",
			"provider", provider.Name(),
			"code", code,
			"name", name,
		)
		return name
	}

	r.logger.Debug("no provider matched, using fallback label", "code", code)
	return FallbackLabel(code)
}

// ProviderCount returns the number of providers in the chain.
func (r *Resolver) ProviderCount() int {
	return len(r.providers)
}

// cleanName normalizes a provider-supplied product name: NFC unicode
// normalization and whitespace collapsing. Providers are fed by open
// crowdsourced data and return names in every state of disrepair.
func cleanName(name string) string {
	name = norm.NFC.String(name)
	return strings.Join(strings.Fields(name), " ")
}
