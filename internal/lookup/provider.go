package lookup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/cartscan/cartscan/internal/config"
)

// codePlaceholder is the endpoint template token replaced with the
// barcode value.
const codePlaceholder = "{code}"

// errEmptyName is returned when a provider responds successfully but the
// extracted name is empty. Treated as "no match" like any other miss.
var errEmptyName = errors.New("provider returned an empty name")

// Provider is one queryable product-name source.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string

	// Lookup maps a code to a product name. An empty result or an error
	// both mean "no match here"; the resolver moves on either way.
	Lookup(ctx context.Context, code string) (string, error)
}

// HTTPProvider queries a product database over HTTP GET, driven entirely
// by a config.Provider descriptor. Adding a provider to the chain is a
// configuration change, never a code change.
//
// Design decision: We use a struct holding the http.Client rather than
// passing the client on each call because client configuration (timeout,
// transport) should be consistent across the chain, and a shared client
// pools connections across providers on the same host.
type HTTPProvider struct {
	// descriptor is the configuration entry driving this provider.
	descriptor config.Provider

	// client is the HTTP client shared across the chain.
	client *http.Client

	// userAgent is sent with every request.
	userAgent string

	// maxBodySize limits the response body size to read.
	maxBodySize int64

	// lookupEnv reads environment variables; swapped in tests.
	lookupEnv func(string) string
}

// HTTPProviderOption configures an HTTPProvider.
type HTTPProviderOption func(*HTTPProvider)

// WithUserAgent sets the User-Agent header sent to the provider.
func WithUserAgent(ua string) HTTPProviderOption {
	return func(p *HTTPProvider) {
		p.userAgent = ua
	}
}

// WithMaxBodySize caps the response body size in bytes.
func WithMaxBodySize(size int64) HTTPProviderOption {
	return func(p *HTTPProvider) {
		if size > 0 {
			p.maxBodySize = size
		}
	}
}

// WithEnvLookup overrides how API keys are read from the environment.
func WithEnvLookup(fn func(string) string) HTTPProviderOption {
	return func(p *HTTPProvider) {
		p.lookupEnv = fn
	}
}

// NewHTTPProvider creates a provider from its configuration descriptor.
// The client should be pre-configured with the lookup timeout.
func NewHTTPProvider(descriptor config.Provider, client *http.Client, opts ...HTTPProviderOption) *HTTPProvider {
	p := &HTTPProvider{
		descriptor:  descriptor,
		client:      client,
		userAgent:   config.DefaultUserAgent,
		maxBodySize: config.DefaultMaxBodySize,
		lookupEnv:   os.Getenv,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements Provider.
func (p *HTTPProvider) Name() string {
	return p.descriptor.Name
}

// Lookup implements Provider. It issues the GET, bounds the body read,
// and extracts the name per the descriptor's rule.
func (p *HTTPProvider) Lookup(ctx context.Context, code string) (string, error) {
	endpoint := strings.ReplaceAll(p.descriptor.Endpoint, codePlaceholder, url.PathEscape(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	for key, value := range p.descriptor.Headers {
		req.Header.Set(key, value)
	}
	if p.descriptor.APIKeyEnv != "" {
		if key := p.lookupEnv(p.descriptor.APIKeyEnv); key != "" {
			header := p.descriptor.APIKeyHeader
			if header == "" {
				header = "Authorization"
			}
			req.Header.Set(header, key)
		}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // Read-only body

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var name string
	switch p.descriptor.ResponseKind() {
	case config.KindHTML:
		name, err = extractHTMLTitle(body)
	default:
		name, err = extractJSONPath(body, p.descriptor.NamePath)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(name) == "" {
		return "", errEmptyName
	}
	return name, nil
}

// NewClient builds the HTTP client shared by a provider chain.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
