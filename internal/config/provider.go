package config

// Provider response kinds.
const (
	// KindJSON marks a provider whose response body is JSON. The product
	// name is extracted with the NamePath dot-path rule.
	KindJSON = "json"

	// KindHTML marks a provider whose response body is an HTML page.
	// The product name is taken from the document title.
	KindHTML = "html"
)

// Provider describes one external product-lookup service.
//
// Providers form an ordered fallback chain: the resolver queries them in
// configuration order and the first non-empty name wins. Adding a provider
// is purely a configuration change; no control flow needs to be touched.
type Provider struct {
	// Name identifies the provider in logs and error messages.
	Name string `yaml:"name"`

	// Enabled toggles the provider without removing its entry.
	Enabled bool `yaml:"enabled"`

	// Endpoint is the lookup URL template. The literal "{code}" is
	// replaced with the barcode value, e.g.
	// "https://world.openfoodfacts.org/api/v0/product/{code}.json".
	Endpoint string `yaml:"endpoint"`

	// Kind is the response body kind, "json" (default) or "html".
	Kind string `yaml:"kind,omitempty"`

	// NamePath is the dot-path to the product name field inside a JSON
	// response, e.g. "product.product_name" or "items.0.title".
	// Ignored for HTML providers.
	NamePath string `yaml:"name_path,omitempty"`

	// APIKeyEnv names the environment variable holding this provider's
	// API key, if it requires one. The key itself never lives in the
	// config file.
	APIKeyEnv string `yaml:"api_key_env,omitempty"`

	// APIKeyHeader is the request header the API key is sent in,
	// e.g. "Authorization" or "user_key". Defaults to "Authorization".
	APIKeyHeader string `yaml:"api_key_header,omitempty"`

	// Headers are extra HTTP headers to include in requests to this
	// provider.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// ResponseKind returns the provider's response kind, defaulting to JSON
// when the config file leaves it unset.
func (p Provider) ResponseKind() string {
	if p.Kind == "" {
		return KindJSON
	}
	return p.Kind
}

// Validate checks that the provider entry is usable.
func (p Provider) Validate() error {
	if p.Name == "" {
		return ErrProviderMissingName
	}
	if p.Endpoint == "" {
		return ErrProviderMissingEndpoint
	}
	switch p.ResponseKind() {
	case KindJSON:
		if p.NamePath == "" {
			return ErrProviderMissingExtraction
		}
	case KindHTML:
		// Title extraction needs no per-provider rule.
	default:
		return ErrProviderUnknownKind
	}
	return nil
}

// DefaultProviders returns the built-in provider chain used when no
// config file overrides it. Open Food Facts is first because it needs no
// API key and has the best coverage for groceries; the UPCitemdb trial
// endpoint catches non-food products.
func DefaultProviders() []Provider {
	return []Provider{
		{
			Name:     "openfoodfacts",
			Enabled:  true,
			Endpoint: "https://world.openfoodfacts.org/api/v0/product/{code}.json",
			Kind:     KindJSON,
			NamePath: "product.product_name",
		},
		{
			Name:     "upcitemdb",
			Enabled:  true,
			Endpoint: "https://api.upcitemdb.com/prod/trial/lookup?upc={code}",
			Kind:     KindJSON,
			NamePath: "items.0.title",
		},
	}
}
