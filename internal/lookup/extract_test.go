package lookup

import "testing"

// TestExtractJSONPath tests dot-path field extraction.
func TestExtractJSONPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		path    string
		want    string
		wantErr bool
	}{
		{
			name: "top-level field",
			body: `{"name":"Milk"}`,
			path: "name",
			want: "Milk",
		},
		{
			name: "nested field",
			body: `{"product":{"product_name":"Oat Milk"}}`,
			path: "product.product_name",
			want: "Oat Milk",
		},
		{
			name: "array index",
			body: `{"items":[{"title":"Eggs"},{"title":"Other"}]}`,
			path: "items.0.title",
			want: "Eggs",
		},
		{
			name:    "missing field",
			body:    `{"product":{}}`,
			path:    "product.product_name",
			wantErr: true,
		},
		{
			name:    "index out of range",
			body:    `{"items":[]}`,
			path:    "items.0.title",
			wantErr: true,
		},
		{
			name:    "non-numeric segment into array",
			body:    `{"items":[{"title":"Eggs"}]}`,
			path:    "items.first.title",
			wantErr: true,
		},
		{
			name:    "path descends into scalar",
			body:    `{"name":"Milk"}`,
			path:    "name.inner",
			wantErr: true,
		},
		{
			name:    "value is not a string",
			body:    `{"count":3}`,
			path:    "count",
			wantErr: true,
		},
		{
			name:    "malformed json",
			body:    `{not json`,
			path:    "name",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := extractJSONPath([]byte(tt.body), tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, expected %q", got, tt.want)
			}
		})
	}
}

// TestExtractHTMLTitle tests title extraction and suffix stripping.
func TestExtractHTMLTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{
			name: "plain title",
			body: `<html><head><title>Oat Milk</title></head></html>`,
			want: "Oat Milk",
		},
		{
			name: "site suffix stripped",
			body: `<html><head><title>Oat Milk - Open Food Facts</title></head></html>`,
			want: "Oat Milk",
		},
		{
			name: "pipe suffix stripped",
			body: `<html><head><title>Oat Milk | SomeShop</title></head></html>`,
			want: "Oat Milk",
		},
		{
			name:    "missing title",
			body:    `<html><head></head><body><p>hi</p></body></html>`,
			wantErr: true,
		},
		{
			name:    "empty title",
			body:    `<html><head><title>  </title></head></html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := extractHTMLTitle([]byte(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, expected %q", got, tt.want)
			}
		})
	}
}
