package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".cartscan"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Duration wraps time.Duration so that config files can use readable
// values like "30s" or "1m". yaml.v3 only decodes integers (nanoseconds)
// into time.Duration natively, which nobody wants to write by hand.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// File represents the structure of the .cartscan configuration file.
type File struct {
	// Scan holds scan-session settings.
	Scan ScanSettings `yaml:"scan,omitempty"`

	// Lookup holds resolver settings.
	Lookup LookupSettings `yaml:"lookup,omitempty"`

	// Providers is the ordered lookup provider chain. When present it
	// replaces the built-in chain entirely, so disabling a default
	// provider is just a matter of listing it with enabled: false.
	Providers []Provider `yaml:"providers,omitempty"`
}

// ScanSettings are the scan-session options of the config file.
type ScanSettings struct {
	// Device is the scanner device path. Empty means standard input.
	Device string `yaml:"device,omitempty"`

	// Threshold overrides the confirmation threshold.
	Threshold int `yaml:"threshold,omitempty"`

	// SampleInterval overrides the pause between decode attempts.
	SampleInterval Duration `yaml:"sampleInterval,omitempty"`

	// SessionTimeout overrides the session timeout.
	SessionTimeout Duration `yaml:"sessionTimeout,omitempty"`
}

// LookupSettings are the resolver options of the config file.
type LookupSettings struct {
	// Timeout overrides the per-provider HTTP timeout.
	Timeout Duration `yaml:"timeout,omitempty"`

	// Concurrency overrides the resolve command's parallelism.
	Concurrency int `yaml:"concurrency,omitempty"`

	// UserAgent overrides the HTTP User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this error based on whether the path was explicitly specified by
// the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .cartscan in the current directory
// 3. Look for .cartscan in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// Apply copies the file's settings onto the config, leaving defaults in
// place for anything the file omits. Flag handling runs after this, so
// the precedence is flags over file over defaults.
func (cf *File) Apply(cfg *Config) {
	if cf.Scan.Device != "" {
		cfg.DevicePath = cf.Scan.Device
	}
	if cf.Scan.Threshold != 0 {
		cfg.ConfirmThreshold = cf.Scan.Threshold
	}
	if cf.Scan.SampleInterval != 0 {
		cfg.SampleInterval = cf.Scan.SampleInterval.Std()
	}
	if cf.Scan.SessionTimeout != 0 {
		cfg.SessionTimeout = cf.Scan.SessionTimeout.Std()
	}
	if cf.Lookup.Timeout != 0 {
		cfg.LookupTimeout = cf.Lookup.Timeout.Std()
	}
	if cf.Lookup.Concurrency != 0 {
		cfg.ResolveConcurrency = cf.Lookup.Concurrency
	}
	if cf.Lookup.UserAgent != "" {
		cfg.UserAgent = cf.Lookup.UserAgent
	}
	if len(cf.Providers) > 0 {
		cfg.Providers = cf.Providers
	}
}
