// Package config provides configuration structures and utilities for cartscan.
// It defines the main configuration options for scan sessions, lookup
// providers, and persistence, along with the .cartscan YAML file loader.
package config
