// Package main provides the entry point for the cartscan CLI.
//
// cartscan is a shopping list manager with barcode scanning: point a
// scanner at a product, and the confirmed code is looked up against
// public product databases and appended to your list.
//
// Usage:
//
//	cartscan add "Oat milk"
//	cartscan scan
//	cartscan list
//
// See --help for all available options.
package main

// main is the entry point for cartscan.
func main() {
	Execute()
}
