// Package render is the presentation side of cartscan: the terminal list
// view refreshed after every mutation, and the share/export writers
// (plain text, JSON, Markdown).
//
// Design decision: We use a Writer interface so the same list can go to
// the terminal, a file, or both with the same API, and so tests can
// assert on bytes instead of a screen.
package render
