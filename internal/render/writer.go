package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cartscan/cartscan/internal/model"
)

// Writer outputs a list snapshot in some format.
type Writer interface {
	// Write renders the snapshot to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(snapshot model.Snapshot) (int, error)
}

// baseWriter provides common functionality for writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// ListWriter renders the interactive terminal view: numbered lines with
// checked/unchecked glyphs. The numbers are the 1-based indices the
// check/edit/remove commands accept, re-derived on every render because
// indices are only stable until the next removal.
type ListWriter struct {
	baseWriter
}

// NewListWriter creates a ListWriter that outputs to the given writer.
func NewListWriter(output io.Writer) *ListWriter {
	return &ListWriter{baseWriter: newBaseWriter(output)}
}

// Write implements Writer.
func (w *ListWriter) Write(snapshot model.Snapshot) (int, error) {
	if len(snapshot) == 0 {
		return fmt.Fprintln(w.output, "Shopping list is empty.")
	}

	var total int
	for i, entry := range snapshot {
		n, err := fmt.Fprintf(w.output, "%3d. %s\n", i+1, entry.Line())
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ShareWriter renders the plain-text share format: one glyph-prefixed
// line per item, no numbering. The output is what lands on the clipboard
// or in a shared message.
type ShareWriter struct {
	baseWriter
}

// NewShareWriter creates a ShareWriter that outputs to the given writer.
func NewShareWriter(output io.Writer) *ShareWriter {
	return &ShareWriter{baseWriter: newBaseWriter(output)}
}

// Write implements Writer.
func (w *ShareWriter) Write(snapshot model.Snapshot) (int, error) {
	text := snapshot.ShareText()
	if text == "" {
		return 0, nil
	}
	return fmt.Fprintln(w.output, text)
}

// JSONWriter renders the list as indented JSON, for piping into other
// tools.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output)}
}

// Write implements Writer.
func (w *JSONWriter) Write(snapshot model.Snapshot) (int, error) {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to serialize list: %w", err)
	}
	data = append(data, '\n')
	return w.output.Write(data)
}
