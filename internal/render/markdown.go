package render

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/cartscan/cartscan/internal/model"
)

// MarkdownWriter renders the list as a GitHub-flavored Markdown task
// list, for pasting into issues, notes apps, or anything else that
// understands checkboxes.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write implements Writer.
func (w *MarkdownWriter) Write(snapshot model.Snapshot) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Shopping List")
	md.PlainText("")

	if len(snapshot) == 0 {
		md.PlainText("Nothing on the list.")
		return len(md.String()), md.Build()
	}

	boxes := make([]markdown.CheckBoxSet, 0, len(snapshot))
	open := 0
	for _, entry := range snapshot {
		boxes = append(boxes, markdown.CheckBoxSet{
			Checked: entry.Checked,
			Text:    entry.Text,
		})
		if !entry.Checked {
			open++
		}
	}
	md.CheckBox(boxes)
	md.PlainText("")
	md.PlainText(strconv.Itoa(open) + " of " + strconv.Itoa(len(snapshot)) + " items still to get.")

	return len(md.String()), md.Build()
}
