package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/doclink/doclink/internal/model"
)

// Contract output lines. CI pipelines match on these exact strings, so they
// are constants rather than formatted ad hoc.
const (
	// SuccessLine is the single line printed when no violations exist.
	SuccessLine = "✅ All internal href/src targets exist"

	// FailureHeader is printed before the violation list.
	FailureHeader = "❌ Missing link targets:"
)

// SimpleWriter outputs the human-readable report format:
// one success line, or a header followed by one indented line per violation
// ("  <document> -> <kind>=<value>") in discovery order.
type SimpleWriter struct {
	baseWriter

	// colored enables ANSI colors on the status lines. The text content
	// is identical either way; fatih/color additionally disables itself
	// when the destination is not a terminal.
	colored bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithColor enables colored status lines.
func WithColor() SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.colored = true
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in the contract format.
func (w *SimpleWriter) Write(report *model.CheckReport) (int, error) {
	var buf bytes.Buffer

	if report.Passed() {
		w.statusLine(&buf, color.FgGreen, SuccessLine)
	} else {
		w.statusLine(&buf, color.FgRed, FailureHeader)
		for _, v := range report.Violations {
			fmt.Fprintf(&buf, "  %s -> %s\n", v.Document, v.Descriptor())
		}
	}

	return w.output.Write(buf.Bytes())
}

// statusLine writes one line, colored when enabled.
func (w *SimpleWriter) statusLine(buf *bytes.Buffer, attr color.Attribute, line string) {
	if w.colored {
		color.New(attr).Fprintln(buf, line)
		return
	}
	fmt.Fprintln(buf, line)
}
