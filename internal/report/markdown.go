package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/doclink/doclink/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for CI summaries and pull request comments.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides type-safe tables, lists, and GitHub-flavored
// alerts.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.CheckReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeAlert(md, report)
	w.writeViolations(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.CheckReport) {
	md.H1("Link Check Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Documentation Root", "`" + report.Root + "`"},
			{"Check Date", report.DateChecked.Format("2006-01-02 15:04:05 MST")},
			{"Documents Scanned", strconv.Itoa(report.DocumentsScanned)},
			{"References Checked", strconv.Itoa(report.ReferencesChecked)},
			{"External Skipped", strconv.Itoa(report.ExternalSkipped)},
			{"Broken References", strconv.Itoa(report.ViolationCount())},
		},
	})
	md.PlainText("")
}

// writeAlert writes a pass/fail alert.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.CheckReport) {
	if report.Passed() {
		md.Tip("All internal href/src targets exist.")
	} else {
		md.Cautionf("%d broken internal reference(s) found.", report.ViolationCount())
	}
	md.PlainText("")
}

// writeViolations writes the violation table in discovery order.
func (w *MarkdownWriter) writeViolations(md *markdown.Markdown, report *model.CheckReport) {
	if report.Passed() {
		return
	}

	md.H2("Missing Link Targets")
	md.PlainText("")

	rows := make([][]string, len(report.Violations))
	for i, v := range report.Violations {
		rows[i] = []string{
			"`" + v.Document + "`",
			v.Kind,
			"`" + v.Value + "`",
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Document", "Attribute", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}
