// Package report renders check reports in the supported output formats.
//
// Three writers share the Writer interface:
//   - SimpleWriter: the human-readable contract output (the default)
//   - JSONWriter: structured output for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown for docs and PR comments
//
// The simple format is load-bearing: CI pipelines grep for its exact lines,
// so its success and failure strings never change. The other formats are
// opt-in and may evolve.
package report
