// Package scanner implements the documentation link check.
//
// # Architecture
//
// The scanner package is designed around the Scanner type, which coordinates
// one check run: it enumerates the HTML documents directly under the
// documentation root, extracts reference-bearing attribute values from each,
// classifies them as external or internal, and verifies that internal
// targets exist on disk.
//
// # Components
//
//   - Scanner: Coordinates the check and accumulates violations in order
//   - TextExtractor: Literal kind="value" pattern scan over raw content
//   - DOMExtractor: Structural extraction using an HTML parser
//
// # Ordering
//
// Violation order is part of the tool's contract: documents are processed in
// enumeration order, and within a document every href occurrence is reported
// before any src occurrence, each left to right. Both extractors preserve
// this ordering.
//
// # Failure model
//
// A broken reference is not an error: it is recorded as a violation and the
// check continues so one report lists every problem. An unreadable root or
// document is fatal and aborts the run with no partial report.
//
// # Usage
//
//	s := scanner.New("docs", scanner.WithLogger(logger))
//	report, err := s.Check(ctx)
package scanner
