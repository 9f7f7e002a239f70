// Package model defines the core data structures used throughout doclink.
//
// This package contains the following main types:
//   - Reference: A single href/src attribute value extracted from a document
//   - Violation: An internal reference whose resolved target does not exist
//   - CheckReport: The complete result of one check run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (scanner, report, history) need to use these
// types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
