package model

import "time"

// CheckReport is the complete result of one check run over a documentation
// root. It is created fresh for each run and never mutated afterwards.
//
// Design decision: violations are accumulated into a single ordered slice
// owned by the report rather than streamed, because the tool's contract is to
// enumerate every broken reference in one report so users can fix all issues
// before re-running.
type CheckReport struct {
	// Root is the documentation root directory that was checked.
	Root string `json:"root"`

	// DateChecked is when the check was performed.
	DateChecked time.Time `json:"date_checked"`

	// DocumentsScanned is the number of HTML files that were read.
	DocumentsScanned int `json:"documents_scanned"`

	// ReferencesChecked is the total number of references extracted,
	// including external ones that were skipped.
	ReferencesChecked int `json:"references_checked"`

	// ExternalSkipped is the number of references classified external
	// by prefix and therefore never resolved against the filesystem.
	ExternalSkipped int `json:"external_skipped"`

	// IgnoredSkipped is the number of references skipped because their
	// value matched a configured ignore pattern.
	IgnoredSkipped int `json:"ignored_skipped"`

	// Violations lists every internal reference whose target does not
	// exist, in discovery order: documents in enumeration order, and
	// within a document, href occurrences before src occurrences, each
	// left to right.
	Violations []Violation `json:"violations,omitempty"`
}

// NewCheckReport creates an empty report for the given root.
func NewCheckReport(root string) *CheckReport {
	return &CheckReport{
		Root:        root,
		DateChecked: time.Now(),
	}
}

// AddViolation appends a violation, preserving discovery order.
func (r *CheckReport) AddViolation(v Violation) {
	r.Violations = append(r.Violations, v)
}

// Passed reports whether the check found no violations.
func (r *CheckReport) Passed() bool {
	return len(r.Violations) == 0
}

// ViolationCount returns the number of recorded violations.
func (r *CheckReport) ViolationCount() int {
	return len(r.Violations)
}
