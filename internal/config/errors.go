package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrEmptyRoot is returned when the documentation root is empty.
	// An empty root would mean globbing the working directory itself.
	ErrEmptyRoot = errors.New("invalid root: documentation root must not be empty")

	// ErrNoAttributeKinds is returned when no attribute kinds are
	// configured. With nothing to extract, a check would be meaningless.
	ErrNoAttributeKinds = errors.New("no attribute kinds configured: at least one attribute (e.g. href) is required")

	// ErrUnknownParser is returned when the parser is neither "text"
	// nor "html".
	ErrUnknownParser = errors.New(`unknown parser: must be "text" or "html"`)

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a
	// time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
