package model

// AttributeKind identifies which HTML attribute a reference was extracted from.
// The checker looks at a fixed, ordered set of kinds; the order determines the
// order in which references are discovered within a document.
type AttributeKind = string

const (
	// AttributeHref is the href attribute of anchor and link elements.
	AttributeHref AttributeKind = "href"

	// AttributeSrc is the src attribute of script, img, and media elements.
	AttributeSrc AttributeKind = "src"
)

// Reference is one extracted attribute value from a document.
// Every reference belongs to exactly one document.
type Reference struct {
	// Document is the path of the owning HTML file, relative to the
	// working directory (e.g. "docs/index.html").
	Document string `json:"document"`

	// Kind is the attribute the value was extracted from (href or src).
	Kind AttributeKind `json:"kind"`

	// Value is the raw attribute value exactly as it appears in the
	// document, with no trimming or normalization.
	Value string `json:"value"`
}

// Descriptor returns the "kind=value" form used in reports.
func (r Reference) Descriptor() string {
	return r.Kind + "=" + r.Value
}

// Violation is an internal reference whose resolved filesystem path does not
// exist. Each violation corresponds to exactly one reference that was
// classified internal.
type Violation struct {
	// Document is the path of the owning HTML file.
	Document string `json:"document"`

	// Kind is the attribute kind of the broken reference.
	Kind AttributeKind `json:"kind"`

	// Value is the raw attribute value of the broken reference.
	Value string `json:"value"`

	// Resolved is the filesystem path the value resolved to.
	// This is informational; the report line uses the raw value.
	Resolved string `json:"resolved,omitempty"`
}

// Descriptor returns the "kind=value" form used in report lines.
func (v Violation) Descriptor() string {
	return v.Kind + "=" + v.Value
}
