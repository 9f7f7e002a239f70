package scanner

import (
	"regexp"

	"github.com/doclink/doclink/internal/model"
)

// TextExtractor extracts references by scanning the raw document text for
// the literal pattern kind="value", where value is one or more characters
// other than a double quote.
//
// This is a textual pattern match, not a structural HTML parse: it matches
// the attribute pattern wherever it occurs in the raw text, including inside
// comments, script blocks, and attribute values of unrelated elements. That
// is deliberate; it is the default extractor because it preserves the
// checker's original observable behavior exactly. Use DOMExtractor to match
// only real attributes.
//
// Note the one-or-more match: an empty attribute value (href="") is never
// extracted.
type TextExtractor struct {
	// kinds are the attribute kinds in extraction order.
	kinds []string

	// patterns holds one compiled pattern per kind, index-aligned with kinds.
	patterns []*regexp.Regexp
}

// NewTextExtractor creates a TextExtractor for the given attribute kinds.
// Patterns are compiled once; attribute kind names are matched literally.
func NewTextExtractor(kinds ...string) *TextExtractor {
	patterns := make([]*regexp.Regexp, len(kinds))
	for i, kind := range kinds {
		patterns[i] = regexp.MustCompile(regexp.QuoteMeta(kind) + `="([^"]+)"`)
	}
	return &TextExtractor{kinds: kinds, patterns: patterns}
}

// Extract returns every match in the document, grouped by kind in the
// configured order and left to right within each kind.
func (e *TextExtractor) Extract(document string, content []byte) ([]model.Reference, error) {
	var refs []model.Reference
	for i, kind := range e.kinds {
		for _, m := range e.patterns[i].FindAllSubmatch(content, -1) {
			refs = append(refs, model.Reference{
				Document: document,
				Kind:     kind,
				Value:    string(m[1]),
			})
		}
	}
	return refs, nil
}
