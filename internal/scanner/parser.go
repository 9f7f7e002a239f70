package scanner

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"

	"github.com/doclink/doclink/internal/model"
)

// DOMExtractor extracts references by parsing the document into an HTML
// tree and walking its element attributes.
//
// Design decision: We use golang.org/x/net/html rather than regex because:
//  1. It correctly handles malformed HTML common in hand-written docs
//  2. It only sees real attributes, so href-like text inside comments or
//     script blocks is not reported
//  3. Standard library extension, well-maintained
//
// This changes which constructs are matched compared to TextExtractor, so
// it is opt-in (--parser html) rather than the default.
type DOMExtractor struct {
	// kinds are the attribute kinds in extraction order.
	kinds []string
}

// NewDOMExtractor creates a DOMExtractor for the given attribute kinds.
func NewDOMExtractor(kinds ...string) *DOMExtractor {
	return &DOMExtractor{kinds: kinds}
}

// Extract parses the document and returns attribute values grouped by kind
// in the configured order.
//
// Values are collected per kind during a single tree walk and concatenated
// in kind order afterwards, so the href-before-src ordering contract holds
// even though the walk visits each element once. Empty attribute values are
// skipped to match the text extractor's one-or-more rule.
//
// Each distinct value is reported once per kind. The parser's error
// recovery can clone elements while repairing malformed markup (an <a>
// left open across block elements reappears in every repaired subtree),
// and a broken target only needs one report regardless of how often the
// document repeats it.
func (e *DOMExtractor) Extract(document string, content []byte) ([]model.Reference, error) {
	root, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	perKind := make(map[string][]string, len(e.kinds))
	seen := make(map[string]struct{})

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				for _, kind := range e.kinds {
					if attr.Key != kind || attr.Val == "" {
						continue
					}
					key := kind + "=" + attr.Val
					if _, dup := seen[key]; dup {
						continue
					}
					seen[key] = struct{}{}
					perKind[kind] = append(perKind[kind], attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	var refs []model.Reference
	for _, kind := range e.kinds {
		for _, value := range perKind[kind] {
			refs = append(refs, model.Reference{
				Document: document,
				Kind:     kind,
				Value:    value,
			})
		}
	}
	return refs, nil
}
