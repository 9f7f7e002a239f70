package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/doclink/doclink/internal/config"
	"github.com/doclink/doclink/internal/model"
)

// Scanner performs one check run over a documentation root.
// It is single-threaded by design: the violation-ordering contract ties
// report order to document enumeration order, so documents are processed
// strictly in sequence.
type Scanner struct {
	// root is the documentation root directory.
	root string

	// kinds are the attribute kinds to extract, in order.
	kinds []string

	// prefixes classify a reference as external when its value starts
	// with any of them.
	prefixes []string

	// ignorePatterns are glob patterns of reference values to skip.
	ignorePatterns []string

	// extractor extracts references from document content.
	extractor Extractor

	// logger receives debug output. Never writes to stdout: stdout is
	// reserved for the report.
	logger *slog.Logger
}

// Extractor extracts references from the content of a single document.
// Implementations must return references grouped by attribute kind in the
// configured kind order, and left to right within a kind.
type Extractor interface {
	Extract(document string, content []byte) ([]model.Reference, error)
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithAttributeKinds sets the attribute kinds to extract, in order.
func WithAttributeKinds(kinds []string) Option {
	return func(s *Scanner) {
		s.kinds = kinds
	}
}

// WithExternalPrefixes sets the prefixes that classify a value as external.
func WithExternalPrefixes(prefixes []string) Option {
	return func(s *Scanner) {
		s.prefixes = prefixes
	}
}

// WithIgnorePatterns sets glob patterns of reference values to skip.
// Patterns use path.Match syntax (e.g. "vendor/*", "*.map").
func WithIgnorePatterns(patterns []string) Option {
	return func(s *Scanner) {
		s.ignorePatterns = patterns
	}
}

// WithExtractor replaces the default text extractor.
func WithExtractor(e Extractor) Option {
	return func(s *Scanner) {
		s.extractor = e
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// New creates a Scanner for the given documentation root.
// Without options the Scanner reproduces the original checker exactly:
// href/src extraction via the textual pattern, the standard external
// prefixes, and no ignore patterns.
func New(root string, opts ...Option) *Scanner {
	s := &Scanner{
		root:     root,
		kinds:    config.DefaultAttributeKinds(),
		prefixes: config.DefaultExternalPrefixes(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.extractor == nil {
		s.extractor = NewTextExtractor(s.kinds...)
	}

	return s
}

// Check runs the check and returns the accumulated report.
// A report with violations is a successful check run: the error return is
// reserved for fatal conditions (unreadable root, unreadable document),
// which abort the run with no partial report.
func (s *Scanner) Check(ctx context.Context) (*model.CheckReport, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, fmt.Errorf("cannot access documentation root %q: %w", s.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("documentation root %q is not a directory", s.root)
	}

	// Non-recursive: only HTML files directly under the root.
	// filepath.Glob returns paths in lexical order, which fixes the
	// document enumeration order for the report.
	docs, err := filepath.Glob(filepath.Join(s.root, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate documents under %q: %w", s.root, err)
	}

	s.logger.Debug("starting check", "root", s.root, "documents", len(docs))

	report := model.NewCheckReport(s.root)

	for _, doc := range docs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := s.checkDocument(doc, report); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("check finished",
		"documents", report.DocumentsScanned,
		"references", report.ReferencesChecked,
		"external", report.ExternalSkipped,
		"violations", report.ViolationCount(),
	)

	return report, nil
}

// checkDocument reads one document, extracts its references, and records a
// violation for every internal reference whose target does not exist.
func (s *Scanner) checkDocument(doc string, report *model.CheckReport) error {
	content, err := os.ReadFile(doc) //nolint:gosec // Paths come from globbing the configured root
	if err != nil {
		return fmt.Errorf("failed to read document %q: %w", doc, err)
	}

	refs, err := s.extractor.Extract(doc, content)
	if err != nil {
		return fmt.Errorf("failed to extract references from %q: %w", doc, err)
	}

	report.DocumentsScanned++
	s.logger.Debug("scanned document", "document", doc, "references", len(refs))

	for _, ref := range refs {
		report.ReferencesChecked++

		if s.ignored(ref.Value) {
			report.IgnoredSkipped++
			s.logger.Debug("ignored reference", "document", doc, "value", ref.Value)
			continue
		}

		if s.isExternal(ref.Value) {
			report.ExternalSkipped++
			continue
		}

		resolved := s.resolve(ref.Value)
		if !exists(resolved) {
			report.AddViolation(model.Violation{
				Document: ref.Document,
				Kind:     ref.Kind,
				Value:    ref.Value,
				Resolved: resolved,
			})
		}
	}

	return nil
}

// isExternal reports whether a reference value is classified external.
// External values are exempt from existence validation.
func (s *Scanner) isExternal(value string) bool {
	for _, prefix := range s.prefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// ignored reports whether the value matches a configured ignore pattern.
// Malformed patterns never match; they are validated when the config loads.
func (s *Scanner) ignored(value string) bool {
	for _, pattern := range s.ignorePatterns {
		if ok, err := path.Match(pattern, value); err == nil && ok {
			return true
		}
	}
	return false
}

// resolve maps a reference value to the filesystem path it must exist at.
// Values are URL-style paths relative to the documentation root. A leading
// separator is stripped so that "/style.css" also resolves inside the root
// rather than at the filesystem root; the checker never validates targets
// outside the documentation directory.
func (s *Scanner) resolve(value string) string {
	value = strings.TrimPrefix(value, "/")
	return filepath.Join(s.root, filepath.FromSlash(value))
}

// exists reports whether a path exists as a file or directory.
// Existence only, no type check. Any stat failure counts as missing, so an
// unreadable target is reported as broken rather than aborting the run.
func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
