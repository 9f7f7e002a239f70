package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These reproduce the original checker's hard-coded behavior and are only
// overridden by an explicit config file or CLI flag.
const (
	// DefaultRoot is the documentation directory checked when no root is
	// configured. It is relative to the current working directory, which
	// is where the tool runs in CI.
	DefaultRoot = "docs"

	// ParserText selects the textual extractor: a literal kind="value"
	// pattern scan over the raw file content. This is the default because
	// it matches the original behavior exactly, including matches inside
	// comments and script blocks.
	ParserText = "text"

	// ParserHTML selects the structural extractor built on an HTML
	// parser. It only sees real attributes, so references inside comments
	// or scripts are not reported.
	ParserHTML = "html"

	// AppName is the application name used for XDG directory paths.
	AppName = "doclink"
)

// DefaultAttributeKinds lists the reference-bearing attributes to extract,
// in the fixed order that determines discovery order within a document.
func DefaultAttributeKinds() []string {
	return []string{"href", "src"}
}

// DefaultExternalPrefixes lists the value prefixes that classify a reference
// as external. External references are never resolved against the
// filesystem. "http" deliberately covers both http:// and https://.
func DefaultExternalPrefixes() []string {
	return []string{"http", "mailto:", "#", "data:"}
}

// Config holds all configuration options for a check run.
// This struct is populated from CLI flags and the optional config file and
// passed through the application via dependency injection rather than
// global state.
type Config struct {
	// Root is the documentation root directory to check.
	// Enumeration is non-recursive: only Root/*.html is considered.
	Root string

	// AttributeKinds are the attributes to extract, in order.
	AttributeKinds []string

	// ExternalPrefixes classify a reference value as external when the
	// value starts with any of them.
	ExternalPrefixes []string

	// IgnorePatterns are glob patterns matched against raw reference
	// values. Matching references are skipped entirely.
	IgnorePatterns []string

	// Parser selects the extractor: ParserText or ParserHTML.
	Parser string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .doclink in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// RootConfigs holds per-root configurations loaded from the config
	// file. Populated by LoadConfigFile.
	RootConfigs *File

	// JSONReport enables JSON report output instead of the
	// human-readable format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// SaveHistory indicates whether to save the check report to the
	// history database after the run.
	SaveHistory bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory.
	DBDir string

	// Explicit records which settings the user supplied on the command
	// line. An explicit setting is never replaced by a config-file
	// value, even when it is spelled identically to the built-in
	// default.
	Explicit ExplicitFlags
}

// ExplicitFlags marks settings that were passed explicitly rather than
// filled from defaults.
type ExplicitFlags struct {
	AttributeKinds bool
	IgnorePatterns bool
	Parser         bool
}

// NewConfig creates a new Config with default values.
// All fields are set so that a run with an unmodified Config behaves
// identically to the original hard-coded checker.
func NewConfig() *Config {
	return &Config{
		Root:             DefaultRoot,
		AttributeKinds:   DefaultAttributeKinds(),
		ExternalPrefixes: DefaultExternalPrefixes(),
		Parser:           ParserText,
		SaveHistory:      true,
		DBDir:            XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for doclink.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/doclink
// On macOS: ~/Library/Application Support/doclink
// On Windows: %LOCALAPPDATA%\doclink
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for doclink.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific sentinel error describing what is invalid, so
// callers can branch with errors.Is. Validation happens once after CLI
// parsing, before any filesystem access.
func (c *Config) Validate() error {
	if c.Root == "" {
		return ErrEmptyRoot
	}

	if len(c.AttributeKinds) == 0 {
		return ErrNoAttributeKinds
	}

	if c.Parser != ParserText && c.Parser != ParserHTML {
		return ErrUnknownParser
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// ApplyRootConfig merges per-root overrides from the loaded config file into
// the Config for the configured root. Explicit flags win: a config-file
// value only fills settings the user did not pass, tracked via Explicit
// rather than by comparing values, so --attribute href,src still pins the
// kinds even though it spells out the default.
func (c *Config) ApplyRootConfig() {
	if c.RootConfigs == nil {
		return
	}

	rc := c.RootConfigs.GetRootConfig(c.Root)

	if len(rc.Attributes) > 0 && !c.Explicit.AttributeKinds {
		c.AttributeKinds = rc.Attributes
	}
	if len(rc.ExternalPrefixes) > 0 {
		c.ExternalPrefixes = rc.ExternalPrefixes
	}
	if len(rc.IgnorePatterns) > 0 && !c.Explicit.IgnorePatterns {
		c.IgnorePatterns = rc.IgnorePatterns
	}
	if rc.Parser != "" && !c.Explicit.Parser {
		c.Parser = rc.Parser
	}
}
