package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doclink/doclink/internal/config"
	"github.com/doclink/doclink/internal/history"
	"github.com/doclink/doclink/internal/model"
)

// Constants for comparison direction and summary messages.
const (
	directionWorsened  = "worsened"
	directionImproved  = "improved"
	directionUnchanged = "unchanged"
)

// NewCompareCmd creates the compare command.
// This command compares check results with historical data stored in the
// database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [root]",
		Short: "Compare check results with historical data",
		Long: `Compare displays differences between the current and previous check results
for a documentation root.

This command retrieves historical check data from the database and shows:
- References that broke since the previous check
- References that were fixed
- Whether the documentation set improved or worsened overall

The comparison requires at least two saved checks for the specified root.
Checks are saved automatically unless run with --no-save.

Examples:
  # Compare the latest two checks for the default docs root
  doclink compare

  # Compare checks for a different root
  doclink compare site/public

  # List all saved checks for a root
  doclink compare --list

  # Compare with a specific historical check by ID
  doclink compare --with-check-id 5

  # Compare checks since a specific date
  doclink compare --since "2026-01-01"

  # List all roots present in the database
  doclink compare --list-roots`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List check history for the root")
	cmd.Flags().BoolP("list-roots", "L", false,
		"List all documentation roots in the database")

	// Comparison target flags
	cmd.Flags().Int64P("with-check-id", "i", 0,
		"Compare with a specific check by ID (use --list to see available IDs)")
	cmd.Flags().StringP("since", "s", "",
		"Compare with the first check after this date (format: YYYY-MM-DD)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	listRoots, err := cmd.Flags().GetBool("list-roots")
	if err != nil {
		return err
	}

	root := config.DefaultRoot
	if len(args) > 0 {
		root = args[0]
	}

	db, err := history.Open(config.XDGDataDir(), history.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listRoots {
		return listCheckedRoots(ctx, db)
	}

	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listCheckHistory(ctx, db, root)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	withCheckID, err := cmd.Flags().GetInt64("with-check-id")
	if err != nil {
		return err
	}
	sinceDate, err := cmd.Flags().GetString("since")
	if err != nil {
		return err
	}

	return runComparison(ctx, db, root, withCheckID, sinceDate, jsonOutput, markdownOutput)
}

// listCheckedRoots lists all roots that have check records in the database.
func listCheckedRoots(ctx context.Context, db *history.DB) error {
	roots, err := db.ListCheckedRoots(ctx)
	if err != nil {
		return fmt.Errorf("failed to list roots: %w", err)
	}

	if len(roots) == 0 {
		fmt.Println("No checked roots found in the database.")
		fmt.Println("\nUse 'doclink check' to check a documentation directory.")
		return nil
	}

	fmt.Printf("Checked roots (%d):\n\n", len(roots))
	for _, root := range roots {
		fmt.Printf("  • %s\n", root)
	}
	fmt.Println("\nUse 'doclink compare --list <root>' to see check history for a root.")

	return nil
}

// listCheckHistory lists all check records for a specific root.
func listCheckHistory(ctx context.Context, db *history.DB, root string) error {
	metas, err := db.GetCheckHistoryWithMetadata(ctx, root)
	if err != nil {
		return fmt.Errorf("failed to get check history: %w", err)
	}

	if len(metas) == 0 {
		fmt.Printf("No check history found for %s\n", root)
		fmt.Println("\nUse 'doclink check' to check this root.")
		return nil
	}

	fmt.Printf("Check history for %s (%d checks):\n\n", root, len(metas))
	fmt.Printf("  %-6s  %-20s  %s\n", "ID", "Date", "Broken References")
	fmt.Println("  " + strings.Repeat("-", 50))

	for _, meta := range metas {
		fmt.Printf("  %-6d  %-20s  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			formatViolationCount(meta.ViolationCount),
		)
	}

	fmt.Println("\nUse 'doclink compare <root>' to compare the latest two checks.")
	fmt.Println("Use 'doclink compare --with-check-id <id> <root>' to compare with a specific check.")

	return nil
}

// formatViolationCount formats a violation count for the history listing.
func formatViolationCount(count int) string {
	if count == 0 {
		return "none"
	}
	return strconv.Itoa(count)
}

// runComparison performs the actual comparison between check reports.
func runComparison(ctx context.Context, db *history.DB, root string, withCheckID int64, sinceDate string, jsonOutput, markdownOutput bool) error {
	reports, err := db.GetCheckHistory(ctx, root)
	if err != nil {
		return fmt.Errorf("failed to get check history: %w", err)
	}

	if len(reports) == 0 {
		return fmt.Errorf("no check history found for %s", root)
	}

	if len(reports) < 2 && withCheckID == 0 && sinceDate == "" {
		return fmt.Errorf("at least 2 checks are required for comparison (found %d)", len(reports))
	}

	// Latest report is always the current one
	currentReport := reports[0]
	var previousReport *model.CheckReport

	switch {
	case withCheckID > 0:
		previousReport, err = db.GetCheckReportByID(ctx, withCheckID)
		if err != nil {
			return fmt.Errorf("failed to get check with ID %d: %w", withCheckID, err)
		}
		if previousReport == nil {
			return fmt.Errorf("check with ID %d not found", withCheckID)
		}
		if previousReport.Root != root {
			return fmt.Errorf("check ID %d belongs to %s, not %s", withCheckID, previousReport.Root, root)
		}
	case sinceDate != "":
		parsedDate, err := time.Parse("2006-01-02", sinceDate)
		if err != nil {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
		}

		// Reports are newest first, so iterate in reverse to find the
		// oldest report at or after the date.
		for i := len(reports) - 1; i >= 0; i-- {
			r := reports[i]
			if r.DateChecked.After(parsedDate) || r.DateChecked.Equal(parsedDate) {
				previousReport = r
				break
			}
		}
		if previousReport == nil {
			return fmt.Errorf("no checks found since %s", sinceDate)
		}
		if previousReport == currentReport {
			return fmt.Errorf("only one check found since %s; at least 2 checks are required for comparison", sinceDate)
		}
	default:
		previousReport = reports[1]
	}

	comparison := compareReports(previousReport, currentReport)

	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	if markdownOutput {
		return outputComparisonMarkdown(comparison)
	}
	return outputComparisonText(comparison)
}

// ComparisonResult holds the result of comparing two check reports.
type ComparisonResult struct {
	// Root is the documentation root that was checked.
	Root string `json:"root"`

	// PreviousCheck contains metadata about the previous check.
	PreviousCheck CheckMetadata `json:"previous_check"`

	// CurrentCheck contains metadata about the current check.
	CurrentCheck CheckMetadata `json:"current_check"`

	// NewViolations contains references broken in the current check but
	// not the previous one.
	NewViolations []model.Violation `json:"new_violations,omitempty"`

	// FixedViolations contains references broken in the previous check
	// but no longer broken.
	FixedViolations []model.Violation `json:"fixed_violations,omitempty"`

	// UnchangedCount is the number of violations present in both checks.
	UnchangedCount int `json:"unchanged_count"`

	// Direction is "improved", "worsened", or "unchanged".
	Direction string `json:"direction"`
}

// CheckMetadata contains metadata about a check for comparison display.
type CheckMetadata struct {
	// DateChecked is when the check was performed.
	DateChecked time.Time `json:"date_checked"`

	// DocumentsScanned is the number of documents the check read.
	DocumentsScanned int `json:"documents_scanned"`

	// ViolationCount is the number of broken references found.
	ViolationCount int `json:"violation_count"`
}

// compareReports compares two check reports and generates a comparison
// result.
func compareReports(previous, current *model.CheckReport) *ComparisonResult {
	result := &ComparisonResult{
		Root: current.Root,
		PreviousCheck: CheckMetadata{
			DateChecked:      previous.DateChecked,
			DocumentsScanned: previous.DocumentsScanned,
			ViolationCount:   previous.ViolationCount(),
		},
		CurrentCheck: CheckMetadata{
			DateChecked:      current.DateChecked,
			DocumentsScanned: current.DocumentsScanned,
			ViolationCount:   current.ViolationCount(),
		},
	}

	previousSet := make(map[string]model.Violation)
	for _, v := range previous.Violations {
		previousSet[violationKey(v)] = v
	}
	currentSet := make(map[string]struct{})
	for _, v := range current.Violations {
		currentSet[violationKey(v)] = struct{}{}
	}

	// New violations keep the current report's order so the output is
	// stable across runs.
	for _, v := range current.Violations {
		if _, exists := previousSet[violationKey(v)]; !exists {
			result.NewViolations = append(result.NewViolations, v)
		} else {
			result.UnchangedCount++
		}
	}

	for _, v := range previous.Violations {
		if _, exists := currentSet[violationKey(v)]; !exists {
			result.FixedViolations = append(result.FixedViolations, v)
		}
	}

	switch {
	case current.ViolationCount() < previous.ViolationCount():
		result.Direction = directionImproved
	case current.ViolationCount() > previous.ViolationCount():
		result.Direction = directionWorsened
	default:
		result.Direction = directionUnchanged
	}

	return result
}

// violationKey generates a unique key for a violation for comparison
// purposes.
func violationKey(v model.Violation) string {
	return v.Document + "|" + v.Kind + "|" + v.Value
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonMarkdown outputs the comparison result in Markdown format.
func outputComparisonMarkdown(result *ComparisonResult) error {
	fmt.Printf("# Check Comparison: %s\n\n", result.Root)

	fmt.Println("## Summary")
	fmt.Printf("\n**Status:** %s\n\n", formatDirection(result.Direction))

	fmt.Println("| Metric | Previous | Current | Change |")
	fmt.Println("|--------|----------|---------|--------|")
	fmt.Printf("| Date | %s | %s | - |\n",
		result.PreviousCheck.DateChecked.Format("2006-01-02 15:04"),
		result.CurrentCheck.DateChecked.Format("2006-01-02 15:04"))
	fmt.Printf("| Documents | %d | %d | %s |\n",
		result.PreviousCheck.DocumentsScanned,
		result.CurrentCheck.DocumentsScanned,
		formatDelta(result.CurrentCheck.DocumentsScanned-result.PreviousCheck.DocumentsScanned))
	fmt.Printf("| **Broken References** | **%d** | **%d** | **%s** |\n",
		result.PreviousCheck.ViolationCount,
		result.CurrentCheck.ViolationCount,
		formatDelta(result.CurrentCheck.ViolationCount-result.PreviousCheck.ViolationCount))

	if len(result.NewViolations) > 0 {
		fmt.Printf("\n## New Broken References (%d)\n\n", len(result.NewViolations))
		for _, v := range result.NewViolations {
			fmt.Printf("- `%s` -> `%s`\n", v.Document, v.Descriptor())
		}
	}

	if len(result.FixedViolations) > 0 {
		fmt.Printf("\n## Fixed References (%d)\n\n", len(result.FixedViolations))
		for _, v := range result.FixedViolations {
			fmt.Printf("- ~~`%s` -> `%s`~~\n", v.Document, v.Descriptor())
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Printf("\n---\n\n*%d broken reference(s) unchanged*\n", result.UnchangedCount)
	}

	return nil
}

// outputComparisonText outputs the comparison result in human-readable text
// format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Check Comparison: %s\n", result.Root)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nStatus: %s\n", formatDirection(result.Direction))

	fmt.Printf("\nPrevious check: %s\n", result.PreviousCheck.DateChecked.Format("2006-01-02 15:04:05"))
	fmt.Printf("Current check:  %s\n", result.CurrentCheck.DateChecked.Format("2006-01-02 15:04:05"))

	fmt.Println("\nSummary:")
	fmt.Printf("  %-18s  %-10s  %-10s  %-10s\n", "", "Previous", "Current", "Change")
	fmt.Println("  " + strings.Repeat("-", 52))
	fmt.Printf("  %-18s  %-10d  %-10d  %-10s\n", "Documents",
		result.PreviousCheck.DocumentsScanned, result.CurrentCheck.DocumentsScanned,
		formatDelta(result.CurrentCheck.DocumentsScanned-result.PreviousCheck.DocumentsScanned))
	fmt.Printf("  %-18s  %-10d  %-10d  %-10s\n", "Broken references",
		result.PreviousCheck.ViolationCount, result.CurrentCheck.ViolationCount,
		formatDelta(result.CurrentCheck.ViolationCount-result.PreviousCheck.ViolationCount))

	if len(result.NewViolations) > 0 {
		fmt.Printf("\nNew Broken References (%d):\n", len(result.NewViolations))
		for _, v := range result.NewViolations {
			fmt.Printf("  [+] %s -> %s\n", v.Document, v.Descriptor())
		}
	}

	if len(result.FixedViolations) > 0 {
		fmt.Printf("\nFixed References (%d):\n", len(result.FixedViolations))
		for _, v := range result.FixedViolations {
			fmt.Printf("  [-] %s -> %s\n", v.Document, v.Descriptor())
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Printf("\nUnchanged: %d broken reference(s)\n", result.UnchangedCount)
	}

	return nil
}

// formatDirection formats the comparison direction for display.
func formatDirection(direction string) string {
	switch direction {
	case directionImproved:
		return "IMPROVED (fewer broken references)"
	case directionWorsened:
		return "WORSENED (more broken references)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
