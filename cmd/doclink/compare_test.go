package main

import (
	"testing"
	"time"

	"github.com/doclink/doclink/internal/model"
)

// TestNewCompareCmd tests the compare command creation.
func TestNewCompareCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCompareCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "compare [root]" {
			t.Errorf("expected use 'compare [root]', got %q", cmd.Use)
		}
	})

	t.Run("has list flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("list")
		if flag == nil {
			t.Fatal("expected list flag")
		}
		if flag.Shorthand != "l" {
			t.Errorf("expected shorthand 'l', got %q", flag.Shorthand)
		}
	})

	t.Run("has list-roots flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("list-roots")
		if flag == nil {
			t.Fatal("expected list-roots flag")
		}
		if flag.Shorthand != "L" {
			t.Errorf("expected shorthand 'L', got %q", flag.Shorthand)
		}
	})

	t.Run("has with-check-id flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("with-check-id")
		if flag == nil {
			t.Fatal("expected with-check-id flag")
		}
		if flag.Shorthand != "i" {
			t.Errorf("expected shorthand 'i', got %q", flag.Shorthand)
		}
	})

	t.Run("has since flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("since")
		if flag == nil {
			t.Fatal("expected since flag")
		}
		if flag.Shorthand != "s" {
			t.Errorf("expected shorthand 's', got %q", flag.Shorthand)
		}
	})

	t.Run("has output format flags", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("json") == nil {
			t.Error("expected json flag")
		}
		if cmd.Flags().Lookup("markdown") == nil {
			t.Error("expected markdown flag")
		}
	})
}

// reportWithViolations builds a check report carrying the given violations.
func reportWithViolations(root string, date time.Time, violations ...model.Violation) *model.CheckReport {
	r := model.NewCheckReport(root)
	r.DateChecked = date
	r.DocumentsScanned = 3
	for _, v := range violations {
		r.AddViolation(v)
	}
	return r
}

// TestCompareReports tests comparison of two check reports.
func TestCompareReports(t *testing.T) {
	t.Parallel()

	older := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)

	brokenA := model.Violation{Document: "docs/a.html", Kind: model.AttributeHref, Value: "gone.html"}
	brokenB := model.Violation{Document: "docs/b.html", Kind: model.AttributeSrc, Value: "gone.png"}
	brokenC := model.Violation{Document: "docs/c.html", Kind: model.AttributeHref, Value: "missing.html"}

	t.Run("worsened when new violations appear", func(t *testing.T) {
		t.Parallel()

		previous := reportWithViolations("docs", older, brokenA)
		current := reportWithViolations("docs", newer, brokenA, brokenB)

		result := compareReports(previous, current)

		if result.Direction != directionWorsened {
			t.Errorf("expected direction %q, got %q", directionWorsened, result.Direction)
		}
		if len(result.NewViolations) != 1 || result.NewViolations[0] != brokenB {
			t.Errorf("unexpected new violations: %v", result.NewViolations)
		}
		if len(result.FixedViolations) != 0 {
			t.Errorf("expected no fixed violations, got %v", result.FixedViolations)
		}
		if result.UnchangedCount != 1 {
			t.Errorf("expected 1 unchanged, got %d", result.UnchangedCount)
		}
	})

	t.Run("improved when violations are fixed", func(t *testing.T) {
		t.Parallel()

		previous := reportWithViolations("docs", older, brokenA, brokenB)
		current := reportWithViolations("docs", newer, brokenB)

		result := compareReports(previous, current)

		if result.Direction != directionImproved {
			t.Errorf("expected direction %q, got %q", directionImproved, result.Direction)
		}
		if len(result.FixedViolations) != 1 || result.FixedViolations[0] != brokenA {
			t.Errorf("unexpected fixed violations: %v", result.FixedViolations)
		}
		if len(result.NewViolations) != 0 {
			t.Errorf("expected no new violations, got %v", result.NewViolations)
		}
	})

	t.Run("unchanged for identical violation sets", func(t *testing.T) {
		t.Parallel()

		previous := reportWithViolations("docs", older, brokenA, brokenB)
		current := reportWithViolations("docs", newer, brokenA, brokenB)

		result := compareReports(previous, current)

		if result.Direction != directionUnchanged {
			t.Errorf("expected direction %q, got %q", directionUnchanged, result.Direction)
		}
		if result.UnchangedCount != 2 {
			t.Errorf("expected 2 unchanged, got %d", result.UnchangedCount)
		}
	})

	t.Run("unchanged direction when counts match but sets differ", func(t *testing.T) {
		t.Parallel()

		previous := reportWithViolations("docs", older, brokenA)
		current := reportWithViolations("docs", newer, brokenC)

		result := compareReports(previous, current)

		if result.Direction != directionUnchanged {
			t.Errorf("expected direction %q, got %q", directionUnchanged, result.Direction)
		}
		if len(result.NewViolations) != 1 || len(result.FixedViolations) != 1 {
			t.Errorf("expected 1 new and 1 fixed, got %v / %v",
				result.NewViolations, result.FixedViolations)
		}
	})

	t.Run("new violations keep current report order", func(t *testing.T) {
		t.Parallel()

		previous := reportWithViolations("docs", older)
		current := reportWithViolations("docs", newer, brokenC, brokenA, brokenB)

		result := compareReports(previous, current)

		want := []model.Violation{brokenC, brokenA, brokenB}
		if len(result.NewViolations) != len(want) {
			t.Fatalf("expected %d new violations, got %d", len(want), len(result.NewViolations))
		}
		for i, v := range want {
			if result.NewViolations[i] != v {
				t.Errorf("position %d: expected %v, got %v", i, v, result.NewViolations[i])
			}
		}
	})

	t.Run("records check metadata", func(t *testing.T) {
		t.Parallel()

		previous := reportWithViolations("docs", older, brokenA)
		current := reportWithViolations("docs", newer)

		result := compareReports(previous, current)

		if result.Root != "docs" {
			t.Errorf("expected root 'docs', got %q", result.Root)
		}
		if !result.PreviousCheck.DateChecked.Equal(older) {
			t.Errorf("unexpected previous date: %v", result.PreviousCheck.DateChecked)
		}
		if !result.CurrentCheck.DateChecked.Equal(newer) {
			t.Errorf("unexpected current date: %v", result.CurrentCheck.DateChecked)
		}
		if result.PreviousCheck.ViolationCount != 1 || result.CurrentCheck.ViolationCount != 0 {
			t.Errorf("unexpected violation counts: %d / %d",
				result.PreviousCheck.ViolationCount, result.CurrentCheck.ViolationCount)
		}
	})
}

// TestFormatDelta tests delta formatting.
func TestFormatDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		delta int
		want  string
	}{
		{name: "positive", delta: 3, want: "+3"},
		{name: "negative", delta: -2, want: "-2"},
		{name: "zero", delta: 0, want: "0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := formatDelta(tt.delta); got != tt.want {
				t.Errorf("formatDelta(%d) = %q, want %q", tt.delta, got, tt.want)
			}
		})
	}
}

// TestFormatDirection tests direction formatting.
func TestFormatDirection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		direction string
		want      string
	}{
		{name: "improved", direction: directionImproved, want: "IMPROVED (fewer broken references)"},
		{name: "worsened", direction: directionWorsened, want: "WORSENED (more broken references)"},
		{name: "unchanged", direction: directionUnchanged, want: "UNCHANGED"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := formatDirection(tt.direction); got != tt.want {
				t.Errorf("formatDirection(%q) = %q, want %q", tt.direction, got, tt.want)
			}
		})
	}
}

// TestFormatViolationCount tests history listing count formatting.
func TestFormatViolationCount(t *testing.T) {
	t.Parallel()

	if got := formatViolationCount(0); got != "none" {
		t.Errorf("formatViolationCount(0) = %q, want 'none'", got)
	}
	if got := formatViolationCount(5); got != "5" {
		t.Errorf("formatViolationCount(5) = %q, want '5'", got)
	}
}
