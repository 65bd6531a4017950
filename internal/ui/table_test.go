package ui

import (
	"strings"
	"testing"
)

func TestColumnWidths(t *testing.T) {
	table := Table{
		Headers: []string{"ID", "TITLE"},
		Rows: [][]string{
			{"1", "Write docs"},
			{"12", "Fix"},
		},
	}
	widths := table.ColumnWidths()
	if widths[0] != 2 {
		t.Errorf("widths[0] = %d, want 2", widths[0])
	}
	if widths[1] != 10 {
		t.Errorf("widths[1] = %d, want 10", widths[1])
	}
}

func TestColumnWidthsMaxWidth(t *testing.T) {
	table := Table{
		Headers:  []string{"TITLE"},
		Rows:     [][]string{{"a very long task title that keeps going"}},
		MaxWidth: 12,
	}
	widths := table.ColumnWidths()
	if widths[0] != 12 {
		t.Errorf("widths[0] = %d, want 12", widths[0])
	}
}

func TestPadTruncates(t *testing.T) {
	got := pad("abcdefgh", 5)
	if got != "abcd…" {
		t.Errorf("pad() = %q, want %q", got, "abcd…")
	}
	if got := pad("ab", 5); got != "ab   " {
		t.Errorf("pad() = %q, want %q", got, "ab   ")
	}
}

func TestTableRender(t *testing.T) {
	table := Table{
		Headers: []string{"ID", "TITLE"},
		Rows: [][]string{
			{"1", "First"},
			{"2", "Second"},
		},
	}
	out := table.Render()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("rendered %d lines, want 4:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "ID") || !strings.Contains(lines[0], "TITLE") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "--") {
		t.Errorf("separator line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "First") {
		t.Errorf("row line = %q", lines[2])
	}
}

func TestTableRenderEmpty(t *testing.T) {
	table := Table{}
	if out := table.Render(); out != "" {
		t.Errorf("Render() = %q, want empty", out)
	}
}
