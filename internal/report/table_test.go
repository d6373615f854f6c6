package report

import "testing"

func TestTableAlignsColumns(t *testing.T) {
	headers := []string{"#", "Word", "Score"}
	rows := [][]string{
		{"1.", "crane", "21.40"},
		{"10.", "ab", "3.00"},
	}
	lines := Table(headers, rows, map[int]bool{0: true, 2: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "  # Word  Score" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != " 1. crane 21.40" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "10. ab     3.00" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestTableEmpty(t *testing.T) {
	if lines := Table(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil lines, got %v", lines)
	}
}
