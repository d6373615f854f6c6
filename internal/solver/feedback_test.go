package solver

import (
	"errors"
	"testing"
)

func TestNewGuessRecordNormalizes(t *testing.T) {
	rec, err := NewGuessRecord("CRANE", "GyBbG", 5)
	if err != nil {
		t.Fatalf("NewGuessRecord: %v", err)
	}
	if rec.Guess != "crane" {
		t.Fatalf("expected lowercased guess, got %q", rec.Guess)
	}
	if got := rec.FeedbackString(); got != "gybbg" {
		t.Fatalf("expected gybbg, got %q", got)
	}
	marks := rec.Marks()
	if len(marks) != 5 || marks[1] != (Mark{Letter: 'r', Feedback: Present}) {
		t.Fatalf("unexpected marks: %+v", marks)
	}
	if rec.Solved() {
		t.Fatalf("mixed feedback should not be solved")
	}
}

func TestGuessRecordSolved(t *testing.T) {
	rec, err := NewGuessRecord("crane", "GGGGG", 5)
	if err != nil {
		t.Fatalf("NewGuessRecord: %v", err)
	}
	if !rec.Solved() {
		t.Fatalf("all-green feedback should be solved")
	}
	if (GuessRecord{}).Solved() {
		t.Fatalf("empty record should not be solved")
	}
}

func TestValidateHistoryReportsEntry(t *testing.T) {
	_, err := ValidateHistory([]HistoryEntry{
		{Guess: "crane", Feedback: "bbbbb"},
		{Guess: "slate", Feedback: "bbbb"},
	}, 5)
	var lenErr *LengthError
	if !errors.As(err, &lenErr) {
		t.Fatalf("expected *LengthError, got %v", err)
	}
	if lenErr.Entry != 1 || lenErr.Field != "feedback" || lenErr.Actual != 4 {
		t.Fatalf("unexpected error details: %+v", lenErr)
	}
	if want := "history entry 2: feedback length is 4, expected 5"; err.Error() != want {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestValidateHistoryEmpty(t *testing.T) {
	records, err := ValidateHistory(nil, 5)
	if err != nil || len(records) != 0 {
		t.Fatalf("empty history: %v %v", records, err)
	}
	if _, err := ValidateHistory(nil, 0); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}

func TestParseFeedback(t *testing.T) {
	for r, want := range map[rune]Feedback{'g': Correct, 'Y': Present, 'b': Absent} {
		got, ok := ParseFeedback(r)
		if !ok || got != want {
			t.Fatalf("%q: expected %v, got %v (%v)", r, want, got, ok)
		}
	}
	if _, ok := ParseFeedback('x'); ok {
		t.Fatalf("x should not parse")
	}
}
