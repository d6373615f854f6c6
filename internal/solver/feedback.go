// Package solver computes next-guess recommendations for Wordle-style puzzles.
package solver

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Feedback is the per-letter response to a guess.
type Feedback byte

// Feedback symbols, spelled the way they are typed on the command line.
const (
	Correct Feedback = 'g'
	Present Feedback = 'y'
	Absent  Feedback = 'b'
)

var (
	// ErrLengthMismatch reports a guess or feedback of the wrong length.
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrInvalidFeedback reports an unrecognized feedback symbol.
	ErrInvalidFeedback = errors.New("invalid feedback symbol")
	// ErrInvalidLength reports a non-positive word length.
	ErrInvalidLength = errors.New("word length must be > 0")
)

// LengthError describes a history entry whose guess or feedback has the wrong length.
type LengthError struct {
	Entry    int
	Field    string
	Expected int
	Actual   int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("history entry %d: %s length is %d, expected %d", e.Entry+1, e.Field, e.Actual, e.Expected)
}

// Is lets errors.Is match ErrLengthMismatch.
func (e *LengthError) Is(target error) bool {
	return target == ErrLengthMismatch
}

// FeedbackError describes an unrecognized feedback character.
type FeedbackError struct {
	Entry int
	Index int
	Char  rune
}

func (e *FeedbackError) Error() string {
	return fmt.Sprintf("history entry %d: unexpected feedback %q at index %d (use g, y or b)", e.Entry+1, e.Char, e.Index)
}

// Is lets errors.Is match ErrInvalidFeedback.
func (e *FeedbackError) Is(target error) bool {
	return target == ErrInvalidFeedback
}

// ParseFeedback maps a typed character to a Feedback symbol.
func ParseFeedback(r rune) (Feedback, bool) {
	switch r {
	case 'g', 'G':
		return Correct, true
	case 'y', 'Y':
		return Present, true
	case 'b', 'B':
		return Absent, true
	default:
		return 0, false
	}
}

// String returns the single-character form of the symbol.
func (f Feedback) String() string {
	return string(rune(f))
}

// Mark pairs a guessed letter with its feedback.
type Mark struct {
	Letter   rune
	Feedback Feedback
}

// HistoryEntry is a raw guess/feedback pair as supplied by a caller.
type HistoryEntry struct {
	Guess    string `json:"guess" msgpack:"guess"`
	Feedback string `json:"feedback" msgpack:"feedback"`
}

// GuessRecord is a validated guess with position-aligned feedback.
type GuessRecord struct {
	Guess    string
	Feedback []Feedback
}

// NewGuessRecord validates a guess and its feedback string against the word length.
func NewGuessRecord(guess, feedback string, length int) (GuessRecord, error) {
	return newGuessRecord(0, guess, feedback, length)
}

func newGuessRecord(entry int, guess, feedback string, length int) (GuessRecord, error) {
	guess = strings.ToLower(guess)
	if n := utf8.RuneCountInString(guess); n != length {
		return GuessRecord{}, &LengthError{Entry: entry, Field: "guess", Expected: length, Actual: n}
	}
	if n := utf8.RuneCountInString(feedback); n != length {
		return GuessRecord{}, &LengthError{Entry: entry, Field: "feedback", Expected: length, Actual: n}
	}
	symbols := make([]Feedback, 0, length)
	idx := 0
	for _, r := range feedback {
		fb, ok := ParseFeedback(r)
		if !ok {
			return GuessRecord{}, &FeedbackError{Entry: entry, Index: idx, Char: r}
		}
		symbols = append(symbols, fb)
		idx++
	}
	return GuessRecord{Guess: guess, Feedback: symbols}, nil
}

// Marks returns the guess letters paired with their feedback.
func (g GuessRecord) Marks() []Mark {
	marks := make([]Mark, 0, len(g.Feedback))
	i := 0
	for _, r := range g.Guess {
		if i >= len(g.Feedback) {
			break
		}
		marks = append(marks, Mark{Letter: r, Feedback: g.Feedback[i]})
		i++
	}
	return marks
}

// Solved reports whether every position is Correct.
func (g GuessRecord) Solved() bool {
	if len(g.Feedback) == 0 {
		return false
	}
	for _, fb := range g.Feedback {
		if fb != Correct {
			return false
		}
	}
	return true
}

// FeedbackString renders the feedback back to its typed form.
func (g GuessRecord) FeedbackString() string {
	var b strings.Builder
	for _, fb := range g.Feedback {
		b.WriteByte(byte(fb))
	}
	return b.String()
}

// ValidateHistory converts raw entries into guess records, failing on the first bad entry.
func ValidateHistory(history []HistoryEntry, length int) ([]GuessRecord, error) {
	if length <= 0 {
		return nil, ErrInvalidLength
	}
	records := make([]GuessRecord, 0, len(history))
	for i, entry := range history {
		rec, err := newGuessRecord(i, entry.Guess, entry.Feedback, length)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
