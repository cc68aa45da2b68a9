// internal/snippet/types.go
//
// Core type definitions for the reveal grid and matching engine.
// Defines:
//   - State:   per-character reveal state (unguessed/fuzzy/exact).
//   - Result:  outcome of resolving one guess (exact and fuzzy window counts).
//   - Snippet: a padded multi-line text buffer plus its parallel reveal grid.

package snippet

import "errors"

// MinGuessLen is the shortest guess the engine will resolve.
const MinGuessLen = 3

// TabWidth is the number of spaces a tab expands to when a line is normalized.
const TabWidth = 4

const (
	blank = ' '

	fuzzyMaxFail        = 1 // at most this many differing characters per window
	fuzzyMinSignificant = 2 // at least this many non-blank characters in the guess
)

// ErrNoGuessable is returned when a snippet contains no non-blank characters.
var ErrNoGuessable = errors.New("snippet: no guessable characters")

// State is the reveal state of a single character position.
type State uint8

const (
	Unguessed State = iota
	FuzzyMatched
	ExactMatched
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case Unguessed:
		return "unguessed"
	case FuzzyMatched:
		return "fuzzy"
	case ExactMatched:
		return "exact"
	default:
		return "unknown"
	}
}

// NotApplicable marks a Result field that carries no count: Exact for a
// too-short guess, Fuzzy when fuzzy matching was disabled.
const NotApplicable = -1

// Result holds the number of exact and fuzzy window matches for one guess.
type Result struct {
	Exact int
	Fuzzy int
}

// TooShort reports whether the guess was rejected for being shorter than MinGuessLen.
func (r Result) TooShort() bool { return r.Exact == NotApplicable }

// FuzzyEnabled reports whether fuzzy matching was evaluated for the guess.
func (r Result) FuzzyEnabled() bool { return r.Fuzzy != NotApplicable }

// Snippet holds the hidden text and the reveal state of every position.
// lines and state are parallel: state[i][j] describes lines[i][j].
type Snippet struct {
	lines [][]rune
	state [][]State
}
