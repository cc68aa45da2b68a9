// internal/game/types.go
//
// Core type definitions for game sessions.
// Defines:
//   - Mode:    the per-variant policy (limits, assist cadence, scoring).
//   - View:    the read-only numbers a Mode needs from its session.
//   - Outcome: what a Mode reports when a session ends.
//   - Source/Sink: the snippet repository and history collaborators.

package game

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/Lcyanstars/Cordle/internal/stats"
)

// Lifecycle states and events of a Session.
const (
	StateNotStarted = "not_started"
	StateInProgress = "in_progress"
	StateWon        = "won"
	StateLost       = "lost"

	eventStart = "start"
	eventWin   = "win"
	eventLose  = "lose"
)

// Control tokens consumed by Submit before matching.
const (
	TokenShowID = "P"
	TokenFuzzy  = "F"
)

var (
	// ErrInvalidConfig marks invalid mode parameters. It is returned at
	// construction and never clamped.
	ErrInvalidConfig = errors.New("game: invalid configuration")

	// ErrNotInProgress is returned when a turn or terminal action is
	// attempted outside the in_progress state.
	ErrNotInProgress = errors.New("game: session not in progress")
)

// View is the session data a Mode reads when deciding limits and scores.
type View struct {
	Guesses int
	Total   int // non-blank characters in the snippet
	Guessed int // characters exactly matched
	Fuzzy   bool
	ShowID  bool
}

// Outcome is reported by a Mode when the session ends.
type Outcome struct {
	Summary string  // history summary, e.g. "guesses: 12/30 Win"
	Value   float64 // 1/0 for win/loss modes, points for point mode
	Won     bool    // win flag written to history
	Message string  // user-facing closing line
}

// Mode is the policy of one game variant. A Mode instance belongs to a
// single session; time-based modes keep their clocks on the instance.
type Mode interface {
	Kind() stats.Mode

	// Begin initializes limits once the snippet is loaded.
	Begin(total int, now time.Time)

	// AssistsAfterGuess returns how many random reveals are due after a
	// guess has been counted.
	AssistsAfterGuess(guesses int, now time.Time) int

	// AssistsOnPoll returns how many random reveals are due when the
	// driver polls without a guess.
	AssistsOnPoll(now time.Time) int

	// Over reports whether the mode's limit has been reached.
	Over(guesses int, now time.Time) bool

	// Status returns the mode's status line.
	Status(v View, now time.Time) string

	// Outcome builds the closing summary. won is true when the snippet was completed.
	Outcome(v View, won bool, now time.Time) Outcome

	// Hints returns prompt lines shown under the masked snippet.
	Hints() []string
}

// Source supplies snippets. Random fails when no snippet is available.
type Source interface {
	Random(rng *rand.Rand) (string, error)
	Load(id string) ([]string, error)
}

// Sink receives exactly one history record per finished session.
type Sink interface {
	Record(ctx context.Context, r stats.Record) error
}
