// internal/stats/types.go
//
// Statistics collaborator types.
// Defines:
//   - Mode:    the game variant a record belongs to.
//   - Record:  one immutable history entry for a finished session.
//   - Summary: aggregate counters over all recorded sessions.
//   - Store:   persistence interface (SQLite and in-memory implementations).

package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Mode identifies a game variant.
type Mode string

const (
	GuessLimited Mode = "guessLimited"
	TimeAttack   Mode = "timeAttack"
	Point        Mode = "point"
)

// Label returns the human-readable name shown in history lines.
func (m Mode) Label() string {
	switch m {
	case GuessLimited:
		return "Limited Guesses"
	case TimeAttack:
		return "Time Attack"
	case Point:
		return "Point"
	default:
		return string(m)
	}
}

// Record is one finished session. Outcome is 1/0 for win/loss modes and
// the point value for point mode.
type Record struct {
	ID        string
	Time      time.Time
	Mode      Mode
	SnippetID string
	Summary   string
	Outcome   float64
	Won       bool
}

// Summary aggregates every recorded session.
type Summary struct {
	TotalGames        int
	GuessLimitedGames int
	GuessLimitedWins  int
	TimeAttackGames   int
	TimeAttackWins    int
	PointGames        int
	TotalPoints       decimal.Decimal
}

// Add folds one record into the counters.
func (s *Summary) Add(r Record) {
	s.TotalGames++
	switch r.Mode {
	case GuessLimited:
		s.GuessLimitedGames++
		if r.Won {
			s.GuessLimitedWins++
		}
	case TimeAttack:
		s.TimeAttackGames++
		if r.Won {
			s.TimeAttackWins++
		}
	case Point:
		s.PointGames++
		s.TotalPoints = s.TotalPoints.Add(decimal.NewFromFloat(r.Outcome))
	}
}

// AveragePoints returns TotalPoints / PointGames, or zero with no point games.
func (s Summary) AveragePoints() decimal.Decimal {
	if s.PointGames == 0 {
		return decimal.Zero
	}
	return s.TotalPoints.Div(decimal.NewFromInt(int64(s.PointGames)))
}

// Lines renders the statistics page header.
func (s Summary) Lines() []string {
	return []string{
		fmt.Sprintf("Total Games: %d", s.TotalGames),
		fmt.Sprintf("Guess Limited Games: %d/%d", s.GuessLimitedWins, s.GuessLimitedGames),
		fmt.Sprintf("Time Attack Games: %d/%d", s.TimeAttackWins, s.TimeAttackGames),
		fmt.Sprintf("Point Games: %d", s.PointGames),
		"Average Points: " + s.AveragePoints().StringFixed(2),
		"Total Points: " + s.TotalPoints.StringFixed(2),
	}
}

// Store persists history records and aggregate counters.
type Store interface {
	// Record appends a finished session.
	Record(ctx context.Context, r Record) error

	// Summary returns the aggregate counters.
	Summary(ctx context.Context) (Summary, error)

	// History returns up to limit records, newest first. limit <= 0 means all.
	History(ctx context.Context, limit int) ([]Record, error)

	Close() error
}
