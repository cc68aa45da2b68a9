package game

import (
	"fmt"
	"math"
	"time"

	"github.com/Lcyanstars/Cordle/internal/snippet"
	"github.com/Lcyanstars/Cordle/internal/stats"
)

var playHint = fmt.Sprintf("Enter your guesses(>= %d chars), or end the game by entering E, or get an auto guess by entering A", snippet.MinGuessLen)

func winLose(won bool) string {
	if won {
		return "Win"
	}
	return "Lose"
}

// ---------------------------- guess limited --------------------------------

const (
	guessLimitMin     = 30
	guessLimitDivisor = 3
	guessLimitBonus   = 5
	revealEveryGuess  = 5
)

// GuessLimited ends the game after a fixed number of guesses and reveals
// one random character every fifth guess.
type GuessLimited struct {
	MaxGuesses int
}

// NewGuessLimited returns a guess-limited policy.
func NewGuessLimited() *GuessLimited { return &GuessLimited{} }

func (m *GuessLimited) Kind() stats.Mode { return stats.GuessLimited }

// Begin sets MaxGuesses to max(total/3+5, 30).
func (m *GuessLimited) Begin(total int, _ time.Time) {
	m.MaxGuesses = max(total/guessLimitDivisor+guessLimitBonus, guessLimitMin)
}

func (m *GuessLimited) AssistsAfterGuess(guesses int, _ time.Time) int {
	if guesses%revealEveryGuess == 0 {
		return 1
	}
	return 0
}

func (m *GuessLimited) AssistsOnPoll(time.Time) int { return 0 }

func (m *GuessLimited) Over(guesses int, _ time.Time) bool { return guesses >= m.MaxGuesses }

func (m *GuessLimited) Status(v View, _ time.Time) string {
	return fmt.Sprintf("Guesses: %d/%d", v.Guesses, m.MaxGuesses)
}

func (m *GuessLimited) Outcome(v View, won bool, _ time.Time) Outcome {
	o := Outcome{
		Summary: fmt.Sprintf("guesses: %d/%d %s", v.Guesses, m.MaxGuesses, winLose(won)),
		Won:     won,
	}
	if won {
		o.Value = 1
		o.Message = fmt.Sprintf("You win! You only used %d guesses!", v.Guesses)
	} else {
		o.Message = fmt.Sprintf("You lose. You have used %d guesses.", v.Guesses)
	}
	return o
}

func (m *GuessLimited) Hints() []string { return []string{playHint} }

// ----------------------------- time attack ---------------------------------

const (
	timeLimitMinSeconds = 60
	timeLimitDivisor    = 1.5
	timeLimitBonus      = 10
	revealInterval      = 10 * time.Second
)

// TimeAttack ends the game when the time limit elapses and reveals one
// random character per elapsed interval. Reveals are computed lazily: a
// late poll catches up on every interval that passed since the last one.
type TimeAttack struct {
	MaxSeconds int
	Interval   time.Duration

	start      time.Time
	lastReveal time.Time
}

// NewTimeAttack returns a time-attack policy with the default reveal interval.
func NewTimeAttack() *TimeAttack { return &TimeAttack{Interval: revealInterval} }

func (m *TimeAttack) Kind() stats.Mode { return stats.TimeAttack }

// Begin sets MaxSeconds to max(total/1.5+10, 60) and starts the clocks.
func (m *TimeAttack) Begin(total int, now time.Time) {
	m.MaxSeconds = int(math.Max(float64(total)/timeLimitDivisor+timeLimitBonus, timeLimitMinSeconds))
	if m.Interval <= 0 {
		m.Interval = revealInterval
	}
	m.start = now
	m.lastReveal = now
}

func (m *TimeAttack) AssistsAfterGuess(_ int, now time.Time) int { return m.AssistsOnPoll(now) }

// AssistsOnPoll returns the number of whole intervals since the last reveal
// and advances the reveal clock by exactly that many intervals.
func (m *TimeAttack) AssistsOnPoll(now time.Time) int {
	n := int(now.Sub(m.lastReveal) / m.Interval)
	if n <= 0 {
		return 0
	}
	m.lastReveal = m.lastReveal.Add(time.Duration(n) * m.Interval)
	return n
}

// Elapsed returns whole seconds since Begin.
func (m *TimeAttack) Elapsed(now time.Time) int {
	return int(now.Sub(m.start) / time.Second)
}

func (m *TimeAttack) Over(_ int, now time.Time) bool { return m.Elapsed(now) >= m.MaxSeconds }

func (m *TimeAttack) Status(_ View, now time.Time) string {
	return fmt.Sprintf("Time: %ds/%ds", m.Elapsed(now), m.MaxSeconds)
}

func (m *TimeAttack) Outcome(_ View, won bool, now time.Time) Outcome {
	elapsed := m.Elapsed(now)
	o := Outcome{
		Summary: fmt.Sprintf("time: %ds/%ds %s", elapsed, m.MaxSeconds, winLose(won)),
		Won:     won,
	}
	if won {
		o.Value = 1
		o.Message = fmt.Sprintf("You win! You only used %d seconds!", elapsed)
	} else {
		o.Message = fmt.Sprintf("You lose. You have used %d seconds.", elapsed)
	}
	return o
}

func (m *TimeAttack) Hints() []string { return []string{playHint} }

// -------------------------------- point ------------------------------------

const (
	showIDPenalty = 0.5
	fuzzyPenalty  = 0.8
)

// PointParams are the point-mode scoring coefficients.
type PointParams struct {
	GuessPenalty float64 // subtracted per guess, > 0
	PointFactor  float64 // scales guessed²/total, > 0
	RewardFactor float64 // multiplier on full completion, >= 1.0
}

// DefaultPointParams returns the stock coefficients.
func DefaultPointParams() PointParams {
	return PointParams{GuessPenalty: 100, PointFactor: 500, RewardFactor: 1.5}
}

// Validate reports coefficient errors wrapped in ErrInvalidConfig.
func (p PointParams) Validate() error {
	switch {
	case !(p.GuessPenalty > 0):
		return fmt.Errorf("%w: guess penalty must be positive, got %v", ErrInvalidConfig, p.GuessPenalty)
	case !(p.PointFactor > 0):
		return fmt.Errorf("%w: point factor must be positive, got %v", ErrInvalidConfig, p.PointFactor)
	case !(p.RewardFactor >= 1.0):
		return fmt.Errorf("%w: reward factor must be at least 1.0, got %v", ErrInvalidConfig, p.RewardFactor)
	}
	return nil
}

// Point never ends on its own; the score trades guessed characters against
// guesses used and assistance enabled.
type Point struct {
	Params PointParams
}

// NewPoint validates p and returns a point policy.
func NewPoint(p PointParams) (*Point, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Point{Params: p}, nil
}

func (m *Point) Kind() stats.Mode { return stats.Point }

func (m *Point) Begin(int, time.Time) {}

func (m *Point) AssistsAfterGuess(int, time.Time) int { return 0 }

func (m *Point) AssistsOnPoll(time.Time) int { return 0 }

func (m *Point) Over(int, time.Time) bool { return false }

// Score computes pointFactor·guessed²/total − guessPenalty·guesses, halved
// when the identifier is shown, scaled by 0.8 with fuzzy matching on and
// multiplied by the reward factor on full completion.
func (m *Point) Score(v View) float64 {
	var points float64
	if v.Total > 0 {
		g := float64(v.Guessed)
		points = m.Params.PointFactor * g * g / float64(v.Total)
	}
	points -= m.Params.GuessPenalty * float64(v.Guesses)
	if v.ShowID {
		points *= showIDPenalty
	}
	if v.Fuzzy {
		points *= fuzzyPenalty
	}
	if v.Total > 0 && v.Guessed == v.Total {
		points *= m.Params.RewardFactor
	}
	return points
}

func (m *Point) Status(v View, _ time.Time) string {
	return fmt.Sprintf("Points: %.2f", m.Score(v))
}

// Outcome always records a win; point mode has no losing condition.
func (m *Point) Outcome(v View, _ bool, _ time.Time) Outcome {
	points := m.Score(v)
	return Outcome{
		Summary: fmt.Sprintf("points: %.2f %s", points, winLose(true)),
		Value:   points,
		Won:     true,
		Message: fmt.Sprintf("You achieved %.2f points!", points),
	}
}

func (m *Point) Hints() []string {
	return []string{
		"Enter P to show the problem ID, or F to enable fuzzy match",
		"The game will be easier, but you will get LESS points",
		fmt.Sprintf("Enter your guesses(>= %d chars), or end the game by entering E", snippet.MinGuessLen),
	}
}
