// internal/game/session.go
//
// Session drives one game from start to a single history record.
// Responsibilities:
//   - Draw and load a snippet, then hand limits to the Mode.
//   - Consume control tokens (show identifier, enable fuzzy) before matching.
//   - Resolve guesses, count turns and apply the Mode's assist reveals.
//   - Poll termination lazily against the injected clock.
//   - Emit exactly one history record on win or loss.
//
// State transitions (looplab/fsm):
//   not_started --start--> in_progress --win--> won
//                                      --lose-> lost
// Terminal states accept no events, which is what keeps the history
// record from being written twice.

package game

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/rs/zerolog/log"

	"github.com/Lcyanstars/Cordle/internal/snippet"
	"github.com/Lcyanstars/Cordle/internal/stats"
)

// Options configures a Session. Rand and Now default to a process-wide
// generator and time.Now.
type Options struct {
	Fuzzy  bool // fuzzy matching enabled at start
	ShowID bool // snippet identifier visible at start
	Rand   *rand.Rand
	Now    func() time.Time
}

var (
	sharedRandOnce sync.Once
	sharedRand     *rand.Rand
)

// SharedRand returns the process-wide generator used when Options.Rand is nil.
// It is seeded once and not safe for concurrent use.
func SharedRand() *rand.Rand {
	sharedRandOnce.Do(func() {
		sharedRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	})
	return sharedRand
}

// Session is one single-player game.
type Session struct {
	id   string
	mode Mode
	src  Source
	sink Sink
	rng  *rand.Rand
	now  func() time.Time
	fsm  *fsm.FSM

	snip      *snippet.Snippet
	snippetID string
	total     int
	guesses   int
	fuzzy     bool
	showID    bool
}

// New constructs a Session in the not_started state.
func New(mode Mode, src Source, sink Sink, opts Options) *Session {
	s := &Session{
		id:     uuid.NewString(),
		mode:   mode,
		src:    src,
		sink:   sink,
		rng:    opts.Rand,
		now:    opts.Now,
		fuzzy:  opts.Fuzzy,
		showID: opts.ShowID,
	}
	if s.rng == nil {
		s.rng = SharedRand()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.fsm = fsm.NewFSM(
		StateNotStarted,
		fsm.Events{
			{Name: eventStart, Src: []string{StateNotStarted}, Dst: StateInProgress},
			{Name: eventWin, Src: []string{StateInProgress}, Dst: StateWon},
			{Name: eventLose, Src: []string{StateInProgress}, Dst: StateLost},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				log.Debug().
					Str("session", s.id).
					Str("mode", string(s.mode.Kind())).
					Str("from", e.Src).
					Str("to", e.Dst).
					Msg("session transition")
			},
		},
	)
	return s
}

// ID returns the session identifier written to history.
func (s *Session) ID() string { return s.id }

// Mode returns the session's policy.
func (s *Session) Mode() Mode { return s.mode }

// State returns the current lifecycle state.
func (s *Session) State() string { return s.fsm.Current() }

// SnippetID returns the identifier of the loaded snippet.
func (s *Session) SnippetID() string { return s.snippetID }

// ShowID reports whether the snippet identifier is visible.
func (s *Session) ShowID() bool { return s.showID }

// Fuzzy reports whether fuzzy matching is enabled.
func (s *Session) Fuzzy() bool { return s.fuzzy }

// Guesses returns the number of counted guesses.
func (s *Session) Guesses() int { return s.guesses }

// Start draws a random snippet, loads it and moves to in_progress.
// Errors from the Source are returned wrapped, so callers can match the
// repository's sentinels; the session stays not_started on any error.
func (s *Session) Start(ctx context.Context) error {
	if !s.fsm.Can(eventStart) {
		return fmt.Errorf("game: start in state %s", s.fsm.Current())
	}
	id, err := s.src.Random(s.rng)
	if err != nil {
		return fmt.Errorf("draw snippet: %w", err)
	}
	lines, err := s.src.Load(id)
	if err != nil {
		return fmt.Errorf("load snippet %s: %w", id, err)
	}
	snip := snippet.New(lines)
	total := snip.Total()
	if total == 0 {
		return fmt.Errorf("load snippet %s: %w", id, snippet.ErrNoGuessable)
	}

	s.snip, s.snippetID, s.total = snip, id, total
	s.mode.Begin(total, s.now())
	if err := s.fsm.Event(ctx, eventStart); err != nil {
		return fmt.Errorf("game: start: %w", err)
	}
	log.Info().
		Str("session", s.id).
		Str("mode", string(s.mode.Kind())).
		Str("snippet", id).
		Int("total", total).
		Msg("game started")
	return nil
}

// Submit handles one line of player input and returns the result messages.
// Control tokens toggle identifier display or fuzzy matching without
// consuming a turn; a too-short guess is rejected without consuming a turn.
func (s *Session) Submit(text string) ([]string, error) {
	if !s.fsm.Is(StateInProgress) {
		return nil, ErrNotInProgress
	}
	if !s.showID && text == TokenShowID {
		s.showID = true
		return []string{"PID showing enabled"}, nil
	}
	if !s.fuzzy && text == TokenFuzzy {
		s.fuzzy = true
		return []string{"Fuzzy match enabled"}, nil
	}

	res := s.snip.Guess(text, s.fuzzy)
	if res.TooShort() {
		return []string{fmt.Sprintf("Guess must be at least %d chars", snippet.MinGuessLen)}, nil
	}
	s.guesses++
	s.reveal(s.mode.AssistsAfterGuess(s.guesses, s.now()))

	msg := fmt.Sprintf("%d matches found", res.Exact)
	if res.FuzzyEnabled() {
		msg += fmt.Sprintf(", %d fuzzy matches found", res.Fuzzy)
	}
	log.Debug().
		Str("session", s.id).
		Int("guesses", s.guesses).
		Int("exact", res.Exact).
		Int("fuzzy", res.Fuzzy).
		Msg("guess resolved")
	return []string{msg + "."}, nil
}

// reveal applies n assist reveals.
func (s *Session) reveal(n int) {
	for i := 0; i < n; i++ {
		if !s.snip.RevealRandom(s.rng) {
			return
		}
	}
}

// poll applies any time-based assists that came due since the last poll.
func (s *Session) poll() {
	if s.fsm.Is(StateInProgress) {
		s.reveal(s.mode.AssistsOnPoll(s.now()))
	}
}

// IsOver reports whether the mode's limit has been reached.
func (s *Session) IsOver() bool {
	if !s.fsm.Is(StateInProgress) {
		return false
	}
	s.poll()
	return s.mode.Over(s.guesses, s.now())
}

// IsFinished reports whether every guessable character is revealed.
func (s *Session) IsFinished() bool {
	return s.snip != nil && s.snip.Complete()
}

// Masked returns the player's view of the snippet.
func (s *Session) Masked(placeholder, fuzzyPlaceholder rune) []string {
	if s.snip == nil {
		return nil
	}
	return s.snip.Masked(placeholder, fuzzyPlaceholder)
}

// Status returns the mode's status line.
func (s *Session) Status() []string {
	s.poll()
	return []string{s.mode.Status(s.view(), s.now())}
}

func (s *Session) view() View {
	v := View{Guesses: s.guesses, Total: s.total, Fuzzy: s.fuzzy, ShowID: s.showID}
	if s.snip != nil {
		v.Guessed = s.snip.Guessed()
	}
	return v
}

// Win ends the session as won and records it.
func (s *Session) Win(ctx context.Context) (string, error) { return s.finish(ctx, true) }

// Resign ends the session as lost and records it. Timeouts and exhausted
// guesses route here too.
func (s *Session) Resign(ctx context.Context) (string, error) { return s.finish(ctx, false) }

func (s *Session) finish(ctx context.Context, won bool) (string, error) {
	event := eventLose
	if won {
		event = eventWin
	}
	if err := s.fsm.Event(ctx, event); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotInProgress, err)
	}

	now := s.now()
	out := s.mode.Outcome(s.view(), won, now)
	rec := stats.Record{
		ID:        s.id,
		Time:      now,
		Mode:      s.mode.Kind(),
		SnippetID: s.snippetID,
		Summary:   out.Summary,
		Outcome:   out.Value,
		Won:       out.Won,
	}
	if s.sink != nil {
		if err := s.sink.Record(ctx, rec); err != nil {
			log.Warn().Err(err).Str("session", s.id).Msg("record history")
		}
	}
	log.Info().
		Str("session", s.id).
		Str("mode", string(rec.Mode)).
		Str("snippet", rec.SnippetID).
		Int("guesses", s.guesses).
		Str("summary", rec.Summary).
		Msg("game finished")
	return out.Message, nil
}
