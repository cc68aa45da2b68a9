// internal/snippet/engine.go
//
// Reveal grid and matching engine for a single code snippet.
// Responsibilities:
//   - Normalize raw lines (tab expansion, right padding) for the grid.
//   - Resolve guesses window by window with exact and fuzzy semantics.
//   - Answer aggregate queries (total, guessed, complete).
//   - Reveal one random unsolved position for difficulty assists.
//   - Render the masked view shown to the player.
//
// Notes:
//   - Matching is aligned-window based, not a substring search; a window
//     is every run of len(guess) characters inside one padded line.
//   - Reveal state never regresses: exact stays exact, fuzzy only upgrades.
package snippet

import (
	"math/rand"
	"strings"
)

// Normalize expands tabs to TabWidth spaces and right-pads the line with
// MinGuessLen-1 blanks so every real character can end a full guess window.
func Normalize(line string) string {
	line = strings.TrimRight(line, "\r\n")
	line = strings.ReplaceAll(line, "\t", strings.Repeat(" ", TabWidth))
	return line + strings.Repeat(" ", MinGuessLen-1)
}

// New builds a snippet over already normalized lines. All positions start Unguessed.
func New(lines []string) *Snippet {
	s := &Snippet{
		lines: make([][]rune, len(lines)),
		state: make([][]State, len(lines)),
	}
	for i, l := range lines {
		s.lines[i] = []rune(l)
		s.state[i] = make([]State, len(s.lines[i]))
	}
	return s
}

// StateAt returns the reveal state of line i, column j.
// Out-of-range positions report Unguessed.
func (s *Snippet) StateAt(i, j int) State {
	if i < 0 || i >= len(s.state) || j < 0 || j >= len(s.state[i]) {
		return Unguessed
	}
	return s.state[i][j]
}

// Total returns the number of non-blank positions.
func (s *Snippet) Total() int {
	total := 0
	for _, line := range s.lines {
		for _, c := range line {
			if c != blank {
				total++
			}
		}
	}
	return total
}

// Guessed returns the number of non-blank positions that are ExactMatched.
func (s *Snippet) Guessed() int {
	guessed := 0
	for i, line := range s.lines {
		for j, c := range line {
			if c != blank && s.state[i][j] == ExactMatched {
				guessed++
			}
		}
	}
	return guessed
}

// Complete reports whether every non-blank position is ExactMatched.
func (s *Snippet) Complete() bool {
	for i, line := range s.lines {
		for j, c := range line {
			if c != blank && s.state[i][j] != ExactMatched {
				return false
			}
		}
	}
	return true
}

// RevealRandom picks one non-blank position that is not yet ExactMatched,
// uniformly from the current candidates, and marks it ExactMatched.
// Returns false when nothing is left to reveal.
func (s *Snippet) RevealRandom(rng *rand.Rand) bool {
	var candidates [][2]int
	for i, line := range s.lines {
		for j, c := range line {
			if c != blank && s.state[i][j] != ExactMatched {
				candidates = append(candidates, [2]int{i, j})
			}
		}
	}
	if len(candidates) == 0 {
		return false
	}
	pos := candidates[rng.Intn(len(candidates))]
	s.state[pos[0]][pos[1]] = ExactMatched
	return true
}

// Guess resolves one guess against every window of every line.
//
// Rules:
//   - len(guess) < MinGuessLen → Result{NotApplicable, NotApplicable}, no mutation.
//   - A window equal to the guess counts as exact and marks its positions ExactMatched.
//   - Otherwise, with fuzzy enabled, a window differing in at most one character
//     counts as fuzzy when the guess has at least two non-blank characters; its
//     Unguessed positions become FuzzyMatched.
//   - A guess made only of blanks matches nothing.
func (s *Snippet) Guess(guess string, fuzzy bool) Result {
	g := []rune(guess)
	n := len(g)
	if n < MinGuessLen {
		return Result{Exact: NotApplicable, Fuzzy: NotApplicable}
	}

	var res Result
	if !fuzzy {
		res.Fuzzy = NotApplicable
	}

	significant := 0
	for _, c := range g {
		if c != blank {
			significant++
		}
	}
	if significant == 0 {
		return res
	}

	for i, line := range s.lines {
		for j := 0; j+n <= len(line); j++ {
			fail := mismatches(line[j:j+n], g, fuzzyMaxFail+1)
			if fail == 0 {
				res.Exact++
				for k := 0; k < n; k++ {
					s.state[i][j+k] = ExactMatched
				}
				continue
			}
			if !fuzzy {
				continue
			}
			if fail <= fuzzyMaxFail && significant >= fuzzyMinSignificant {
				res.Fuzzy++
				for k := 0; k < n; k++ {
					if s.state[i][j+k] == Unguessed {
						s.state[i][j+k] = FuzzyMatched
					}
				}
			}
		}
	}
	return res
}

// mismatches counts differing positions between window and guess,
// stopping early once limit is reached.
func mismatches(window, guess []rune, limit int) int {
	fail := 0
	for k := range guess {
		if window[k] != guess[k] {
			fail++
			if fail >= limit {
				return fail
			}
		}
	}
	return fail
}

// Masked renders the snippet for display. Blanks pass through, exact
// positions show the real character, fuzzy positions show fuzzyPlaceholder
// and unguessed positions show placeholder.
func (s *Snippet) Masked(placeholder, fuzzyPlaceholder rune) []string {
	out := make([]string, len(s.lines))
	var b strings.Builder
	for i, line := range s.lines {
		b.Reset()
		for j, c := range line {
			switch {
			case c == blank || s.state[i][j] == ExactMatched:
				b.WriteRune(c)
			case s.state[i][j] == FuzzyMatched:
				b.WriteRune(fuzzyPlaceholder)
			default:
				b.WriteRune(placeholder)
			}
		}
		out[i] = b.String()
	}
	return out
}
