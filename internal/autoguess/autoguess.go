// Package autoguess suggests guesses for a player who asks for help.
//
// Suggestions walk a fixed list of common C++ fragments in order, skipping
// any fragment already visible in the masked view. Once the list is used
// up, suggestions are random strings over a fixed alphabet.
package autoguess

import (
	"math/rand"
	"strings"

	"github.com/samber/lo"
)

// Alphabet is the character set used for random suggestions.
const Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789_^(){};%=<>+-*&|\""

// Length is the length of a random suggestion.
const Length = 3

// Keywords are tried in order before falling back to random suggestions.
var Keywords = []string{
	"int", "for", "if(", "els", "ret", "urn", "cla", "ass", "nam", "esp",
	"#in", "ude", "std", "siz", "lon", "eof", "nul", "ptr", "new", "del",
	"ete", "whi", "ile", "con", "st ", "cou", "t<<", "cin", ">> ", "%d ",
	"sca", "pri", "ntf", "<<\"", "\"<<",
}

// Guesser hands out suggestions for one game. It is not safe for concurrent use.
type Guesser struct {
	rng  *rand.Rand
	next int
}

// New returns a Guesser drawing random suggestions from rng.
func New(rng *rand.Rand) *Guesser {
	return &Guesser{rng: rng}
}

// Guess returns the next suggestion for the given masked view.
func (g *Guesser) Guess(masked []string) string {
	for g.next < len(Keywords) {
		kw := Keywords[g.next]
		g.next++
		visible := lo.SomeBy(masked, func(line string) bool {
			return strings.Contains(line, kw)
		})
		if !visible {
			return kw
		}
	}
	return g.random()
}

// Remaining returns how many keywords have not been offered or skipped yet.
func (g *Guesser) Remaining() int { return len(Keywords) - g.next }

func (g *Guesser) random() string {
	b := make([]byte, Length)
	for i := range b {
		b[i] = Alphabet[g.rng.Intn(len(Alphabet))]
	}
	return string(b)
}
