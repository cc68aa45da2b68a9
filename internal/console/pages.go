package console

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/Lcyanstars/Cordle/internal/snippet"
	"github.com/Lcyanstars/Cordle/internal/stats"
)

var rules = []string{
	"Code Wordle",
	"",
	"You will be given a random code snippet.",
	"Initially, all characters are hidden.",
	"All you can see is the shape of the code snippet.",
	"",
	"Your goal is to guess out the code snippet.",
	fmt.Sprintf("To achieve this, you can enter a substring of the code snippet length >= %d.", snippet.MinGuessLen),
	"Then the matching characters will be revealed.",
	"",
	"There's also fuzzy match",
	"If there's a substring of the code snippet that only differs by 1 character",
	"The substring will change to fuzzy match characters!",
	"",
	"There are 3 game modes:",
	"Limited Guesses: Use less guesses as possible, to reduce the difficulty, reveal one character every 5 guesses",
	"Time Attack: Use less time as possible, to reduce the difficulty, reveal one character every 10 seconds",
	"Point: The score will be calculated based on the guesses. Notably, the fuzzy match and the problem ID showing is disabled initially.",
	"You can enable them but the score will be reduced.",
}

func (c *Console) rulePage() {
	c.clear()
	c.println(rules...)
	c.pause()
}

func (c *Console) statsPage(ctx context.Context) {
	c.clear()

	sum, err := c.stats.Summary(ctx)
	if err != nil {
		log.Error().Err(err).Msg("load summary")
		c.println(fmt.Sprintf("Could not load statistics: %v", err))
		c.pause()
		return
	}
	c.println(sum.Lines()...)
	c.println("", "==========Game History==========", "")

	hist, err := c.stats.History(ctx, c.opts.HistoryLimit)
	if err != nil {
		log.Error().Err(err).Msg("load history")
		c.println(fmt.Sprintf("Could not load history: %v", err))
	}
	c.println(lo.Map(hist, func(r stats.Record, _ int) string { return stats.FormatLine(r) })...)
	c.pause()
}
