package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Lcyanstars/Cordle/internal/autoguess"
	"github.com/Lcyanstars/Cordle/internal/game"
	"github.com/Lcyanstars/Cordle/internal/repo"
)

// Turn inputs handled by the driver rather than the session.
const (
	inputResign = "E"
	inputAuto   = "A"
)

// newMode maps a menu selection to a mode and its starting assists.
func (c *Console) newMode(op rune) (mode game.Mode, assisted bool, err error) {
	switch op {
	case 'G':
		return game.NewGuessLimited(), true, nil
	case 'T':
		return game.NewTimeAttack(), true, nil
	case 'P':
		m, err := game.NewPoint(c.opts.Point)
		return m, false, err
	}
	return nil, false, nil
}

func (c *Console) playPage(ctx context.Context) {
	c.clear()
	c.println("Game Mode:", "Limited Guesses(G)", "Time Attack(T)", "Point(P)")

	op, ok := c.readOp()
	if !ok {
		return
	}
	mode, assisted, err := c.newMode(op)
	if err != nil {
		c.println(fmt.Sprintf("Invalid game settings: %v", err))
		c.pause()
		return
	}
	if mode == nil {
		return
	}

	rng := c.opts.Rand
	if rng == nil {
		rng = game.SharedRand()
	}
	sess := game.New(mode, c.repo, c.stats, game.Options{
		Fuzzy:  assisted,
		ShowID: assisted,
		Rand:   rng,
		Now:    c.opts.Now,
	})
	if err := sess.Start(ctx); err != nil {
		if errors.Is(err, repo.ErrEmpty) {
			c.println("There's no codesnippets")
		} else {
			log.Error().Err(err).Msg("start game")
			c.println(fmt.Sprintf("Could not start the game: %v", err))
		}
		c.pause()
		return
	}

	c.gameLoop(ctx, sess, autoguess.New(rng))
}

func (c *Console) gameLoop(ctx context.Context, sess *game.Session, ag *autoguess.Guesser) {
	var msgs []string
	for {
		c.clear()
		c.println(c.display(sess)...)
		c.println(msgs...)

		if sess.IsOver() {
			c.end(ctx, sess, false)
			return
		}
		if sess.IsFinished() {
			c.end(ctx, sess, true)
			return
		}

		guess, ok := c.readLine()
		if !ok {
			c.end(ctx, sess, false)
			return
		}
		switch guess {
		case inputResign:
			c.end(ctx, sess, false)
			return
		case inputAuto:
			msgs = []string{ag.Guess(sess.Masked(c.opts.Placeholder, c.opts.FuzzyPlaceholder))}
			continue
		}

		out, err := sess.Submit(guess)
		if err != nil {
			log.Error().Err(err).Msg("submit guess")
			return
		}
		msgs = out
	}
}

// display renders status, optional problem link, masked snippet and hints.
func (c *Console) display(sess *game.Session) []string {
	lines := sess.Status()
	if sess.ShowID() {
		lines = append(lines, "Problem: "+fmt.Sprintf(c.opts.ProblemURL, sess.SnippetID()))
	}
	lines = append(lines, sess.Masked(c.opts.Placeholder, c.opts.FuzzyPlaceholder)...)
	return append(lines, sess.Mode().Hints()...)
}

func (c *Console) end(ctx context.Context, sess *game.Session, won bool) {
	var (
		msg string
		err error
	)
	if won {
		msg, err = sess.Win(ctx)
	} else {
		msg, err = sess.Resign(ctx)
	}
	if err != nil {
		log.Error().Err(err).Msg("end game")
		return
	}
	c.println(msg)
	c.pause()
}
