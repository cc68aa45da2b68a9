package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/Lcyanstars/Cordle/internal/config"
	"github.com/Lcyanstars/Cordle/internal/console"
	"github.com/Lcyanstars/Cordle/internal/repo"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	closeLog, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cordle: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := cfg.Point.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid point mode settings")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	snippets, err := repo.Open(cfg.SnippetDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open snippet directory")
	}
	if cfg.SeedSnippets {
		if n, err := snippets.Seed(); err != nil {
			log.Warn().Err(err).Msg("failed to seed sample snippets")
		} else if n > 0 {
			log.Info().Int("count", n).Msg("seeded sample snippets")
		}
	}

	st, err := openStats(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open statistics")
	}
	defer st.Close()

	seed := cfg.RNGSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info().Int64("seed", seed).Str("snippets", snippets.Root()).Msg("starting cordle")

	c := console.New(os.Stdin, os.Stdout, snippets, st, console.Options{
		Placeholder:      cfg.Placeholder,
		FuzzyPlaceholder: cfg.FuzzyPlaceholder,
		ProblemURL:       cfg.ProblemURL,
		Point:            cfg.Point,
		Rand:             rand.New(rand.NewSource(seed)),
	})
	if err := c.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("console exited")
	}
}

// setupLogging applies LOG_LEVEL and routes logs to LOG_FILE when set,
// otherwise to stderr (human readable on a terminal).
func setupLogging(cfg *config.Config) (func(), error) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = func() { _ = f.Close() }
	case term.IsTerminal(int(os.Stderr.Fd())):
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return closer, nil
}
