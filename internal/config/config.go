// Package config loads runtime settings from the environment.
//
// Values start from Defaults and are overridden by environment variables
// (optionally populated from a .env file by the caller). Invalid values are
// logged and ignored so a typo never prevents the game from starting.
package config

import (
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/Lcyanstars/Cordle/internal/game"
)

// Stats backends.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds every tunable of the console game.
type Config struct {
	SnippetDir   string // directory of <id>.txt snippets
	SeedSnippets bool   // copy bundled samples into an empty SnippetDir

	StatsBackend string // "sqlite" or "memory"
	StatsDSN     string // sqlite file path

	LogLevel string
	LogFile  string // empty logs to stderr

	RNGSeed int64 // 0 seeds from the clock

	Point game.PointParams

	Placeholder      rune
	FuzzyPlaceholder rune
	ProblemURL       string // fmt pattern taking the snippet id
}

// Defaults returns a Config with the stock settings.
func Defaults() *Config {
	return &Config{
		SnippetDir:       "CodeSnippets",
		SeedSnippets:     true,
		StatsBackend:     BackendSQLite,
		StatsDSN:         "./data/cordle.db",
		LogLevel:         "warn",
		Point:            game.DefaultPointParams(),
		Placeholder:      '@',
		FuzzyPlaceholder: '#',
		ProblemURL:       "www.luogu.com.cn/problem/%s",
	}
}

// Load returns Defaults with environment overrides applied.
func Load() *Config {
	cfg := Defaults()

	overrideString(&cfg.SnippetDir, "SNIPPET_DIR")
	overrideBool(&cfg.SeedSnippets, "SEED_SNIPPETS")
	overrideString(&cfg.StatsBackend, "STATS_BACKEND")
	overrideString(&cfg.StatsDSN, "STATS_DSN")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	overrideString(&cfg.LogFile, "LOG_FILE")
	overrideInt64(&cfg.RNGSeed, "RNG_SEED")
	overrideFloat(&cfg.Point.GuessPenalty, "POINT_GUESS_PENALTY")
	overrideFloat(&cfg.Point.PointFactor, "POINT_FACTOR")
	overrideFloat(&cfg.Point.RewardFactor, "POINT_REWARD_FACTOR")
	overrideRune(&cfg.Placeholder, "PLACEHOLDER")
	overrideRune(&cfg.FuzzyPlaceholder, "FUZZY_PLACEHOLDER")
	overrideString(&cfg.ProblemURL, "PROBLEM_URL")

	cfg.StatsBackend = strings.ToLower(cfg.StatsBackend)
	if cfg.StatsBackend != BackendSQLite && cfg.StatsBackend != BackendMemory {
		log.Warn().Str("backend", cfg.StatsBackend).Msg("unknown STATS_BACKEND, using sqlite")
		cfg.StatsBackend = BackendSQLite
	}
	return cfg
}

func overrideString(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func overrideInt64(field *int64, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			*field = n
		} else {
			log.Warn().Str("key", envKey).Str("value", val).Msg("invalid integer, keeping default")
		}
	}
}

func overrideFloat(field *float64, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			*field = f
		} else {
			log.Warn().Str("key", envKey).Str("value", val).Msg("invalid number, keeping default")
		}
	}
}

func overrideBool(field *bool, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*field = b
		} else {
			log.Warn().Str("key", envKey).Str("value", val).Msg("invalid boolean, keeping default")
		}
	}
}

// overrideRune accepts exactly one character.
func overrideRune(field *rune, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if utf8.RuneCountInString(val) == 1 && val != " " {
			r, _ := utf8.DecodeRuneInString(val)
			*field = r
		} else {
			log.Warn().Str("key", envKey).Str("value", val).Msg("placeholder must be a single non-blank character")
		}
	}
}
