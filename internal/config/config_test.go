package config

import (
	"testing"

	"github.com/Lcyanstars/Cordle/internal/game"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.SnippetDir != "CodeSnippets" {
		t.Errorf("expected SnippetDir=CodeSnippets, got %q", cfg.SnippetDir)
	}
	if !cfg.SeedSnippets {
		t.Errorf("expected SeedSnippets=true")
	}
	if cfg.StatsBackend != BackendSQLite {
		t.Errorf("expected sqlite backend, got %q", cfg.StatsBackend)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected LogLevel=warn, got %q", cfg.LogLevel)
	}
	if cfg.Point != game.DefaultPointParams() {
		t.Errorf("expected default point params, got %+v", cfg.Point)
	}
	if cfg.Placeholder != '@' || cfg.FuzzyPlaceholder != '#' {
		t.Errorf("unexpected placeholders %q %q", cfg.Placeholder, cfg.FuzzyPlaceholder)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("SNIPPET_DIR", "/tmp/snips")
	t.Setenv("SEED_SNIPPETS", "false")
	t.Setenv("STATS_BACKEND", "MEMORY")
	t.Setenv("RNG_SEED", "42")
	t.Setenv("POINT_GUESS_PENALTY", "50")
	t.Setenv("POINT_REWARD_FACTOR", "2.5")
	t.Setenv("PLACEHOLDER", "*")

	cfg := Load()

	if cfg.SnippetDir != "/tmp/snips" {
		t.Errorf("expected SnippetDir override, got %q", cfg.SnippetDir)
	}
	if cfg.SeedSnippets {
		t.Errorf("expected SeedSnippets=false after override")
	}
	if cfg.StatsBackend != BackendMemory {
		t.Errorf("expected memory backend, got %q", cfg.StatsBackend)
	}
	if cfg.RNGSeed != 42 {
		t.Errorf("expected RNGSeed=42, got %d", cfg.RNGSeed)
	}
	if cfg.Point.GuessPenalty != 50 || cfg.Point.RewardFactor != 2.5 {
		t.Errorf("unexpected point params %+v", cfg.Point)
	}
	// Non-overridden fields should remain default
	if cfg.Point.PointFactor != 500 {
		t.Errorf("expected PointFactor=500 (default), got %v", cfg.Point.PointFactor)
	}
	if cfg.Placeholder != '*' {
		t.Errorf("expected placeholder override, got %q", cfg.Placeholder)
	}
}

func TestLoadWithInvalidEnv(t *testing.T) {
	t.Setenv("RNG_SEED", "soon")
	t.Setenv("POINT_FACTOR", "lots")
	t.Setenv("SEED_SNIPPETS", "maybe")
	t.Setenv("FUZZY_PLACEHOLDER", "##")
	t.Setenv("STATS_BACKEND", "postgres")

	cfg := Load()

	if cfg.RNGSeed != 0 {
		t.Errorf("expected RNGSeed=0 with invalid env, got %d", cfg.RNGSeed)
	}
	if cfg.Point.PointFactor != 500 {
		t.Errorf("expected PointFactor=500 with invalid env, got %v", cfg.Point.PointFactor)
	}
	if !cfg.SeedSnippets {
		t.Errorf("expected SeedSnippets=true with invalid env")
	}
	if cfg.FuzzyPlaceholder != '#' {
		t.Errorf("expected default fuzzy placeholder, got %q", cfg.FuzzyPlaceholder)
	}
	if cfg.StatsBackend != BackendSQLite {
		t.Errorf("expected sqlite fallback, got %q", cfg.StatsBackend)
	}
}

func TestLoadKeepsInvalidPointParamsForValidation(t *testing.T) {
	t.Setenv("POINT_REWARD_FACTOR", "0.5")

	cfg := Load()

	if _, err := game.NewPoint(cfg.Point); err == nil {
		t.Errorf("expected reward factor below 1.0 to be rejected at mode construction")
	}
}
