package console

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/Lcyanstars/Cordle/internal/game"
	"github.com/Lcyanstars/Cordle/internal/repo"
	"github.com/Lcyanstars/Cordle/internal/stats"
)

type harness struct {
	repo  *repo.Repo
	stats *stats.MemoryStore
	out   bytes.Buffer
	opts  Options
}

func newHarness(t *testing.T, snippets map[string][]string) *harness {
	t.Helper()
	r, err := repo.Open(t.TempDir())
	if err != nil {
		t.Fatalf("repo.Open: %v", err)
	}
	for id, lines := range snippets {
		if err := r.Add(id, lines); err != nil {
			t.Fatalf("Add(%s): %v", id, err)
		}
	}
	return &harness{
		repo:  r,
		stats: stats.NewMemoryStore(),
		opts:  Options{Rand: rand.New(rand.NewSource(3)), Point: game.DefaultPointParams()},
	}
}

func (h *harness) run(t *testing.T, input ...string) string {
	t.Helper()
	in := strings.NewReader(strings.Join(input, "\n") + "\n")
	c := New(in, &h.out, h.repo, h.stats, h.opts)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return h.out.String()
}

func (h *harness) history(t *testing.T) []stats.Record {
	t.Helper()
	hist, err := h.stats.History(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	return hist
}

func TestExit(t *testing.T) {
	h := newHarness(t, nil)
	out := h.run(t, "E")
	for _, want := range []string{"Play(P)", "Rule(R)", "Code(C)", "Stats(S)", "Exit(E)"} {
		if !strings.Contains(out, want) {
			t.Errorf("main menu missing %q", want)
		}
	}
	if strings.Contains(out, clearSeq) {
		t.Errorf("screen must not be cleared when output is not a terminal")
	}
}

func TestExitOnEOF(t *testing.T) {
	h := newHarness(t, nil)
	c := New(strings.NewReader(""), &h.out, h.repo, h.stats, h.opts)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRulePage(t *testing.T) {
	h := newHarness(t, nil)
	out := h.run(t, "R", "", "E")
	if !strings.Contains(out, "Code Wordle") || !strings.Contains(out, "length >= 3") {
		t.Errorf("rules not shown:\n%s", out)
	}
}

func TestPlayGuessLimitedWin(t *testing.T) {
	h := newHarness(t, map[string][]string{"1001": {"int"}})
	out := h.run(t, "P", "G", "int", "", "E")

	for _, want := range []string{
		"Guesses: 0/30",
		"Problem: www.luogu.com.cn/problem/1001",
		"@@@  ",
		"1 matches found, 0 fuzzy matches found.",
		"You win! You only used 1 guesses!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	hist := h.history(t)
	if len(hist) != 1 || !hist[0].Won || hist[0].Mode != stats.GuessLimited || hist[0].SnippetID != "1001" {
		t.Fatalf("unexpected history %+v", hist)
	}
}

func TestPlayPointResign(t *testing.T) {
	h := newHarness(t, map[string][]string{"1001": {"int x"}})
	out := h.run(t, "P", "P", "E", "", "E")

	if strings.Contains(out, "Problem:") {
		t.Errorf("point mode must start with the problem hidden")
	}
	if !strings.Contains(out, "Enter P to show the problem ID, or F to enable fuzzy match") {
		t.Errorf("point hints missing")
	}
	if !strings.Contains(out, "You achieved 0.00 points!") {
		t.Errorf("closing message missing:\n%s", out)
	}
	hist := h.history(t)
	if len(hist) != 1 || !hist[0].Won || hist[0].Mode != stats.Point {
		t.Fatalf("unexpected history %+v", hist)
	}
}

func TestPlayLimitReachedOnCompletingGuessLoses(t *testing.T) {
	h := newHarness(t, map[string][]string{"1001": {"abcdefghij"}})
	input := []string{"P", "G"}
	for i := 0; i < 29; i++ {
		input = append(input, "xyz")
	}
	input = append(input, "abcdefghij", "", "E")
	out := h.run(t, input...)

	if !strings.Contains(out, "You lose. You have used 30 guesses.") {
		t.Errorf("expected loss once the limit is reached:\n%s", out)
	}
	hist := h.history(t)
	if len(hist) != 1 || hist[0].Won || hist[0].Summary != "guesses: 30/30 Lose" {
		t.Fatalf("unexpected history %+v", hist)
	}
}

func TestPlayPointRejectsZeroParams(t *testing.T) {
	h := newHarness(t, map[string][]string{"1001": {"int"}})
	h.opts.Point = game.PointParams{}
	out := h.run(t, "P", "P", "", "E")

	if !strings.Contains(out, "Invalid game settings") {
		t.Errorf("zero coefficients must be rejected:\n%s", out)
	}
	if len(h.history(t)) != 0 {
		t.Errorf("no game expected with invalid settings")
	}
}

func TestPlayPointShowProblem(t *testing.T) {
	h := newHarness(t, map[string][]string{"1035": {"int x"}})
	out := h.run(t, "P", "P", "P", "E", "", "E")
	if !strings.Contains(out, "PID showing enabled") || !strings.Contains(out, "Problem: www.luogu.com.cn/problem/1035") {
		t.Errorf("problem line not shown after toggle:\n%s", out)
	}
}

func TestPlayAutoGuess(t *testing.T) {
	h := newHarness(t, map[string][]string{"1001": {"int"}})
	out := h.run(t, "P", "G", "A", "E", "", "E")

	if !strings.Contains(out, "\nint\n") {
		t.Errorf("expected first keyword suggested:\n%s", out)
	}
	if !strings.Contains(out, "You lose. You have used 0 guesses.") {
		t.Errorf("auto guess must not consume a turn:\n%s", out)
	}
}

func TestPlayEmptyRepository(t *testing.T) {
	h := newHarness(t, nil)
	out := h.run(t, "P", "G", "", "E")
	if !strings.Contains(out, "There's no codesnippets") {
		t.Errorf("expected empty repository message:\n%s", out)
	}
	if len(h.history(t)) != 0 {
		t.Errorf("no history expected")
	}
}

func TestPlayUnknownMode(t *testing.T) {
	h := newHarness(t, map[string][]string{"1001": {"int"}})
	h.run(t, "P", "X", "E")
	if len(h.history(t)) != 0 {
		t.Errorf("no game expected for unknown mode")
	}
}

func TestPlayInputClosedResigns(t *testing.T) {
	h := newHarness(t, map[string][]string{"1001": {"int"}})
	h.run(t, "P", "G", "xyz")
	hist := h.history(t)
	if len(hist) != 1 || hist[0].Won || hist[0].Summary != "guesses: 1/30 Lose" {
		t.Fatalf("unexpected history %+v", hist)
	}
}

func TestPlayTimeAttackTimeout(t *testing.T) {
	h := newHarness(t, map[string][]string{"1001": {"abcdefghijklmnopqrstuvwxyz"}})
	start := time.Date(2025, 5, 13, 17, 0, 0, 0, time.UTC)
	calls := 0
	h.opts.Now = func() time.Time {
		calls++
		if calls == 1 {
			return start
		}
		return start.Add(2 * time.Minute)
	}
	out := h.run(t, "P", "T", "", "E")

	if !strings.Contains(out, "You lose. You have used 120 seconds.") {
		t.Errorf("expected timeout:\n%s", out)
	}
	hist := h.history(t)
	if len(hist) != 1 || hist[0].Mode != stats.TimeAttack || hist[0].Summary != "time: 120s/60s Lose" {
		t.Fatalf("unexpected history %+v", hist)
	}
}

func TestCodePage(t *testing.T) {
	h := newHarness(t, nil)
	out := h.run(t,
		"C",
		"L", "",
		"A", "42", "int x;", "END", "",
		"L", "",
		"R", "42", "",
		"M", "42", "",
		"M", "42", "",
		"R", "42", "",
		"A", "43", "   ", "END", "",
		"B",
		"E",
	)

	for _, want := range []string{
		"No codesnippets",
		"Code #42 saved",
		"\n42\n",
		"int x;",
		"Code #42 removed",
		"Code not found",
		"Code must contain at least one visible character",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if ids := h.repo.List(); len(ids) != 0 {
		t.Errorf("expected empty repository, got %v", ids)
	}
}

func TestStatsPage(t *testing.T) {
	h := newHarness(t, nil)
	rec := stats.Record{
		ID:        "r1",
		Time:      time.Date(2025, 5, 13, 17, 21, 15, 0, time.Local),
		Mode:      stats.GuessLimited,
		SnippetID: "1001",
		Summary:   "guesses: 12/30 Win",
		Outcome:   1,
		Won:       true,
	}
	if err := h.stats.Record(context.Background(), rec); err != nil {
		t.Fatal(err)
	}
	out := h.run(t, "S", "", "E")

	for _, want := range []string{
		"Total Games: 1",
		"Guess Limited Games: 1/1",
		"==========Game History==========",
		stats.FormatLine(rec),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
