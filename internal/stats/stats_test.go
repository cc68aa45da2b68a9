package stats

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func newSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.SetMaxOpenConns(1)
	st, err := NewSQLiteStore(context.Background(), db)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func sampleRecords() []Record {
	base := time.Date(2025, 5, 13, 17, 21, 15, 0, time.UTC)
	return []Record{
		{ID: "r1", Time: base, Mode: GuessLimited, SnippetID: "1001", Summary: "guesses: 12/30 Win", Outcome: 1, Won: true},
		{ID: "r2", Time: base.Add(time.Minute), Mode: GuessLimited, SnippetID: "1008", Summary: "guesses: 30/30 Lose", Outcome: 0},
		{ID: "r3", Time: base.Add(2 * time.Minute), Mode: TimeAttack, SnippetID: "1035", Summary: "time: 40s/60s Win", Outcome: 1, Won: true},
		{ID: "r4", Time: base.Add(3 * time.Minute), Mode: Point, SnippetID: "1001", Summary: "points: 0.10 Win", Outcome: 0.1, Won: true},
		{ID: "r5", Time: base.Add(4 * time.Minute), Mode: Point, SnippetID: "1008", Summary: "points: 0.20 Win", Outcome: 0.2, Won: true},
	}
}

func checkStore(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()
	for _, r := range sampleRecords() {
		if err := st.Record(ctx, r); err != nil {
			t.Fatalf("Record(%s): %v", r.ID, err)
		}
	}

	sum, err := st.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.TotalGames != 5 {
		t.Errorf("expected TotalGames=5, got %d", sum.TotalGames)
	}
	if sum.GuessLimitedGames != 2 || sum.GuessLimitedWins != 1 {
		t.Errorf("expected guess limited 1/2, got %d/%d", sum.GuessLimitedWins, sum.GuessLimitedGames)
	}
	if sum.TimeAttackGames != 1 || sum.TimeAttackWins != 1 {
		t.Errorf("expected time attack 1/1, got %d/%d", sum.TimeAttackWins, sum.TimeAttackGames)
	}
	if sum.PointGames != 2 {
		t.Errorf("expected PointGames=2, got %d", sum.PointGames)
	}
	if got := sum.TotalPoints.StringFixed(2); got != "0.30" {
		t.Errorf("expected TotalPoints=0.30, got %s", got)
	}
	if got := sum.AveragePoints().StringFixed(2); got != "0.15" {
		t.Errorf("expected AveragePoints=0.15, got %s", got)
	}

	hist, err := st.History(ctx, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 5 {
		t.Fatalf("expected 5 history rows, got %d", len(hist))
	}
	if hist[0].ID != "r5" || hist[4].ID != "r1" {
		t.Errorf("expected newest first, got %s..%s", hist[0].ID, hist[4].ID)
	}
	if !hist[4].Time.Equal(sampleRecords()[0].Time) {
		t.Errorf("expected time round trip, got %v", hist[4].Time)
	}
	if hist[1].Mode != Point || !hist[1].Won || hist[1].Outcome != 0.1 {
		t.Errorf("unexpected record %+v", hist[1])
	}

	limited, err := st.History(ctx, 2)
	if err != nil {
		t.Fatalf("History(2): %v", err)
	}
	if len(limited) != 2 || limited[0].ID != "r5" || limited[1].ID != "r4" {
		t.Errorf("unexpected limited history %+v", limited)
	}
}

func TestMemoryStore(t *testing.T) {
	checkStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	checkStore(t, newSQLite(t))
}

func TestSQLiteMigrateIdempotent(t *testing.T) {
	st := newSQLite(t)
	if err := migrate(context.Background(), st.db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	var n int
	if err := st.db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 recorded migrations, got %d", n)
	}
}

func TestSQLiteHistoryBadTimestamp(t *testing.T) {
	st := newSQLite(t)
	if _, err := st.db.Exec(`
        INSERT INTO history (id, played_at, mode, mode_label, snippet_id, summary, outcome, won)
        VALUES ('bad', 'yesterday', 'point', 'Point', '1001', 'points: 1.00 Win', 1, 1)`); err != nil {
		t.Fatal(err)
	}
	_, err := st.History(context.Background(), 0)
	if err == nil || !strings.Contains(err.Error(), "parse played_at") {
		t.Errorf("expected played_at parse error, got %v", err)
	}
}

func TestEmptySummary(t *testing.T) {
	sum, err := newSQLite(t).Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	lines := sum.Lines()
	want := []string{
		"Total Games: 0",
		"Guess Limited Games: 0/0",
		"Time Attack Games: 0/0",
		"Point Games: 0",
		"Average Points: 0.00",
		"Total Points: 0.00",
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestFormatLine(t *testing.T) {
	r := Record{
		Time:      time.Date(2025, 5, 13, 17, 21, 15, 0, time.Local),
		Mode:      TimeAttack,
		SnippetID: "1035",
		Summary:   "time: 40s/60s Win",
	}
	line := FormatLine(r)
	if !strings.HasPrefix(line, "Tue May 13 17:21:15 2025") {
		t.Errorf("unexpected time column in %q", line)
	}
	if got := line[timeWidth : timeWidth+modeWidth]; strings.TrimSpace(got) != "Time Attack" {
		t.Errorf("unexpected mode column %q", got)
	}
	if got := line[timeWidth+modeWidth : timeWidth+modeWidth+idWidth]; got != "1035   " {
		t.Errorf("unexpected id column %q", got)
	}
	if !strings.HasSuffix(line, "time: 40s/60s Win") {
		t.Errorf("unexpected summary in %q", line)
	}
}
