package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/upball/internal/game"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveRunAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{
		Player:     "ada",
		Level:      3,
		Outcome:    OutcomeVictory,
		Collected:  2,
		Target:     6,
		Stars:      1,
		Percentage: 1.0 / 3,
		Duration:   12500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("expected a UUID, got %q", id)
	}

	run, err := store.RunByID(id)
	if err != nil || run == nil {
		t.Fatalf("RunByID() = %v, %v", run, err)
	}
	if run.Player != "ada" || run.Level != 3 || run.Outcome != OutcomeVictory || run.Stars != 1 {
		t.Errorf("run = %+v", *run)
	}
	if run.Duration != 12500*time.Millisecond {
		t.Errorf("Duration = %v, expected 12.5s", run.Duration)
	}

	missing, err := store.RunByID("nope")
	if err != nil || missing != nil {
		t.Errorf("RunByID(unknown) = %v, %v; expected nil, nil", missing, err)
	}
}

func TestSaveRunRejectsUnknownOutcome(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(Run{Player: "ada", Level: 1, Outcome: "draw"}); err == nil {
		t.Error("expected error for unknown outcome")
	}
}

func TestRecentRunsNewestFirst(t *testing.T) {
	store := openTestStore(t)

	for level := 1; level <= 4; level++ {
		if _, err := store.SaveRun(Run{Player: "ada", Level: level, Outcome: OutcomeGameOver}); err != nil {
			t.Fatal(err)
		}
	}
	store.SaveRun(Run{Player: "bob", Level: 9, Outcome: OutcomeGameOver})

	runs, err := store.RecentRuns("ada", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].Level != 4 || runs[2].Level != 2 {
		t.Errorf("runs not newest first: %d, %d, %d", runs[0].Level, runs[1].Level, runs[2].Level)
	}
	for _, r := range runs {
		if r.Player != "ada" {
			t.Errorf("run of another player leaked: %+v", r)
		}
	}
}

func TestLevelRunsAndStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Player: "ada", Level: 2, Outcome: OutcomeGameOver, Collected: 1, Target: 5})
	store.SaveRun(Run{Player: "ada", Level: 2, Outcome: OutcomeVictory, Collected: 3, Target: 5, Stars: 2, Percentage: 0.6})
	store.SaveRun(Run{Player: "ada", Level: 2, Outcome: OutcomeVictory, Collected: 1, Target: 5, Stars: 1, Percentage: 0.2})
	store.SaveRun(Run{Player: "ada", Level: 1, Outcome: OutcomeVictory, Collected: 4, Target: 4, Stars: 3, Percentage: 1})

	runs, err := store.LevelRuns("ada", 2, 10)
	if err != nil {
		t.Fatalf("LevelRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 level-2 runs, got %d", len(runs))
	}

	stats, err := store.LevelStats("ada")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 levels, got %d", len(stats))
	}
	if stats[0].Level != 1 || stats[0].BestStars != 3 {
		t.Errorf("level 1 stats = %+v", stats[0])
	}
	l2 := stats[1]
	if l2.Attempts != 3 || l2.Victories != 2 || l2.BestStars != 2 || l2.BestPct < 0.59 {
		t.Errorf("level 2 stats = %+v", l2)
	}
}

func TestClearRuns(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun(Run{Player: "ada", Level: 1, Outcome: OutcomeGameOver})
	store.SaveRun(Run{Player: "bob", Level: 1, Outcome: OutcomeGameOver})

	if err := store.ClearRuns("ada"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if runs, _ := store.RecentRuns("ada", 10); len(runs) != 0 {
		t.Errorf("Expected no runs for ada, got %d", len(runs))
	}
	if runs, _ := store.RecentRuns("bob", 10); len(runs) != 1 {
		t.Errorf("ClearRuns should not touch other players, bob has %d", len(runs))
	}
}

type memorySaver struct {
	runs []Run
	err  error
}

func (m *memorySaver) SaveRun(run Run) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.runs = append(m.runs, run)
	return "id", nil
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestRecorderTimesAttempts(t *testing.T) {
	saver := &memorySaver{}
	clock := &fakeClock{t: time.Unix(1000, 0)}
	rec := NewRecorder(saver, "ada", nil)
	rec.now = clock.now

	m := game.NewMachine(nil, nil, nil)
	m.Subscribe(rec)

	m.StartLevel(1)
	clock.advance(3 * time.Second)
	m.PauseGame()
	clock.advance(time.Minute)
	m.ResumeGame()
	clock.advance(2 * time.Second)
	m.CollectStar()
	m.TriggerGameOver()

	if len(saver.runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(saver.runs))
	}
	run := saver.runs[0]
	if run.Outcome != OutcomeGameOver || run.Level != 1 || run.Collected != 1 || run.Target != 4 {
		t.Errorf("run = %+v", run)
	}
	if run.Duration != 5*time.Second {
		t.Errorf("Duration = %v, expected 5s without the pause", run.Duration)
	}
	if run.Player != "ada" {
		t.Errorf("Player = %q", run.Player)
	}

	m.RestartLevel()
	clock.advance(4 * time.Second)
	for i := 0; i < 4; i++ {
		m.CollectStar()
	}
	m.TriggerVictory()

	if len(saver.runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(saver.runs))
	}
	win := saver.runs[1]
	if win.Outcome != OutcomeVictory || win.Stars != 3 || win.Percentage != 1 {
		t.Errorf("victory run = %+v", win)
	}
	if win.Duration != 4*time.Second {
		t.Errorf("restart should reset the clock, Duration = %v", win.Duration)
	}
}

func TestRecorderSurvivesSaveErrors(t *testing.T) {
	saver := &memorySaver{err: errors.New("disk full")}
	rec := NewRecorder(saver, "ada", nil)

	m := game.NewMachine(nil, nil, nil)
	m.Subscribe(rec)
	m.StartLevel(1)
	m.TriggerGameOver()

	if rec.Failures() != 1 {
		t.Errorf("Failures() = %d, expected 1", rec.Failures())
	}
	if m.State() != game.StateGameOver {
		t.Error("a failed history write must not affect the game")
	}
}

func TestRecorderWithSQLite(t *testing.T) {
	store := openTestStore(t)
	rec := NewRecorder(store, "ada", nil)

	m := game.NewMachine(nil, nil, nil)
	m.Subscribe(rec)
	m.StartLevel(1)
	m.TriggerVictory()

	run, err := store.RunByID(rec.LastRunID())
	if err != nil || run == nil {
		t.Fatalf("RunByID(%q) = %v, %v", rec.LastRunID(), run, err)
	}
	if run.Outcome != OutcomeVictory || run.Stars != 0 {
		t.Errorf("run = %+v", *run)
	}
}
