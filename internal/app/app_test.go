package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/upball/internal/config"
	"github.com/vovakirdan/upball/internal/game"
	"github.com/vovakirdan/upball/internal/progress"
	"github.com/vovakirdan/upball/internal/spawn"
	"github.com/vovakirdan/upball/internal/storage"
)

func newTestApp(t *testing.T, savePath string) *App {
	t.Helper()
	return New(Options{
		Config:   config.DefaultUpballConfig(),
		SavePath: savePath,
		Seed:     42,
		Player:   "tester",
	})
}

func TestNewStartsInMenu(t *testing.T) {
	a := newTestApp(t, "")
	if a.Machine.State() != game.StateMenu {
		t.Errorf("state = %v, want Menu", a.Machine.State())
	}
	if a.Seed() != 42 {
		t.Errorf("Seed() = %d", a.Seed())
	}
	if a.Recorder != nil {
		t.Error("no history configured, recorder should be nil")
	}
}

func TestNewSeedsFromClock(t *testing.T) {
	a := New(Options{Config: config.DefaultUpballConfig()})
	if a.Seed() == 0 {
		t.Error("zero seed should be replaced")
	}
}

func TestStepOnlyWhilePlaying(t *testing.T) {
	a := newTestApp(t, "")
	a.Step(10)
	if len(a.Field.Bodies()) != 0 {
		t.Error("nothing should spawn from the menu")
	}

	a.Machine.StartLevel(1)
	a.Step(1.5)
	if a.Field.Count(spawn.KindHazard) != 1 {
		t.Fatalf("hazards = %d after 1.5s, want 1", a.Field.Count(spawn.KindHazard))
	}

	a.Machine.PauseGame()
	before := a.Field.Bodies()[0].Y
	a.Step(5)
	a.Nudge(1)
	if a.Field.Bodies()[0].Y != before || a.Field.Tilt() != 0 {
		t.Error("a paused game should not move")
	}
}

func TestLevelOneSpawnsWithinTargets(t *testing.T) {
	a := newTestApp(t, "")
	a.Machine.StartLevel(1)

	for i := 0; i < 30*60 && a.Machine.State() == game.StatePlaying; i++ {
		a.Step(1.0 / 60)
	}
	st := a.Scheduler.Stats()
	if !st.GoalSpawned {
		t.Error("goal should spawn at seven seconds, before anything reaches the ball")
	}
	if st.ObstaclesSpawned != 4 || st.StarsSpawned != 4 {
		t.Errorf("level 1 should spawn 4 hazards and 4 stars: %+v", st)
	}
	if a.Field.Count(spawn.KindGoal) > 1 {
		t.Error("at most one goal")
	}
}

func TestVictoryIsSaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.save")
	a := newTestApp(t, path)
	a.Machine.StartLevel(1)

	ball := a.Field.Ball()
	a.Field.Spawn(spawn.Entity{Kind: spawn.KindGoal, X: ball.X, Y: ball.Y})
	a.Step(1.0 / 60)

	if a.Machine.State() != game.StateVictory {
		t.Fatalf("state = %v, want Victory", a.Machine.State())
	}
	if a.Scheduler.Active() {
		t.Error("scheduler should stop at victory")
	}

	loaded, err := progress.Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !loaded.IsUnlocked(2) || loaded.HighestUnlocked() != 2 {
		t.Errorf("saved progress should unlock level 2, highest = %d", loaded.HighestUnlocked())
	}

	reopened := newTestApp(t, path)
	if !reopened.Machine.Store().IsUnlocked(2) {
		t.Error("a new context should pick up saved progress")
	}
}

func TestCorruptSaveStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.save")
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0o600); err != nil {
		t.Fatal(err)
	}

	a := newTestApp(t, path)
	if !errors.Is(a.LoadError(), progress.ErrCorruptSave) {
		t.Errorf("LoadError() = %v, want ErrCorruptSave", a.LoadError())
	}
	if a.Machine.Store().HighestUnlocked() != 1 {
		t.Error("corrupt save should fall back to defaults")
	}
}

func TestListenersSeeSchedulerStarted(t *testing.T) {
	a := newTestApp(t, "")
	var activeOnLevelChange bool
	a.Subscribe(game.ListenerFunc(func(e game.Event) {
		if e.Kind == game.EventLevelChanged {
			activeOnLevelChange = a.Scheduler.Active()
		}
	}))

	a.Machine.StartLevel(1)
	if !activeOnLevelChange {
		t.Error("UI listeners should run after the scheduler")
	}
}

func TestHistoryRecordsRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	a := New(Options{
		Config:  config.DefaultUpballConfig(),
		Seed:    7,
		Player:  "tester",
		History: store,
	})
	a.Machine.StartLevel(1)
	a.Machine.TriggerGameOver()

	runs, err := store.RecentRuns("tester", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Outcome != storage.OutcomeGameOver {
		t.Errorf("runs = %+v", runs)
	}
}
