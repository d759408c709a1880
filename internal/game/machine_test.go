package game

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/upball/internal/logging"
	"github.com/vovakirdan/upball/internal/progress"
)

// eventLog records every event it receives.
type eventLog struct {
	events []Event
}

func (l *eventLog) HandleEvent(e Event) {
	l.events = append(l.events, e)
}

func (l *eventLog) kinds() []EventKind {
	out := make([]EventKind, len(l.events))
	for i, e := range l.events {
		out[i] = e.Kind
	}
	return out
}

func (l *eventLog) reset() {
	l.events = nil
}

type fakeSaver struct {
	saves int
	err   error
	last  []byte
}

func (f *fakeSaver) Save(s *progress.Store) error {
	f.saves++
	f.last, _ = s.MarshalBinary()
	return f.err
}

func newTestMachine() (*Machine, *eventLog, *fakeSaver) {
	saver := &fakeSaver{}
	m := NewMachine(progress.NewStore(), saver, nil)
	log := &eventLog{}
	m.Subscribe(log)
	return m, log, saver
}

func unlockThrough(m *Machine, level int) {
	for l := 2; l <= level; l++ {
		m.Store().Unlock(l)
	}
}

func TestMachineInitialState(t *testing.T) {
	m, _, _ := newTestMachine()
	if m.State() != StateMenu {
		t.Errorf("initial state should be Menu, got %v", m.State())
	}
}

func TestDifficultyLevelOne(t *testing.T) {
	d := DifficultyFor(1)
	if d.Obstacles != 4 {
		t.Errorf("ObstaclesPerLevel(1) = %d, want 4", d.Obstacles)
	}
	if d.Stars != 4 {
		t.Errorf("StarsPerLevel(1) = %d, want 4", d.Stars)
	}
	if d.ObstacleSpeed != 120 {
		t.Errorf("ObstacleSpeed(1) = %v, want 120", d.ObstacleSpeed)
	}
	if math.Abs(d.SpawnInterval-1.4) > 1e-9 {
		t.Errorf("SpawnInterval(1) = %v, want 1.4", d.SpawnInterval)
	}
}

func TestSpawnIntervalFloor(t *testing.T) {
	for level := 10; level <= progress.LevelCount; level++ {
		if got := SpawnInterval(level); math.Abs(got-0.5) > 1e-9 {
			t.Errorf("SpawnInterval(%d) = %v, want 0.5", level, got)
		}
	}
	if got := SpawnInterval(5); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("SpawnInterval(5) = %v, want 1.0", got)
	}
}

func TestStartLevelEmitsLevelThenState(t *testing.T) {
	m, log, _ := newTestMachine()

	m.StartLevel(1)

	if m.State() != StatePlaying {
		t.Fatalf("state should be Playing, got %v", m.State())
	}
	if m.Level() != 1 || m.StarsCollected() != 0 || m.StarsTarget() != 4 {
		t.Errorf("session = level %d, %d/%d", m.Level(), m.StarsCollected(), m.StarsTarget())
	}

	kinds := log.kinds()
	if len(kinds) != 2 || kinds[0] != EventLevelChanged || kinds[1] != EventStateChanged {
		t.Fatalf("expected LevelChanged then StateChanged, got %v", kinds)
	}
	if log.events[0].Level != 1 {
		t.Errorf("LevelChanged level = %d", log.events[0].Level)
	}
	if log.events[1].State != StatePlaying || log.events[1].Previous != StateMenu {
		t.Errorf("StateChanged = %+v", log.events[1])
	}
}

func TestStartLevelRejected(t *testing.T) {
	tests := []struct {
		name  string
		level int
	}{
		{"zero", 0},
		{"negative", -3},
		{"beyond last", progress.LevelCount + 1},
		{"locked", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, log, _ := newTestMachine()
			m.GoToLevelSelect()
			log.reset()

			m.StartLevel(tt.level)

			if m.State() != StateLevelSelect {
				t.Errorf("state changed to %v", m.State())
			}
			if m.Level() != 1 {
				t.Errorf("level changed to %d", m.Level())
			}
			if len(log.events) != 0 {
				t.Errorf("no events expected, got %v", log.kinds())
			}
		})
	}
}

func TestCollectStar(t *testing.T) {
	m, log, _ := newTestMachine()
	m.StartLevel(1)
	log.reset()

	for i := 0; i < 6; i++ {
		m.CollectStar()
	}

	if m.StarsCollected() != 6 {
		t.Errorf("collected = %d, want 6 (may exceed target)", m.StarsCollected())
	}
	last := log.events[len(log.events)-1]
	if last.Kind != EventStarCollected || last.Collected != 6 || last.Target != 4 {
		t.Errorf("last event = %+v", last)
	}
}

func TestCollectStarIgnoredOutsidePlay(t *testing.T) {
	m, _, _ := newTestMachine()
	m.CollectStar()
	if m.StarsCollected() != 0 {
		t.Error("star collected in menu")
	}
}

func TestTriggerGameOver(t *testing.T) {
	m, log, saver := newTestMachine()
	m.StartLevel(1)
	log.reset()

	m.TriggerGameOver()

	if m.State() != StateGameOver {
		t.Errorf("state = %v, want GameOver", m.State())
	}
	kinds := log.kinds()
	if len(kinds) != 2 || kinds[0] != EventStateChanged || kinds[1] != EventGameOver {
		t.Errorf("events = %v", kinds)
	}
	if saver.saves != 0 {
		t.Error("game over must not persist progress")
	}
}

func TestTriggerVictoryUnlocksAndSaves(t *testing.T) {
	m, log, saver := newTestMachine()
	m.StartLevel(1)
	log.reset()

	m.TriggerVictory()

	if m.State() != StateVictory {
		t.Fatalf("state = %v, want Victory", m.State())
	}
	if saver.saves != 1 {
		t.Errorf("expected one save, got %d", saver.saves)
	}
	if rec, _ := m.LevelRecord(2); !rec.Unlocked {
		t.Error("level 2 should be unlocked even with zero stars")
	}

	kinds := log.kinds()
	if len(kinds) != 2 || kinds[0] != EventStateChanged || kinds[1] != EventVictory {
		t.Fatalf("events = %v", kinds)
	}
	if log.events[1].Stars != 0 {
		t.Errorf("zero collected should rate 0, got %d", log.events[1].Stars)
	}
}

func TestVictoryLevelThreeGood(t *testing.T) {
	m, log, _ := newTestMachine()
	unlockThrough(m, 3)
	m.StartLevel(3)
	m.CollectStar()
	m.CollectStar()
	log.reset()

	m.TriggerVictory()

	v := log.events[len(log.events)-1]
	if v.Target != 6 {
		t.Errorf("target = %d, want 6", v.Target)
	}
	if math.Abs(float64(v.Percentage)-1.0/3.0) > 1e-6 {
		t.Errorf("percentage = %v", v.Percentage)
	}
	if v.Stars != 1 {
		t.Errorf("stars = %d, want 1", v.Stars)
	}
	if progress.Tier(v.Stars) != "GOOD" {
		t.Errorf("tier = %q", progress.Tier(v.Stars))
	}
}

func TestVictoryLevelFivePerfect(t *testing.T) {
	m, _, saver := newTestMachine()
	unlockThrough(m, 5)
	if m.Store().HighestUnlocked() != 5 {
		t.Fatalf("setup: highest = %d", m.Store().HighestUnlocked())
	}

	m.StartLevel(5)
	for i := 0; i < m.StarsTarget(); i++ {
		m.CollectStar()
	}
	m.TriggerVictory()

	rec, _ := m.LevelRecord(5)
	if rec.Stars != 3 || rec.BestPercentage != 1 {
		t.Errorf("level 5 record = %+v", rec)
	}
	if next, _ := m.LevelRecord(6); !next.Unlocked {
		t.Error("level 6 should be unlocked")
	}
	if m.Store().HighestUnlocked() != 6 {
		t.Errorf("highest = %d, want 6", m.Store().HighestUnlocked())
	}

	loaded := progress.NewStore()
	if err := loaded.UnmarshalBinary(saver.last); err != nil {
		t.Fatalf("saved data invalid: %v", err)
	}
	if loaded.HighestUnlocked() != 6 {
		t.Errorf("saved highest = %d, want 6", loaded.HighestUnlocked())
	}
}

func TestVictoryNeverLowersStars(t *testing.T) {
	m, _, _ := newTestMachine()

	// Perfect run first.
	m.StartLevel(1)
	for i := 0; i < 4; i++ {
		m.CollectStar()
	}
	m.TriggerVictory()

	// Then a poor run.
	m.StartLevel(1)
	m.CollectStar()
	m.TriggerVictory()

	rec, _ := m.LevelRecord(1)
	if rec.Stars != 3 {
		t.Errorf("stars dropped to %d", rec.Stars)
	}
}

func TestVictorySaveFailureDoesNotBlock(t *testing.T) {
	m, _, saver := newTestMachine()
	saver.err = errors.New("disk full")

	m.StartLevel(1)
	m.TriggerVictory()

	if m.State() != StateVictory {
		t.Errorf("state = %v, want Victory", m.State())
	}
	if !errors.Is(m.LastSaveError(), saver.err) {
		t.Errorf("LastSaveError = %v", m.LastSaveError())
	}
	if rec, _ := m.LevelRecord(2); !rec.Unlocked {
		t.Error("in-memory unlock should survive a failed save")
	}
}

func TestEndedAttemptIgnoresLateTriggers(t *testing.T) {
	m, _, saver := newTestMachine()
	m.StartLevel(1)
	m.TriggerVictory()

	m.TriggerGameOver()
	if m.State() != StateVictory {
		t.Errorf("game over after victory changed state to %v", m.State())
	}

	m.TriggerVictory()
	if saver.saves != 1 {
		t.Errorf("second victory saved again: %d saves", saver.saves)
	}
}

func TestRestartLevel(t *testing.T) {
	m, log, saver := newTestMachine()
	m.StartLevel(1)
	m.CollectStar()
	m.TriggerGameOver()
	log.reset()

	m.RestartLevel()

	if m.State() != StatePlaying || m.StarsCollected() != 0 {
		t.Errorf("after restart: state %v, collected %d", m.State(), m.StarsCollected())
	}
	if len(log.events) != 1 || log.events[0].Kind != EventStateChanged || log.events[0].Previous != StateGameOver {
		t.Errorf("events = %+v", log.events)
	}
	if saver.saves != 0 {
		t.Error("restart must not persist")
	}
}

func TestRestartFromPauseIsNotResume(t *testing.T) {
	m, log, _ := newTestMachine()
	m.StartLevel(2)
	m.PauseGame()
	log.reset()

	m.RestartLevel()
	if len(log.events) != 1 {
		t.Fatalf("events = %+v", log.events)
	}
	ev := log.events[0]
	if !ev.Restart || ev.Resumed() {
		t.Errorf("restart from pause should not look like a resume: %+v", ev)
	}
}

func TestNextLevel(t *testing.T) {
	m, _, _ := newTestMachine()
	m.StartLevel(1)
	m.TriggerVictory()

	m.NextLevel()
	if m.Level() != 2 || m.State() != StatePlaying {
		t.Errorf("after NextLevel: level %d state %v", m.Level(), m.State())
	}
}

func TestNextLevelAfterLast(t *testing.T) {
	m, _, _ := newTestMachine()
	unlockThrough(m, progress.LevelCount)
	m.StartLevel(progress.LevelCount)
	m.TriggerVictory()

	m.NextLevel()
	if m.State() != StateLevelSelect {
		t.Errorf("NextLevel after last level should go to level select, got %v", m.State())
	}
	if m.Level() != progress.LevelCount {
		t.Errorf("level changed to %d", m.Level())
	}
}

func TestPauseResume(t *testing.T) {
	m, log, _ := newTestMachine()

	m.PauseGame()
	if m.State() != StateMenu {
		t.Error("pause from menu should be ignored")
	}
	m.ResumeGame()
	if m.State() != StateMenu {
		t.Error("resume from menu should be ignored")
	}

	m.StartLevel(1)
	m.PauseGame()
	if m.State() != StatePaused {
		t.Fatalf("state = %v, want Paused", m.State())
	}
	m.PauseGame()
	if m.State() != StatePaused {
		t.Error("double pause changed state")
	}

	log.reset()
	m.ResumeGame()
	if m.State() != StatePlaying {
		t.Fatalf("state = %v, want Playing", m.State())
	}
	if len(log.events) != 1 || !log.events[0].Resumed() {
		t.Errorf("resume event = %+v", log.events)
	}

	m.TogglePause()
	if m.State() != StatePaused {
		t.Error("TogglePause should pause")
	}
	m.TogglePause()
	if m.State() != StatePlaying {
		t.Error("TogglePause should resume")
	}
}

func TestNavigation(t *testing.T) {
	m, _, _ := newTestMachine()
	m.GoToLevelSelect()
	if m.State() != StateLevelSelect {
		t.Errorf("state = %v", m.State())
	}
	m.GoToMenu()
	if m.State() != StateMenu {
		t.Errorf("state = %v", m.State())
	}
}

func TestLogsNameTheLevel(t *testing.T) {
	var buf bytes.Buffer
	m := NewMachine(nil, nil, logging.New(&buf, "upball", log.DebugLevel))

	m.StartLevel(1)
	m.TriggerVictory()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	for _, msg := range []string{"level started", "level complete"} {
		found := false
		for _, line := range lines {
			if strings.Contains(line, msg) {
				found = true
				if !strings.Contains(line, "lvl=1") {
					t.Errorf("%q log line should carry the level, got %q", msg, line)
				}
			}
		}
		if !found {
			t.Errorf("no %q log line in:\n%s", msg, buf.String())
		}
	}
}

func TestRestartFromLevelSelect(t *testing.T) {
	m, events, _ := newTestMachine()
	m.StartLevel(1)
	m.GoToLevelSelect()
	events.reset()

	m.RestartLevel()

	if m.State() != StatePlaying || m.Level() != 1 {
		t.Errorf("after restart: state %v, level %d", m.State(), m.Level())
	}
	if len(events.events) != 1 || !events.events[0].Restart || events.events[0].Previous != StateLevelSelect {
		t.Errorf("events = %+v", events.events)
	}
}
