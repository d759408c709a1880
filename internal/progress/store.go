package progress

// LevelCount is the number of levels in the campaign.
const LevelCount = 12

// LevelRecord is the persisted progress of a single level.
type LevelRecord struct {
	Level          int     // 1-based level number
	Unlocked       bool    // Whether the level can be started
	Stars          int     // Best rating earned, 0-3
	BestPercentage float32 // Percentage that earned Stars
}

// Store holds the records of every level plus the highest unlocked level.
// Records are dense: index i holds level i+1.
type Store struct {
	records         [LevelCount]LevelRecord
	highestUnlocked int
}

// NewStore returns a store with level 1 unlocked and everything else locked.
func NewStore() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset restores the initial defaults.
func (s *Store) Reset() {
	for i := range s.records {
		s.records[i] = LevelRecord{Level: i + 1, Unlocked: i == 0}
	}
	s.highestUnlocked = 1
}

// Valid reports whether level is inside 1..LevelCount.
func Valid(level int) bool {
	return level >= 1 && level <= LevelCount
}

// Record returns a copy of the record for level.
// The second result is false for levels outside 1..LevelCount.
func (s *Store) Record(level int) (LevelRecord, bool) {
	if !Valid(level) {
		return LevelRecord{}, false
	}
	return s.records[level-1], true
}

// Records returns copies of all records in level order.
func (s *Store) Records() []LevelRecord {
	out := make([]LevelRecord, LevelCount)
	copy(out, s.records[:])
	return out
}

// IsUnlocked reports whether level exists and is unlocked.
func (s *Store) IsUnlocked(level int) bool {
	rec, ok := s.Record(level)
	return ok && rec.Unlocked
}

// HighestUnlocked returns the highest unlocked level number.
func (s *Store) HighestUnlocked() int {
	return s.highestUnlocked
}

// TotalStars sums the stars earned across all levels.
func (s *Store) TotalStars() int {
	total := 0
	for _, rec := range s.records {
		total += rec.Stars
	}
	return total
}

// Unlock marks level as unlocked and advances HighestUnlocked if needed.
// Returns false if the level does not exist or was already unlocked.
func (s *Store) Unlock(level int) bool {
	if !Valid(level) || s.records[level-1].Unlocked {
		return false
	}
	s.records[level-1].Unlocked = true
	if level > s.highestUnlocked {
		s.highestUnlocked = level
	}
	return true
}

// VictoryResult describes what RecordVictory changed.
type VictoryResult struct {
	Improved bool // Stars and BestPercentage were replaced
	Unlocked int  // Level newly unlocked, 0 if none
}

// RecordVictory applies a finished level to the store. Stars and
// BestPercentage are only replaced by a strictly better rating; the next
// level is unlocked regardless of the rating.
func (s *Store) RecordVictory(level, stars int, percentage float32) VictoryResult {
	var res VictoryResult
	if !Valid(level) {
		return res
	}

	rec := &s.records[level-1]
	if stars > rec.Stars {
		rec.Stars = stars
		rec.BestPercentage = percentage
		res.Improved = true
	}

	if s.Unlock(level + 1) {
		res.Unlocked = level + 1
	}
	return res
}

// recomputeHighest restores the HighestUnlocked invariant from the records.
func (s *Store) recomputeHighest() {
	s.highestUnlocked = 1
	for _, rec := range s.records {
		if rec.Unlocked && rec.Level > s.highestUnlocked {
			s.highestUnlocked = rec.Level
		}
	}
}
