package game

import "math"

// Difficulty tuning. Everything scales linearly with the level number.
const (
	baseObstacleSpeed  = 100.0
	speedPerLevel      = 20.0
	baseSpawnInterval  = 1.5
	intervalPerLevel   = 0.1
	minSpawnInterval   = 0.5
	baseSpawnsPerLevel = 3
)

// ObstacleSpeed is the descent speed of hazards and the goal, in world units per second.
func ObstacleSpeed(level int) float64 {
	return baseObstacleSpeed + speedPerLevel*float64(level)
}

// SpawnInterval is the hazard cadence period in seconds.
func SpawnInterval(level int) float64 {
	return math.Max(baseSpawnInterval-intervalPerLevel*float64(level), minSpawnInterval)
}

// ObstaclesPerLevel is how many hazards spawn before the goal.
func ObstaclesPerLevel(level int) int {
	return baseSpawnsPerLevel + level
}

// StarsPerLevel is how many collectibles a level offers.
func StarsPerLevel(level int) int {
	return baseSpawnsPerLevel + level
}

// Difficulty bundles the derived values for one level.
type Difficulty struct {
	Level         int
	ObstacleSpeed float64
	SpawnInterval float64
	Obstacles     int
	Stars         int
}

// DifficultyFor computes every derived value for level.
func DifficultyFor(level int) Difficulty {
	return Difficulty{
		Level:         level,
		ObstacleSpeed: ObstacleSpeed(level),
		SpawnInterval: SpawnInterval(level),
		Obstacles:     ObstaclesPerLevel(level),
		Stars:         StarsPerLevel(level),
	}
}
