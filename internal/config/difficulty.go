package config

import "math"

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// Level returns the current difficulty level (0.0 to 1.0) based on score or
// elapsed milliseconds. A disabled manager always reports 0 so that every
// scaled value equals its base.
func (d *DifficultyManager) Level(score int, elapsedMs float64) float64 {
	if d == nil || !d.cfg.Enabled {
		return 0
	}
	if d.cfg.Progression.Type == "none" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = elapsedMs / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the enemy speed scaled by the difficulty level.
func (d *DifficultyManager) Speed(baseSpeed float64, score int, elapsedMs float64) float64 {
	level := d.Level(score, elapsedMs)
	// Speed increases from base to base * (1 + speedMultiplier)
	return baseSpeed * (1.0 + level*d.scaling().SpeedMultiplier)
}

// SpawnInterval returns the spawn interval shrunk by the difficulty level.
// It never drops below a quarter of the base interval.
func (d *DifficultyManager) SpawnInterval(baseMs float64, score int, elapsedMs float64) float64 {
	level := d.Level(score, elapsedMs)
	result := baseMs * (1.0 - level*d.scaling().IntervalFraction)
	return math.Max(result, baseMs/4)
}

func (d *DifficultyManager) scaling() ScalingConfig {
	if d == nil {
		return ScalingConfig{}
	}
	return d.cfg.Scaling
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
