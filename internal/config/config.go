// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

// TrampolineConfig contains all configuration for the Trampoline game.
// Per-frame magnitudes (acceleration, speeds, gravity) are expressed per
// reference frame and scaled by the engine's delta factor.
type TrampolineConfig struct {
	Timing     TrampolineTiming  `yaml:"timing"`
	Physics    TrampolinePhysics `yaml:"physics"`
	Layout     TrampolineLayout  `yaml:"layout"`
	Spawn      TrampolineSpawn   `yaml:"spawn"`
	Enemies    TrampolineEnemies `yaml:"enemies"`
	Stomp      TrampolineStomp   `yaml:"stomp"`
	Scoring    TrampolineScoring `yaml:"scoring"`
	Popups     TrampolinePopups  `yaml:"popups"`
	Cull       TrampolineCull    `yaml:"cull"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// TrampolineTiming defines the delta-time scaling.
type TrampolineTiming struct {
	ReferenceFrameMs float64 `yaml:"reference_frame_ms"`
	MaxDeltaMs       float64 `yaml:"max_delta_ms"`
}

// TrampolinePhysics defines the ball's movement parameters.
type TrampolinePhysics struct {
	Gravity        float64 `yaml:"gravity"`
	MoveAccel      float64 `yaml:"move_accel"`
	MoveFriction   float64 `yaml:"move_friction"` // Per-frame multiplier, applied as friction^deltaFactor
	MaxSpeed       float64 `yaml:"max_speed"`
	JumpPower      float64 `yaml:"jump_power"`
	StompBounce    float64 `yaml:"stomp_bounce"`     // Fraction of jump power on a stomp bounce
	EnemyPopFactor float64 `yaml:"enemy_pop_factor"` // Fraction of jump power a stomped enemy pops up with
	EnemyDrift     float64 `yaml:"enemy_drift"`      // Horizontal velocity kept by a stomped enemy
}

// TrampolineLayout defines world geometry derived from the viewport.
type TrampolineLayout struct {
	BallRadiusMin   float64 `yaml:"ball_radius_min"`
	BallRadiusRatio float64 `yaml:"ball_radius_ratio"` // Of min(width, height)
	FloorRatio      float64 `yaml:"floor_ratio"`       // Of height
	UnitsPerCol     float64 `yaml:"units_per_col"`     // World units per terminal column
	UnitsPerRow     float64 `yaml:"units_per_row"`     // World units per terminal row
}

// TrampolineSpawn defines enemy spawn timing and kind selection.
type TrampolineSpawn struct {
	IntervalMs      float64 `yaml:"interval_ms"`
	FastUnlockScore int     `yaml:"fast_unlock_score"`
	FastChance      float64 `yaml:"fast_chance"`
	EdgeOffset      float64 `yaml:"edge_offset"` // Spawn distance outside the screen, in enemy radii
}

// TrampolineEnemies holds the per-kind parameter tables.
type TrampolineEnemies struct {
	Slow EnemyKindConfig `yaml:"slow"`
	Fast EnemyKindConfig `yaml:"fast"`
}

// EnemyKindConfig defines the physical parameters of one enemy kind.
type EnemyKindConfig struct {
	Name        string  `yaml:"name"`
	Speed       float64 `yaml:"speed"`
	RadiusRatio float64 `yaml:"radius_ratio"` // Of the ball radius
	GroundLift  float64 `yaml:"ground_lift"`  // Of the enemy radius
	BasePoints  int     `yaml:"base_points"`
}

// TrampolineStomp defines the stomp window. The defaults are tuned by feel
// rather than derived from exact geometry.
type TrampolineStomp struct {
	BandDepthRatio     float64 `yaml:"band_depth_ratio"`    // Of enemy radius, measured down from its top
	HorizontalLeniency float64 `yaml:"horizontal_leniency"` // Of enemy radius
	Tolerance          float64 `yaml:"tolerance"`           // World units above the top still counted
}

// TrampolineScoring defines combo scoring.
type TrampolineScoring struct {
	ChainMin int `yaml:"chain_min"` // Combo at which popups are flagged as chains
}

// TrampolinePopups defines score popup lifetime and drift.
type TrampolinePopups struct {
	DurationMs float64 `yaml:"duration_ms"`
	DriftPerMs float64 `yaml:"drift_per_ms"`
}

// TrampolineCull defines how far outside the screen enemies are removed.
type TrampolineCull struct {
	Below float64 `yaml:"below"`
	Side  float64 `yaml:"side"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score or elapsed milliseconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Multiplier added to enemy speed at max difficulty
	IntervalFraction float64 `yaml:"interval_fraction"` // Fraction removed from the spawn interval at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
