package config

import (
	_ "embed"
)

//go:embed defaults/trampoline.yaml
var defaultTrampolineYAML []byte

// DefaultTrampolineConfig returns the default Trampoline configuration.
// Keep in sync with defaults/trampoline.yaml.
func DefaultTrampolineConfig() TrampolineConfig {
	return TrampolineConfig{
		Timing: TrampolineTiming{
			ReferenceFrameMs: 16.67,
			MaxDeltaMs:       50,
		},
		Physics: TrampolinePhysics{
			Gravity:        0.64,
			MoveAccel:      0.6,
			MoveFriction:   0.85,
			MaxSpeed:       6,
			JumpPower:      16,
			StompBounce:    0.8,
			EnemyPopFactor: 0.25,
			EnemyDrift:     0.4,
		},
		Layout: TrampolineLayout{
			BallRadiusMin:   36,
			BallRadiusRatio: 0.06,
			FloorRatio:      0.25,
			UnitsPerCol:     10,
			UnitsPerRow:     20,
		},
		Spawn: TrampolineSpawn{
			IntervalMs:      2000,
			FastUnlockScore: 500,
			FastChance:      0.35,
			EdgeOffset:      1.2,
		},
		Enemies: TrampolineEnemies{
			Slow: EnemyKindConfig{
				Name:        "onion",
				Speed:       3.2,
				RadiusRatio: 1.1,
				GroundLift:  0,
				BasePoints:  100,
			},
			Fast: EnemyKindConfig{
				Name:        "pepper",
				Speed:       7.2,
				RadiusRatio: 1.12,
				GroundLift:  0.08,
				BasePoints:  200,
			},
		},
		Stomp: TrampolineStomp{
			BandDepthRatio:     0.5,
			HorizontalLeniency: 1.05,
			Tolerance:          2,
		},
		Scoring: TrampolineScoring{
			ChainMin: 2,
		},
		Popups: TrampolinePopups{
			DurationMs: 900,
			DriftPerMs: 0.04,
		},
		Cull: TrampolineCull{
			Below: 120,
			Side:  160,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  0.5,
				IntervalFraction: 0.5,
			},
		},
	}
}
