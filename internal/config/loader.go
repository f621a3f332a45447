package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTrampoline loads Trampoline configuration.
// Search order: customPath -> ~/.arcade/configs/trampoline.yaml -> ./configs/trampoline.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a custom file only needs the
// keys it changes.
func LoadTrampoline(customPath string) (TrampolineConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultTrampolineConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseTrampoline(data)
		if err != nil {
			return DefaultTrampolineConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("trampoline.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseTrampoline(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/trampoline.yaml"); err == nil {
		if cfg, err := parseTrampoline(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseTrampoline(defaultTrampolineYAML)
	if err != nil {
		return DefaultTrampolineConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseTrampoline(data []byte) (TrampolineConfig, error) {
	cfg := DefaultTrampolineConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values that would break the simulation.
func (c TrampolineConfig) Validate() error {
	var errs []error
	if c.Timing.ReferenceFrameMs <= 0 {
		errs = append(errs, errors.New("timing.reference_frame_ms must be positive"))
	}
	if c.Timing.MaxDeltaMs <= 0 {
		errs = append(errs, errors.New("timing.max_delta_ms must be positive"))
	}
	if c.Physics.MoveFriction < 0 || c.Physics.MoveFriction > 1 {
		errs = append(errs, errors.New("physics.move_friction must be within [0, 1]"))
	}
	if c.Spawn.IntervalMs <= 0 {
		errs = append(errs, errors.New("spawn.interval_ms must be positive"))
	}
	if c.Spawn.FastChance < 0 || c.Spawn.FastChance > 1 {
		errs = append(errs, errors.New("spawn.fast_chance must be within [0, 1]"))
	}
	if c.Layout.UnitsPerCol <= 0 || c.Layout.UnitsPerRow <= 0 {
		errs = append(errs, errors.New("layout.units_per_col and layout.units_per_row must be positive"))
	}
	if c.Enemies.Slow.RadiusRatio <= 0 || c.Enemies.Fast.RadiusRatio <= 0 {
		errs = append(errs, errors.New("enemies.*.radius_ratio must be positive"))
	}
	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyTrampolinePreset modifies the config based on a difficulty preset.
func ApplyTrampolinePreset(cfg *TrampolineConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Spawn.FastUnlockScore = 1000
		cfg.Stomp.HorizontalLeniency = 1.2
	case DifficultyHard:
		cfg.Spawn.FastUnlockScore = 0
		cfg.Spawn.FastChance = 0.5
	}
}
