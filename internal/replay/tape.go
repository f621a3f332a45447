// Package replay records trampoline sessions as input tapes and
// re-simulates them. A tape holds everything the engine consumed: the
// session seed, the world size, the configuration and the per-frame
// (dt, input) stream.
package replay

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/trampoline-arcade/internal/config"
	"github.com/vovakirdan/trampoline-arcade/internal/games/trampoline"
)

// Frame flags
const (
	FlagLeft uint8 = 1 << iota
	FlagRight
	FlagJump
	FlagResize // Width and Height hold the new world size; no step
)

// ErrEmptyTape is returned when a tape has no usable world size.
var ErrEmptyTape = errors.New("replay: tape has no world size")

// Frame is one recorded engine call.
type Frame struct {
	DtMs   float64
	Flags  uint8
	Width  float64
	Height float64
}

// Input decodes the frame's input flags.
func (f Frame) Input() trampoline.Input {
	return trampoline.Input{
		Left:  f.Flags&FlagLeft != 0,
		Right: f.Flags&FlagRight != 0,
		Jump:  f.Flags&FlagJump != 0,
	}
}

// IsResize reports whether the frame is a viewport change.
func (f Frame) IsResize() bool {
	return f.Flags&FlagResize != 0
}

// InputFlags encodes an input as frame flags.
func InputFlags(in trampoline.Input) uint8 {
	var flags uint8
	if in.Left {
		flags |= FlagLeft
	}
	if in.Right {
		flags |= FlagRight
	}
	if in.Jump {
		flags |= FlagJump
	}
	return flags
}

// Tape is a recorded session.
type Tape struct {
	ID        string
	GameID    string
	Seed      int64
	Width     float64
	Height    float64
	Config    []byte // YAML of the configuration in effect
	CreatedAt time.Time
	Frames    []Frame
}

// Duration returns the simulated time covered by the tape, before capping.
func (t Tape) Duration() time.Duration {
	var ms float64
	for _, f := range t.Frames {
		if !f.IsResize() && f.DtMs > 0 {
			ms += f.DtMs
		}
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// EncodeConfig serializes a configuration for storage on a tape.
func EncodeConfig(cfg config.TrampolineConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("replay: encode config: %w", err)
	}
	return data, nil
}

// DecodeConfig restores a tape's configuration. Tapes without one use the
// built-in defaults; missing keys keep their default values.
func DecodeConfig(data []byte) (config.TrampolineConfig, error) {
	cfg := config.DefaultTrampolineConfig()
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("replay: decode config: %w", err)
	}
	return cfg, nil
}
