package trampoline

import "math"

// Autopilot is a simple scripted player used by the simulate command and
// soak tests. It jumps when a walker gets close and steers onto it while
// airborne. It is deterministic for a given snapshot.
type Autopilot struct {
	JumpRange float64 // Trigger distance in ball radii
	DeadZone  float64 // Steering tolerance in ball radii
}

// NewAutopilot returns an autopilot with tuned defaults.
func NewAutopilot() *Autopilot {
	return &Autopilot{JumpRange: 4, DeadZone: 0.25}
}

// Decide returns the input for the next frame.
func (a *Autopilot) Decide(s Snapshot) Input {
	if s.GameOver || s.Player.Radius <= 0 {
		return Input{}
	}
	p := s.Player

	target, ok := nearestWalker(s)
	if !ok {
		return a.steer(p, s.Width/2)
	}

	in := a.steer(p, target.X)
	if p.Grounded {
		approaching := target.VX*(p.X-target.X) > 0
		if approaching && math.Abs(p.X-target.X) <= a.JumpRange*p.Radius {
			in.Jump = true
		}
		// Hold position on the ground and let the walker come in
		in.Left, in.Right = false, false
	}
	return in
}

func (a *Autopilot) steer(p PlayerView, x float64) Input {
	dx := x - p.X
	dead := a.DeadZone * p.Radius
	switch {
	case dx < -dead:
		return Input{Left: true}
	case dx > dead:
		return Input{Right: true}
	default:
		return Input{}
	}
}

// nearestWalker finds the live enemy closest to the player horizontally.
func nearestWalker(s Snapshot) (EnemyView, bool) {
	var best EnemyView
	found := false
	for _, en := range s.Enemies {
		if en.Falling {
			continue
		}
		if !found || math.Abs(en.X-s.Player.X) < math.Abs(best.X-s.Player.X) {
			best = en
			found = true
		}
	}
	return best, found
}
