package trampoline

import (
	"math"

	"github.com/vovakirdan/trampoline-arcade/internal/config"
	"github.com/vovakirdan/trampoline-arcade/internal/core"
)

// kindConfig returns the parameter table for an enemy kind.
func (e *Engine) kindConfig(kind EnemyKind) config.EnemyKindConfig {
	if kind == KindFast {
		return e.cfg.Enemies.Fast
	}
	return e.cfg.Enemies.Slow
}

// tickSpawner accumulates time and spawns one enemy when the interval has
// elapsed. The timer restarts from zero; overshoot is discarded.
func (e *Engine) tickSpawner(dtMs float64) {
	w := e.world
	w.SpawnTimer += dtMs
	interval := e.difficulty.SpawnInterval(e.cfg.Spawn.IntervalMs, w.Score, w.Elapsed)
	if w.SpawnTimer >= interval {
		e.spawnEnemy()
		w.SpawnTimer = 0
	}
}

// chooseKind picks the kind of the next enemy. The fast kind is only rolled
// for once the score reaches the unlock threshold.
func (e *Engine) chooseKind() EnemyKind {
	spawn := e.cfg.Spawn
	if e.world.Score >= spawn.FastUnlockScore && e.rng.Float64() < spawn.FastChance {
		return KindFast
	}
	return KindSlow
}

// spawnEnemy places a new enemy just outside the left or right edge,
// walking inward. The offset stays inside the side cull margin so a large
// enemy is not collected on the tick it appears.
func (e *Engine) spawnEnemy() {
	w := e.world
	fromLeft := e.rng.Float64() < 0.5
	direction := -1.0
	if fromLeft {
		direction = 1.0
	}

	kind := e.chooseKind()
	params := e.kindConfig(kind)
	radius := w.Player.Radius * params.RadiusRatio

	offset := math.Min(radius*e.cfg.Spawn.EdgeOffset, e.cfg.Cull.Side-1)
	x := w.Width + offset
	if fromLeft {
		x = -offset
	}
	groundOffset := params.GroundLift * radius
	speed := e.difficulty.Speed(params.Speed, w.Score, w.Elapsed)

	w.Enemies = append(w.Enemies, Enemy{
		Kind:         kind,
		X:            x,
		Y:            w.FloorY() - radius - groundOffset,
		VX:           speed * direction,
		Radius:       radius,
		Alive:        true,
		GroundOffset: groundOffset,
	})
	e.emit(core.Event{Kind: core.EventSpawned, Detail: params.Name})
}

// stepEnemies walks live enemies along the floor and lets defeated ones fall.
func (e *Engine) stepEnemies(df float64) {
	w := e.world
	floorY := w.FloorY()
	phys := e.cfg.Physics

	for i := range w.Enemies {
		en := &w.Enemies[i]
		switch {
		case en.Alive:
			en.X += en.VX * df
			en.Y = floorY - en.Radius - en.GroundOffset
		case en.Falling:
			en.VY += phys.Gravity * df
			en.Y += en.VY * df
			en.X += en.VX * df * phys.EnemyDrift
		}
	}
}

// cullEnemies drops enemies whose centre has left the visible area by the
// configured margins, whether alive or falling.
func (e *Engine) cullEnemies() {
	w := e.world
	cull := e.cfg.Cull
	kept := w.Enemies[:0]
	for _, en := range w.Enemies {
		if en.Y > w.Height+cull.Below || en.X < -cull.Side || en.X > w.Width+cull.Side {
			continue
		}
		kept = append(kept, en)
	}
	w.Enemies = kept
}
