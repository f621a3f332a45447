package trampoline

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/trampoline-arcade/internal/config"
	"github.com/vovakirdan/trampoline-arcade/internal/core"
)

const frameMs = 16.67

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(config.DefaultTrampolineConfig(), 800, 600, 1)
}

// walker returns a stationary live enemy standing on the floor at x.
func walker(e *Engine, kind EnemyKind, x float64) Enemy {
	params := e.kindConfig(kind)
	r := e.world.Player.Radius * params.RadiusRatio
	lift := params.GroundLift * r
	return Enemy{
		Kind:         kind,
		X:            x,
		Y:            e.world.FloorY() - r - lift,
		Radius:       r,
		Alive:        true,
		GroundOffset: lift,
	}
}

// hover puts the airborne player just above the enemy's top, falling.
func hover(e *Engine, en Enemy) {
	p := &e.world.Player
	p.X = en.X
	p.Y = en.Y - en.Radius - p.Radius - 1
	p.VX = 0
	p.VY = 5
	p.Grounded = false
}

func stompEvents(events []core.Event) []core.Event {
	var out []core.Event
	for _, ev := range events {
		if ev.Kind == core.EventStomped {
			out = append(out, ev)
		}
	}
	return out
}

func TestNewEngineStartsOnFloor(t *testing.T) {
	e := newTestEngine(t)
	snap := e.Snapshot()

	if snap.FloorHeight != 150 || snap.FloorY != 450 {
		t.Errorf("floor = %v/%v, want 150/450", snap.FloorHeight, snap.FloorY)
	}
	if snap.Player.Radius != 36 {
		t.Errorf("radius = %v, want 36", snap.Player.Radius)
	}
	if snap.Player.X != 400 || snap.Player.Y != 450-36 {
		t.Errorf("player at (%v, %v), want (400, 414)", snap.Player.X, snap.Player.Y)
	}
	if !snap.Player.Grounded || snap.Player.VX != 0 || snap.Player.VY != 0 {
		t.Errorf("player should rest on the floor: %+v", snap.Player)
	}
}

func TestJumpFromRest(t *testing.T) {
	cfg := config.DefaultTrampolineConfig()
	cfg.Layout.BallRadiusMin = 48
	e := NewEngine(cfg, 800, 600, 1)

	snap := e.Snapshot()
	if snap.FloorY != 450 || snap.Player.Radius != 48 || snap.Player.Y != 402 {
		t.Fatalf("unexpected start: floorY=%v r=%v y=%v", snap.FloorY, snap.Player.Radius, snap.Player.Y)
	}

	e.Advance(frameMs, Input{Jump: true})

	p := e.Snapshot().Player
	if p.VY != -16 {
		t.Errorf("vy = %v, want -16", p.VY)
	}
	if p.Grounded {
		t.Error("player should be airborne after jumping")
	}
}

func TestJumpIgnoredInAir(t *testing.T) {
	e := newTestEngine(t)
	if !e.Jump() {
		t.Fatal("jump from the floor should succeed")
	}
	if e.Jump() {
		t.Error("second jump in the air should be ignored")
	}
	if e.world.Player.VY != -16 {
		t.Errorf("vy = %v, want -16", e.world.Player.VY)
	}
}

func TestContainmentSoak(t *testing.T) {
	e := newTestEngine(t)
	rng := rand.New(rand.NewSource(7))
	bot := NewAutopilot()

	for i := 0; i < 20000 && !e.GameOver(); i++ {
		dt := rng.Float64()*80 - 10 // Includes negative and over-cap deltas
		in := bot.Decide(e.Snapshot())
		if rng.Intn(4) == 0 {
			in = Input{Left: rng.Intn(2) == 0, Right: rng.Intn(2) == 0, Jump: rng.Intn(3) == 0}
		}
		e.Advance(dt, in)

		w := e.world
		p := w.Player
		if p.X < p.Radius-1e-9 || p.X > w.Width-p.Radius+1e-9 {
			t.Fatalf("tick %d: x=%v outside [%v, %v]", i, p.X, p.Radius, w.Width-p.Radius)
		}
		if p.Y+p.Radius > w.FloorY()+1e-9 {
			t.Fatalf("tick %d: bottom %v below floor %v", i, p.Y+p.Radius, w.FloorY())
		}
	}
}

func TestHorizontalSpeedClamped(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 100; i++ {
		e.Advance(frameMs, Input{Right: true})
	}
	if vx := e.world.Player.VX; vx > 6 {
		t.Errorf("vx = %v, want <= 6", vx)
	}
	if x := e.world.Player.X; x != 800-36 {
		t.Errorf("x = %v, want clamped to 764", x)
	}
}

func TestFrictionDecaysWithoutInput(t *testing.T) {
	e := newTestEngine(t)
	e.world.Player.VX = 4
	e.Advance(frameMs*2, Input{})

	want := 4 * math.Pow(0.85, frameMs*2/frameMs)
	if got := e.world.Player.VX; math.Abs(got-want) > 1e-9 {
		t.Errorf("vx = %v, want %v", got, want)
	}
}

func TestLandingResetsCombo(t *testing.T) {
	e := newTestEngine(t)
	p := &e.world.Player
	p.Y = e.world.FloorY() - p.Radius - 2
	p.VY = 4
	p.Grounded = false
	e.world.Combo = 3

	events := e.Advance(frameMs, Input{})

	if e.world.Combo != 0 {
		t.Errorf("combo = %d, want 0 after landing", e.world.Combo)
	}
	if !e.world.Player.Grounded {
		t.Error("player should be grounded")
	}
	landed := false
	for _, ev := range events {
		if ev.Kind == core.EventLanded {
			landed = true
		}
	}
	if !landed {
		t.Error("expected a landed event")
	}
}

func TestComboSurvivesWhileGrounded(t *testing.T) {
	e := newTestEngine(t)
	e.world.Combo = 2 // Grounded from the start, so no transition happens

	events := e.Advance(frameMs, Input{})
	if e.world.Combo != 2 {
		t.Errorf("combo = %d, want 2 without a landing transition", e.world.Combo)
	}
	for _, ev := range events {
		if ev.Kind == core.EventLanded {
			t.Error("no landed event expected while staying on the floor")
		}
	}
}

func TestStompChainScoring(t *testing.T) {
	e := newTestEngine(t)

	var points []int
	for i, x := range []float64{200, 400, 600} {
		en := walker(e, KindSlow, x)
		e.world.Enemies = []Enemy{en}
		hover(e, en)

		events := stompEvents(e.Advance(frameMs, Input{}))
		if len(events) != 1 {
			t.Fatalf("stomp %d: got %d stomp events", i+1, len(events))
		}
		points = append(points, events[0].Points)
		if e.GameOver() {
			t.Fatalf("stomp %d ended the game", i+1)
		}
	}

	if !reflect.DeepEqual(points, []int{100, 200, 300}) {
		t.Errorf("points = %v, want [100 200 300]", points)
	}
	if e.Score() != 600 {
		t.Errorf("score = %d, want 600", e.Score())
	}
	if e.world.Combo != 3 {
		t.Errorf("combo = %d, want 3", e.world.Combo)
	}
}

func TestStompBouncesAndDefeats(t *testing.T) {
	e := newTestEngine(t)
	en := walker(e, KindSlow, 400)
	en.VX = 3.2
	e.world.Enemies = []Enemy{en}
	hover(e, en)

	e.Advance(frameMs, Input{})

	got := e.world.Enemies[0]
	if got.Alive || !got.Falling {
		t.Errorf("stomped enemy should be dead and falling: %+v", got)
	}
	if math.Abs(got.VX-3.2*0.4) > 1e-9 {
		t.Errorf("enemy vx = %v, want %v", got.VX, 3.2*0.4)
	}
	if e.world.Player.VY != -16*0.8 {
		t.Errorf("player vy = %v, want %v", e.world.Player.VY, -16*0.8)
	}

	if len(e.world.Popups) != 1 {
		t.Fatalf("popups = %d, want 1", len(e.world.Popups))
	}
	pop := e.world.Popups[0]
	if pop.Value != 100 || pop.Chain {
		t.Errorf("popup = %+v, want +100 without chain", pop)
	}
}

func TestTwoSidedChain(t *testing.T) {
	e := newTestEngine(t)
	left := walker(e, KindSlow, 250)
	left.VX = 3.2
	right := walker(e, KindSlow, 550)
	right.VX = -3.2
	e.world.Enemies = []Enemy{left, right}

	hover(e, e.world.Enemies[0])
	e.Advance(frameMs, Input{})
	if e.Score() != 100 || e.world.Combo != 1 {
		t.Fatalf("after first stomp: score=%d combo=%d", e.Score(), e.world.Combo)
	}

	hover(e, e.world.Enemies[1])
	e.Advance(frameMs, Input{})

	if e.GameOver() {
		t.Fatal("second stomp should not end the game")
	}
	if e.Score() != 300 {
		t.Errorf("score = %d, want 300", e.Score())
	}
	if e.world.Combo != 2 {
		t.Errorf("combo = %d, want 2", e.world.Combo)
	}
	last := e.world.Popups[len(e.world.Popups)-1]
	if !last.Chain || last.Value != 200 {
		t.Errorf("second popup = %+v, want chain +200", last)
	}
}

func TestSideContactEndsGame(t *testing.T) {
	e := newTestEngine(t)
	en := walker(e, KindSlow, e.world.Player.X+60)
	e.world.Enemies = []Enemy{en}

	events := e.Advance(frameMs, Input{Jump: true})

	if !e.GameOver() {
		t.Fatal("side contact should end the game")
	}
	got := e.world.Enemies[0]
	if !got.Alive || got.Falling {
		t.Errorf("lethal enemy must not also be stomped: %+v", got)
	}
	if e.Score() != 0 {
		t.Errorf("score = %d, want 0", e.Score())
	}
	if len(events) == 0 || events[len(events)-1].Kind != core.EventGameOver {
		t.Errorf("last event should be game over, got %v", events)
	}
	if !e.world.Player.Grounded {
		t.Error("jump must not apply once the game is over")
	}
}

// lethalAt returns a live enemy centred beside the player that overlaps it
// from the side.
func lethalAt(e *Engine, x, y float64) Enemy {
	r := 30.0
	return Enemy{
		Kind:         KindSlow,
		X:            x,
		Y:            y,
		Radius:       r,
		Alive:        true,
		GroundOffset: e.world.FloorY() - r - y,
	}
}

func TestStompThenLethalInSameTick(t *testing.T) {
	e := newTestEngine(t)
	stompable := walker(e, KindSlow, 400)
	hover(e, stompable)
	p := e.world.Player
	e.world.Enemies = []Enemy{stompable, lethalAt(e, p.X+20, p.Y)}

	e.Advance(frameMs, Input{})

	if e.Score() != 100 {
		t.Errorf("score = %d, want 100 from the earlier stomp", e.Score())
	}
	if e.world.Enemies[0].Alive || !e.world.Enemies[0].Falling {
		t.Errorf("first enemy should be stomped: %+v", e.world.Enemies[0])
	}
	if !e.GameOver() {
		t.Error("contact with the second enemy should end the game")
	}
}

func TestLethalStopsScanBeforeStomp(t *testing.T) {
	e := newTestEngine(t)
	stompable := walker(e, KindSlow, 400)
	hover(e, stompable)
	p := e.world.Player
	e.world.Enemies = []Enemy{lethalAt(e, p.X+20, p.Y), stompable}

	e.Advance(frameMs, Input{})

	if !e.GameOver() {
		t.Fatal("contact with the first enemy should end the game")
	}
	if e.Score() != 0 {
		t.Errorf("score = %d, want 0", e.Score())
	}
	if !e.world.Enemies[1].Alive || e.world.Enemies[1].Falling {
		t.Errorf("later enemy must not be processed: %+v", e.world.Enemies[1])
	}
}

func TestSpawnSurvivesOnLargeWorld(t *testing.T) {
	e := NewEngine(config.DefaultTrampolineConfig(), 2200, 2600, 1)
	if r := e.world.Player.Radius; r != 132 {
		t.Fatalf("radius = %v, want 132", r)
	}

	spawns := 0
	for range 125 {
		for _, ev := range e.Advance(frameMs, Input{}) {
			if ev.Kind == core.EventSpawned {
				spawns++
			}
		}
	}

	if spawns != 1 {
		t.Fatalf("spawns = %d, want 1", spawns)
	}
	if len(e.world.Enemies) != 1 || !e.world.Enemies[0].Alive {
		t.Fatalf("spawned enemy should still be walking, enemies = %+v", e.world.Enemies)
	}
	en := e.world.Enemies[0]
	side := e.cfg.Cull.Side
	if en.X < -side || en.X > e.world.Width+side {
		t.Errorf("enemy at x=%v outside the cull band", en.X)
	}
}

func TestNoStepAfterGameOver(t *testing.T) {
	e := newTestEngine(t)
	e.world.GameOver = true
	before := e.Snapshot()

	if events := e.Advance(frameMs, Input{Right: true, Jump: true}); events != nil {
		t.Errorf("events after game over = %v", events)
	}
	if !reflect.DeepEqual(before, e.Snapshot()) {
		t.Error("world changed after game over")
	}
	if e.Jump() {
		t.Error("jump should fail after game over")
	}
}

func TestCulling(t *testing.T) {
	e := newTestEngine(t)
	w := e.world

	gone := walker(e, KindSlow, w.Width+161)
	goneLeft := walker(e, KindSlow, -161)
	falling := walker(e, KindSlow, 100)
	falling.Alive = false
	falling.Falling = true
	falling.Y = w.Height + 121
	kept := walker(e, KindSlow, w.Width+159)

	w.Enemies = []Enemy{gone, goneLeft, falling, kept}
	e.Advance(frameMs, Input{})

	if len(w.Enemies) != 1 {
		t.Fatalf("enemies = %d, want 1", len(w.Enemies))
	}
	if w.Enemies[0].X != w.Width+159 {
		t.Errorf("wrong enemy kept: %+v", w.Enemies[0])
	}
}

func TestSpawnAfterInterval(t *testing.T) {
	e := newTestEngine(t)

	var spawned []core.Event
	ticks := 0
	for len(spawned) == 0 && ticks < 200 {
		for _, ev := range e.Advance(frameMs, Input{}) {
			if ev.Kind == core.EventSpawned {
				spawned = append(spawned, ev)
			}
		}
		ticks++
	}

	if ticks != 120 {
		t.Errorf("first spawn after %d ticks, want 120", ticks)
	}
	if len(e.world.Enemies) != 1 {
		t.Fatalf("enemies = %d, want 1", len(e.world.Enemies))
	}
	en := e.world.Enemies[0]
	if en.Kind != KindSlow || spawned[0].Detail != "onion" {
		t.Errorf("below the unlock score only slow enemies spawn, got %v", en.Kind)
	}
	inward := (en.X < 0 && en.VX > 0) || (en.X > e.world.Width && en.VX < 0)
	if !inward {
		t.Errorf("enemy should start off screen walking inward: x=%v vx=%v", en.X, en.VX)
	}
	if e.world.SpawnTimer != 0 {
		t.Errorf("spawn timer = %v, want 0", e.world.SpawnTimer)
	}
}

func TestFastKindUnlock(t *testing.T) {
	cfg := config.DefaultTrampolineConfig()
	cfg.Spawn.FastChance = 1
	e := NewEngine(cfg, 800, 600, 3)

	e.spawnEnemy()
	if e.world.Enemies[0].Kind != KindSlow {
		t.Error("fast kind should be locked at score 0")
	}

	e.world.Score = 500
	e.spawnEnemy()
	fast := e.world.Enemies[1]
	if fast.Kind != KindFast {
		t.Fatal("fast kind should unlock at 500")
	}
	if math.Abs(math.Abs(fast.VX)-7.2) > 1e-9 {
		t.Errorf("fast speed = %v, want 7.2", fast.VX)
	}
	if fast.GroundOffset <= 0 {
		t.Error("fast enemies walk slightly above the floor")
	}
}

func TestPopupsExpire(t *testing.T) {
	e := newTestEngine(t)
	en := walker(e, KindSlow, 400)
	e.world.Enemies = []Enemy{en}
	hover(e, en)
	e.Advance(frameMs, Input{})

	startY := e.world.Popups[0].Y
	e.Advance(100, Input{}) // Capped to 50ms
	pop := e.world.Popups[0]
	if math.Abs(pop.Y-(startY-0.04*50)) > 1e-9 {
		t.Errorf("popup y = %v, want %v", pop.Y, startY-2)
	}
	if life := e.Snapshot().Popups[0].Life; math.Abs(life-850.0/900) > 1e-9 {
		t.Errorf("life = %v, want %v", life, 850.0/900)
	}

	for i := 0; i < 17; i++ {
		e.Advance(50, Input{})
	}
	if len(e.world.Popups) != 0 {
		t.Errorf("popups = %d, want 0 after 900ms", len(e.world.Popups))
	}
}

func TestNonPositiveDelta(t *testing.T) {
	e := newTestEngine(t)
	e.world.Player.VX = 3
	before := e.world.Player

	e.Advance(0, Input{Right: true})
	e.Advance(-20, Input{Left: true})
	e.Advance(math.NaN(), Input{})

	if e.world.Player != before {
		t.Errorf("player moved on non-positive dt: %+v", e.world.Player)
	}
	if e.world.Elapsed != 0 {
		t.Errorf("elapsed = %v, want 0", e.world.Elapsed)
	}

	e.Advance(0, Input{Jump: true})
	if e.world.Player.VY != -16 {
		t.Error("jump should still apply on a zero-length frame")
	}
}

func TestDeltaCapped(t *testing.T) {
	e := newTestEngine(t)
	e.Advance(1000, Input{})
	if e.world.Elapsed != 50 {
		t.Errorf("elapsed = %v, want 50", e.world.Elapsed)
	}
}

func TestResetIdempotent(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 300; i++ {
		e.Advance(frameMs, Input{Right: i%2 == 0, Jump: i%40 == 0})
	}

	e.Reset()
	first := e.Snapshot()
	e.Reset()
	second := e.Snapshot()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("snapshots differ:\n%+v\n%+v", first, second)
	}
	if first.Score != 0 || len(first.Enemies) != 0 || len(first.Popups) != 0 {
		t.Errorf("reset should clear the session: %+v", first)
	}
	if first.Player.VX != 0 || first.Player.VY != 0 || !first.Player.Grounded {
		t.Errorf("player should rest after reset: %+v", first.Player)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		e := NewEngine(config.DefaultTrampolineConfig(), 800, 600, 99)
		bot := NewAutopilot()
		for i := 0; i < 3000 && !e.GameOver(); i++ {
			e.Advance(frameMs, bot.Decide(e.Snapshot()))
		}
		return e.Snapshot()
	}

	if a, b := run(), run(); !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and inputs diverged: score %d vs %d", a.Score, b.Score)
	}
}

func TestResizeKeepsSession(t *testing.T) {
	e := newTestEngine(t)
	e.world.Score = 300
	e.world.Combo = 2
	e.world.Player.X = 700
	e.world.Enemies = []Enemy{walker(e, KindSlow, 100)}

	e.Resize(400, 300)

	w := e.world
	if w.Score != 300 || w.Combo != 2 || len(w.Enemies) != 1 {
		t.Errorf("resize lost state: score=%d combo=%d enemies=%d", w.Score, w.Combo, len(w.Enemies))
	}
	if w.FloorHeight != 75 {
		t.Errorf("floor height = %v, want 75", w.FloorHeight)
	}
	p := w.Player
	if p.X != 400-36 {
		t.Errorf("x = %v, want re-clamped to 364", p.X)
	}
	if p.Y+p.Radius > w.FloorY() {
		t.Errorf("player below the new floor: y=%v", p.Y)
	}

	e.Resize(0, 300)
	if w.Width != 400 {
		t.Error("non-positive resize should be ignored")
	}
}

func TestNarrowWorldCentresPlayer(t *testing.T) {
	e := NewEngine(config.DefaultTrampolineConfig(), 50, 600, 1)
	if x := e.world.Player.X; x != 25 {
		t.Errorf("x = %v, want 25", x)
	}
}

func TestNilEngineIsNoop(t *testing.T) {
	var e *Engine
	if e.Advance(frameMs, Input{Jump: true}) != nil {
		t.Error("nil engine should produce no events")
	}
	e.Reset()
	e.ResetWithSeed(3)
	e.Resize(100, 100)
	if e.Jump() {
		t.Error("nil engine cannot jump")
	}
	if e.Score() != 0 || !e.GameOver() {
		t.Error("nil engine should report an ended, empty session")
	}
	if !reflect.DeepEqual(e.Snapshot(), Snapshot{}) {
		t.Error("nil engine should yield the zero snapshot")
	}

	zero := &Engine{}
	zero.Advance(frameMs, Input{})
	zero.Reset()
	if !reflect.DeepEqual(zero.Snapshot(), Snapshot{}) {
		t.Error("uninitialised engine should yield the zero snapshot")
	}
}
