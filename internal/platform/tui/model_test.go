package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/trampoline-arcade/internal/core"
)

// scriptedGame records what the model feeds it and ends after a set number
// of steps.
type scriptedGame struct {
	started  bool
	over     bool
	endAfter int
	steps    int
	frames   []core.InputFrame
	dts      []time.Duration
	resized  [2]int
	resets   int
}

func (g *scriptedGame) ID() string { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }
func (g *scriptedGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *scriptedGame) Start() { g.started, g.over, g.steps = true, false, 0 }
func (g *scriptedGame) Resize(w, h int) { g.resized = [2]int{w, h} }
func (g *scriptedGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "scripted", core.ColorText) }
func (g *scriptedGame) State() core.GameState {
	return core.GameState{Started: g.started, GameOver: g.over}
}

func (g *scriptedGame) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	if g.started && !g.over {
		g.steps++
		g.frames = append(g.frames, in.Clone())
		g.dts = append(g.dts, dt)
		if g.steps >= g.endAfter {
			g.over = true
		}
	}
	return core.StepResult{State: g.State()}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel(g *scriptedGame) Model {
	m := NewModel(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}, nil)
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelTicksOnlyWhileRunning(t *testing.T) {
	g := &scriptedGame{endAfter: 3}
	m := newTestModel(g)

	if g.resets != 1 {
		t.Fatalf("Init should reset the game once, got %d", g.resets)
	}
	if m.Ticking() {
		t.Fatal("no ticks before the session starts")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || !m.Ticking() || !g.started {
		t.Fatal("enter should start the session and schedule a tick")
	}

	base := time.Unix(100, 0)
	for i := 0; i < 2; i++ {
		m, cmd = update(t, m, TickMsg(base.Add(time.Duration(i)*20*time.Millisecond)))
		if cmd == nil {
			t.Fatalf("tick %d should schedule the next tick", i)
		}
	}

	m, cmd = update(t, m, TickMsg(base.Add(40*time.Millisecond)))
	if cmd != nil {
		t.Error("no tick should be scheduled after game over")
	}
	if m.Ticking() || !m.State().GameOver {
		t.Errorf("model should stop ticking on game over: %+v", m.State())
	}

	want := []time.Duration{0, 20 * time.Millisecond, 20 * time.Millisecond}
	for i, dt := range g.dts {
		if dt != want[i] {
			t.Errorf("dt[%d] = %v, want %v", i, dt, want[i])
		}
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	g := &scriptedGame{endAfter: 1}
	m := newTestModel(g)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg(time.Unix(1, 0)))
	if !g.over {
		t.Fatal("game should be over")
	}

	m, cmd := update(t, m, runeKey('r'))
	if cmd == nil || !m.Ticking() || g.over {
		t.Error("r should start a new session after game over")
	}
}

func TestModelJumpIsEdge(t *testing.T) {
	g := &scriptedGame{endAfter: 10}
	m := newTestModel(g)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, TickMsg(time.Unix(1, 0)))
	m, _ = update(t, m, TickMsg(time.Unix(2, 0)))

	if !g.frames[0].Has(core.ActionJump) {
		t.Error("first tick should carry the jump")
	}
	if g.frames[1].Has(core.ActionJump) {
		t.Error("jump should be consumed by one tick")
	}
}

func TestModelSpaceStartsThenJumps(t *testing.T) {
	g := &scriptedGame{endAfter: 10}
	m := newTestModel(g)

	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	m, _ = update(t, m, space)
	if !g.started {
		t.Fatal("space should start from the title overlay")
	}

	m, _ = update(t, m, space)
	m, _ = update(t, m, TickMsg(time.Unix(1, 0)))
	if !g.frames[0].Has(core.ActionJump) {
		t.Error("space should jump while running")
	}
}

func TestModelHeldDirection(t *testing.T) {
	g := &scriptedGame{endAfter: 10}
	m := newTestModel(g)
	clock := time.Unix(50, 0)
	m.now = func() time.Time { return clock }

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})

	m, _ = update(t, m, TickMsg(clock))
	clock = clock.Add(time.Second)
	m, _ = update(t, m, TickMsg(clock))

	if !g.frames[0].Has(core.ActionLeft) {
		t.Error("left should be held right after the press")
	}
	if g.frames[1].Has(core.ActionLeft) {
		t.Error("left should be released without repeats")
	}
}

func TestModelResizeKeepsSession(t *testing.T) {
	g := &scriptedGame{endAfter: 10}
	m := newTestModel(g)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if g.resized != [2]int{100, 39} {
		t.Errorf("game resized to %v, want [100 39]", g.resized)
	}
	if g.resets != 1 || !g.started {
		t.Error("resize must not reset the session")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(&scriptedGame{endAfter: 1})

	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(&scriptedGame{endAfter: 1})
	view := m.View()
	if !strings.Contains(view, "scripted") {
		t.Error("view should contain the game render")
	}
	if !strings.Contains(view, "jump") {
		t.Error("view should contain the help footer")
	}
}
