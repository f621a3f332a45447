package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trampoline-arcade/internal/core"
	"github.com/vovakirdan/trampoline-arcade/internal/registry"
)

// Model is the Bubble Tea model for running a game.
// The bottom terminal row holds the help footer; the game gets the rest.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       KeyMap
	keyMapper  *KeyMapper
	hold       *HoldTracker
	help       help.Model
	logger     *log.Logger // Optional event log
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	ticking    bool // A tick is scheduled
	quitting   bool
	now        func() time.Time
}

// NewModel creates a new Bubble Tea model for the given game.
// logger may be nil.
func NewModel(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	keys := DefaultKeyMap()
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		config:     cfg,
		keys:       keys,
		keyMapper:  NewKeyMapper(keys),
		hold:       NewHoldTracker(),
		help:       h,
		logger:     logger,
		inputFrame: core.NewInputFrame(),
		now:        time.Now,
	}
}

// playHeight is the number of rows left for the game above the footer.
func playHeight(screenH int) int {
	return max(1, screenH-1)
}

// Init resets the game to its title overlay. Ticks start with the session.
func (m Model) Init() tea.Cmd {
	cfg := m.config
	cfg.ScreenH = playHeight(cfg.ScreenH)
	m.game.Reset(cfg)
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	state := m.game.State()
	action, isQuit := m.keyMapper.MapKey(msg, state.Running())
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionStart, core.ActionRestart:
		return m.startSession()
	case core.ActionLeft, core.ActionRight:
		m.hold.Press(action, m.now())
	case core.ActionJump, core.ActionPause:
		// Edges, consumed by the next tick
		m.inputFrame.Set(action)
	}

	return m, nil
}

// startSession begins a new session and schedules ticks if none are pending.
func (m Model) startSession() (tea.Model, tea.Cmd) {
	m.game.Start()
	m.gameState = m.game.State()
	m.inputFrame.Clear()
	m.hold.Release()
	m.lastTick = time.Time{}

	if m.logger != nil {
		m.logger.Info("session started", "game", m.game.ID())
	}

	if m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, tickCmd(m.config.TickRate)
}

// handleResize processes window resize events without resetting the session.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playHeight(msg.Height))
	m.help.Width = msg.Width
	m.game.Resize(msg.Width, playHeight(msg.Height))
	return m, nil
}

// handleTick advances the game by the real time since the previous tick.
// Once the game is over no further tick is scheduled.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	var dt time.Duration
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now

	frame := m.inputFrame.Clone()
	if dir := m.hold.Held(m.now()); dir != core.ActionNone {
		frame.Set(dir)
	}

	result := m.game.Step(frame, dt)
	m.gameState = result.State
	m.inputFrame.Clear()
	m.logEvents(result.Events)

	if !result.State.Running() {
		m.ticking = false
		if m.logger != nil && result.State.GameOver {
			m.logger.Info("game over", "score", result.State.Score)
		}
		return m, nil
	}

	return m, tickCmd(m.config.TickRate)
}

func (m Model) logEvents(events []core.Event) {
	if m.logger == nil {
		return
	}
	for _, ev := range events {
		m.logger.Debug(ev.Kind.String(),
			"detail", ev.Detail,
			"points", ev.Points,
			"combo", ev.Combo,
		)
	}
}

// State returns the game state observed by the last tick or start.
func (m Model) State() core.GameState {
	return m.gameState
}

// Ticking reports whether a tick is scheduled.
func (m Model) Ticking() bool {
	return m.ticking
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + footerStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
