package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/trampoline-arcade/internal/core"
)

// KeyMap defines the key bindings for playing.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Jump       key.Binding
	Start      key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Start, k.Pause, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Jump},
		{k.Start, k.Restart, k.Pause},
		{k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Jump: key.NewBinding(
			key.WithKeys("up", "w", "k", " "),
			key.WithHelp("↑/space", "jump"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "play again"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// MapKey translates a key message to an action. running selects between
// the in-session meaning of shared keys (space jumps) and the overlay
// meaning (space starts). Returns the action (may be ActionNone) and
// whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg, running bool) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case running && key.Matches(msg, k.Jump):
		return core.ActionJump, false
	case !running && key.Matches(msg, k.Start):
		return core.ActionStart, false
	case !running && key.Matches(msg, k.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	}

	return core.ActionNone, false
}

// Terminals report key presses and auto-repeats but never releases.
// HoldTracker turns that stream back into a held direction: a press holds
// for Initial, long enough to reach the terminal's repeat delay, and every
// repeat extends the hold by Repeat. Pressing the opposite direction
// releases the first one.
type HoldTracker struct {
	Initial time.Duration
	Repeat  time.Duration

	dir   core.Action
	until time.Time
}

// NewHoldTracker returns a tracker tuned for common repeat settings.
func NewHoldTracker() *HoldTracker {
	return &HoldTracker{
		Initial: 550 * time.Millisecond,
		Repeat:  120 * time.Millisecond,
	}
}

// Press records a left or right key event at now.
func (h *HoldTracker) Press(dir core.Action, now time.Time) {
	if dir != core.ActionLeft && dir != core.ActionRight {
		return
	}
	if dir == h.dir && now.Before(h.until) {
		if next := now.Add(h.Repeat); next.After(h.until) {
			h.until = next
		}
		return
	}
	h.dir = dir
	h.until = now.Add(h.Initial)
}

// Held returns the direction held at now, or ActionNone.
func (h *HoldTracker) Held(now time.Time) core.Action {
	if h.dir == core.ActionNone || !now.Before(h.until) {
		return core.ActionNone
	}
	return h.dir
}

// Release drops any held direction.
func (h *HoldTracker) Release() {
	h.dir = core.ActionNone
	h.until = time.Time{}
}
