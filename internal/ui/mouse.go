package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lanes/internal/engine"
)

// doubleClickWindow is the longest gap between two left presses on the same
// cell that still counts as a double-click.
const doubleClickWindow = 400 * time.Millisecond

// pointer tracks the terminal mouse between messages.
type pointer struct {
	held      engine.Button
	lastClick time.Time
	lastX     int
	lastY     int
}

func buttonOf(b tea.MouseButton) engine.Button {
	switch b {
	case tea.MouseButtonLeft:
		return engine.ButtonLeft
	case tea.MouseButtonRight:
		return engine.ButtonRight
	case tea.MouseButtonMiddle:
		return engine.ButtonMiddle
	default:
		return engine.ButtonNone
	}
}

func modsOf(msg tea.MouseMsg) engine.Modifiers {
	var mods engine.Modifiers
	if msg.Ctrl {
		mods |= engine.ModCtrl
	}
	if msg.Shift {
		mods |= engine.ModShift
	}
	if msg.Alt {
		mods |= engine.ModAlt
	}
	return mods
}

// translate turns a mouse message into engine inputs. top is the screen row
// where the canvas starts. It returns nil for messages the engine ignores.
func (p *pointer) translate(msg tea.MouseMsg, top int, now time.Time) engine.Input {
	x, y := float64(msg.X), float64(msg.Y-top)

	if tea.MouseEvent(msg).IsWheel() {
		delta := 0.0
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			delta = 1
		case tea.MouseButtonWheelDown:
			delta = -1
		default:
			return nil
		}
		return engine.WheelScrolled{Delta: delta, X: x, Y: y, Mods: modsOf(msg)}
	}

	switch msg.Action {
	case tea.MouseActionPress:
		b := buttonOf(msg.Button)
		if b == engine.ButtonNone {
			return nil
		}
		if b == engine.ButtonLeft {
			double := !p.lastClick.IsZero() &&
				now.Sub(p.lastClick) <= doubleClickWindow &&
				msg.X == p.lastX && msg.Y == p.lastY
			if double {
				p.lastClick = time.Time{}
				p.held = engine.ButtonNone
				return engine.PointerDoubleClicked{X: x, Y: y}
			}
			p.lastClick, p.lastX, p.lastY = now, msg.X, msg.Y
		}
		p.held = b
		return engine.PointerDown{Button: b, X: x, Y: y}

	case tea.MouseActionRelease:
		b := buttonOf(msg.Button)
		if b == engine.ButtonNone {
			b = p.held
		}
		p.held = engine.ButtonNone
		if b == engine.ButtonNone {
			return nil
		}
		return engine.PointerUp{Button: b, X: x, Y: y}

	case tea.MouseActionMotion:
		if p.held != engine.ButtonNone {
			return engine.PointerDragged{X: x, Y: y}
		}
		return engine.PointerMoved{X: x, Y: y}
	}
	return nil
}

// reset forgets any held button, as when the terminal loses focus.
func (p *pointer) reset() {
	p.held = engine.ButtonNone
	p.lastClick = time.Time{}
}
