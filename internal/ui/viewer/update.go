package viewer

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/lightbox/internal/gallery"
	"github.com/llehouerou/lightbox/internal/keymap"
	"github.com/llehouerou/lightbox/internal/ui"
)

// LoopMsg reports that gallery callbacks are queued on the event loop.
type LoopMsg struct{}

// FrameMsg requests a redraw while slides are moving.
type FrameMsg time.Time

// galleryKeys are the actions the gallery handles itself, subject to its
// keyboard options.
var galleryKeys = map[keymap.Action]gallery.Key{
	keymap.ActionClose:           gallery.KeyEscape,
	keymap.ActionPrev:            gallery.KeyLeft,
	keymap.ActionNext:            gallery.KeyRight,
	keymap.ActionToggleControls:  gallery.KeyEnter,
	keymap.ActionToggleSlideshow: gallery.KeySpace,
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.title != "" {
		return tea.Batch(tea.SetWindowTitle(m.title), m.waitLoop())
	}
	return m.waitLoop()
}

// waitLoop blocks until the loop has callbacks to run. Exactly one waiter is
// outstanding at any time: each LoopMsg schedules the next one.
func (m *Model) waitLoop() tea.Cmd {
	ready := m.loop.Ready()
	return func() tea.Msg {
		<-ready
		return LoopMsg{}
	}
}

// nextFrame schedules a redraw if something is moving and none is pending.
func (m *Model) nextFrame() tea.Cmd {
	if m.framing || !m.gallery.Animating() {
		return nil
	}
	m.framing = true
	return tea.Tick(ui.FrameInterval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		if !m.started {
			m.started = true
			m.open()
		} else {
			m.gallery.Resize()
		}

	case LoopMsg:
		m.loop.Drain()
		cmds = append(cmds, m.waitLoop())

	case FrameMsg:
		m.framing = false

	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}

	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	if m.closed && !m.keepOpen {
		m.quitting = true
		return m, tea.Quit
	}
	cmds = append(cmds, m.nextFrame())
	return m, tea.Batch(cmds...)
}

// open opens the gallery with its controls visible.
func (m *Model) open() {
	m.gallery.Open()
	if !m.gallery.Display().Controls {
		m.gallery.ToggleControls()
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	action := m.resolver.ResolveMsg(msg)
	switch action {
	case keymap.ActionQuit:
		m.quitting = true
		return tea.Quit
	case keymap.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.gallery.Resize()
	case keymap.ActionInfo:
		m.showInfo = !m.showInfo
		m.gallery.Resize()
	case keymap.ActionFirst:
		m.gallery.Slide(0, 0)
	case keymap.ActionLast:
		m.gallery.Slide(m.gallery.Count()-1, 0)
	case keymap.ActionReopen:
		if !m.gallery.IsOpen() {
			m.open()
		}
	default:
		if k, ok := galleryKeys[action]; ok {
			m.gallery.KeyDown(k)
		}
	}
	return nil
}

// handleMouse turns terminal mouse reports into emulated pointer gestures
// and clicks. A click is delivered when press and release hit the same
// target; the gallery swallows clicks ending a drag.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	p := gallery.Point{X: float64(msg.X), Y: float64(msg.Y - m.stripTop())}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
			m.gallery.Prev()
		case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
			m.gallery.Next()
		case tea.MouseButtonLeft:
			m.pressed = true
			m.pressTarget = m.targetAt(msg.X, msg.Y)
			if m.inStrip(msg.Y) {
				m.gallery.PointerDown(p, gallery.ButtonLeft)
			}
		default:
		}

	case tea.MouseActionMotion:
		if !m.pressed {
			return
		}
		if !m.inStrip(msg.Y) || msg.X < 0 || msg.X >= m.Width() {
			m.gallery.PointerLeave()
			return
		}
		m.gallery.PointerMove(p)

	case tea.MouseActionRelease:
		if !m.pressed {
			return
		}
		m.pressed = false
		m.gallery.PointerUp()
		if target := m.targetAt(msg.X, msg.Y); target == m.pressTarget {
			m.gallery.Click(target)
		}
	}
}
