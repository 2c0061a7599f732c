package viewer

import (
	"errors"
	"fmt"
	"image"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/lightbox/internal/errmsg"
	"github.com/llehouerou/lightbox/internal/gallery"
	"github.com/llehouerou/lightbox/internal/media"
	"github.com/llehouerou/lightbox/internal/ui"
	"github.com/llehouerou/lightbox/internal/ui/render"
	"github.com/llehouerou/lightbox/internal/ui/styles"
)

const (
	prevArrow   = "‹"
	nextArrow   = "›"
	closeButton = "✕"
	playButton  = "▶"
	pauseButton = "‖"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting || m.Width() <= 0 || m.Height() <= 0 {
		return ""
	}
	if m.closed {
		return m.renderClosed()
	}

	lines := make([]string, 0, m.Height())
	lines = append(lines, m.renderHeader())
	lines = append(lines, m.renderStrip()...)
	if m.showInfo {
		lines = append(lines, m.renderInfo())
	}
	lines = append(lines, m.renderFooter()...)
	if len(lines) > m.Height() {
		lines = lines[:m.Height()]
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderClosed() string {
	s := styles.T().S()
	msg := s.Muted.Render("Gallery closed") + "\n" +
		s.Subtle.Render("o reopen · q quit")
	return lipgloss.Place(m.Width(), m.Height(), lipgloss.Center, lipgloss.Center, msg)
}

func (m *Model) renderHeader() string {
	w := m.Width()
	d := m.gallery.Display()
	if !d.Controls {
		return render.EmptyLine(w)
	}
	t := styles.T()
	s := t.S()

	left := render.EmptyLine(ui.ButtonWidth)
	if m.hasPrev(d) {
		left = s.Arrow.Render(render.Pad(prevArrow, ui.ButtonWidth))
	}

	play := render.EmptyLine(ui.ButtonWidth)
	if !d.Single {
		if d.Playing {
			play = s.Playing.Render(render.Center(pauseButton, ui.ButtonWidth))
		} else {
			play = s.Muted.Render(render.Center(playButton, ui.ButtonWidth))
		}
	}
	next := render.EmptyLine(ui.ButtonWidth)
	if m.hasNext(d) {
		next = s.Arrow.Render(fmt.Sprintf("%*s", ui.ButtonWidth, nextArrow))
	}
	counter := s.Counter.Render(fmt.Sprintf("%d/%d", m.gallery.Index()+1, m.gallery.Count()))
	right := counter + play + s.Muted.Render(render.Center(closeButton, ui.ButtonWidth)) + next

	room := w - lipgloss.Width(left) - lipgloss.Width(right) - 1
	title := t.Title(render.Truncate(d.Title, max(room, 0)))
	return render.Row(left+title, right, w)
}

func (m *Model) hasPrev(d gallery.Display) bool {
	return !d.Single && !d.LeftEdge
}

func (m *Model) hasNext(d gallery.Display) bool {
	return !d.Single && !d.RightEdge
}

func (m *Model) renderStrip() []string {
	w, h := m.stripSize()
	if !m.gallery.Display().Visible {
		return render.Compose(w, h)
	}
	var layers []render.Layer
	for i := range m.gallery.Count() {
		if l, _, ok := m.slideLayer(i, w, h); ok {
			layers = append(layers, l)
		}
	}
	return render.Compose(w, h, layers...)
}

// slideLayer draws slide i where the gallery currently places it. content
// reports whether the layer shows the item itself rather than a placeholder.
func (m *Model) slideLayer(i, w, h int) (layer render.Layer, content, ok bool) {
	slide := m.gallery.SlideAt(i)
	if slide == nil || w <= 0 || h <= 0 {
		return render.Layer{}, false, false
	}
	fx, fy := m.gallery.Offset(i)
	x, y := int(math.Round(fx)), int(math.Round(fy))
	if x <= -w || x >= w {
		return render.Layer{}, false, false
	}

	var lines []string
	switch slide.ContentState() {
	case gallery.ContentLoaded:
		lines, content = m.contentLines(slide.Content(), w, h)
		if !content {
			lines = []string{styles.T().S().Placeholder.Render("no preview")}
		}
	case gallery.ContentLoading:
		lines = []string{styles.T().S().Placeholder.Render("loading…")}
	case gallery.ContentErrored:
		lines = []string{styles.T().S().Error.Render(render.Truncate(m.loadError(i, slide.Err()), w))}
	default:
		return render.Layer{}, false, false
	}
	lines = slices.Clone(lines)
	for j, line := range lines {
		if lipgloss.Width(line) < w {
			lines[j] = render.Center(line, w)
		}
	}
	top := (h - len(lines)) / 2
	return render.Layer{X: x, Y: y + top, Width: w, Lines: lines}, content, true
}

func (m *Model) contentLines(c gallery.Content, w, h int) ([]string, bool) {
	if p, ok := c.(media.Picture); ok {
		if lines := p.Lines(w, h); len(lines) > 0 {
			return lines, true
		}
	}
	if t, ok := c.(*media.Track); ok {
		s := styles.T().S()
		lines := []string{s.Arrow.Render("♪"), s.Base.Render(render.Truncate(t.Caption(), w))}
		if album := t.Album(); album != "" {
			lines = append(lines, s.Muted.Render(render.Truncate(album, w)))
		}
		return lines, true
	}
	return nil, false
}

// loadError formats a slide failure for display.
func (m *Model) loadError(i int, err error) string {
	var le *gallery.ContentLoadError
	if errors.As(err, &le) {
		err = le.Err
	}
	d := m.gallery.Describe(i)
	name := d.Title
	if name == "" {
		name = d.URL
	}
	op := errmsg.OpImageLoad
	switch {
	case errors.Is(err, image.ErrFormat):
		op = errmsg.OpImageDecode
	case d.Kind() == "audio":
		op = errmsg.OpCoverLoad
	}
	return errmsg.FormatWith(op, render.Sanitize(name), err)
}

// renderInfo describes the active slide's media.
func (m *Model) renderInfo() string {
	w := m.Width()
	s := styles.T().S()
	i := m.gallery.Index()
	d := m.gallery.Describe(i)

	var parts []string
	if slide := m.gallery.SlideAt(i); slide != nil && slide.ContentState() == gallery.ContentLoaded {
		if t, ok := slide.Content().(*media.Track); ok && t.Album() != "" {
			parts = append(parts, t.Album())
		}
		if c, ok := slide.Content().(interface{ Info() media.Info }); ok {
			parts = append(parts, describe(c.Info())...)
		}
	}
	if loc := media.Location(d); loc != "" {
		parts = append(parts, loc)
	}
	return s.Muted.Render(render.TruncateAndPad(strings.Join(parts, " · "), w))
}

func describe(info media.Info) []string {
	var parts []string
	if info.Format != "" {
		parts = append(parts, strings.ToUpper(info.Format))
	}
	if info.Width > 0 && info.Height > 0 {
		parts = append(parts, fmt.Sprintf("%d×%d", info.Width, info.Height))
	}
	if info.Bytes > 0 {
		parts = append(parts, humanize.Bytes(uint64(info.Bytes))) //nolint:gosec // checked positive
	}
	if info.Cached {
		parts = append(parts, "cached")
	}
	return parts
}

func (m *Model) renderFooter() []string {
	w := m.Width()
	n := m.footerHeight()
	lines := make([]string, n)
	if m.gallery.Display().Controls || m.help.ShowAll {
		copy(lines, strings.Split(m.help.View(m.helpMap), "\n"))
	}
	for i, line := range lines {
		lines[i] = render.PadStyled(line, w)
	}
	return lines
}

// targetAt returns the role of what is drawn at cell (x, y).
func (m *Model) targetAt(x, y int) gallery.Target {
	d := m.gallery.Display()
	w := m.Width()

	switch {
	case y < m.stripTop():
		if !d.Controls {
			return gallery.TargetToggle
		}
		switch {
		case x < ui.ButtonWidth && m.hasPrev(d):
			return gallery.TargetPrev
		case x >= w-ui.ButtonWidth:
			if m.hasNext(d) {
				return gallery.TargetNext
			}
		case x >= w-2*ui.ButtonWidth:
			return gallery.TargetClose
		case x >= w-3*ui.ButtonWidth && !d.Single:
			return gallery.TargetPlayPause
		}
		return gallery.TargetNone

	case m.inStrip(y):
		sw, sh := m.stripSize()
		layer, content, ok := m.slideLayer(m.gallery.Index(), sw, sh)
		if !ok || !content {
			return gallery.TargetBackground
		}
		r := y - m.stripTop() - layer.Y
		if r >= 0 && r < len(layer.Lines) && render.CellAt(layer.Lines[r], x-layer.X) != " " {
			return gallery.TargetContent
		}
		return gallery.TargetBackground
	}
	return gallery.TargetNone
}
