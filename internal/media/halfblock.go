package media

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

const upperHalf = "▀"

// RenderHalfBlocks draws img into at most cols x rows terminal cells. Each
// cell shows two vertical pixels: the upper one as foreground of "▀", the
// lower one as background. The aspect ratio is kept; the picture is
// centered horizontally and lines are padded to cols.
func RenderHalfBlocks(img image.Image, cols, rows int) []string {
	if img == nil || cols <= 0 || rows <= 0 {
		return nil
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}

	//nolint:gosec // dimensions are small, no overflow risk
	scaled := resize.Thumbnail(uint(cols), uint(rows*2), img, resize.Bilinear)
	sb := scaled.Bounds()
	w, h := sb.Dx(), sb.Dy()
	left := (cols - w) / 2

	lines := make([]string, 0, (h+1)/2)
	for y := 0; y < h; y += 2 {
		var line strings.Builder
		line.WriteString(strings.Repeat(" ", left))
		// Merge runs of identical cells into one styled segment.
		var run strings.Builder
		var runFg, runBg string
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(runFg))
			if runBg != "" {
				style = style.Background(lipgloss.Color(runBg))
			}
			line.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for x := range w {
			fg := hexColor(scaled.At(sb.Min.X+x, sb.Min.Y+y))
			bg := ""
			if y+1 < h {
				bg = hexColor(scaled.At(sb.Min.X+x, sb.Min.Y+y+1))
			}
			if fg != runFg || bg != runBg {
				flush()
				runFg, runBg = fg, bg
			}
			run.WriteString(upperHalf)
		}
		flush()
		line.WriteString(strings.Repeat(" ", cols-w-left))
		lines = append(lines, line.String())
	}
	return lines
}

func hexColor(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		// Fully transparent pixel.
		return "#000000"
	}
	return cf.Clamped().Hex()
}
