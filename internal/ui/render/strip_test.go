package render

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	a := []string{"aaaaa"}
	b := []string{"bbbbb"}

	tests := []struct {
		name   string
		width  int
		height int
		layers []Layer
		want   []string
	}{
		{
			name: "single layer", width: 5, height: 1,
			layers: []Layer{{X: 0, Width: 5, Lines: a}},
			want:   []string{"aaaaa"},
		},
		{
			name: "clipped on the left", width: 5, height: 1,
			layers: []Layer{{X: -2, Width: 5, Lines: []string{"abcde"}}},
			want:   []string{"cde  "},
		},
		{
			name: "clipped on the right", width: 5, height: 1,
			layers: []Layer{{X: 3, Width: 5, Lines: []string{"abcde"}}},
			want:   []string{"   ab"},
		},
		{
			name: "two adjacent slides mid transition", width: 5, height: 1,
			layers: []Layer{{X: 2, Width: 5, Lines: b}, {X: -3, Width: 5, Lines: a}},
			want:   []string{"aabbb"},
		},
		{
			name: "leftmost wins on overlap", width: 5, height: 1,
			layers: []Layer{{X: 0, Width: 5, Lines: a}, {X: 3, Width: 5, Lines: b}},
			want:   []string{"aaaaa"},
		},
		{
			name: "vertical offset", width: 3, height: 3,
			layers: []Layer{{X: 0, Y: 1, Width: 3, Lines: []string{"xyz", "uvw"}}},
			want:   []string{"   ", "xyz", "uvw"},
		},
		{
			name: "short lines are padded", width: 4, height: 1,
			layers: []Layer{{X: 0, Width: 4, Lines: []string{"ab"}}},
			want:   []string{"ab  "},
		},
		{
			name: "off screen", width: 4, height: 1,
			layers: []Layer{{X: 10, Width: 4, Lines: a}},
			want:   []string{"    "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compose(tt.width, tt.height, tt.layers...))
		})
	}
}

func TestCompose_KeepsStyling(t *testing.T) {
	styled := lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")).Render("abcde")

	out := Compose(4, 1, Layer{X: -1, Width: 5, Lines: []string{styled}})
	require.Len(t, out, 1)
	assert.Equal(t, "bcde", ansi.Strip(out[0]))
	assert.Equal(t, 4, ansi.StringWidth(out[0]))
}

func TestCompose_EmptyCanvas(t *testing.T) {
	assert.Nil(t, Compose(0, 3))
	assert.Nil(t, Compose(3, 0))
}

func TestCellAt(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("▀▀") + "  "

	assert.Equal(t, "▀", CellAt(styled, 1))
	assert.Equal(t, " ", CellAt(styled, 2))
	assert.Equal(t, " ", CellAt(styled, 10))
	assert.Equal(t, " ", CellAt(styled, -1))
}

func TestPadStyled(t *testing.T) {
	assert.Equal(t, "\x1b[1mab\x1b[0m  ", PadStyled("\x1b[1mab\x1b[0m", 4))
	assert.Equal(t, "abcdef", PadStyled("abcdef", 4))
}
