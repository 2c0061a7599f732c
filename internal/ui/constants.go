// Package ui provides shared UI constants and utilities.
package ui

import "time"

// Layout constants of the viewer screen.
const (
	// HeaderHeight is the title bar above the slide strip.
	HeaderHeight = 1

	// InfoHeight is the media info line shown on demand.
	InfoHeight = 1

	// MinStripHeight keeps the strip drawable in tiny terminals.
	MinStripHeight = 1

	// ButtonWidth is the width of a clickable header button ("‹ ", " ✕ ").
	ButtonWidth = 3
)

// FrameInterval is the redraw period while slides are moving.
const FrameInterval = 16 * time.Millisecond
