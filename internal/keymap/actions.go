// Package keymap defines key bindings and action dispatch for the viewer.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"
	ActionInfo Action = "info"

	// Gallery actions, forwarded to the slide engine
	ActionClose           Action = "close"            // esc
	ActionPrev            Action = "prev"             // left
	ActionNext            Action = "next"             // right
	ActionToggleControls  Action = "toggle_controls"  // enter
	ActionToggleSlideshow Action = "toggle_slideshow" // space

	// Navigation actions handled by the viewer
	ActionFirst  Action = "first"
	ActionLast   Action = "last"
	ActionReopen Action = "reopen" // o - reopen a closed gallery
)
