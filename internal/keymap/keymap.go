package keymap

// Binding maps keys to an action.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "gallery", "navigation"
}

// Bindings contains every key binding of the viewer.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},
	{ActionInfo, []string{"i"}, "Toggle media info", "global"},

	// Gallery
	{ActionClose, []string{"esc"}, "Close gallery", "gallery"},
	{ActionPrev, []string{"left", "h"}, "Previous slide", "gallery"},
	{ActionNext, []string{"right", "l"}, "Next slide", "gallery"},
	{ActionToggleControls, []string{"enter"}, "Toggle controls", "gallery"},
	{ActionToggleSlideshow, []string{" "}, "Play/pause slideshow", "gallery"},

	// Navigation
	{ActionFirst, []string{"home", "g"}, "First slide", "navigation"},
	{ActionLast, []string{"end", "G"}, "Last slide", "navigation"},
	{ActionReopen, []string{"o"}, "Reopen gallery", "navigation"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
