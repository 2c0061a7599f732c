package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// displayKey returns the label shown for a key in help output.
func displayKey(k string) string {
	switch k {
	case " ":
		return "space"
	case "left":
		return "←"
	case "right":
		return "→"
	default:
		return k
	}
}

// HelpMap exposes the bindings to bubbles/help.
type HelpMap struct {
	short []key.Binding
	full  [][]key.Binding
}

// NewHelpMap builds a help map from bindings. The short view lists the
// gallery context; the full view has one column per context.
func NewHelpMap(bindings []Binding) HelpMap {
	var m HelpMap
	columns := make(map[string]int)
	for _, b := range bindings {
		if len(b.Keys) == 0 {
			continue
		}
		kb := key.NewBinding(
			key.WithKeys(b.Keys...),
			key.WithHelp(displayKey(b.Keys[0]), b.Description),
		)
		if b.Context == "gallery" || b.Action == ActionQuit {
			m.short = append(m.short, kb)
		}
		col, ok := columns[b.Context]
		if !ok {
			col = len(m.full)
			columns[b.Context] = col
			m.full = append(m.full, nil)
		}
		m.full[col] = append(m.full[col], kb)
	}
	return m
}

// ShortHelp implements help.KeyMap.
func (m HelpMap) ShortHelp() []key.Binding {
	return m.short
}

// FullHelp implements help.KeyMap.
func (m HelpMap) FullHelp() [][]key.Binding {
	return m.full
}
