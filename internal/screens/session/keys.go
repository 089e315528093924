package session

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/certprep/internal/ui/layout"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Prev   key.Binding
	Next   key.Binding
	Flag   key.Binding
	Strike key.Binding
	Review key.Binding
	Submit key.Binding
	Save   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Move")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "Move")),
	Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("1-9", "Answer")),
	Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←→", "Navigate")),
	Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "Next")),
	Flag:   key.NewBinding(key.WithKeys("f"), key.WithHelp("F", "Flag")),
	Strike: key.NewBinding(key.WithKeys("x"), key.WithHelp("X+n", "Strike")),
	Review: key.NewBinding(key.WithKeys("r"), key.WithHelp("R", "Review")),
	Submit: key.NewBinding(key.WithKeys("s"), key.WithHelp("S", "Submit")),
	Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("Ctrl+S", "Save & exit")),
	Quit:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Quit")),
}

func hints(bindings ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}
