package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next       key.Binding
	Previous   key.Binding
	Basico     key.Binding
	Intermedio key.Binding
	Avanzado   key.Binding
	Up         key.Binding
	Down       key.Binding
	Open       key.Binding
	Toggle     key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Search     key.Binding
	Quit       key.Binding

	// Active while the search input has focus.
	ResultUp   key.Binding
	ResultDown key.Binding
	Cancel     key.Binding
	ForceQuit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		Previous:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous")),
		Basico:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "básico")),
		Intermedio: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "intermedio")),
		Avanzado:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "avanzado")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "expand")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "scroll up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("pgdn", "scroll down")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		ResultUp:   key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "prev result")),
		ResultDown: key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next result")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) browseHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.Basico, k.Intermedio, k.Avanzado, k.Open, k.Toggle, k.Search, k.Quit}
}

func (k keyMap) searchHelp() []key.Binding {
	return []key.Binding{k.ResultUp, k.ResultDown, k.Open, k.Cancel}
}
