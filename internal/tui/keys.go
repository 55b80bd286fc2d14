package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev      key.Binding
	Next      key.Binding
	Flip      key.Binding
	Shuffle   key.Binding
	Reverse   key.Binding
	GenreNext key.Binding
	GenrePrev key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Flip: key.NewBinding(
			key.WithKeys("up", "down", " ", "enter"),
			key.WithHelp("space", "flip"),
		),
		Shuffle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "shuffle"),
		),
		Reverse: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reverse"),
		),
		GenreNext: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "next genre"),
		),
		GenrePrev: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "previous genre"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Flip, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Flip},
		{k.Shuffle, k.Reverse, k.GenreNext, k.GenrePrev},
		{k.Help, k.Quit},
	}
}
