package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	toggle   key.Binding
	next     key.Binding
	prev     key.Binding
	seekFwd  key.Binding
	seekBack key.Binding
	add      key.Binding
	remove   key.Binding
	del      key.Binding
	views    key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume")),
		next:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		prev:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prev")),
		seekFwd:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "seek +5s")),
		seekBack: key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "seek -5s")),
		add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to playlist")),
		remove:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "remove from playlist")),
		del:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete song")),
		views:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.enter, k.toggle, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.toggle, k.next, k.prev, k.seekFwd, k.seekBack},
		{k.add, k.remove, k.del, k.views, k.quit},
	}
}
