package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	play     key.Binding
	seekBack key.Binding
	seekFwd  key.Binding
	markIn   key.Binding
	markOut  key.Binding
	aspect   key.Binding
	render   key.Binding
	restart  key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		play:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		seekBack: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "-1s")),
		seekFwd:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "+1s")),
		markIn:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start here")),
		markOut:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end here")),
		aspect:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "aspect")),
		render:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "render")),
		restart:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back to clips")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.play, k.seekBack, k.seekFwd},
		{k.markIn, k.markOut, k.aspect},
		{k.render, k.back, k.quit},
	}
}
