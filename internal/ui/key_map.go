package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	add    key.Binding
	toggle key.Binding
	remove key.Binding
	retry  key.Binding
	next   key.Binding
	submit key.Binding
	back   key.Binding
	help   key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add movie")),
		toggle: key.NewBinding(key.WithKeys("w", " "), key.WithHelp("w", "toggle watched")),
		remove: key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		retry:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry/refresh")),
		next:   key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.add, k.toggle, k.remove, k.retry, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down},
		{k.add, k.toggle, k.remove},
		{k.retry, k.help, k.quit},
	}
}

func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.next, k.submit, k.back}
}
