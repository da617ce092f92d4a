// internal/app/tui/keys.go
package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the wizard bindings. It implements help.KeyMap.
type keyMap struct {
	Next     key.Binding
	Previous key.Binding
	Jump     key.Binding
	Up       key.Binding
	Down     key.Binding
	Edit     key.Binding
	Leave    key.Binding
	Campus   key.Binding
	Toggle   key.Binding
	Function key.Binding
	Confirm  key.Binding
	Submit   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next step")),
		Previous: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous step")),
		Jump:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump to step")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Edit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit / confirm")),
		Leave:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop editing")),
		Campus:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cycle campus")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle member")),
		Function: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle function")),
		Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm step")),
		Submit:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "submit")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.Jump, k.Submit, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous, k.Jump},
		{k.Up, k.Down, k.Edit, k.Leave},
		{k.Campus, k.Toggle, k.Function, k.Confirm},
		{k.Submit, k.Quit},
	}
}
