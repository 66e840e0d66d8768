package tui

import "github.com/charmbracelet/bubbles/key"

// configuratorKeyMap defines key bindings for the configurator screen.
// Which bindings are shown depends on the focused panel.
type configuratorKeyMap struct {
	focus Focus

	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Tab    key.Binding

	AddKeyword key.Binding
	Next       key.Binding

	Send     key.Binding
	Complete key.Binding
	Info     key.Binding

	ScrollUp   key.Binding
	ScrollDown key.Binding
	Reset      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k configuratorKeyMap) ShortHelp() []key.Binding {
	switch k.focus {
	case FocusKeywords:
		return []key.Binding{k.AddKeyword, k.Next, k.Tab, k.Reset}
	case FocusMessage:
		return []key.Binding{k.Send, k.Complete, k.Info, k.Tab, k.Reset}
	default:
		return []key.Binding{k.Left, k.Right, k.Select, k.Tab, k.Help, k.Quit}
	}
}

// FullHelp returns keybindings for the expanded help view
func (k configuratorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Select, k.Tab},
		{k.AddKeyword, k.Next},
		{k.Send, k.Complete, k.Info},
		{k.ScrollUp, k.ScrollDown, k.Reset, k.Help, k.Quit},
	}
}

func newConfiguratorKeyMap() configuratorKeyMap {
	return configuratorKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous post"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next post"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch panel"),
		),
		AddKeyword: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add keyword"),
		),
		Next: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "next step"),
		),
		Send: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "send message"),
		),
		Complete: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "complete setup"),
		),
		Info: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "why an opening DM?"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll preview"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll preview"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "start over"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// successKeyMap defines key bindings for the success screen
type successKeyMap struct {
	Edit key.Binding
	New  key.Binding
	Quit key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k successKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.New, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k successKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Edit, k.New, k.Quit}}
}

func newSuccessKeyMap() successKeyMap {
	return successKeyMap{
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter/e", "keep editing"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new automation"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}
