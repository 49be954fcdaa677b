package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding; list and detail screens show different
// subsets in the footer.
type keyMap struct {
	Search        key.Binding
	Back          key.Binding
	Category      key.Binding
	ClearCategory key.Binding
	Open          key.Binding
	Complete      key.Binding
	Up            key.Binding
	Down          key.Binding
	Toggle        key.Binding
	Prev          key.Binding
	Next          key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
	Copy          key.Binding
	Sidebar       key.Binding
	Reload        key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Search:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Back:          key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "clear/back")),
		Category:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "stars")),
		ClearCategory: key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "all")),
		Open:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Complete:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
		Up:            key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:          key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Toggle:        key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "check item")),
		Prev:          key.NewBinding(key.WithKeys("[", "h", "left"), key.WithHelp("[", "prev")),
		Next:          key.NewBinding(key.WithKeys("]", "l", "right"), key.WithHelp("]", "next")),
		PageUp:        key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll up")),
		PageDown:      key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll down")),
		Copy:          key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
		Sidebar:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sidebar")),
		Reload:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// listKeys is the help.KeyMap for the catalog screen.
type listKeys struct{ keyMap }

func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Category, k.Open, k.Complete, k.Help, k.Quit}
}

func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Complete},
		{k.Search, k.Back, k.Category, k.ClearCategory},
		{k.Sidebar, k.Copy, k.Reload},
		{k.Help, k.Quit},
	}
}

// detailKeys is the help.KeyMap for the lesson screen.
type detailKeys struct{ keyMap }

func (k detailKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Complete, k.Toggle, k.Prev, k.Next, k.Help}
}

func (k detailKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Complete},
		{k.Prev, k.Next, k.PageUp, k.PageDown},
		{k.Back, k.Copy, k.Reload},
		{k.Help, k.Quit},
	}
}
