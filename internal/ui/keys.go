package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Back      key.Binding
	SwitchTab key.Binding
	Refresh   key.Binding
	Settings  key.Binding

	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	SortNext key.Binding
	SortPrev key.Binding
	SortFlip key.Binding
	Search   key.Binding
	New      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Import   key.Binding

	NextField key.Binding
	PrevField key.Binding
	Save      key.Binding
	Confirm   key.Binding
	Upload    key.Binding
	Sample    key.Binding
}

var keys = keyMap{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	SwitchTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Settings:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),

	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	NextPage: key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→", "next page")),
	PrevPage: key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←", "prev page")),
	SortNext: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "sort next col")),
	SortPrev: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "sort prev col")),
	SortFlip: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "flip order")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Edit:     key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Import:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),

	NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
	Save:      key.NewBinding(key.WithKeys("enter", "ctrl+s"), key.WithHelp("enter", "save")),
	Confirm:   key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "delete")),
	Upload:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload")),
	Sample:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "sample csv")),
}
