package panel

import "github.com/charmbracelet/bubbles/key"

// globalKeyMap holds the bindings active on every page while no text input
// has focus.
type globalKeyMap struct {
	Home          key.Binding
	Alarms        key.Binding
	Phonebook     key.Binding
	Configuration key.Binding
	Setup         key.Binding
	Back          key.Binding
	Forward       key.Binding
	Dismiss       key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func newGlobalKeyMap() globalKeyMap {
	return globalKeyMap{
		Home: key.NewBinding(
			key.WithKeys("1", "h"),
			key.WithHelp("1/h", "home"),
		),
		Alarms: key.NewBinding(
			key.WithKeys("2", "a"),
			key.WithHelp("2/a", "alarms"),
		),
		Phonebook: key.NewBinding(
			key.WithKeys("3", "p"),
			key.WithHelp("3/p", "phonebook"),
		),
		Configuration: key.NewBinding(
			key.WithKeys("4", "c"),
			key.WithHelp("4/c", "config"),
		),
		Setup: key.NewBinding(
			key.WithKeys("5", "s"),
			key.WithHelp("5/s", "setup"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "["),
			key.WithHelp("[", "back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "forward"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
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

func (k globalKeyMap) navigation() []key.Binding {
	return []key.Binding{k.Home, k.Alarms, k.Phonebook, k.Configuration, k.Setup, k.Back, k.Forward}
}

// homeKeyMap defines key bindings for the home page
type homeKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	Language key.Binding
}

// alarmsKeyMap defines key bindings for the alarms page
type alarmsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Ramp      key.Binding
	Message   key.Binding
	Later     key.Binding
	Earlier   key.Binding
	HourUp    key.Binding
	HourDown  key.Binding
	NextSound key.Binding
	PrevSound key.Binding
	Save      key.Binding
}

// phonebookKeyMap defines key bindings for the phonebook page
type phonebookKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Edit key.Binding
	Done key.Binding
	Save key.Binding
}

// configKeyMap defines key bindings for the configuration page
type configKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Increase key.Binding
	Decrease key.Binding
	Activate key.Binding
	Save     key.Binding
	LogUp    key.Binding
	LogDown  key.Binding
}

// setupKeyMap defines key bindings for the setup page
type setupKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Connect key.Binding
	Cancel  key.Binding
}

// keyMaps bundles every page's bindings.
type keyMaps struct {
	Global    globalKeyMap
	Home      homeKeyMap
	Alarms    alarmsKeyMap
	Phonebook phonebookKeyMap
	Config    configKeyMap
	Setup     setupKeyMap
}

func newKeyMaps() keyMaps {
	up := key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	down := key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	save := key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save"))

	return keyMaps{
		Global: newGlobalKeyMap(),
		Home: homeKeyMap{
			Up:   up,
			Down: down,
			Open: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "open"),
			),
			Language: key.NewBinding(
				key.WithKeys("l"),
				key.WithHelp("l", "DE/EN"),
			),
		},
		Alarms: alarmsKeyMap{
			Up:   up,
			Down: down,
			Toggle: key.NewBinding(
				key.WithKeys(" ", "enter"),
				key.WithHelp("space", "on/off"),
			),
			Ramp: key.NewBinding(
				key.WithKeys("r"),
				key.WithHelp("r", "rising"),
			),
			Message: key.NewBinding(
				key.WithKeys("m"),
				key.WithHelp("m", "message"),
			),
			Later: key.NewBinding(
				key.WithKeys("+", "="),
				key.WithHelp("+", "+5 min"),
			),
			Earlier: key.NewBinding(
				key.WithKeys("-"),
				key.WithHelp("-", "-5 min"),
			),
			HourUp: key.NewBinding(
				key.WithKeys(">"),
				key.WithHelp(">", "+1 h"),
			),
			HourDown: key.NewBinding(
				key.WithKeys("<"),
				key.WithHelp("<", "-1 h"),
			),
			NextSound: key.NewBinding(
				key.WithKeys("right", "l"),
				key.WithHelp("→", "next sound"),
			),
			PrevSound: key.NewBinding(
				key.WithKeys("left"),
				key.WithHelp("←", "prev sound"),
			),
			Save: save,
		},
		Phonebook: phonebookKeyMap{
			Up:   up,
			Down: down,
			Edit: key.NewBinding(
				key.WithKeys("enter", "tab"),
				key.WithHelp("enter", "edit number"),
			),
			Done: key.NewBinding(
				key.WithKeys("enter", "esc", "tab"),
				key.WithHelp("enter/esc", "done"),
			),
			Save: save,
		},
		Config: configKeyMap{
			Up:   key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑/k", "up")),
			Down: key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "down")),
			Increase: key.NewBinding(
				key.WithKeys("right", "l", "+"),
				key.WithHelp("→", "more"),
			),
			Decrease: key.NewBinding(
				key.WithKeys("left", "-"),
				key.WithHelp("←", "less"),
			),
			Activate: key.NewBinding(
				key.WithKeys("enter", " "),
				key.WithHelp("enter", "apply"),
			),
			Save: save,
			LogUp: key.NewBinding(
				key.WithKeys("pgup"),
				key.WithHelp("pgup", "log up"),
			),
			LogDown: key.NewBinding(
				key.WithKeys("pgdown"),
				key.WithHelp("pgdn", "log down"),
			),
		},
		Setup: setupKeyMap{
			Up:   up,
			Down: down,
			Select: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "select"),
			),
			Connect: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "connect"),
			),
			Cancel: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", "cancel"),
			),
		},
	}
}

// pageHelp adapts one page's bindings plus the global ones to help.KeyMap.
type pageHelp struct {
	short []key.Binding
	full  [][]key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (p pageHelp) ShortHelp() []key.Binding {
	return p.short
}

// FullHelp returns keybindings for the expanded help view
func (p pageHelp) FullHelp() [][]key.Binding {
	return p.full
}
