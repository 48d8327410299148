package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Enter   key.Binding
	Back    key.Binding
	Home    key.Binding
	Catalog key.Binding
	Board   key.Binding

	// Actions
	Quit     key.Binding
	Help     key.Binding
	Escape   key.Binding
	Search   key.Binding
	Genre    key.Binding
	Sort     key.Binding
	Refresh  key.Binding
	Favorite key.Binding
	SignIn   key.Binding
	SignOut  key.Binding

	// Player
	PlayPause   key.Binding
	VolumeUp    key.Binding
	VolumeDown  key.Binding
	SeekBack    key.Binding
	SeekForward key.Binding
	NextEpisode key.Binding
	PrevEpisode key.Binding
	Trailer     key.Binding
	RelatedUp   key.Binding
	RelatedDown key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "back"),
		),
		Home: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "home"),
		),
		Catalog: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "catalog"),
		),
		Board: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "anime / market"),
		),

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Genre: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "genre"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		SignIn: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "sign in"),
		),
		SignOut: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "sign out"),
		),

		// Player
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "volume down"),
		),
		SeekBack: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "-10s"),
		),
		SeekForward: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "+10s"),
		),
		NextEpisode: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next episode"),
		),
		PrevEpisode: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "previous episode"),
		),
		Trailer: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "watch trailer"),
		),
		RelatedUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "related up"),
		),
		RelatedDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "related down"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
