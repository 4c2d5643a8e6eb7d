package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/clipwave/clipwave/color"
	"github.com/clipwave/clipwave/style"
)

type statefulKeymap struct {
	state state

	// listFocused is set while the comment list, not the input, has focus
	listFocused bool

	quit, forceQuit,
	up, down, next, prev,
	top, bottom,
	playPause, like, comments, openURL,
	confirm, remove, focus, back, retry,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		next: key.NewBinding(
			key.WithKeys("n", "pgdown"),
			key.WithHelp("n", "next video"),
		),
		prev: key.NewBinding(
			key.WithKeys("p", "pgup"),
			key.WithHelp("p", "previous video"),
		),
		top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp(style.Fg(color.Pink)("l"), style.Fg(color.Pink)("like")),
		),
		comments: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comments"),
		),
		openURL: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open url"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "post"),
		),
		remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch focus"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case loadingState:
		return to2(h(k.forceQuit))
	case feedState:
		return h(k.playPause, k.like, k.comments, k.next, k.quit, k.showHelp),
			h(k.up, k.down, k.next, k.prev, k.top, k.bottom, k.playPause, k.like, k.comments, k.openURL, k.quit)
	case commentsState:
		if k.listFocused {
			return to2(h(k.up, k.down, k.remove, k.focus, k.back))
		}
		return to2(h(k.confirm, k.focus, k.back))
	case errorState:
		return to2(h(k.retry, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:   k.up,
		CursorDown: k.down,
		GoToStart:  k.top,
		GoToEnd:    k.bottom,
	}
}
