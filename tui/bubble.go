package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/clipwave/clipwave/auth"
	"github.com/clipwave/clipwave/feed"
	"github.com/clipwave/clipwave/internal/ui"
	"github.com/clipwave/clipwave/key"
	"github.com/clipwave/clipwave/style"
	"github.com/clipwave/clipwave/util"
	"github.com/clipwave/clipwave/video"
	"github.com/spf13/viper"
)

const (
	// header and help line around the feed
	chromeHeight  = 2
	minSlotHeight = 8
	eventsBuffer  = 32
)

type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	busy          bool

	keymap *statefulKeymap

	spinnerC  spinner.Model
	inputC    textinput.Model
	commentsC list.Model
	helpC     help.Model

	feed     *feed.Feed
	session  auth.Session
	viewport *viewport
	unwatch  func()
	scroll   int

	ctx    context.Context
	cancel context.CancelFunc

	// eventsChannel carries callbacks fired outside the update loop
	eventsChannel chan tea.Msg

	lastError error

	width, height int
	notifier      *ui.Model
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if b.state != loadingState {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if previous, ok := b.statesHistory.Pop().Get(); ok {
		b.setState(previous)
	}
}

// feedHeight is the number of rows available to the cards.
func (b *statefulBubble) feedHeight() int {
	return max(b.height-chromeHeight, 1)
}

func (b *statefulBubble) slotHeight() int {
	return max(b.feedHeight(), minSlotHeight)
}

func (b *statefulBubble) resize(width, height int) {
	b.width = width
	b.height = height

	b.helpC.Width = width
	b.inputC.Width = max(width-4, 10)
	b.commentsC.SetSize(width, max(height-6, 3))

	// keep the active slot aligned after the slot height changed
	if b.feed != nil {
		if active := b.feed.Tracker.Active(); active != feed.None {
			b.scroll = active * b.slotHeight()
		}
		b.publish()
	}
}

// publish hands the current layout to the tracker and mounts the slots
// around it.
func (b *statefulBubble) publish() {
	count := b.feed.Store.Len()
	b.scroll = clampScroll(b.scroll, count, b.slotHeight())

	vis := layout(count, b.slotHeight(), b.feedHeight(), b.scroll)
	b.viewport.publish(vis)
	b.feed.Render(window(vis, viper.GetInt(key.TUIRenderWindow), count))
}

func (b *statefulBubble) scrollBy(rows int) {
	b.scroll += rows
	b.publish()
}

// snapTo scrolls slot index to the top of the viewport.
func (b *statefulBubble) snapTo(index int) {
	b.scroll = index * b.slotHeight()
	b.publish()
}

// emit queues msg for the update loop. Events are dropped when the loop
// falls behind.
func (b *statefulBubble) emit(msg tea.Msg) {
	select {
	case b.eventsChannel <- msg:
	default:
	}
}

func newBubble(f *feed.Feed, session auth.Session) *statefulBubble {
	ctx, cancel := context.WithCancel(context.Background())

	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        newStatefulKeymap(),
		feed:          f,
		session:       session,
		viewport:      newViewport(),
		ctx:           ctx,
		cancel:        cancel,
		eventsChannel: make(chan tea.Msg, eventsBuffer),
		notifier:      &ui.Model{},
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = "Add a comment"
	bubble.inputC.CharLimit = 500
	bubble.inputC.Prompt = "> "

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.commentsC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.commentsC.KeyMap = bubble.keymap.forList()
	bubble.commentsC.Title = "Comments"
	bubble.commentsC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1)
	bubble.commentsC.SetShowHelp(false)
	bubble.commentsC.SetShowPagination(false)
	bubble.commentsC.SetFilteringEnabled(false)
	bubble.commentsC.SetStatusBarItemName("comment", "comments")
	bubble.commentsC.Styles.NoItems = lipgloss.NewStyle().Padding(0, 2).Foreground(style.Subtext)

	f.OnPageLoaded(func(page video.Page, err error) {
		bubble.emit(pageLoadedMsg{page: page, err: err})
	})
	f.OnActivate(func(v video.Video) {
		bubble.emit(activatedMsg{video: v})
	})
	f.Playback.OnChange(func(playing bool) {
		bubble.emit(playingMsg{playing: playing})
	})
	bubble.unwatch = f.Watch(bubble.viewport)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.setState(loadingState)
	return &bubble
}

// close stops the update loop's background work.
func (b *statefulBubble) close() {
	b.cancel()
	if b.unwatch != nil {
		b.unwatch()
	}
	b.feed.Close()
}
