package tui

import (
	"errors"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/clipwave/clipwave/feed"
	"github.com/clipwave/clipwave/internal/ui"
	"github.com/clipwave/clipwave/key"
	"github.com/clipwave/clipwave/video"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if cmd := b.notifier.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	case pageLoadedMsg, activatedMsg, playingMsg:
		cmds = append(cmds, b.handleEvent(msg), b.waitForEvents())
		return b, tea.Batch(cmds...)
	case failedMsg:
		if !quiet(msg.err) {
			cmds = append(cmds, ui.NotifyError(msg.err))
		}
		return b, tea.Batch(cmds...)
	}

	var (
		model tea.Model
		cmd   tea.Cmd
	)

	switch b.state {
	case loadingState:
		model, cmd = b.updateLoading(msg)
	case errorState:
		model, cmd = b.updateError(msg)
	case feedState:
		model, cmd = b.updateFeed(msg)
	case commentsState:
		model, cmd = b.updateComments(msg)
	default:
		model = b
	}

	return model, tea.Batch(append(cmds, cmd)...)
}

// handleEvent applies a callback that fired outside the update loop.
func (b *statefulBubble) handleEvent(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		if msg.err != nil {
			if quiet(msg.err) {
				return nil
			}
			return ui.NotifyError(msg.err)
		}
		if b.state == feedState || b.state == commentsState {
			b.publish()
		}
	case activatedMsg:
		return b.saveHistory(msg.video)
	}
	return nil
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case feedStartedMsg:
		switch {
		case errors.Is(msg.err, feed.ErrDiscarded):
			return b, tea.Quit
		case msg.err != nil:
			b.raiseError(msg.err)
			return b, nil
		}

		b.setState(feedState)
		b.scroll = 0
		b.publish()
		return b, nil
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit), bubblesKey.Matches(msg, b.keymap.back):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.retry):
			if errors.Is(b.lastError, feed.ErrAuth) {
				return b, nil
			}
			b.lastError = nil
			b.statesHistory.Clear()
			b.setState(loadingState)
			return b, tea.Batch(b.spinnerC.Tick, b.startFeed())
		}
	}
	return b, nil
}

func (b *statefulBubble) updateFeed(msg tea.Msg) (tea.Model, tea.Cmd) {
	step := max(viper.GetInt(key.TUIScrollStep), 1)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return b, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			b.scrollBy(step)
		case tea.MouseButtonWheelUp:
			b.scrollBy(-step)
		}
	case likedMsg:
		if !quiet(msg.err) {
			return b, ui.NotifyError(msg.err)
		}
	case commentsMsg:
		b.busy = false
		if msg.err != nil {
			if quiet(msg.err) {
				return b, nil
			}
			return b, ui.NotifyError(msg.err)
		}
		cmd := b.setComments()
		b.keymap.listFocused = false
		b.inputC.Reset()
		b.newState(commentsState)
		return b, tea.Batch(cmd, b.inputC.Focus())
	case tea.KeyMsg:
		if b.busy {
			return b, nil
		}

		active := b.feed.Tracker.Active()
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.down):
			b.scrollBy(step)
		case bubblesKey.Matches(msg, b.keymap.up):
			b.scrollBy(-step)
		case bubblesKey.Matches(msg, b.keymap.next):
			b.snapTo(active + 1)
		case bubblesKey.Matches(msg, b.keymap.prev):
			b.snapTo(max(active-1, 0))
		case bubblesKey.Matches(msg, b.keymap.top):
			b.snapTo(0)
		case bubblesKey.Matches(msg, b.keymap.bottom):
			b.snapTo(b.feed.Store.Len() - 1)
		case bubblesKey.Matches(msg, b.keymap.playPause):
			b.feed.Toggle()
		case bubblesKey.Matches(msg, b.keymap.showHelp):
			b.helpC.ShowAll = !b.helpC.ShowAll
		case bubblesKey.Matches(msg, b.keymap.like):
			if v, ok := b.feed.Active(); ok {
				return b, b.toggleLike(v.ID)
			}
		case bubblesKey.Matches(msg, b.keymap.comments):
			if v, ok := b.feed.Active(); ok {
				b.busy = true
				return b, tea.Batch(b.spinnerC.Tick, b.openComments(v.ID))
			}
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if v, ok := b.feed.Active(); ok {
				return b, b.openURL(v)
			}
		}
	}

	if b.busy {
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	}
	return b, nil
}

// setComments fills the panel from the store.
func (b *statefulBubble) setComments() tea.Cmd {
	comments := b.feed.Store.Comments()
	viewer := b.session.ID

	items := lo.Map(comments, func(c video.Comment, _ int) list.Item {
		return &commentItem{comment: c, own: viewer != "" && c.AuthorID.String() == viewer}
	})
	return b.commentsC.SetItems(items)
}

func (b *statefulBubble) closeComments() {
	b.feed.Store.CloseComments()
	b.inputC.Blur()
	b.inputC.Reset()
	b.busy = false
	b.previousState()
}

func (b *statefulBubble) updateComments(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case commentPostedMsg:
		b.busy = false
		if msg.err != nil {
			if quiet(msg.err) {
				return b, nil
			}
			return b, ui.NotifyError(msg.err)
		}
		b.inputC.Reset()
		b.commentsC.Select(0)
		return b, tea.Batch(b.setComments(), ui.Notify("comment posted"))
	case commentDeletedMsg:
		b.busy = false
		if msg.err != nil {
			if quiet(msg.err) {
				return b, nil
			}
			return b, ui.NotifyError(msg.err)
		}
		return b, tea.Batch(b.setComments(), ui.Notify("comment deleted"))
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.closeComments()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.focus):
			b.keymap.listFocused = !b.keymap.listFocused
			if b.keymap.listFocused {
				b.inputC.Blur()
				return b, nil
			}
			return b, b.inputC.Focus()
		}

		if b.busy {
			return b, nil
		}

		if b.keymap.listFocused {
			switch {
			case bubblesKey.Matches(msg, b.keymap.quit):
				return b, tea.Quit
			case bubblesKey.Matches(msg, b.keymap.remove):
				item, ok := b.commentsC.SelectedItem().(*commentItem)
				if !ok {
					return b, nil
				}
				if !item.own {
					return b, ui.Notify("you can only delete your own comments")
				}
				b.busy = true
				return b, b.deleteComment(item.comment.ID)
			}

			b.commentsC, cmd = b.commentsC.Update(msg)
			return b, cmd
		}

		if bubblesKey.Matches(msg, b.keymap.confirm) {
			id, open := b.feed.Store.Panel().Get()
			if !open {
				return b, nil
			}
			b.busy = true
			return b, b.postComment(id, b.inputC.Value())
		}
	}

	b.inputC, cmd = b.inputC.Update(msg)
	return b, cmd
}
