package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/clipwave/clipwave/feed"
	"github.com/clipwave/clipwave/history"
	"github.com/clipwave/clipwave/key"
	"github.com/clipwave/clipwave/log"
	"github.com/clipwave/clipwave/open"
	"github.com/clipwave/clipwave/video"
	"github.com/spf13/viper"
)

type (
	feedStartedMsg struct{ err error }

	pageLoadedMsg struct {
		page video.Page
		err  error
	}

	activatedMsg struct{ video video.Video }
	playingMsg   struct{ playing bool }

	likedMsg struct {
		id  video.ID
		err error
	}

	commentsMsg struct {
		id       video.ID
		comments []video.Comment
		err      error
	}

	commentPostedMsg  struct{ err error }
	commentDeletedMsg struct{ err error }

	// failedMsg is a background failure worth a notification only.
	failedMsg struct{ err error }
)

func (b *statefulBubble) startFeed() tea.Cmd {
	return func() tea.Msg {
		return feedStartedMsg{err: b.feed.Start(b.ctx)}
	}
}

func (b *statefulBubble) waitForEvents() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.eventsChannel:
			return msg
		case <-b.ctx.Done():
			return nil
		}
	}
}

func (b *statefulBubble) toggleLike(id video.ID) tea.Cmd {
	return func() tea.Msg {
		return likedMsg{id: id, err: b.feed.Store.ToggleLike(b.ctx, id)}
	}
}

func (b *statefulBubble) openComments(id video.ID) tea.Cmd {
	return func() tea.Msg {
		comments, err := b.feed.Store.OpenComments(b.ctx, id)
		return commentsMsg{id: id, comments: comments, err: err}
	}
}

func (b *statefulBubble) postComment(id video.ID, text string) tea.Cmd {
	return func() tea.Msg {
		_, err := b.feed.Store.PostComment(b.ctx, id, text)
		return commentPostedMsg{err: err}
	}
}

func (b *statefulBubble) deleteComment(id video.ID) tea.Cmd {
	return func() tea.Msg {
		return commentDeletedMsg{err: b.feed.Store.DeleteComment(b.ctx, id)}
	}
}

func (b *statefulBubble) saveHistory(v video.Video) tea.Cmd {
	if !viper.GetBool(key.HistorySaveOnWatch) {
		return nil
	}

	return func() tea.Msg {
		if err := history.Save(&v); err != nil {
			log.WithError(err).Warn("save history")
			return failedMsg{err: err}
		}
		return nil
	}
}

func (b *statefulBubble) openURL(v video.Video) tea.Cmd {
	return func() tea.Msg {
		target := v.URL
		if target == "" {
			target = v.PlaybackURL()
		}
		if target == "" {
			return failedMsg{err: errors.New("this video has no url")}
		}
		if err := open.Start(target); err != nil {
			return failedMsg{err: err}
		}
		return nil
	}
}

// quiet reports whether err needs no notification.
func quiet(err error) bool {
	return err == nil || errors.Is(err, feed.ErrDiscarded)
}
