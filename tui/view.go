package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/clipwave/clipwave/constant"
	"github.com/clipwave/clipwave/feed"
	"github.com/clipwave/clipwave/icon"
	"github.com/clipwave/clipwave/key"
	"github.com/clipwave/clipwave/style"
	"github.com/clipwave/clipwave/util"
	"github.com/clipwave/clipwave/video"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case errorState:
		output = b.viewError()
	case feedState:
		output = b.viewFeed()
	case commentsState:
		output = b.viewComments()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines([]string{
		style.Title("ClipWave"),
		"",
		b.spinnerC.View() + " Loading feed",
	})
}

func (b *statefulBubble) viewError() string {
	body := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true).Render(b.lastError.Error())

	lines := []string{
		style.ErrorTitle("Error"),
		"",
		icon.Get(icon.Fail) + " Could not load the feed:",
		"",
		wrap.String(body, max(b.width-4, 10)),
	}
	if errors.Is(b.lastError, feed.ErrAuth) {
		lines = append(lines, "", style.Faint(fmt.Sprintf("Run `%s login` and try again.", constant.Clipwave)))
	}

	return b.renderLines(lines)
}

func (b *statefulBubble) header() string {
	title := style.Title("ClipWave")

	var parts []string
	if b.session.Username != "" {
		parts = append(parts, icon.Get(icon.User)+" @"+b.session.Username)
	}

	count := b.feed.Store.Len()
	if active := b.feed.Tracker.Active(); active != feed.None {
		position := fmt.Sprintf("%d/%d", active+1, count)
		if b.feed.Store.HasMore() {
			position += "+"
		}
		parts = append(parts, position)
	}

	if b.busy {
		parts = append(parts, b.spinnerC.View())
	}

	return title + " " + style.Faint(strings.Join(parts, "  "))
}

func (b *statefulBubble) viewFeed() string {
	count := b.feed.Store.Len()
	if count == 0 {
		return b.renderLines([]string{
			b.header(),
			"",
			style.Faint("No videos yet."),
		})
	}

	height, slotHeight := b.feedHeight(), b.slotHeight()
	vis := layout(count, slotHeight, height, b.scroll)
	active := b.feed.Tracker.Active()
	playing := b.feed.Playback.Playing()

	var rows []string
	for _, slot := range vis.Slots {
		v, ok := b.feed.Store.Video(slot.Index)
		if !ok {
			continue
		}

		card := b.renderCard(v, slot.Index == active, playing, slotHeight)
		lines := strings.Split(card, "\n")

		// clip the parts of the card above or below the viewport
		from := max(-slot.Rect.Top, 0)
		to := min(len(lines), height-slot.Rect.Top)
		if from < to {
			rows = append(rows, lines[from:to]...)
		}
	}

	for len(rows) < height {
		rows = append(rows, "")
	}

	return strings.Join([]string{
		b.header(),
		strings.Join(rows[:height], "\n"),
		b.helpC.View(b.keymap),
	}, "\n")
}

// renderCard draws one video as a framed block of exactly height rows.
func (b *statefulBubble) renderCard(v video.Video, active, playing bool, height int) string {
	width := max(b.width, 20)
	inner := width - 4
	lines := make([]string, 0, height)

	title := style.Bold(v.Title)
	if active {
		state := icon.Get(icon.Pause)
		if playing {
			state = icon.Get(icon.Play)
		}
		title = style.Fg(style.AccentColor)(state) + " " + title
	}
	lines = append(lines, truncate.StringWithTail(title, uint(inner), "…"))

	byline := "@" + v.Author
	if !v.CreatedAt.IsZero() {
		byline += " · " + humanize.Time(v.CreatedAt.Time)
	}
	lines = append(lines, style.Faint(byline), "")

	footer := []string{b.stats(v)}
	if viper.GetBool(key.TUIShowURLs) {
		footer = append(footer, style.Faint(truncate.StringWithTail(v.PlaybackURL(), uint(inner), "…")))
	}

	room := height - 2 - len(lines) - len(footer)
	if room > 0 && v.Description != "" {
		description := strings.Split(wordwrap.String(v.Description, inner), "\n")
		if len(description) > room {
			description = description[:room]
			description[room-1] = truncate.StringWithTail(description[room-1], uint(inner-1), "") + "…"
		}
		lines = append(lines, description...)
	}

	for len(lines) < height-2-len(footer) {
		lines = append(lines, "")
	}
	lines = append(lines, footer...)
	if len(lines) > height-2 {
		lines = lines[:max(height-2, 0)]
	}

	return style.Card(width, height, active).Render(strings.Join(lines, "\n"))
}

func (b *statefulBubble) stats(v video.Video) string {
	like := icon.Get(icon.Like)
	if v.Liked {
		like = style.Fg(style.LikedColor)(icon.Get(icon.Liked))
	}

	return strings.Join([]string{
		like + " " + humanize.Comma(int64(v.Likes)),
		icon.Get(icon.Comment) + " " + humanize.Comma(int64(v.Comments)),
		icon.Get(icon.Views) + " " + util.Quantify(v.Views, "view", "views"),
	}, "   ")
}

func (b *statefulBubble) viewComments() string {
	var title string
	if id, ok := b.feed.Store.Panel().Get(); ok {
		for _, v := range b.feed.Store.Snapshot() {
			if v.ID == id {
				title = v.Title
				break
			}
		}
	}

	input := b.inputC.View()
	if b.busy {
		input = b.spinnerC.View() + " " + input
	}

	return strings.Join([]string{
		b.header(),
		style.Faint(truncate.StringWithTail(title, uint(max(b.width, 10)), "…")),
		b.commentsC.View(),
		"",
		input,
		b.helpC.View(b.keymap),
	}, "\n")
}

func (b *statefulBubble) renderLines(lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if b.height > h+2 {
		l += strings.Repeat("\n", b.height-h-2)
	}
	l += b.helpC.View(b.keymap)

	return paddingStyle.Render(l)
}
