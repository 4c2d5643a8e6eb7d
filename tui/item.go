package tui

import (
	"fmt"

	"github.com/clipwave/clipwave/icon"
	"github.com/clipwave/clipwave/style"
	"github.com/clipwave/clipwave/video"
	"github.com/dustin/go-humanize"
)

// commentItem is a row of the comment panel.
type commentItem struct {
	comment video.Comment
	own     bool
}

func (c *commentItem) Title() string {
	title := fmt.Sprintf("%s @%s", icon.Get(icon.User), c.comment.Author)
	if !c.comment.CreatedAt.IsZero() {
		title += " " + style.Faint(humanize.Time(c.comment.CreatedAt.Time))
	}
	if c.own {
		title += " " + style.Faint("(you)")
	}
	return title
}

func (c *commentItem) Description() string {
	return c.comment.Body
}

func (c *commentItem) FilterValue() string {
	return c.comment.Body
}
