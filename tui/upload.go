package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/clipwave/clipwave/backend"
	"github.com/clipwave/clipwave/icon"
	"github.com/clipwave/clipwave/style"
	"github.com/clipwave/clipwave/upload"
	"github.com/dustin/go-humanize"
)

type (
	uploadProgressMsg upload.Progress
	uploadDoneMsg     struct {
		record backend.Uploaded
		err    error
	}
)

type uploadBubble struct {
	name     string
	bar      progress.Model
	current  upload.Progress
	record   backend.Uploaded
	err      error
	cancel   context.CancelFunc
	finished bool
}

func newUploadBubble(name string, cancel context.CancelFunc) *uploadBubble {
	return &uploadBubble{
		name:   name,
		bar:    progress.New(progress.WithGradient(string(style.Violet), string(style.Pink))),
		cancel: cancel,
	}
}

func (u *uploadBubble) Init() tea.Cmd {
	return nil
}

func (u *uploadBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			u.cancel()
		}
	case tea.WindowSizeMsg:
		u.bar.Width = max(msg.Width-4, 10)
	case uploadProgressMsg:
		u.current = upload.Progress(msg)
	case uploadDoneMsg:
		u.record, u.err = msg.record, msg.err
		u.finished = true
		return u, tea.Quit
	}
	return u, nil
}

func (u *uploadBubble) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s %s\n", icon.Get(icon.Upload), style.Bold(u.name), style.Faint(u.current.Status.String()))

	switch {
	case u.finished && u.err != nil:
		fmt.Fprintf(&b, "%s %s\n", icon.Get(icon.Fail), style.Fg(style.ErrorColor)(backend.Message(u.err)))
	case u.finished:
		fmt.Fprintf(&b, "%s uploaded %s\n", icon.Get(icon.Success), style.Faint(u.record.URL))
	default:
		b.WriteString(u.bar.ViewAs(u.current.Percent()))
		b.WriteString("\n")
		if u.current.Total > 0 {
			b.WriteString(style.Faint(fmt.Sprintf(
				"%s / %s",
				humanize.IBytes(uint64(u.current.Sent)),
				humanize.IBytes(uint64(u.current.Total)),
			)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// Upload sends the file at path with a progress bar and returns the saved record.
func Upload(ctx context.Context, uploader *upload.Uploader, path string, meta backend.Metadata) (backend.Uploaded, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bubble := newUploadBubble(meta.Title, cancel)
	program := tea.NewProgram(bubble)

	go func() {
		record, err := uploader.Upload(ctx, path, meta, func(p upload.Progress) {
			program.Send(uploadProgressMsg(p))
		})
		program.Send(uploadDoneMsg{record: record, err: err})
	}()

	if _, err := program.Run(); err != nil {
		return backend.Uploaded{}, err
	}
	return bubble.record, bubble.err
}
