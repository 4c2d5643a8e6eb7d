// Package ui renders short-lived notifications under the main view.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/clipwave/clipwave/style"
)

// Lifetime is how long a notification stays on screen.
const Lifetime = 3 * time.Second

// Model holds the notification currently shown, if any.
type Model struct {
	notification string
	failure      bool
	seq          int
}

// NotificationMsg shows Text, styled as an error when Failure is set.
type NotificationMsg struct {
	Text    string
	Failure bool
}

// clearMsg hides the notification numbered seq. Newer notifications
// survive older timers.
type clearMsg struct{ seq int }

func Notify(text string) tea.Cmd {
	return func() tea.Msg { return NotificationMsg{Text: text} }
}

func NotifyError(err error) tea.Cmd {
	return func() tea.Msg { return NotificationMsg{Text: err.Error(), Failure: true} }
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.seq++
		m.notification = msg.Text
		m.failure = msg.Failure

		seq := m.seq
		return tea.Tick(Lifetime, func(time.Time) tea.Msg { return clearMsg{seq: seq} })
	case clearMsg:
		if msg.seq == m.seq {
			m.notification = ""
		}
	}
	return nil
}

// Current is the visible notification text.
func (m *Model) Current() string {
	return m.notification
}

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if m.notification == "" {
		return content
	}

	render := style.Faint
	if m.failure {
		render = style.Fg(style.ErrorColor)
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + render(m.notification)
	return strings.Join(lines, "\n")
}
