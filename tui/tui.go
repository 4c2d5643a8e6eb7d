// Package tui is the terminal feed: one card per video, scrolled by rows,
// with the active card playing in a shared mpv window.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/clipwave/clipwave/auth"
	"github.com/clipwave/clipwave/feed"
	"github.com/clipwave/clipwave/hls"
	"github.com/clipwave/clipwave/log"
	"github.com/clipwave/clipwave/player"
)

type Options struct {
	API     feed.API
	Session auth.Session
	// Player is started before the feed loads and closed on exit.
	Player player.Player
}

// Run shows the feed until the user quits.
func Run(options *Options) error {
	if err := options.Player.Start(); err != nil {
		return fmt.Errorf("start player: %w", err)
	}
	defer func() {
		if err := options.Player.Close(); err != nil {
			log.WithError(err).Warn("close player")
		}
	}()

	var f *feed.Feed
	screen := player.NewScreen(options.Player, func(index int) string {
		if v, ok := f.Store.Video(index); ok {
			return v.Title
		}
		return ""
	})

	if err := options.Player.Observe(screen.HandleEvent); err != nil {
		log.WithError(err).Warn("observe player events")
	}

	f = feed.New(options.API, options.Session, feed.OptionsFromConfig(), hls.NewFromConfig(), screen.Surface)
	f.Playback.OnRelease(screen.Release)
	screen.OnChange(func(int) { f.Playback.Sync() })

	bubble := newBubble(f, options.Session)
	defer bubble.close()

	_, err := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, b.startFeed(), b.waitForEvents())
}
