// Package player drives an external media player. The feed shares a
// single mpv window between all slots, see Screen.
package player

import "errors"

// ErrNotRunning is returned by transport calls before Start or after the
// player exited.
var ErrNotRunning = errors.New("player is not running")

// ErrNoSource is returned when a surface plays before a source was loaded.
var ErrNoSource = errors.New("no source loaded")

// Player is a long-lived media player process controlled over IPC.
type Player interface {
	// Start launches the player idle, with nothing loaded.
	Start() error

	// Load replaces the current file with url.
	Load(url, title string) error

	// SetPause pauses or resumes the current file.
	SetPause(paused bool) error

	// Paused reports whether the current file is paused.
	Paused() (bool, error)

	IsRunning() bool

	// Observe delivers property changes and events to fn until Close.
	Observe(fn EventCallback) error

	Close() error

	// Wait is closed when the player process exits.
	Wait() <-chan struct{}
}
