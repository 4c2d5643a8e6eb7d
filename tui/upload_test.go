package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/clipwave/clipwave/backend"
	"github.com/clipwave/clipwave/upload"
	. "github.com/smartystreets/goconvey/convey"
)

func TestUploadBubble(t *testing.T) {
	Convey("Given an upload in progress", t, func() {
		cancelled := false
		u := newUploadBubble("Sunset", func() { cancelled = true })
		u.Update(tea.WindowSizeMsg{Width: 60, Height: 10})
		u.Update(uploadProgressMsg(upload.Progress{Status: upload.Uploading, Sent: 512 << 10, Total: 1 << 20}))

		Convey("The view shows the status and byte counts", func() {
			view := u.View()
			So(view, ShouldContainSubstring, "Sunset")
			So(view, ShouldContainSubstring, "uploading")
			So(view, ShouldContainSubstring, "512 KiB / 1.0 MiB")
		})

		Convey("Quitting cancels the upload", func() {
			u.Update(press("q"))
			So(cancelled, ShouldBeTrue)
		})

		Convey("Completion quits with the record", func() {
			_, cmd := u.Update(uploadDoneMsg{record: backend.Uploaded{URL: "https://res.example/v.mp4"}})
			So(cmd, ShouldNotBeNil)
			So(cmd(), ShouldHaveSameTypeAs, tea.QuitMsg{})
			So(u.View(), ShouldContainSubstring, "https://res.example/v.mp4")
		})

		Convey("A failure is shown in place of the bar", func() {
			u.Update(uploadDoneMsg{err: errors.New("cloudinary: 400 bad preset")})
			So(u.err, ShouldNotBeNil)
			So(u.View(), ShouldContainSubstring, "bad preset")
		})
	})
}
