package ui

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given no notification", t, func() {
		var m Model

		So(m.View("feed"), ShouldEqual, "feed")

		Convey("A notification is shown on the last line", func() {
			cmd := m.Update(Notify("liked")())
			So(cmd, ShouldNotBeNil)
			So(m.Current(), ShouldEqual, "liked")
			So(m.View("a\nb"), ShouldStartWith, "a\nb")
			So(m.View("a\nb"), ShouldContainSubstring, "liked")

			Convey("Its timer clears it", func() {
				m.Update(clearMsg{seq: 1})
				So(m.Current(), ShouldBeEmpty)
			})

			Convey("A stale timer leaves a newer one alone", func() {
				m.Update(NotifyError(errors.New("network error"))())
				m.Update(clearMsg{seq: 1})
				So(m.Current(), ShouldEqual, "network error")
			})
		})
	})
}
