package history

import (
	"testing"
	"time"

	"github.com/clipwave/clipwave/filesystem"
	"github.com/clipwave/clipwave/video"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given an empty history", t, func() {
		So(Clear(), ShouldBeNil)

		clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		now = func() time.Time { return clock }
		Reset(func() { now = time.Now })

		sunset := &video.Video{ID: "v1", Title: "Sunset", Author: "mira", URL: "https://cdn.example.com/v1.mp4"}
		waves := &video.Video{ID: "v2", Title: "Waves", URL: "https://cdn.example.com/v2.mp4"}

		Convey("When saving a video", func() {
			So(Save(sunset), ShouldBeNil)

			Convey("Then it is stored under its id", func() {
				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved, ShouldContainKey, "v1")
				So(saved["v1"].Title, ShouldEqual, "Sunset")
				So(saved["v1"].Times, ShouldEqual, 1)
				So(saved["v1"].String(), ShouldEqual, "Sunset by @mira")
			})

			Convey("And watching it again counts and moves it up", func() {
				clock = clock.Add(time.Minute)
				So(Save(waves), ShouldBeNil)

				clock = clock.Add(time.Minute)
				So(Save(sunset), ShouldBeNil)

				list, err := List()
				So(err, ShouldBeNil)
				So(list, ShouldHaveLength, 2)
				So(list[0].ID, ShouldEqual, "v1")
				So(list[0].Times, ShouldEqual, 2)
				So(list[1].String(), ShouldEqual, "Waves")
			})

			Convey("And removing it empties the history", func() {
				So(Remove("v1"), ShouldBeNil)
				So(Remove("missing"), ShouldBeNil)

				list, err := List()
				So(err, ShouldBeNil)
				So(list, ShouldBeEmpty)
			})
		})
	})
}
