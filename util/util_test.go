package util

import (
	"testing"

	"github.com/clipwave/clipwave/filesystem"
	"github.com/spf13/afero"
	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "like", "likes"), ShouldEqual, "1 like")
		So(Quantify(0, "like", "likes"), ShouldEqual, "0 likes")
		So(Quantify(2, "like", "likes"), ShouldEqual, "2 likes")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("creator"), ShouldEqual, "Creator")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem", t, func() {
		So(FileStem("clips/sunset.final.mp4"), ShouldEqual, "sunset.final")
		So(FileStem("clip"), ShouldEqual, "clip")
	})
}

func TestDelete(t *testing.T) {
	Convey("Given files in memory", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		So(afero.WriteFile(fs, "/cache/a/b.json", []byte("{}"), 0o644), ShouldBeNil)
		So(afero.WriteFile(fs, "/cache/c.json", []byte("{}"), 0o644), ShouldBeNil)

		Convey("Deleting a file removes only it", func() {
			So(Delete("/cache/c.json"), ShouldBeNil)
			exists, _ := afero.Exists(fs, "/cache/a/b.json")
			So(exists, ShouldBeTrue)
		})

		Convey("Deleting a directory removes its contents", func() {
			So(Delete("/cache"), ShouldBeNil)
			exists, _ := afero.Exists(fs, "/cache/a/b.json")
			So(exists, ShouldBeFalse)
		})

		Convey("Missing paths are errors", func() {
			So(Delete("/nope"), ShouldNotBeNil)
		})
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[string]
		s.Push("feed")
		s.Push("comments")
		So(s.Len(), ShouldEqual, 2)
		So(s.Peek().MustGet(), ShouldEqual, "comments")
		So(s.Pop().MustGet(), ShouldEqual, "comments")
		So(s.Pop().MustGet(), ShouldEqual, "feed")
		So(s.Pop().IsAbsent(), ShouldBeTrue)
		So(s.Peek().IsAbsent(), ShouldBeTrue)

		s.Push("feed")
		s.Clear()
		So(s.Len(), ShouldEqual, 0)
	})
}
