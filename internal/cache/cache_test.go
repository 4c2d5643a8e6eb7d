package cache

import (
	"testing"
	"time"

	"github.com/clipwave/clipwave/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPrune(t *testing.T) {
	Convey("Given a cache directory with old and fresh files", t, func() {
		fs := filesystem.API()
		clock := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
		now = func() time.Time { return clock }
		Reset(func() { now = time.Now })

		So(fs.MkdirAll("/cache/hls", 0o755), ShouldBeNil)
		So(fs.WriteFile("/cache/old.json", []byte("{}"), 0o644), ShouldBeNil)
		So(fs.WriteFile("/cache/hls/old.m3u8", []byte("#EXTM3U"), 0o644), ShouldBeNil)
		So(fs.WriteFile("/cache/fresh.json", []byte("{}"), 0o644), ShouldBeNil)

		stale := clock.Add(-8 * 24 * time.Hour)
		So(fs.Chtimes("/cache/old.json", stale, stale), ShouldBeNil)
		So(fs.Chtimes("/cache/hls/old.m3u8", stale, stale), ShouldBeNil)
		So(fs.Chtimes("/cache/fresh.json", clock, clock), ShouldBeNil)

		Reset(func() { _ = fs.RemoveAll("/cache") })

		Convey("Prune removes only the stale files", func() {
			So(Prune("/cache", TTL), ShouldEqual, 2)

			exists, _ := fs.Exists("/cache/old.json")
			So(exists, ShouldBeFalse)
			exists, _ = fs.Exists("/cache/hls/old.m3u8")
			So(exists, ShouldBeFalse)
			exists, _ = fs.Exists("/cache/fresh.json")
			So(exists, ShouldBeTrue)
		})

		Convey("A missing directory prunes nothing", func() {
			So(Prune("/nowhere", TTL), ShouldEqual, 0)
		})
	})
}
