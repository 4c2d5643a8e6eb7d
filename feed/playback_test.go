package feed

import (
	"slices"
	"testing"

	"github.com/clipwave/clipwave/video"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPlaybackAttach(t *testing.T) {
	Convey("Given a runtime with adaptive streaming", t, func() {
		runtime := &fakeRuntime{streaming: true, native: true}
		scr := newScreen()
		p := NewPlayback(runtime, scr.Surface)
		feed := records("a", 3)

		for i, v := range feed {
			p.Mount(i, v)
		}

		Convey("Every mounted slot gets its own session on the manifest", func() {
			So(runtime.live(), ShouldEqual, 3)
			So(scr.get(1).source(), ShouldEqual, "https://cdn.example/a1.m3u8")
			So(p.Mounted(), ShouldResemble, []int{0, 1, 2})
		})

		Convey("Mounting a slot again replaces its session", func() {
			p.Mount(0, feed[0])
			So(len(runtime.streams), ShouldEqual, 4)
			So(runtime.streams[0].destroyed, ShouldBeTrue)
			So(runtime.live(), ShouldEqual, 3)
		})

		Convey("Unmounting destroys the session", func() {
			p.Unmount(2)
			So(runtime.streams[2].destroyed, ShouldBeTrue)
			So(p.Mounted(), ShouldResemble, []int{0, 1})
		})

		Convey("Reset destroys everything", func() {
			p.Reset()
			So(runtime.live(), ShouldEqual, 0)
			So(p.Mounted(), ShouldBeEmpty)
		})

		Convey("Released slots are reported", func() {
			var released []int
			p.OnRelease(func(index int) { released = append(released, index) })

			p.Unmount(1)
			p.Unmount(7)
			So(released, ShouldResemble, []int{1})

			p.Mount(0, feed[0])
			So(released, ShouldResemble, []int{1})

			p.Reset()
			slices.Sort(released)
			So(released, ShouldResemble, []int{0, 1, 2})
		})

		Convey("A late ready from a replaced session is ignored", func() {
			stale := scr.get(0).onReady
			p.Activate(0)
			p.Mount(0, feed[0])
			stale()
			So(p.Playing(), ShouldBeFalse)
		})
	})

	Convey("Given a runtime that only plays manifests natively", t, func() {
		runtime := &fakeRuntime{native: true}
		scr := newScreen()
		p := NewPlayback(runtime, scr.Surface)

		Convey("The URL is assigned directly to the surface", func() {
			v := records("n", 1)[0]
			p.Mount(0, v)
			So(runtime.streams, ShouldBeEmpty)
			So(scr.get(0).source(), ShouldEqual, v.PlaybackURL())
		})

		Convey("An empty manifest falls back to the canonical URL", func() {
			v := video.Video{ID: "x", URL: "https://cdn.example/x.mp4"}
			v.SetManifest("")
			p.Mount(0, v)
			So(scr.get(0).source(), ShouldEqual, "https://cdn.example/x.mp4")
		})

		Convey("A record built without a manifest plays its canonical URL", func() {
			p.Mount(0, video.Video{ID: "y", URL: "https://cdn.example/y.mp4"})
			So(scr.get(0).source(), ShouldEqual, "https://cdn.example/y.mp4")
		})
	})

	Convey("Given a runtime that supports neither", t, func() {
		scr := newScreen()
		p := NewPlayback(&fakeRuntime{}, scr.Surface)
		p.Mount(0, records("z", 1)[0])

		Convey("Nothing is loaded", func() {
			So(scr.get(0).source(), ShouldBeEmpty)
		})
	})
}

func TestPlaybackTransport(t *testing.T) {
	Convey("Given three mounted slots", t, func() {
		scr := newScreen()
		p := NewPlayback(&fakeRuntime{streaming: true}, scr.Surface)
		for i, v := range records("a", 3) {
			p.Mount(i, v)
		}
		p.Activate(0)

		var flags []bool
		p.OnChange(func(playing bool) { flags = append(flags, playing) })

		Convey("Only the active slot starts once ready", func() {
			scr.get(1).ready()
			So(scr.playing(), ShouldBeEmpty)
			So(p.Playing(), ShouldBeFalse)

			scr.get(0).ready()
			So(scr.playing(), ShouldResemble, []int{0})
			So(p.Playing(), ShouldBeTrue)
			So(flags, ShouldResemble, []bool{true})
		})

		Convey("With every slot ready", func() {
			for i := range 3 {
				scr.get(i).ready()
			}

			Convey("At most one slot plays across transitions", func() {
				for _, next := range []int{1, 2, 0, 2} {
					p.Pause(p.active)
					p.Activate(next)
					So(len(scr.playing()), ShouldBeLessThanOrEqualTo, 1)
					So(scr.playing(), ShouldResemble, []int{next})
				}
			})

			Convey("Toggling the active slot flips the flag", func() {
				p.Toggle(0)
				So(p.Playing(), ShouldBeFalse)
				So(scr.get(0).Paused(), ShouldBeTrue)
				p.Toggle(0)
				So(p.Playing(), ShouldBeTrue)
				So(scr.get(0).Paused(), ShouldBeFalse)
			})

			Convey("Toggling an inactive slot pauses the others and leaves the flag to the active one", func() {
				p.Toggle(2)
				So(scr.playing(), ShouldResemble, []int{2})
				So(p.Playing(), ShouldBeFalse)

				p.Toggle(0)
				So(scr.playing(), ShouldResemble, []int{0})
				So(p.Playing(), ShouldBeTrue)
			})

			Convey("Unmounting the active slot clears the flag", func() {
				p.Unmount(0)
				So(p.Playing(), ShouldBeFalse)
				So(scr.playing(), ShouldBeEmpty)
			})

			Convey("Sync follows a pause made outside the controller", func() {
				So(scr.get(0).Pause(), ShouldBeNil)
				p.Sync()
				So(p.Playing(), ShouldBeFalse)
				So(flags, ShouldResemble, []bool{true, false})

				Convey("and a resume", func() {
					So(scr.get(0).Play(), ShouldBeNil)
					p.Sync()
					So(p.Playing(), ShouldBeTrue)
					So(flags, ShouldResemble, []bool{true, false, true})
				})
			})

			Convey("Sync without a change stays quiet", func() {
				p.Sync()
				So(p.Playing(), ShouldBeTrue)
				So(flags, ShouldResemble, []bool{true})
			})

			Convey("Sync ignores inactive slots", func() {
				So(scr.get(1).Play(), ShouldBeNil)
				So(scr.get(0).Pause(), ShouldBeNil)
				p.Sync()
				So(p.Playing(), ShouldBeFalse)
			})
		})

		Convey("A rejected play is swallowed", func() {
			scr.get(0).reject = true
			scr.get(0).ready()
			So(p.Playing(), ShouldBeFalse)
			So(scr.playing(), ShouldBeEmpty)

			p.Toggle(0)
			So(p.Playing(), ShouldBeFalse)
		})
	})
}
