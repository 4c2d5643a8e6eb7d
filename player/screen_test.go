package player

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/clipwave/clipwave/feed"
	"github.com/clipwave/clipwave/video"
	. "github.com/smartystreets/goconvey/convey"
)

type fakePlayer struct {
	mu      sync.Mutex
	loaded  []string
	titles  []string
	paused  bool
	failing bool
}

func (f *fakePlayer) Start() error { return nil }

func (f *fakePlayer) Load(url, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("mpv gone")
	}
	f.loaded = append(f.loaded, url)
	f.titles = append(f.titles, title)
	f.paused = true
	return nil
}

func (f *fakePlayer) SetPause(paused bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = paused
	return nil
}

func (f *fakePlayer) Paused() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paused, nil
}

func (f *fakePlayer) IsRunning() bool                { return true }
func (f *fakePlayer) Observe(fn EventCallback) error { return nil }
func (f *fakePlayer) Close() error                   { return nil }
func (f *fakePlayer) Wait() <-chan struct{}          { return nil }

func loaded(s feed.Surface, url string) {
	ready := make(chan struct{})
	So(s.Load(url, func() { close(ready) }), ShouldBeNil)
	select {
	case <-ready:
	case <-time.After(time.Second):
		So("ready never fired", ShouldBeEmpty)
	}
}

func TestScreen(t *testing.T) {
	Convey("Given a screen over one player", t, func() {
		p := &fakePlayer{paused: true}
		screen := NewScreen(p, func(i int) string { return []string{"first", "second"}[i] })

		first, second := screen.Surface(0), screen.Surface(1)
		loaded(first, "https://cdn.example.com/0.mp4")
		loaded(second, "https://cdn.example.com/1.mp4")

		Convey("Surfaces are created once per slot", func() {
			So(screen.Surface(0), ShouldEqual, first)
		})

		Convey("Loading a source does not touch the player", func() {
			So(p.loaded, ShouldBeEmpty)
			So(first.Paused(), ShouldBeTrue)
			So(screen.Current(), ShouldEqual, feed.None)
		})

		Convey("Playing a slot loads its source and resumes", func() {
			So(first.Play(), ShouldBeNil)

			So(p.loaded, ShouldResemble, []string{"https://cdn.example.com/0.mp4"})
			So(p.titles, ShouldResemble, []string{"first"})
			So(p.paused, ShouldBeFalse)
			So(first.Paused(), ShouldBeFalse)
			So(screen.Current(), ShouldEqual, 0)

			Convey("Playing it again only resumes", func() {
				So(first.Pause(), ShouldBeNil)
				So(p.paused, ShouldBeTrue)

				So(first.Play(), ShouldBeNil)
				So(p.loaded, ShouldHaveLength, 1)
				So(p.paused, ShouldBeFalse)
			})

			Convey("Playing another slot takes over the window", func() {
				So(second.Play(), ShouldBeNil)

				So(p.loaded, ShouldHaveLength, 2)
				So(screen.Current(), ShouldEqual, 1)
				So(first.Paused(), ShouldBeTrue)
				So(second.Paused(), ShouldBeFalse)
			})

			Convey("Pausing a slot that does not own the window leaves the player alone", func() {
				So(second.Pause(), ShouldBeNil)
				So(p.paused, ShouldBeFalse)
				So(second.Paused(), ShouldBeTrue)
			})

			Convey("A pause from the player window reaches the owning surface", func() {
				screen.HandleEvent("pause", true)
				So(first.Paused(), ShouldBeTrue)
				So(second.Paused(), ShouldBeTrue)
			})

			Convey("An idle player forces a reload on the next play", func() {
				screen.HandleEvent("idle-active", true)
				So(screen.Current(), ShouldEqual, feed.None)

				So(first.Play(), ShouldBeNil)
				So(p.loaded, ShouldHaveLength, 2)
			})

			Convey("A new source for the owning slot is loaded on play", func() {
				loaded(first, "https://cdn.example.com/0-720.mp4")
				So(first.Play(), ShouldBeNil)
				So(p.loaded[len(p.loaded)-1], ShouldEqual, "https://cdn.example.com/0-720.mp4")
			})

			Convey("Release drops ownership", func() {
				screen.Release(0)
				So(screen.Current(), ShouldEqual, feed.None)
				So(screen.Surface(0), ShouldNotEqual, first)
			})
		})

		Convey("A failing player rejects play", func() {
			p.failing = true
			So(first.Play(), ShouldNotBeNil)
			So(first.Paused(), ShouldBeTrue)
			So(screen.Current(), ShouldEqual, feed.None)
		})

		Convey("A surface without a source rejects play", func() {
			So(screen.Surface(5).Play(), ShouldEqual, ErrNoSource)
		})

		Convey("Unsafe sources are refused", func() {
			So(screen.Surface(2).Load("--script=evil.lua", nil), ShouldNotBeNil)
		})
	})
}

type nativeRuntime struct{}

func (nativeRuntime) SupportsStreaming() bool { return false }
func (nativeRuntime) CanPlayManifest() bool   { return true }
func (nativeRuntime) Attach(feed.Surface, string, func()) (feed.Stream, error) {
	return nil, nil
}

func TestScreenEvents(t *testing.T) {
	Convey("Given a screen whose first slot is playing", t, func() {
		p := &fakePlayer{paused: true}
		screen := NewScreen(p, nil)

		var changes []int
		screen.OnChange(func(index int) { changes = append(changes, index) })

		first := screen.Surface(0)
		loaded(first, "https://cdn.example.com/0.mp4")
		So(first.Play(), ShouldBeNil)

		Convey("A pause from the player window is reported for that slot", func() {
			screen.HandleEvent("pause", true)
			So(changes, ShouldResemble, []int{0})

			Convey("A repeated pause is not", func() {
				screen.HandleEvent("pause", true)
				So(changes, ShouldResemble, []int{0})
			})
		})

		Convey("The end of the clip is reported for that slot", func() {
			screen.HandleEvent("idle-active", true)
			So(changes, ShouldResemble, []int{0})
			So(first.Paused(), ShouldBeTrue)
		})

		Convey("Malformed events are ignored", func() {
			screen.HandleEvent("pause", "yes")
			screen.HandleEvent("idle-active", false)
			So(changes, ShouldBeEmpty)
		})
	})

	Convey("Given a playback controller over the screen", t, func() {
		p := &fakePlayer{paused: true}
		screen := NewScreen(p, nil)
		playback := feed.NewPlayback(nativeRuntime{}, screen.Surface)
		screen.OnChange(func(int) { playback.Sync() })

		flags := make(chan bool, 4)
		playback.OnChange(func(playing bool) { flags <- playing })

		v := video.Video{ID: "v0", URL: "https://cdn.example.com/0.mp4"}
		playback.Activate(0)
		playback.Mount(0, v)

		select {
		case playing := <-flags:
			So(playing, ShouldBeTrue)
		case <-time.After(time.Second):
			So("playback never started", ShouldBeEmpty)
		}

		Convey("A pause in the player window clears the playing flag", func() {
			screen.HandleEvent("pause", true)
			So(playback.Playing(), ShouldBeFalse)

			Convey("and resuming there sets it again", func() {
				screen.HandleEvent("pause", false)
				So(playback.Playing(), ShouldBeTrue)
			})
		})

		Convey("An idle player clears the playing flag", func() {
			screen.HandleEvent("idle-active", true)
			So(playback.Playing(), ShouldBeFalse)
		})

		Convey("Unmounting releases the surface", func() {
			playback.OnRelease(screen.Release)
			playback.Unmount(0)
			So(screen.Current(), ShouldEqual, feed.None)
			So(len(screen.slots), ShouldEqual, 0)
		})
	})
}
