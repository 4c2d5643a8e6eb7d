package feed

import (
	"context"
	"sync"
	"testing"

	"github.com/clipwave/clipwave/feed/mocks"
	"github.com/clipwave/clipwave/key"
	"github.com/clipwave/clipwave/video"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"go.uber.org/mock/gomock"
)

func TestFeed(t *testing.T) {
	viper.Set(key.FeedPrefetchDistance, 2)

	Convey("Given a feed over a backend with two pages", t, func() {
		ctrl := gomock.NewController(t)
		api := mocks.NewMockAPI(ctrl)
		likedNone(api)

		runtime := &fakeRuntime{streaming: true}
		scr := newScreen()
		f := New(api, viewer, Options{PageSize: 5, GuardPagination: true}, runtime, scr.Surface)

		api.EXPECT().Videos(anything, "tok", 1, 5).Return(video.Page{Number: 1, Videos: records("a", 5)}, nil)
		So(f.Start(context.Background()), ShouldBeNil)

		o := &observer{}
		f.Watch(o)

		Convey("Start activates the first record", func() {
			So(f.Tracker.Active(), ShouldEqual, 0)
			v, ok := f.Active()
			So(ok, ShouldBeTrue)
			So(v.ID, ShouldEqual, video.ID("a0"))
		})

		Convey("Render mounts and unmounts by difference", func() {
			f.Render([]int{0, 1})
			So(f.Playback.Mounted(), ShouldResemble, []int{0, 1})
			f.Render([]int{1, 2})
			So(f.Playback.Mounted(), ShouldResemble, []int{1, 2})
			So(runtime.streams[0].destroyed, ShouldBeTrue)
		})

		Convey("The active slot plays once ready", func() {
			f.Render([]int{0, 1})
			scr.get(0).ready()
			So(f.Playback.Playing(), ShouldBeTrue)
			f.Toggle()
			So(f.Playback.Playing(), ShouldBeFalse)
		})

		Convey("Scrolling near the end loads the next page", func() {
			var mu sync.Mutex
			var loaded []video.Page
			var failures []error
			f.OnPageLoaded(func(p video.Page, err error) {
				mu.Lock()
				defer mu.Unlock()
				loaded = append(loaded, p)
				if err != nil {
					failures = append(failures, err)
				}
			})

			api.EXPECT().Videos(anything, "tok", 2, 5).Return(video.Page{Number: 2, Videos: records("b", 5)}, nil)
			o.emit(Visibility{Height: 1000, Slots: stacked(5, 1000, 3000)})
			f.Wait()

			So(f.Store.Len(), ShouldEqual, 10)
			So(failures, ShouldBeEmpty)
			So(loaded, ShouldHaveLength, 1)
			So(loaded[0].Number, ShouldEqual, 2)
		})

		Convey("An empty next page makes later prefetches no-ops", func() {
			api.EXPECT().Videos(anything, "tok", 2, 5).Return(video.Page{Number: 2}, nil).Times(1)
			o.emit(Visibility{Height: 1000, Slots: stacked(5, 1000, 3000)})
			f.Wait()
			So(f.Store.HasMore(), ShouldBeFalse)

			o.emit(Visibility{Height: 1000, Slots: stacked(5, 1000, 4000)})
			f.Wait()
			So(f.Store.Len(), ShouldEqual, 5)
		})

		Convey("OnActivate is told about every newly active record", func() {
			var seen []video.ID
			f.OnActivate(func(v video.Video) { seen = append(seen, v.ID) })
			o.emit(Visibility{Height: 1000, Slots: stacked(5, 1000, 1000)})
			So(seen, ShouldResemble, []video.ID{"a1"})
		})

		Convey("Close releases every session", func() {
			f.Render([]int{0, 1, 2})
			f.Close()
			So(runtime.live(), ShouldEqual, 0)
			So(f.Tracker.Active(), ShouldEqual, None)
			So(f.Store.Len(), ShouldEqual, 0)
		})
	})
}
