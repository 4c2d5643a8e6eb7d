package tui

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/clipwave/clipwave/auth"
	"github.com/clipwave/clipwave/feed"
	"github.com/clipwave/clipwave/feed/mocks"
	"github.com/clipwave/clipwave/filesystem"
	"github.com/clipwave/clipwave/key"
	"github.com/clipwave/clipwave/video"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"go.uber.org/mock/gomock"
)

var viewer = auth.Session{Token: "tok", ID: "u1", Username: "ana", Role: "user"}

type nullSurface struct{ paused bool }

func (s *nullSurface) Load(string, func()) error { return nil }
func (s *nullSurface) Paused() bool              { return s.paused }

func (s *nullSurface) Play() error {
	s.paused = false
	return nil
}

func (s *nullSurface) Pause() error {
	s.paused = true
	return nil
}

type nativeRuntime struct{}

func (nativeRuntime) SupportsStreaming() bool { return false }
func (nativeRuntime) CanPlayManifest() bool   { return false }
func (nativeRuntime) Attach(feed.Surface, string, func()) (feed.Stream, error) {
	return nil, errors.New("not supported")
}

func clips(n int) []video.Video {
	out := make([]video.Video, n)
	for i := range out {
		out[i] = video.Video{
			ID:          video.ID(fmt.Sprintf("v%d", i)),
			Title:       fmt.Sprintf("Clip %d", i),
			Author:      "mira",
			Description: "a short clip",
			URL:         fmt.Sprintf("https://cdn.example.com/v%d.mp4", i),
			Likes:       1200,
		}
	}
	return out
}

func press(keys string) tea.KeyMsg {
	if keys == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	switch keys {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
}

func send(b *statefulBubble, msg tea.Msg) tea.Cmd {
	_, cmd := b.Update(msg)
	return cmd
}

func TestBubble(t *testing.T) {
	filesystem.SetMemMapFs()
	viper.Set(key.TUIScrollStep, 5)
	viper.Set(key.TUIRenderWindow, 1)
	viper.Set(key.FeedPrefetchDistance, 1)
	viper.Set(key.HistorySaveOnWatch, false)

	Convey("Given a feed of three clips", t, func() {
		ctrl := gomock.NewController(t)
		api := mocks.NewMockAPI(ctrl)
		api.EXPECT().HasLiked(gomock.Any(), "tok", video.ID("u1"), gomock.Any()).Return(false, nil).AnyTimes()
		api.EXPECT().Videos(gomock.Any(), "tok", 2, 3).Return(video.Page{Number: 2}, nil).AnyTimes()

		surfaces := map[int]*nullSurface{}
		f := feed.New(api, viewer, feed.Options{PageSize: 3, GuardPagination: true}, nativeRuntime{}, func(i int) feed.Surface {
			if _, ok := surfaces[i]; !ok {
				surfaces[i] = &nullSurface{paused: true}
			}
			return surfaces[i]
		})

		b := newBubble(f, viewer)
		Reset(func() {
			f.Wait()
			b.close()
		})
		send(b, tea.WindowSizeMsg{Width: 80, Height: 22})

		So(b.state, ShouldEqual, loadingState)
		So(b.View(), ShouldContainSubstring, "Loading feed")

		Convey("When the first page fails", func() {
			api.EXPECT().Videos(gomock.Any(), "tok", 1, 3).Return(video.Page{}, errors.New("connection refused"))
			send(b, b.startFeed()())

			So(b.state, ShouldEqual, errorState)
			So(b.View(), ShouldContainSubstring, "Could not load the feed")

			Convey("Retry goes back to loading", func() {
				send(b, press("r"))
				So(b.state, ShouldEqual, loadingState)
			})
		})

		Convey("When the first page loads", func() {
			api.EXPECT().Videos(gomock.Any(), "tok", 1, 3).Return(video.Page{Number: 1, Videos: clips(3)}, nil)
			send(b, b.startFeed()())

			So(b.state, ShouldEqual, feedState)
			So(f.Tracker.Active(), ShouldEqual, 0)
			So(f.Playback.Mounted(), ShouldResemble, []int{0, 1})

			view := b.View()
			So(view, ShouldContainSubstring, "Clip 0")
			So(view, ShouldContainSubstring, "1,200")
			So(view, ShouldContainSubstring, "1/3+")

			Convey("Scrolling less than half a card keeps the active clip", func() {
				send(b, press("j"))
				So(b.scroll, ShouldEqual, 5)
				So(f.Tracker.Active(), ShouldEqual, 0)
			})

			Convey("Scrolling past the midpoint activates the next clip", func() {
				send(b, press("j"))
				send(b, press("j"))
				So(b.scroll, ShouldEqual, 10)
				So(f.Tracker.Active(), ShouldEqual, 1)
				So(f.Playback.Mounted(), ShouldResemble, []int{0, 1, 2})
			})

			Convey("The wheel scrolls too", func() {
				send(b, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
				So(b.scroll, ShouldEqual, 5)
				send(b, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
				So(b.scroll, ShouldEqual, 0)
			})

			Convey("Snapping to the last clip prefetches and clamps", func() {
				send(b, press("n"))
				send(b, press("n"))
				f.Wait()
				So(f.Tracker.Active(), ShouldEqual, 2)
				So(f.Store.HasMore(), ShouldBeFalse)

				send(b, press("n"))
				So(f.Tracker.Active(), ShouldEqual, 2)
				So(b.scroll, ShouldEqual, 2*b.slotHeight())
			})

			Convey("Space toggles the active clip", func() {
				So(surfaces[0].Paused(), ShouldBeTrue)
				send(b, press(" "))
				So(surfaces[0].Paused(), ShouldBeFalse)
			})

			Convey("Liking calls the backend with the active clip", func() {
				api.EXPECT().ToggleLike(gomock.Any(), "tok", video.ID("u1"), video.ID("v0")).Return(nil)

				cmd := send(b, press("l"))
				So(cmd, ShouldNotBeNil)
				msg := b.toggleLike("v0")()
				So(msg.(likedMsg).err, ShouldBeNil)

				v, _ := f.Store.Video(0)
				So(v.Liked, ShouldBeTrue)
				So(b.View(), ShouldContainSubstring, "1,201")
			})

			Convey("Opening comments shows the panel", func() {
				api.EXPECT().Comments(gomock.Any(), "tok", video.ID("v0")).Return([]video.Comment{
					{ID: "c1", AuthorID: "u1", Author: "ana", Body: "mine"},
					{ID: "c2", AuthorID: "u9", Author: "lou", Body: "theirs"},
				}, nil)

				send(b, press("c"))
				So(b.busy, ShouldBeTrue)

				send(b, b.openComments("v0")())
				So(b.busy, ShouldBeFalse)
				So(b.state, ShouldEqual, commentsState)
				So(b.View(), ShouldContainSubstring, "theirs")

				Convey("Deleting someone else's comment is refused", func() {
					send(b, press("tab"))
					So(b.keymap.listFocused, ShouldBeTrue)
					send(b, press("j"))

					cmd := send(b, press("d"))
					So(cmd, ShouldNotBeNil)
					So(b.busy, ShouldBeFalse)
				})

				Convey("Deleting your own comment asks the backend", func() {
					send(b, press("tab"))
					send(b, press("d"))
					So(b.busy, ShouldBeTrue)

					api.EXPECT().DeleteComment(gomock.Any(), "tok", video.ID("c1")).Return(video.ID("v0"), 0, nil)
					send(b, b.deleteComment("c1")())
					So(b.busy, ShouldBeFalse)
					So(f.Store.Comments(), ShouldHaveLength, 1)
				})

				Convey("Typing and enter posts", func() {
					for _, r := range "nice" {
						send(b, press(string(r)))
					}
					So(b.inputC.Value(), ShouldEqual, "nice")

					send(b, press("enter"))
					So(b.busy, ShouldBeTrue)

					api.EXPECT().AddComment(gomock.Any(), "tok", video.ID("u1"), video.ID("v0"), "nice").
						Return(video.Comment{ID: "c3", Body: "nice"}, 3, nil)
					send(b, b.postComment("v0", "nice")())

					So(b.inputC.Value(), ShouldBeEmpty)
					So(f.Store.Comments(), ShouldHaveLength, 3)
				})

				Convey("Escape closes the panel", func() {
					send(b, press("esc"))
					So(b.state, ShouldEqual, feedState)
					So(f.Store.Panel().IsPresent(), ShouldBeFalse)
				})
			})

			Convey("A failed prefetch becomes a notification", func() {
				cmd := b.handleEvent(pageLoadedMsg{err: fmt.Errorf("%w: timeout", feed.ErrNetwork)})
				So(cmd, ShouldNotBeNil)

				send(b, cmd())
				So(b.state, ShouldEqual, feedState)
				So(b.notifier.Current(), ShouldContainSubstring, "timeout")
			})
		})

		Convey("Without a session the feed asks to log in", func() {
			f2 := feed.New(api, auth.Session{}, feed.Options{PageSize: 3}, nativeRuntime{}, func(int) feed.Surface { return &nullSurface{} })
			b2 := newBubble(f2, auth.Session{})
			defer b2.close()

			send(b2, b2.startFeed()())
			So(b2.state, ShouldEqual, errorState)
			So(errors.Is(b2.lastError, feed.ErrAuth), ShouldBeTrue)
			So(b2.View(), ShouldContainSubstring, "login")
		})
	})
}
