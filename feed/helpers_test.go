package feed

import (
	"errors"
	"fmt"
	"sync"

	"github.com/clipwave/clipwave/auth"
	"github.com/clipwave/clipwave/video"
)

var viewer = auth.Session{Token: "tok", ID: "u1", Username: "ana", Role: "user"}

var errBoom = errors.New("boom")

func records(prefix string, n int) []video.Video {
	out := make([]video.Video, n)
	for i := range out {
		out[i] = video.Video{
			ID:    video.ID(fmt.Sprintf("%s%d", prefix, i)),
			Title: fmt.Sprintf("%s #%d", prefix, i),
			URL:   fmt.Sprintf("https://cdn.example/%s%d.mp4", prefix, i),
			Likes: i,
		}
		out[i].SetManifest(fmt.Sprintf("https://cdn.example/%s%d.m3u8", prefix, i))
	}
	return out
}

// fakeSurface records transport calls. Play fails while reject is set.
type fakeSurface struct {
	mu      sync.Mutex
	url     string
	onReady func()
	paused  bool
	reject  bool
	plays   int
}

func newSurface() *fakeSurface {
	return &fakeSurface{paused: true}
}

func (s *fakeSurface) Load(url string, onReady func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = url
	s.onReady = onReady
	return nil
}

func (s *fakeSurface) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reject {
		return errors.New("autoplay blocked")
	}
	s.paused = false
	s.plays++
	return nil
}

func (s *fakeSurface) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = true
	return nil
}

func (s *fakeSurface) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *fakeSurface) ready() {
	s.mu.Lock()
	fn := s.onReady
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (s *fakeSurface) source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

type fakeStream struct {
	destroyed bool
}

func (s *fakeStream) Destroy() {
	s.destroyed = true
}

// fakeRuntime hands out fake streams and keeps every one it created.
type fakeRuntime struct {
	streaming bool
	native    bool
	streams   []*fakeStream
}

func (r *fakeRuntime) SupportsStreaming() bool { return r.streaming }
func (r *fakeRuntime) CanPlayManifest() bool   { return r.native }

func (r *fakeRuntime) Attach(surface Surface, url string, onReady func()) (Stream, error) {
	st := &fakeStream{}
	r.streams = append(r.streams, st)
	return st, surface.Load(url, onReady)
}

func (r *fakeRuntime) live() int {
	n := 0
	for _, st := range r.streams {
		if !st.destroyed {
			n++
		}
	}
	return n
}

// screen hands out one fake surface per slot.
type screen struct {
	mu       sync.Mutex
	surfaces map[int]*fakeSurface
}

func newScreen() *screen {
	return &screen{surfaces: make(map[int]*fakeSurface)}
}

func (s *screen) Surface(index int) Surface {
	return s.get(index)
}

func (s *screen) get(index int) *fakeSurface {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.surfaces[index]; ok {
		return f
	}
	f := newSurface()
	s.surfaces[index] = f
	return f
}

func (s *screen) playing() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []int
	for i, f := range s.surfaces {
		if !f.Paused() {
			out = append(out, i)
		}
	}
	return out
}

// observer is a hand-driven VisibilityObserver.
type observer struct {
	subs []func(Visibility)
}

func (o *observer) Subscribe(fn func(Visibility)) func() {
	o.subs = append(o.subs, fn)
	i := len(o.subs) - 1
	return func() { o.subs[i] = nil }
}

func (o *observer) emit(v Visibility) {
	for _, fn := range o.subs {
		if fn != nil {
			fn(v)
		}
	}
}

// stacked lays n slots of equal height out from offset.
func stacked(n, height, offset int) []Slot {
	slots := make([]Slot, n)
	for i := range slots {
		top := i*height - offset
		slots[i] = Slot{Index: i, Rect: Rect{Top: top, Bottom: top + height}}
	}
	return slots
}

// transitions records Pause and Activate calls.
type transitions struct {
	mu    sync.Mutex
	calls []string
}

func (t *transitions) Pause(i int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, fmt.Sprintf("pause %d", i))
}

func (t *transitions) Activate(i int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, fmt.Sprintf("activate %d", i))
}
