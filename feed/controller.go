package feed

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/clipwave/clipwave/auth"
	"github.com/clipwave/clipwave/key"
	"github.com/clipwave/clipwave/log"
	"github.com/clipwave/clipwave/video"
	"github.com/spf13/viper"
)

// Feed ties the store, the tracker and the playback controller together.
type Feed struct {
	Store    *Store
	Tracker  *Tracker
	Playback *Playback

	mu       sync.Mutex
	onPage   func(video.Page, error)
	onActive func(video.Video)
	loading  sync.WaitGroup
}

// New builds a feed for session. surfaces backs each slot with a media
// output and runtime decides how sources are attached.
func New(api API, session auth.Session, opts Options, runtime Runtime, surfaces Surfaces) *Feed {
	f := &Feed{
		Store:    NewStore(api, session, opts),
		Playback: NewPlayback(runtime, surfaces),
	}
	f.Tracker = NewTracker(f.Playback, f.prefetch, viper.GetInt(key.FeedPrefetchDistance))
	f.Tracker.OnChange(f.changed)
	return f
}

// OnPageLoaded registers fn to receive the outcome of every background
// page load.
func (f *Feed) OnPageLoaded(fn func(video.Page, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onPage = fn
}

// OnActivate registers fn to be called with every record that becomes active.
func (f *Feed) OnActivate(fn func(video.Video)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onActive = fn
}

// Start loads the first page and activates its first record.
func (f *Feed) Start(ctx context.Context) error {
	if _, err := f.Store.LoadFirstPage(ctx); err != nil {
		return err
	}
	f.Tracker.SetCount(f.Store.Len())
	return nil
}

// Watch subscribes the tracker to the rendering surface.
func (f *Feed) Watch(o VisibilityObserver) (unsubscribe func()) {
	return f.Tracker.Watch(o)
}

// Render mounts the slots in indices that are not mounted yet and
// unmounts those that fell out of the rendered set.
func (f *Feed) Render(indices []int) {
	mounted := f.Playback.Mounted()

	for _, index := range mounted {
		if !slices.Contains(indices, index) {
			f.Playback.Unmount(index)
		}
	}

	for _, index := range indices {
		if slices.Contains(mounted, index) {
			continue
		}
		if v, ok := f.Store.Video(index); ok {
			f.Playback.Mount(index, v)
		}
	}
}

// Toggle flips play and pause on the active slot.
func (f *Feed) Toggle() {
	if active := f.Tracker.Active(); active != None {
		f.Playback.Toggle(active)
	}
}

// Active returns the active record.
func (f *Feed) Active() (video.Video, bool) {
	return f.Store.Video(f.Tracker.Active())
}

// Wait blocks until background page loads have finished.
func (f *Feed) Wait() {
	f.loading.Wait()
}

// Close discards the store and releases every slot.
func (f *Feed) Close() {
	f.Store.Discard()
	f.Playback.Reset()
	f.Tracker.SetCount(0)
}

func (f *Feed) prefetch() {
	f.loading.Add(1)
	go func() {
		defer f.loading.Done()

		page, err := f.Store.LoadNextPage(context.Background())
		if errors.Is(err, ErrDiscarded) {
			return
		}
		if err == nil {
			f.Tracker.SetCount(f.Store.Len())
		}

		f.mu.Lock()
		fn := f.onPage
		f.mu.Unlock()

		if fn != nil {
			fn(page, err)
		}
		if err != nil {
			log.WithError(err).Warn("prefetch failed")
		}
	}()
}

func (f *Feed) changed(_, next int) {
	if next == None {
		return
	}

	f.mu.Lock()
	fn := f.onActive
	f.mu.Unlock()

	if fn == nil {
		return
	}
	if v, ok := f.Store.Video(next); ok {
		fn(v)
	}
}
