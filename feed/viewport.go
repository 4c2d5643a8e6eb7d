package feed

import "sync"

// Rect is the vertical extent of a rendered slot relative to the top of
// the viewport. Both edges are inclusive.
type Rect struct {
	Top    int
	Bottom int
}

// Slot is a rendered feed item and where it currently sits.
type Slot struct {
	Index int
	Rect  Rect
}

// Visibility is one notification from the rendering surface: how tall the
// viewport is and where each rendered slot lies, in document order.
type Visibility struct {
	Height int
	Slots  []Slot
}

// VisibilityObserver is the rendering surface as seen by the tracker.
type VisibilityObserver interface {
	Subscribe(fn func(Visibility)) (unsubscribe func())
}

// Transitioner receives active slot changes.
type Transitioner interface {
	Pause(index int)
	Activate(index int)
}

// None is the active index while no records are loaded.
const None = -1

// Tracker picks the single active slot: the one straddling the vertical
// midpoint of the viewport. When several do, the last one wins.
//
// When the active index moves within distance of the end of the loaded
// records, prefetch is called. It must not block.
type Tracker struct {
	playback Transitioner
	prefetch func()
	distance int

	mu       sync.Mutex
	active   int
	count    int
	onChange func(prev, next int)
}

// NewTracker returns a tracker with no active slot.
func NewTracker(playback Transitioner, prefetch func(), distance int) *Tracker {
	if prefetch == nil {
		prefetch = func() {}
	}
	return &Tracker{
		playback: playback,
		prefetch: prefetch,
		distance: distance,
		active:   None,
	}
}

// OnChange registers fn to be called after every transition.
func (t *Tracker) OnChange(fn func(prev, next int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = fn
}

// Watch subscribes the tracker to o.
func (t *Tracker) Watch(o VisibilityObserver) (unsubscribe func()) {
	return o.Subscribe(func(v Visibility) {
		t.Recompute(v)
	})
}

// Active is the current active index, or None.
func (t *Tracker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// SetCount tells the tracker how many records are loaded. The first
// records to arrive make index 0 active.
func (t *Tracker) SetCount(n int) {
	t.mu.Lock()

	t.count = n
	prev := t.active
	switch {
	case n == 0:
		t.active = None
	case t.active == None:
		t.active = 0
	case t.active >= n:
		t.active = n - 1
	}
	next := t.active
	if next == prev {
		t.mu.Unlock()
		return
	}

	if prev != None {
		t.playback.Pause(prev)
	}
	if next != None {
		t.playback.Activate(next)
	}
	fn := t.onChange
	t.mu.Unlock()

	if fn != nil {
		fn(prev, next)
	}
}

// Recompute evaluates a visibility notification and returns the resulting
// active index and whether it changed.
func (t *Tracker) Recompute(v Visibility) (int, bool) {
	t.mu.Lock()

	if t.count == 0 {
		t.mu.Unlock()
		return None, false
	}

	mid := v.Height / 2
	next := t.active
	for _, s := range v.Slots {
		if s.Index < 0 || s.Index >= t.count {
			continue
		}
		if s.Rect.Top <= mid && mid <= s.Rect.Bottom {
			next = s.Index
		}
	}

	prev := t.active
	if next == prev {
		t.mu.Unlock()
		return prev, false
	}

	if prev != None {
		t.playback.Pause(prev)
	}
	t.playback.Activate(next)
	t.active = next

	near := next >= t.count-t.distance
	fn := t.onChange
	t.mu.Unlock()

	if near {
		t.prefetch()
	}
	if fn != nil {
		fn(prev, next)
	}

	return next, true
}
