package tui

import (
	"sync"

	"github.com/clipwave/clipwave/feed"
)

// viewport is the feed as the tracker sees it. The bubble publishes a
// new layout after every scroll, resize or page load.
type viewport struct {
	mu   sync.Mutex
	next int
	subs map[int]func(feed.Visibility)
}

func newViewport() *viewport {
	return &viewport{subs: make(map[int]func(feed.Visibility))}
}

func (v *viewport) Subscribe(fn func(feed.Visibility)) (unsubscribe func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.next
	v.next++
	v.subs[id] = fn

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.subs, id)
	}
}

func (v *viewport) publish(vis feed.Visibility) {
	v.mu.Lock()
	subs := make([]func(feed.Visibility), 0, len(v.subs))
	for _, fn := range v.subs {
		subs = append(subs, fn)
	}
	v.mu.Unlock()

	for _, fn := range subs {
		fn(vis)
	}
}

// layout returns where each of count slots of slotHeight rows sits in a
// viewport of height rows scrolled down by scroll rows. Only slots that
// intersect the viewport are listed.
func layout(count, slotHeight, height, scroll int) feed.Visibility {
	vis := feed.Visibility{Height: height}
	if slotHeight <= 0 || count <= 0 {
		return vis
	}

	for i := max(scroll/slotHeight, 0); i < count; i++ {
		top := i*slotHeight - scroll
		if top >= height {
			break
		}
		vis.Slots = append(vis.Slots, feed.Slot{
			Index: i,
			Rect:  feed.Rect{Top: top, Bottom: top + slotHeight - 1},
		})
	}

	return vis
}

// window lists the slots to keep mounted: the visible ones and radius
// more on either side.
func window(vis feed.Visibility, radius, count int) []int {
	if len(vis.Slots) == 0 {
		return nil
	}

	first := max(vis.Slots[0].Index-radius, 0)
	last := min(vis.Slots[len(vis.Slots)-1].Index+radius, count-1)

	indices := make([]int, 0, last-first+1)
	for i := first; i <= last; i++ {
		indices = append(indices, i)
	}
	return indices
}

// clampScroll keeps the last slot from scrolling above the viewport top.
func clampScroll(scroll, count, slotHeight int) int {
	return min(max(scroll, 0), max(count-1, 0)*slotHeight)
}
