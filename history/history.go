// Package history keeps a local log of watched videos.
package history

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/clipwave/clipwave/filesystem"
	"github.com/clipwave/clipwave/video"
	"github.com/clipwave/clipwave/where"
	"github.com/metafates/gache"
)

var (
	cacher *gache.Cache[map[string]*Watched]
	once   sync.Once

	// mu serializes read-modify-write cycles.
	mu sync.Mutex
)

func cache() *gache.Cache[map[string]*Watched] {
	once.Do(func() {
		cacher = gache.New[map[string]*Watched](
			&gache.Options{
				Path:       where.History(),
				FileSystem: &filesystem.GacheFs{},
			},
		)
	})
	return cacher
}

// now is replaced in tests.
var now = time.Now

// Get returns every entry keyed by video id.
func Get() (map[string]*Watched, error) {
	cached, expired, err := cache().Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Watched), nil
	}
	return cached, nil
}

// List returns the entries, most recently watched first.
func List() ([]*Watched, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	list := make([]*Watched, 0, len(saved))
	for _, w := range saved {
		list = append(list, w)
	}

	slices.SortFunc(list, func(a, b *Watched) int {
		if c := b.WatchedAt.Compare(a.WatchedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return list, nil
}

// Save records that v was watched.
func Save(v *video.Video) error {
	mu.Lock()
	defer mu.Unlock()

	saved, err := Get()
	if err != nil {
		return err
	}

	record := newWatched(v, now())
	if existing, ok := saved[record.ID]; ok {
		record.Times = existing.Times
	}
	record.Times++

	saved[record.ID] = record
	return cache().Set(saved)
}

// Remove deletes the entry for id. Unknown ids are ignored.
func Remove(id string) error {
	mu.Lock()
	defer mu.Unlock()

	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, id)
	return cache().Set(saved)
}

// Clear deletes every entry.
func Clear() error {
	mu.Lock()
	defer mu.Unlock()

	return cache().Set(make(map[string]*Watched))
}
