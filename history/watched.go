package history

import (
	"fmt"
	"time"

	"github.com/clipwave/clipwave/video"
)

// Watched is one history entry. Re-watching a video updates it in place.
type Watched struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Liked     bool      `json:"liked"`
	Times     int       `json:"times"`
	WatchedAt time.Time `json:"watched_at"`
}

func (w *Watched) String() string {
	if w.Author == "" {
		return w.Title
	}
	return fmt.Sprintf("%s by @%s", w.Title, w.Author)
}

func newWatched(v *video.Video, at time.Time) *Watched {
	return &Watched{
		ID:        v.ID.String(),
		Title:     v.Title,
		Author:    v.Author,
		URL:       v.URL,
		Liked:     v.Liked,
		WatchedAt: at,
	}
}
