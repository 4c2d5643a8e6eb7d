// Package video defines the feed records exchanged with the ClipWave backend.
package video

import (
	"encoding/json"
	"strings"

	"github.com/samber/mo"
)

// Video is one feed record.
type Video struct {
	ID           ID
	Title        string
	Description  string
	AuthorID     ID
	Author       string
	URL          string
	Manifest     mo.Option[string]
	ThumbnailURL string
	Likes        int
	Comments     int
	Views        int
	CreatedAt    Timestamp
	Liked        bool
}

type wireVideo struct {
	ID           ID        `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	AuthorID     ID        `json:"user_id"`
	Author       string    `json:"username"`
	URL          string    `json:"video_url"`
	Manifest     *string   `json:"hls_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Likes        int       `json:"like_count"`
	Comments     int       `json:"comment_count"`
	Views        int       `json:"views_count"`
	CreatedAt    Timestamp `json:"created_at"`
	Liked        bool      `json:"is_liked"`
}

// UnmarshalJSON decodes the backend shape.
func (v *Video) UnmarshalJSON(data []byte) error {
	var w wireVideo
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*v = Video{
		ID:           w.ID,
		Title:        w.Title,
		Description:  w.Description,
		AuthorID:     w.AuthorID,
		Author:       w.Author,
		URL:          w.URL,
		ThumbnailURL: w.ThumbnailURL,
		Likes:        max(w.Likes, 0),
		Comments:     max(w.Comments, 0),
		Views:        w.Views,
		CreatedAt:    w.CreatedAt,
		Liked:        w.Liked,
	}
	v.SetManifest(mo.PointerToOption(w.Manifest).OrEmpty())

	return nil
}

// MarshalJSON writes the backend shape. An absent manifest is written as null.
func (v Video) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireVideo{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		AuthorID:     v.AuthorID,
		Author:       v.Author,
		URL:          v.URL,
		Manifest:     v.Manifest.ToPointer(),
		ThumbnailURL: v.ThumbnailURL,
		Likes:        v.Likes,
		Comments:     v.Comments,
		Views:        v.Views,
		CreatedAt:    v.CreatedAt,
		Liked:        v.Liked,
	})
}

// SetManifest records the manifest URL. Blank values count as absent.
func (v *Video) SetManifest(raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		v.Manifest = mo.None[string]()
	} else {
		v.Manifest = mo.Some(raw)
	}
}

// PlaybackURL is the single URL handed to the player: the manifest when
// one is set, the canonical URL otherwise.
func (v *Video) PlaybackURL() string {
	if manifest, ok := v.Manifest.Get(); ok {
		if manifest = strings.TrimSpace(manifest); manifest != "" {
			return manifest
		}
	}
	return v.URL
}

// ToggleLiked flips the liked flag and moves the like count with it.
// The count never drops below zero.
func (v *Video) ToggleLiked() {
	v.Liked = !v.Liked
	if v.Liked {
		v.Likes++
	} else {
		v.Likes = max(v.Likes-1, 0)
	}
}

func (v *Video) String() string {
	return v.Title
}
