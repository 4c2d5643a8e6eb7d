package inline

import (
	"encoding/json"
	"io"
	"time"

	"github.com/clipwave/clipwave/video"
)

type Video struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Author      string  `json:"author"`
	URL         string  `json:"url" jsonschema:"format=uri"`
	Manifest    *string `json:"manifest,omitempty" jsonschema:"format=uri"`
	Playback    string  `json:"playback" jsonschema:"format=uri"`
	Likes       int     `json:"likes" jsonschema:"minimum=0"`
	Comments    int     `json:"comments" jsonschema:"minimum=0"`
	Views       int     `json:"views"`
	Liked       bool    `json:"liked"`
	CreatedAt   string  `json:"created_at,omitempty" jsonschema:"format=date-time"`
}

type Output struct {
	Viewer  string   `json:"viewer"`
	Pages   int      `json:"pages"`
	HasMore bool     `json:"has_more"`
	Result  []*Video `json:"result"`
}

func newVideo(v video.Video) *Video {
	out := &Video{
		ID:          v.ID.String(),
		Title:       v.Title,
		Description: v.Description,
		Author:      v.Author,
		URL:         v.URL,
		Manifest:    v.Manifest.ToPointer(),
		Playback:    v.PlaybackURL(),
		Likes:       v.Likes,
		Comments:    v.Comments,
		Views:       v.Views,
		Liked:       v.Liked,
	}
	if !v.CreatedAt.IsZero() {
		out.CreatedAt = v.CreatedAt.Format(time.RFC3339)
	}
	return out
}

func writeJson(w io.Writer, output *Output) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
