// Package feed is the view-controller behind the video feed: the record
// store, the viewport tracker choosing the active slot, and the playback
// controller that keeps at most one slot playing.
package feed

//go:generate mockgen -source=api.go -destination=mocks/api.go -package=mocks

import (
	"context"

	"github.com/clipwave/clipwave/video"
)

// API is the part of the backend the store depends on.
type API interface {
	Videos(ctx context.Context, token string, page, limit int) (video.Page, error)
	HasLiked(ctx context.Context, token string, viewer, videoID video.ID) (bool, error)
	ToggleLike(ctx context.Context, token string, viewer, videoID video.ID) error
	Comments(ctx context.Context, token string, videoID video.ID) ([]video.Comment, error)
	AddComment(ctx context.Context, token string, viewer, videoID video.ID, text string) (video.Comment, int, error)
	DeleteComment(ctx context.Context, token string, commentID video.ID) (video.ID, int, error)
}
