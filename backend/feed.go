package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/clipwave/clipwave/video"
)

// Videos returns one page of the feed.
func (c *Client) Videos(ctx context.Context, token string, page, limit int) (video.Page, error) {
	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("limit", fmt.Sprint(limit))

	var out struct {
		Data []video.Video `json:"data"`
	}
	if err := c.do(ctx, "GET", "/users/videos/all?"+q.Encode(), token, nil, &out); err != nil {
		return video.Page{}, err
	}

	return video.Page{Number: page, Videos: out.Data}, nil
}

// HasLiked reports whether viewer liked the video.
func (c *Client) HasLiked(ctx context.Context, token string, viewer, videoID video.ID) (bool, error) {
	var out struct {
		Liked bool `json:"liked"`
	}
	path := fmt.Sprintf("/users/likes/has-liked/%s/%s", url.PathEscape(viewer.String()), url.PathEscape(videoID.String()))
	if err := c.do(ctx, "GET", path, token, nil, &out); err != nil {
		return false, err
	}
	return out.Liked, nil
}

// ToggleLike flips the viewer's like on a video.
func (c *Client) ToggleLike(ctx context.Context, token string, viewer, videoID video.ID) error {
	in := map[string]video.ID{"video_id": videoID, "user_id": viewer}
	return c.do(ctx, "POST", "/users/likes/toggle", token, in, nil)
}

// Comments lists the comments of a video.
func (c *Client) Comments(ctx context.Context, token string, videoID video.ID) ([]video.Comment, error) {
	var out struct {
		Comments []video.Comment `json:"comments"`
	}
	if err := c.do(ctx, "GET", "/users/comments/"+url.PathEscape(videoID.String()), token, nil, &out); err != nil {
		return nil, err
	}
	return out.Comments, nil
}

// AddComment posts a comment and returns it with the video's new comment count.
func (c *Client) AddComment(ctx context.Context, token string, viewer, videoID video.ID, text string) (video.Comment, int, error) {
	in := struct {
		VideoID video.ID `json:"video_id"`
		UserID  video.ID `json:"user_id"`
		Content string   `json:"content"`
	}{videoID, viewer, text}

	var out struct {
		Comment      video.Comment `json:"comment"`
		CommentCount int           `json:"comment_count"`
	}
	if err := c.do(ctx, "POST", "/users/comments/add", token, in, &out); err != nil {
		return video.Comment{}, 0, err
	}
	return out.Comment, out.CommentCount, nil
}

// DeleteComment removes a comment and returns the owning video with its new count.
func (c *Client) DeleteComment(ctx context.Context, token string, commentID video.ID) (video.ID, int, error) {
	var out struct {
		VideoID      video.ID `json:"video_id"`
		CommentCount int      `json:"comment_count"`
	}
	if err := c.do(ctx, "DELETE", "/comments/"+url.PathEscape(commentID.String()), token, nil, &out); err != nil {
		return "", 0, err
	}
	return out.VideoID, out.CommentCount, nil
}
