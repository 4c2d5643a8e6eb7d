package backend

import (
	"context"
)

// Signature authorizes one direct upload to Cloudinary.
type Signature struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	APIKey    string `json:"api_key"`
}

// Metadata describes a video being uploaded.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Uploaded is what gets recorded once the media is stored.
type Uploaded struct {
	CloudinaryID string  `json:"cloudinaryId"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Duration     float64 `json:"duration"`
	Format       string  `json:"format"`
	URL          string  `json:"url"`
}

// UploadSignature asks the backend to sign an upload of m.
func (c *Client) UploadSignature(ctx context.Context, token string, m Metadata) (Signature, error) {
	var out Signature
	if err := c.do(ctx, "POST", "/cloudinary/signature", token, m, &out); err != nil {
		return Signature{}, err
	}
	return out, nil
}

// SaveUpload records a finished upload against the creator's account.
func (c *Client) SaveUpload(ctx context.Context, token string, u Uploaded) error {
	return c.do(ctx, "POST", "/users/videos/upload", token, u, nil)
}
