package video

// Comment is one entry of a video's comment panel.
type Comment struct {
	ID        ID        `json:"id"`
	AuthorID  ID        `json:"user_id"`
	Author    string    `json:"username"`
	Body      string    `json:"comment_text"`
	CreatedAt Timestamp `json:"created_at"`
}
