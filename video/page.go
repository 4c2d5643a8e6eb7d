package video

// Page is one response of the paginated feed endpoint.
type Page struct {
	Number int     `json:"page"`
	Videos []Video `json:"data"`
}

// HasMore reports whether another page may follow. The backend signals the
// end of the feed with an empty page.
func (p Page) HasMore() bool {
	return len(p.Videos) > 0
}
