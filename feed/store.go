package feed

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/clipwave/clipwave/auth"
	"github.com/clipwave/clipwave/key"
	"github.com/clipwave/clipwave/log"
	"github.com/clipwave/clipwave/video"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Options tune paging.
type Options struct {
	PageSize int

	// GuardPagination drops LoadNextPage while another call is in flight.
	GuardPagination bool

	// EnrichNextPages also resolves liked flags for pages after the first.
	EnrichNextPages bool
}

// OptionsFromConfig reads the feed.* keys.
func OptionsFromConfig() Options {
	return Options{
		PageSize:        viper.GetInt(key.FeedPageSize),
		GuardPagination: viper.GetBool(key.FeedGuardPagination),
		EnrichNextPages: viper.GetBool(key.FeedEnrichNextPages),
	}
}

// Store owns the ordered video sequence, the page cursor and the open
// comment panel. Every mutation that follows a request checks that the
// store has not been discarded in the meantime.
type Store struct {
	api     API
	session auth.Session
	opts    Options

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	videos   []video.Video
	page     int
	hasMore  bool
	inFlight bool
	panel    mo.Option[video.ID]
	comments []video.Comment
}

// NewStore returns an empty store for the given viewer.
func NewStore(api API, session auth.Session, opts Options) *Store {
	if opts.PageSize <= 0 {
		opts.PageSize = 5
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Store{
		api:     api,
		session: session,
		opts:    opts,
		ctx:     ctx,
		cancel:  cancel,
		hasMore: true,
		panel:   mo.None[video.ID](),
	}
}

// bind derives a request context that is cancelled by Discard.
func (s *Store) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// failure logs a failed request and classifies it.
func (s *Store) failure(err error, fields log.Fields, msg string) error {
	if s.ctx.Err() != nil {
		return ErrDiscarded
	}
	log.WithFields(fields).WithError(err).Error(msg)
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}

func (s *Store) authorized() bool {
	return s.session.Authenticated()
}

// live must be called with mu held after every suspension point.
func (s *Store) live() error {
	if s.ctx.Err() != nil {
		return ErrDiscarded
	}
	return nil
}

// LoadFirstPage replaces the sequence with page 1 and resolves the liked
// flag of every record. A failed like lookup only affects its own record.
func (s *Store) LoadFirstPage(ctx context.Context) (video.Page, error) {
	if !s.authorized() {
		return video.Page{}, ErrAuth
	}

	ctx, done := s.bind(ctx)
	defer done()

	page, err := s.api.Videos(ctx, s.session.Token, 1, s.opts.PageSize)
	if err != nil {
		return video.Page{}, s.failure(err, log.Fields{"page": 1}, "load first page")
	}

	s.enrich(ctx, page.Videos)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.live(); err != nil {
		return video.Page{}, err
	}

	s.videos = slices.Clone(page.Videos)
	s.page = 1
	s.hasMore = page.HasMore()

	log.Infof("loaded first page with %d videos", len(page.Videos))
	return page, nil
}

// LoadNextPage appends the next page in server order. It is a no-op when
// the feed is exhausted, nobody is signed in, or (with GuardPagination) a
// previous call has not finished. Failures leave the state untouched.
func (s *Store) LoadNextPage(ctx context.Context) (video.Page, error) {
	s.mu.Lock()
	if !s.hasMore || !s.authorized() || (s.opts.GuardPagination && s.inFlight) {
		s.mu.Unlock()
		return video.Page{}, nil
	}
	s.inFlight = true
	next := s.page + 1
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	ctx, done := s.bind(ctx)
	defer done()

	page, err := s.api.Videos(ctx, s.session.Token, next, s.opts.PageSize)
	if err != nil {
		return video.Page{}, s.failure(err, log.Fields{"page": next}, "load next page")
	}

	if s.opts.EnrichNextPages {
		s.enrich(ctx, page.Videos)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.live(); err != nil {
		return video.Page{}, err
	}

	s.videos = append(s.videos, page.Videos...)
	s.page = next
	s.hasMore = page.HasMore()

	log.Infof("loaded page %d with %d videos, %d total", next, len(page.Videos), len(s.videos))
	return page, nil
}

// enrich asks for every record's liked flag concurrently and writes the
// answers into videos. Lookups that fail leave the flag false.
func (s *Store) enrich(ctx context.Context, videos []video.Video) {
	var wg sync.WaitGroup
	for i := range videos {
		wg.Add(1)
		go func(v *video.Video) {
			defer wg.Done()

			liked, err := s.api.HasLiked(ctx, s.session.Token, video.ID(s.session.ID), v.ID)
			if err != nil {
				log.WithFields(log.Fields{"video": v.ID}).WithError(err).Warn("like lookup failed")
				liked = false
			}
			v.Liked = liked
		}(&videos[i])
	}
	wg.Wait()
}

// ToggleLike flips the viewer's like once the backend confirms it.
func (s *Store) ToggleLike(ctx context.Context, id video.ID) error {
	if !s.authorized() {
		return ErrAuth
	}

	ctx, done := s.bind(ctx)
	defer done()

	if err := s.api.ToggleLike(ctx, s.session.Token, video.ID(s.session.ID), id); err != nil {
		return s.failure(err, log.Fields{"video": id}, "toggle like")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.live(); err != nil {
		return err
	}

	if i := s.indexOf(id); i >= 0 {
		s.videos[i].ToggleLiked()
	}
	return nil
}

// OpenComments fetches the comments of a video and opens the panel on it.
// The previous list is replaced, never merged.
func (s *Store) OpenComments(ctx context.Context, id video.ID) ([]video.Comment, error) {
	if !s.authorized() {
		return nil, ErrAuth
	}

	ctx, done := s.bind(ctx)
	defer done()

	comments, err := s.api.Comments(ctx, s.session.Token, id)
	if err != nil {
		return nil, s.failure(err, log.Fields{"video": id}, "fetch comments")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.live(); err != nil {
		return nil, err
	}

	s.comments = slices.Clone(comments)
	s.panel = mo.Some(id)
	return slices.Clone(s.comments), nil
}

// CloseComments closes the panel and drops its list.
func (s *Store) CloseComments() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.panel = mo.None[video.ID]()
	s.comments = nil
}

// PostComment adds a comment. The comment count of the video is taken from
// the backend answer, and the comment is prepended only when the panel is
// open on that video.
func (s *Store) PostComment(ctx context.Context, id video.ID, text string) (video.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return video.Comment{}, fmt.Errorf("%w: comment is empty", ErrValidation)
	}
	if !s.authorized() {
		return video.Comment{}, ErrAuth
	}

	ctx, done := s.bind(ctx)
	defer done()

	comment, count, err := s.api.AddComment(ctx, s.session.Token, video.ID(s.session.ID), id, text)
	if err != nil {
		return video.Comment{}, s.failure(err, log.Fields{"video": id}, "post comment")
	}

	if comment.Author == "" {
		comment.Author = s.session.Username
	}
	if comment.AuthorID == "" {
		comment.AuthorID = video.ID(s.session.ID)
	}
	if comment.Body == "" {
		comment.Body = text
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.live(); err != nil {
		return video.Comment{}, err
	}

	if open, ok := s.panel.Get(); ok && open == id {
		s.comments = slices.Insert(s.comments, 0, comment)
	}
	if i := s.indexOf(id); i >= 0 {
		s.videos[i].Comments = count
	}

	return comment, nil
}

// DeleteComment removes a comment from the open list and sets the owning
// video's count to the backend's value.
func (s *Store) DeleteComment(ctx context.Context, id video.ID) error {
	if !s.authorized() {
		return ErrAuth
	}

	ctx, done := s.bind(ctx)
	defer done()

	owner, count, err := s.api.DeleteComment(ctx, s.session.Token, id)
	if err != nil {
		return s.failure(err, log.Fields{"comment": id}, "delete comment")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.live(); err != nil {
		return err
	}

	s.comments = lo.Reject(s.comments, func(c video.Comment, _ int) bool {
		return c.ID == id
	})
	if i := s.indexOf(owner); i >= 0 {
		s.videos[i].Comments = count
	}
	return nil
}

// Discard cancels the store. Responses still in flight are dropped.
func (s *Store) Discard() {
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.videos = nil
	s.comments = nil
	s.panel = mo.None[video.ID]()
}

func (s *Store) indexOf(id video.ID) int {
	return slices.IndexFunc(s.videos, func(v video.Video) bool {
		return v.ID == id
	})
}

// Snapshot returns a copy of the sequence.
func (s *Store) Snapshot() []video.Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.videos)
}

// Video returns the record at index i.
func (s *Store) Video(i int) (video.Video, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.videos) {
		return video.Video{}, false
	}
	return s.videos[i], true
}

// Len is the number of loaded records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.videos)
}

// HasMore reports whether another page may follow.
func (s *Store) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}

// Page is the last page number loaded.
func (s *Store) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Panel is the video the comment panel is open on.
func (s *Store) Panel() mo.Option[video.ID] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panel
}

// Comments returns a copy of the open comment list.
func (s *Store) Comments() []video.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.comments)
}

// Session is the viewer the store acts for.
func (s *Store) Session() auth.Session {
	return s.session
}
