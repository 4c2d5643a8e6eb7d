package hls

import (
	"context"
	"net/http"
	"sync"

	"github.com/clipwave/clipwave/feed"
	"github.com/clipwave/clipwave/key"
	"github.com/clipwave/clipwave/log"
	"github.com/spf13/viper"
)

// Runtime attaches sources to player surfaces. With Adaptive set it
// resolves manifests itself; otherwise the player receives the playlist.
type Runtime struct {
	Client       *http.Client
	Adaptive     bool
	MaxBandwidth uint32
}

// NewFromConfig reads player.adaptive and player.max_bandwidth.
func NewFromConfig() *Runtime {
	return &Runtime{
		Adaptive:     viper.GetBool(key.PlayerAdaptive),
		MaxBandwidth: uint32(max(viper.GetInt(key.PlayerMaxBandwidth), 0)),
	}
}

func (r *Runtime) SupportsStreaming() bool { return r.Adaptive }

// CanPlayManifest is always true, mpv plays HLS on its own.
func (r *Runtime) CanPlayManifest() bool { return true }

// Attach starts resolving url in the background and loads the chosen
// rendition into surface. It returns immediately.
func (r *Runtime) Attach(surface feed.Surface, url string, onReady func()) (feed.Stream, error) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &session{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(s.done)

		target := url
		if IsManifest(url) {
			rendition, err := Resolve(ctx, r.Client, url, r.MaxBandwidth)
			switch {
			case ctx.Err() != nil:
				return
			case err != nil:
				log.WithFields(log.Fields{"url": url}).WithError(err).Warn("resolve manifest, handing playlist to player")
			default:
				log.WithFields(log.Fields{
					"url":        url,
					"rendition":  rendition.URL,
					"bandwidth":  rendition.Bandwidth,
					"resolution": rendition.Resolution,
				}).Debug("picked rendition")
				target = rendition.URL
			}
		}

		if s.isDestroyed() {
			return
		}
		if err := surface.Load(target, onReady); err != nil {
			log.WithFields(log.Fields{"url": target}).WithError(err).Error("load source")
		}
	}()

	return s, nil
}

type session struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	destroyed bool
}

func (s *session) isDestroyed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyed
}

// Destroy stops a pending resolution. A source already loaded stays on
// the surface until the next load replaces it.
func (s *session) Destroy() {
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = true
}
