// Package hls resolves HLS manifests into the rendition handed to the player.
package hls

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/clipwave/clipwave/network"
	"github.com/grafov/m3u8"
)

// ErrEmptyManifest is returned for a master playlist without variants.
var ErrEmptyManifest = errors.New("manifest has no variants")

// Rendition is the stream picked from a manifest.
type Rendition struct {
	URL        string
	Bandwidth  uint32
	Resolution string
	Codecs     string
}

// IsManifest reports whether u points at an HLS playlist.
func IsManifest(u string) bool {
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	return strings.EqualFold(path.Ext(parsed.Path), ".m3u8")
}

// Resolve fetches the manifest at u and picks a rendition. A media
// playlist is its own rendition. For a master playlist the highest variant
// at or under maxBandwidth wins; with no limit, or when every variant is
// above it, the highest or lowest one is used respectively.
func Resolve(ctx context.Context, client *http.Client, u string, maxBandwidth uint32) (Rendition, error) {
	if client == nil {
		client = network.Client
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Rendition{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Rendition{}, fmt.Errorf("fetch manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Rendition{}, fmt.Errorf("fetch manifest: status %d", resp.StatusCode)
	}

	playlist, kind, err := m3u8.DecodeFrom(resp.Body, true)
	if err != nil {
		return Rendition{}, fmt.Errorf("parse manifest: %w", err)
	}

	switch kind {
	case m3u8.MEDIA:
		return Rendition{URL: u}, nil
	case m3u8.MASTER:
		master := playlist.(*m3u8.MasterPlaylist)
		v, err := pick(master.Variants, maxBandwidth)
		if err != nil {
			return Rendition{}, err
		}

		ref, err := resolveRef(u, v.URI)
		if err != nil {
			return Rendition{}, err
		}

		return Rendition{
			URL:        ref,
			Bandwidth:  v.Bandwidth,
			Resolution: v.Resolution,
			Codecs:     v.Codecs,
		}, nil
	default:
		return Rendition{}, fmt.Errorf("parse manifest: unknown playlist type %d", kind)
	}
}

func pick(variants []*m3u8.Variant, maxBandwidth uint32) (*m3u8.Variant, error) {
	variants = slices.DeleteFunc(slices.Clone(variants), func(v *m3u8.Variant) bool {
		return v == nil || v.URI == "" || v.Iframe
	})
	if len(variants) == 0 {
		return nil, ErrEmptyManifest
	}

	slices.SortStableFunc(variants, func(a, b *m3u8.Variant) int {
		return int(int64(a.Bandwidth) - int64(b.Bandwidth))
	})

	if maxBandwidth == 0 {
		return variants[len(variants)-1], nil
	}

	best := variants[0]
	for _, v := range variants {
		if v.Bandwidth <= maxBandwidth {
			best = v
		}
	}
	return best, nil
}

func resolveRef(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("manifest url: %w", err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("variant uri: %w", err)
	}
	return b.ResolveReference(r).String(), nil
}
