// Package inline dumps the feed without the interactive interface.
package inline

import (
	"context"
	"fmt"
	"os"

	"github.com/clipwave/clipwave/log"
	"github.com/clipwave/clipwave/video"
)

// Loader is the part of feed.Store inline mode pages through.
type Loader interface {
	LoadFirstPage(ctx context.Context) (video.Page, error)
	LoadNextPage(ctx context.Context) (video.Page, error)
	HasMore() bool
	Page() int
	Snapshot() []video.Video
}

// Run loads options.Pages pages through loader and writes them to options.Out.
func Run(ctx context.Context, loader Loader, viewer string, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	if _, err := loader.LoadFirstPage(ctx); err != nil {
		return err
	}

	for loader.HasMore() && (options.Pages == 0 || loader.Page() < options.Pages) {
		page, err := loader.LoadNextPage(ctx)
		if err != nil {
			return err
		}
		if len(page.Videos) == 0 && loader.HasMore() {
			// dropped by the pagination guard
			break
		}
	}

	videos := loader.Snapshot()
	log.WithFields(log.Fields{"pages": loader.Page(), "videos": len(videos)}).Info("inline feed loaded")

	if options.Json {
		result := make([]*Video, len(videos))
		for i, v := range videos {
			result[i] = newVideo(v)
		}

		return writeJson(options.Out, &Output{
			Viewer:  viewer,
			Pages:   loader.Page(),
			HasMore: loader.HasMore(),
			Result:  result,
		})
	}

	for _, v := range videos {
		url := v.URL
		if options.Playback {
			url = v.PlaybackURL()
		}
		if _, err := fmt.Fprintf(options.Out, "%s\t%s\t@%s\t%s\n", v.ID, v.Title, v.Author, url); err != nil {
			return err
		}
	}

	return nil
}
