package vampiresquid

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/m3client/m3"
)

// DefaultBatchConcurrency bounds the in-flight requests of a batch fetch.
const DefaultBatchConcurrency = 10

// BatchMediaByVideoReferences fetches the media records for many video
// references concurrently, with bounded concurrency. References the
// catalog does not know are skipped with a warning; results keep the input
// order with unknown references absent.
func (c *Client) BatchMediaByVideoReferences(ctx context.Context, uuids []string) ([]*Media, error) {
	if len(uuids) == 0 {
		return nil, nil
	}

	results := make([]*Media, len(uuids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultBatchConcurrency)

	var mu sync.Mutex
	for i, uuid := range uuids {
		i, uuid := i, uuid
		g.Go(func() error {
			media, err := c.MediaByVideoReference(ctx, uuid)
			if err != nil {
				var notFound *m3.NotFoundError
				if errors.As(err, &notFound) {
					c.logger.Warn().Str("video_reference", uuid).Msg("no media for video reference")
					return nil
				}
				return err
			}
			mu.Lock()
			results[i] = media
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*Media, 0, len(results))
	for _, media := range results {
		if media != nil {
			out = append(out, media)
		}
	}
	return out, nil
}
