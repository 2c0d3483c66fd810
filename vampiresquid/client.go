// Package vampiresquid provides a client for the vampiresquid media
// catalog: lookups of media assets by video reference, name, camera and
// time span.
package vampiresquid

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/s0up4200/m3client/m3"
)

// Client talks to the vampiresquid media catalog. Every endpoint here is a
// public read.
type Client struct {
	api    *m3.Client
	logger zerolog.Logger
}

// NewClient creates a media catalog client for the given base URL.
func NewClient(baseURL string, logger zerolog.Logger, opts ...m3.Option) *Client {
	opts = append([]m3.Option{m3.WithLogger(logger)}, opts...)
	return &Client{
		api:    m3.New(baseURL, opts...),
		logger: logger,
	}
}

// Authenticate performs the API-key handshake for this service.
func (c *Client) Authenticate(ctx context.Context, secret string) error {
	return c.api.Authenticate(ctx, secret)
}

// Authenticated reports whether a session token is held.
func (c *Client) Authenticated() bool {
	return c.api.Authenticated()
}

// MediaByVideoReference fetches the media record for a video reference.
func (c *Client) MediaByVideoReference(ctx context.Context, uuid string) (*Media, error) {
	return c.getMedia(ctx, "v1/media/videoreference/"+uuid)
}

// MediaByFilename fetches the media record whose video reference has the
// given filename.
func (c *Client) MediaByFilename(ctx context.Context, filename string) (*Media, error) {
	return c.getMedia(ctx, "v1/media/videoreference/filename/"+filename)
}

// MediaByURI fetches the media record stored at the given URI.
func (c *Client) MediaByURI(ctx context.Context, uri string) (*Media, error) {
	return c.getMedia(ctx, "v1/media/uri/"+uri)
}

// MediaByVideoSequence lists the media in a video sequence, server order.
func (c *Client) MediaByVideoSequence(ctx context.Context, name string) ([]*Media, error) {
	return c.listMedia(ctx, "v1/media/videosequence/"+name)
}

// MediaByVideo lists the media belonging to a named video.
func (c *Client) MediaByVideo(ctx context.Context, name string) ([]*Media, error) {
	return c.listMedia(ctx, "v1/media/video/"+name)
}

// MediaByCameraBetween lists the media a camera recorded between two
// timestamps (ISO-8601, as the catalog expects them in the path).
func (c *Client) MediaByCameraBetween(ctx context.Context, cameraID, startTime, endTime string) ([]*Media, error) {
	return c.listMedia(ctx, "v1/media/camera/"+cameraID+"/"+startTime+"/"+endTime)
}

// MediaByCameraAndTime lists the media a camera was recording at the given
// timestamp.
func (c *Client) MediaByCameraAndTime(ctx context.Context, cameraID, timestamp string) ([]*Media, error) {
	return c.listMedia(ctx, "v1/media/camera/"+cameraID+"/"+timestamp)
}

// ConcurrentMedia lists the media that overlap the given video reference
// in time.
func (c *Client) ConcurrentMedia(ctx context.Context, uuid string) ([]*Media, error) {
	return c.listMedia(ctx, "v1/media/concurrent/"+uuid)
}

func (c *Client) getMedia(ctx context.Context, path string) (*Media, error) {
	raw, err := c.api.GetJSON(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	media, err := m3.DecodeAs[*Media](MediaSchema, raw)
	if err != nil {
		c.logger.Warn().Str("schema", MediaSchema.Name).Msg("response payload did not match schema")
	}
	return media, err
}

func (c *Client) listMedia(ctx context.Context, path string) ([]*Media, error) {
	raw, err := c.api.GetJSON(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	media, err := m3.DecodeListAs[*Media](MediaSchema, raw)
	if err != nil {
		c.logger.Warn().Str("schema", MediaSchema.Name).Msg("response payload did not match schema")
	}
	return media, err
}
