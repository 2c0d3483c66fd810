// Package panoptes provides a client for the panoptes image-capture
// service: framegrab upload, metadata lookup and download.
package panoptes

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/s0up4200/m3client/m3"
)

// Client talks to the panoptes image-capture service.
type Client struct {
	api    *m3.Client
	logger zerolog.Logger
}

// NewClient creates an image service client for the given base URL.
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

// UploadFramegrab uploads the image at localPath as a multipart form with
// the file under the "file" field. Privileged.
func (c *Client) UploadFramegrab(ctx context.Context, localPath, cameraID, deploymentID, name string) (*ImageParams, error) {
	auth, err := c.api.AuthorizationHeader()
	if err != nil {
		return nil, err
	}

	file, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(localPath))
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	requestURL := c.api.URLTo("v1/images/" + cameraID + "/" + deploymentID + "/" + name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", auth)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	raw, err := c.api.Do(req)
	if err != nil {
		return nil, err
	}
	return c.decodeParams(raw)
}

// GetFramegrab fetches the stored metadata for a framegrab.
func (c *Client) GetFramegrab(ctx context.Context, cameraID, deploymentID, name string) (*ImageParams, error) {
	raw, err := c.api.Get(ctx, "v1/images/"+cameraID+"/"+deploymentID+"/"+name, nil)
	if err != nil {
		return nil, err
	}
	return c.decodeParams(raw)
}

// DownloadFramegrab writes the raw image bytes to localPath. The body is
// binary, so the typed decoder is bypassed entirely.
func (c *Client) DownloadFramegrab(ctx context.Context, localPath, cameraID, deploymentID, name string) error {
	raw, err := c.api.Get(ctx, "v1/images/download/"+cameraID+"/"+deploymentID+"/"+name, nil)
	if err != nil {
		return err
	}
	if err := os.WriteFile(localPath, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}
	c.logger.Debug().Str("path", localPath).Int("bytes", len(raw)).Msg("downloaded framegrab")
	return nil
}

func (c *Client) decodeParams(body []byte) (*ImageParams, error) {
	raw, err := m3.UnmarshalJSON(body)
	if err != nil {
		return nil, err
	}
	params, err := m3.DecodeAs[*ImageParams](ImageParamsSchema, raw)
	if err != nil {
		c.logger.Warn().Str("schema", ImageParamsSchema.Name).Msg("response payload did not match schema")
	}
	return params, err
}
