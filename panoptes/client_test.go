package panoptes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/m3client/m3"
)

func TestUploadFramegrab(t *testing.T) {
	imagePath := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, os.WriteFile(imagePath, []byte("png-bytes"), 0o644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth" {
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-img"})
			return
		}

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/images/cam-1/dep-9/frame.png", r.URL.Path)
		assert.Equal(t, "BEARER tok-img", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err, "image must arrive under the multipart field named file")
		defer file.Close()
		assert.Equal(t, "frame.png", header.Filename)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(content))

		w.Write([]byte(`{"uri": "http://img/frame.png", "cameraId": "cam-1", "deploymentId": "dep-9", "name": "frame.png"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	require.NoError(t, client.Authenticate(context.Background(), "seekrit"))

	params, err := client.UploadFramegrab(context.Background(), imagePath, "cam-1", "dep-9", "frame.png")
	require.NoError(t, err)
	assert.Equal(t, "http://img/frame.png", params.URI)
	assert.Equal(t, "cam-1", params.CameraID)
}

func TestUploadFramegrabBeforeAuth(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	_, err := client.UploadFramegrab(context.Background(), "does-not-matter.png", "cam-1", "dep-9", "frame.png")

	var missing *m3.AuthenticationMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, int64(0), hits.Load())
}

func TestGetFramegrab(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images/cam-1/dep-9/frame.png", r.URL.Path)
		w.Write([]byte(`{"uri": "http://img/frame.png", "name": "frame.png"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	params, err := client.GetFramegrab(context.Background(), "cam-1", "dep-9", "frame.png")
	require.NoError(t, err)
	assert.Equal(t, "frame.png", params.Name)
	assert.Empty(t, params.DeploymentID, "absent fields stay at their zero value")
}

func TestDownloadFramegrab(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images/download/cam-1/dep-9/frame.png", r.URL.Path)
		w.Write([]byte("raw-image-bytes"))
	}))
	defer server.Close()

	target := filepath.Join(t.TempDir(), "out.png")
	client := NewClient(server.URL, zerolog.Nop())
	require.NoError(t, client.DownloadFramegrab(context.Background(), target, "cam-1", "dep-9", "frame.png"))

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "raw-image-bytes", string(content))
}

func TestDownloadFramegrabNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("no such image"))
	}))
	defer server.Close()

	target := filepath.Join(t.TempDir(), "out.png")
	client := NewClient(server.URL, zerolog.Nop())
	err := client.DownloadFramegrab(context.Background(), target, "cam-1", "dep-9", "frame.png")

	var notFound *m3.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.NoFileExists(t, target)
}
