package annosaurus

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/m3client/m3"
)

func authHandler(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth" {
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-abc"})
			return
		}
		next(w, r)
	}
}

func TestGetAnnotation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/annotations/obs-1", r.URL.Path)
		w.Write([]byte(`{
			"observation_uuid": "obs-1",
			"concept": "Nanomia bijuga",
			"observer": "kwalz",
			"elapsed_time_millis": 123456,
			"associations": [
				{"link_name": "s1", "to_concept": "self", "uuid": "as-1"},
				{"link_name": "comment", "link_value": "faded", "uuid": "as-2"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	obs, err := client.GetAnnotation(context.Background(), "obs-1")
	require.NoError(t, err)

	assert.Equal(t, "Nanomia bijuga", obs.Concept)
	assert.Equal(t, "kwalz", obs.Observer)
	assert.Equal(t, int64(123456), obs.ElapsedTimeMillis)
	require.Len(t, obs.Associations, 2)
	assert.Equal(t, "s1", obs.Associations[0].LinkName)
	assert.Equal(t, "faded", obs.Associations[1].LinkValue)
}

func TestAnnotationsByVideoReference(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/annotations/videoreference/vr-1", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		w.Write([]byte(`[
			{"observation_uuid": "obs-1", "concept": "first"},
			{"observation_uuid": "obs-2", "concept": "second"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	annotations, err := client.AnnotationsByVideoReference(context.Background(), "vr-1", url.Values{"limit": {"50"}})
	require.NoError(t, err)

	require.Len(t, annotations, 2)
	assert.Equal(t, "first", annotations[0].Concept, "server order preserved")
	assert.Equal(t, "second", annotations[1].Concept)
}

func TestAnnotationDecodeDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// concept has the wrong type; the whole record degrades.
		w.Write([]byte(`{"observation_uuid": "obs-1", "concept": 7}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	_, err := client.GetAnnotation(context.Background(), "obs-1")

	var decodeErr *m3.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "Observation", decodeErr.Schema)
	raw, ok := decodeErr.Raw.(map[string]any)
	require.True(t, ok, "raw payload passes through untyped")
	assert.Equal(t, float64(7), raw["concept"])
}

func TestCreateAncillaryDatum(t *testing.T) {
	server := httptest.NewServer(authHandler(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/ancillarydata", r.URL.Path)
		assert.Equal(t, "BEARER tok-abc", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "36.7", r.PostForm.Get("latitude"))
		assert.Empty(t, r.PostForm.Get("longitude"), "unset fields are not transmitted")

		w.Write([]byte(`{"uuid": "ad-1", "latitude": 36.7}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	require.NoError(t, client.Authenticate(context.Background(), "seekrit"))

	lat := 36.7
	created, err := client.CreateAncillaryDatum(context.Background(), &AncillaryDatum{Latitude: &lat})
	require.NoError(t, err)
	require.NotNil(t, created.UUID)
	assert.Equal(t, "ad-1", *created.UUID)
}

func TestCreateAncillaryDatumBeforeAuth(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	lat := 36.7
	_, err := client.CreateAncillaryDatum(context.Background(), &AncillaryDatum{Latitude: &lat})

	var missing *m3.AuthenticationMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, int64(0), hits.Load())
}

func TestCreateAncillaryDataBulk(t *testing.T) {
	server := httptest.NewServer(authHandler(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/ancillarydata/bulk", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var payload []map[string]any
		require.NoError(t, json.Unmarshal(body, &payload))
		require.Len(t, payload, 2)
		assert.Equal(t, 10.5, payload[0]["depth_meters"])
		assert.Equal(t, 11.0, payload[1]["depth_meters"])

		w.Write([]byte(`[{"uuid": "ad-1"}, {"uuid": "ad-2"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	require.NoError(t, client.Authenticate(context.Background(), "seekrit"))

	d1, d2 := 10.5, 11.0
	created, err := client.CreateAncillaryDataBulk(context.Background(), []*AncillaryDatum{
		{DepthMeters: &d1},
		{DepthMeters: &d2},
	})
	require.NoError(t, err)
	assert.Len(t, created, 2)
}

func TestMergeAncillaryDataWindow(t *testing.T) {
	tests := []struct {
		name      string
		window    int
		wantParam string
		wantInURL bool
	}{
		{name: "positive window sent", window: 15, wantParam: "15", wantInURL: true},
		{name: "zero window omitted", window: 0, wantInURL: false},
		{name: "negative window omitted", window: -3, wantInURL: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(authHandler(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPut, r.Method)
				assert.Equal(t, "/v1/ancillarydata/merge/vr-1", r.URL.Path)
				if tt.wantInURL {
					assert.Equal(t, tt.wantParam, r.URL.Query().Get("window"))
				} else {
					assert.False(t, r.URL.Query().Has("window"))
				}
				w.Write([]byte(`[]`))
			}))
			defer server.Close()

			client := NewClient(server.URL, zerolog.Nop())
			require.NoError(t, client.Authenticate(context.Background(), "seekrit"))

			temp := 4.2
			err := client.MergeAncillaryData(context.Background(), "vr-1",
				[]*AncillaryDatum{{TemperatureCelsius: &temp}}, tt.window)
			require.NoError(t, err)
		})
	}
}

func TestVideoReferenceInfosByMissionID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/videoreferences/missionid/D1234", r.URL.Path)
		w.Write([]byte(`[{"mission_id": "D1234", "platform_name": "Doc Ricketts", "uuid": "vri-1"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	infos, err := client.VideoReferenceInfosByMissionID(context.Background(), "D1234")
	require.NoError(t, err)

	require.Len(t, infos, 1)
	assert.Equal(t, "Doc Ricketts", infos[0].PlatformName)
}

func TestMissionIDsPassthrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/videoreferences/missionids", r.URL.Path)
		w.Write([]byte(`["D1234", "D1235"]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	raw, err := client.MissionIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []any{"D1234", "D1235"}, raw)
}
