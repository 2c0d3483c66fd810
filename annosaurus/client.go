package annosaurus

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/s0up4200/m3client/m3"
)

// Client talks to the annosaurus annotation service. Read endpoints are
// public; the ancillary data write endpoints require Authenticate first.
type Client struct {
	api    *m3.Client
	logger zerolog.Logger
}

// NewClient creates an annotation service client for the given base URL.
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

// Ancillary data ---

// GetAncillaryDatum fetches the ancillary datum with the given uuid.
func (c *Client) GetAncillaryDatum(ctx context.Context, uuid string) (*AncillaryDatum, error) {
	raw, err := c.api.GetJSON(ctx, "v1/ancillarydata/"+uuid, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord[*AncillaryDatum](c, AncillaryDatumSchema, raw)
}

// AncillaryDataByVideoReference returns the raw ancillary data payload for
// a video reference. The endpoint's shape varies by deployment, so the
// decoded JSON is passed through untyped.
func (c *Client) AncillaryDataByVideoReference(ctx context.Context, uuid string) (any, error) {
	return c.api.GetJSON(ctx, "v1/ancillarydata/videoreference/"+uuid, nil)
}

// AncillaryDataByImagedMoment returns the raw ancillary data payload for an
// imaged moment.
func (c *Client) AncillaryDataByImagedMoment(ctx context.Context, uuid string) (any, error) {
	return c.api.GetJSON(ctx, "v1/ancillarydata/imagedmoment/"+uuid, nil)
}

// AncillaryDataByObservation returns the raw ancillary data payload for an
// observation.
func (c *Client) AncillaryDataByObservation(ctx context.Context, uuid string) (any, error) {
	return c.api.GetJSON(ctx, "v1/ancillarydata/observation/"+uuid, nil)
}

// CreateAncillaryDatum stores a new ancillary datum. Privileged. Only the
// fields set on datum are transmitted.
func (c *Client) CreateAncillaryDatum(ctx context.Context, datum *AncillaryDatum) (*AncillaryDatum, error) {
	form := url.Values{}
	for key, value := range datum.Properties() {
		form.Set(key, fmt.Sprint(value))
	}

	raw, err := c.api.PostForm(ctx, "v1/ancillarydata", form)
	if err != nil {
		return nil, err
	}
	return decodeRecord[*AncillaryDatum](c, AncillaryDatumSchema, raw)
}

// CreateAncillaryDataBulk stores many ancillary data in one call.
// Privileged. The payload is a JSON array of non-null projections.
func (c *Client) CreateAncillaryDataBulk(ctx context.Context, data []*AncillaryDatum) ([]*AncillaryDatum, error) {
	payload := make([]map[string]any, len(data))
	for i, datum := range data {
		payload[i] = datum.Properties()
	}

	raw, err := c.api.PostJSON(ctx, "v1/ancillarydata/bulk", payload)
	if err != nil {
		return nil, err
	}
	return decodeList[*AncillaryDatum](c, AncillaryDatumSchema, raw)
}

// MergeAncillaryData merges sensor data onto the imaged moments of a video
// reference. Privileged. A positive window widens the timestamp match and
// is sent as a query parameter; zero or negative windows are omitted.
func (c *Client) MergeAncillaryData(ctx context.Context, videoReferenceUUID string, data []*AncillaryDatum, window int) error {
	payload := make([]map[string]any, len(data))
	for i, datum := range data {
		payload[i] = datum.Properties()
	}

	var params url.Values
	if window > 0 {
		params = url.Values{"window": {fmt.Sprint(window)}}
	}

	_, err := c.api.PutJSON(ctx, "v1/ancillarydata/merge/"+videoReferenceUUID, params, payload)
	return err
}

// Annotations ---

// GetAnnotation fetches a single annotation by observation uuid.
func (c *Client) GetAnnotation(ctx context.Context, uuid string) (*Observation, error) {
	raw, err := c.api.GetJSON(ctx, "v1/annotations/"+uuid, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord[*Observation](c, ObservationSchema, raw)
}

// AnnotationsByVideoReference lists the annotations on a video reference,
// in server order. params passes through query parameters such as limit
// and offset.
func (c *Client) AnnotationsByVideoReference(ctx context.Context, uuid string, params url.Values) ([]*Observation, error) {
	raw, err := c.api.GetJSON(ctx, "v1/annotations/videoreference/"+uuid, params)
	if err != nil {
		return nil, err
	}
	return decodeList[*Observation](c, ObservationSchema, raw)
}

// AnnotationsByImageReference lists the annotations attached to an image
// reference.
func (c *Client) AnnotationsByImageReference(ctx context.Context, uuid string, params url.Values) ([]*Observation, error) {
	raw, err := c.api.GetJSON(ctx, "v1/annotations/imagereference/"+uuid, params)
	if err != nil {
		return nil, err
	}
	return decodeList[*Observation](c, ObservationSchema, raw)
}

// AnnotationsByVideoReferenceChunked lists annotations via the chunked
// endpoint, which the server pages internally for large dives.
func (c *Client) AnnotationsByVideoReferenceChunked(ctx context.Context, uuid string, params url.Values) ([]*Observation, error) {
	raw, err := c.api.GetJSON(ctx, "v1/annotations/videoreference/chunked/"+uuid, params)
	if err != nil {
		return nil, err
	}
	return decodeList[*Observation](c, ObservationSchema, raw)
}

// Video reference info ---

// AllVideoReferenceInfos lists every video reference info record.
func (c *Client) AllVideoReferenceInfos(ctx context.Context, params url.Values) ([]*VideoReferenceInfo, error) {
	raw, err := c.api.GetJSON(ctx, "v1/videoreferences", params)
	if err != nil {
		return nil, err
	}
	return decodeList[*VideoReferenceInfo](c, VideoReferenceInfoSchema, raw)
}

// GetVideoReferenceInfo fetches one video reference info record by uuid.
func (c *Client) GetVideoReferenceInfo(ctx context.Context, uuid string) (*VideoReferenceInfo, error) {
	raw, err := c.api.GetJSON(ctx, "v1/videoreferences/"+uuid, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord[*VideoReferenceInfo](c, VideoReferenceInfoSchema, raw)
}

// VideoReferenceInfosByVideoReference lists the info records for a video
// reference.
func (c *Client) VideoReferenceInfosByVideoReference(ctx context.Context, uuid string) ([]*VideoReferenceInfo, error) {
	raw, err := c.api.GetJSON(ctx, "v1/videoreferences/videoreference/"+uuid, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[*VideoReferenceInfo](c, VideoReferenceInfoSchema, raw)
}

// VideoReferenceInfosByMissionID lists the info records for a mission id.
func (c *Client) VideoReferenceInfosByMissionID(ctx context.Context, missionID string) ([]*VideoReferenceInfo, error) {
	raw, err := c.api.GetJSON(ctx, "v1/videoreferences/missionid/"+missionID, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[*VideoReferenceInfo](c, VideoReferenceInfoSchema, raw)
}

// VideoReferenceInfosByMissionContact lists the info records for a mission
// contact.
func (c *Client) VideoReferenceInfosByMissionContact(ctx context.Context, contact string) ([]*VideoReferenceInfo, error) {
	raw, err := c.api.GetJSON(ctx, "v1/videoreferences/missioncontact/"+contact, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[*VideoReferenceInfo](c, VideoReferenceInfoSchema, raw)
}

// VideoReferenceUUIDs returns the raw listing of known video reference
// uuids.
func (c *Client) VideoReferenceUUIDs(ctx context.Context) (any, error) {
	return c.api.GetJSON(ctx, "v1/videoreferences/videoreferences", nil)
}

// MissionIDs returns the raw listing of known mission ids.
func (c *Client) MissionIDs(ctx context.Context) (any, error) {
	return c.api.GetJSON(ctx, "v1/videoreferences/missionids", nil)
}

// MissionContacts returns the raw listing of known mission contacts.
func (c *Client) MissionContacts(ctx context.Context) (any, error) {
	return c.api.GetJSON(ctx, "v1/videoreferences/missioncontacts", nil)
}

func decodeRecord[T any](c *Client, schema *m3.Schema, raw any) (T, error) {
	rec, err := m3.DecodeAs[T](schema, raw)
	if err != nil {
		c.logger.Warn().Str("schema", schema.Name).Msg("response payload did not match schema")
	}
	return rec, err
}

func decodeList[T any](c *Client, schema *m3.Schema, raw any) ([]T, error) {
	items, err := m3.DecodeListAs[T](schema, raw)
	if err != nil {
		c.logger.Warn().Str("schema", schema.Name).Msg("response payload did not match schema")
	}
	return items, err
}
