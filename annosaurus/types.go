package annosaurus

import "github.com/s0up4200/m3client/m3"

// AncillaryDatum holds sensor readings attached to an imaged moment:
// position, CTDO, transmissometer and camera pose. Fields are pointers so a
// partially populated datum can be projected back out with only the fields
// the caller actually set (see Properties).
type AncillaryDatum struct {
	UUID             *string
	ImagedMomentUUID *string

	// Position
	Latitude       *float64
	Longitude      *float64
	DepthMeters    *float64
	AltitudeMeters *float64

	// Coordinate reference system
	CRS *string

	// CTDO
	Salinity           *float64
	TemperatureCelsius *float64
	Oxygen             *float64
	PressureDbar       *float64

	// Transmissometer
	LightTransmission *float64

	// Camera pose
	X                 *float64
	Y                 *float64
	Z                 *float64
	PosePositionUnits *string
	Phi               *float64
	Theta             *float64
	Psi               *float64
}

// Properties projects the datum to a sparse mapping holding only the fields
// that are set, keyed by wire name. Create and merge calls transmit this
// projection so unset fields are never sent.
func (d *AncillaryDatum) Properties() map[string]any {
	p := make(map[string]any)
	putString(p, "uuid", d.UUID)
	putString(p, "imaged_moment_uuid", d.ImagedMomentUUID)
	putFloat(p, "latitude", d.Latitude)
	putFloat(p, "longitude", d.Longitude)
	putFloat(p, "depth_meters", d.DepthMeters)
	putFloat(p, "altitude_meters", d.AltitudeMeters)
	putString(p, "crs", d.CRS)
	putFloat(p, "salinity", d.Salinity)
	putFloat(p, "temperature_celsius", d.TemperatureCelsius)
	putFloat(p, "oxygen", d.Oxygen)
	putFloat(p, "pressure_dbar", d.PressureDbar)
	putFloat(p, "light_transmission", d.LightTransmission)
	putFloat(p, "x", d.X)
	putFloat(p, "y", d.Y)
	putFloat(p, "z", d.Z)
	putString(p, "pose_position_units", d.PosePositionUnits)
	putFloat(p, "phi", d.Phi)
	putFloat(p, "theta", d.Theta)
	putFloat(p, "psi", d.Psi)
	return p
}

func putString(p map[string]any, key string, v *string) {
	if v != nil {
		p[key] = *v
	}
}

func putFloat(p map[string]any, key string, v *float64) {
	if v != nil {
		p[key] = *v
	}
}

// Association links an observation to a concept, e.g. a comment or an
// identity reference.
type Association struct {
	LinkName  string
	LinkValue string
	ToConcept string
	MimeType  string
	UUID      string
}

// ImageReference points at a captured image belonging to an observation.
type ImageReference struct {
	Description  string
	URL          string
	HeightPixels int64
	WidthPixels  int64
	Format       string
	UUID         string
}

// Observation is a single annotation: who observed which concept when,
// with any associations and image references attached.
type Observation struct {
	ObservationUUID      string
	Concept              string
	Observer             string
	ObservationTimestamp string
	VideoReferenceUUID   string
	ImagedMomentUUID     string
	ElapsedTimeMillis    int64
	RecordedTimestamp    string
	Group                string
	Activity             string
	Associations         []Association
	ImageReferences      []ImageReference
}

// VideoReferenceInfo ties a video reference to its mission metadata.
type VideoReferenceInfo struct {
	MissionContact     string
	PlatformName       string
	VideoReferenceUUID string
	MissionID          string
	LastUpdatedTime    string
	UUID               string
}

// ImagedMoment is a point on a video's timeline with everything recorded
// at that instant: observations, image references and ancillary data.
type ImagedMoment struct {
	RecordedDate       string
	Timecode           string
	VideoReferenceUUID string
	Observations       []Observation
	ImageReferences    []ImageReference
	AncillaryData      *AncillaryDatum
	LastUpdatedTime    string
	UUID               string
}

// AncillaryDatumSchema declares the wire shape of AncillaryDatum records.
var AncillaryDatumSchema = &m3.Schema{
	Name: "AncillaryDatum",
	New:  func() any { return new(AncillaryDatum) },
	Fields: m3.Fields{
		"uuid":                m3.String(func(r any, v string) { r.(*AncillaryDatum).UUID = &v }),
		"imaged_moment_uuid":  m3.String(func(r any, v string) { r.(*AncillaryDatum).ImagedMomentUUID = &v }),
		"latitude":            m3.Float(func(r any, v float64) { r.(*AncillaryDatum).Latitude = &v }),
		"longitude":           m3.Float(func(r any, v float64) { r.(*AncillaryDatum).Longitude = &v }),
		"depth_meters":        m3.Float(func(r any, v float64) { r.(*AncillaryDatum).DepthMeters = &v }),
		"altitude_meters":     m3.Float(func(r any, v float64) { r.(*AncillaryDatum).AltitudeMeters = &v }),
		"crs":                 m3.String(func(r any, v string) { r.(*AncillaryDatum).CRS = &v }),
		"salinity":            m3.Float(func(r any, v float64) { r.(*AncillaryDatum).Salinity = &v }),
		"temperature_celsius": m3.Float(func(r any, v float64) { r.(*AncillaryDatum).TemperatureCelsius = &v }),
		"oxygen":              m3.Float(func(r any, v float64) { r.(*AncillaryDatum).Oxygen = &v }),
		"pressure_dbar":       m3.Float(func(r any, v float64) { r.(*AncillaryDatum).PressureDbar = &v }),
		"light_transmission":  m3.Float(func(r any, v float64) { r.(*AncillaryDatum).LightTransmission = &v }),
		"x":                   m3.Float(func(r any, v float64) { r.(*AncillaryDatum).X = &v }),
		"y":                   m3.Float(func(r any, v float64) { r.(*AncillaryDatum).Y = &v }),
		"z":                   m3.Float(func(r any, v float64) { r.(*AncillaryDatum).Z = &v }),
		"pose_position_units": m3.String(func(r any, v string) { r.(*AncillaryDatum).PosePositionUnits = &v }),
		"phi":                 m3.Float(func(r any, v float64) { r.(*AncillaryDatum).Phi = &v }),
		"theta":               m3.Float(func(r any, v float64) { r.(*AncillaryDatum).Theta = &v }),
		"psi":                 m3.Float(func(r any, v float64) { r.(*AncillaryDatum).Psi = &v }),
	},
}

// AssociationSchema declares the wire shape of Association records.
var AssociationSchema = &m3.Schema{
	Name: "Association",
	New:  func() any { return new(Association) },
	Fields: m3.Fields{
		"link_name":  m3.String(func(r any, v string) { r.(*Association).LinkName = v }),
		"link_value": m3.String(func(r any, v string) { r.(*Association).LinkValue = v }),
		"to_concept": m3.String(func(r any, v string) { r.(*Association).ToConcept = v }),
		"mime_type":  m3.String(func(r any, v string) { r.(*Association).MimeType = v }),
		"uuid":       m3.String(func(r any, v string) { r.(*Association).UUID = v }),
	},
}

// ImageReferenceSchema declares the wire shape of ImageReference records.
var ImageReferenceSchema = &m3.Schema{
	Name: "ImageReference",
	New:  func() any { return new(ImageReference) },
	Fields: m3.Fields{
		"description":   m3.String(func(r any, v string) { r.(*ImageReference).Description = v }),
		"url":           m3.String(func(r any, v string) { r.(*ImageReference).URL = v }),
		"height_pixels": m3.Int(func(r any, v int64) { r.(*ImageReference).HeightPixels = v }),
		"width_pixels":  m3.Int(func(r any, v int64) { r.(*ImageReference).WidthPixels = v }),
		"format":        m3.String(func(r any, v string) { r.(*ImageReference).Format = v }),
		"uuid":          m3.String(func(r any, v string) { r.(*ImageReference).UUID = v }),
	},
}

// ObservationSchema declares the wire shape of Observation records,
// including the nested association and image reference lists.
var ObservationSchema = &m3.Schema{
	Name: "Observation",
	New:  func() any { return new(Observation) },
	Fields: m3.Fields{
		"observation_uuid":      m3.String(func(r any, v string) { r.(*Observation).ObservationUUID = v }),
		"concept":               m3.String(func(r any, v string) { r.(*Observation).Concept = v }),
		"observer":              m3.String(func(r any, v string) { r.(*Observation).Observer = v }),
		"observation_timestamp": m3.String(func(r any, v string) { r.(*Observation).ObservationTimestamp = v }),
		"video_reference_uuid":  m3.String(func(r any, v string) { r.(*Observation).VideoReferenceUUID = v }),
		"imaged_moment_uuid":    m3.String(func(r any, v string) { r.(*Observation).ImagedMomentUUID = v }),
		"elapsed_time_millis":   m3.Int(func(r any, v int64) { r.(*Observation).ElapsedTimeMillis = v }),
		"recorded_timestamp":    m3.String(func(r any, v string) { r.(*Observation).RecordedTimestamp = v }),
		"group":                 m3.String(func(r any, v string) { r.(*Observation).Group = v }),
		"activity":              m3.String(func(r any, v string) { r.(*Observation).Activity = v }),
		"associations": m3.RecordList(AssociationSchema, func(r any, items []any) {
			o := r.(*Observation)
			o.Associations = make([]Association, len(items))
			for i, item := range items {
				o.Associations[i] = *item.(*Association)
			}
		}),
		"image_references": m3.RecordList(ImageReferenceSchema, func(r any, items []any) {
			o := r.(*Observation)
			o.ImageReferences = make([]ImageReference, len(items))
			for i, item := range items {
				o.ImageReferences[i] = *item.(*ImageReference)
			}
		}),
	},
}

// VideoReferenceInfoSchema declares the wire shape of VideoReferenceInfo
// records.
var VideoReferenceInfoSchema = &m3.Schema{
	Name: "VideoReferenceInfo",
	New:  func() any { return new(VideoReferenceInfo) },
	Fields: m3.Fields{
		"mission_contact":      m3.String(func(r any, v string) { r.(*VideoReferenceInfo).MissionContact = v }),
		"platform_name":        m3.String(func(r any, v string) { r.(*VideoReferenceInfo).PlatformName = v }),
		"video_reference_uuid": m3.String(func(r any, v string) { r.(*VideoReferenceInfo).VideoReferenceUUID = v }),
		"mission_id":           m3.String(func(r any, v string) { r.(*VideoReferenceInfo).MissionID = v }),
		"last_updated_time":    m3.String(func(r any, v string) { r.(*VideoReferenceInfo).LastUpdatedTime = v }),
		"uuid":                 m3.String(func(r any, v string) { r.(*VideoReferenceInfo).UUID = v }),
	},
}

// ImagedMomentSchema declares the wire shape of ImagedMoment records. The
// graph runs three levels deep: moment -> observations -> associations.
var ImagedMomentSchema = &m3.Schema{
	Name: "ImagedMoment",
	New:  func() any { return new(ImagedMoment) },
	Fields: m3.Fields{
		"recorded_date":        m3.String(func(r any, v string) { r.(*ImagedMoment).RecordedDate = v }),
		"timecode":             m3.String(func(r any, v string) { r.(*ImagedMoment).Timecode = v }),
		"video_reference_uuid": m3.String(func(r any, v string) { r.(*ImagedMoment).VideoReferenceUUID = v }),
		"observations": m3.RecordList(ObservationSchema, func(r any, items []any) {
			im := r.(*ImagedMoment)
			im.Observations = make([]Observation, len(items))
			for i, item := range items {
				im.Observations[i] = *item.(*Observation)
			}
		}),
		"image_references": m3.RecordList(ImageReferenceSchema, func(r any, items []any) {
			im := r.(*ImagedMoment)
			im.ImageReferences = make([]ImageReference, len(items))
			for i, item := range items {
				im.ImageReferences[i] = *item.(*ImageReference)
			}
		}),
		"ancillary_data": m3.Record(AncillaryDatumSchema, func(r, nested any) {
			r.(*ImagedMoment).AncillaryData = nested.(*AncillaryDatum)
		}),
		"last_updated_time": m3.String(func(r any, v string) { r.(*ImagedMoment).LastUpdatedTime = v }),
		"uuid":              m3.String(func(r any, v string) { r.(*ImagedMoment).UUID = v }),
	},
}
