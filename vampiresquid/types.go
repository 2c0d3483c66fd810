package vampiresquid

import "github.com/s0up4200/m3client/m3"

// Media describes one asset in the video catalog: where it lives, when it
// was recorded and how it is encoded.
type Media struct {
	VideoSequenceUUID  string
	VideoReferenceUUID string
	VideoUUID          string
	VideoSequenceName  string
	CameraID           string
	VideoName          string
	URI                string
	StartTimestamp     string
	DurationMillis     int64
	Container          string
	VideoCodec         string
	AudioCodec         string
	Width              int64
	Height             int64
	FrameRate          float64
	SizeBytes          int64
	Description        string
	SHA512             string
}

// MediaSchema declares the wire shape of Media records.
var MediaSchema = &m3.Schema{
	Name: "Media",
	New:  func() any { return new(Media) },
	Fields: m3.Fields{
		"video_sequence_uuid":  m3.String(func(r any, v string) { r.(*Media).VideoSequenceUUID = v }),
		"video_reference_uuid": m3.String(func(r any, v string) { r.(*Media).VideoReferenceUUID = v }),
		"video_uuid":           m3.String(func(r any, v string) { r.(*Media).VideoUUID = v }),
		"video_sequence_name":  m3.String(func(r any, v string) { r.(*Media).VideoSequenceName = v }),
		"camera_id":            m3.String(func(r any, v string) { r.(*Media).CameraID = v }),
		"video_name":           m3.String(func(r any, v string) { r.(*Media).VideoName = v }),
		"uri":                  m3.String(func(r any, v string) { r.(*Media).URI = v }),
		"start_timestamp":      m3.String(func(r any, v string) { r.(*Media).StartTimestamp = v }),
		"duration_millis":      m3.Int(func(r any, v int64) { r.(*Media).DurationMillis = v }),
		"container":            m3.String(func(r any, v string) { r.(*Media).Container = v }),
		"video_codec":          m3.String(func(r any, v string) { r.(*Media).VideoCodec = v }),
		"audio_codec":          m3.String(func(r any, v string) { r.(*Media).AudioCodec = v }),
		"width":                m3.Int(func(r any, v int64) { r.(*Media).Width = v }),
		"height":               m3.Int(func(r any, v int64) { r.(*Media).Height = v }),
		"frame_rate":           m3.Float(func(r any, v float64) { r.(*Media).FrameRate = v }),
		"size_bytes":           m3.Int(func(r any, v int64) { r.(*Media).SizeBytes = v }),
		"description":          m3.String(func(r any, v string) { r.(*Media).Description = v }),
		"sha512":               m3.String(func(r any, v string) { r.(*Media).SHA512 = v }),
	},
}
