package panoptes

import "github.com/s0up4200/m3client/m3"

// ImageParams describes a stored framegrab. The image service speaks
// camelCase on the wire, unlike the other services.
type ImageParams struct {
	URI          string
	CameraID     string
	DeploymentID string
	Name         string
}

// ImageListing enumerates the stored files for one camera deployment.
type ImageListing struct {
	CameraID     string
	DeploymentID string
	Files        []string
}

// ImageParamsSchema declares the wire shape of ImageParams records.
var ImageParamsSchema = &m3.Schema{
	Name: "ImageParams",
	New:  func() any { return new(ImageParams) },
	Fields: m3.Fields{
		"uri":          m3.String(func(r any, v string) { r.(*ImageParams).URI = v }),
		"cameraId":     m3.String(func(r any, v string) { r.(*ImageParams).CameraID = v }),
		"deploymentId": m3.String(func(r any, v string) { r.(*ImageParams).DeploymentID = v }),
		"name":         m3.String(func(r any, v string) { r.(*ImageParams).Name = v }),
	},
}

// ImageListingSchema declares the wire shape of ImageListing records.
var ImageListingSchema = &m3.Schema{
	Name: "ImageListing",
	New:  func() any { return new(ImageListing) },
	Fields: m3.Fields{
		"cameraId":     m3.String(func(r any, v string) { r.(*ImageListing).CameraID = v }),
		"deploymentId": m3.String(func(r any, v string) { r.(*ImageListing).DeploymentID = v }),
		"files":        m3.StringList(func(r any, v []string) { r.(*ImageListing).Files = v }),
	},
}
