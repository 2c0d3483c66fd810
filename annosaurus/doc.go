// Package annosaurus provides a client for the annosaurus annotation
// service: video annotations (observations), cached ancillary sensor data,
// and video reference info records.
//
// Reads are public. Ancillary data writes (create, bulk create, merge)
// require a prior Authenticate call and fail before any network I/O
// otherwise.
package annosaurus
