// Package gslides models Google Slides presentations as typed Go values
// and turns edits to those values into batchUpdate requests.
//
// DecodePresentation parses the JSON returned by presentations.get into a
// Presentation. Every type keeps unrecognized keys in an UnknownFields map,
// so encoding a decoded value reproduces the original JSON field for field,
// including parts of the schema this package has no types for. Absent
// fields stay absent: optional values are pointers, and a nil pointer
// encodes to nothing rather than to a zero, which is what lets inherited
// properties keep inheriting.
//
// CreateRequests and UpdateRequests translate a PageElement into the
// operations that recreate it on a page or write its state onto an existing
// element. Update requests carry a field mask derived from the encoded
// payload itself, so only fields present in the model are touched.
//
// Editor drives multi-call flows through a Service, the interface the
// client package implements over the REST API.
package gslides
