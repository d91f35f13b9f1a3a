// Package schema loads and normalizes contract schema snapshots.
// A snapshot is a directory tree of JSON/YAML documents describing a
// service's API (OpenAPI) and event contracts.
package schema

// FileType distinguishes API specs from event contracts.
type FileType string

const (
	// TypeOpenAPI marks an OpenAPI/Swagger document.
	TypeOpenAPI FileType = "openapi"

	// TypeEvent marks an event schema document.
	TypeEvent FileType = "event"
)

// File is one parsed, normalized schema document.
type File struct {
	// Path is the snapshot-relative path, unique within a snapshot.
	Path string

	// Content is the normalized document tree. Object keys are
	// canonicalized so two semantically identical documents compare
	// equal regardless of source key order or JSON/YAML encoding.
	Content any

	// Type is the detected document kind.
	Type FileType
}

// openapiMarkers are top-level keys that identify an OpenAPI document.
var openapiMarkers = []string{"openapi", "swagger", "info", "paths"}

// DetectType classifies a document by its content, falling back to
// path conventions. Anything that is not recognizably OpenAPI is
// treated as an event contract.
func DetectType(relPath string, content any) FileType {
	if obj, ok := content.(map[string]any); ok {
		for _, marker := range openapiMarkers {
			if _, present := obj[marker]; present {
				return TypeOpenAPI
			}
		}
	}
	return TypeEvent
}
