// Package docpath handles hierarchical document-store paths. A path is a
// sequence of IDs alternating collection/document, so an even number of
// segments addresses a document and an odd number a collection, e.g.
// "ai_music_studio/pricing_strategy/tiers/free".
package docpath

import (
	"regexp"
	"strings"

	"research-publisher/internal/shared/errors"
)

// Valid ID pattern (alphanumeric, hyphens, underscores)
var validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Segments splits a path into its non-empty segments.
func Segments(path string) []string {
	if path == "" {
		return []string{}
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	var result []string
	for _, segment := range parts {
		if segment != "" {
			result = append(result, segment)
		}
	}

	return result
}

// Build constructs a path from segments.
func Build(segments ...string) string {
	return strings.Join(segments, "/")
}

// Append appends a segment to an existing path.
func Append(basePath, segment string) string {
	if basePath == "" {
		return segment
	}
	return basePath + "/" + segment
}

// IsValidID checks if an ID is usable as a path segment.
func IsValidID(id string) bool {
	if id == "" {
		return false
	}

	// Firestore-style length limit
	if len(id) > 1500 {
		return false
	}

	return validIDPattern.MatchString(id)
}

// IsDocumentPath checks if a path addresses a document.
func IsDocumentPath(path string) bool {
	segments := Segments(path)
	return len(segments) > 0 && len(segments)%2 == 0
}

// IsCollectionPath checks if a path addresses a collection.
func IsCollectionPath(path string) bool {
	segments := Segments(path)
	return len(segments) > 0 && len(segments)%2 == 1
}

// DocumentID returns the document ID from a document path.
func DocumentID(path string) (string, error) {
	segments := Segments(path)
	if len(segments) == 0 {
		return "", errors.NewValidationError("empty document path")
	}

	if len(segments)%2 == 1 {
		return "", errors.NewValidationError("path is a collection, not a document")
	}

	return segments[len(segments)-1], nil
}

// CollectionID returns the ID of the collection a path belongs to.
func CollectionID(path string) (string, error) {
	segments := Segments(path)
	if len(segments) == 0 {
		return "", errors.NewValidationError("empty path")
	}

	if len(segments)%2 == 0 {
		if len(segments) < 2 {
			return "", errors.NewValidationError("invalid document path")
		}
		return segments[len(segments)-2], nil
	}

	return segments[len(segments)-1], nil
}

// Parent returns the parent path, or an error for a single-segment path.
func Parent(path string) (string, error) {
	segments := Segments(path)
	if len(segments) <= 1 {
		return "", errors.NewValidationError("path has no parent")
	}

	return Build(segments[:len(segments)-1]...), nil
}

// ValidateDocumentPath validates a document path.
func ValidateDocumentPath(path string) error {
	segments := Segments(path)
	if len(segments) == 0 {
		return errors.NewValidationError("document path cannot be empty")
	}

	if len(segments)%2 != 0 {
		return errors.NewValidationError("invalid document path: must have even number of segments").
			WithDetail("path", path)
	}

	for i, segment := range segments {
		if !IsValidID(segment) {
			return errors.NewValidationError("invalid segment in document path").
				WithDetail("segment", segment).
				WithDetail("position", i)
		}
	}

	return nil
}

// ValidateCollectionPath validates a collection path.
func ValidateCollectionPath(path string) error {
	segments := Segments(path)
	if len(segments) == 0 {
		return errors.NewValidationError("collection path cannot be empty")
	}

	if len(segments)%2 != 1 {
		return errors.NewValidationError("invalid collection path: must have odd number of segments").
			WithDetail("path", path)
	}

	for i, segment := range segments {
		if !IsValidID(segment) {
			return errors.NewValidationError("invalid segment in collection path").
				WithDetail("segment", segment).
				WithDetail("position", i)
		}
	}

	return nil
}
