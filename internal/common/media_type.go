package common

import "strings"

// MediaKind represents the kind of media attached to a post.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// String returns the string representation
func (mk MediaKind) String() string {
	return string(mk)
}

// IsValid checks if the media kind is valid
func (mk MediaKind) IsValid() bool {
	return mk == MediaKindImage || mk == MediaKindVideo
}

// DetectMediaKind maps a MIME type to a media kind. Anything that is not
// a video is treated as an image.
func DetectMediaKind(mimeType string) MediaKind {
	lower := strings.ToLower(mimeType)
	if strings.HasPrefix(lower, "video/") {
		return MediaKindVideo
	}
	return MediaKindImage
}
