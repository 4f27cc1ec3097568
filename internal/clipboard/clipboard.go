// Package clipboard implements the clipboard history store: an ordered,
// persisted history of copied items with pinning and capacity eviction.
package clipboard

import (
	"regexp"
	"strings"
)

// ItemType classifies clipboard content.
type ItemType string

const (
	TypeText  ItemType = "text"
	TypeImage ItemType = "image"
	TypeURL   ItemType = "url"
	TypeFile  ItemType = "file"
)

// Item is one clipboard history entry. Content holds the full value;
// Preview is truncated for display. Pinned items survive capacity eviction
// and clears.
type Item struct {
	ID        string   `json:"id"`
	Type      ItemType `json:"type"`
	Content   string   `json:"content"`
	Preview   string   `json:"preview"`
	Timestamp int64    `json:"timestamp"` // creation time, Unix ms
	Pinned    bool     `json:"pinned"`
}

var (
	urlPattern  = regexp.MustCompile(`^https?://\S+$`)
	pathPattern = regexp.MustCompile(`^(/|~/)\S*$`)
)

// InferType classifies content by shape: URL, data-URL image, absolute or
// home-relative file path, defaulting to plain text.
func InferType(content string) ItemType {
	switch {
	case urlPattern.MatchString(content):
		return TypeURL
	case strings.HasPrefix(content, "data:image/"):
		return TypeImage
	case pathPattern.MatchString(content):
		return TypeFile
	default:
		return TypeText
	}
}

// BuildPreview produces the display preview: images keep the full content
// (the data URL is the preview), text is truncated to maxChars runes with an
// ellipsis marker.
func BuildPreview(content string, itemType ItemType, maxChars int) string {
	if itemType == TypeImage {
		return content
	}
	runes := []rune(content)
	if len(runes) <= maxChars {
		return content
	}
	return string(runes[:maxChars]) + "..."
}
