// Package spaces implements virtual desktops: an ordered collection of
// named spaces, each owning a set of window ids. Exactly one space is
// active at any time and the collection never becomes empty.
package spaces

// DefaultSpaceID identifies the space materialized on first run.
const DefaultSpaceID = "space-1"

// Space is one virtual desktop.
type Space struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	IsActive  bool     `json:"isActive"`
	WindowIDs []string `json:"windowIds"`
}
