// Package recents implements bounded recency lists: recently opened files
// and folders, and a separate list of recently used application ids. Both
// follow the same move-to-front, dedupe-by-id rule.
package recents

// ItemType classifies a recent item.
type ItemType string

const (
	TypeFile   ItemType = "file"
	TypeFolder ItemType = "folder"
	TypeApp    ItemType = "app"
)

// Item is one recent file, folder, or app entry.
type Item struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	Type      ItemType `json:"type"`
	AppID     string   `json:"appId,omitempty"`
	Icon      string   `json:"icon,omitempty"`
	Timestamp int64    `json:"timestamp"` // Unix ms
}
