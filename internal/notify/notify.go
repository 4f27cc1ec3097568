// Package notify implements the notification center: an ordered queue of
// notifications with read/unread state and do-not-disturb gating. While
// do-not-disturb is active no notification is created; posting is a no-op
// and suppressed entries are dropped permanently, not queued.
package notify

// Type classifies a notification's origin.
type Type string

const (
	TypeApp      Type = "app"
	TypeSystem   Type = "system"
	TypeCalendar Type = "calendar"
	TypeGitHub   Type = "github"
)

// Action is a button offered on a notification.
type Action struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Notification is one entry in the center.
type Notification struct {
	ID        string   `json:"id"`
	Type      Type     `json:"type"`
	Title     string   `json:"title"`
	Body      string   `json:"body,omitempty"`
	AppIcon   string   `json:"appIcon,omitempty"`
	AppName   string   `json:"appName,omitempty"`
	Timestamp int64    `json:"timestamp"` // Unix ms
	Read      bool     `json:"read"`
	Actions   []Action `json:"actions,omitempty"`
}

// Input carries the caller-supplied fields of a new notification.
type Input struct {
	ID      string // optional; assigned when empty
	Type    Type   // defaults to TypeApp
	Title   string
	Body    string
	AppIcon string
	AppName string
	Actions []Action
}
