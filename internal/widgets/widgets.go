// Package widgets implements the desktop widget layout: placed widget
// instances with auto-computed non-overlapping positions, plus the
// session-only edit-mode and gallery flags.
package widgets

// Type identifies what a widget displays.
type Type string

const (
	TypeClock    Type = "clock"
	TypeWeather  Type = "weather"
	TypeCalendar Type = "calendar"
	TypeStocks   Type = "stocks"
	TypeNotes    Type = "notes"
	TypePhotos   Type = "photos"
	TypeBattery  Type = "battery"
)

// Size is a widget's size tier. Each tier maps to a fixed pixel footprint.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Position is a widget's top-left corner in screen pixels.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Widget is one placed widget instance.
type Widget struct {
	ID       string         `json:"id"`
	Type     Type           `json:"type"`
	Size     Size           `json:"size"`
	Position Position       `json:"position"`
	Data     map[string]any `json:"data,omitempty"`
}

// Footprint returns the pixel dimensions for a size tier. Unknown tiers
// get the small footprint.
func Footprint(size Size) (width, height int) {
	switch size {
	case SizeMedium:
		return 360, 170
	case SizeLarge:
		return 360, 360
	default:
		return 170, 170
	}
}

// Update carries partial widget changes. Nil fields are left untouched.
type Update struct {
	Position *Position
	Size     *Size
	Data     map[string]any
}
