// Package tags implements file tagging and smart folders: a many-to-many
// mapping of file paths to colored tags, plus saved declarative filter
// definitions. Filter evaluation against a live file listing is the
// consumer's responsibility; this store manages the records only.
package tags

// Color is one of the seven desktop palette keys.
type Color string

const (
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorPurple Color = "purple"
	ColorGray   Color = "gray"
)

// knownColors lists the palette in display order.
var knownColors = []Color{
	ColorRed, ColorOrange, ColorYellow, ColorGreen, ColorBlue, ColorPurple, ColorGray,
}

// ValidColor reports whether c is a palette key.
func ValidColor(c Color) bool {
	for _, k := range knownColors {
		if c == k {
			return true
		}
	}
	return false
}

// Tag is a named, colored label applied to file paths.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color Color  `json:"color"`
}

// FilterType selects the file attribute a smart-folder filter matches on.
type FilterType string

const (
	FilterTag          FilterType = "tag"
	FilterName         FilterType = "name"
	FilterFileType     FilterType = "type"
	FilterDateModified FilterType = "dateModified"
	FilterSize         FilterType = "size"
)

// FilterOperator is the comparison a filter applies.
type FilterOperator string

const (
	OpIs          FilterOperator = "is"
	OpIsNot       FilterOperator = "isNot"
	OpContains    FilterOperator = "contains"
	OpBefore      FilterOperator = "before"
	OpAfter       FilterOperator = "after"
	OpLessThan    FilterOperator = "lessThan"
	OpGreaterThan FilterOperator = "greaterThan"
)

// Filter is one clause of a smart folder's saved query.
type Filter struct {
	Type     FilterType     `json:"type"`
	Operator FilterOperator `json:"operator"`
	Value    string         `json:"value"`
}

// SmartFolder is a saved, declarative filter definition over files.
type SmartFolder struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Filters   []Filter `json:"filters"`
	CreatedAt int64    `json:"createdAt"` // Unix ms
}

// DefaultTags returns the seven first-run tags, matching the common
// desktop palette.
func DefaultTags() []Tag {
	return []Tag{
		{ID: "tag-red", Name: "Red", Color: ColorRed},
		{ID: "tag-orange", Name: "Orange", Color: ColorOrange},
		{ID: "tag-yellow", Name: "Yellow", Color: ColorYellow},
		{ID: "tag-green", Name: "Green", Color: ColorGreen},
		{ID: "tag-blue", Name: "Blue", Color: ColorBlue},
		{ID: "tag-purple", Name: "Purple", Color: ColorPurple},
		{ID: "tag-gray", Name: "Gray", Color: ColorGray},
	}
}
