// Package maps provides the historical map catalogs and the temporal
// resolution of their objects. A library holds several named maps; each
// map has a catalog of geographic objects and narrative events. Objects
// carry a validity interval and optional time-varying overlays (name,
// colour and icon) that are resolved against a query year before drawing.
package maps

// Colour sentinels and defaults used by colour resolution.
const (
	// SplitSentinel marks a colour as a two-half rendering driven by the
	// object's customColors.
	SplitSentinel = "split"

	// GradientMarker marks a colour string that renders with the fixed
	// gradient tones, independent of customColors.
	GradientMarker = "gradient"

	// SelectedDefaultColor is used for a selected object without a colour.
	SelectedDefaultColor = "#2C3E50"

	// UnselectedDefaultColor is used for an unselected object without a colour.
	UnselectedDefaultColor = "#34495E"

	// DefaultSplitLeft and DefaultSplitRight fill split markers whose
	// customColors omit a side (crimson / forest green).
	DefaultSplitLeft  = "#DC143C"
	DefaultSplitRight = "#228B22"

	// GradientLeft and GradientRight are the fixed gradient tones.
	GradientLeft  = "#00008B"
	GradientRight = "#D2B48C"
)

// MapInfo is one selectable map: its display metadata and the valid range
// of query years.
type MapInfo struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Period      string `json:"period" yaml:"period"`
	MinYear     int    `json:"minYear" yaml:"minYear"`
	MaxYear     int    `json:"maxYear" yaml:"maxYear"`
	Image       string `json:"image" yaml:"image"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ClampYear limits year to [MinYear, MaxYear].
func (m *MapInfo) ClampYear(year int) int {
	return max(m.MinYear, min(m.MaxYear, year))
}

// NameChange renames an object from Year onwards.
type NameChange struct {
	Year    int    `json:"year" yaml:"year"`
	NewName string `json:"newName" yaml:"newName"`
}

// ColorChange recolours an object from Year onwards.
type ColorChange struct {
	Year     int    `json:"year" yaml:"year"`
	NewColor string `json:"newColor" yaml:"newColor"`
}

// NamePeriod overrides the name (and optionally the colour) of an object
// while the query year lies in [FromYear, ToYear].
type NamePeriod struct {
	Name     string `json:"name" yaml:"name"`
	FromYear int    `json:"fromYear" yaml:"fromYear"`
	ToYear   int    `json:"toYear" yaml:"toYear"`
	Color    string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Contains reports whether year falls inside the period, bounds included.
func (p NamePeriod) Contains(year int) bool {
	return year >= p.FromYear && year <= p.ToYear
}

// ColorPair is the left/right fill of a split marker.
type ColorPair struct {
	Left  string `json:"left,omitempty" yaml:"left,omitempty"`
	Right string `json:"right,omitempty" yaml:"right,omitempty"`
}

// MapObject is a named geographic entity that exists for the years
// [ActiveFrom, ActiveTo].
type MapObject struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Lat        float64 `json:"lat" yaml:"lat"`
	Lng        float64 `json:"lng" yaml:"lng"`
	Info       string  `json:"info" yaml:"info"`
	ActiveFrom int     `json:"activeFrom" yaml:"activeFrom"`
	ActiveTo   int     `json:"activeTo" yaml:"activeTo"`

	// Color is empty when the caller-supplied default applies.
	Color        string `json:"color,omitempty" yaml:"color,omitempty"`
	Image        string `json:"image,omitempty" yaml:"image,omitempty"`
	ImageCaption string `json:"imageCaption,omitempty" yaml:"imageCaption,omitempty"`

	// CustomDate replaces the From/To period line in detail views.
	CustomDate string `json:"customDate,omitempty" yaml:"customDate,omitempty"`

	NameChanges  []NameChange  `json:"nameChanges,omitempty" yaml:"nameChanges,omitempty"`
	ColorChanges []ColorChange `json:"colorChanges,omitempty" yaml:"colorChanges,omitempty"`
	NamePeriods  []NamePeriod  `json:"namePeriods,omitempty" yaml:"namePeriods,omitempty"`

	SplitColor   bool       `json:"splitColor,omitempty" yaml:"splitColor,omitempty"`
	CustomColors *ColorPair `json:"customColors,omitempty" yaml:"customColors,omitempty"`

	// HideLabel keeps the marker but suppresses its text label.
	HideLabel bool `json:"hideLabel,omitempty" yaml:"hideLabel,omitempty"`
}

// Event is a dated narrative record, optionally anchored to objects.
type Event struct {
	ID           string     `json:"id" yaml:"id"`
	Date         int        `json:"date" yaml:"date"`
	Title        string     `json:"title" yaml:"title"`
	Description  string     `json:"description" yaml:"description"`
	Category     string     `json:"category" yaml:"category"`
	ObjectID     ObjectRefs `json:"objectId,omitempty" yaml:"objectId,omitempty"`
	Image        string     `json:"image,omitempty" yaml:"image,omitempty"`
	ImageCaption string     `json:"imageCaption,omitempty" yaml:"imageCaption,omitempty"`
}

// IsAnchored reports whether the event references at least one object.
func (e *Event) IsAnchored() bool {
	return len(e.ObjectID) > 0
}

// NameOverride renames one object from FromYear onwards. It is the
// catalog-level form of an identity-specific rename rule.
type NameOverride struct {
	ObjectID string `json:"objectId" yaml:"objectId"`
	FromYear int    `json:"fromYear" yaml:"fromYear"`
	Name     string `json:"name" yaml:"name"`
}

// IconOverride gives one object an image badge instead of the default
// circle marker. Without bounds the badge is permanent; with either bound
// set it is shown only while the query year is inside [FromYear, ToYear].
type IconOverride struct {
	ObjectID string `json:"objectId" yaml:"objectId"`
	Image    string `json:"image" yaml:"image"`
	FromYear *int   `json:"fromYear,omitempty" yaml:"fromYear,omitempty"`
	ToYear   *int   `json:"toYear,omitempty" yaml:"toYear,omitempty"`
}

// Catalog is one map's immutable dataset.
type Catalog struct {
	Objects       []MapObject    `json:"objects" yaml:"objects"`
	Events        []Event        `json:"events" yaml:"events"`
	Categories    []string       `json:"categories,omitempty" yaml:"categories,omitempty"`
	NameOverrides []NameOverride `json:"nameOverrides,omitempty" yaml:"nameOverrides,omitempty"`
	IconOverrides []IconOverride `json:"iconOverrides,omitempty" yaml:"iconOverrides,omitempty"`

	// Lookup tables built by index().
	objectPos map[string]int
	eventPos  map[string]int
	names     map[string][]NameOverride
	icons     map[string][]IconOverride
}

// Library is the full set of selectable maps and their catalogs.
type Library struct {
	Maps     []MapInfo           `json:"maps" yaml:"maps"`
	Catalogs map[string]*Catalog `json:"catalogs" yaml:"catalogs"`

	// Fingerprint identifies the prepared library content.
	Fingerprint string `json:"-" yaml:"-"`
}

// --- Resolved views ---

// Marker is the render-ready state of one active object.
type Marker struct {
	ID          string      `json:"id"`
	Lat         float64     `json:"lat"`
	Lng         float64     `json:"lng"`
	DisplayName string      `json:"displayName"`
	Color       ColorResult `json:"colorResult"`
	Icon        IconVariant `json:"iconVariant"`
	ShowLabel   bool        `json:"showLabel"`
	Selected    bool        `json:"selected"`
}

// RenderState is everything the map surface needs to draw one year.
type RenderState struct {
	MapID    string   `json:"mapId"`
	Year     int      `json:"year"`
	Markers  []Marker `json:"markers"`
	Viewport Viewport `json:"viewport"`
}

// Selection is the result of selecting a map.
type Selection struct {
	MapID   string `json:"mapId"`
	Year    int    `json:"year"`
	MinYear int    `json:"minYear"`
	MaxYear int    `json:"maxYear"`
}

// ObjectDetail is the content of an object's detail panel at one year.
type ObjectDetail struct {
	Marker
	Info          string  `json:"info"`
	Image         string  `json:"image,omitempty"`
	ImageCaption  string  `json:"imageCaption,omitempty"`
	Period        string  `json:"period"`
	Active        bool    `json:"active"`
	RelatedEvents []Event `json:"relatedEvents"`
}

// EventDetail is the content of an event's detail panel.
type EventDetail struct {
	Event
	Anchors []MapObject `json:"anchors"`
}
