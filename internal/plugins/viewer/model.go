// Package viewer keeps the interactive state of one map viewing session:
// which map is open, the current year, the selected object and event, and
// the event filter. Every change is one transition over a State value, and
// the session store only ever holds complete states.
package viewer

import (
	"fmt"
	"math"
	"time"

	"github.com/keyxmakerx/atlas/internal/basemaps"
	"github.com/keyxmakerx/atlas/internal/plugins/maps"
)

// TimeUnit is the granularity of one time step.
type TimeUnit string

const (
	UnitDay     TimeUnit = "day"
	UnitMonth   TimeUnit = "month"
	UnitYear    TimeUnit = "year"
	UnitDecade  TimeUnit = "decade"
	Unit50Years TimeUnit = "50years"
	UnitCentury TimeUnit = "century"
)

// stepSizes holds the length of one step in years.
var stepSizes = map[TimeUnit]float64{
	UnitDay:     1.0 / 365,
	UnitMonth:   1.0 / 12,
	UnitYear:    1,
	UnitDecade:  10,
	Unit50Years: 50,
	UnitCentury: 100,
}

// StepSize returns the length of one step in years.
func (u TimeUnit) StepSize() float64 {
	return stepSizes[u]
}

// ParseTimeUnit validates a unit name.
func ParseTimeUnit(s string) (TimeUnit, error) {
	u := TimeUnit(s)
	if _, ok := stepSizes[u]; !ok {
		return "", fmt.Errorf("unknown time unit %q", s)
	}
	return u, nil
}

// Direction is the direction of a time step.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// ParseDirection validates a direction name.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Forward, Backward:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("unknown direction %q", s)
	}
}

// step moves year by one unit. Fractional steps are rounded to the nearest
// whole year after stepping, so a single day step never leaves the year.
func step(year int, dir Direction, unit TimeUnit) int {
	delta := unit.StepSize()
	if dir == Backward {
		delta = -delta
	}
	return int(math.Round(float64(year) + delta))
}

// Status names the coordinator's two states.
type Status string

const (
	StatusNoMap       Status = "no_map_selected"
	StatusMapSelected Status = "map_selected"
)

// State is one session's complete selection state. The zero MapID means no
// map is selected; Year and the selections are then meaningless.
type State struct {
	ID                string          `json:"id"`
	MapID             string          `json:"mapId,omitempty"`
	Year              int             `json:"year"`
	SelectedObjectID  string          `json:"selectedObjectId,omitempty"`
	SelectedEventID   string          `json:"selectedEventId,omitempty"`
	FilterMode        maps.FilterMode `json:"filterMode"`
	Category          string          `json:"category"`
	TimeUnit          TimeUnit        `json:"timeUnit"`
	MapStyle          string          `json:"mapStyle"`
	ShowRelatedEvents bool            `json:"showRelatedEvents"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// Status reports which coordinator state s is in.
func (s State) Status() Status {
	if s.MapID == "" {
		return StatusNoMap
	}
	return StatusMapSelected
}

// View is a state together with everything derived from it, so a renderer
// can draw the session from one response.
type View struct {
	State
	Status         Status             `json:"status"`
	Map            *maps.MapInfo      `json:"map,omitempty"`
	Render         *maps.RenderState  `json:"render,omitempty"`
	Events         []maps.Event       `json:"events"`
	Categories     []string           `json:"categories"`
	SelectedObject *maps.ObjectDetail `json:"selectedObject,omitempty"`
	SelectedEvent  *maps.EventDetail  `json:"selectedEvent,omitempty"`
	RelatedEvents  []maps.Event       `json:"relatedEvents,omitempty"`
	Style          *basemaps.Style    `json:"style,omitempty"`
	Styles         []basemaps.Style   `json:"styles"`
}
