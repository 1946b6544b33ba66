package viewer

import (
	"github.com/keyxmakerx/atlas/internal/apperror"
	"github.com/keyxmakerx/atlas/internal/basemaps"
	"github.com/keyxmakerx/atlas/internal/plugins/maps"
)

// LibrarySource supplies the current map library. maps.MapService
// satisfies it.
type LibrarySource interface {
	Library() *maps.Library
}

// CoordinatorConfig holds the session defaults.
type CoordinatorConfig struct {
	// FollowEvents makes selecting an event jump to its year and select
	// its first anchor object.
	FollowEvents bool
	DefaultStyle string
	DefaultUnit  TimeUnit
}

// Coordinator implements the selection and filter transitions. Each method
// takes a state by value and returns the next state, so a failed
// transition leaves the caller's state untouched.
type Coordinator struct {
	source LibrarySource
	cfg    CoordinatorConfig
}

// NewCoordinator creates a Coordinator. Invalid defaults fall back to the
// satellite style and yearly steps.
func NewCoordinator(source LibrarySource, cfg CoordinatorConfig) *Coordinator {
	if basemaps.Find(cfg.DefaultStyle) == nil {
		cfg.DefaultStyle = basemaps.StyleSatellite
	}
	if _, err := ParseTimeUnit(string(cfg.DefaultUnit)); err != nil {
		cfg.DefaultUnit = UnitYear
	}
	return &Coordinator{source: source, cfg: cfg}
}

// Initial returns the state of a new session: no map selected.
func (c *Coordinator) Initial(id string) State {
	return State{
		ID:         id,
		FilterMode: maps.FilterAll,
		Category:   maps.AllCategories,
		TimeUnit:   c.cfg.DefaultUnit,
		MapStyle:   c.cfg.DefaultStyle,
	}
}

// SelectMap opens a map at its minYear with selections cleared and the
// event filter reset. An empty mapID returns to the no-map state.
func (c *Coordinator) SelectMap(s State, mapID string) (State, error) {
	if mapID == "" {
		return c.clearMap(s), nil
	}
	info, ok := c.source.Library().MapInfo(mapID)
	if !ok {
		return s, apperror.NewNotFound("map not found")
	}
	s = c.clearMap(s)
	s.MapID = info.ID
	s.Year = info.MinYear
	return s, nil
}

func (c *Coordinator) clearMap(s State) State {
	s.MapID = ""
	s.Year = 0
	s.SelectedObjectID = ""
	s.SelectedEventID = ""
	s.ShowRelatedEvents = false
	s.FilterMode = maps.FilterAll
	s.Category = maps.AllCategories
	return s
}

// SetYear moves to year, clamped to the current map's range. Without a
// map it does nothing.
func (c *Coordinator) SetYear(s State, year int) State {
	info, ok := c.currentMap(s)
	if !ok {
		return s
	}
	s.Year = info.ClampYear(year)
	return s
}

// StepTime moves one unit in dir and clamps. An empty unit uses the
// session's time unit.
func (c *Coordinator) StepTime(s State, dir Direction, unit TimeUnit) State {
	if unit == "" {
		unit = s.TimeUnit
	}
	return c.SetYear(s, step(s.Year, dir, unit))
}

// SetTimeUnit changes the unit used by later steps.
func (c *Coordinator) SetTimeUnit(s State, unit TimeUnit) State {
	s.TimeUnit = unit
	return s
}

// SetFilter changes the event filter. An empty category means all.
func (c *Coordinator) SetFilter(s State, mode maps.FilterMode, category string) State {
	if category == "" {
		category = maps.AllCategories
	}
	s.FilterMode = mode
	s.Category = category
	return s
}

// SelectObject selects an object of the current map.
func (c *Coordinator) SelectObject(s State, objectID string) (State, error) {
	cat, err := c.currentCatalog(s)
	if err != nil {
		return s, err
	}
	if _, ok := cat.Object(objectID); !ok {
		return s, apperror.NewNotFound("object not found")
	}
	return selectObject(s, objectID), nil
}

// FocusAnchor selects one of the selected event's anchor objects and
// closes the event.
func (c *Coordinator) FocusAnchor(s State, objectID string) (State, error) {
	cat, err := c.currentCatalog(s)
	if err != nil {
		return s, err
	}
	e, ok := cat.Event(s.SelectedEventID)
	if !ok {
		return s, apperror.NewConflict("no event selected")
	}
	if !e.ObjectID.Contains(objectID) {
		return s, apperror.NewBadRequest("object is not an anchor of the selected event")
	}
	if _, ok := cat.Object(objectID); !ok {
		return s, apperror.NewNotFound("object not found")
	}
	s = selectObject(s, objectID)
	s.SelectedEventID = ""
	return s, nil
}

// ClearObjectSelection closes the object panel.
func (c *Coordinator) ClearObjectSelection(s State) State {
	return selectObject(s, "")
}

// SelectEvent selects an event of the current map. With FollowEvents the
// year jumps to the event's date and its first anchor object, in catalog
// order, is selected too.
func (c *Coordinator) SelectEvent(s State, eventID string) (State, error) {
	cat, err := c.currentCatalog(s)
	if err != nil {
		return s, err
	}
	e, ok := cat.Event(eventID)
	if !ok {
		return s, apperror.NewNotFound("event not found")
	}
	s.SelectedEventID = e.ID
	if !c.cfg.FollowEvents {
		return s, nil
	}

	s = c.SetYear(s, e.Date)
	if anchors := maps.AnchorObjects(cat.Objects, e); len(anchors) > 0 {
		s = selectObject(s, anchors[0].ID)
	}
	return s, nil
}

// ClearEventSelection closes the event panel.
func (c *Coordinator) ClearEventSelection(s State) State {
	s.SelectedEventID = ""
	return s
}

// SetMapStyle switches the base-map style.
func (c *Coordinator) SetMapStyle(s State, style string) (State, error) {
	if basemaps.Find(style) == nil {
		return s, apperror.NewBadRequest("unknown map style")
	}
	s.MapStyle = style
	return s, nil
}

// SetShowRelatedEvents opens or closes the selected object's related
// events. It has no effect without a selected object.
func (c *Coordinator) SetShowRelatedEvents(s State, show bool) State {
	s.ShowRelatedEvents = show && s.SelectedObjectID != ""
	return s
}

// View derives everything a renderer needs from s.
func (c *Coordinator) View(s State) *View {
	v := &View{
		State:      s,
		Status:     s.Status(),
		Events:     []maps.Event{},
		Categories: []string{},
		Style:      basemaps.Find(s.MapStyle),
		Styles:     basemaps.Registry(),
	}

	lib := c.source.Library()
	info, ok := lib.MapInfo(s.MapID)
	if !ok {
		v.Status = StatusNoMap
		return v
	}
	cat := lib.Catalog(s.MapID)
	if cat == nil {
		cat = &maps.Catalog{}
	}

	v.Map = info
	v.Render = maps.BuildRenderState(info.ID, cat, s.Year, s.SelectedObjectID)
	v.Events = maps.SortByDate(maps.FilterEvents(lib.EventsForMap(s.MapID), s.FilterMode, s.Category))
	v.Categories = lib.CategoriesForMap(s.MapID)

	if o, ok := cat.Object(s.SelectedObjectID); ok {
		v.SelectedObject = maps.BuildObjectDetail(cat, o, s.Year)
		if s.ShowRelatedEvents {
			v.RelatedEvents = v.SelectedObject.RelatedEvents
		}
	}
	if e, ok := cat.Event(s.SelectedEventID); ok {
		v.SelectedEvent = &maps.EventDetail{Event: *e, Anchors: maps.AnchorObjects(cat.Objects, e)}
	}
	return v
}

// --- helpers ---

func (c *Coordinator) currentMap(s State) (*maps.MapInfo, bool) {
	if s.MapID == "" {
		return nil, false
	}
	return c.source.Library().MapInfo(s.MapID)
}

func (c *Coordinator) currentCatalog(s State) (*maps.Catalog, error) {
	if _, ok := c.currentMap(s); !ok {
		return nil, apperror.NewConflict("no map selected")
	}
	cat := c.source.Library().Catalog(s.MapID)
	if cat == nil {
		return nil, apperror.NewNotFound("map has no catalog")
	}
	return cat, nil
}

// selectObject changes the selected object. The related-events disclosure
// belongs to the previous object and is closed on change.
func selectObject(s State, objectID string) State {
	if s.SelectedObjectID != objectID {
		s.ShowRelatedEvents = false
	}
	s.SelectedObjectID = objectID
	return s
}
