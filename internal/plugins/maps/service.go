package maps

import (
	"context"
	"sync"

	"github.com/keyxmakerx/atlas/internal/apperror"
)

// RenderInput selects the year and highlighted object of a render.
type RenderInput struct {
	// Year defaults to the map's minYear when nil and is clamped otherwise.
	Year       *int
	SelectedID string
}

// EventQuery filters an event list.
type EventQuery struct {
	Mode     FilterMode
	Category string
}

// MapService defines the read operations of the maps plugin. All methods
// return apperror not-found errors for unknown map, object or event IDs.
type MapService interface {
	ListMaps(ctx context.Context) []MapInfo
	SelectMap(ctx context.Context, mapID string) (*Selection, error)
	RenderState(ctx context.Context, mapID string, input RenderInput) (*RenderState, error)
	EventList(ctx context.Context, mapID string, query EventQuery) ([]Event, error)
	Categories(ctx context.Context, mapID string) ([]string, error)
	Marker(ctx context.Context, mapID, objectID string, input RenderInput) (*Marker, error)
	RelatedEvents(ctx context.Context, mapID, objectID string) ([]Event, error)
	ObjectDetail(ctx context.Context, mapID, objectID string, year *int) (*ObjectDetail, error)
	EventDetail(ctx context.Context, mapID, eventID string) (*EventDetail, error)

	// Library returns the prepared library backing the service.
	Library() *Library
	// Fingerprint identifies the library content for caching.
	Fingerprint() string
	// Replace swaps in a newly prepared library.
	Replace(lib *Library)
}

// mapService is the default MapService implementation.
type mapService struct {
	mu  sync.RWMutex
	lib *Library
}

// NewMapService creates a MapService over a prepared library.
func NewMapService(lib *Library) MapService {
	return &mapService{lib: lib}
}

func (s *mapService) Library() *Library {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lib
}

func (s *mapService) Fingerprint() string {
	return s.Library().Fingerprint
}

func (s *mapService) Replace(lib *Library) {
	s.mu.Lock()
	s.lib = lib
	s.mu.Unlock()
}

// ListMaps returns the selectable maps in library order.
func (s *mapService) ListMaps(_ context.Context) []MapInfo {
	return s.Library().ListMaps()
}

// SelectMap returns the year bounds of a map with the year set to minYear.
func (s *mapService) SelectMap(_ context.Context, mapID string) (*Selection, error) {
	info, _, err := s.lookup(mapID)
	if err != nil {
		return nil, err
	}
	return &Selection{
		MapID:   info.ID,
		Year:    info.MinYear,
		MinYear: info.MinYear,
		MaxYear: info.MaxYear,
	}, nil
}

// RenderState resolves every active object of a map at the requested year.
func (s *mapService) RenderState(_ context.Context, mapID string, input RenderInput) (*RenderState, error) {
	info, cat, err := s.lookup(mapID)
	if err != nil {
		return nil, err
	}
	year := yearOrDefault(info, input.Year)
	return BuildRenderState(info.ID, cat, year, input.SelectedID), nil
}

// BuildRenderState resolves the markers and viewport of one catalog year.
func BuildRenderState(mapID string, cat *Catalog, year int, selectedID string) *RenderState {
	markers := ResolveActiveObjects(cat, year, selectedID)
	return &RenderState{
		MapID:    mapID,
		Year:     year,
		Markers:  markers,
		Viewport: ComputeViewport(markers),
	}
}

// Marker resolves one object at a year whether or not it is active.
func (s *mapService) Marker(_ context.Context, mapID, objectID string, input RenderInput) (*Marker, error) {
	info, cat, err := s.lookup(mapID)
	if err != nil {
		return nil, err
	}
	o, ok := cat.Object(objectID)
	if !ok {
		return nil, apperror.NewNotFound("object not found")
	}
	m := NewResolver(cat).Marker(o, yearOrDefault(info, input.Year), input.SelectedID)
	return &m, nil
}

// EventList returns the map's events filtered by mode and category,
// sorted by date.
func (s *mapService) EventList(_ context.Context, mapID string, query EventQuery) ([]Event, error) {
	if _, _, err := s.lookup(mapID); err != nil {
		return nil, err
	}
	return SortByDate(FilterEvents(s.Library().EventsForMap(mapID), query.Mode, query.Category)), nil
}

// Categories returns the map's event categories.
func (s *mapService) Categories(_ context.Context, mapID string) ([]string, error) {
	if _, _, err := s.lookup(mapID); err != nil {
		return nil, err
	}
	return s.Library().CategoriesForMap(mapID), nil
}

// RelatedEvents returns the events anchored to an object, sorted by date.
func (s *mapService) RelatedEvents(_ context.Context, mapID, objectID string) ([]Event, error) {
	_, cat, err := s.lookup(mapID)
	if err != nil {
		return nil, err
	}
	if _, ok := cat.Object(objectID); !ok {
		return nil, apperror.NewNotFound("object not found")
	}
	return RelatedEvents(cat.Events, objectID), nil
}

// ObjectDetail resolves an object's detail panel. Inactive objects are
// still described; Active reports whether they exist at the year.
func (s *mapService) ObjectDetail(_ context.Context, mapID, objectID string, year *int) (*ObjectDetail, error) {
	info, cat, err := s.lookup(mapID)
	if err != nil {
		return nil, err
	}
	o, ok := cat.Object(objectID)
	if !ok {
		return nil, apperror.NewNotFound("object not found")
	}
	return BuildObjectDetail(cat, o, yearOrDefault(info, year)), nil
}

// BuildObjectDetail assembles the detail view of o at year. The object is
// treated as selected.
func BuildObjectDetail(cat *Catalog, o *MapObject, year int) *ObjectDetail {
	return &ObjectDetail{
		Marker:        NewResolver(cat).Marker(o, year, o.ID),
		Info:          o.Info,
		Image:         o.Image,
		ImageCaption:  o.ImageCaption,
		Period:        DisplayPeriod(o),
		Active:        IsActive(o, year),
		RelatedEvents: RelatedEvents(cat.Events, o.ID),
	}
}

// EventDetail returns an event with the catalog objects it is anchored to.
func (s *mapService) EventDetail(_ context.Context, mapID, eventID string) (*EventDetail, error) {
	_, cat, err := s.lookup(mapID)
	if err != nil {
		return nil, err
	}
	e, ok := cat.Event(eventID)
	if !ok {
		return nil, apperror.NewNotFound("event not found")
	}
	return &EventDetail{Event: *e, Anchors: AnchorObjects(cat.Objects, e)}, nil
}

// lookup resolves a map ID to its metadata and catalog. A map declared
// without a catalog gets an empty one.
func (s *mapService) lookup(mapID string) (*MapInfo, *Catalog, error) {
	lib := s.Library()
	info, ok := lib.MapInfo(mapID)
	if !ok {
		return nil, nil, apperror.NewNotFound("map not found")
	}
	cat := lib.Catalog(mapID)
	if cat == nil {
		cat = &Catalog{}
		cat.index()
	}
	return info, cat, nil
}

func yearOrDefault(info *MapInfo, year *int) int {
	if year == nil {
		return info.MinYear
	}
	return info.ClampYear(*year)
}
