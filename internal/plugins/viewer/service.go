package viewer

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/keyxmakerx/atlas/internal/plugins/maps"
)

// ViewerService runs coordinator transitions against stored sessions.
// Every mutating method loads the state, applies one transition, saves the
// result and returns the derived view; a failed transition saves nothing.
type ViewerService interface {
	Create(ctx context.Context) (*View, error)
	Get(ctx context.Context, id string) (*View, error)
	Delete(ctx context.Context, id string) error

	SelectMap(ctx context.Context, id, mapID string) (*View, error)
	SetYear(ctx context.Context, id string, year int) (*View, error)
	StepTime(ctx context.Context, id string, dir Direction, unit TimeUnit) (*View, error)
	SetTimeUnit(ctx context.Context, id string, unit TimeUnit) (*View, error)
	SetFilter(ctx context.Context, id string, mode maps.FilterMode, category string) (*View, error)
	SelectObject(ctx context.Context, id, objectID string) (*View, error)
	FocusAnchor(ctx context.Context, id, objectID string) (*View, error)
	ClearObject(ctx context.Context, id string) (*View, error)
	SelectEvent(ctx context.Context, id, eventID string) (*View, error)
	ClearEvent(ctx context.Context, id string) (*View, error)
	SetMapStyle(ctx context.Context, id, style string) (*View, error)
	SetShowRelatedEvents(ctx context.Context, id string, show bool) (*View, error)
}

// transition is one coordinator step.
type transition func(State) (State, error)

// lockShards bounds the per-session lock table.
const lockShards = 64

// viewerService is the default ViewerService implementation.
type viewerService struct {
	coord *Coordinator
	store SessionStore
	now   func() time.Time

	// Serializes read-modify-write per session within this process.
	locks [lockShards]sync.Mutex
}

// NewViewerService creates a ViewerService.
func NewViewerService(coord *Coordinator, store SessionStore) ViewerService {
	return &viewerService{coord: coord, store: store, now: time.Now}
}

// Create starts a new session with no map selected.
func (s *viewerService) Create(ctx context.Context) (*View, error) {
	st := s.coord.Initial(uuid.NewString())
	st.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, st); err != nil {
		return nil, err
	}
	return s.coord.View(st), nil
}

// Get returns a session's current view.
func (s *viewerService) Get(ctx context.Context, id string) (*View, error) {
	st, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.coord.View(*st), nil
}

// Delete ends a session.
func (s *viewerService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

func (s *viewerService) SelectMap(ctx context.Context, id, mapID string) (*View, error) {
	return s.apply(ctx, id, func(st State) (State, error) {
		return s.coord.SelectMap(st, mapID)
	})
}

func (s *viewerService) SetYear(ctx context.Context, id string, year int) (*View, error) {
	return s.apply(ctx, id, func(st State) (State, error) {
		return s.coord.SetYear(st, year), nil
	})
}

func (s *viewerService) StepTime(ctx context.Context, id string, dir Direction, unit TimeUnit) (*View, error) {
	return s.apply(ctx, id, func(st State) (State, error) {
		return s.coord.StepTime(st, dir, unit), nil
	})
}

func (s *viewerService) SetTimeUnit(ctx context.Context, id string, unit TimeUnit) (*View, error) {
	return s.apply(ctx, id, func(st State) (State, error) {
		return s.coord.SetTimeUnit(st, unit), nil
	})
}

func (s *viewerService) SetFilter(ctx context.Context, id string, mode maps.FilterMode, category string) (*View, error) {
	return s.apply(ctx, id, func(st State) (State, error) {
		return s.coord.SetFilter(st, mode, category), nil
	})
}

func (s *viewerService) SelectObject(ctx context.Context, id, objectID string) (*View, error) {
	return s.apply(ctx, id, func(st State) (State, error) {
		return s.coord.SelectObject(st, objectID)
	})
}

func (s *viewerService) FocusAnchor(ctx context.Context, id, objectID string) (*View, error) {
	return s.apply(ctx, id, func(st State) (State, error) {
		return s.coord.FocusAnchor(st, objectID)
	})
}

func (s *viewerService) ClearObject(ctx context.Context, id string) (*View, error) {
	return s.apply(ctx, id, func(st State) (State, error) {
		return s.coord.ClearObjectSelection(st), nil
	})
}

func (s *viewerService) SelectEvent(ctx context.Context, id, eventID string) (*View, error) {
	return s.apply(ctx, id, func(st State) (State, error) {
		return s.coord.SelectEvent(st, eventID)
	})
}

func (s *viewerService) ClearEvent(ctx context.Context, id string) (*View, error) {
	return s.apply(ctx, id, func(st State) (State, error) {
		return s.coord.ClearEventSelection(st), nil
	})
}

func (s *viewerService) SetMapStyle(ctx context.Context, id, style string) (*View, error) {
	return s.apply(ctx, id, func(st State) (State, error) {
		return s.coord.SetMapStyle(st, style)
	})
}

func (s *viewerService) SetShowRelatedEvents(ctx context.Context, id string, show bool) (*View, error) {
	return s.apply(ctx, id, func(st State) (State, error) {
		return s.coord.SetShowRelatedEvents(st, show), nil
	})
}

// apply runs one transition under the session's lock.
func (s *viewerService) apply(ctx context.Context, id string, t transition) (*View, error) {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	st, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := t(*st)
	if err != nil {
		return nil, err
	}
	next.ID = st.ID
	next.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, next); err != nil {
		return nil, err
	}
	return s.coord.View(next), nil
}

func (s *viewerService) lockFor(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &s.locks[h.Sum32()%lockShards]
}
