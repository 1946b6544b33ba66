package maps

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyxmakerx/atlas/internal/apperror"
)

func newTestService(t *testing.T) MapService {
	t.Helper()
	lib, _, err := LoadEmbedded(LoadOptions{Strict: true, Logger: quietLogger()})
	require.NoError(t, err)
	return NewMapService(lib)
}

func TestMapService_ListMaps(t *testing.T) {
	svc := newTestService(t)
	maps := svc.ListMaps(context.Background())
	require.Len(t, maps, 2)
	assert.Equal(t, "Lower Don", maps[0].Name)
}

func TestMapService_SelectMap(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sel, err := svc.SelectMap(ctx, "azov-campaigns")
	require.NoError(t, err)
	assert.Equal(t, &Selection{MapID: "azov-campaigns", Year: 1695, MinYear: 1695, MaxYear: 1739}, sel)

	_, err = svc.SelectMap(ctx, "atlantis")
	assert.True(t, apperror.IsNotFound(err))
}

func TestMapService_RenderState(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	state, err := svc.RenderState(ctx, "lower-don", RenderInput{Year: intPtr(1805), SelectedID: "don-2"})
	require.NoError(t, err)
	assert.Equal(t, 1805, state.Year)

	var found bool
	for _, m := range state.Markers {
		if m.ID == "don-2" {
			found = true
			assert.Equal(t, "Starocherkasskaya", m.DisplayName)
			assert.True(t, m.Selected)
		}
	}
	assert.True(t, found)
}

func TestMapService_RenderStateClampsYear(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	state, err := svc.RenderState(ctx, "azov-campaigns", RenderInput{Year: intPtr(2024)})
	require.NoError(t, err)
	assert.Equal(t, 1739, state.Year)

	state, err = svc.RenderState(ctx, "azov-campaigns", RenderInput{})
	require.NoError(t, err)
	assert.Equal(t, 1695, state.Year)
}

func TestMapService_EventList(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	all, err := svc.EventList(ctx, "lower-don", EventQuery{Mode: FilterAll})
	require.NoError(t, err)
	assert.Len(t, all, 8)

	wars, err := svc.EventList(ctx, "lower-don", EventQuery{Mode: FilterCategory, Category: "War"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ev-3", "ev-5", "ev-7"}, eventIDs(wars))

	_, err = svc.EventList(ctx, "nowhere", EventQuery{})
	assert.True(t, apperror.IsNotFound(err))
}

func TestMapService_RelatedEvents(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	events, err := svc.RelatedEvents(ctx, "lower-don", "don-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"ev-1", "ev-4", "ev-8"}, eventIDs(events))

	_, err = svc.RelatedEvents(ctx, "lower-don", "don-99")
	assert.True(t, apperror.IsNotFound(err))
}

func TestMapService_ObjectDetail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	d, err := svc.ObjectDetail(ctx, "lower-don", "don-13", intPtr(1700))
	require.NoError(t, err)
	assert.True(t, d.Active)
	assert.Equal(t, "1500—1900", d.Period)
	assert.Equal(t, Solid("#2C3E50"), d.Color)
	assert.Equal(t, IconImageBadge, d.Icon.Kind)
	assert.NotEmpty(t, d.ImageCaption)
	assert.Equal(t, []string{"ev-3", "ev-5"}, eventIDs(d.RelatedEvents))

	d, err = svc.ObjectDetail(ctx, "lower-don", "don-8", intPtr(1700))
	require.NoError(t, err)
	assert.False(t, d.Active)
}

func TestMapService_EventDetail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	d, err := svc.EventDetail(ctx, "lower-don", "ev-8")
	require.NoError(t, err)
	require.Len(t, d.Anchors, 2)
	assert.Equal(t, "don-2", d.Anchors[0].ID, "anchors follow catalog order")
	assert.Equal(t, "don-8", d.Anchors[1].ID)

	d, err = svc.EventDetail(ctx, "lower-don", "ev-7")
	require.NoError(t, err)
	assert.Empty(t, d.Anchors)

	_, err = svc.EventDetail(ctx, "lower-don", "ev-404")
	assert.True(t, apperror.IsNotFound(err))
}

func TestMapService_Marker(t *testing.T) {
	svc := newTestService(t)
	m, err := svc.Marker(context.Background(), "lower-don", "don-6", RenderInput{Year: intPtr(1700)})
	require.NoError(t, err)
	assert.Equal(t, ColorSplit, m.Color.Kind)
	assert.False(t, m.Selected)
}

func TestMapService_Replace(t *testing.T) {
	svc := newTestService(t)
	before := svc.Fingerprint()

	lib := &Library{Maps: []MapInfo{{ID: "x", MinYear: 1, MaxYear: 2}}, Catalogs: map[string]*Catalog{}}
	_, err := Prepare(lib, LoadOptions{Logger: quietLogger()})
	require.NoError(t, err)
	svc.Replace(lib)

	assert.NotEqual(t, before, svc.Fingerprint())
	require.Len(t, svc.ListMaps(context.Background()), 1)

	// A map without a catalog renders empty.
	state, err := svc.RenderState(context.Background(), "x", RenderInput{})
	require.NoError(t, err)
	assert.Empty(t, state.Markers)
	assert.Equal(t, DefaultZoom, state.Viewport.Zoom)
}
