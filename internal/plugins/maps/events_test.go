package maps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvents() []Event {
	return []Event{
		{ID: "e1", Date: 1700, Category: "War", ObjectID: ObjectRefs{"a"}},
		{ID: "e2", Date: 1600, Category: "Founding", ObjectID: ObjectRefs{"a", "b"}},
		{ID: "e3", Date: 1650, Category: "War"},
		{ID: "e4", Date: 1600, Category: "Trade", ObjectID: ObjectRefs{"b"}},
		{ID: "e5", Date: 1550, Category: "War", ObjectID: ObjectRefs{"a"}},
	}
}

func eventIDs(events []Event) []string {
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return ids
}

func TestParseFilterMode(t *testing.T) {
	m, err := ParseFilterMode("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, m)

	m, err = ParseFilterMode("category")
	require.NoError(t, err)
	assert.Equal(t, FilterCategory, m)

	_, err = ParseFilterMode("date")
	assert.Error(t, err)
}

func TestFilterEvents(t *testing.T) {
	events := sampleEvents()

	tests := []struct {
		name     string
		mode     FilterMode
		category string
		want     []string
	}{
		{"all mode", FilterAll, "War", []string{"e1", "e2", "e3", "e4", "e5"}},
		{"category", FilterCategory, "War", []string{"e1", "e3", "e5"}},
		{"category all", FilterCategory, AllCategories, []string{"e1", "e2", "e3", "e4", "e5"}},
		{"empty category", FilterCategory, "", []string{"e1", "e2", "e3", "e4", "e5"}},
		{"unknown category", FilterCategory, "Plague", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterEvents(events, tt.mode, tt.category)
			assert.Equal(t, tt.want, eventIDs(got))
		})
	}
}

func TestFilterEvents_DoesNotAliasInput(t *testing.T) {
	events := sampleEvents()
	got := FilterEvents(events, FilterAll, "")
	got[0].Title = "changed"
	assert.Empty(t, events[0].Title)
}

func TestRelatedEvents_ScalarAndArrayRefs(t *testing.T) {
	got := RelatedEvents(sampleEvents(), "b")
	assert.Equal(t, []string{"e2", "e4"}, eventIDs(got))
}

func TestRelatedEvents_SortedByDateStable(t *testing.T) {
	got := RelatedEvents(sampleEvents(), "a")
	assert.Equal(t, []string{"e5", "e2", "e1"}, eventIDs(got))
}

func TestRelatedEvents_UnknownOrEmpty(t *testing.T) {
	got := RelatedEvents(sampleEvents(), "zzz")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, RelatedEvents(sampleEvents(), ""))
}

func TestSortByDate(t *testing.T) {
	got := SortByDate(sampleEvents())
	assert.Equal(t, []string{"e5", "e2", "e4", "e3", "e1"}, eventIDs(got))

	assert.NotNil(t, SortByDate(nil))
}

func TestAnchorObjects(t *testing.T) {
	objects := []MapObject{{ID: "b"}, {ID: "a"}, {ID: "c"}}

	e := &Event{ObjectID: ObjectRefs{"a", "b", "missing"}}
	got := AnchorObjects(objects, e)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)

	assert.Empty(t, AnchorObjects(objects, &Event{}))
}

func TestDeriveCategories(t *testing.T) {
	got := deriveCategories(sampleEvents())
	assert.Equal(t, []string{"War", "Founding", "Trade"}, got)
}
