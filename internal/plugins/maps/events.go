package maps

import (
	"fmt"
	"slices"
)

// FilterMode selects how the event list is filtered.
type FilterMode string

const (
	// FilterAll lists every event of the map.
	FilterAll FilterMode = "all"
	// FilterCategory lists the events of one category.
	FilterCategory FilterMode = "category"
)

// AllCategories is the category value that disables category filtering.
const AllCategories = "all"

// ParseFilterMode validates a filter mode string. Empty means FilterAll.
func ParseFilterMode(s string) (FilterMode, error) {
	switch FilterMode(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterCategory:
		return FilterCategory, nil
	default:
		return "", fmt.Errorf("unknown filter mode %q", s)
	}
}

// FilterEvents applies the event filter. Catalog order is preserved.
func FilterEvents(events []Event, mode FilterMode, category string) []Event {
	if mode != FilterCategory || category == "" || category == AllCategories {
		return slices.Clone(events)
	}
	out := []Event{}
	for _, e := range events {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// RelatedEvents returns the events whose objectId contains objectID,
// sorted by date.
func RelatedEvents(events []Event, objectID string) []Event {
	out := []Event{}
	if objectID == "" {
		return out
	}
	for _, e := range events {
		if e.ObjectID.Contains(objectID) {
			out = append(out, e)
		}
	}
	return SortByDate(out)
}

// SortByDate returns a copy of events sorted ascending by date; events of
// the same year keep their catalog order.
func SortByDate(events []Event) []Event {
	out := slices.Clone(events)
	if out == nil {
		out = []Event{}
	}
	slices.SortStableFunc(out, func(a, b Event) int {
		return a.Date - b.Date
	})
	return out
}

// AnchorObjects returns the catalog objects an event references, in
// catalog order. References to missing objects are skipped.
func AnchorObjects(objects []MapObject, e *Event) []MapObject {
	out := []MapObject{}
	if e == nil || !e.IsAnchored() {
		return out
	}
	for _, o := range objects {
		if e.ObjectID.Contains(o.ID) {
			out = append(out, o)
		}
	}
	return out
}
