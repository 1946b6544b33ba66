package maps

import (
	"strconv"
	"strings"
)

// IsActive reports whether the object exists in year. Bounds are inclusive;
// an inverted interval is never active.
func IsActive(o *MapObject, year int) bool {
	return year >= o.ActiveFrom && year <= o.ActiveTo
}

// ResolveDisplayName returns the object's name at year from its own
// overlays: base name, then the latest applicable nameChanges entry, then
// the first namePeriods entry containing year.
func ResolveDisplayName(o *MapObject, year int) string {
	return overlayName(o, year, o.Name)
}

// ResolveColor returns the object's fill at year. Stages, each overriding
// the last: base colour (or the selection default), latest applicable
// colorChanges entry, then the first namePeriods entry containing year.
// A "split" colour produces a Split from customColors; any colour
// containing "gradient" produces the fixed Gradient.
func ResolveColor(o *MapObject, year int, selected bool) ColorResult {
	color := o.Color
	if color == "" {
		color = defaultColor(selected)
	}

	if c, ok := latestAtOrBefore(o.ColorChanges, year, func(c ColorChange) int { return c.Year }); ok {
		color = c.NewColor
	}

	if p, ok := firstPeriod(o.NamePeriods, year); ok && p.Color != "" {
		if p.Color == SplitSentinel {
			return splitFrom(o.CustomColors)
		}
		color = p.Color
	}

	switch {
	case color == SplitSentinel:
		if o.SplitColor {
			return splitFrom(o.CustomColors)
		}
		// A bare "split" without the flag has nothing to split with.
		color = defaultColor(selected)
	case strings.Contains(strings.ToLower(color), GradientMarker):
		return Gradient()
	}
	return Solid(color)
}

// ResolveVisibleLabel reports whether the object's text label is drawn.
func ResolveVisibleLabel(o *MapObject) bool {
	return !o.HideLabel
}

// DisplayPeriod is the period line of a detail view: the custom date when
// set, otherwise the From/To range.
func DisplayPeriod(o *MapObject) string {
	if o.CustomDate != "" {
		return o.CustomDate
	}
	return strconv.Itoa(o.ActiveFrom) + "—" + strconv.Itoa(o.ActiveTo)
}

// Resolver resolves objects against one catalog, which contributes the
// catalog-level name and icon override tables.
type Resolver struct {
	cat *Catalog
}

// NewResolver creates a Resolver for cat. A nil catalog resolves nothing.
func NewResolver(cat *Catalog) Resolver {
	return Resolver{cat: cat}
}

// DisplayName resolves the name with the catalog's name overrides applied
// between the base name and the object's own overlays.
func (r Resolver) DisplayName(o *MapObject, year int) string {
	base := o.Name
	if r.cat != nil {
		if n, ok := latestAtOrBefore(r.cat.names[o.ID], year, func(n NameOverride) int { return n.FromYear }); ok {
			base = n.Name
		}
	}
	return overlayName(o, year, base)
}

// Icon resolves the object's icon from the catalog's icon overrides.
func (r Resolver) Icon(o *MapObject, year int) IconVariant {
	if r.cat == nil {
		return IconVariant{Kind: IconDefault}
	}
	return resolveIcon(r.cat.icons[o.ID], year)
}

// Marker resolves every display attribute of o at year.
func (r Resolver) Marker(o *MapObject, year int, selectedID string) Marker {
	selected := selectedID != "" && o.ID == selectedID
	return Marker{
		ID:          o.ID,
		Lat:         o.Lat,
		Lng:         o.Lng,
		DisplayName: r.DisplayName(o, year),
		Color:       ResolveColor(o, year, selected),
		Icon:        r.Icon(o, year),
		ShowLabel:   ResolveVisibleLabel(o),
		Selected:    selected,
	}
}

// ActiveObjects returns a marker for each object active at year, in
// catalog order.
func (r Resolver) ActiveObjects(year int, selectedID string) []Marker {
	markers := []Marker{}
	if r.cat == nil {
		return markers
	}
	for i := range r.cat.Objects {
		o := &r.cat.Objects[i]
		if !IsActive(o, year) {
			continue
		}
		markers = append(markers, r.Marker(o, year, selectedID))
	}
	return markers
}

// ResolveActiveObjects is the one-shot form of Resolver.ActiveObjects.
func ResolveActiveObjects(cat *Catalog, year int, selectedID string) []Marker {
	return NewResolver(cat).ActiveObjects(year, selectedID)
}

// --- helpers ---

// overlayName applies nameChanges then namePeriods on top of base.
func overlayName(o *MapObject, year int, base string) string {
	name := base
	if c, ok := latestAtOrBefore(o.NameChanges, year, func(c NameChange) int { return c.Year }); ok {
		name = c.NewName
	}
	if p, ok := firstPeriod(o.NamePeriods, year); ok {
		name = p.Name
	}
	return name
}

// latestAtOrBefore returns the item with the greatest year <= query.
// On equal years the item listed last wins.
func latestAtOrBefore[T any](items []T, query int, yearOf func(T) int) (T, bool) {
	var best T
	found := false
	bestYear := 0
	for _, it := range items {
		y := yearOf(it)
		if y > query {
			continue
		}
		if !found || y >= bestYear {
			best, bestYear, found = it, y, true
		}
	}
	return best, found
}

// firstPeriod returns the first period containing year, in catalog order.
func firstPeriod(periods []NamePeriod, year int) (NamePeriod, bool) {
	for _, p := range periods {
		if p.Contains(year) {
			return p, true
		}
	}
	return NamePeriod{}, false
}

func defaultColor(selected bool) string {
	if selected {
		return SelectedDefaultColor
	}
	return UnselectedDefaultColor
}
