package maps

// index builds the catalog's lookup tables and derives its categories when
// none were listed. It must run before the catalog is shared.
func (c *Catalog) index() {
	c.objectPos = make(map[string]int, len(c.Objects))
	for i, o := range c.Objects {
		if _, dup := c.objectPos[o.ID]; !dup {
			c.objectPos[o.ID] = i
		}
	}

	c.eventPos = make(map[string]int, len(c.Events))
	for i, e := range c.Events {
		if _, dup := c.eventPos[e.ID]; !dup {
			c.eventPos[e.ID] = i
		}
	}

	c.names = make(map[string][]NameOverride)
	for _, n := range c.NameOverrides {
		c.names[n.ObjectID] = append(c.names[n.ObjectID], n)
	}

	c.icons = make(map[string][]IconOverride)
	for _, o := range c.IconOverrides {
		c.icons[o.ObjectID] = append(c.icons[o.ObjectID], o)
	}

	if len(c.Categories) == 0 {
		c.Categories = deriveCategories(c.Events)
	}
}

// Object returns the object with the given ID.
func (c *Catalog) Object(id string) (*MapObject, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.objectPos[id]
	if !ok {
		return nil, false
	}
	return &c.Objects[i], true
}

// Event returns the event with the given ID.
func (c *Catalog) Event(id string) (*Event, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.eventPos[id]
	if !ok {
		return nil, false
	}
	return &c.Events[i], true
}

// deriveCategories lists distinct event categories in first-appearance order.
func deriveCategories(events []Event) []string {
	seen := make(map[string]bool)
	categories := []string{}
	for _, e := range events {
		if e.Category == "" || seen[e.Category] {
			continue
		}
		seen[e.Category] = true
		categories = append(categories, e.Category)
	}
	return categories
}

// --- Library lookups ---

// ListMaps returns the selectable maps in library order.
func (l *Library) ListMaps() []MapInfo {
	out := make([]MapInfo, len(l.Maps))
	copy(out, l.Maps)
	return out
}

// MapInfo returns the metadata of one map.
func (l *Library) MapInfo(mapID string) (*MapInfo, bool) {
	for i := range l.Maps {
		if l.Maps[i].ID == mapID {
			return &l.Maps[i], true
		}
	}
	return nil, false
}

// Catalog returns one map's catalog, or nil for an unknown map.
func (l *Library) Catalog(mapID string) *Catalog {
	if l == nil || l.Catalogs == nil {
		return nil
	}
	return l.Catalogs[mapID]
}

// ObjectsForMap returns a map's objects. Unknown maps have no data, so an
// empty slice is returned rather than an error.
func (l *Library) ObjectsForMap(mapID string) []MapObject {
	if c := l.Catalog(mapID); c != nil {
		return c.Objects
	}
	return []MapObject{}
}

// EventsForMap returns a map's events, or an empty slice for unknown maps.
func (l *Library) EventsForMap(mapID string) []Event {
	if c := l.Catalog(mapID); c != nil {
		return c.Events
	}
	return []Event{}
}

// CategoriesForMap returns a map's event categories.
func (l *Library) CategoriesForMap(mapID string) []string {
	if c := l.Catalog(mapID); c != nil {
		return c.Categories
	}
	return []string{}
}
