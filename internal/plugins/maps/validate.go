package maps

import (
	"fmt"
	"sort"
	"strings"
)

// Severity ranks a validation finding.
type Severity string

const (
	// SeverityError marks a broken catalog invariant.
	SeverityError Severity = "error"
	// SeverityWarning marks data that resolves but is probably a mistake.
	SeverityWarning Severity = "warning"
)

// Issue is one validation finding.
type Issue struct {
	Severity Severity `json:"severity"`
	MapID    string   `json:"mapId,omitempty"`
	Subject  string   `json:"subject,omitempty"`
	Message  string   `json:"message"`
}

// String renders the issue as a single log/detail line.
func (i Issue) String() string {
	var b strings.Builder
	b.WriteString(string(i.Severity))
	if i.MapID != "" {
		b.WriteString(" [" + i.MapID)
		if i.Subject != "" {
			b.WriteString("/" + i.Subject)
		}
		b.WriteString("]")
	}
	b.WriteString(": " + i.Message)
	return b.String()
}

// HasErrors reports whether any issue is error-severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate checks a library's invariants. Findings are returned in a
// deterministic order: maps first, then each catalog in map order.
func Validate(lib *Library) []Issue {
	var issues []Issue
	add := func(sev Severity, mapID, subject, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, MapID: mapID, Subject: subject, Message: fmt.Sprintf(format, args...)})
	}

	known := make(map[string]bool, len(lib.Maps))
	for _, m := range lib.Maps {
		if m.ID == "" {
			add(SeverityError, "", "", "map with empty id")
			continue
		}
		if known[m.ID] {
			add(SeverityError, m.ID, "", "duplicate map id")
		}
		known[m.ID] = true
		if m.MinYear > m.MaxYear {
			add(SeverityError, m.ID, "", "minYear %d is after maxYear %d", m.MinYear, m.MaxYear)
		}
		if lib.Catalogs[m.ID] == nil {
			add(SeverityWarning, m.ID, "", "map has no catalog")
		}
	}

	for _, id := range sortedKeys(lib.Catalogs) {
		if !known[id] {
			add(SeverityError, id, "", "catalog for unknown map")
		}
	}

	for _, m := range lib.Maps {
		if cat := lib.Catalogs[m.ID]; cat != nil {
			issues = append(issues, validateCatalog(m.ID, cat)...)
		}
	}
	return issues
}

func validateCatalog(mapID string, cat *Catalog) []Issue {
	var issues []Issue
	add := func(sev Severity, subject, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, MapID: mapID, Subject: subject, Message: fmt.Sprintf(format, args...)})
	}

	objects := make(map[string]bool, len(cat.Objects))
	for _, o := range cat.Objects {
		if o.ID == "" {
			add(SeverityError, "", "object %q has an empty id", o.Name)
			continue
		}
		if objects[o.ID] {
			add(SeverityError, o.ID, "duplicate object id")
		}
		objects[o.ID] = true

		if o.ActiveFrom > o.ActiveTo {
			add(SeverityError, o.ID, "activeFrom %d is after activeTo %d", o.ActiveFrom, o.ActiveTo)
		}
		for _, p := range o.NamePeriods {
			if p.FromYear > p.ToYear {
				add(SeverityError, o.ID, "name period %q runs from %d to %d", p.Name, p.FromYear, p.ToYear)
			}
		}
		if o.SplitColor && !hasSplitTrigger(&o) {
			add(SeverityWarning, o.ID, "splitColor is set but no colour is %q", SplitSentinel)
		}
		if o.Color == SplitSentinel && !o.SplitColor {
			add(SeverityWarning, o.ID, "color is %q but splitColor is not set", SplitSentinel)
		}
	}

	events := make(map[string]bool, len(cat.Events))
	for _, e := range cat.Events {
		if e.ID == "" {
			add(SeverityError, "", "event %q has an empty id", e.Title)
			continue
		}
		if events[e.ID] {
			add(SeverityError, e.ID, "duplicate event id")
		}
		events[e.ID] = true
		for _, ref := range e.ObjectID {
			if !objects[ref] {
				add(SeverityError, e.ID, "references unknown object %q", ref)
			}
		}
	}

	for _, n := range cat.NameOverrides {
		if !objects[n.ObjectID] {
			add(SeverityError, n.ObjectID, "name override for unknown object")
		}
	}
	for _, ic := range cat.IconOverrides {
		if !objects[ic.ObjectID] {
			add(SeverityError, ic.ObjectID, "icon override for unknown object")
		}
		if ic.Image == "" {
			add(SeverityError, ic.ObjectID, "icon override without image")
		}
		if ic.FromYear != nil && ic.ToYear != nil && *ic.FromYear > *ic.ToYear {
			add(SeverityError, ic.ObjectID, "icon override runs from %d to %d", *ic.FromYear, *ic.ToYear)
		}
	}
	return issues
}

// hasSplitTrigger reports whether any colour stage of o can produce a split.
func hasSplitTrigger(o *MapObject) bool {
	if o.Color == SplitSentinel {
		return true
	}
	for _, c := range o.ColorChanges {
		if c.NewColor == SplitSentinel {
			return true
		}
	}
	for _, p := range o.NamePeriods {
		if p.Color == SplitSentinel {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]*Catalog) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
