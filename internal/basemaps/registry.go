// Package basemaps defines the registry of base-map tile styles a viewer
// can switch between. Styles are static: the registry is the canonical
// source of truth for which styles exist and where their tiles come from.
package basemaps

import (
	"net/url"
	"strings"
)

// Style IDs.
const (
	StyleRoadmap   = "roadmap"
	StyleSatellite = "satellite"
	StyleTerrain   = "terrain"
)

// Style holds metadata about a registered tile style.
type Style struct {
	// ID is the unique machine-readable identifier (e.g., "satellite").
	ID string `json:"id"`

	// Name is the human-readable display name.
	Name string `json:"name"`

	// TileURL is the Leaflet tile URL template with {x}, {y}, {z}
	// placeholders (and {s} when Subdomains is set).
	TileURL string `json:"tile_url"`

	// Subdomains lists the values substituted for {s}.
	Subdomains []string `json:"subdomains,omitempty"`

	// Attribution is the credit line rendered by the map.
	Attribution string `json:"attribution"`
}

// Registry returns the list of all known styles in display order.
func Registry() []Style {
	subdomains := []string{"mt0", "mt1", "mt2", "mt3"}
	return []Style{
		{
			ID:          StyleRoadmap,
			Name:        "Roadmap",
			TileURL:     "https://{s}.google.com/vt/lyrs=r&x={x}&y={y}&z={z}",
			Subdomains:  subdomains,
			Attribution: "&copy; Google Maps",
		},
		{
			ID:          StyleSatellite,
			Name:        "Satellite",
			TileURL:     "https://{s}.google.com/vt/lyrs=s&x={x}&y={y}&z={z}",
			Subdomains:  subdomains,
			Attribution: "&copy; Google Maps",
		},
		{
			ID:          StyleTerrain,
			Name:        "Terrain",
			TileURL:     "https://{s}.google.com/vt/lyrs=p&x={x}&y={y}&z={z}",
			Subdomains:  subdomains,
			Attribution: "&copy; Google Maps",
		},
	}
}

// Find returns the style for a given ID, or nil if not found.
func Find(id string) *Style {
	for _, s := range Registry() {
		if s.ID == id {
			return &s
		}
	}
	return nil
}

// TileOrigins returns the distinct https origins tiles are fetched from,
// with subdomain placeholders expanded. Used to build the CSP img-src list.
func TileOrigins() []string {
	seen := make(map[string]bool)
	var origins []string
	for _, s := range Registry() {
		hosts := []string{s.TileURL}
		if strings.Contains(s.TileURL, "{s}") {
			hosts = hosts[:0]
			for _, sub := range s.Subdomains {
				hosts = append(hosts, strings.ReplaceAll(s.TileURL, "{s}", sub))
			}
		}
		for _, h := range hosts {
			u, err := url.Parse(strings.NewReplacer("{x}", "0", "{y}", "0", "{z}", "0").Replace(h))
			if err != nil || u.Host == "" {
				continue
			}
			origin := u.Scheme + "://" + u.Host
			if !seen[origin] {
				seen[origin] = true
				origins = append(origins, origin)
			}
		}
	}
	return origins
}
