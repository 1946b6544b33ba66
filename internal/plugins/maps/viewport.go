package maps

import "math"

// Default viewport when no object is active (Lower Don).
const (
	DefaultCenterLat = 47.2357
	DefaultCenterLng = 39.7015
	DefaultZoom      = 7
)

// Viewport is the initial centre and zoom for a set of markers.
type Viewport struct {
	CenterLat float64 `json:"centerLat"`
	CenterLng float64 `json:"centerLng"`
	Zoom      int     `json:"zoom"`
}

// ComputeViewport centres on the bounding box of the markers and picks a
// zoom from its larger side.
func ComputeViewport(markers []Marker) Viewport {
	if len(markers) == 0 {
		return Viewport{CenterLat: DefaultCenterLat, CenterLng: DefaultCenterLng, Zoom: DefaultZoom}
	}

	minLat, maxLat := markers[0].Lat, markers[0].Lat
	minLng, maxLng := markers[0].Lng, markers[0].Lng
	for _, m := range markers[1:] {
		minLat, maxLat = math.Min(minLat, m.Lat), math.Max(maxLat, m.Lat)
		minLng, maxLng = math.Min(minLng, m.Lng), math.Max(maxLng, m.Lng)
	}

	span := math.Max(maxLat-minLat, maxLng-minLng)
	return Viewport{
		CenterLat: (minLat + maxLat) / 2,
		CenterLng: (minLng + maxLng) / 2,
		Zoom:      zoomForSpan(span),
	}
}

// zoomForSpan maps a span in degrees to a Leaflet zoom level.
func zoomForSpan(span float64) int {
	switch {
	case span < 0.5:
		return 10
	case span < 1:
		return 9
	case span < 2:
		return 8
	case span < 5:
		return 7
	default:
		return 6
	}
}
