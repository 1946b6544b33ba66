package maps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeViewport_Default(t *testing.T) {
	v := ComputeViewport(nil)
	assert.Equal(t, Viewport{CenterLat: DefaultCenterLat, CenterLng: DefaultCenterLng, Zoom: DefaultZoom}, v)
}

func TestComputeViewport_Bounds(t *testing.T) {
	markers := []Marker{
		{Lat: 47.0, Lng: 39.0},
		{Lat: 47.4, Lng: 39.2},
	}
	v := ComputeViewport(markers)
	assert.InDelta(t, 47.2, v.CenterLat, 1e-9)
	assert.InDelta(t, 39.1, v.CenterLng, 1e-9)
	assert.Equal(t, 10, v.Zoom)
}

func TestZoomForSpan(t *testing.T) {
	tests := []struct {
		span float64
		want int
	}{
		{0, 10},
		{0.49, 10},
		{0.5, 9},
		{1.5, 8},
		{4.9, 7},
		{5, 6},
		{40, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, zoomForSpan(tt.span), "span %v", tt.span)
	}
}
