package maps

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderString(t *testing.T, render func(*bytes.Buffer) error) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, render(&buf))
	return buf.String()
}

func TestMarkerIcon_Solid(t *testing.T) {
	m := Marker{Color: Solid("#2C3E50"), Icon: IconVariant{Kind: IconDefault}}
	out := renderString(t, func(b *bytes.Buffer) error { return MarkerIcon(m).Render(context.Background(), b) })

	assert.Contains(t, out, `width="24"`)
	assert.Contains(t, out, `fill="#2C3E50"`)
	assert.NotContains(t, out, "<path")
}

func TestMarkerIcon_Split(t *testing.T) {
	m := Marker{Color: Split("#111", "#222"), Icon: IconVariant{Kind: IconDefault}}
	out := renderString(t, func(b *bytes.Buffer) error { return MarkerIcon(m).Render(context.Background(), b) })

	assert.Contains(t, out, `fill="#111"`)
	assert.Contains(t, out, `fill="#222"`)
}

func TestMarkerIcon_BadgeEscapesURL(t *testing.T) {
	m := Marker{Icon: IconVariant{Kind: IconImageBadge, ImageURL: `x.png"onload="alert(1)`}}
	out := renderString(t, func(b *bytes.Buffer) error { return MarkerIcon(m).Render(context.Background(), b) })

	assert.Contains(t, out, `width="32"`)
	assert.NotContains(t, out, `"onload="`)
}

func TestObjectPopup(t *testing.T) {
	d := &ObjectDetail{
		Marker: Marker{DisplayName: "Azov <fort>"},
		Period: "1500—1900",
		Image:  "plan.png",
		Info:   "<p>Fortress</p>",
	}
	out := renderString(t, func(b *bytes.Buffer) error { return ObjectPopup(d).Render(context.Background(), b) })

	assert.Contains(t, out, "Azov &lt;fort&gt;")
	assert.Contains(t, out, "1500—1900")
	assert.Contains(t, out, `<img src="plan.png"`)
	assert.Contains(t, out, "<p>Fortress</p>")
	assert.NotContains(t, out, "map-popup-caption")
}
