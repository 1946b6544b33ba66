package maps

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// MarkerIcon renders the marker as a standalone SVG document: a 24x24
// circle for solid fills, two semicircles for split and gradient fills, or
// a 32x32 image badge.
func MarkerIcon(m Marker) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if m.Icon.Kind != IconDefault && m.Icon.ImageURL != "" {
			_, err := fmt.Fprintf(w,
				`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="32" height="32" viewBox="0 0 32 32">`+
					`<image href="%s" x="0" y="0" width="32" height="32"/></svg>`,
				templ.EscapeString(m.Icon.ImageURL))
			return err
		}

		if m.Color.IsTwoTone() {
			left, right := templ.EscapeString(m.Color.Left), templ.EscapeString(m.Color.Right)
			_, err := fmt.Fprintf(w,
				`<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24">`+
					`<path d="M12 4 A8 8 0 0 0 12 20 Z" fill="%s"/>`+
					`<path d="M12 4 A8 8 0 0 1 12 20 Z" fill="%s"/>`+
					`<circle cx="12" cy="12" r="8" fill="none" stroke="white" stroke-width="2"/></svg>`,
				left, right)
			return err
		}

		fill := templ.EscapeString(m.Color.Color)
		_, err := fmt.Fprintf(w,
			`<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24">`+
				`<circle cx="12" cy="12" r="8" fill="%s" opacity="0.8" stroke="white" stroke-width="2"/>`+
				`<circle cx="12" cy="12" r="4" fill="%s"/></svg>`,
			fill, fill)
		return err
	})
}

// ObjectPopup renders the HTML fragment shown when a marker is clicked.
// Info was sanitized at load and is written unescaped.
func ObjectPopup(d *ObjectDetail) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<div class="map-popup"><h4>%s</h4><p class="map-popup-period">%s</p>`,
			templ.EscapeString(d.DisplayName), templ.EscapeString(d.Period)); err != nil {
			return err
		}
		if d.Image != "" {
			if _, err := fmt.Fprintf(w, `<img src="%s" alt="%s"/>`,
				templ.EscapeString(d.Image), templ.EscapeString(d.DisplayName)); err != nil {
				return err
			}
			if d.ImageCaption != "" {
				if _, err := fmt.Fprintf(w, `<p class="map-popup-caption">%s</p>`,
					templ.EscapeString(d.ImageCaption)); err != nil {
					return err
				}
			}
		}
		_, err := fmt.Fprintf(w, `<div class="map-popup-info">%s</div></div>`, d.Info)
		return err
	})
}
