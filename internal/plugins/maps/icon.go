package maps

// IconKind distinguishes marker icon renderings.
type IconKind string

const (
	// IconDefault is the plain circle marker.
	IconDefault IconKind = "default"
	// IconImageBadge is a permanent image badge.
	IconImageBadge IconKind = "image_badge"
	// IconConditionalBadge is an image badge limited to a year range.
	IconConditionalBadge IconKind = "conditional_image_badge"
)

// YearRange is an inclusive range with optional open ends.
type YearRange struct {
	From *int `json:"from,omitempty"`
	To   *int `json:"to,omitempty"`
}

// Contains reports whether year lies inside the range.
func (r YearRange) Contains(year int) bool {
	if r.From != nil && year < *r.From {
		return false
	}
	if r.To != nil && year > *r.To {
		return false
	}
	return true
}

// IconVariant is the resolved icon of a marker.
type IconVariant struct {
	Kind     IconKind   `json:"kind"`
	ImageURL string     `json:"imageUrl,omitempty"`
	Range    *YearRange `json:"yearRange,omitempty"`
}

// Conditional reports whether the override is limited to a year range.
func (o IconOverride) Conditional() bool {
	return o.FromYear != nil || o.ToYear != nil
}

// Range returns the override's year range.
func (o IconOverride) Range() YearRange {
	return YearRange{From: o.FromYear, To: o.ToYear}
}

// variant converts the override into the icon it produces.
func (o IconOverride) variant() IconVariant {
	if !o.Conditional() {
		return IconVariant{Kind: IconImageBadge, ImageURL: o.Image}
	}
	r := o.Range()
	return IconVariant{Kind: IconConditionalBadge, ImageURL: o.Image, Range: &r}
}

// resolveIcon returns the first override that applies at year, in catalog
// order, or the default icon.
func resolveIcon(overrides []IconOverride, year int) IconVariant {
	for _, o := range overrides {
		if o.Range().Contains(year) {
			return o.variant()
		}
	}
	return IconVariant{Kind: IconDefault}
}
