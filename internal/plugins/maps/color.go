package maps

// ColorKind distinguishes the marker fill renderings.
type ColorKind string

const (
	// ColorSolid fills the marker with one colour.
	ColorSolid ColorKind = "solid"
	// ColorSplit draws two semicircles from the object's customColors.
	ColorSplit ColorKind = "split"
	// ColorGradient draws two semicircles in the fixed gradient tones.
	ColorGradient ColorKind = "gradient"
)

// ColorResult is the resolved fill of a marker.
type ColorResult struct {
	Kind  ColorKind `json:"kind"`
	Color string    `json:"color,omitempty"`
	Left  string    `json:"left,omitempty"`
	Right string    `json:"right,omitempty"`
}

// Solid returns a single-colour result.
func Solid(color string) ColorResult {
	return ColorResult{Kind: ColorSolid, Color: color}
}

// Split returns a two-half result.
func Split(left, right string) ColorResult {
	return ColorResult{Kind: ColorSplit, Left: left, Right: right}
}

// Gradient returns the fixed two-tone gradient result.
func Gradient() ColorResult {
	return ColorResult{Kind: ColorGradient, Left: GradientLeft, Right: GradientRight}
}

// IsTwoTone reports whether the marker is drawn as two halves.
func (c ColorResult) IsTwoTone() bool {
	return c.Kind == ColorSplit || c.Kind == ColorGradient
}

// splitFrom builds a split result from custom colours, falling back per side.
func splitFrom(custom *ColorPair) ColorResult {
	left, right := DefaultSplitLeft, DefaultSplitRight
	if custom != nil {
		if custom.Left != "" {
			left = custom.Left
		}
		if custom.Right != "" {
			right = custom.Right
		}
	}
	return Split(left, right)
}
