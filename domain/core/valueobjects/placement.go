package valueobjects

// Placement positions an element on a collage. All fields are percentages of
// the background image's *current rendered box*, never absolute pixels and
// never the image's intrinsic dimensions — that is what keeps a collage
// viewport-independent. Pixel values exist only transiently inside gesture
// math and are normalized against the live box size at gesture time.
type Placement struct {
	x     float64
	y     float64
	width float64
}

// Documented defaults applied when an attribute is absent from the store
const (
	DefaultX     = 0.0
	DefaultY     = 0.0
	DefaultWidth = 10.0
)

// NewPlacement creates a placement from percentage coordinates
func NewPlacement(x, y, width float64) Placement {
	return Placement{x: x, y: y, width: width}
}

// DefaultPlacement returns the placement of a freshly created element
func DefaultPlacement() Placement {
	return Placement{x: DefaultX, y: DefaultY, width: DefaultWidth}
}

// X returns the horizontal position as a percentage
func (p Placement) X() float64 { return p.x }

// Y returns the vertical position as a percentage
func (p Placement) Y() float64 { return p.y }

// Width returns the width as a percentage
func (p Placement) Width() float64 { return p.width }

// Equals checks if two placements are equal
func (p Placement) Equals(other Placement) bool {
	return p.x == other.x && p.y == other.y && p.width == other.width
}

// WithPosition returns a copy at a new position
func (p Placement) WithPosition(x, y float64) Placement {
	return Placement{x: x, y: y, width: p.width}
}

// WithWidth returns a copy with a new width
func (p Placement) WithWidth(width float64) Placement {
	return Placement{x: p.x, y: p.y, width: width}
}

// PositionFromPixels converts a drop point to percentage coordinates against
// the rendered box (boxW, boxH). A zero or unavailable box means the gesture
// landed before layout settled; the conversion reports ok=false and the
// caller drops the move as a defined no-op.
func PositionFromPixels(dropX, dropY, boxW, boxH float64) (x, y float64, ok bool) {
	if boxW <= 0 || boxH <= 0 {
		return 0, 0, false
	}
	return 100 * dropX / boxW, 100 * dropY / boxH, true
}

// WidthDeltaFromPixels converts a horizontal pixel delta to a percentage
// width delta against the rendered box width
func WidthDeltaFromPixels(pixelDeltaX, boxW float64) (delta float64, ok bool) {
	if boxW <= 0 {
		return 0, false
	}
	return 100 * pixelDeltaX / boxW, true
}
