package entities

import (
	"hypey-backend/domain/core/valueobjects"
	"hypey-backend/domain/document"
	pkgerrors "hypey-backend/pkg/errors"
)

// Element is a sub-image placed on a collage. Position and width are
// percentages of the collage background's rendered box; they are optional in
// the store and default to x=0, y=0, width=10 when absent.
type Element struct {
	ref        valueobjects.Ref
	imageURL   string
	x          *float64
	y          *float64
	width      *float64
	linkTarget string
}

// NewElement creates a new element with a local identity token and the given
// image URL. No network effect; the element becomes durable when its
// collage's document is saved.
func NewElement(imageURL string) (*Element, error) {
	if imageURL == "" {
		return nil, pkgerrors.NewValidationError("imageUrl cannot be empty")
	}
	return &Element{
		ref:      valueobjects.NewLocalRef(),
		imageURL: imageURL,
	}, nil
}

// ElementFromThing hydrates an element from its property bag
func ElementFromThing(t *document.Thing) (*Element, error) {
	imageURL, ok := t.GetURL(document.PredImageURL)
	if !ok {
		return nil, pkgerrors.NewValidationError("element has no imageUrl")
	}

	e := &Element{
		ref:      t.Ref(),
		imageURL: imageURL,
	}
	if x, ok := t.GetDecimal(document.PredElementX); ok {
		e.x = &x
	}
	if y, ok := t.GetDecimal(document.PredElementY); ok {
		e.y = &y
	}
	if w, ok := t.GetDecimal(document.PredElementWidth); ok {
		e.width = &w
	}
	if link, ok := t.GetURL(document.PredElementLink); ok {
		e.linkTarget = link
	}
	return e, nil
}

// Thing flushes the element back to a property bag
func (e *Element) Thing() *document.Thing {
	t := document.NewThing(e.ref)
	t.AddValue(document.RDFType, document.URLValue(document.TypeElement))
	t.SetValue(document.PredImageURL, document.URLValue(e.imageURL))
	if e.x != nil {
		t.SetValue(document.PredElementX, document.DecimalValue(*e.x))
	}
	if e.y != nil {
		t.SetValue(document.PredElementY, document.DecimalValue(*e.y))
	}
	if e.width != nil {
		t.SetValue(document.PredElementWidth, document.DecimalValue(*e.width))
	}
	if e.linkTarget != "" {
		t.SetValue(document.PredElementLink, document.URLValue(e.linkTarget))
	}
	return t
}

// Ref returns the element's identity token
func (e *Element) Ref() valueobjects.Ref {
	return e.ref
}

// ImageURL returns the element's image URL
func (e *Element) ImageURL() string {
	return e.imageURL
}

// Placement returns the element's placement with defaults applied for any
// absent attribute
func (e *Element) Placement() valueobjects.Placement {
	x, y, w := valueobjects.DefaultX, valueobjects.DefaultY, valueobjects.DefaultWidth
	if e.x != nil {
		x = *e.x
	}
	if e.y != nil {
		y = *e.y
	}
	if e.width != nil {
		w = *e.width
	}
	return valueobjects.NewPlacement(x, y, w)
}

// LinkTarget returns the outbound link URL and whether one is set
func (e *Element) LinkTarget() (string, bool) {
	return e.linkTarget, e.linkTarget != ""
}

// MoveTo positions the element at percentage coordinates
func (e *Element) MoveTo(x, y float64) {
	e.x = &x
	e.y = &y
}

// ResizeTo sets the element's width in percent. Non-positive widths are
// degenerate and rejected; the gesture layer drops them before ever reaching
// here, so an error here indicates a caller bug rather than a user gesture.
func (e *Element) ResizeTo(width float64) error {
	if width <= 0 {
		return pkgerrors.NewValidationError("width must be positive")
	}
	e.width = &width
	return nil
}

// SetLink sets the element's outbound link. An empty URL clears the link —
// submitting an empty value means "remove", not "set to empty string".
func (e *Element) SetLink(url string) {
	e.linkTarget = url
}
