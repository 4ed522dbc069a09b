package entities

import (
	"hypey-backend/domain/core/valueobjects"
	"hypey-backend/domain/document"
	pkgerrors "hypey-backend/pkg/errors"
)

// Collage is a background image with a set of element references. It lives
// in its owner's app document but is independently addressable once durable.
type Collage struct {
	ref                valueobjects.Ref
	backgroundImageURL string
	creator            string
	elementRefs        []valueobjects.Ref
}

// NewCollage creates a new collage with a local identity token. The creator
// identity is set once here and never changes.
func NewCollage(backgroundImageURL, creator string) (*Collage, error) {
	if backgroundImageURL == "" {
		return nil, pkgerrors.NewValidationError("backgroundImageUrl cannot be empty")
	}
	if creator == "" {
		return nil, pkgerrors.NewValidationError("creator cannot be empty")
	}
	return &Collage{
		ref:                valueobjects.NewLocalRef(),
		backgroundImageURL: backgroundImageURL,
		creator:            creator,
	}, nil
}

// CollageFromThing hydrates a collage from its property bag
func CollageFromThing(t *document.Thing) (*Collage, error) {
	bg, ok := t.GetURL(document.PredBackgroundImageURL)
	if !ok {
		return nil, pkgerrors.NewValidationError("collage has no backgroundImageUrl")
	}

	c := &Collage{
		ref:                t.Ref(),
		backgroundImageURL: bg,
	}
	if creator, ok := t.GetURL(document.PredCreator); ok {
		c.creator = creator
	}
	for _, u := range t.GetAllURLs(document.PredHasElement) {
		ref, err := valueobjects.NewRefFromString(u)
		if err != nil {
			continue
		}
		c.elementRefs = append(c.elementRefs, ref)
	}
	return c, nil
}

// Thing flushes the collage back to a property bag
func (c *Collage) Thing() *document.Thing {
	t := document.NewThing(c.ref)
	t.AddValue(document.RDFType, document.URLValue(document.TypeCollage))
	t.SetValue(document.PredBackgroundImageURL, document.URLValue(c.backgroundImageURL))
	if c.creator != "" {
		t.SetValue(document.PredCreator, document.URLValue(c.creator))
	}
	for _, ref := range c.elementRefs {
		t.AddValue(document.PredHasElement, document.URLValue(ref.String()))
	}
	return t
}

// Ref returns the collage's identity token
func (c *Collage) Ref() valueobjects.Ref {
	return c.ref
}

// BackgroundImageURL returns the background image URL
func (c *Collage) BackgroundImageURL() string {
	return c.backgroundImageURL
}

// Creator returns the identity that created the collage
func (c *Collage) Creator() string {
	return c.creator
}

// ElementRefs returns every element reference, durable or not
func (c *Collage) ElementRefs() []valueobjects.Ref {
	refs := make([]valueobjects.Ref, len(c.elementRefs))
	copy(refs, c.elementRefs)
	return refs
}

// DurableElementRefs returns only element references that resolve over the
// network. Any reference still carrying a local token — or malformed — is
// filtered here, before rendering or dereferencing. Every read site goes
// through this, not just creation-time code.
func (c *Collage) DurableElementRefs() []valueobjects.Ref {
	var durable []valueobjects.Ref
	for _, ref := range c.elementRefs {
		if ref.IsDurable() {
			durable = append(durable, ref)
		}
	}
	return durable
}

// AddElementRef appends an element reference, skipping duplicates
func (c *Collage) AddElementRef(ref valueobjects.Ref) {
	for _, existing := range c.elementRefs {
		if existing.Equals(ref) {
			return
		}
	}
	c.elementRefs = append(c.elementRefs, ref)
}

// RemoveElementRef removes an element reference
func (c *Collage) RemoveElementRef(ref valueobjects.Ref) error {
	kept := c.elementRefs[:0]
	found := false
	for _, existing := range c.elementRefs {
		if existing.Equals(ref) {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	if !found {
		return pkgerrors.NewNotFoundError("element reference")
	}
	c.elementRefs = kept
	return nil
}

// EditableBy reports whether the given identity may edit this collage: both
// identities must be present and equal. This gates which affordances are
// offered, nothing more — the store is the actual authority, and a rejected
// write surfaces through the normal save-failure path.
func (c *Collage) EditableBy(webID string) bool {
	return webID != "" && c.creator != "" && webID == c.creator
}
