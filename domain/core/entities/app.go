package entities

import (
	"hypey-backend/domain/core/valueobjects"
	"hypey-backend/domain/document"
	pkgerrors "hypey-backend/pkg/errors"
)

// App is the per-user root entity: the image upload container location plus
// the set of collage references. One exists per user, created on first use
// and never deleted.
type App struct {
	ref                  valueobjects.Ref
	imageUploadContainer string
	collageRefs          []valueobjects.Ref
}

// NewApp creates the app entity with its well-known local token. The token
// uses the fixed "app" fragment so the durable ref is always
// <container>/app.jsonld#app.
func NewApp(imageUploadContainer string) (*App, error) {
	if imageUploadContainer == "" {
		return nil, pkgerrors.NewValidationError("imageUploadContainer cannot be empty")
	}
	ref, err := valueobjects.NewRefFromString("#" + document.AppFragment)
	if err != nil {
		return nil, err
	}
	return &App{
		ref:                  ref,
		imageUploadContainer: imageUploadContainer,
	}, nil
}

// AppFromThing hydrates the app from its property bag
func AppFromThing(t *document.Thing) (*App, error) {
	container, ok := t.GetURL(document.PredImageUploadContainer)
	if !ok {
		return nil, pkgerrors.NewValidationError("app has no imageUploadContainer")
	}

	a := &App{
		ref:                  t.Ref(),
		imageUploadContainer: container,
	}
	for _, u := range t.GetAllURLs(document.PredHasCollages) {
		ref, err := valueobjects.NewRefFromString(u)
		if err != nil {
			continue
		}
		a.collageRefs = append(a.collageRefs, ref)
	}
	return a, nil
}

// Thing flushes the app back to a property bag
func (a *App) Thing() *document.Thing {
	t := document.NewThing(a.ref)
	t.AddValue(document.RDFType, document.URLValue(document.TypeApp))
	t.SetValue(document.PredImageUploadContainer, document.URLValue(a.imageUploadContainer))
	for _, ref := range a.collageRefs {
		t.AddValue(document.PredHasCollages, document.URLValue(ref.String()))
	}
	return t
}

// Ref returns the app's identity token
func (a *App) Ref() valueobjects.Ref {
	return a.ref
}

// ImageUploadContainer returns where uploaded images are stored
func (a *App) ImageUploadContainer() string {
	return a.imageUploadContainer
}

// CollageRefs returns every collage reference, durable or not
func (a *App) CollageRefs() []valueobjects.Ref {
	refs := make([]valueobjects.Ref, len(a.collageRefs))
	copy(refs, a.collageRefs)
	return refs
}

// DurableCollageRefs returns only collage references that resolve over the
// network
func (a *App) DurableCollageRefs() []valueobjects.Ref {
	var durable []valueobjects.Ref
	for _, ref := range a.collageRefs {
		if ref.IsDurable() {
			durable = append(durable, ref)
		}
	}
	return durable
}

// AddCollageRef appends a collage reference, skipping duplicates
func (a *App) AddCollageRef(ref valueobjects.Ref) {
	for _, existing := range a.collageRefs {
		if existing.Equals(ref) {
			return
		}
	}
	a.collageRefs = append(a.collageRefs, ref)
}
