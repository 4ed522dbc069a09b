package handlers

import (
	"context"

	"hypey-backend/application/ports"
	"hypey-backend/application/services"
	"hypey-backend/domain/core/entities"
	"hypey-backend/domain/core/valueobjects"
	"hypey-backend/domain/document"
	pkgerrors "hypey-backend/pkg/errors"
)

// MutationStatus is the externally visible fate of a mutation command
type MutationStatus string

const (
	StatusSaved      MutationStatus = "saved"
	StatusRolledBack MutationStatus = "rolled_back"

	// StatusNoop covers defined non-events: degenerate gestures, declined
	// delete confirmations, link writes that change nothing. No save was
	// attempted.
	StatusNoop MutationStatus = "noop"
)

// ElementMutationResult is returned by every element-level mutation handler.
// Element carries the authoritative post-operation state; nil means the
// element no longer exists in the authoritative document.
type ElementMutationResult struct {
	Status  MutationStatus
	Element *entities.Element
}

func statusOf(r *services.MutationResult) MutationStatus {
	if r.Saved() {
		return StatusSaved
	}
	return StatusRolledBack
}

// elementContext is everything an element mutation needs: the owning
// document, the collage the element belongs to, and the element itself. The
// three are always co-resident in one document.
type elementContext struct {
	doc     *document.Document
	collage *entities.Collage
	element *entities.Element
	ref     valueobjects.Ref
}

// loadElement fetches and hydrates the mutation context for an element ref.
// Only durable refs may be dereferenced; a local token here is a caller bug.
func loadElement(ctx context.Context, store ports.DocumentStore, refStr string) (*elementContext, error) {
	ref, err := valueobjects.NewRefFromString(refStr)
	if err != nil {
		return nil, pkgerrors.NewValidationError("invalid element ref")
	}
	if !ref.IsDurable() {
		return nil, pkgerrors.NewValidationError("element ref is not durable")
	}

	doc, err := store.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}

	thing, ok := doc.Thing(ref)
	if !ok {
		return nil, pkgerrors.NewNotFoundError("element")
	}
	element, err := entities.ElementFromThing(thing)
	if err != nil {
		return nil, err
	}

	collage, err := owningCollage(doc, ref)
	if err != nil {
		return nil, err
	}

	return &elementContext{
		doc:     doc,
		collage: collage,
		element: element,
		ref:     ref,
	}, nil
}

// owningCollage finds the collage in doc whose element set contains ref
func owningCollage(doc *document.Document, ref valueobjects.Ref) (*entities.Collage, error) {
	for _, t := range doc.ThingsOfType(document.TypeCollage) {
		for _, u := range t.GetAllURLs(document.PredHasElement) {
			if u == ref.String() {
				return entities.CollageFromThing(t)
			}
		}
	}
	return nil, pkgerrors.NewNotFoundError("owning collage")
}

// reloadElement re-reads the element from an authoritative document after a
// rollback. A nil return means the stored truth no longer has the element.
func reloadElement(doc *document.Document, ref valueobjects.Ref) *entities.Element {
	thing, ok := doc.Thing(ref)
	if !ok {
		return nil
	}
	element, err := entities.ElementFromThing(thing)
	if err != nil {
		return nil
	}
	return element
}

// requireEditable enforces the editability gate before a mutation is
// attempted. A hint, not an enforcement boundary: the store remains the
// authority and may still reject the save.
func requireEditable(collage *entities.Collage, webID string) error {
	if !collage.EditableBy(webID) {
		return pkgerrors.NewForbiddenError("collage is not editable by this identity")
	}
	return nil
}
