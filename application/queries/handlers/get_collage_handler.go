package handlers

import (
	"context"

	"go.uber.org/zap"

	"hypey-backend/application/ports"
	"hypey-backend/application/queries"
	"hypey-backend/domain/core/entities"
	"hypey-backend/domain/core/valueobjects"
	pkgerrors "hypey-backend/pkg/errors"
)

// GetCollageHandler builds the collage read model
type GetCollageHandler struct {
	store  ports.DocumentStore
	logger *zap.Logger
}

// NewGetCollageHandler creates a new get collage handler
func NewGetCollageHandler(store ports.DocumentStore, logger *zap.Logger) *GetCollageHandler {
	return &GetCollageHandler{store: store, logger: logger}
}

// Handle executes the get collage query. Only durable element refs make it
// into the view: a local token is unresolvable and must never be rendered.
func (h *GetCollageHandler) Handle(ctx context.Context, q queries.GetCollageQuery) (*queries.CollageView, error) {
	if err := q.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	ref, err := valueobjects.NewRefFromString(q.CollageRef)
	if err != nil || !ref.IsDurable() {
		return nil, pkgerrors.NewValidationError("collage ref is not durable")
	}

	doc, err := h.store.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}

	thing, ok := doc.Thing(ref)
	if !ok {
		return nil, pkgerrors.NewNotFoundError("collage")
	}
	collage, err := entities.CollageFromThing(thing)
	if err != nil {
		return nil, err
	}

	view := &queries.CollageView{
		Ref:                collage.Ref().String(),
		BackgroundImageURL: collage.BackgroundImageURL(),
		Creator:            collage.Creator(),
		Editable:           collage.EditableBy(q.WebID),
		Elements:           []queries.ElementView{},
	}

	for _, elemRef := range collage.DurableElementRefs() {
		elemThing, ok := doc.Thing(elemRef)
		if !ok {
			// Reference to a node missing from its own document; skip it
			h.logger.Warn("dangling element reference",
				zap.String("collage", q.CollageRef),
				zap.String("element", elemRef.String()),
			)
			continue
		}
		element, err := entities.ElementFromThing(elemThing)
		if err != nil {
			continue
		}
		view.Elements = append(view.Elements, elementView(element))
	}

	return view, nil
}

func elementView(e *entities.Element) queries.ElementView {
	placement := e.Placement()
	v := queries.ElementView{
		ID:       e.Ref().String(),
		ImageURL: e.ImageURL(),
		X:        placement.X(),
		Y:        placement.Y(),
		Width:    placement.Width(),
	}
	if link, ok := e.LinkTarget(); ok {
		v.LinkTarget = link
	}
	return v
}
