package handlers

import (
	"context"

	"go.uber.org/zap"

	"hypey-backend/application/ports"
	"hypey-backend/application/queries"
	"hypey-backend/domain/core/entities"
	"hypey-backend/domain/document"
	pkgerrors "hypey-backend/pkg/errors"
)

// ListCollagesHandler lists the collages in a user's app document
type ListCollagesHandler struct {
	store  ports.DocumentStore
	logger *zap.Logger
}

// NewListCollagesHandler creates a new list collages handler
func NewListCollagesHandler(store ports.DocumentStore, logger *zap.Logger) *ListCollagesHandler {
	return &ListCollagesHandler{store: store, logger: logger}
}

// Handle executes the list collages query
func (h *ListCollagesHandler) Handle(ctx context.Context, q queries.ListCollagesQuery) ([]queries.CollageSummary, error) {
	if err := q.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	appRef, err := document.AppRef(q.StorageURL)
	if err != nil {
		return nil, pkgerrors.NewValidationError("invalid storage URL")
	}

	doc, err := h.store.Fetch(ctx, appRef)
	if err != nil {
		return nil, err
	}

	appThing, ok := doc.Thing(appRef)
	if !ok {
		return nil, pkgerrors.NewNotFoundError("app")
	}
	app, err := entities.AppFromThing(appThing)
	if err != nil {
		return nil, err
	}

	summaries := []queries.CollageSummary{}
	for _, collageRef := range app.DurableCollageRefs() {
		thing, ok := doc.Thing(collageRef)
		if !ok {
			continue
		}
		collage, err := entities.CollageFromThing(thing)
		if err != nil {
			continue
		}
		summaries = append(summaries, queries.CollageSummary{
			Ref:                collage.Ref().String(),
			BackgroundImageURL: collage.BackgroundImageURL(),
			ElementCount:       len(collage.DurableElementRefs()),
			Editable:           collage.EditableBy(q.WebID),
		})
	}

	return summaries, nil
}

// GetAppHandler builds the app read model
type GetAppHandler struct {
	store  ports.DocumentStore
	logger *zap.Logger
}

// NewGetAppHandler creates a new get app handler
func NewGetAppHandler(store ports.DocumentStore, logger *zap.Logger) *GetAppHandler {
	return &GetAppHandler{store: store, logger: logger}
}

// Handle executes the get app query
func (h *GetAppHandler) Handle(ctx context.Context, q queries.GetAppQuery) (*queries.AppView, error) {
	if err := q.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	appRef, err := document.AppRef(q.StorageURL)
	if err != nil {
		return nil, pkgerrors.NewValidationError("invalid storage URL")
	}

	doc, err := h.store.Fetch(ctx, appRef)
	if err != nil {
		return nil, err
	}

	appThing, ok := doc.Thing(appRef)
	if !ok {
		return nil, pkgerrors.NewNotFoundError("app")
	}
	app, err := entities.AppFromThing(appThing)
	if err != nil {
		return nil, err
	}

	view := &queries.AppView{
		Ref:                  app.Ref().String(),
		ImageUploadContainer: app.ImageUploadContainer(),
		CollageRefs:          []string{},
	}
	for _, ref := range app.DurableCollageRefs() {
		view.CollageRefs = append(view.CollageRefs, ref.String())
	}
	return view, nil
}
