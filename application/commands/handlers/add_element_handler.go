package handlers

import (
	"context"

	"go.uber.org/zap"

	"hypey-backend/application/commands"
	"hypey-backend/application/ports"
	"hypey-backend/application/services"
	"hypey-backend/domain/core/entities"
	"hypey-backend/domain/core/valueobjects"
	pkgerrors "hypey-backend/pkg/errors"
)

// AddElementHandler adds a new element to a collage: the element thing is
// written into the collage's document and the collage's element set gains a
// reference, in one whole-document save.
type AddElementHandler struct {
	store   ports.DocumentStore
	mutator *services.Mutator
	logger  *zap.Logger
}

// NewAddElementHandler creates a new add element handler
func NewAddElementHandler(store ports.DocumentStore, mutator *services.Mutator, logger *zap.Logger) *AddElementHandler {
	return &AddElementHandler{store: store, mutator: mutator, logger: logger}
}

// Handle executes the add element command
func (h *AddElementHandler) Handle(ctx context.Context, cmd commands.AddElementCommand) (*ElementMutationResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	collageRef, err := valueobjects.NewRefFromString(cmd.CollageRef)
	if err != nil || !collageRef.IsDurable() {
		return nil, pkgerrors.NewValidationError("collage ref is not durable")
	}

	doc, err := h.store.Fetch(ctx, collageRef)
	if err != nil {
		return nil, err
	}

	collageThing, ok := doc.Thing(collageRef)
	if !ok {
		return nil, pkgerrors.NewNotFoundError("collage")
	}
	collage, err := entities.CollageFromThing(collageThing)
	if err != nil {
		return nil, err
	}

	if err := requireEditable(collage, cmd.WebID); err != nil {
		return nil, err
	}

	element, err := entities.NewElement(cmd.ImageURL)
	if err != nil {
		return nil, err
	}
	localRef := element.Ref()

	doc.SetThing(element.Thing())
	collage.AddElementRef(localRef)
	doc.SetThing(collage.Thing())

	result, err := h.mutator.Apply(ctx, doc)
	if err != nil {
		return nil, err
	}
	if !result.Saved() {
		return &ElementMutationResult{Status: StatusRolledBack}, nil
	}

	saved := reloadElement(result.Document, localRef)
	if saved == nil {
		return nil, pkgerrors.NewInternalError("saved document lost the new element", nil)
	}

	h.logger.Info("element added",
		zap.String("collage", cmd.CollageRef),
		zap.String("element", saved.Ref().String()),
	)

	return &ElementMutationResult{Status: StatusSaved, Element: saved}, nil
}
