package handlers

import (
	"context"

	"go.uber.org/zap"

	"hypey-backend/application/commands"
	"hypey-backend/application/ports"
	"hypey-backend/application/services"
	"hypey-backend/domain/core/entities"
	"hypey-backend/domain/document"
	pkgerrors "hypey-backend/pkg/errors"
)

// CreateCollageResult carries the fate of a collage creation
type CreateCollageResult struct {
	Status  MutationStatus
	Collage *entities.Collage
}

// CreateCollageHandler handles collage creation inside the user's app
// document
type CreateCollageHandler struct {
	store   ports.DocumentStore
	mutator *services.Mutator
	logger  *zap.Logger
}

// NewCreateCollageHandler creates a new create collage handler
func NewCreateCollageHandler(store ports.DocumentStore, mutator *services.Mutator, logger *zap.Logger) *CreateCollageHandler {
	return &CreateCollageHandler{store: store, mutator: mutator, logger: logger}
}

// Handle executes the create collage command
func (h *CreateCollageHandler) Handle(ctx context.Context, cmd commands.CreateCollageCommand) (*CreateCollageResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	appRef, err := document.AppRef(cmd.StorageURL)
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

	collage, err := entities.NewCollage(cmd.BackgroundImageURL, cmd.WebID)
	if err != nil {
		return nil, err
	}
	localRef := collage.Ref()

	doc.SetThing(collage.Thing())
	app.AddCollageRef(localRef)
	doc.SetThing(app.Thing())

	result, err := h.mutator.Apply(ctx, doc)
	if err != nil {
		return nil, err
	}
	if !result.Saved() {
		return &CreateCollageResult{Status: StatusRolledBack}, nil
	}

	// Local-token lookup still matches by fragment after promotion
	savedThing, ok := result.Document.Thing(localRef)
	if !ok {
		return nil, pkgerrors.NewInternalError("saved document lost the new collage", nil)
	}
	savedCollage, err := entities.CollageFromThing(savedThing)
	if err != nil {
		return nil, err
	}

	h.logger.Info("collage created",
		zap.String("webId", cmd.WebID),
		zap.String("collage", savedCollage.Ref().String()),
	)

	return &CreateCollageResult{Status: StatusSaved, Collage: savedCollage}, nil
}
