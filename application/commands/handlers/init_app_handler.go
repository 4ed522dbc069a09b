package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"hypey-backend/application/commands"
	"hypey-backend/application/ports"
	"hypey-backend/domain/core/entities"
	"hypey-backend/domain/document"
	pkgerrors "hypey-backend/pkg/errors"
)

// InitAppHandler handles first-run app initialization
type InitAppHandler struct {
	store  ports.DocumentStore
	logger *zap.Logger
}

// NewInitAppHandler creates a new init app handler
func NewInitAppHandler(store ports.DocumentStore, logger *zap.Logger) *InitAppHandler {
	return &InitAppHandler{store: store, logger: logger}
}

// Handle executes the init app command. Running it against an
// already-initialized app is rejected with a conflict rather than silently
// overwriting the existing collage list.
func (h *InitAppHandler) Handle(ctx context.Context, cmd commands.InitAppCommand) (*entities.App, error) {
	if err := cmd.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	appRef, err := document.AppRef(cmd.StorageURL)
	if err != nil {
		return nil, pkgerrors.NewValidationError("invalid storage URL")
	}

	// NotFound is the expected first-run signal here
	if _, err := h.store.Fetch(ctx, appRef); err == nil {
		return nil, pkgerrors.NewConflictError("app already initialized")
	} else if !pkgerrors.IsNotFound(err) {
		return nil, err
	}

	app, err := entities.NewApp(document.ImageUploadContainerURL(cmd.StorageURL))
	if err != nil {
		return nil, err
	}

	doc := document.NewDocument(document.AppResourceURL(cmd.StorageURL))
	doc.SetThing(app.Thing())

	saved, err := h.store.Save(ctx, doc)
	if err != nil {
		return nil, pkgerrors.NewSaveFailedError("failed to save app document", err)
	}

	if err := h.store.EnsureContainer(ctx, app.ImageUploadContainer()); err != nil {
		return nil, fmt.Errorf("app saved but image container creation failed: %w", err)
	}

	appThing, ok := saved.Thing(appRef)
	if !ok {
		return nil, pkgerrors.NewInternalError("saved app document has no app entity", nil)
	}
	savedApp, err := entities.AppFromThing(appThing)
	if err != nil {
		return nil, err
	}

	h.logger.Info("app initialized",
		zap.String("webId", cmd.WebID),
		zap.String("app", savedApp.Ref().String()),
	)

	return savedApp, nil
}
