package handlers

import (
	"context"

	"go.uber.org/zap"

	"hypey-backend/application/commands"
	"hypey-backend/application/ports"
	"hypey-backend/application/services"
	pkgerrors "hypey-backend/pkg/errors"
)

// DeleteElementHandler removes an element from its collage. Removal is two
// steps in one save: the reference leaves the collage's element set AND the
// element node leaves the document. Doing only one of the two leaves either
// a dangling reference or an orphaned node.
type DeleteElementHandler struct {
	store   ports.DocumentStore
	mutator *services.Mutator
	logger  *zap.Logger
}

// NewDeleteElementHandler creates a new delete element handler
func NewDeleteElementHandler(store ports.DocumentStore, mutator *services.Mutator, logger *zap.Logger) *DeleteElementHandler {
	return &DeleteElementHandler{store: store, mutator: mutator, logger: logger}
}

// Handle executes the delete element command. Deletion requires explicit
// confirmation; a declined confirmation is a no-op.
func (h *DeleteElementHandler) Handle(ctx context.Context, cmd commands.DeleteElementCommand) (*ElementMutationResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	if !cmd.Confirmed {
		return &ElementMutationResult{Status: StatusNoop}, nil
	}

	ec, err := loadElement(ctx, h.store, cmd.ElementRef)
	if err != nil {
		return nil, err
	}
	if err := requireEditable(ec.collage, cmd.WebID); err != nil {
		return nil, err
	}

	if err := ec.collage.RemoveElementRef(ec.ref); err != nil {
		return nil, err
	}
	ec.doc.SetThing(ec.collage.Thing())
	ec.doc.RemoveThing(ec.ref)

	result, err := h.mutator.Apply(ctx, ec.doc)
	if err != nil {
		return nil, err
	}

	h.logger.Info("element deleted",
		zap.String("element", cmd.ElementRef),
		zap.String("outcome", string(result.Outcome)),
	)

	return &ElementMutationResult{
		Status:  statusOf(result),
		Element: reloadElement(result.Document, ec.ref),
	}, nil
}
