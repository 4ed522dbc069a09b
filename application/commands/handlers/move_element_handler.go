package handlers

import (
	"context"

	"go.uber.org/zap"

	"hypey-backend/application/commands"
	"hypey-backend/application/ports"
	"hypey-backend/application/services"
	pkgerrors "hypey-backend/pkg/errors"
)

// MoveElementHandler commits the end of a drag gesture
type MoveElementHandler struct {
	store    ports.DocumentStore
	mutator  *services.Mutator
	gestures *services.GestureTracker
	logger   *zap.Logger
}

// NewMoveElementHandler creates a new move element handler
func NewMoveElementHandler(
	store ports.DocumentStore,
	mutator *services.Mutator,
	gestures *services.GestureTracker,
	logger *zap.Logger,
) *MoveElementHandler {
	return &MoveElementHandler{store: store, mutator: mutator, gestures: gestures, logger: logger}
}

// Handle executes the move element command
func (h *MoveElementHandler) Handle(ctx context.Context, cmd commands.MoveElementCommand) (*ElementMutationResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	ec, err := loadElement(ctx, h.store, cmd.ElementRef)
	if err != nil {
		return nil, err
	}
	if err := requireEditable(ec.collage, cmd.WebID); err != nil {
		return nil, err
	}

	if err := h.gestures.BeginDrag(ec.ref); err != nil {
		return nil, err
	}
	x, y, ok := h.gestures.EndDrag(ec.ref, cmd.DropX, cmd.DropY, cmd.BoxWidth, cmd.BoxHeight)
	if !ok {
		// Degenerate box: move silently dropped, no save attempted
		return &ElementMutationResult{Status: StatusNoop, Element: ec.element}, nil
	}

	ec.element.MoveTo(x, y)
	ec.doc.SetThing(ec.element.Thing())

	result, err := h.mutator.Apply(ctx, ec.doc)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("element moved",
		zap.String("element", cmd.ElementRef),
		zap.Float64("x", x),
		zap.Float64("y", y),
		zap.String("outcome", string(result.Outcome)),
	)

	return &ElementMutationResult{
		Status:  statusOf(result),
		Element: reloadElement(result.Document, ec.ref),
	}, nil
}
