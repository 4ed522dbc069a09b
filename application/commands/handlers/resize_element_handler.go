package handlers

import (
	"context"

	"go.uber.org/zap"

	"hypey-backend/application/commands"
	"hypey-backend/application/ports"
	"hypey-backend/application/services"
	pkgerrors "hypey-backend/pkg/errors"
)

// ResizeElementHandler commits the end of a resize gesture. The baseline is
// the element's committed width (defaulted to 10 when never set), so the
// first-ever resize has a defined starting point.
type ResizeElementHandler struct {
	store    ports.DocumentStore
	mutator  *services.Mutator
	gestures *services.GestureTracker
	logger   *zap.Logger
}

// NewResizeElementHandler creates a new resize element handler
func NewResizeElementHandler(
	store ports.DocumentStore,
	mutator *services.Mutator,
	gestures *services.GestureTracker,
	logger *zap.Logger,
) *ResizeElementHandler {
	return &ResizeElementHandler{store: store, mutator: mutator, gestures: gestures, logger: logger}
}

// Handle executes the resize element command
func (h *ResizeElementHandler) Handle(ctx context.Context, cmd commands.ResizeElementCommand) (*ElementMutationResult, error) {
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

	baseWidth := ec.element.Placement().Width()
	if err := h.gestures.BeginResize(ec.ref, baseWidth); err != nil {
		return nil, err
	}
	finalWidth, ok := h.gestures.EndResize(ec.ref, cmd.PixelDeltaX, cmd.BoxWidth)
	if !ok {
		// Degenerate result: resize discarded, prior width stands
		return &ElementMutationResult{Status: StatusNoop, Element: ec.element}, nil
	}

	if err := ec.element.ResizeTo(finalWidth); err != nil {
		return nil, err
	}
	ec.doc.SetThing(ec.element.Thing())

	result, err := h.mutator.Apply(ctx, ec.doc)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("element resized",
		zap.String("element", cmd.ElementRef),
		zap.Float64("width", finalWidth),
		zap.String("outcome", string(result.Outcome)),
	)

	return &ElementMutationResult{
		Status:  statusOf(result),
		Element: reloadElement(result.Document, ec.ref),
	}, nil
}
