package handlers

import (
	"context"

	"go.uber.org/zap"

	"hypey-backend/application/commands"
	"hypey-backend/application/ports"
	"hypey-backend/application/services"
	pkgerrors "hypey-backend/pkg/errors"
)

// SetElementLinkHandler sets or clears an element's outbound link
type SetElementLinkHandler struct {
	store   ports.DocumentStore
	mutator *services.Mutator
	logger  *zap.Logger
}

// NewSetElementLinkHandler creates a new set element link handler
func NewSetElementLinkHandler(store ports.DocumentStore, mutator *services.Mutator, logger *zap.Logger) *SetElementLinkHandler {
	return &SetElementLinkHandler{store: store, mutator: mutator, logger: logger}
}

// Handle executes the set element link command. Submitting an empty value
// clears the link. Writing the value already stored changes nothing and does
// not touch the store.
func (h *SetElementLinkHandler) Handle(ctx context.Context, cmd commands.SetElementLinkCommand) (*ElementMutationResult, error) {
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

	current, _ := ec.element.LinkTarget()
	if current == cmd.URL {
		return &ElementMutationResult{Status: StatusNoop, Element: ec.element}, nil
	}

	ec.element.SetLink(cmd.URL)
	ec.doc.SetThing(ec.element.Thing())

	result, err := h.mutator.Apply(ctx, ec.doc)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("element link updated",
		zap.String("element", cmd.ElementRef),
		zap.Bool("cleared", cmd.URL == ""),
		zap.String("outcome", string(result.Outcome)),
	)

	return &ElementMutationResult{
		Status:  statusOf(result),
		Element: reloadElement(result.Document, ec.ref),
	}, nil
}
