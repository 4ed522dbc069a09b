package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	cmdbus "hypey-backend/application/commands/bus"
	querybus "hypey-backend/application/queries/bus"

	"hypey-backend/application/commands"
	cmdhandlers "hypey-backend/application/commands/handlers"
	"hypey-backend/application/queries"
	"hypey-backend/pkg/auth"
	"hypey-backend/pkg/common"
	"hypey-backend/pkg/utils"
)

// ElementHandler handles collage-content HTTP requests: reading a collage
// and mutating its elements. Pixel coordinates only ever arrive as gesture
// inputs; everything stored and returned is percentages.
type ElementHandler struct {
	commandBus *cmdbus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewElementHandler creates a new element handler
func NewElementHandler(commandBus *cmdbus.CommandBus, queryBus *querybus.QueryBus, logger *zap.Logger) *ElementHandler {
	return &ElementHandler{commandBus: commandBus, queryBus: queryBus, logger: logger}
}

// AddElementRequest is the request body for adding an element
type AddElementRequest struct {
	ImageURL string `json:"imageUrl" validate:"required,url"`
}

// MoveElementRequest is the request body for a drag-end gesture
type MoveElementRequest struct {
	DropX     float64 `json:"dropX"`
	DropY     float64 `json:"dropY"`
	BoxWidth  float64 `json:"boxWidth"`
	BoxHeight float64 `json:"boxHeight"`
}

// ResizeElementRequest is the request body for a resize-end gesture
type ResizeElementRequest struct {
	PixelDeltaX float64 `json:"pixelDeltaX"`
	BoxWidth    float64 `json:"boxWidth"`
}

// SetLinkRequest is the request body for setting an element link. An empty
// URL clears the link.
type SetLinkRequest struct {
	URL string `json:"url" validate:"omitempty,url"`
}

// GetCollage handles GET /collages/{ref}
func (h *ElementHandler) GetCollage(w http.ResponseWriter, r *http.Request) {
	ref, ok := pathRef(w, r)
	if !ok {
		return
	}
	principal, _ := auth.PrincipalFromContext(r.Context())

	result, err := h.queryBus.Ask(r.Context(), queries.GetCollageQuery{
		WebID:      principal.WebID,
		CollageRef: ref,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// AddElement handles POST /collages/{ref}/elements
func (h *ElementHandler) AddElement(w http.ResponseWriter, r *http.Request) {
	ref, ok := pathRef(w, r)
	if !ok {
		return
	}
	principal, _ := auth.PrincipalFromContext(r.Context())

	var req AddElementRequest
	if err := common.ParseJSONBody(r, &req, 1<<16); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.AddElementCommand{
		WebID:      principal.WebID,
		CollageRef: ref,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondMutation(w, result.(*cmdhandlers.ElementMutationResult), http.StatusCreated)
}

// MoveElement handles POST /elements/{ref}/move
func (h *ElementHandler) MoveElement(w http.ResponseWriter, r *http.Request) {
	ref, ok := pathRef(w, r)
	if !ok {
		return
	}
	principal, _ := auth.PrincipalFromContext(r.Context())

	var req MoveElementRequest
	if err := common.ParseJSONBody(r, &req, 1<<16); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.MoveElementCommand{
		WebID:      principal.WebID,
		ElementRef: ref,
		DropX:      req.DropX,
		DropY:      req.DropY,
		BoxWidth:   req.BoxWidth,
		BoxHeight:  req.BoxHeight,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondMutation(w, result.(*cmdhandlers.ElementMutationResult), http.StatusOK)
}

// ResizeElement handles POST /elements/{ref}/resize
func (h *ElementHandler) ResizeElement(w http.ResponseWriter, r *http.Request) {
	ref, ok := pathRef(w, r)
	if !ok {
		return
	}
	principal, _ := auth.PrincipalFromContext(r.Context())

	var req ResizeElementRequest
	if err := common.ParseJSONBody(r, &req, 1<<16); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.ResizeElementCommand{
		WebID:       principal.WebID,
		ElementRef:  ref,
		PixelDeltaX: req.PixelDeltaX,
		BoxWidth:    req.BoxWidth,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondMutation(w, result.(*cmdhandlers.ElementMutationResult), http.StatusOK)
}

// SetLink handles PUT /elements/{ref}/link
func (h *ElementHandler) SetLink(w http.ResponseWriter, r *http.Request) {
	ref, ok := pathRef(w, r)
	if !ok {
		return
	}
	principal, _ := auth.PrincipalFromContext(r.Context())

	var req SetLinkRequest
	if err := common.ParseJSONBody(r, &req, 1<<16); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.SetElementLinkCommand{
		WebID:      principal.WebID,
		ElementRef: ref,
		URL:        req.URL,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondMutation(w, result.(*cmdhandlers.ElementMutationResult), http.StatusOK)
}

// DeleteElement handles DELETE /elements/{ref}?confirm=true. The confirm
// parameter is the explicit user confirmation; without it the delete is a
// no-op.
func (h *ElementHandler) DeleteElement(w http.ResponseWriter, r *http.Request) {
	ref, ok := pathRef(w, r)
	if !ok {
		return
	}
	principal, _ := auth.PrincipalFromContext(r.Context())

	confirmed := r.URL.Query().Get("confirm") == "true"

	result, err := h.commandBus.Send(r.Context(), commands.DeleteElementCommand{
		WebID:      principal.WebID,
		ElementRef: ref,
		Confirmed:  confirmed,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondMutation(w, result.(*cmdhandlers.ElementMutationResult), http.StatusOK)
}

func pathRef(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "ref")
	ref, err := url.QueryUnescape(raw)
	if err != nil || ref == "" {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid ref")
		return "", false
	}
	return ref, true
}

func respondMutation(w http.ResponseWriter, result *cmdhandlers.ElementMutationResult, okStatus int) {
	body := map[string]interface{}{
		"status": result.Status,
	}
	if result.Element != nil {
		placement := result.Element.Placement()
		elementBody := map[string]interface{}{
			"id":       result.Element.Ref().String(),
			"imageUrl": result.Element.ImageURL(),
			"x":        placement.X(),
			"y":        placement.Y(),
			"width":    placement.Width(),
		}
		if link, ok := result.Element.LinkTarget(); ok {
			elementBody["linkTarget"] = link
		}
		body["element"] = elementBody
	}

	status := okStatus
	if result.Status != cmdhandlers.StatusSaved {
		status = http.StatusOK
	}
	common.RespondJSON(w, status, body)
}
