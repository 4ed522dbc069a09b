package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	cmdbus "hypey-backend/application/commands/bus"
	querybus "hypey-backend/application/queries/bus"

	"hypey-backend/application/commands"
	cmdhandlers "hypey-backend/application/commands/handlers"
	"hypey-backend/application/queries"
	"hypey-backend/domain/core/entities"
	"hypey-backend/pkg/auth"
	"hypey-backend/pkg/common"
	pkgerrors "hypey-backend/pkg/errors"
	"hypey-backend/pkg/utils"
)

// AppHandler handles app-level HTTP requests
type AppHandler struct {
	commandBus *cmdbus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewAppHandler creates a new app handler
func NewAppHandler(commandBus *cmdbus.CommandBus, queryBus *querybus.QueryBus, logger *zap.Logger) *AppHandler {
	return &AppHandler{commandBus: commandBus, queryBus: queryBus, logger: logger}
}

// CreateCollageRequest is the request body for creating a collage
type CreateCollageRequest struct {
	BackgroundImageURL string `json:"backgroundImageUrl" validate:"required,url"`
}

// InitApp handles POST /app/init
func (h *AppHandler) InitApp(w http.ResponseWriter, r *http.Request) {
	principal, ok := requireStorage(w, r)
	if !ok {
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.InitAppCommand{
		WebID:      principal.WebID,
		StorageURL: principal.Storage,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}

	app := result.(*entities.App)
	common.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"ref":                  app.Ref().String(),
		"imageUploadContainer": app.ImageUploadContainer(),
	})
}

// GetApp handles GET /app
func (h *AppHandler) GetApp(w http.ResponseWriter, r *http.Request) {
	principal, ok := requireStorage(w, r)
	if !ok {
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetAppQuery{
		WebID:      principal.WebID,
		StorageURL: principal.Storage,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// ListCollages handles GET /collages
func (h *AppHandler) ListCollages(w http.ResponseWriter, r *http.Request) {
	principal, ok := requireStorage(w, r)
	if !ok {
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListCollagesQuery{
		WebID:      principal.WebID,
		StorageURL: principal.Storage,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// CreateCollage handles POST /collages
func (h *AppHandler) CreateCollage(w http.ResponseWriter, r *http.Request) {
	principal, ok := requireStorage(w, r)
	if !ok {
		return
	}

	var req CreateCollageRequest
	if err := common.ParseJSONBody(r, &req, 1<<16); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.CreateCollageCommand{
		WebID:              principal.WebID,
		StorageURL:         principal.Storage,
		BackgroundImageURL: req.BackgroundImageURL,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}

	created := result.(*cmdhandlers.CreateCollageResult)
	if created.Status != cmdhandlers.StatusSaved {
		common.RespondJSON(w, http.StatusConflict, map[string]interface{}{
			"status": created.Status,
		})
		return
	}
	common.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":             created.Status,
		"ref":                created.Collage.Ref().String(),
		"backgroundImageUrl": created.Collage.BackgroundImageURL(),
		"creator":            created.Collage.Creator(),
	})
}

// requireStorage pulls the principal off the context and insists on a known
// storage root; without one no document can be addressed
func requireStorage(w http.ResponseWriter, r *http.Request) (auth.Principal, bool) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "no session")
		return auth.Principal{}, false
	}
	if principal.Storage == "" {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "session has no storage root")
		return auth.Principal{}, false
	}
	return principal, true
}

// respondAppError maps an application error onto the HTTP surface
func respondAppError(w http.ResponseWriter, err error) {
	var appErr *pkgerrors.AppError
	if errors.As(err, &appErr) {
		common.RespondError(w, appErr.HTTPStatus, string(appErr.Type), appErr.Message)
		return
	}
	common.RespondError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
}
