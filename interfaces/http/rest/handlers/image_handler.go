package handlers

import (
	"net/http"

	"go.uber.org/zap"

	querybus "hypey-backend/application/queries/bus"

	"hypey-backend/application/ports"
	"hypey-backend/application/queries"
	"hypey-backend/pkg/common"
)

// ImageHandler handles image uploads into the user's upload container
type ImageHandler struct {
	images   ports.ImageStore
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewImageHandler creates a new image handler
func NewImageHandler(images ports.ImageStore, queryBus *querybus.QueryBus, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{images: images, queryBus: queryBus, logger: logger}
}

// Upload handles POST /images with a multipart "image" part. The target
// container comes from the user's app document.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
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
	app := result.(*queries.AppView)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "missing image part")
		return
	}
	defer file.Close()

	uploaded, err := h.images.Upload(r.Context(), app.ImageUploadContainer, header.Filename, file)
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, uploaded)
}
