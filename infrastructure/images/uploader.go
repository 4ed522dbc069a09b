// Package images implements the image acquisition collaborator: raw image
// bytes go into the user's upload container, a durable URL comes back. The
// rest of the system only ever sees that URL.
package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"go.uber.org/zap"

	"hypey-backend/application/ports"
	"hypey-backend/pkg/auth"
	pkgerrors "hypey-backend/pkg/errors"
)

// Uploader stores images in a pod container over LDP: POST to the container
// with a slug, the Location header names the created resource.
type Uploader struct {
	client *http.Client
	logger *zap.Logger
}

var _ ports.ImageStore = (*Uploader)(nil)

// NewUploader creates an uploader
func NewUploader(client *http.Client, logger *zap.Logger) *Uploader {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Uploader{client: client, logger: logger}
}

// Upload stores the image and returns its durable URL plus sniffed metadata.
// Dimension decoding is best effort; an image the decoder does not
// understand still uploads, just without width/height.
func (u *Uploader) Upload(ctx context.Context, containerURL, name string, r io.Reader) (*ports.UploadedImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pkgerrors.NewValidationError("could not read image data")
	}
	if len(data) == 0 {
		return nil, pkgerrors.NewValidationError("image is empty")
	}

	contentType := http.DetectContentType(data)
	width, height := sniffDimensions(data)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, containerURL, bytes.NewReader(data))
	if err != nil {
		return nil, pkgerrors.NewInternalError("build upload request", err)
	}
	req.Header.Set("Content-Type", contentType)
	if name != "" {
		req.Header.Set("Slug", name)
	}
	if token, ok := auth.AccessTokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, pkgerrors.NewStoreError("image upload failed", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, pkgerrors.NewStoreError(fmt.Sprintf("image upload returned status %d", resp.StatusCode), nil)
	}

	location := resp.Header.Get("Location")
	if location == "" {
		location = containerURL + name
	}

	u.logger.Info("image uploaded",
		zap.String("url", location),
		zap.String("contentType", contentType),
		zap.Int("bytes", len(data)),
	)

	return &ports.UploadedImage{
		URL:         location,
		ContentType: contentType,
		Width:       width,
		Height:      height,
	}, nil
}

func sniffDimensions(data []byte) (width, height int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
