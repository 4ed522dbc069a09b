package ports

import (
	"context"
	"io"

	"hypey-backend/domain/core/valueobjects"
	"hypey-backend/domain/document"
)

// DocumentStore is the contract this core requires of the remote per-user
// document store. It is consumed, never implemented by the core: read a
// whole document, modify it in memory, write the whole document back.
//
// There is no transactional isolation across a Fetch/Save pair. Two
// concurrent writers to the same document race, and the last Save to land
// wins, silently discarding the other's changes. That is an accepted
// consistency model for single-user-editing-own-content, not a bug to fix
// here.
type DocumentStore interface {
	// Fetch retrieves the document containing the entity addressed by ref.
	// A missing document is reported as a NotFound AppError, a recoverable
	// condition that drives first-run initialization.
	Fetch(ctx context.Context, ref valueobjects.Ref) (*document.Document, error)

	// Save writes the whole document back, replacing what is stored. The
	// returned document is authoritative: it carries durable refs for any
	// local-token things the input contained.
	Save(ctx context.Context, doc *document.Document) (*document.Document, error)

	// EnsureContainer idempotently creates the container at the given URL.
	// Used once per app initialization, not on the hot path.
	EnsureContainer(ctx context.Context, url string) error
}

// ImageStore is the image acquisition collaborator: given raw image bytes
// and a target container, it stores the image and returns a durable URL. The
// core treats the result as an opaque URL string.
type ImageStore interface {
	// Upload stores the image under the container with the given name hint
	// and returns its durable location plus sniffed metadata.
	Upload(ctx context.Context, containerURL, name string, r io.Reader) (*UploadedImage, error)
}

// UploadedImage describes a stored image
type UploadedImage struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}
