package commands

import "errors"

// InitAppCommand initializes a user's app: builds the App entity, saves its
// document, then ensures the image upload container exists. Re-initialization
// of an existing app is rejected.
type InitAppCommand struct {
	WebID      string
	StorageURL string
}

// Validate validates the InitAppCommand
func (c InitAppCommand) Validate() error {
	if c.WebID == "" {
		return errors.New("webId is required")
	}
	if c.StorageURL == "" {
		return errors.New("storage URL is required")
	}
	return nil
}

// CreateCollageCommand creates a collage inside the user's app document,
// with the caller as its immutable creator
type CreateCollageCommand struct {
	WebID              string
	StorageURL         string
	BackgroundImageURL string
}

// Validate validates the CreateCollageCommand
func (c CreateCollageCommand) Validate() error {
	if c.WebID == "" {
		return errors.New("webId is required")
	}
	if c.StorageURL == "" {
		return errors.New("storage URL is required")
	}
	if c.BackgroundImageURL == "" {
		return errors.New("backgroundImageUrl is required")
	}
	return nil
}
