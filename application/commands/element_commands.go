package commands

import "errors"

// AddElementCommand adds a new element to a collage. Structural mutation at
// collage-document granularity: the whole document is read-modify-written.
type AddElementCommand struct {
	WebID      string
	CollageRef string
	ImageURL   string
}

// Validate validates the AddElementCommand
func (c AddElementCommand) Validate() error {
	if c.WebID == "" {
		return errors.New("webId is required")
	}
	if c.CollageRef == "" {
		return errors.New("collage ref is required")
	}
	if c.ImageURL == "" {
		return errors.New("imageUrl is required")
	}
	return nil
}

// MoveElementCommand finishes a drag gesture. Pixel inputs only; the stored
// position is always converted to percentages of the rendered box.
type MoveElementCommand struct {
	WebID      string
	ElementRef string
	DropX      float64
	DropY      float64
	BoxWidth   float64
	BoxHeight  float64
}

// Validate validates the MoveElementCommand
func (c MoveElementCommand) Validate() error {
	if c.WebID == "" {
		return errors.New("webId is required")
	}
	if c.ElementRef == "" {
		return errors.New("element ref is required")
	}
	return nil
}

// ResizeElementCommand finishes a resize gesture driven by a horizontal
// pixel delta captured from gesture start
type ResizeElementCommand struct {
	WebID       string
	ElementRef  string
	PixelDeltaX float64
	BoxWidth    float64
}

// Validate validates the ResizeElementCommand
func (c ResizeElementCommand) Validate() error {
	if c.WebID == "" {
		return errors.New("webId is required")
	}
	if c.ElementRef == "" {
		return errors.New("element ref is required")
	}
	return nil
}

// SetElementLinkCommand sets or clears an element's outbound link. An empty
// URL clears the link.
type SetElementLinkCommand struct {
	WebID      string
	ElementRef string
	URL        string
}

// Validate validates the SetElementLinkCommand
func (c SetElementLinkCommand) Validate() error {
	if c.WebID == "" {
		return errors.New("webId is required")
	}
	if c.ElementRef == "" {
		return errors.New("element ref is required")
	}
	return nil
}

// DeleteElementCommand removes an element. Deletion needs explicit user
// confirmation; an unconfirmed command is a no-op, not an error.
type DeleteElementCommand struct {
	WebID      string
	ElementRef string
	Confirmed  bool
}

// Validate validates the DeleteElementCommand
func (c DeleteElementCommand) Validate() error {
	if c.WebID == "" {
		return errors.New("webId is required")
	}
	if c.ElementRef == "" {
		return errors.New("element ref is required")
	}
	return nil
}
