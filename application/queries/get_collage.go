package queries

import "errors"

// GetCollageQuery asks for a collage's read model
type GetCollageQuery struct {
	WebID      string
	CollageRef string
}

// Validate validates the GetCollageQuery
func (q GetCollageQuery) Validate() error {
	if q.CollageRef == "" {
		return errors.New("collage ref is required")
	}
	return nil
}

// CollageView is the read model crossing the rendering boundary. All
// coordinates are percentages; pixel values never appear here.
type CollageView struct {
	Ref                string        `json:"ref"`
	BackgroundImageURL string        `json:"backgroundImageUrl"`
	Creator            string        `json:"creator,omitempty"`
	Editable           bool          `json:"editable"`
	Elements           []ElementView `json:"elements"`
}

// ElementView is one rendered element with defaults applied
type ElementView struct {
	ID         string  `json:"id"`
	ImageURL   string  `json:"imageUrl"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	LinkTarget string  `json:"linkTarget,omitempty"`
}
