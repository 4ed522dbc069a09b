package queries

import "errors"

// ListCollagesQuery asks for every collage in the user's app
type ListCollagesQuery struct {
	WebID      string
	StorageURL string
}

// Validate validates the ListCollagesQuery
func (q ListCollagesQuery) Validate() error {
	if q.StorageURL == "" {
		return errors.New("storage URL is required")
	}
	return nil
}

// CollageSummary is one row of the collage listing
type CollageSummary struct {
	Ref                string `json:"ref"`
	BackgroundImageURL string `json:"backgroundImageUrl"`
	ElementCount       int    `json:"elementCount"`
	Editable           bool   `json:"editable"`
}

// GetAppQuery asks for the user's app read model
type GetAppQuery struct {
	WebID      string
	StorageURL string
}

// Validate validates the GetAppQuery
func (q GetAppQuery) Validate() error {
	if q.StorageURL == "" {
		return errors.New("storage URL is required")
	}
	return nil
}

// AppView is the app read model
type AppView struct {
	Ref                  string   `json:"ref"`
	ImageUploadContainer string   `json:"imageUploadContainer"`
	CollageRefs          []string `json:"collageRefs"`
}
