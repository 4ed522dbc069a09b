package document

import (
	"strings"

	"hypey-backend/domain/core/valueobjects"
)

// Storage layout of a user's hypey data inside their pod. The app prefix
// and container shape carry over from the original deployment so existing
// data stays addressable.
const appPrefix = "hypey"

// HypeyContainerURL returns the app's container inside a user's storage root
func HypeyContainerURL(storageURL string) string {
	return ensureSlash(storageURL) + "public/" + appPrefix + "/"
}

// ImageUploadContainerURL returns where uploaded images live
func ImageUploadContainerURL(storageURL string) string {
	return HypeyContainerURL(storageURL) + "images/"
}

// AppResourceURL returns the URL of the per-user app document
func AppResourceURL(storageURL string) string {
	return HypeyContainerURL(storageURL) + AppResourceName
}

// AppRef returns the durable ref of the singleton app entity
func AppRef(storageURL string) (valueobjects.Ref, error) {
	return valueobjects.NewRefFromString(AppResourceURL(storageURL) + "#" + AppFragment)
}

func ensureSlash(url string) string {
	if strings.HasSuffix(url, "/") {
		return url
	}
	return url + "/"
}
