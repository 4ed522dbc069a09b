package document

// RDF vocabulary used by hypey documents. Every entity attribute is a
// predicate URL in the hype namespace; entity kinds are typed with rdf:type.
const (
	RDFType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

	hypePrefix = "https://vocab.mysilio.com/alpha/hype#"

	// Entity kinds
	TypeApp     = hypePrefix + "App"
	TypeCollage = hypePrefix + "Collage"
	TypeElement = hypePrefix + "Element"

	// App attributes
	PredImageUploadContainer = hypePrefix + "imageUploadContainer"
	PredHasCollages          = hypePrefix + "hasCollages"

	// Collage attributes
	PredBackgroundImageURL = hypePrefix + "backgroundImageUrl"
	PredCreator            = hypePrefix + "creator"
	PredHasElement         = hypePrefix + "hasElement"

	// Element attributes
	PredImageURL     = hypePrefix + "imageUrl"
	PredElementX     = hypePrefix + "elementX"
	PredElementY     = hypePrefix + "elementY"
	PredElementWidth = hypePrefix + "elementWidth"
	PredElementLink  = hypePrefix + "elementLink"
)

// AppFragment is the well-known fragment of the singleton App thing inside a
// user's app document
const AppFragment = "app"

// AppResourceName is the name of the per-user app document inside the hypey
// container
const AppResourceName = "app.jsonld"
