package document

import (
	"strings"

	"hypey-backend/domain/core/valueobjects"
)

// PromoteLocalRefs rewrites every local token in the document — thing
// identities and URL property values alike — to a durable URL resolved
// against the document's own URL. Stores call this when a save lands: it is
// the moment a "#abc" placeholder becomes "https://…/app.jsonld#abc".
//
// Both sides must be rewritten together. Promoting a thing's identity while
// leaving a "#abc" string inside a hasElement property would strand a child
// reference that no read site may dereference.
func (d *Document) PromoteLocalRefs() {
	if d.url == "" {
		return
	}

	for frag, t := range d.things {
		if t.ref.IsLocal() {
			durable, err := valueobjects.NewRefFromString(d.url + "#" + frag)
			if err == nil {
				t.ref = durable
			}
		}
		for pred, values := range t.props {
			for i, v := range values {
				if v.Kind == KindURL && strings.HasPrefix(v.Str, "#") {
					values[i] = URLValue(d.url + v.Str)
				}
			}
			t.props[pred] = values
		}
	}
}
