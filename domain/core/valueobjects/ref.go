package valueobjects

import (
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Ref is a value object representing an entity identity token.
//
// Two shapes exist. A *local* token is a bare fragment ("#<uuid>") minted when
// an entity is built in memory; it is not resolvable over the network. A
// *durable* ref is an absolute URL assigned by the store once the entity's
// owning document has been saved. Code that renders or dereferences a set of
// child refs must filter with IsDurable first — a local token must never be
// fetched.
type Ref struct {
	value string
}

// NewLocalRef mints a fresh local token for a not-yet-persisted entity
func NewLocalRef() Ref {
	return Ref{value: "#" + uuid.New().String()}
}

// NewRefFromString creates a Ref from an existing token
func NewRefFromString(s string) (Ref, error) {
	if s == "" {
		return Ref{}, errors.New("ref cannot be empty")
	}
	return Ref{value: s}, nil
}

// String returns the token as a string
func (r Ref) String() string {
	return r.value
}

// IsZero checks if the Ref is the zero value
func (r Ref) IsZero() bool {
	return r.value == ""
}

// Equals checks if two Refs are equal
func (r Ref) Equals(other Ref) bool {
	return r.value == other.value
}

// IsLocal reports whether the ref is a bare-fragment placeholder
func (r Ref) IsLocal() bool {
	return strings.HasPrefix(r.value, "#")
}

// IsDurable reports whether the ref parses as an absolute, resolvable
// locator: an http(s) URL with a host. Everything else — local tokens,
// relative paths, malformed strings — is not durable.
func (r Ref) IsDurable() bool {
	if r.value == "" || r.IsLocal() {
		return false
	}
	u, err := url.Parse(r.value)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// DocumentURL returns the URL of the document containing the entity: the
// ref with its fragment stripped. Only meaningful for durable refs.
func (r Ref) DocumentURL() (string, error) {
	if !r.IsDurable() {
		return "", errors.New("ref is not durable")
	}
	u, err := url.Parse(r.value)
	if err != nil {
		return "", err
	}
	u.Fragment = ""
	return u.String(), nil
}

// Fragment returns the fragment part of the token, without the "#"
func (r Ref) Fragment() string {
	if i := strings.Index(r.value, "#"); i >= 0 {
		return r.value[i+1:]
	}
	return ""
}

// MarshalJSON implements json.Marshaler
func (r Ref) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Ref) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("Ref must be a string")
	}
	r.value = string(data[1 : len(data)-1])
	return nil
}
