// Package document holds the generic property-bag model of a graph document
// as the remote store sees it: a resource URL plus a set of things, each a
// bag of predicate/value pairs. Typed entities exist only above this layer;
// everything that crosses the store boundary is expressed here.
package document

import (
	"sort"

	"hypey-backend/domain/core/valueobjects"
)

// ValueKind discriminates the supported object kinds of a property value
type ValueKind int

const (
	KindURL ValueKind = iota
	KindString
	KindDecimal
)

// Value is a single property value: a URL reference, a string literal or a
// decimal literal
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
}

// URLValue creates a URL value
func URLValue(url string) Value {
	return Value{Kind: KindURL, Str: url}
}

// StringValue creates a string literal value
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// DecimalValue creates a decimal literal value
func DecimalValue(n float64) Value {
	return Value{Kind: KindDecimal, Num: n}
}

// Thing is one node in a document: an identity token plus its properties
type Thing struct {
	ref   valueobjects.Ref
	props map[string][]Value
}

// NewThing creates a thing with the given identity token
func NewThing(ref valueobjects.Ref) *Thing {
	return &Thing{ref: ref, props: make(map[string][]Value)}
}

// Ref returns the thing's identity token
func (t *Thing) Ref() valueobjects.Ref {
	return t.ref
}

// SetRef rewrites the thing's identity token. Used by stores when a save
// promotes a local token to a durable URL.
func (t *Thing) SetRef(ref valueobjects.Ref) {
	t.ref = ref
}

// GetURL returns the first URL value of a predicate
func (t *Thing) GetURL(pred string) (string, bool) {
	for _, v := range t.props[pred] {
		if v.Kind == KindURL {
			return v.Str, true
		}
	}
	return "", false
}

// GetAllURLs returns every URL value of a predicate
func (t *Thing) GetAllURLs(pred string) []string {
	var urls []string
	for _, v := range t.props[pred] {
		if v.Kind == KindURL {
			urls = append(urls, v.Str)
		}
	}
	return urls
}

// GetString returns the first string literal of a predicate
func (t *Thing) GetString(pred string) (string, bool) {
	for _, v := range t.props[pred] {
		if v.Kind == KindString {
			return v.Str, true
		}
	}
	return "", false
}

// GetDecimal returns the first decimal literal of a predicate. Absence is
// reported through ok, not an error; callers apply documented defaults.
func (t *Thing) GetDecimal(pred string) (float64, bool) {
	for _, v := range t.props[pred] {
		if v.Kind == KindDecimal {
			return v.Num, true
		}
	}
	return 0, false
}

// SetValue replaces every value of a predicate with one value
func (t *Thing) SetValue(pred string, v Value) {
	t.props[pred] = []Value{v}
}

// AddValue appends a value to a predicate, skipping exact duplicates
func (t *Thing) AddValue(pred string, v Value) {
	for _, existing := range t.props[pred] {
		if existing == v {
			return
		}
	}
	t.props[pred] = append(t.props[pred], v)
}

// RemoveValue removes a specific value from a predicate
func (t *Thing) RemoveValue(pred string, v Value) {
	values := t.props[pred]
	kept := values[:0]
	for _, existing := range values {
		if existing != v {
			kept = append(kept, existing)
		}
	}
	if len(kept) == 0 {
		delete(t.props, pred)
	} else {
		t.props[pred] = kept
	}
}

// RemoveAll removes every value of a predicate
func (t *Thing) RemoveAll(pred string) {
	delete(t.props, pred)
}

// Predicates returns the thing's predicate URLs in sorted order
func (t *Thing) Predicates() []string {
	preds := make([]string, 0, len(t.props))
	for p := range t.props {
		preds = append(preds, p)
	}
	sort.Strings(preds)
	return preds
}

// Values returns the values of a predicate
func (t *Thing) Values(pred string) []Value {
	vals := make([]Value, len(t.props[pred]))
	copy(vals, t.props[pred])
	return vals
}

// IsType reports whether the thing carries the given rdf:type
func (t *Thing) IsType(typeURL string) bool {
	for _, u := range t.GetAllURLs(RDFType) {
		if u == typeURL {
			return true
		}
	}
	return false
}

// Document is a graph-structured resource: a URL plus its things, keyed by
// fragment. A document fetched from the store is authoritative; an in-memory
// mutation of it only becomes real when the whole document is saved back.
type Document struct {
	url    string
	things map[string]*Thing
}

// NewDocument creates an empty document. The URL may be empty for a document
// that has never been saved.
func NewDocument(url string) *Document {
	return &Document{url: url, things: make(map[string]*Thing)}
}

// URL returns the document's resource URL
func (d *Document) URL() string {
	return d.url
}

// SetURL sets the document's resource URL
func (d *Document) SetURL(url string) {
	d.url = url
}

// Thing looks up a thing by identity token. Local tokens match by fragment;
// durable refs match only if they address this document.
func (d *Document) Thing(ref valueobjects.Ref) (*Thing, bool) {
	if ref.IsDurable() {
		docURL, err := ref.DocumentURL()
		if err != nil || docURL != d.url {
			return nil, false
		}
	}
	t, ok := d.things[ref.Fragment()]
	return t, ok
}

// SetThing inserts or replaces a thing, keyed by its ref's fragment
func (d *Document) SetThing(t *Thing) {
	d.things[t.Ref().Fragment()] = t
}

// RemoveThing removes the thing addressed by ref, if present
func (d *Document) RemoveThing(ref valueobjects.Ref) {
	delete(d.things, ref.Fragment())
}

// Things returns the document's things, ordered by fragment for stable
// serialization
func (d *Document) Things() []*Thing {
	frags := make([]string, 0, len(d.things))
	for f := range d.things {
		frags = append(frags, f)
	}
	sort.Strings(frags)
	things := make([]*Thing, 0, len(frags))
	for _, f := range frags {
		things = append(things, d.things[f])
	}
	return things
}

// ThingsOfType returns every thing carrying the given rdf:type
func (d *Document) ThingsOfType(typeURL string) []*Thing {
	var matched []*Thing
	for _, t := range d.Things() {
		if t.IsType(typeURL) {
			matched = append(matched, t)
		}
	}
	return matched
}

// Clone returns a deep copy of the document. The mutation protocol edits a
// clone so a failed save leaves the fetched original untouched.
func (d *Document) Clone() *Document {
	clone := NewDocument(d.url)
	for _, t := range d.Things() {
		ct := NewThing(t.Ref())
		for _, pred := range t.Predicates() {
			ct.props[pred] = t.Values(pred)
		}
		clone.SetThing(ct)
	}
	return clone
}
