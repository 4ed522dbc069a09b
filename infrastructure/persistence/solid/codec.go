package solid

import (
	"encoding/json"
	"fmt"

	"hypey-backend/domain/core/valueobjects"
	"hypey-backend/domain/document"
)

// Documents travel as expanded JSON-LD: an array of node objects, each with
// an @id and predicate keys mapping to arrays of {"@id": url} references or
// {"@value": literal} literals.

// MarshalDocument serializes a document to expanded JSON-LD
func MarshalDocument(doc *document.Document) ([]byte, error) {
	nodes := make([]map[string]interface{}, 0, len(doc.Things()))
	for _, t := range doc.Things() {
		node := map[string]interface{}{
			"@id": t.Ref().String(),
		}
		for _, pred := range t.Predicates() {
			objs := make([]map[string]interface{}, 0)
			for _, v := range t.Values(pred) {
				switch v.Kind {
				case document.KindURL:
					objs = append(objs, map[string]interface{}{"@id": v.Str})
				case document.KindDecimal:
					objs = append(objs, map[string]interface{}{"@value": v.Num})
				default:
					objs = append(objs, map[string]interface{}{"@value": v.Str})
				}
			}
			node[pred] = objs
		}
		nodes = append(nodes, node)
	}
	return json.Marshal(nodes)
}

// UnmarshalDocument parses expanded JSON-LD into a document addressed at
// docURL. Accepts a bare array or an object with an @graph key.
func UnmarshalDocument(docURL string, data []byte) (*document.Document, error) {
	var nodes []map[string]json.RawMessage

	if err := json.Unmarshal(data, &nodes); err != nil {
		var wrapper struct {
			Graph []map[string]json.RawMessage `json:"@graph"`
		}
		if werr := json.Unmarshal(data, &wrapper); werr != nil {
			return nil, fmt.Errorf("parse document: %w", err)
		}
		nodes = wrapper.Graph
	}

	doc := document.NewDocument(docURL)
	for _, node := range nodes {
		var id string
		if raw, ok := node["@id"]; ok {
			if err := json.Unmarshal(raw, &id); err != nil {
				return nil, fmt.Errorf("parse @id: %w", err)
			}
		}
		if id == "" {
			continue
		}
		ref, err := valueobjects.NewRefFromString(id)
		if err != nil {
			continue
		}

		thing := document.NewThing(ref)
		for key, raw := range node {
			if key == "@id" {
				continue
			}
			values, err := parseValues(raw)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", key, err)
			}
			for _, v := range values {
				thing.AddValue(key, v)
			}
		}
		doc.SetThing(thing)
	}
	return doc, nil
}

func parseValues(raw json.RawMessage) ([]document.Value, error) {
	var objs []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &objs); err != nil {
		// Single object form
		var obj map[string]json.RawMessage
		if oerr := json.Unmarshal(raw, &obj); oerr != nil {
			return nil, err
		}
		objs = []map[string]json.RawMessage{obj}
	}

	values := make([]document.Value, 0, len(objs))
	for _, obj := range objs {
		if raw, ok := obj["@id"]; ok {
			var url string
			if err := json.Unmarshal(raw, &url); err != nil {
				return nil, err
			}
			values = append(values, document.URLValue(url))
			continue
		}
		if raw, ok := obj["@value"]; ok {
			var num float64
			if err := json.Unmarshal(raw, &num); err == nil {
				values = append(values, document.DecimalValue(num))
				continue
			}
			var str string
			if err := json.Unmarshal(raw, &str); err != nil {
				return nil, err
			}
			values = append(values, document.StringValue(str))
		}
	}
	return values, nil
}
