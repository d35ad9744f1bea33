package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON emits entities in insertion order rather than Go's default
// sorted-map-key order, so repeated saves of an unchanged graph produce
// byte-stable output.
func (g *RPGraph) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"language":`)
	lang, err := json.Marshal(g.Language)
	if err != nil {
		return nil, err
	}
	buf.Write(lang)

	buf.WriteString(`,"entities":{`)
	ids := g.OrderedEntityIDs()
	for i, id := range ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(g.Entities[id])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteString(`}`)

	edges, err := json.Marshal(g.Edges)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`,"edges":`)
	buf.Write(edges)

	hierarchy, err := json.Marshal(g.Hierarchy)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`,"hierarchy":`)
	buf.Write(hierarchy)

	meta, err := json.Marshal(g.Metadata)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`,"metadata":`)
	buf.Write(meta)
	buf.WriteString(`}`)

	return buf.Bytes(), nil
}

// UnmarshalJSON restores a graph, rebuilding insertion order from the
// decoded JSON object's key order.
func (g *RPGraph) UnmarshalJSON(data []byte) error {
	var raw struct {
		Language  string                     `json:"language"`
		Entities  json.RawMessage            `json:"entities"`
		Edges     []DependencyEdge           `json:"edges"`
		Hierarchy map[string]*HierarchyNode  `json:"hierarchy"`
		Metadata  Metadata                   `json:"metadata"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode graph: %w", err)
	}

	order, err := jsonObjectKeyOrder(raw.Entities)
	if err != nil {
		return fmt.Errorf("decode entity order: %w", err)
	}

	entities := make(map[string]*Entity)
	if len(raw.Entities) > 0 {
		if err := json.Unmarshal(raw.Entities, &entities); err != nil {
			return fmt.Errorf("decode entities: %w", err)
		}
	}

	g.Language = raw.Language
	g.Entities = entities
	g.Edges = raw.Edges
	if raw.Edges == nil {
		g.Edges = []DependencyEdge{}
	}
	g.Hierarchy = raw.Hierarchy
	if g.Hierarchy == nil {
		g.Hierarchy = make(map[string]*HierarchyNode)
	}
	g.Metadata = raw.Metadata
	g.order = order
	return nil
}

// jsonObjectKeyOrder returns the top-level keys of a JSON object in the
// order they appear in the source bytes.
func jsonObjectKeyOrder(data json.RawMessage) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object")
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key")
		}
		keys = append(keys, key)

		var discard json.RawMessage
		if err := dec.Decode(&discard); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
