package maps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// ObjectRefs is the set of object IDs an event concerns. In catalog files
// it may be written either as a single string or as a list of strings.
type ObjectRefs []string

// Contains reports whether id is one of the references.
func (r ObjectRefs) Contains(id string) bool {
	return id != "" && slices.Contains(r, id)
}

// UnmarshalJSON accepts "id", ["id", ...] or null.
func (r *ObjectRefs) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = nil
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = normalizeRefs([]string{id})
		return nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("objectId must be a string or a list of strings: %w", err)
	}
	*r = normalizeRefs(ids)
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (r *ObjectRefs) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*r = nil
			return nil
		}
		*r = normalizeRefs([]string{node.Value})
		return nil
	case yaml.SequenceNode:
		var ids []string
		if err := node.Decode(&ids); err != nil {
			return err
		}
		*r = normalizeRefs(ids)
		return nil
	default:
		return fmt.Errorf("line %d: objectId must be a string or a list of strings", node.Line)
	}
}

// normalizeRefs drops empty IDs so an empty string means "unanchored".
func normalizeRefs(ids []string) ObjectRefs {
	var out ObjectRefs
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}
