package maps

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestObjectRefs_JSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want ObjectRefs
	}{
		{"scalar", `{"objectId":"don-5"}`, ObjectRefs{"don-5"}},
		{"array", `{"objectId":["don-13","don-3"]}`, ObjectRefs{"don-13", "don-3"}},
		{"null", `{"objectId":null}`, nil},
		{"missing", `{}`, nil},
		{"empty string", `{"objectId":""}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Event
			require.NoError(t, json.Unmarshal([]byte(tt.in), &e))
			assert.Equal(t, tt.want, e.ObjectID)
		})
	}
}

func TestObjectRefs_JSONRejectsNumbers(t *testing.T) {
	var e Event
	assert.Error(t, json.Unmarshal([]byte(`{"objectId":42}`), &e))
}

func TestObjectRefs_YAML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want ObjectRefs
	}{
		{"scalar", "objectId: don-5\n", ObjectRefs{"don-5"}},
		{"flow sequence", "objectId: [don-13, don-3]\n", ObjectRefs{"don-13", "don-3"}},
		{"block sequence", "objectId:\n  - a\n  - b\n", ObjectRefs{"a", "b"}},
		{"null", "objectId: null\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Event
			require.NoError(t, yaml.Unmarshal([]byte(tt.in), &e))
			assert.Equal(t, tt.want, e.ObjectID)
		})
	}
}

func TestObjectRefs_YAMLRejectsMapping(t *testing.T) {
	var e Event
	assert.Error(t, yaml.Unmarshal([]byte("objectId:\n  id: a\n"), &e))
}

func TestObjectRefs_Contains(t *testing.T) {
	r := ObjectRefs{"a", "b"}
	assert.True(t, r.Contains("a"))
	assert.False(t, r.Contains("c"))
	assert.False(t, r.Contains(""))
}
