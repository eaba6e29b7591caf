package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestSessionSnapshotSchema_ValidJSON(t *testing.T) {
	var v interface{}
	err := json.Unmarshal([]byte(SessionSnapshot), &v)
	require.NoError(t, err, "embedded schema should be valid JSON")
}

func TestSessionSnapshotSchema_Compiles(t *testing.T) {
	_, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(SessionSnapshot))
	require.NoError(t, err, "embedded schema should compile as a JSON Schema")
}

func TestSessionSnapshotSchema_RequiredFields(t *testing.T) {
	var schema struct {
		Required []string `json:"required"`
	}
	require.NoError(t, json.Unmarshal([]byte(SessionSnapshot), &schema))

	assert.ElementsMatch(t,
		[]string{"userId", "currentStep", "completedSteps", "formData"},
		schema.Required,
		"snapshot ownership and position must be mandatory")
}

func TestSessionSnapshotSchema_ValidatesDocuments(t *testing.T) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(SessionSnapshot))
	require.NoError(t, err)

	valid := `{"userId":"8f14e45f-ceea-4a7a-9c5d-3b1f0a2d6c01","currentStep":2,"completedSteps":[0,1],"formData":{"identity":{"fullName":"Ada"}},"lastSavedAt":"2025-06-01T12:00:00Z"}`
	result, err := compiled.Validate(gojsonschema.NewStringLoader(valid))
	require.NoError(t, err)
	assert.True(t, result.Valid(), "well-formed snapshot should validate: %v", result.Errors())

	invalid := `{"userId":"8f14e45f-ceea-4a7a-9c5d-3b1f0a2d6c01","currentStep":12,"completedSteps":[0],"formData":{}}`
	result, err = compiled.Validate(gojsonschema.NewStringLoader(invalid))
	require.NoError(t, err)
	assert.False(t, result.Valid(), "out-of-range step should be rejected")
}
