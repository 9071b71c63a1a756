package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"required": ["equipment"],
	"properties": {
		"equipment": {
			"type": "object",
			"required": ["panelProductId", "panelCount", "inverterProductId"],
			"properties": {
				"panelProductId": {"type": "string", "minLength": 1},
				"panelCount": {"type": "integer", "minimum": 1, "maximum": 200},
				"inverterProductId": {"type": "string", "minLength": 1}
			}
		}
	}
}`

func TestValidateBytes_ValidPayload(t *testing.T) {
	schema := MustCompile(testSchema)

	result := schema.ValidateBytes([]byte(`{
		"equipment": {
			"panelProductId": "panel-440",
			"panelCount": 15,
			"inverterProductId": "inv-5kw"
		}
	}`))

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateBytes_MissingRequiredField(t *testing.T) {
	schema := MustCompile(testSchema)

	result := schema.ValidateBytes([]byte(`{"equipment": {"panelCount": 15}}`))

	require.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
	assert.NotEmpty(t, result.GetErrorMessages())
}

func TestValidateBytes_OutOfRangeValue(t *testing.T) {
	schema := MustCompile(testSchema)

	result := schema.ValidateBytes([]byte(`{
		"equipment": {
			"panelProductId": "panel-440",
			"panelCount": 500,
			"inverterProductId": "inv-5kw"
		}
	}`))

	require.False(t, result.Valid)
	assert.Equal(t, "equipment.panelCount", result.Errors[0].Field)
}

func TestValidateBytes_MalformedJSON(t *testing.T) {
	schema := MustCompile(testSchema)

	result := schema.ValidateBytes([]byte(`{not json`))

	require.False(t, result.Valid)
	assert.Equal(t, "MALFORMED_JSON", result.Errors[0].Code)
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("jo@example.com"))
	assert.False(t, ValidateEmail("not-an-email"))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+61400000000"))
	assert.False(t, ValidatePhone("abc"))
}
