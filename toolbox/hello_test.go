package toolbox

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSayHelloSchemaShape(t *testing.T) {
	data, err := json.Marshal(SayHello.InputSchema)
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &schema))

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []interface{}{"name"}, schema["required"])

	properties, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	name, ok := properties["name"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "string", name["type"])
	assert.Equal(t, "Name of the person to greet", name["description"])
}

func TestSayHelloSchemaValidation(t *testing.T) {
	resolved, err := SayHello.InputSchema.Resolve(nil)
	require.NoError(t, err)

	assert.NoError(t, resolved.Validate(map[string]interface{}{"name": "Ada"}))

	// "name" is declared required, even though invocation never enforces it
	assert.Error(t, resolved.Validate(map[string]interface{}{}))

	assert.Error(t, resolved.Validate(map[string]interface{}{"name": 42}))
}
