package toolbox

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/loopwork-ai/hello-mcp/mcp"
)

// SayHello greets the person named in the arguments.
//
// The greeting target is rendered with %v, so a missing "name" argument
// produces "<nil>" rather than a validation error. That mirrors how most
// hello-world MCP servers behave and keeps invocation side-effect free.
var SayHello = Tool{
	Name:        "say_hello",
	Description: "Says hello to someone",
	InputSchema: &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name": {
				Type:        "string",
				Description: "Name of the person to greet",
			},
		},
		Required: []string{"name"},
	},
	Handler: sayHello,
}

func sayHello(ctx context.Context, arguments map[string]interface{}) ([]mcp.Content, error) {
	text := fmt.Sprintf("Hello, %v! This is your MCP server speaking.", arguments["name"])
	return []mcp.Content{mcp.NewTextContent(text)}, nil
}

// Default returns the toolbox served by hello-mcp.
func Default() *Toolbox {
	tb, err := New(SayHello)
	if err != nil {
		panic(err) // unreachable: the built-in registry has no duplicates
	}
	return tb
}
