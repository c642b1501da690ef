// Package toolbox implements the tool registry backing the server's
// tools/list and tools/call handlers. Listing and dispatch iterate the same
// registry, so the catalog and the dispatch table cannot drift apart.
package toolbox

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/loopwork-ai/hello-mcp/mcp"
)

// HandlerFunc executes a tool with the given arguments and returns the
// content blocks it produced. Arguments are passed through as decoded from
// the request, without validation.
type HandlerFunc func(ctx context.Context, arguments map[string]interface{}) ([]mcp.Content, error)

// Tool represents a named, schema-described callable action.
type Tool struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
	Handler     HandlerFunc
}

// Toolbox is a registry of tools keyed by name, preserving registration
// order for listing. It is immutable once the server starts serving.
type Toolbox struct {
	order []string
	tools map[string]Tool
}

var _ mcp.ToolProvider = &Toolbox{}

// New creates a Toolbox containing the given tools. Tool names must be unique.
func New(tools ...Tool) (*Toolbox, error) {
	tb := &Toolbox{
		tools: make(map[string]Tool),
	}
	for _, tool := range tools {
		if err := tb.Register(tool); err != nil {
			return nil, err
		}
	}
	return tb, nil
}

// Register adds a tool to the registry.
func (tb *Toolbox) Register(tool Tool) error {
	if tool.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if tool.Handler == nil {
		return fmt.Errorf("tool %q has no handler", tool.Name)
	}
	if _, exists := tb.tools[tool.Name]; exists {
		return fmt.Errorf("tool %q already registered", tool.Name)
	}

	tb.order = append(tb.order, tool.Name)
	tb.tools[tool.Name] = tool
	return nil
}

// Tools returns descriptors for every registered tool, in registration order.
func (tb *Toolbox) Tools() []mcp.Tool {
	descriptors := make([]mcp.Tool, 0, len(tb.order))
	for _, name := range tb.order {
		tool := tb.tools[name]
		descriptors = append(descriptors, mcp.Tool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
		})
	}
	return descriptors
}

// Call invokes the named tool. Unregistered names fail with
// *mcp.UnknownToolError carrying the offending name.
func (tb *Toolbox) Call(ctx context.Context, name string, arguments map[string]interface{}) ([]mcp.Content, error) {
	tool, ok := tb.tools[name]
	if !ok {
		return nil, &mcp.UnknownToolError{Name: name}
	}
	return tool.Handler(ctx, arguments)
}
