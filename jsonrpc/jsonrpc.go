// Package jsonrpc implements the JSON-RPC 2.0 message envelope used by the
// MCP stdio transport: requests, responses, error objects, and the
// string-or-number ID type.
package jsonrpc

import (
	"context"
	"encoding/json"
)

// Version is the JSON-RPC protocol version.
const Version = "2.0"

// Request represents a JSON-RPC request object.
type Request struct {
	Version string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	Id      interface{}     `json:"id,omitempty"`
}

// NewRequest creates a new Request object.
func NewRequest(method string, params json.RawMessage, id interface{}) Request {
	return Request{
		Version: Version,
		Method:  method,
		Params:  params,
		Id:      id,
	}
}

// IsNotification reports whether the request is a notification,
// i.e. carries no id and therefore expects no response.
func (r Request) IsNotification() bool {
	return r.Id == nil
}

// Handler handles a single JSON-RPC request and produces its response.
type Handler interface {
	Handle(ctx context.Context, request Request) Response
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, request Request) Response

// Handle calls f(ctx, request).
func (f HandlerFunc) Handle(ctx context.Context, request Request) Response {
	return f(ctx, request)
}
