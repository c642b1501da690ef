package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/loopwork-ai/hello-mcp/jsonrpc"
)

// ToolProvider supplies the tool catalog and dispatches tool invocations.
// Implementations must be safe to call repeatedly with identical results
// for listing.
type ToolProvider interface {
	// Tools returns descriptors for every registered tool, in a stable order.
	Tools() []Tool

	// Call invokes the named tool with the given arguments and returns the
	// content blocks it produced. Unregistered names fail with
	// *UnknownToolError.
	Call(ctx context.Context, name string, arguments map[string]interface{}) ([]Content, error)
}

// UnknownToolError indicates a tools/call request named a tool that is not
// registered. It carries the offending name so it can be surfaced to the
// caller in the protocol-level error response.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// Server represents an MCP server that processes JSON-RPC requests
type Server struct {
	tools        ToolProvider
	info         ServerInfo
	instructions string
	disabled     map[string]bool
	logger       *slog.Logger
	sessionID    string
}

// ServerOption configures a Server
type ServerOption func(*Server) error

// WithToolProvider sets the tool provider backing tools/list and tools/call
func WithToolProvider(provider ToolProvider) ServerOption {
	return func(s *Server) error {
		if provider == nil {
			return fmt.Errorf("tool provider cannot be nil")
		}
		s.tools = provider
		return nil
	}
}

// WithServerInfo sets the name and version reported during initialization
func WithServerInfo(name, version string) ServerOption {
	return func(s *Server) error {
		if name != "" {
			s.info.Name = name
		}
		if version != "" {
			s.info.Version = version
		}
		return nil
	}
}

// WithInstructions sets optional usage instructions reported during initialization
func WithInstructions(instructions string) ServerOption {
	return func(s *Server) error {
		s.instructions = instructions
		return nil
	}
}

// WithDisabledTools hides the named tools from the catalog and rejects
// invocations of them as unknown
func WithDisabledTools(names []string) ServerOption {
	return func(s *Server) error {
		for _, name := range names {
			s.disabled[name] = true
		}
		return nil
	}
}

// WithLogger sets the logger used by the server
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) error {
		if logger != nil {
			s.logger = logger
		}
		return nil
	}
}

// NewServer creates a new MCP server instance
func NewServer(opts ...ServerOption) (*Server, error) {
	s := &Server{
		info: ServerInfo{
			Name:    "hello-world-mcp",
			Version: "dev",
		},
		disabled:  make(map[string]bool),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessionID: uuid.NewString(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.tools == nil {
		return nil, fmt.Errorf("no tool provider configured")
	}

	s.logger = s.logger.With("session", s.sessionID)

	return s, nil
}

// Handle processes a single JSON-RPC request and returns a response.
// Notifications produce a zero response, which the transport does not write.
func (s *Server) Handle(ctx context.Context, request jsonrpc.Request) jsonrpc.Response {
	s.logger.Debug("handling request", "method", request.Method)

	switch request.Method {
	case "initialize":
		return s.handleInitialize(request)
	case "notifications/initialized":
		s.logger.Info("client initialized")
		return jsonrpc.Response{}
	case "ping":
		return jsonrpc.NewResponse(request.Id, PingResponse{}, nil)
	case "tools/list":
		return s.handleToolsList(request)
	case "tools/call":
		return s.handleToolsCall(ctx, request)
	default:
		return jsonrpc.NewResponse(request.Id, nil, jsonrpc.NewError(jsonrpc.ErrMethodNotFound, nil))
	}
}

func (s *Server) handleInitialize(request jsonrpc.Request) jsonrpc.Response {
	result := InitializeResponse{
		ProtocolVersion: Version,
		Capabilities: ServerCapabilities{
			Tools: &struct {
				ListChanged bool `json:"listChanged"`
			}{ListChanged: false},
		},
		ServerInfo:   s.info,
		Instructions: s.instructions,
	}
	return jsonrpc.NewResponse(request.Id, result, nil)
}

func (s *Server) handleToolsList(request jsonrpc.Request) jsonrpc.Response {
	tools := []Tool{}
	for _, tool := range s.tools.Tools() {
		if s.disabled[tool.Name] {
			continue
		}
		tools = append(tools, tool)
	}

	return jsonrpc.NewResponse(request.Id, ToolsListResponse{Tools: tools}, nil)
}

func (s *Server) handleToolsCall(ctx context.Context, request jsonrpc.Request) jsonrpc.Response {
	var params ToolCallParams
	if err := json.Unmarshal(request.Params, &params); err != nil {
		return jsonrpc.NewResponse(request.Id, nil, jsonrpc.NewError(jsonrpc.ErrInvalidParams, err.Error()))
	}

	if s.disabled[params.Name] {
		err := &UnknownToolError{Name: params.Name}
		return jsonrpc.NewResponse(request.Id, nil, jsonrpc.NewError(jsonrpc.ErrInvalidParams, err.Error()))
	}

	content, err := s.tools.Call(ctx, params.Name, params.Arguments)
	if err != nil {
		var unknownTool *UnknownToolError
		if errors.As(err, &unknownTool) {
			s.logger.Warn("unknown tool requested", "tool", unknownTool.Name)
			return jsonrpc.NewResponse(request.Id, nil, jsonrpc.NewError(jsonrpc.ErrInvalidParams, err.Error()))
		}
		s.logger.Error("tool invocation failed", "tool", params.Name, "error", err)
		return jsonrpc.NewResponse(request.Id, nil, jsonrpc.NewError(jsonrpc.ErrInternal, err.Error()))
	}

	return jsonrpc.NewResponse(request.Id, ToolCallResponse{Content: content}, nil)
}
