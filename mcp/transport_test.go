package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loopwork-ai/hello-mcp/jsonrpc"
)

type mockHandler struct {
	handleFunc func(context.Context, jsonrpc.Request) jsonrpc.Response
}

func (m *mockHandler) Handle(ctx context.Context, req jsonrpc.Request) jsonrpc.Response {
	return m.handleFunc(ctx, req)
}

func TestTransport_Run(t *testing.T) {
	echo := func(ctx context.Context, req jsonrpc.Request) jsonrpc.Response {
		return jsonrpc.NewResponse(req.Id, "ok", nil)
	}

	tests := []struct {
		name        string
		input       string
		handleFunc  func(context.Context, jsonrpc.Request) jsonrpc.Response
		expectedOut string
	}{
		{
			name:       "successful request",
			input:      `{"jsonrpc": "2.0", "method": "tools/list", "id": 1}`,
			handleFunc: echo,
			expectedOut: `{"jsonrpc":"2.0","result":"ok","id":1}
`,
		},
		{
			name:       "multiple requests",
			input:      "{\"jsonrpc\": \"2.0\", \"method\": \"ping\", \"id\": 1}\n{\"jsonrpc\": \"2.0\", \"method\": \"ping\", \"id\": 2}",
			handleFunc: echo,
			expectedOut: `{"jsonrpc":"2.0","result":"ok","id":1}
{"jsonrpc":"2.0","result":"ok","id":2}
`,
		},
		{
			name:       "notification gets no reply",
			input:      `{"jsonrpc": "2.0", "method": "notifications/initialized"}`,
			handleFunc: echo,
		},
		{
			name:       "blank lines are skipped",
			input:      "\n\n{\"jsonrpc\": \"2.0\", \"method\": \"ping\", \"id\": 3}\n",
			handleFunc: echo,
			expectedOut: `{"jsonrpc":"2.0","result":"ok","id":3}
`,
		},
		{
			name:       "empty input",
			input:      "",
			handleFunc: echo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &mockHandler{handleFunc: tt.handleFunc}

			input := tt.input
			if input != "" && !strings.HasSuffix(input, "\n") {
				input += "\n"
			}

			in := strings.NewReader(input)
			out := &bytes.Buffer{}
			errOut := &bytes.Buffer{}

			transport := NewStdioTransport(in, out, errOut)
			err := transport.Run(context.Background(), handler)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedOut, out.String())
			assert.Empty(t, errOut.String())
		})
	}
}

func TestTransport_ParseError(t *testing.T) {
	handler := &mockHandler{
		handleFunc: func(ctx context.Context, req jsonrpc.Request) jsonrpc.Response {
			t.Fatal("handler should not be called for unparsable input")
			return jsonrpc.Response{}
		},
	}

	in := strings.NewReader("{\"jsonrpc\": \"2.0\" method: invalid}\n")
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	transport := NewStdioTransport(in, out, errOut)
	require.NoError(t, transport.Run(context.Background(), handler))

	var response jsonrpc.Response
	require.NoError(t, json.Unmarshal(out.Bytes(), &response))
	require.NotNil(t, response.Error)
	assert.Equal(t, jsonrpc.ErrParse, response.Error.Code)
	assert.Equal(t, "Parse error", response.Error.Message)
	// Unparsable requests carry no usable id, so the response id falls back to 0
	assert.Equal(t, 0, response.ID.Value())
}

func TestTransport_ContextCancellation(t *testing.T) {
	handler := &mockHandler{
		handleFunc: func(ctx context.Context, req jsonrpc.Request) jsonrpc.Response {
			return jsonrpc.NewResponse(req.Id, "ok", nil)
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transport := NewStdioTransport(strings.NewReader(`{"jsonrpc": "2.0", "method": "ping", "id": 1}`+"\n"), &bytes.Buffer{}, &bytes.Buffer{})
	err := transport.Run(ctx, handler)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTransport_Integration(t *testing.T) {
	provider := &fakeProvider{
		tools: []Tool{{Name: "say_hello", Description: "Says hello to someone"}},
	}
	server, err := NewServer(WithToolProvider(provider))
	require.NoError(t, err)

	input := strings.Join([]string{
		`{"jsonrpc": "2.0", "method": "initialize", "params": {}, "id": 1}`,
		`{"jsonrpc": "2.0", "method": "notifications/initialized"}`,
		`{"jsonrpc": "2.0", "method": "tools/list", "id": 2}`,
		`{"jsonrpc": "2.0", "method": "tools/call", "params": {"name": "say_hello", "arguments": {"name": "Ada"}}, "id": 3}`,
		`{"jsonrpc": "2.0", "method": "tools/call", "params": {"name": "unknown_tool", "arguments": {}}, "id": 4}`,
	}, "\n") + "\n"

	in := strings.NewReader(input)
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	transport := NewStdioTransport(in, out, errOut)
	require.NoError(t, transport.Run(context.Background(), server))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4) // the notification produced no response

	var initialize struct {
		Result InitializeResponse `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &initialize))
	assert.Equal(t, Version, initialize.Result.ProtocolVersion)
	assert.Equal(t, "hello-world-mcp", initialize.Result.ServerInfo.Name)

	var list struct {
		Result ToolsListResponse `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &list))
	require.Len(t, list.Result.Tools, 1)
	assert.Equal(t, "say_hello", list.Result.Tools[0].Name)

	var call struct {
		Result ToolCallResponse `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &call))
	require.Len(t, call.Result.Content, 1)
	assert.Equal(t, "Hello, Ada! This is your MCP server speaking.", call.Result.Content[0].Text)

	var failure jsonrpc.Response
	require.NoError(t, json.Unmarshal([]byte(lines[3]), &failure))
	require.NotNil(t, failure.Error)
	assert.Equal(t, jsonrpc.ErrInvalidParams, failure.Error.Code)
	assert.Equal(t, "unknown tool: unknown_tool", failure.Error.Data)
}
