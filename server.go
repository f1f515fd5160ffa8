package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	client "github.com/mutablelogic/go-client"
)

// MCPServer handles MCP protocol over stdio. One request is processed at a
// time; the only state shared between requests is the read-only registry.
type MCPServer struct {
	ds          Datastore
	registry    *ToolRegistry
	rowLimit    int
	initialized bool
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewMCPServer creates a server backed by the Supabase project described in
// the configuration.
func NewMCPServer(ctx context.Context, cfg *Config) (*MCPServer, error) {
	ds, err := NewSupabaseClient(cfg.ProjectURL, cfg.ServiceKey, client.OptTimeout(cfg.HTTPTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return newMCPServerWith(ctx, ds, cfg.RowLimit), nil
}

func newMCPServerWith(ctx context.Context, ds Datastore, defaultLimit int) *MCPServer {
	serverCtx, serverCancel := context.WithCancel(ctx)
	return &MCPServer{
		ds:       ds,
		registry: newToolRegistry(defaultLimit),
		rowLimit: defaultLimit,
		ctx:      serverCtx,
		cancel:   serverCancel,
	}
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *MCPServer) Run() error {
	reader := bufio.NewReader(os.Stdin)

	for {
		select {
		case <-s.ctx.Done():
			return s.ctx.Err()
		default:
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		response := s.handleMessage([]byte(line))
		if response != nil {
			responseBytes, err := json.Marshal(response)
			if err != nil {
				logError("Failed to marshal response: %v", err)
				continue
			}
			fmt.Println(string(responseBytes))
		}
	}
}

func (s *MCPServer) handleMessage(data []byte) *JSONRPCResponse {
	var req JSONRPCRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return &JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      nil,
			Error: &Error{
				Code:    ParseError,
				Message: "Parse error",
				Data:    err.Error(),
			},
		}
	}

	if req.JSONRPC != "2.0" {
		return &JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &Error{
				Code:    InvalidRequest,
				Message: "Invalid JSON-RPC version",
			},
		}
	}

	return s.handleRequest(&req)
}

func (s *MCPServer) handleRequest(req *JSONRPCRequest) *JSONRPCResponse {
	var result any
	var err *Error

	switch req.Method {
	case "initialize":
		result, err = s.handleInitialize(req.Params)
	case "initialized":
		// Notification, no response needed
		return nil
	case "tools/list":
		result, err = s.handleListTools()
	case "tools/call":
		result, err = s.handleCallTool(req.Params)
	case "resources/list":
		result, err = s.handleListResources()
	case "resources/read":
		result, err = s.handleReadResource(req.Params)
	case "ping":
		result = map[string]any{}
	default:
		err = &Error{
			Code:    MethodNotFound,
			Message: fmt.Sprintf("Method not found: %s", req.Method),
		}
	}

	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
		Error:   err,
	}
}

// Shutdown gracefully shuts down the server
func (s *MCPServer) Shutdown() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Close releases all resources
func (s *MCPServer) Close() error {
	s.Shutdown()
	return nil
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[mcp-server] "+format+"\n", args...)
}
