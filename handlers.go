package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

func (s *MCPServer) handleInitialize(params json.RawMessage) (*InitializeResult, *Error) {
	var initParams InitializeParams
	if params != nil {
		if err := json.Unmarshal(params, &initParams); err != nil {
			return nil, &Error{
				Code:    InvalidParams,
				Message: "Invalid initialize parameters",
				Data:    err.Error(),
			}
		}
	}

	s.initialized = true

	return &InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities: ServerCapabilities{
			Tools:     &ToolsCapability{},
			Resources: &ResourcesCapability{},
		},
		ServerInfo: ServerInfo{
			Name:    ServerName,
			Version: ServerVersion,
		},
	}, nil
}

func (s *MCPServer) handleListTools() (*ListToolsResult, *Error) {
	return &ListToolsResult{Tools: s.registry.Tools()}, nil
}

// handleCallTool runs one invocation through the registry, the argument
// binder, the backing call and the response mapper. Every outcome, including
// an unknown tool, comes back as a well-formed envelope rather than a
// protocol-level fault, so the assistant always sees what went wrong.
func (s *MCPServer) handleCallTool(params json.RawMessage) (*CallToolResult, *Error) {
	var callParams CallToolParams
	if err := json.Unmarshal(params, &callParams); err != nil {
		return nil, &Error{
			Code:    InvalidParams,
			Message: "Invalid parameters",
			Data:    err.Error(),
		}
	}

	result := dispatch(s.ctx, s.registry, s.ds, callParams.Name, callParams.Arguments)
	return toCallToolResult(mapResult(result)), nil
}

func (s *MCPServer) handleListResources() (*ListResourcesResult, *Error) {
	tables, err := s.ds.ListTables(s.ctx)
	if err != nil {
		return nil, &Error{
			Code:    InternalError,
			Message: fmt.Sprintf("Failed to list tables: %v", err),
		}
	}

	resources := make([]Resource, 0, len(tables))
	for _, table := range tables {
		resources = append(resources, Resource{
			URI:      fmt.Sprintf("supabase://%s/rows", table),
			Name:     fmt.Sprintf("Rows of table '%s'", table),
			MimeType: "application/json",
		})
	}

	return &ListResourcesResult{Resources: resources}, nil
}

func (s *MCPServer) handleReadResource(params json.RawMessage) (*ReadResourceResult, *Error) {
	var readParams ReadResourceParams
	if err := json.Unmarshal(params, &readParams); err != nil {
		return nil, &Error{
			Code:    InvalidParams,
			Message: "Invalid parameters",
			Data:    err.Error(),
		}
	}

	// Parse URI: supabase://tablename/rows
	uri := readParams.URI
	if !strings.HasPrefix(uri, "supabase://") {
		return nil, &Error{
			Code:    InvalidParams,
			Message: "Invalid resource URI: must start with supabase://",
		}
	}

	parts := strings.Split(strings.TrimPrefix(uri, "supabase://"), "/")
	if len(parts) != 2 || parts[1] != "rows" || parts[0] == "" {
		return nil, &Error{
			Code:    InvalidParams,
			Message: "Invalid resource URI format: expected supabase://tablename/rows",
		}
	}
	tableName := parts[0]

	rows, err := s.ds.ReadRows(s.ctx, tableName, s.rowLimit)
	if err != nil {
		return nil, &Error{
			Code:    InternalError,
			Message: fmt.Sprintf("Failed to read rows: %v", err),
		}
	}

	rowsJSON, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return nil, &Error{
			Code:    InternalError,
			Message: fmt.Sprintf("Failed to marshal rows: %v", err),
		}
	}

	return &ReadResourceResult{
		Contents: []ResourceContent{
			{
				URI:      uri,
				MimeType: "application/json",
				Text:     string(rowsJSON),
			},
		},
	}, nil
}
