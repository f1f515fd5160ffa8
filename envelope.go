package main

import "encoding/json"

// ToolResult is the outcome of one invocation: a payload or a classified
// failure, never both.
type ToolResult struct {
	Payload any
	Err     *ToolError
}

func success(payload any) ToolResult {
	return ToolResult{Payload: payload}
}

func failure(err *ToolError) ToolResult {
	return ToolResult{Err: err}
}

// Envelope is the uniform wrapper the transport sees for every invocation.
type Envelope struct {
	Status    string `json:"status"`
	Result    any    `json:"result,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
	Message   string `json:"message,omitempty"`
}

// mapResult converts a ToolResult into its envelope. The mapping is total:
// both variants produce a well-formed envelope and nothing here can fail.
func mapResult(result ToolResult) Envelope {
	if result.Err != nil {
		return Envelope{
			Status:    "error",
			ErrorKind: result.Err.Kind.String(),
			Message:   result.Err.Message,
		}
	}
	return Envelope{Status: "ok", Result: result.Payload}
}

// toCallToolResult renders the envelope into the MCP tool-result frame.
func toCallToolResult(envelope Envelope) *CallToolResult {
	text, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		// Payloads come from json.Unmarshal so this should not happen;
		// fall back to a minimal error envelope rather than crash.
		text = []byte(`{"status":"error","error_kind":"BackendError","message":"failed to encode result"}`)
	}
	return &CallToolResult{
		Content: []Content{{Type: "text", Text: string(text)}},
		IsError: envelope.Status == "error",
	}
}
