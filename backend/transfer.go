package backend

import (
	"encoding/json"

	"github.com/voyagent/voyagent/tool"
)

// TransferToolName is the synthetic tool every provider request carries so
// the model can explicitly hand the conversation to another agent.
const TransferToolName = "transfer_to_agent"

// TransferToolDescriptor describes the transfer tool for providers.
func TransferToolDescriptor() tool.Descriptor {
	return tool.Descriptor{
		Name:        TransferToolName,
		Description: "Request transfer of control to another agent by name. Use when another agent is better suited.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"agent":  map[string]any{"type": "string", "description": "Target agent name"},
				"reason": map[string]any{"type": "string", "description": "Short reason for the transfer"},
			},
			"required": []string{"agent"},
		},
	}
}

// WithTransferTool appends the transfer tool to an agent's descriptors.
func WithTransferTool(descriptors []tool.Descriptor) []tool.Descriptor {
	out := make([]tool.Descriptor, 0, len(descriptors)+1)
	out = append(out, descriptors...)
	return append(out, TransferToolDescriptor())
}

// TransferFromToolCall decodes a provider tool call into a TransferRequest
// if it targets the transfer tool, nil otherwise.
func TransferFromToolCall(name string, arguments json.RawMessage) *TransferRequest {
	if name != TransferToolName {
		return nil
	}
	var payload struct {
		Agent  string `json:"agent"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(arguments, &payload); err != nil || payload.Agent == "" {
		return nil
	}
	return &TransferRequest{AgentID: payload.Agent, Reason: payload.Reason}
}
