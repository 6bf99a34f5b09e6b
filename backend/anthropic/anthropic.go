// Package anthropic provides a Backend over the Anthropic Messages API.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"

	"github.com/voyagent/voyagent/backend"
	"github.com/voyagent/voyagent/core"
)

// Options configures the Anthropic backend (model id, temperature, max
// tokens, API key).
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Backend wraps the Anthropic Messages API behind the generic
// backend.Backend interface.
type Backend struct {
	client *anthropic.Client
	opts   Options
}

// New creates an Anthropic backend using the official client.
func New(optFns ...func(o *Options)) *Backend {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Backend{client: &client, opts: opts}
}

// NewFromClient creates a backend from an existing client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Backend {
	b := New(optFns...)
	b.client = client
	return b
}

// Complete implements backend.Backend. Tool use blocks named
// transfer_to_agent become a TransferRequest; the rest surface as tool
// calls for the executor to run.
func (b *Backend) Complete(ctx context.Context, req backend.Request) (*backend.Response, error) {
	params := anthropic.MessageNewParams{
		Model:       b.opts.Model,
		Messages:    buildMessages(req),
		MaxTokens:   b.opts.MaxTokens,
		Temperature: anthropic.Float(b.opts.Temperature),
	}
	if req.Instructions != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.Instructions}}
	}
	if tools := buildTools(req); len(tools) > 0 {
		params.Tools = tools
	}

	resp, err := b.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic api error (%w): %v", core.ErrBackendUnavailable, err)
	}

	out := &backend.Response{}
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			out.Text += block.AsText().Text
		case "tool_use":
			toolBlock := block.AsToolUse()
			args, _ := json.Marshal(toolBlock.Input)
			if transfer := backend.TransferFromToolCall(toolBlock.Name, args); transfer != nil {
				out.Transfer = transfer
				continue
			}
			out.ToolCalls = append(out.ToolCalls, backend.ToolCall{
				ID:        toolBlock.ID,
				Name:      toolBlock.Name,
				Arguments: args,
			})
		}
	}
	return out, nil
}

// Info implements backend.Backend.
func (b *Backend) Info() backend.Info {
	return backend.Info{Provider: "anthropic", Model: string(b.opts.Model)}
}

func buildMessages(req backend.Request) []anthropic.MessageParam {
	var messages []anthropic.MessageParam
	for _, m := range req.History {
		if m.Text == "" {
			continue
		}
		switch m.Role {
		case "assistant":
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Text)))
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Text)))
		}
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(req.Message)))
	return messages
}

func buildTools(req backend.Request) []anthropic.ToolUnionParam {
	descriptors := backend.WithTransferTool(req.Tools)
	tools := make([]anthropic.ToolUnionParam, len(descriptors))
	for i, d := range descriptors {
		inputSchema := anthropic.ToolInputSchemaParam{
			Type: constant.Object("object"),
		}
		if d.Parameters != nil {
			if properties, ok := d.Parameters["properties"]; ok {
				inputSchema.Properties = properties
			}
			if required, ok := d.Parameters["required"].([]string); ok {
				inputSchema.Required = required
			}
		}
		tools[i] = anthropic.ToolUnionParamOfTool(inputSchema, d.Name)
	}
	return tools
}

var _ backend.Backend = (*Backend)(nil)
