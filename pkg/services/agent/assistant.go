// Package agent wires the language model to the assistant tools: it
// forwards conversation history, lets the model pick tools and feeds
// tool results back until the model produces a final answer.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/NeurArk/mcp-data-assistant/pkg/services/session"
)

const maxTurns = 10

const baseInstructions = `You are a data assistant that can analyze tabular data and create PDFs.
You can work with SQL databases, CSV files, and generate PDF reports.
When asked to create a PDF report, create it immediately with the information provided
and include the generated file path in your response. For the pdf tool, pass the report
payload as a JSON string via the data_json parameter: either a flat object of fields, or
an object with title, optional insights and a list of sections (each section has type
paragraph, table or chart; charts need chart_type bar, pie or line with labels and values).
Use the sql tool for read-only SELECT queries and the csv tool to analyse CSV files.`

// Options configure an Assistant.
type Options struct {
	APIKey   string
	BaseURL  string
	Model    string
	Sessions *session.Manager
	Tools    []Tool
}

// Assistant runs the tool-calling conversation loop.
type Assistant struct {
	client   *openai.Client
	model    string
	sessions *session.Manager
	tools    map[string]Tool
	defs     []openai.Tool
}

// NewAssistant creates an assistant from opts.
func NewAssistant(opts Options) *Assistant {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	a := &Assistant{
		client:   openai.NewClientWithConfig(cfg),
		model:    opts.Model,
		sessions: opts.Sessions,
		tools:    make(map[string]Tool, len(opts.Tools)),
	}
	for _, tool := range opts.Tools {
		a.tools[tool.Name()] = tool
		a.defs = append(a.defs, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  tool.Parameters(),
			},
		})
	}
	return a
}

// Answer sends prompt within the given session and returns the
// assistant's final reply. An empty session ID starts a new session;
// the (possibly new) ID is returned alongside the reply.
func (a *Assistant) Answer(ctx context.Context, sessionID, prompt string) (string, string, error) {
	if sessionID == "" {
		sessionID = a.sessions.Create()
	}
	a.sessions.AddMessage(sessionID, "user", prompt)

	messages := []openai.ChatCompletionMessage{{
		Role:    openai.ChatMessageRoleSystem,
		Content: a.sessions.SystemPrompt(sessionID, baseInstructions),
	}}
	for _, msg := range a.sessions.Messages(sessionID) {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	for turn := 0; turn < maxTurns; turn++ {
		resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    a.model,
			Messages: messages,
			Tools:    a.defs,
		})
		if err != nil {
			return "", sessionID, fmt.Errorf("chat completion failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", sessionID, fmt.Errorf("chat completion returned no choices")
		}

		choice := resp.Choices[0].Message
		if len(choice.ToolCalls) == 0 {
			a.sessions.AddMessage(sessionID, openai.ChatMessageRoleAssistant, choice.Content)
			return choice.Content, sessionID, nil
		}

		messages = append(messages, choice)
		for _, call := range choice.ToolCalls {
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				ToolCallID: call.ID,
				Content:    a.executeCall(ctx, call),
			})
		}
	}

	return "", sessionID, fmt.Errorf("conversation exceeded %d turns", maxTurns)
}

func (a *Assistant) executeCall(ctx context.Context, call openai.ToolCall) string {
	tool, ok := a.tools[call.Function.Name]
	if !ok {
		return fmt.Sprintf("error: unknown tool %q", call.Function.Name)
	}

	args := map[string]any{}
	if call.Function.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return fmt.Sprintf("error: invalid tool arguments: %v", err)
		}
	}

	result, err := tool.Execute(ctx, args)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return result
}
