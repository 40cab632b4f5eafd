package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	AnthropicEndpoint     = "https://api.anthropic.com/v1/messages"
	DefaultAnthropicModel = "claude-haiku-4-5-20251001"
	anthropicVersion      = "2023-06-01"
)

type AnthropicClient struct {
	apiKey   string
	endpoint string
	model    string
	client   *http.Client
}

func NewAnthropicClient(apiKey, baseURL, model string) *AnthropicClient {
	if model == "" {
		model = DefaultAnthropicModel
	}
	return &AnthropicClient{
		apiKey:   apiKey,
		endpoint: resolveEndpoint(baseURL, AnthropicEndpoint, "/v1/messages"),
		model:    model,
		client:   &http.Client{},
	}
}

// API Request Structures

type apiRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []apiMessage    `json:"messages"`
	Tools     []anthropicTool `json:"tools,omitempty"`
	System    string          `json:"system,omitempty"`
}

type apiMessage struct {
	Role    string            `json:"role"`
	Content []apiContentBlock `json:"content"`
}

type apiContentBlock struct {
	Type  string          `json:"type"`
	Text  string          `json:"text,omitempty"`
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

type anthropicTool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema interface{} `json:"input_schema"`
}

type apiResponse struct {
	Content    []apiContentBlock `json:"content"`
	StopReason string            `json:"stop_reason"`
}

func (c *AnthropicClient) Generate(ctx context.Context, messages []Message, tools []Tool) (*Message, error) {
	apiMessages := make([]apiMessage, 0, len(messages))
	var systemPrompt string
	haveSystem := false

	for _, msg := range messages {
		// The Messages API takes the system prompt out of band. The first
		// system message is the instruction; later ones are not sent.
		if msg.Role == RoleSystem {
			if !haveSystem {
				systemPrompt = msg.Content
				haveSystem = true
			}
			continue
		}

		var blocks []apiContentBlock
		if msg.Content != "" {
			blocks = append(blocks, apiContentBlock{Type: "text", Text: msg.Content})
		}
		for _, tc := range msg.ToolCalls {
			input := json.RawMessage(tc.Arguments)
			if !json.Valid(input) {
				input = json.RawMessage("{}")
			}
			blocks = append(blocks, apiContentBlock{Type: "tool_use", ID: tc.ID, Name: tc.Name, Input: input})
		}
		if len(blocks) == 0 {
			continue
		}
		apiMessages = append(apiMessages, apiMessage{Role: string(msg.Role), Content: blocks})
	}

	reqBody := apiRequest{
		Model:     c.model,
		MaxTokens: 1024,
		Messages:  apiMessages,
		System:    systemPrompt,
	}
	for _, t := range tools {
		reqBody.Tools = append(reqBody.Tools, anthropicTool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.Parameters,
		})
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp.StatusCode, body)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	finalMsg := &Message{Role: RoleAssistant}
	var text []string
	for _, block := range parsed.Content {
		switch block.Type {
		case "text":
			text = append(text, block.Text)
		case "tool_use":
			args := string(block.Input)
			if args == "" {
				args = "{}"
			}
			finalMsg.ToolCalls = append(finalMsg.ToolCalls, ToolCall{ID: block.ID, Name: block.Name, Arguments: args})
		}
	}
	finalMsg.Content = strings.Join(text, "")

	return finalMsg, nil
}
