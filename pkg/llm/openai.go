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
	DefaultOpenAIEndpoint = "https://api.openai.com/v1/chat/completions"
	DefaultGroqEndpoint   = "https://api.groq.com/openai/v1/chat/completions"
	DefaultOpenAIModel    = "gpt-4o-mini"
)

// OpenAIClient speaks the OpenAI chat completions protocol. Groq serves the
// same protocol, so it is used for both providers.
type OpenAIClient struct {
	apiKey   string
	endpoint string
	model    string
	client   *http.Client
}

// NewOpenAIClient builds a client. baseURL may be a full endpoint, a host, or
// empty for the default endpoint.
func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIClient{
		apiKey:   apiKey,
		endpoint: resolveEndpoint(baseURL, DefaultOpenAIEndpoint, "/v1/chat/completions"),
		model:    model,
		client:   &http.Client{},
	}
}

func NewGroqClient(apiKey, baseURL, model string) *OpenAIClient {
	if model == "" {
		model = DefaultGroqModel
	}
	c := NewOpenAIClient(apiKey, "", model)
	c.endpoint = resolveEndpoint(baseURL, DefaultGroqEndpoint, "/openai/v1/chat/completions")
	return c
}

// resolveEndpoint appends path to a bare host and leaves full endpoints alone.
func resolveEndpoint(baseURL, fallback, path string) string {
	if baseURL == "" {
		return fallback
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	if strings.HasSuffix(baseURL, path) || strings.HasSuffix(baseURL, "/chat/completions") || strings.HasSuffix(baseURL, "/messages") {
		return baseURL
	}
	return baseURL + path
}

// OpenAI API structures
type openAIRequest struct {
	Model      string          `json:"model"`
	Messages   []openAIMessage `json:"messages"`
	Tools      []openAITool    `json:"tools,omitempty"`
	ToolChoice string          `json:"tool_choice,omitempty"`
}

type openAIMessage struct {
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	ToolCalls []openAIToolCall `json:"tool_calls,omitempty"`
}

type openAITool struct {
	Type     string         `json:"type"`
	Function openAIFunction `json:"function"`
}

type openAIFunction struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  interface{} `json:"parameters"`
}

type openAIToolCall struct {
	ID       string             `json:"id"`
	Type     string             `json:"type"`
	Function openAIFunctionCall `json:"function"`
}

type openAIFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Role      string           `json:"role"`
			Content   *string          `json:"content"`
			ToolCalls []openAIToolCall `json:"tool_calls"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (c *OpenAIClient) Generate(ctx context.Context, messages []Message, tools []Tool) (*Message, error) {
	apiMessages := make([]openAIMessage, 0, len(messages))
	for _, msg := range messages {
		apiMsg := openAIMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
		for _, tc := range msg.ToolCalls {
			apiMsg.ToolCalls = append(apiMsg.ToolCalls, openAIToolCall{
				ID:   tc.ID,
				Type: "function",
				Function: openAIFunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}
		apiMessages = append(apiMessages, apiMsg)
	}

	reqBody := openAIRequest{
		Model:    c.model,
		Messages: apiMessages,
	}
	for _, t := range tools {
		reqBody.Tools = append(reqBody.Tools, openAITool{
			Type: "function",
			Function: openAIFunction{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	if len(reqBody.Tools) > 0 {
		reqBody.ToolChoice = "auto"
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
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

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

	var parsed openAIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("response has no choices")
	}

	choice := parsed.Choices[0].Message
	finalMsg := &Message{Role: RoleAssistant}
	if choice.Content != nil {
		finalMsg.Content = *choice.Content
	}
	for _, tc := range choice.ToolCalls {
		finalMsg.ToolCalls = append(finalMsg.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	return finalMsg, nil
}
