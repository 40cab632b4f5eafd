package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// codeToolUseFailed is returned by OpenAI-compatible providers (Groq) when
// the model emitted a tool call that does not fit the declared schema.
const codeToolUseFailed = "tool_use_failed"

// APIError is a non-2xx response from a provider.
type APIError struct {
	StatusCode int
	Type       string
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error (status %d, %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// IsToolValidation reports whether err is the provider rejecting a
// malformed tool call rather than a transport or auth fault.
func IsToolValidation(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == codeToolUseFailed {
		return true
	}
	msg := strings.ToLower(apiErr.Message)
	return apiErr.StatusCode == 400 &&
		(strings.Contains(msg, "failed to call a function") || strings.Contains(msg, "tool call validation"))
}

// errorEnvelope is the error body shape shared by OpenAI, Groq and Anthropic.
type errorEnvelope struct {
	Error struct {
		Type    string      `json:"type"`
		Code    interface{} `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Message: strings.TrimSpace(string(body))}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		apiErr.Type = env.Error.Type
		apiErr.Message = env.Error.Message
		if code, ok := env.Error.Code.(string); ok {
			apiErr.Code = code
		}
	}
	return apiErr
}
