package llm

import "fmt"

// Provider represents an LLM provider
type Provider string

const (
	ProviderGroq      Provider = "groq"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	// ProviderOffline answers without a network call; see MockClient.
	ProviderOffline Provider = "offline"
)

// DefaultGroqModel is the model used when none is configured.
const DefaultGroqModel = "llama-3.1-8b-instant"

// ModelInfo contains information about a supported model
type ModelInfo struct {
	ID          string   // Internal ID used in code
	Name        string   // Display name
	Provider    Provider // Provider (groq, openai, anthropic)
	APIModel    string   // Model name to send to API
	Description string   // Short description
}

// SupportedModels lists the models known to handle the restaurant tools.
var SupportedModels = []ModelInfo{
	// Groq
	{
		ID:          "llama-3.1-8b",
		Name:        "Llama 3.1 8B Instant",
		Provider:    ProviderGroq,
		APIModel:    DefaultGroqModel,
		Description: "Fast and cheap (default)",
	},
	{
		ID:          "llama-3.3-70b",
		Name:        "Llama 3.3 70B Versatile",
		Provider:    ProviderGroq,
		APIModel:    "llama-3.3-70b-versatile",
		Description: "More reliable tool calls",
	},

	// OpenAI
	{
		ID:          "gpt-4o-mini",
		Name:        "GPT-4o Mini",
		Provider:    ProviderOpenAI,
		APIModel:    "gpt-4o-mini",
		Description: "Balanced performance and cost",
	},

	// Anthropic
	{
		ID:          "claude-haiku-4.5",
		Name:        "Claude Haiku 4.5",
		Provider:    ProviderAnthropic,
		APIModel:    DefaultAnthropicModel,
		Description: "Fastest Claude model",
	},
}

// DefaultModelID is the default model to use
const DefaultModelID = "llama-3.1-8b"

// GetModelByID returns model info by ID
func GetModelByID(id string) *ModelInfo {
	for _, m := range SupportedModels {
		if m.ID == id {
			return &m
		}
	}
	return nil
}

// GetModelsByProvider returns all models for a given provider
func GetModelsByProvider(provider Provider) []ModelInfo {
	var models []ModelInfo
	for _, m := range SupportedModels {
		if m.Provider == provider {
			models = append(models, m)
		}
	}
	return models
}

// NewClient builds the client for provider. model may be a catalog ID or a
// raw API model name. An empty apiKey yields the offline client.
func NewClient(provider Provider, apiKey, baseURL, model string) (Client, error) {
	if info := GetModelByID(model); info != nil {
		model = info.APIModel
	}

	switch provider {
	case ProviderGroq, ProviderOpenAI, ProviderAnthropic, ProviderOffline:
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
	if apiKey == "" || provider == ProviderOffline {
		return NewMockClient(), nil
	}

	switch provider {
	case ProviderOpenAI:
		return Instrumented(NewOpenAIClient(apiKey, baseURL, model), provider), nil
	case ProviderAnthropic:
		return Instrumented(NewAnthropicClient(apiKey, baseURL, model), provider), nil
	default:
		return Instrumented(NewGroqClient(apiKey, baseURL, model), provider), nil
	}
}

// DefaultModel returns the API model used for provider when none is configured.
func DefaultModel(provider Provider) string {
	switch provider {
	case ProviderOpenAI:
		return DefaultOpenAIModel
	case ProviderAnthropic:
		return DefaultAnthropicModel
	case ProviderOffline:
		return ""
	default:
		return DefaultGroqModel
	}
}

// APIKeyEnv names the environment variable holding provider's key.
func APIKeyEnv(provider Provider) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderOffline:
		return ""
	default:
		return "GROQ_API_KEY"
	}
}
