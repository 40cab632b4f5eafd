package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetModelByID(t *testing.T) {
	m := GetModelByID(DefaultModelID)
	require.NotNil(t, m)
	assert.Equal(t, ProviderGroq, m.Provider)
	assert.Equal(t, DefaultGroqModel, m.APIModel)

	assert.Nil(t, GetModelByID("nope"))
	assert.Len(t, GetModelsByProvider(ProviderGroq), 2)
}

func TestNewClient(t *testing.T) {
	c, err := NewClient(ProviderGroq, "", "", "")
	require.NoError(t, err)
	assert.IsType(t, &MockClient{}, c, "no key means offline")

	c, err = NewClient(ProviderAnthropic, "key", "", "claude-haiku-4.5")
	require.NoError(t, err)
	inner := c.(*instrumentedClient).next.(*AnthropicClient)
	assert.Equal(t, DefaultAnthropicModel, inner.model)

	c, err = NewClient(ProviderOpenAI, "key", "", "gpt-4o")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", c.(*instrumentedClient).next.(*OpenAIClient).model)

	_, err = NewClient("gemini", "key", "", "")
	assert.Error(t, err)
}

func TestMockClientRepliesEmpty(t *testing.T) {
	msg, err := NewMockClient().Generate(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, RoleAssistant, msg.Role)
	assert.Empty(t, msg.Content)
	assert.Empty(t, msg.ToolCalls)
}

func TestProviderDefaults(t *testing.T) {
	assert.Equal(t, DefaultGroqModel, DefaultModel(ProviderGroq))
	assert.Equal(t, DefaultOpenAIModel, DefaultModel(ProviderOpenAI))
	assert.Equal(t, DefaultAnthropicModel, DefaultModel(ProviderAnthropic))
	assert.Empty(t, DefaultModel(ProviderOffline))

	assert.Equal(t, "GROQ_API_KEY", APIKeyEnv(ProviderGroq))
	assert.Equal(t, "OPENAI_API_KEY", APIKeyEnv(ProviderOpenAI))
	assert.Equal(t, "ANTHROPIC_API_KEY", APIKeyEnv(ProviderAnthropic))
}
