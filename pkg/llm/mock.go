package llm

import "context"

// MockClient is the offline client used when no API key is configured.
// It never calls tools and replies with empty text, which leaves every turn
// to the deterministic part of the resolver.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, messages []Message, tools []Tool) (*Message, error) {
	return &Message{Role: RoleAssistant}, nil
}
