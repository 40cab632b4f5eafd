package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbdamask/dinebot/pkg/history"
	"github.com/jbdamask/dinebot/pkg/llm"
	"github.com/jbdamask/dinebot/pkg/llm/llmtest"
)

func TestConversationCarriesHistory(t *testing.T) {
	client := llmtest.NewScriptedClient().Text("Hello! What cuisine?").Text("Sure.")
	f := newFixture(t, client)

	dir := t.TempDir()
	tr, err := history.Open(dir, "chat-1")
	require.NoError(t, err)

	conv, err := NewConversation(f.resolver, tr)
	require.NoError(t, err)
	assert.Equal(t, "chat-1", conv.SessionID())
	assert.Empty(t, conv.LastReply())

	first := conv.Send(context.Background(), "hello")
	assert.Equal(t, "Hello! What cuisine?", first)
	conv.Send(context.Background(), "thanks")

	// The second request saw system, the first turn pair, then the new utterance.
	require.Len(t, client.Requests, 2)
	second := client.Requests[1]
	require.Len(t, second, 4)
	assert.Equal(t, llm.RoleSystem, second[0].Role)
	assert.Equal(t, "hello", second[1].Content)
	assert.Equal(t, "Hello! What cuisine?", second[2].Content)
	assert.Equal(t, "thanks", second[3].Content)

	assert.Len(t, conv.History(), 4)
	assert.Equal(t, "Sure.", conv.LastReply())

	// A resumed conversation starts from the transcript.
	resumedTr, err := history.Open(dir, "chat-1")
	require.NoError(t, err)
	resumed, err := NewConversation(f.resolver, resumedTr)
	require.NoError(t, err)
	assert.Equal(t, conv.History(), resumed.History())

	conv.Reset()
	assert.Empty(t, conv.History())
	assert.Empty(t, conv.LastReply())
}

func TestConversationWithoutTranscript(t *testing.T) {
	f := newFixture(t, llmtest.NewScriptedClient().Text("hi"))
	conv, err := NewConversation(f.resolver, nil)
	require.NoError(t, err)

	assert.Equal(t, "hi", conv.Send(context.Background(), "hello"))
	assert.Empty(t, conv.SessionID())
}

func TestSetClient(t *testing.T) {
	f := newFixture(t, llmtest.NewScriptedClient().Text("from first"))
	f.resolver.SetClient(llmtest.NewScriptedClient().Text("from second"))
	assert.Equal(t, "from second", f.resolver.Reply(context.Background(), "hello", nil))
}

func TestConversationDropsCancelledTurn(t *testing.T) {
	f := newFixture(t, llmtest.NewScriptedClient().Text("too late"))

	dir := t.TempDir()
	tr, err := history.Open(dir, "chat-2")
	require.NoError(t, err)
	conv, err := NewConversation(f.resolver, tr)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	conv.Send(ctx, "book a table")

	assert.Empty(t, conv.History())
	msgs, err := tr.Messages()
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
