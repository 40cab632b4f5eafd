package agent

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbdamask/dinebot/pkg/llm"
	"github.com/jbdamask/dinebot/pkg/llm/llmtest"
	"github.com/jbdamask/dinebot/pkg/render"
	"github.com/jbdamask/dinebot/pkg/store"
	"github.com/jbdamask/dinebot/pkg/store/storetest"
	"github.com/jbdamask/dinebot/pkg/tools"
)

// recordingTool wraps a registry tool and remembers the arguments it saw.
type recordingTool struct {
	tools.Tool
	mu    sync.Mutex
	calls []map[string]interface{}
}

func (r *recordingTool) Execute(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var args map[string]interface{}
	_ = json.Unmarshal(raw, &args)
	r.mu.Lock()
	r.calls = append(r.calls, args)
	r.mu.Unlock()
	return r.Tool.Execute(ctx, raw)
}

type fixture struct {
	resolver *Resolver
	client   *llmtest.ScriptedClient
	search   *recordingTool
	store    *store.JSONStore
}

func newFixture(t *testing.T, client *llmtest.ScriptedClient, opts ...Option) *fixture {
	t.Helper()

	st := store.NewJSONStore(t.TempDir())
	storetest.Seed(t, st.Dir(), []store.Restaurant{
		{ID: 1, Name: "Bella Italia", Cuisine: "Italian", Location: "Downtown", Rating: 4.5, SeatingCapacity: 40, AvailableTables: 5},
		{ID: 2, Name: "Taco Loco", Cuisine: "Mexican", Location: "Uptown", Rating: 4.1, SeatingCapacity: 20, AvailableTables: 2},
		{ID: 3, Name: "El Rincon", Cuisine: "Mexican", Location: "Old Town", Rating: 4.6, SeatingCapacity: 2, AvailableTables: 1},
		{ID: 4, Name: "Sakura House", Cuisine: "Japanese", Location: "Harbor", Rating: 4.7, SeatingCapacity: 30, AvailableTables: 3},
	})

	logger, _ := test.NewNullLogger()
	registry := tools.NewDefaultRegistry(st, nil)
	search, ok := registry.Get(tools.SearchRestaurants)
	require.True(t, ok)
	rec := &recordingTool{Tool: search}
	registry.Register(rec)

	opts = append([]Option{WithLogger(logger)}, opts...)
	return &fixture{
		resolver: New(client, tools.NewDispatcher(registry, logger), opts...),
		client:   client,
		search:   rec,
		store:    st,
	}
}

func TestReplyCuisineFromUtterance(t *testing.T) {
	f := newFixture(t, llmtest.NewScriptedClient().Text(""))

	reply := f.resolver.Reply(context.Background(), "I want Italian food", nil)

	assert.True(t, strings.HasPrefix(reply, "Available Restaurants:"), reply)
	assert.Contains(t, reply, "Bella Italia (ID: 1)")
	require.Len(t, f.search.calls, 1)
	assert.Equal(t, map[string]interface{}{"cuisine": "Italian"}, f.search.calls[0])
}

func TestReplyBookingCarriesGuestCount(t *testing.T) {
	f := newFixture(t, llmtest.NewScriptedClient().Text("Sure, how many people?"))

	reply := f.resolver.Reply(context.Background(), "book a table for 4 at Mexican restaurant", nil)

	require.Len(t, f.search.calls, 1)
	assert.Equal(t, "Mexican", f.search.calls[0]["cuisine"])
	assert.Equal(t, float64(4), f.search.calls[0]["guests"])
	assert.Contains(t, reply, "Taco Loco")
	assert.NotContains(t, reply, "El Rincon", "too small for 4")
}

func TestReplySendsPromptHistoryAndTools(t *testing.T) {
	f := newFixture(t, llmtest.NewScriptedClient().Text("What's your full name?"))
	history := []llm.Message{
		{Role: llm.RoleUser, Content: "hello"},
		{Role: llm.RoleAssistant, Content: "Hi! What cuisine would you like?"},
	}

	reply := f.resolver.Reply(context.Background(), "Sakura House please", history)
	assert.Equal(t, "What's your full name?", reply)

	require.Len(t, f.client.Requests, 1)
	sent := f.client.Requests[0]
	require.Len(t, sent, 4)
	assert.Equal(t, llm.RoleSystem, sent[0].Role)
	assert.Equal(t, SystemPrompt, sent[0].Content)
	assert.Equal(t, history, sent[1:3])
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "Sakura House please"}, sent[3])
	assert.Len(t, history, 2, "caller history is not modified")
}

func TestReplyStructuredToolCall(t *testing.T) {
	tests := []struct {
		name      string
		tool      string
		args      string
		utterance string
		check     func(t *testing.T, reply string)
	}{
		{
			name: "trailing comma tolerated and output sanitized",
			tool: "search_restaurants", args: `{"cuisine": "Italian",}`,
			check: func(t *testing.T, reply string) {
				assert.True(t, strings.HasPrefix(reply, "Available Restaurants: • Bella Italia (ID: 1)"), reply)
				assert.NotContains(t, reply, "\n")
			},
		},
		{
			name: "tool call beats cuisine in utterance",
			tool: "search_restaurants", args: `{"cuisine":"Japanese"}`, utterance: "italian food",
			check: func(t *testing.T, reply string) {
				assert.Contains(t, reply, "Sakura House")
				assert.NotContains(t, reply, "Bella Italia")
			},
		},
		{
			name: "null arguments dropped",
			tool: "search_restaurants", args: `{"cuisine":"Mexican","location":null,"guests":null}`,
			check: func(t *testing.T, reply string) {
				assert.Contains(t, reply, "Taco Loco")
				assert.Contains(t, reply, "El Rincon")
			},
		},
		{
			name: "numeric strings coerced",
			tool: "check_availability", args: `{"restaurant_id":"1","date":"25-12-2025","time":"7 PM"}`,
			check: func(t *testing.T, reply string) {
				assert.Equal(t, render.TableAvailable, reply)
			},
		},
		{
			name: "unknown tool rendered generically",
			tool: "order_pizza", args: `{}`,
			check: func(t *testing.T, reply string) {
				assert.Equal(t, `{ "error": "Tool 'order_pizza' not found in available tools" }`, reply)
			},
		},
		{
			name: "missing required argument",
			tool: "create_reservation", args: `{"user_name":"Asha"}`,
			check: func(t *testing.T, reply string) {
				assert.Contains(t, reply, "Invalid arguments for tool 'create_reservation'")
			},
		},
		{
			name: "malformed arguments",
			tool: "create_reservation", args: `{"user_name": "Asha"`,
			check: func(t *testing.T, reply string) {
				assert.Equal(t, ParseFailureReply, reply)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, llmtest.NewScriptedClient().Call(tt.tool, tt.args))
			utterance := tt.utterance
			if utterance == "" {
				utterance = "go ahead"
			}
			tt.check(t, f.resolver.Reply(context.Background(), utterance, nil))
		})
	}
}

func TestReplyCreatesReservation(t *testing.T) {
	f := newFixture(t, llmtest.NewScriptedClient().Call("create_reservation",
		`{"user_name":"Asha Rao","restaurant_id":"2","date":"25-12-2025","time":"7:00 PM","guests":"4","phone_number":"+91-9876543210"}`))

	reply := f.resolver.Reply(context.Background(), "yes, confirm", nil)
	assert.True(t, strings.HasPrefix(reply, "✅ Reservation Confirmed!"), reply)
	assert.Contains(t, reply, "Booked For: Asha Rao")

	saved, err := f.store.Reservations()
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, 4, saved[0].Guests)
}

func TestReplyUsesFirstToolCallOnly(t *testing.T) {
	client := llmtest.NewScriptedClient(llmtest.Response{Message: &llm.Message{
		Role: llm.RoleAssistant,
		ToolCalls: []llm.ToolCall{
			{ID: "a", Name: "search_restaurants", Arguments: `{"cuisine":"Italian"}`},
			{ID: "b", Name: "search_restaurants", Arguments: `{"cuisine":"Mexican"}`},
		},
	}})
	f := newFixture(t, client)

	reply := f.resolver.Reply(context.Background(), "both please", nil)
	assert.Contains(t, reply, "Bella Italia")
	assert.Len(t, f.search.calls, 1)
}

func TestReplyRecoversLeakedCall(t *testing.T) {
	t.Run("search", func(t *testing.T) {
		f := newFixture(t, llmtest.NewScriptedClient().Text(`<function=search_restaurants>{"cuisine": "italian"}</function>`))
		reply := f.resolver.Reply(context.Background(), "something tasty", nil)
		assert.True(t, strings.HasPrefix(reply, "Available Restaurants:\n\n"), "recovered output is not sanitized")
		assert.Contains(t, reply, "Bella Italia")
	})

	t.Run("name lookup", func(t *testing.T) {
		f := newFixture(t, llmtest.NewScriptedClient().Text(`find_restaurant_by_name {"name": "sakura"}`))
		reply := f.resolver.Reply(context.Background(), "the harbor one", nil)
		assert.Equal(t, "Perfect! I found Sakura House (ID: 4) in Harbor. What's your full name?", reply)
	})

	t.Run("leak beats cuisine in utterance", func(t *testing.T) {
		f := newFixture(t, llmtest.NewScriptedClient().Text(`search_restaurants {"cuisine": "Japanese"}`))
		reply := f.resolver.Reply(context.Background(), "italian food", nil)
		assert.Contains(t, reply, "Sakura House")
	})
}

func TestReplyTextAndFallback(t *testing.T) {
	f := newFixture(t, llmtest.NewScriptedClient().
		Text("What date would you like?\n\n (DD-MM-YYYY format)").
		Text(`= create_reservation {"user_name": "x"}`).
		Text(""))

	ctx := context.Background()
	assert.Equal(t, "What date would you like? (DD-MM-YYYY format)", f.resolver.Reply(ctx, "Asha Rao", nil))
	assert.Equal(t, FallbackPrompt, f.resolver.Reply(ctx, "hmm", nil))
	assert.Equal(t, FallbackPrompt, f.resolver.Reply(ctx, "hello", nil))
}

func TestReplyUpstreamFailures(t *testing.T) {
	toolErr := &llm.APIError{StatusCode: 400, Code: "tool_use_failed", Message: "Failed to call a function"}

	t.Run("tool validation with cuisine", func(t *testing.T) {
		f := newFixture(t, llmtest.NewScriptedClient().Fail(toolErr))
		reply := f.resolver.Reply(context.Background(), "any sushi places?", nil)
		assert.Contains(t, reply, "Sakura House")
	})

	t.Run("tool validation without cuisine", func(t *testing.T) {
		f := newFixture(t, llmtest.NewScriptedClient().Fail(toolErr))
		assert.Equal(t, TroubleReply, f.resolver.Reply(context.Background(), "book it", nil))
	})

	t.Run("transport failure", func(t *testing.T) {
		f := newFixture(t, llmtest.NewScriptedClient().Fail(errors.New("dial tcp: connection refused")))
		assert.Equal(t, ApologyReply, f.resolver.Reply(context.Background(), "italian food", nil))
		assert.Empty(t, f.search.calls, "heuristics do not run on transport failures")
	})
}

type blockingClient struct{}

func (blockingClient) Generate(ctx context.Context, messages []llm.Message, tools []llm.Tool) (*llm.Message, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestReplyTimeout(t *testing.T) {
	st := store.NewJSONStore(t.TempDir())
	logger, _ := test.NewNullLogger()
	r := New(blockingClient{}, tools.NewDispatcher(tools.NewDefaultRegistry(st, nil), logger),
		WithLogger(logger), WithTimeout(20*time.Millisecond))

	assert.Equal(t, ApologyReply, r.Reply(context.Background(), "hi", nil))
}

func TestToolDeclarations(t *testing.T) {
	f := newFixture(t, llmtest.NewScriptedClient())
	decls := f.resolver.toolDeclarations()
	require.Len(t, decls, 7)
	assert.Equal(t, "search_restaurants", decls[0].Name)
	assert.Equal(t, "find_restaurant_by_name", decls[6].Name)
	assert.IsType(t, tools.Schema{}, decls[0].Parameters)
}

func TestBookingSearch(t *testing.T) {
	f := newFixture(t, llmtest.NewScriptedClient())
	ctx := context.Background()

	reply, ok := f.resolver.bookingSearch(ctx, "Book a table for 4 at Mexican restaurant")
	require.True(t, ok)
	assert.Contains(t, reply, "Taco Loco (ID: 2)")
	assert.NotContains(t, reply, "El Rincon", "capacity 2 is too small for 4")
	require.Len(t, f.search.calls, 1)
	assert.Equal(t, "Mexican", f.search.calls[0]["cuisine"])
	assert.Equal(t, float64(4), f.search.calls[0]["guests"])

	for _, utterance := range []string{
		"book a table for 4 at Bella Italia",
		"reservation for two at a mexican place",
		"hello",
	} {
		_, ok := f.resolver.bookingSearch(ctx, utterance)
		assert.False(t, ok, utterance)
	}
	assert.Len(t, f.search.calls, 1)
}

func TestWithCuisines(t *testing.T) {
	table, err := LoadCuisines([]byte(`- {alias: "Tex-Mex", cuisine: "Mexican"}`))
	require.NoError(t, err)

	f := newFixture(t, llmtest.NewScriptedClient().Text("").Text(""), WithCuisines(table))

	reply := f.resolver.Reply(context.Background(), "any tex-mex tonight?", nil)
	assert.Contains(t, reply, "Taco Loco")
	require.Len(t, f.search.calls, 1)
	assert.Equal(t, "Mexican", f.search.calls[0]["cuisine"])

	// The built-in aliases are gone with a replacement table.
	reply = f.resolver.Reply(context.Background(), "I want Italian food", nil)
	assert.Equal(t, FallbackPrompt, reply)
}
