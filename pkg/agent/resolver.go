// Package agent turns one chat utterance into one reply, choosing between the
// model's tool call, a recovered call, the cuisine heuristics and plain text.
package agent

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jbdamask/dinebot/pkg/llm"
	"github.com/jbdamask/dinebot/pkg/metrics"
	"github.com/jbdamask/dinebot/pkg/render"
	"github.com/jbdamask/dinebot/pkg/tools"
)

// Fixed replies.
const (
	ParseFailureReply = "I couldn't process the booking details. Please repeat."
	FallbackPrompt    = "I can help you book a restaurant. What cuisine would you like?"
	TroubleReply      = "I'm having trouble processing that request. Could you rephrase it?"
	ApologyReply      = "Sorry, I can't reach the reservation assistant right now. Please try again in a moment."
)

// Stage names the step of the chain that produced a reply.
type Stage string

const (
	StageToolCall      Stage = "tool_call"
	StageParseFailure  Stage = "parse_failure"
	StageRecovered     Stage = "recovered"
	StageCuisine       Stage = "cuisine"
	StageBooking       Stage = "booking"
	StageText          Stage = "text"
	StageFallback      Stage = "fallback"
	StageToolRejected  Stage = "tool_rejected"
	StageUpstreamError Stage = "upstream_error"
)

// Resolver is stateless across turns; all context comes from the history
// passed to Reply.
type Resolver struct {
	client     llm.Client
	dispatcher *tools.Dispatcher
	cuisines   CuisineTable
	prompt     string
	timeout    time.Duration
	log        logrus.FieldLogger
}

type Option func(*Resolver)

func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Resolver) { r.log = log }
}

func WithSystemPrompt(prompt string) Option {
	return func(r *Resolver) { r.prompt = prompt }
}

func WithCuisines(table CuisineTable) Option {
	return func(r *Resolver) { r.cuisines = table }
}

// WithTimeout bounds each model call. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.timeout = d }
}

func New(client llm.Client, dispatcher *tools.Dispatcher, opts ...Option) *Resolver {
	r := &Resolver{
		client:     client,
		dispatcher: dispatcher,
		cuisines:   DefaultCuisines,
		prompt:     SystemPrompt,
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetClient swaps the model client. Not safe to call during Reply.
func (r *Resolver) SetClient(c llm.Client) {
	r.client = c
}

// Reply resolves one user utterance against the caller-owned history and
// returns exactly one reply. It never returns an error; upstream and tool
// failures become fixed sentences.
func (r *Resolver) Reply(ctx context.Context, utterance string, history []llm.Message) string {
	reply, stage := r.resolve(ctx, utterance, history)
	metrics.RecordReply(string(stage))
	r.log.WithField("stage", stage).Debug("turn resolved")
	return reply
}

func (r *Resolver) resolve(ctx context.Context, utterance string, history []llm.Message) (string, Stage) {
	resp, err := r.generate(ctx, utterance, history)
	if err != nil {
		return r.upstreamFailure(ctx, utterance, err)
	}
	if resp == nil {
		resp = &llm.Message{Role: llm.RoleAssistant}
	}

	// 1. Structured tool call. Only the first call is honoured.
	if len(resp.ToolCalls) > 0 {
		return r.structuredCall(ctx, resp.ToolCalls[0]), StageToolCall
	}

	content := resp.Content

	// 2. Tool call leaked into the text.
	if call, ok := recoverLeakedCall(content); ok {
		r.log.WithField("tool", call.Name).Info("recovered tool call from model text")
		return r.run(ctx, call.Name, call.Args), StageRecovered
	}

	// 3. Cuisine named in the utterance.
	if reply, ok := r.cuisineSearch(ctx, utterance); ok {
		return reply, StageCuisine
	}

	// 4. Booking request with a party size.
	if reply, ok := r.bookingSearch(ctx, utterance); ok {
		return reply, StageBooking
	}

	// 5. Plain text.
	if clean := render.Sanitize(content); clean != "" {
		return clean, StageText
	}
	return FallbackPrompt, StageFallback
}

func (r *Resolver) generate(ctx context.Context, utterance string, history []llm.Message) (*llm.Message, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: r.prompt})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: utterance})

	return r.client.Generate(ctx, messages, r.toolDeclarations())
}

func (r *Resolver) toolDeclarations() []llm.Tool {
	defs := r.dispatcher.Registry().List()
	decls := make([]llm.Tool, 0, len(defs))
	for _, d := range defs {
		decls = append(decls, llm.Tool{
			Name:        string(d.Name),
			Description: d.Description,
			Parameters:  d.Schema,
		})
	}
	return decls
}

func (r *Resolver) upstreamFailure(ctx context.Context, utterance string, err error) (string, Stage) {
	log := r.log.WithError(err)
	if !llm.IsToolValidation(err) {
		log.Warn("model call failed")
		return ApologyReply, StageUpstreamError
	}

	log.Info("model produced an invalid tool call, using cuisine table")
	if reply, ok := r.cuisineSearch(ctx, utterance); ok {
		return reply, StageCuisine
	}
	return TroubleReply, StageToolRejected
}

// structuredCall dispatches a model-issued tool call. Its output is
// sanitized like model text.
func (r *Resolver) structuredCall(ctx context.Context, call llm.ToolCall) string {
	args, err := parseToolArguments(call.Arguments)
	if err != nil {
		r.log.WithError(err).WithField("tool", call.Name).Info("unparseable tool arguments")
		return ParseFailureReply
	}

	name := tools.Name(call.Name)
	return render.Sanitize(r.run(ctx, name, prepareArgs(name, args)))
}

// run dispatches and renders without sanitizing.
func (r *Resolver) run(ctx context.Context, name tools.Name, args interface{}) string {
	result, err := r.dispatcher.Dispatch(ctx, string(name), args)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"tool": name,
			"kind": tools.KindOf(err),
		}).WithError(err).Info("tool dispatch failed")
		return render.Error(err)
	}
	return render.Result(name, result)
}

// cuisineSearch searches by the cuisine named in the utterance. A party size
// from a booking phrase naming the same kind of place is passed along.
func (r *Resolver) cuisineSearch(ctx context.Context, utterance string) (string, bool) {
	cuisine, ok := r.cuisines.Match(utterance)
	if !ok {
		return "", false
	}

	args := map[string]interface{}{"cuisine": cuisine}
	if b, ok := parseBooking(utterance); ok {
		if _, named := r.cuisines.Match(b.Place); named {
			args["guests"] = b.Guests
		}
	}
	return r.run(ctx, tools.SearchRestaurants, args), true
}

func (r *Resolver) bookingSearch(ctx context.Context, utterance string) (string, bool) {
	b, ok := parseBooking(utterance)
	if !ok {
		return "", false
	}
	cuisine, ok := r.cuisines.Match(b.Place)
	if !ok {
		return "", false
	}
	return r.run(ctx, tools.SearchRestaurants, map[string]interface{}{
		"cuisine": cuisine,
		"guests":  b.Guests,
	}), true
}
