package tools

import (
	"context"
	"encoding/json"

	"github.com/jbdamask/dinebot/pkg/events"
	"github.com/jbdamask/dinebot/pkg/store"
)

// Name identifies a registry operation.
type Name string

const (
	SearchRestaurants    Name = "search_restaurants"
	RecommendRestaurants Name = "recommend_restaurants"
	CheckAvailability    Name = "check_availability"
	CreateReservation    Name = "create_reservation"
	CancelReservation    Name = "cancel_reservation"
	UpdateReservation    Name = "update_reservation"
	FindRestaurantByName Name = "find_restaurant_by_name"
)

// ToolDefinition describes a tool's interface to the LLM
type ToolDefinition struct {
	Name        Name   `json:"name"`
	Description string `json:"description"`
	Schema      Schema `json:"input_schema"`
}

// Schema is the JSON Schema of a tool's argument object.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Tool represents a callable tool. Execute receives the argument object as
// JSON and returns a non-nil structured result.
type Tool interface {
	Definition() ToolDefinition
	Execute(ctx context.Context, args json.RawMessage) (interface{}, error)
}

// Store is the persistence the registry operates on.
type Store interface {
	Restaurants() ([]store.Restaurant, error)
	Reservations() ([]store.Reservation, error)
	UpdateReservations(fn func([]store.Reservation) ([]store.Reservation, error)) error
}

// Registry manages the available tools
type Registry struct {
	tools map[Name]Tool
	order []Name
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[Name]Tool),
	}
}

// NewDefaultRegistry registers the seven restaurant tools over st.
// pub may be nil.
func NewDefaultRegistry(st Store, pub events.Publisher) *Registry {
	if pub == nil {
		pub = events.NopPublisher{}
	}

	r := NewRegistry()
	r.Register(&SearchTool{store: st})
	r.Register(&RecommendTool{store: st})
	r.Register(&AvailabilityTool{store: st})
	r.Register(NewCreateReservationTool(st, pub))
	r.Register(&CancelReservationTool{store: st, pub: pub})
	r.Register(&UpdateReservationTool{store: st, pub: pub})
	r.Register(&FindByNameTool{store: st})
	return r
}

func (r *Registry) Register(t Tool) {
	name := t.Definition().Name
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = t
}

func (r *Registry) Get(name Name) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// List returns tool definitions in registration order.
func (r *Registry) List() []ToolDefinition {
	defs := make([]ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition())
	}
	return defs
}
