package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"

	"github.com/jbdamask/dinebot/pkg/metrics"
)

// Dispatcher validates a tool name and argument payload against the
// registry and executes the tool. Every call yields either a non-nil result
// or a *DispatchError; tool panics are converted to ToolExecutionError.
type Dispatcher struct {
	registry *Registry
	log      logrus.FieldLogger
}

func NewDispatcher(registry *Registry, log logrus.FieldLogger) *Dispatcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Dispatcher{registry: registry, log: log}
}

// Registry returns the registry backing the dispatcher.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch runs the named tool. args may be raw JSON text (string, []byte,
// json.RawMessage) or an already decoded map[string]interface{}.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args interface{}) (result interface{}, err error) {
	label := name
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = string(KindOf(err))
		}
		metrics.RecordDispatch(label, outcome)
		d.log.WithFields(logrus.Fields{"tool": name, "outcome": outcome}).Debug("tool dispatched")
	}()

	obj, err := normalizeArgs(args)
	if err != nil {
		label = "unknown"
		return nil, err
	}

	tool, ok := d.registry.Get(Name(name))
	if !ok {
		label = "unknown"
		return nil, &DispatchError{Kind: KindUnknownTool, Tool: name}
	}

	for _, key := range tool.Definition().Schema.Required {
		if _, present := obj[key]; !present {
			return nil, &DispatchError{
				Kind: KindArgumentMismatch,
				Tool: name,
				Err:  fmt.Errorf("missing required argument '%s'", key),
			}
		}
	}

	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, &DispatchError{Kind: KindArgumentType, Tool: name, Err: err}
	}

	result, err = execute(ctx, tool, raw)
	if err != nil {
		if errors.Is(err, ErrArgumentMismatch) {
			return nil, &DispatchError{Kind: KindArgumentMismatch, Tool: name, Err: err}
		}
		return nil, &DispatchError{Kind: KindToolExecution, Tool: name, Err: err}
	}
	if isNil(result) {
		return nil, &DispatchError{Kind: KindEmptyResult, Tool: name}
	}
	return result, nil
}

func execute(ctx context.Context, tool Tool, raw json.RawMessage) (result interface{}, err error) {
	defer func() {
		if p := recover(); p != nil {
			result = nil
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return tool.Execute(ctx, raw)
}

// normalizeArgs turns the payload into a flat key-value object.
func normalizeArgs(args interface{}) (map[string]interface{}, error) {
	var decoded interface{}

	switch a := args.(type) {
	case string:
		if err := json.Unmarshal([]byte(a), &decoded); err != nil {
			return nil, &DispatchError{Kind: KindArgumentParse, Err: err}
		}
	case []byte:
		if err := json.Unmarshal(a, &decoded); err != nil {
			return nil, &DispatchError{Kind: KindArgumentParse, Err: err}
		}
	case json.RawMessage:
		if err := json.Unmarshal(a, &decoded); err != nil {
			return nil, &DispatchError{Kind: KindArgumentParse, Err: err}
		}
	default:
		decoded = args
	}

	obj, ok := decoded.(map[string]interface{})
	if !ok {
		return nil, &DispatchError{Kind: KindArgumentType}
	}
	for _, v := range obj {
		switch v.(type) {
		case map[string]interface{}, []interface{}:
			return nil, &DispatchError{Kind: KindArgumentType}
		}
	}
	return obj, nil
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
