package tools

import (
	"errors"
	"fmt"
)

// Registry-level failures. Tools report these inside their result objects
// (success=false / available=false); the sentinels let callers classify them.
var (
	ErrMissingField = errors.New("missing required booking information")
	ErrInvalidDate  = errors.New("invalid date format")
	ErrNotFound     = errors.New("reservation not found")

	// ErrArgumentMismatch is wrapped by tools whose argument object does not
	// fit their typed argument struct.
	ErrArgumentMismatch = errors.New("argument mismatch")
)

// ErrorKind classifies dispatcher failures.
type ErrorKind string

const (
	KindArgumentParse    ErrorKind = "ArgumentParseError"
	KindArgumentType     ErrorKind = "ArgumentTypeError"
	KindUnknownTool      ErrorKind = "UnknownTool"
	KindArgumentMismatch ErrorKind = "ArgumentMismatch"
	KindToolExecution    ErrorKind = "ToolExecutionError"
	KindEmptyResult      ErrorKind = "EmptyResult"
)

// DispatchError is returned by Dispatcher.Dispatch for every failure.
type DispatchError struct {
	Kind ErrorKind
	Tool string
	Err  error
}

func (e *DispatchError) Error() string {
	switch e.Kind {
	case KindArgumentParse:
		return fmt.Sprintf("Invalid JSON argument format: %v", e.Err)
	case KindArgumentType:
		return "Arguments must be a flat key-value object"
	case KindUnknownTool:
		return fmt.Sprintf("Tool '%s' not found in available tools", e.Tool)
	case KindArgumentMismatch:
		return fmt.Sprintf("Invalid arguments for tool '%s': %v", e.Tool, e.Err)
	case KindEmptyResult:
		return "Tool returned no result"
	default:
		return fmt.Sprintf("Tool execution error in '%s': %v", e.Tool, e.Err)
	}
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// KindOf returns the dispatch error kind of err, or "" if err is not a DispatchError.
func KindOf(err error) ErrorKind {
	var de *DispatchError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
