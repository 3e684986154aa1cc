package order

import (
	"fmt"
	"strings"
)

// IncompleteError reports a field required by the order type that was not
// supplied. It is raised before any exchange call.
type IncompleteError struct {
	Type    Type
	Missing []string
}

func (e *IncompleteError) Error() string {
	label := e.Type.Label()
	switch len(e.Missing) {
	case 0:
		return fmt.Sprintf("%s order is incomplete", label)
	case 1:
		return fmt.Sprintf("%s is required for %s orders", e.Missing[0], label)
	default:
		return fmt.Sprintf("both %s are required for %s orders", strings.Join(e.Missing, " and "), label)
	}
}

// InvalidError reports a supplied field whose value cannot be used.
type InvalidError struct {
	Field  string
	Reason string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RejectionError is an explicit refusal by the exchange, carrying the
// provider's code and message.
type RejectionError struct {
	Op      string
	Code    int64
	Message string
	Err     error
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s rejected by exchange: code=%d, msg=%s", e.Op, e.Code, e.Message)
}

func (e *RejectionError) Unwrap() error {
	return e.Err
}
