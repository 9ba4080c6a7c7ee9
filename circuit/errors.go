package circuit

import (
	"fmt"

	"github.com/pkg/errors"
)

type StructuralKind int

const (
	NotADag StructuralKind = iota
	Malformed
)

var (
	ErrNotADag   = &StructuralError{Kind: NotADag, Component: None}
	ErrMalformed = &StructuralError{Kind: Malformed, Component: None}
)

// StructuralError reports a network that cannot be evaluated. It is fatal at load time.
type StructuralError struct {
	Kind      StructuralKind
	Component ID
	Detail    string
}

func (e *StructuralError) Error() string {
	var what string
	switch e.Kind {
	case NotADag:
		what = "not a DAG"
	case Malformed:
		what = "malformed network"
	default:
		what = "structural error"
	}
	if e.Component != None {
		what = fmt.Sprintf("%s at component %d", what, e.Component)
	}
	if e.Detail != "" {
		what += ": " + e.Detail
	}
	return what
}

// Is matches any StructuralError of the same kind, so callers can test
// errors.Is(err, circuit.ErrNotADag).
func (e *StructuralError) Is(target error) bool {
	t, ok := target.(*StructuralError)
	return ok && t.Kind == e.Kind
}

func malformed(id ID, format string, args ...any) error {
	return errors.WithStack(&StructuralError{Kind: Malformed, Component: id, Detail: fmt.Sprintf(format, args...)})
}
