package machine

import (
	"fmt"

	"propnet/circuit"
)

var (
	ErrGoalIllDefined      = &GoalIllDefinedError{}
	ErrMovesUndefined      = &MovesUndefinedError{}
	ErrTransitionUndefined = &TransitionUndefinedError{}
	ErrStateMismatch       = &StateMismatchError{}
)

// GoalIllDefinedError is returned when a role does not have exactly one true GOAL
// proposition in a state.
type GoalIllDefinedError struct {
	Role  circuit.Role
	State *State
	Count int
}

func (e *GoalIllDefinedError) Error() string {
	return fmt.Sprintf("goal ill-defined for role %s in state %v: %d goal propositions true", e.Role, e.State, e.Count)
}

func (e *GoalIllDefinedError) Is(target error) bool {
	_, ok := target.(*GoalIllDefinedError)
	return ok
}

// MovesUndefinedError is returned when a role has no legal move in a non-terminal state.
type MovesUndefinedError struct {
	Role  circuit.Role
	State *State
}

func (e *MovesUndefinedError) Error() string {
	return fmt.Sprintf("moves undefined for role %s in state %v", e.Role, e.State)
}

func (e *MovesUndefinedError) Is(target error) bool {
	_, ok := target.(*MovesUndefinedError)
	return ok
}

// TransitionUndefinedError is returned when a joint action does not yield a
// well-formed next state.
type TransitionUndefinedError struct {
	State  *State
	Action []circuit.Move
	Reason string
}

func (e *TransitionUndefinedError) Error() string {
	return fmt.Sprintf("transition undefined from state %v with action %v: %s", e.State, e.Action, e.Reason)
}

func (e *TransitionUndefinedError) Is(target error) bool {
	_, ok := target.(*TransitionUndefinedError)
	return ok
}

// StateMismatchError is returned when a state was produced by a network with a
// different number of BASE propositions than the one being queried.
type StateMismatchError struct {
	State *State
	Bases int
}

func (e *StateMismatchError) Error() string {
	return fmt.Sprintf("state %v covers %d base propositions, network has %d", e.State, e.State.Len(), e.Bases)
}

func (e *StateMismatchError) Is(target error) bool {
	_, ok := target.(*StateMismatchError)
	return ok
}
