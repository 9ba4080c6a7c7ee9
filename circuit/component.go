package circuit

import "fmt"

// ID addresses a component in a Network's arena.
type ID int32

// None marks an absent component (no INIT proposition, no driver).
const None ID = -1

// Role names a player of the game.
type Role string

// Move is the action term carried by an INPUT proposition and its paired LEGAL proposition.
type Move string

type Kind uint8

const (
	And Kind = iota
	Or
	Not
	Constant
	Proposition
)

func (k Kind) String() string {
	switch k {
	case And:
		return "AND"
	case Or:
		return "OR"
	case Not:
		return "NOT"
	case Constant:
		return "CONSTANT"
	case Proposition:
		return "PROPOSITION"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Tag is the role a proposition plays in the network. Gates and constants carry View.
type Tag uint8

const (
	View Tag = iota
	Base
	Input
	Legal
	Goal
	Terminal
	Init
)

func (t Tag) String() string {
	switch t {
	case View:
		return "VIEW"
	case Base:
		return "BASE"
	case Input:
		return "INPUT"
	case Legal:
		return "LEGAL"
	case Goal:
		return "GOAL"
	case Terminal:
		return "TERMINAL"
	case Init:
		return "INIT"
	}
	return fmt.Sprintf("Tag(%d)", t)
}

// IsRegister reports whether propositions with this tag are set by the evaluator
// rather than derived by propagation.
func (t Tag) IsRegister() bool {
	return t == Base || t == Input || t == Init
}

// Component is a node of the compiled circuit.
type Component struct {
	Kind Kind
	Tag  Tag
	Name string

	Role  Role // owner of an INPUT, LEGAL or GOAL proposition
	Move  Move // INPUT and LEGAL propositions
	Score int  // GOAL propositions
	Value bool // CONSTANT components

	Inputs  []ID
	Outputs []ID

	removed bool
}

// IsRegister reports whether c is a BASE, INPUT or INIT proposition.
func (c *Component) IsRegister() bool {
	return c.Kind == Proposition && c.Tag.IsRegister()
}

func (c *Component) String() string {
	if c.Kind != Proposition {
		return c.Kind.String()
	}
	if c.Name != "" {
		return fmt.Sprintf("%s %s", c.Tag, c.Name)
	}
	return c.Tag.String()
}
