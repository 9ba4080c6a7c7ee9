package circuit

import (
	"fmt"

	"github.com/pkg/errors"
)

type moveKey struct {
	role Role
	move Move
}

// Builder assembles a Network from already-grounded components. It is the inbound
// contract for the rule compiler; sample games and tests build networks with it directly.
type Builder struct {
	net     *Network
	roleSet map[Role]bool
	inputs  map[moveKey]ID
	legals  map[moveKey]ID
	errs    []error
}

func NewBuilder(roles ...Role) *Builder {
	b := &Builder{
		net:     newNetwork(roles),
		roleSet: make(map[Role]bool),
		inputs:  make(map[moveKey]ID),
		legals:  make(map[moveKey]ID),
	}
	for _, r := range roles {
		b.roleSet[r] = true
	}
	return b
}

func (b *Builder) fail(err error) {
	b.errs = append(b.errs, err)
}

func (b *Builder) checkRole(role Role) {
	if !b.roleSet[role] {
		b.fail(errors.Wrapf(ErrMalformed, "unknown role %q", role))
	}
}

func (b *Builder) gate(kind Kind, inputs []ID) ID {
	id := b.net.add(Component{Kind: kind})
	for _, in := range inputs {
		b.Connect(in, id)
	}
	return id
}

func (b *Builder) And(inputs ...ID) ID { return b.gate(And, inputs) }

func (b *Builder) Or(inputs ...ID) ID { return b.gate(Or, inputs) }

func (b *Builder) Not(input ID) ID { return b.gate(Not, []ID{input}) }

func (b *Builder) Constant(value bool) ID {
	return b.net.add(Component{Kind: Constant, Value: value})
}

// View adds an ordinary derived proposition.
func (b *Builder) View(name string) ID {
	return b.net.add(Component{Kind: Proposition, Tag: View, Name: name})
}

// Base adds a register whose next value is given by the driver set with Drive.
func (b *Builder) Base(name string) ID {
	id := b.net.add(Component{Kind: Proposition, Tag: Base, Name: name})
	b.net.bases = append(b.net.bases, id)
	return id
}

func (b *Builder) Input(role Role, move Move) ID {
	b.checkRole(role)
	key := moveKey{role, move}
	if _, ok := b.inputs[key]; ok {
		b.fail(errors.Wrapf(ErrMalformed, "duplicate input %s %s", role, move))
	}
	id := b.net.add(Component{
		Kind: Proposition,
		Tag:  Input,
		Name: fmt.Sprintf("(does %s %s)", role, move),
		Role: role,
		Move: move,
	})
	b.inputs[key] = id
	b.net.inputs[role] = append(b.net.inputs[role], id)
	return id
}

func (b *Builder) Legal(role Role, move Move) ID {
	b.checkRole(role)
	key := moveKey{role, move}
	if _, ok := b.legals[key]; ok {
		b.fail(errors.Wrapf(ErrMalformed, "duplicate legal %s %s", role, move))
	}
	id := b.net.add(Component{
		Kind: Proposition,
		Tag:  Legal,
		Name: fmt.Sprintf("(legal %s %s)", role, move),
		Role: role,
		Move: move,
	})
	b.legals[key] = id
	b.net.legals[role] = append(b.net.legals[role], id)
	return id
}

func (b *Builder) Goal(role Role, score int) ID {
	b.checkRole(role)
	id := b.net.add(Component{
		Kind:  Proposition,
		Tag:   Goal,
		Name:  fmt.Sprintf("(goal %s %d)", role, score),
		Role:  role,
		Score: score,
	})
	b.net.goals[role] = append(b.net.goals[role], id)
	return id
}

// Terminal returns the TERMINAL proposition, creating it on first use.
func (b *Builder) Terminal() ID {
	if b.net.terminal == None {
		b.net.terminal = b.net.add(Component{Kind: Proposition, Tag: Terminal, Name: "terminal"})
	}
	return b.net.terminal
}

// Init returns the INIT proposition, creating it on first use.
func (b *Builder) Init() ID {
	if b.net.init == None {
		b.net.init = b.net.add(Component{Kind: Proposition, Tag: Init, Name: "init"})
	}
	return b.net.init
}

// Connect adds the edge from -> to.
func (b *Builder) Connect(from, to ID) {
	if !b.net.Live(from) || !b.net.Live(to) {
		b.fail(errors.Wrapf(ErrMalformed, "edge %d -> %d names an unknown component", from, to))
		return
	}
	b.net.connect(from, to)
}

// Drive sets the single driving input of a proposition. For a BASE proposition the
// driver computes the register's value at the next time step.
func (b *Builder) Drive(prop, driver ID) {
	b.Connect(driver, prop)
}

// Build validates arities and the legal/input pairing and returns the network.
func (b *Builder) Build() (*Network, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	n := b.net
	if n.terminal == None {
		return nil, errors.Wrap(ErrMalformed, "network has no terminal proposition")
	}
	for i := range n.comps {
		if err := validate(ID(i), &n.comps[i]); err != nil {
			return nil, err
		}
	}
	for key, legal := range b.legals {
		input, ok := b.inputs[key]
		if !ok {
			return nil, malformed(legal, "legal %s %s has no input proposition", key.role, key.move)
		}
		n.pairs[legal] = input
		n.pairs[input] = legal
	}
	b.net = nil
	return n, nil
}

func validate(id ID, c *Component) error {
	arity := len(c.Inputs)
	switch c.Kind {
	case Not:
		if arity != 1 {
			return malformed(id, "NOT needs exactly one input, has %d", arity)
		}
	case Constant:
		if arity != 0 {
			return malformed(id, "constant has %d inputs", arity)
		}
	case Proposition:
		switch c.Tag {
		case Input, Init:
			if arity != 0 {
				return malformed(id, "%s proposition cannot have a driving input", c.Tag)
			}
		case Base:
			if arity > 1 {
				return malformed(id, "base proposition %s has %d next-state drivers", c.Name, arity)
			}
		default:
			if arity != 1 {
				return malformed(id, "%s needs exactly one input, has %d", c, arity)
			}
		}
	}
	return nil
}
