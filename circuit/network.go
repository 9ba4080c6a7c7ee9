package circuit

import (
	"slices"
)

// Network is the compiled circuit: an arena of components addressed by ID plus the
// role-tagged partitions the evaluator reads. Topology is mutable only until Freeze;
// the optimize package is its only writer.
type Network struct {
	comps []Component
	live  int

	roles    []Role
	terminal ID
	init     ID
	bases    []ID
	inputs   map[Role][]ID
	legals   map[Role][]ID
	goals    map[Role][]ID
	pairs    map[ID]ID // LEGAL <-> INPUT, both directions

	frozen bool
}

func newNetwork(roles []Role) *Network {
	return &Network{
		roles:    slices.Clone(roles),
		terminal: None,
		init:     None,
		inputs:   make(map[Role][]ID),
		legals:   make(map[Role][]ID),
		goals:    make(map[Role][]ID),
		pairs:    make(map[ID]ID),
	}
}

// Len returns the number of live components.
func (n *Network) Len() int { return n.live }

// Cap returns the arena size; IDs range over [0, Cap).
func (n *Network) Cap() int { return len(n.comps) }

// Live reports whether id names a component that has not been removed.
func (n *Network) Live(id ID) bool {
	return id >= 0 && int(id) < len(n.comps) && !n.comps[id].removed
}

// Component returns the component at id. Callers must not modify it.
func (n *Network) Component(id ID) *Component { return &n.comps[id] }

// IDs returns the live component IDs in arena order.
func (n *Network) IDs() []ID {
	ids := make([]ID, 0, n.live)
	for i := range n.comps {
		if !n.comps[i].removed {
			ids = append(ids, ID(i))
		}
	}
	return ids
}

func (n *Network) Roles() []Role { return slices.Clone(n.roles) }

func (n *Network) Terminal() ID { return n.terminal }

// Init returns the INIT proposition, or None when the network has none.
func (n *Network) Init() ID { return n.init }

func (n *Network) Bases() []ID { return slices.Clone(n.bases) }

func (n *Network) Inputs(role Role) []ID { return slices.Clone(n.inputs[role]) }

func (n *Network) Legals(role Role) []ID { return slices.Clone(n.legals[role]) }

func (n *Network) Goals(role Role) []ID { return slices.Clone(n.goals[role]) }

// AllInputs returns every INPUT proposition, grouped by role in role order.
func (n *Network) AllInputs() []ID {
	var ids []ID
	for _, r := range n.roles {
		ids = append(ids, n.inputs[r]...)
	}
	return ids
}

// Pair returns the INPUT paired with a LEGAL proposition or the LEGAL paired with an
// INPUT proposition.
func (n *Network) Pair(id ID) (ID, bool) {
	p, ok := n.pairs[id]
	return p, ok
}

// Driver returns the single input of a proposition or NOT gate, or None.
func (n *Network) Driver(id ID) ID {
	in := n.comps[id].Inputs
	if len(in) == 0 {
		return None
	}
	return in[0]
}

// Freeze ends the construction phase. Any later mutation panics.
func (n *Network) Freeze() { n.frozen = true }

func (n *Network) Frozen() bool { return n.frozen }

func (n *Network) mustMutate() {
	if n.frozen {
		panic("circuit: network is frozen")
	}
}

func (n *Network) add(c Component) ID {
	id := ID(len(n.comps))
	n.comps = append(n.comps, c)
	n.live++
	return id
}

func (n *Network) connect(from, to ID) {
	n.comps[from].Outputs = append(n.comps[from].Outputs, to)
	n.comps[to].Inputs = append(n.comps[to].Inputs, from)
}

// AddConstant appends a new CONSTANT component.
func (n *Network) AddConstant(value bool) ID {
	n.mustMutate()
	return n.add(Component{Kind: Constant, Value: value})
}

// SetDriver replaces every input of id with the single driver.
func (n *Network) SetDriver(id, driver ID) {
	n.mustMutate()
	c := &n.comps[id]
	for _, in := range c.Inputs {
		n.comps[in].Outputs = deleteID(n.comps[in].Outputs, id)
	}
	c.Inputs = nil
	n.connect(driver, id)
}

// Remove deletes a component, cutting every edge that touches it and dropping it from
// the role partitions. Removing a paired proposition unpairs its partner.
func (n *Network) Remove(id ID) {
	n.mustMutate()
	c := &n.comps[id]
	if c.removed {
		return
	}
	for _, in := range c.Inputs {
		n.comps[in].Outputs = deleteID(n.comps[in].Outputs, id)
	}
	for _, out := range c.Outputs {
		n.comps[out].Inputs = deleteID(n.comps[out].Inputs, id)
	}
	c.Inputs, c.Outputs = nil, nil
	c.removed = true
	n.live--

	if c.Kind != Proposition {
		return
	}
	switch c.Tag {
	case Base:
		n.bases = deleteID(n.bases, id)
	case Input:
		n.inputs[c.Role] = deleteID(n.inputs[c.Role], id)
	case Legal:
		n.legals[c.Role] = deleteID(n.legals[c.Role], id)
	case Goal:
		n.goals[c.Role] = deleteID(n.goals[c.Role], id)
	case Terminal:
		n.terminal = None
	case Init:
		n.init = None
	}
	if p, ok := n.pairs[id]; ok {
		delete(n.pairs, id)
		delete(n.pairs, p)
	}
}

func deleteID(ids []ID, id ID) []ID {
	return slices.DeleteFunc(ids, func(x ID) bool { return x == id })
}

// Stats counts live components by kind and proposition tag.
type Stats struct {
	Components   int
	Gates        int
	Constants    int
	Propositions map[Tag]int
}

func (n *Network) Stats() Stats {
	s := Stats{Components: n.live, Propositions: make(map[Tag]int)}
	for i := range n.comps {
		c := &n.comps[i]
		if c.removed {
			continue
		}
		switch c.Kind {
		case And, Or, Not:
			s.Gates++
		case Constant:
			s.Constants++
		case Proposition:
			s.Propositions[c.Tag]++
		}
	}
	return s
}
