package circuit

import (
	"slices"

	"github.com/pkg/errors"
)

const (
	unvisited uint8 = iota
	inProgress
	finished
)

// Order is the evaluation order of a network: every combinational component appears
// after all components it depends on. Registers are excluded; they are set, never evaluated.
type Order struct {
	schedule     []ID
	propositions []ID
}

// Schedule returns every non-register component (gates, constants and derived
// propositions) in dependency order.
func (o *Order) Schedule() []ID { return o.schedule }

// Propositions returns the VIEW, LEGAL, GOAL and TERMINAL propositions in dependency order.
func (o *Order) Propositions() []ID { return o.propositions }

// Sort computes the evaluation order with a depth-first traversal over output edges.
// Edges into registers end a same-timestep chain and are not followed. Reaching a
// component that is still in progress means the network has a combinational cycle.
func Sort(n *Network) (*Order, error) {
	marks := make([]uint8, len(n.comps))
	post := make([]ID, 0, n.live)

	var visit func(id ID) error
	visit = func(id ID) error {
		switch marks[id] {
		case finished:
			return nil
		case inProgress:
			return errors.WithStack(&StructuralError{Kind: NotADag, Component: id, Detail: n.comps[id].String()})
		}
		marks[id] = inProgress
		for _, out := range n.comps[id].Outputs {
			if n.comps[out].IsRegister() {
				continue
			}
			if err := visit(out); err != nil {
				return err
			}
		}
		marks[id] = finished
		post = append(post, id)
		return nil
	}

	for i := range n.comps {
		if n.comps[i].removed {
			continue
		}
		if err := visit(ID(i)); err != nil {
			return nil, err
		}
	}

	slices.Reverse(post)
	o := &Order{schedule: make([]ID, 0, len(post))}
	for _, id := range post {
		c := &n.comps[id]
		if c.IsRegister() {
			continue
		}
		o.schedule = append(o.schedule, id)
		if c.Kind == Proposition {
			o.propositions = append(o.propositions, id)
		}
	}
	return o, nil
}
