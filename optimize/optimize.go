package optimize

import (
	"propnet/circuit"
)

// Pass rewrites a network in place during the construction phase.
type Pass func(net *circuit.Network) (Report, error)

// Report describes what a pass did to the network.
type Report struct {
	Pass    string
	Before  int // live components before the pass
	After   int // live components after the pass
	Removed int
	Forced  int // LEGAL propositions forced to a constant-false driver
	Factors int // disjoint factors found after merging
	Applied bool
}

type set map[circuit.ID]struct{}

func (s set) has(id circuit.ID) bool {
	_, ok := s[id]
	return ok
}

func (s set) intersects(other set) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for id := range small {
		if large.has(id) {
			return true
		}
	}
	return false
}

// dependencies adds to deps every component root depends on, following input edges.
// Constants and the INIT proposition terminate the search and are not added.
func dependencies(net *circuit.Network, root circuit.ID, deps set) {
	stack := []circuit.ID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if deps.has(id) {
			continue
		}
		c := net.Component(id)
		if c.Kind == circuit.Constant || id == net.Init() {
			continue
		}
		deps[id] = struct{}{}
		stack = append(stack, c.Inputs...)
	}
}

// closure returns the dependency closure of roots, extended through the legality
// logic of every INPUT proposition it reaches until nothing new is added. Each LEGAL
// proposition in the closure brings its paired INPUT along.
func closure(net *circuit.Network, roots ...circuit.ID) set {
	deps := make(set)
	for _, root := range roots {
		dependencies(net, root, deps)
	}
	inputs := net.AllInputs()
	for {
		grown := false
		for _, input := range inputs {
			legal, ok := net.Pair(input)
			if !ok {
				continue
			}
			switch {
			case deps.has(input) && !deps.has(legal):
				dependencies(net, legal, deps)
				grown = true
			case deps.has(legal) && !deps.has(input):
				deps[input] = struct{}{}
				grown = true
			}
		}
		if !grown {
			return deps
		}
	}
}

func isPlayable(net *circuit.Network, deps set) bool {
	for _, input := range net.AllInputs() {
		if deps.has(input) {
			return true
		}
	}
	return false
}
