package machine

import (
	"propnet/circuit"
)

// program is the read-only compiled form of a frozen network. Forked machines share
// one program and own their value vectors.
type program struct {
	net   *circuit.Network
	order *circuit.Order

	kinds    []circuit.Kind
	register []bool
	consts   []bool
	inputs   [][]circuit.ID
	outputs  [][]circuit.ID

	bases       []circuit.ID
	baseDrivers []circuit.ID
	terminal    circuit.ID
	init        circuit.ID

	roles      []circuit.Role
	roleIndex  map[circuit.Role]int
	legals     [][]circuit.ID
	legalMoves [][]circuit.Move
	goals      [][]circuit.ID
	goalScores [][]int
	inputIndex []map[circuit.Move]circuit.ID
	allInputs  []circuit.ID
}

func compile(net *circuit.Network, order *circuit.Order) *program {
	size := net.Cap()
	p := &program{
		net:       net,
		order:     order,
		kinds:     make([]circuit.Kind, size),
		register:  make([]bool, size),
		consts:    make([]bool, size),
		inputs:    make([][]circuit.ID, size),
		outputs:   make([][]circuit.ID, size),
		bases:     net.Bases(),
		terminal:  net.Terminal(),
		init:      net.Init(),
		roles:     net.Roles(),
		roleIndex: make(map[circuit.Role]int),
		allInputs: net.AllInputs(),
	}
	for _, id := range net.IDs() {
		c := net.Component(id)
		p.kinds[id] = c.Kind
		p.register[id] = c.IsRegister()
		p.consts[id] = c.Kind == circuit.Constant && c.Value
		p.inputs[id] = c.Inputs
		p.outputs[id] = c.Outputs
	}
	p.baseDrivers = make([]circuit.ID, len(p.bases))
	for i, id := range p.bases {
		p.baseDrivers[i] = net.Driver(id)
	}

	p.legals = make([][]circuit.ID, len(p.roles))
	p.legalMoves = make([][]circuit.Move, len(p.roles))
	p.goals = make([][]circuit.ID, len(p.roles))
	p.goalScores = make([][]int, len(p.roles))
	p.inputIndex = make([]map[circuit.Move]circuit.ID, len(p.roles))
	for ri, role := range p.roles {
		p.roleIndex[role] = ri
		for _, id := range net.Legals(role) {
			move := net.Component(id).Move
			if input, ok := net.Pair(id); ok {
				move = net.Component(input).Move
			}
			p.legals[ri] = append(p.legals[ri], id)
			p.legalMoves[ri] = append(p.legalMoves[ri], move)
		}
		for _, id := range net.Goals(role) {
			p.goals[ri] = append(p.goals[ri], id)
			p.goalScores[ri] = append(p.goalScores[ri], net.Component(id).Score)
		}
		p.inputIndex[ri] = make(map[circuit.Move]circuit.ID)
		for _, id := range net.Inputs(role) {
			p.inputIndex[ri][net.Component(id).Move] = id
		}
	}
	return p
}

// compute evaluates a combinational component from the current values of its inputs.
func (p *program) compute(id circuit.ID, values []bool) bool {
	in := p.inputs[id]
	switch p.kinds[id] {
	case circuit.And:
		for _, i := range in {
			if !values[i] {
				return false
			}
		}
		return true
	case circuit.Or:
		for _, i := range in {
			if values[i] {
				return true
			}
		}
		return false
	case circuit.Not:
		return !values[in[0]]
	case circuit.Constant:
		return p.consts[id]
	default:
		if len(in) == 0 {
			return false
		}
		return values[in[0]]
	}
}

// readout collects the terminal, legal and goal results from propagated values.
func (p *program) readout(values []bool) *result {
	r := &result{
		legal: make([][]circuit.Move, len(p.roles)),
		goals: make([][]int, len(p.roles)),
	}
	if p.terminal != circuit.None {
		r.terminal = values[p.terminal]
	}
	for ri := range p.roles {
		for i, id := range p.legals[ri] {
			if values[id] {
				r.legal[ri] = append(r.legal[ri], p.legalMoves[ri][i])
			}
		}
		for i, id := range p.goals[ri] {
			if values[id] {
				r.goals[ri] = append(r.goals[ri], p.goalScores[ri][i])
			}
		}
	}
	return r
}

// next reads the value of every BASE proposition's driver as the next state.
func (p *program) next(values []bool) *State {
	s := newState(len(p.bases))
	s.prog = p
	for i, driver := range p.baseDrivers {
		if driver != circuit.None && values[driver] {
			s.set(i)
		}
	}
	return s
}
