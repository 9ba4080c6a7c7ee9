package machine

import (
	"fmt"
	"slices"
	"sync"

	"github.com/pkg/errors"

	"propnet/circuit"
	"propnet/metrics"
	"propnet/optimize"
)

// StateMachine is the query contract search collaborators consume.
type StateMachine interface {
	Roles() []circuit.Role
	InitialState() *State
	IsTerminal(state *State) bool
	GoalValue(state *State, role circuit.Role) (int, error)
	LegalMoves(state *State, role circuit.Role) ([]circuit.Move, error)
	NextState(state *State, action []circuit.Move) (*State, error)
	AllPossibleActions(role circuit.Role) ([]circuit.Move, error)
}

type Strategy int

const (
	FullReset Strategy = iota
	Differential
)

func (s Strategy) String() string {
	switch s {
	case FullReset:
		return "full"
	case Differential:
		return "differential"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy accepts the names produced by Strategy.String.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "full", "full-reset":
		return FullReset, nil
	case "differential", "diff":
		return Differential, nil
	}
	return FullReset, errors.Errorf("unknown strategy %q", name)
}

type Option func(m *Machine)

func WithStrategy(strategy Strategy) Option {
	return func(m *Machine) {
		m.strategy = strategy
	}
}

// WithPasses runs structural optimisation passes, in order, before the network is
// ordered and frozen.
func WithPasses(passes ...optimize.Pass) Option {
	return func(m *Machine) {
		m.passes = append(m.passes, passes...)
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(m *Machine) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

// Machine answers queries against a compiled network. Queries on one Machine are
// serialised; use Fork to give each goroutine its own value vector over the shared
// read-only topology.
type Machine struct {
	mu       sync.Mutex
	prog     *program
	strategy Strategy
	passes   []optimize.Pass
	prop     propagator
	metrics  metrics.Collector
	reports  []optimize.Report
}

var _ StateMachine = (*Machine)(nil)

// New optimises, orders and freezes net, then returns a machine over it.
func New(net *circuit.Network, options ...Option) (*Machine, error) {
	m := &Machine{ // Default values
		strategy: FullReset,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if net.Frozen() && len(m.passes) > 0 {
		return nil, errors.New("cannot optimise a frozen network")
	}

	for _, pass := range m.passes {
		report, err := pass(net)
		if err != nil {
			return nil, errors.Wrapf(err, "%s pass", report.Pass)
		}
		m.reports = append(m.reports, report)
	}

	order, err := circuit.Sort(net)
	if err != nil {
		return nil, err
	}
	net.Freeze()

	m.prog = compile(net, order)
	m.prop = m.newPropagator()
	return m, nil
}

func (m *Machine) newPropagator() propagator {
	if m.strategy == Differential {
		return newDifferential(m.prog, m.metrics)
	}
	return newFullReset(m.prog, m.metrics)
}

// Fork returns a machine sharing this machine's compiled network with a private
// value vector. The metrics collector is shared.
func (m *Machine) Fork() *Machine {
	f := &Machine{
		prog:     m.prog,
		strategy: m.strategy,
		metrics:  m.metrics,
		reports:  m.reports,
	}
	f.prop = f.newPropagator()
	return f
}

func (m *Machine) Strategy() Strategy { return m.strategy }

// Network returns the frozen network the machine evaluates.
func (m *Machine) Network() *circuit.Network { return m.prog.net }

// Reports returns the results of the optimisation passes run by New.
func (m *Machine) Reports() []optimize.Report { return m.reports }

func (m *Machine) Roles() []circuit.Role { return slices.Clone(m.prog.roles) }

// InitialState sets INIT, propagates and reads the registers' next values.
func (m *Machine) InitialState() *State {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prop.load(newState(len(m.prog.bases)), nil, true)
	return m.prog.next(m.prop.values())
}

// IsTerminal panics when state covers a different number of BASE propositions than
// the machine's network.
func (m *Machine) IsTerminal(state *State) bool {
	r, err := m.mark(state)
	if err != nil {
		panic(err)
	}
	return r.terminal
}

func (m *Machine) GoalValue(state *State, role circuit.Role) (int, error) {
	ri, ok := m.prog.roleIndex[role]
	if !ok {
		return 0, &GoalIllDefinedError{Role: role, State: state}
	}
	r, err := m.mark(state)
	if err != nil {
		return 0, err
	}
	goals := r.goals[ri]
	if len(goals) != 1 {
		return 0, &GoalIllDefinedError{Role: role, State: state, Count: len(goals)}
	}
	return goals[0], nil
}

func (m *Machine) LegalMoves(state *State, role circuit.Role) ([]circuit.Move, error) {
	ri, ok := m.prog.roleIndex[role]
	if !ok {
		return nil, &MovesUndefinedError{Role: role, State: state}
	}
	r, err := m.mark(state)
	if err != nil {
		return nil, err
	}
	if len(r.legal[ri]) == 0 && !r.terminal {
		return nil, &MovesUndefinedError{Role: role, State: state}
	}
	return slices.Clone(r.legal[ri]), nil
}

// NextState computes the state following action, given as one move per role in
// role order.
func (m *Machine) NextState(state *State, action []circuit.Move) (*State, error) {
	inputs, err := m.resolve(state, action)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.prop.load(state, inputs, false)
	m.metrics.AddTransition()
	return m.prog.next(m.prop.values()), nil
}

func (m *Machine) resolve(state *State, action []circuit.Move) ([]circuit.ID, error) {
	p := m.prog
	undefined := func(format string, args ...any) error {
		return &TransitionUndefinedError{State: state, Action: action, Reason: fmt.Sprintf(format, args...)}
	}
	if len(p.bases) == 0 {
		return nil, undefined("network has no base propositions")
	}
	if state.Len() != len(p.bases) {
		return nil, undefined("state covers %d base propositions, network has %d", state.Len(), len(p.bases))
	}
	if len(action) != len(p.roles) {
		return nil, undefined("got %d moves for %d roles", len(action), len(p.roles))
	}
	inputs := make([]circuit.ID, len(action))
	for ri, move := range action {
		id, ok := p.inputIndex[ri][move]
		if !ok {
			return nil, undefined("role %s has no move %s", p.roles[ri], move)
		}
		inputs[ri] = id
	}
	return inputs, nil
}

// AllPossibleActions returns every move the role could ever make, legal or not.
func (m *Machine) AllPossibleActions(role circuit.Role) ([]circuit.Move, error) {
	ri, ok := m.prog.roleIndex[role]
	if !ok || len(m.prog.legalMoves[ri]) == 0 {
		return nil, &MovesUndefinedError{Role: role, State: m.InitialState()}
	}
	return slices.Clone(m.prog.legalMoves[ri]), nil
}

// Describe returns the names of the true BASE propositions in state.
func (m *Machine) Describe(state *State) []string {
	var names []string
	for i, id := range m.prog.bases {
		if state.Has(i) {
			names = append(names, m.prog.net.Component(id).Name)
		}
	}
	return names
}

// mark returns the result bundle for state. The bundle is cached on states produced
// by this machine's compiled network (forks included); states from any other network
// are evaluated on every query.
func (m *Machine) mark(state *State) (*result, error) {
	if state.Len() != len(m.prog.bases) {
		return nil, &StateMismatchError{State: state, Bases: len(m.prog.bases)}
	}
	if state.prog != m.prog {
		return m.evaluate(state), nil
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if state.result != nil {
		m.metrics.AddCacheHit()
		return state.result, nil
	}
	state.result = m.evaluate(state)
	return state.result, nil
}

func (m *Machine) evaluate(state *State) *result {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prop.load(state, nil, false)
	return m.prog.readout(m.prop.values())
}
