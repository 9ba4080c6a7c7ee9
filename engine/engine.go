package engine

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"propnet/circuit"
	"propnet/machine"
)

// Agent chooses a move for one role. Agents are not safe for concurrent use.
type Agent interface {
	SelectMove(m machine.StateMachine, state *machine.State, role circuit.Role) (circuit.Move, error)
}

// RandomAgent plays a uniformly random legal move.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) SelectMove(m machine.StateMachine, state *machine.State, role circuit.Role) (circuit.Move, error) {
	moves, err := m.LegalMoves(state, role)
	if err != nil {
		return "", err
	}
	if len(moves) == 0 {
		return "", errors.Errorf("role %s has no legal move", role)
	}
	return moves[a.rng.Intn(len(moves))], nil
}

// LegalAgent always plays the first legal move.
type LegalAgent struct{}

func (LegalAgent) SelectMove(m machine.StateMachine, state *machine.State, role circuit.Role) (circuit.Move, error) {
	moves, err := m.LegalMoves(state, role)
	if err != nil {
		return "", err
	}
	if len(moves) == 0 {
		return "", errors.Errorf("role %s has no legal move", role)
	}
	return moves[0], nil
}
