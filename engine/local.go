package engine

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"propnet/circuit"
	"propnet/machine"
	"propnet/meta"
)

type Option func(e *Engine)

func WithMaxTurns(turns int) Option {
	return func(e *Engine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// Engine plays one match on a state machine, one agent per role.
type Engine struct {
	Machine  machine.StateMachine
	Agents   []Agent
	State    *machine.State
	maxTurns int
}

// Result of a match. Goals is only filled when the match reached a terminal state.
type Result struct {
	Terminal bool
	Turns    int
	Goals    map[circuit.Role]int
	Duration time.Duration
}

func LocalEngine(m machine.StateMachine, agents []Agent, options ...Option) *Engine {
	if len(agents) != len(m.Roles()) {
		panic("number of roles does not match number of agents")
	}

	e := &Engine{
		Machine:  m,
		Agents:   agents,
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run plays from the initial state until the game ends or the turn limit is reached.
func (e *Engine) Run() (Result, error) {
	start := time.Now()
	roles := e.Machine.Roles()
	e.State = e.Machine.InitialState()

	log.Debug().Msgf("match starting with roles %v", roles)

	turn := 0
	for ; !e.Machine.IsTerminal(e.State) && turn < e.maxTurns; turn++ {
		action := make([]circuit.Move, len(roles))
		for i, role := range roles {
			move, err := e.Agents[i].SelectMove(e.Machine, e.State, role)
			if err != nil {
				return Result{}, errors.Wrapf(err, "turn %d", turn+1)
			}
			action[i] = move
		}

		next, err := e.Machine.NextState(e.State, action)
		if err != nil {
			return Result{}, errors.Wrapf(err, "turn %d", turn+1)
		}
		e.State = next
	}

	result := Result{Turns: turn, Duration: time.Since(start)}
	if !e.Machine.IsTerminal(e.State) {
		log.Debug().Msgf("stopped after %d turns (no terminal state yet)", turn)
		return result, nil
	}

	result.Terminal = true
	result.Goals = make(map[circuit.Role]int, len(roles))
	for _, role := range roles {
		goal, err := e.Machine.GoalValue(e.State, role)
		if err != nil {
			return result, err
		}
		result.Goals[role] = goal
	}
	log.Debug().Msgf("match over after %d turns with goals %v", turn, result.Goals)
	return result, nil
}
