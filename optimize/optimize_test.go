package optimize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"propnet/circuit"
	"propnet/game"
)

func names(net *circuit.Network, deps set) []string {
	var out []string
	for id := range deps {
		if c := net.Component(id); c.Kind == circuit.Proposition {
			out = append(out, c.Name)
		}
	}
	return out
}

func TestClosure(t *testing.T) {
	t.Run("stops at constants and init", func(t *testing.T) {
		b := circuit.NewBuilder("r")
		init := b.Init()
		k := b.Constant(true)
		p := b.Base("p")
		b.Drive(p, b.Or(init, k))
		b.Drive(b.Terminal(), p)
		net, err := b.Build()
		require.NoError(t, err)

		deps := closure(net, net.Terminal())

		require.False(t, deps.has(init))
		require.False(t, deps.has(k))
		require.True(t, deps.has(p), "Base registers are followed into their next-state logic")
		require.Len(t, deps, 3)
	})

	t.Run("extends through legality until nothing changes", func(t *testing.T) {
		net, err := game.TicTacToe()
		require.NoError(t, err)

		deps := closure(net, net.Terminal())

		for _, id := range net.AllInputs() {
			require.True(t, deps.has(id), "%s should be reached", net.Component(id))
		}
		require.Contains(t, names(net, deps), "(legal o noop)")
		require.Contains(t, names(net, deps), "(control o)")
	})
}

func TestPrune(t *testing.T) {
	t.Run("drops logic that cannot reach terminal or goals", func(t *testing.T) {
		net, err := game.Switches()
		require.NoError(t, err)
		before := net.Len()

		report, err := Prune(net)

		require.NoError(t, err)
		require.True(t, report.Applied)
		require.Equal(t, before, report.Before)
		require.Equal(t, before-report.Removed, report.After)
		require.Equal(t, report.After, net.Len())
		require.Len(t, net.Bases(), 2, "The noise register should be gone")
		require.Len(t, net.Inputs(game.Operator), 2)
		require.Len(t, net.Legals(game.Operator), 2)
		for _, id := range net.Legals(game.Operator) {
			_, ok := net.Pair(id)
			require.True(t, ok, "Kept legal propositions keep their inputs")
		}
		_, err = circuit.Sort(net)
		require.NoError(t, err)
	})

	t.Run("leaves a fully relevant network alone", func(t *testing.T) {
		net, err := game.TicTacToe()
		require.NoError(t, err)
		before := net.Len()

		report, err := Prune(net)

		require.NoError(t, err)
		require.False(t, report.Applied)
		require.Equal(t, before, net.Len())
	})
}

func TestFactorDisjunctions(t *testing.T) {
	t.Run("splits independent switches", func(t *testing.T) {
		net, err := game.Switches()
		require.NoError(t, err)
		before := net.Len()

		report, err := FactorDisjunctions(net)

		require.NoError(t, err)
		require.Equal(t, 2, report.Factors, "Terminal and goal disjuncts should merge per switch")
		require.Equal(t, 2, report.Forced, "flip b and hum should be disabled")
		require.Equal(t, before+1, net.Len(), "Only the shared false constant is added")
		for _, id := range net.Legals(game.Operator) {
			c := net.Component(id)
			driver := net.Component(net.Driver(id))
			if c.Move == game.FlipA {
				require.Equal(t, circuit.Not, driver.Kind)
				continue
			}
			require.Equal(t, circuit.Constant, driver.Kind, "%s should be forced", c.Name)
			require.False(t, driver.Value)
		}
	})

	t.Run("merges overlapping disjuncts", func(t *testing.T) {
		net, err := game.TicTacToe()
		require.NoError(t, err)

		report, err := FactorDisjunctions(net)

		require.NoError(t, err)
		require.Equal(t, 1, report.Factors)
		require.Zero(t, report.Forced)
	})

	t.Run("skips single-disjunct ORs", func(t *testing.T) {
		b := circuit.NewBuilder("r")
		p := b.Base("p")
		b.Input("r", "go")
		b.Drive(b.Legal("r", "go"), b.Constant(true))
		b.Drive(b.Terminal(), b.Or(b.Or(p)))
		b.Drive(b.Goal("r", 100), b.Or(p))
		net, err := b.Build()
		require.NoError(t, err)
		before := net.Len()

		report, err := FactorDisjunctions(net)

		require.NoError(t, err)
		require.Zero(t, report.Factors)
		require.False(t, report.Applied)
		require.Equal(t, before, net.Len(), "No constant should be added")
	})

	t.Run("skips conjunctive terminals", func(t *testing.T) {
		b := circuit.NewBuilder("r")
		p := b.Base("p")
		b.Drive(b.Terminal(), b.And(p))
		net, err := b.Build()
		require.NoError(t, err)

		report, err := FactorDisjunctions(net)

		require.NoError(t, err)
		require.Zero(t, report.Factors)
		require.False(t, report.Applied)
	})
}

func TestDisjunction(t *testing.T) {
	b := circuit.NewBuilder("r")
	p := b.Base("p")
	q := b.Base("q")
	v := b.View("v")
	b.Drive(v, b.And(p, q))
	inner := b.Or(q, v)
	b.Drive(b.Terminal(), b.Or(p, inner, q))
	net, err := b.Build()
	require.NoError(t, err)

	got := disjunction(net, net.Driver(net.Terminal()))

	require.Equal(t, []circuit.ID{p, q, v}, got)
}
