package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"propnet/circuit"
)

func TestCatalog(t *testing.T) {
	require.Equal(t, []string{"switches", "tictactoe"}, Names())

	_, err := Lookup("chess")
	require.Error(t, err)

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			build, err := Lookup(name)
			require.NoError(t, err)

			net, err := build()

			require.NoError(t, err)
			order, err := circuit.Sort(net)
			require.NoError(t, err, "Sample networks must be acyclic")
			requireOrdered(t, net, order)
		})
	}
}

// requireOrdered checks that the schedule covers every combinational component once
// and places each after its non-register inputs.
func requireOrdered(t *testing.T, net *circuit.Network, order *circuit.Order) {
	t.Helper()
	position := make(map[circuit.ID]int)
	for i, id := range order.Schedule() {
		_, seen := position[id]
		require.False(t, seen, "%s scheduled twice", net.Component(id))
		position[id] = i
	}
	for _, id := range net.IDs() {
		c := net.Component(id)
		if c.IsRegister() {
			require.NotContains(t, position, id, "Registers are set, never scheduled")
			continue
		}
		require.Contains(t, position, id, "%s missing from the schedule", c)
		for _, in := range c.Inputs {
			if net.Component(in).IsRegister() {
				continue
			}
			require.Less(t, position[in], position[id], "%s must be scheduled after its input %s", c, net.Component(in))
		}
	}
}

func TestTicTacToeNetwork(t *testing.T) {
	net, err := TicTacToe()
	require.NoError(t, err)

	require.Equal(t, []circuit.Role{XPlayer, OPlayer}, net.Roles())
	require.Len(t, net.Bases(), 20, "Two marks per cell plus two control registers")
	require.NotEqual(t, circuit.None, net.Init())
	for _, role := range net.Roles() {
		require.Len(t, net.Inputs(role), 10)
		require.Len(t, net.Legals(role), 10)
		require.Len(t, net.Goals(role), 3)
	}
	require.Equal(t, circuit.Or, net.Component(net.Driver(net.Terminal())).Kind)
	stats := net.Stats()
	require.Equal(t, 1, stats.Propositions[circuit.Terminal])
	require.Equal(t, 20, stats.Propositions[circuit.Base])
}
