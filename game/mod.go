package game

import (
	"sort"

	"github.com/pkg/errors"

	"propnet/circuit"
)

// Factory builds a fresh network. Optimisation rewrites networks in place, so every
// machine needs its own.
type Factory func() (*circuit.Network, error)

var catalog = map[string]Factory{
	"tictactoe": TicTacToe,
	"switches":  Switches,
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	f, ok := catalog[name]
	if !ok {
		return nil, errors.Errorf("unknown game %q (known: %v)", name, Names())
	}
	return f, nil
}

func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
