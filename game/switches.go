package game

import (
	"propnet/circuit"
)

const Operator circuit.Role = "operator"

const (
	FlipA circuit.Move = "(flip a)"
	FlipB circuit.Move = "(flip b)"
	Hum   circuit.Move = "hum"
)

// Switches builds a one-player game made of two independent sub-games joined by a
// disjunction: the game ends, scoring 100, as soon as either switch is on. Each
// switch may be flipped while it is off. A third register toggled by hum feeds
// nothing that decides termination or scoring.
func Switches() (*circuit.Network, error) {
	b := circuit.NewBuilder(Operator)

	on := map[circuit.Move]circuit.ID{}
	for _, name := range []string{"a", "b"} {
		move := circuit.Move("(flip " + name + ")")
		base := b.Base("(on " + name + ")")
		does := b.Input(Operator, move)
		legal := b.Legal(Operator, move)
		b.Drive(legal, b.Not(base))
		b.Drive(base, b.Or(base, does))
		on[move] = base
	}

	noise := b.Base("noise")
	hum := b.Input(Operator, Hum)
	b.Drive(b.Legal(Operator, Hum), b.Constant(true))
	b.Drive(noise, b.Or(b.And(hum, b.Not(noise)), b.And(b.Not(hum), noise)))
	echo := b.View("echo")
	b.Drive(echo, noise)

	b.Drive(b.Terminal(), b.Or(on[FlipA], on[FlipB]))
	won := b.Or(on[FlipA], on[FlipB])
	b.Drive(b.Goal(Operator, 100), won)
	b.Drive(b.Goal(Operator, 0), b.Not(won))

	return b.Build()
}
