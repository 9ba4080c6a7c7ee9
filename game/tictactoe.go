package game

import (
	"fmt"

	"propnet/circuit"
)

const (
	XPlayer circuit.Role = "x"
	OPlayer circuit.Role = "o"

	Noop circuit.Move = "noop"
)

// Mark returns the move that marks the cell at row, col (1-based).
func Mark(row, col int) circuit.Move {
	return circuit.Move(fmt.Sprintf("(mark %d %d)", row, col))
}

type cell struct{ row, col int }

func cells() []cell {
	cs := make([]cell, 0, 9)
	for row := 1; row <= 3; row++ {
		for col := 1; col <= 3; col++ {
			cs = append(cs, cell{row, col})
		}
	}
	return cs
}

// Rows, columns and diagonals of the 3x3 board
var lines = [][3]cell{
	{{1, 1}, {1, 2}, {1, 3}},
	{{2, 1}, {2, 2}, {2, 3}},
	{{3, 1}, {3, 2}, {3, 3}},
	{{1, 1}, {2, 1}, {3, 1}},
	{{1, 2}, {2, 2}, {3, 2}},
	{{1, 3}, {2, 3}, {3, 3}},
	{{1, 1}, {2, 2}, {3, 3}},
	{{1, 3}, {2, 2}, {3, 1}},
}

// TicTacToe builds the circuit for 3x3 tic-tac-toe. x moves first; the player not in
// control plays noop. Control passes to a player on the step after it played noop.
// A completed line scores 100 for its owner and 0 for the opponent, a full board
// without a line scores 50 each.
func TicTacToe() (*circuit.Network, error) {
	roles := []circuit.Role{XPlayer, OPlayer}
	b := circuit.NewBuilder(roles...)
	init := b.Init()

	type board map[cell]circuit.ID
	marks := map[circuit.Role]board{XPlayer: {}, OPlayer: {}}
	filled := board{}
	blank := board{}
	for _, c := range cells() {
		for _, r := range roles {
			marks[r][c] = b.Base(fmt.Sprintf("(cell %d %d %s)", c.row, c.col, r))
		}
		filled[c] = b.Or(marks[XPlayer][c], marks[OPlayer][c])
		blank[c] = b.View(fmt.Sprintf("(blank %d %d)", c.row, c.col))
		b.Drive(blank[c], b.Not(filled[c]))
	}

	control := map[circuit.Role]circuit.ID{
		XPlayer: b.Base("(control x)"),
		OPlayer: b.Base("(control o)"),
	}
	opponent := map[circuit.Role]circuit.Role{XPlayer: OPlayer, OPlayer: XPlayer}

	noops := map[circuit.Role]circuit.ID{}
	for _, r := range roles {
		noops[r] = b.Input(r, Noop)
		legal := b.Legal(r, Noop)
		b.Drive(legal, control[opponent[r]])
	}
	b.Drive(control[XPlayer], b.Or(init, noops[XPlayer]))
	b.Drive(control[OPlayer], noops[OPlayer])

	for _, c := range cells() {
		for _, r := range roles {
			move := Mark(c.row, c.col)
			does := b.Input(r, move)
			legal := b.Legal(r, move)
			b.Drive(legal, b.And(control[r], blank[c]))
			b.Drive(marks[r][c], b.Or(marks[r][c], does))
		}
	}

	line := map[circuit.Role]circuit.ID{}
	for _, r := range roles {
		var detectors []circuit.ID
		for _, l := range lines {
			detectors = append(detectors, b.And(marks[r][l[0]], marks[r][l[1]], marks[r][l[2]]))
		}
		line[r] = b.View(fmt.Sprintf("(line %s)", r))
		b.Drive(line[r], b.Or(detectors...))
	}

	var occupied []circuit.ID
	for _, c := range cells() {
		occupied = append(occupied, filled[c])
	}
	full := b.View("full")
	b.Drive(full, b.And(occupied...))
	b.Drive(b.Terminal(), b.Or(line[XPlayer], line[OPlayer], full))

	for _, r := range roles {
		b.Drive(b.Goal(r, 100), line[r])
		b.Drive(b.Goal(r, 0), line[opponent[r]])
		b.Drive(b.Goal(r, 50), b.And(b.Not(line[XPlayer]), b.Not(line[OPlayer])))
	}

	return b.Build()
}
