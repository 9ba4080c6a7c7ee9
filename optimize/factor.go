package optimize

import (
	"slices"

	"github.com/rs/zerolog/log"

	"propnet/circuit"
)

// FactorDisjunctions restricts play to one independent sub-game when TERMINAL, or the
// first role's highest-scoring GOAL, is driven by an OR. Each disjunct's dependency
// closure is a candidate factor; overlapping factors are merged, the first factor
// holding an INPUT proposition is chosen and every LEGAL proposition whose action lies
// outside it is driven by a constant false. Components of the other factors are left
// in place.
func FactorDisjunctions(net *circuit.Network) (Report, error) {
	report := Report{Pass: "factor", Before: net.Len(), After: net.Len()}

	var split [][]circuit.ID
	for _, driver := range []circuit.ID{net.Driver(net.Terminal()), topGoalDriver(net)} {
		if driver == circuit.None {
			continue
		}
		disjuncts := disjunction(net, driver)
		log.Debug().Msgf("%s splits into %d disjuncts before merging", net.Component(driver), len(disjuncts))
		split = append(split, disjuncts)
	}
	if !slices.ContainsFunc(split, func(d []circuit.ID) bool { return len(d) >= 2 }) {
		log.Debug().Msg("no terminal or goal disjunction with two or more disjuncts, skipping factoring")
		return report, nil
	}

	var factors []set
	for _, disjuncts := range split {
		for _, d := range disjuncts {
			factors = append(factors, closure(net, d))
		}
	}
	for merge(&factors) {
	}
	report.Factors = len(factors)
	log.Info().Msgf("partitioned network into %d factors", len(factors))

	var chosen set
	for _, f := range factors {
		if isPlayable(net, f) {
			chosen = f
			break
		}
	}
	if chosen == nil {
		log.Warn().Msg("no factor holds an input proposition, leaving legality untouched")
		return report, nil
	}

	falseDriver := circuit.None
	for _, input := range net.AllInputs() {
		if chosen.has(input) {
			continue
		}
		legal, ok := net.Pair(input)
		if !ok {
			continue
		}
		if falseDriver == circuit.None {
			falseDriver = net.AddConstant(false)
		}
		net.SetDriver(legal, falseDriver)
		report.Forced++
	}

	report.After = net.Len()
	report.Applied = report.Forced > 0
	log.Info().Msgf("factoring complete: forced %d legal propositions false", report.Forced)
	return report, nil
}

func isOr(net *circuit.Network, id circuit.ID) bool {
	return id != circuit.None && net.Component(id).Kind == circuit.Or
}

// topGoalDriver returns the driver of the first role's highest-scoring positive GOAL.
func topGoalDriver(net *circuit.Network) circuit.ID {
	roles := net.Roles()
	if len(roles) == 0 {
		return circuit.None
	}
	top, best := circuit.None, 0
	for _, g := range net.Goals(roles[0]) {
		if score := net.Component(g).Score; score > best {
			top, best = g, score
		}
	}
	if top == circuit.None {
		return circuit.None
	}
	return net.Driver(top)
}

// disjunction flattens nested OR gates into their non-OR leaf drivers, in ID order.
func disjunction(net *circuit.Network, id circuit.ID) []circuit.ID {
	leaves := make(set)
	stack := []circuit.ID{id}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !isOr(net, c) {
			leaves[c] = struct{}{}
			continue
		}
		stack = append(stack, net.Component(c).Inputs...)
	}
	ids := make([]circuit.ID, 0, len(leaves))
	for c := range leaves {
		ids = append(ids, c)
	}
	slices.Sort(ids)
	return ids
}

// merge folds the first pair of intersecting factors into the earlier one and reports
// whether it found one.
func merge(factors *[]set) bool {
	fs := *factors
	for i := 0; i < len(fs)-1; i++ {
		for j := i + 1; j < len(fs); j++ {
			if !fs[i].intersects(fs[j]) {
				continue
			}
			for id := range fs[j] {
				fs[i][id] = struct{}{}
			}
			*factors = slices.Delete(fs, j, j+1)
			return true
		}
	}
	return false
}
