package optimize

import (
	"github.com/rs/zerolog/log"

	"propnet/circuit"
)

// Prune deletes every component that cannot influence termination or scoring: the
// dependency closure of TERMINAL and all GOAL propositions, extended through the
// legality of the actions it reaches, is kept along with constants and INIT.
func Prune(net *circuit.Network) (Report, error) {
	report := Report{Pass: "prune", Before: net.Len()}
	log.Debug().Msgf("pruning network with %d components", report.Before)

	roots := []circuit.ID{net.Terminal()}
	for _, role := range net.Roles() {
		roots = append(roots, net.Goals(role)...)
	}
	keep := closure(net, roots...)

	for _, id := range net.IDs() {
		if keep.has(id) || id == net.Init() || net.Component(id).Kind == circuit.Constant {
			continue
		}
		net.Remove(id)
		report.Removed++
	}

	report.After = net.Len()
	report.Applied = report.Removed > 0
	log.Info().Msgf("pruning complete: removed %d of %d components", report.Removed, report.Before)
	return report, nil
}
