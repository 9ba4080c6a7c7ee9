package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"propnet/circuit"
	"propnet/experiments"
	"propnet/game"
	"propnet/machine"
	"propnet/optimize"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := rootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "propnet",
		Short:         "Evaluate games compiled into propositional networks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	root.AddCommand(benchCmd(), inspectCmd())
	return root
}

func benchCmd() *cobra.Command {
	var (
		setupPath string
		output    string
		cfg       experiments.Config
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure random playout throughput",
		RunE: func(cmd *cobra.Command, args []string) error {
			configs := []experiments.Config{cfg}
			if setupPath != "" {
				setup, err := experiments.LoadSetup(setupPath)
				if err != nil {
					return err
				}
				configs = setup.Runs
				if setup.Output != "" && !cmd.Flags().Changed("out") {
					output = setup.Output
				}
			}

			writer, err := experiments.NewWriter(output)
			if err != nil {
				return err
			}
			_, err = experiments.RunAll(context.Background(), configs, writer)
			if err != nil {
				return err
			}
			log.Info().Msgf("results written to %s", writer.Dir())
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&setupPath, "setup", "", "YAML file listing runs (overrides the run flags)")
	flags.StringVar(&output, "out", "experiments", "directory for result CSVs")
	flags.IntVar(&cfg.ID, "id", 1, "run identifier")
	flags.StringVar(&cfg.Game, "game", "tictactoe", fmt.Sprintf("game to play %v", game.Names()))
	flags.StringVar(&cfg.Strategy, "strategy", "full", "propagation strategy (full or differential)")
	flags.IntVar(&cfg.Goroutines, "goroutines", 0, "playout goroutines, each with its own machine")
	flags.DurationVar(&cfg.Duration, "duration", 0, "length of the run")
	flags.IntVar(&cfg.Playouts, "playouts", 0, "stop after this many playouts")
	flags.BoolVar(&cfg.Prune, "prune", false, "prune components irrelevant to terminal and goals")
	flags.BoolVar(&cfg.Factor, "factor", false, "restrict play to one disjunctive factor")
	flags.Uint64Var(&cfg.Seed, "seed", 0, "seed for the random agents")
	return cmd
}

func inspectCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show component counts before and after optimisation",
		RunE: func(cmd *cobra.Command, args []string) error {
			build, err := game.Lookup(name)
			if err != nil {
				return err
			}
			net, err := build()
			if err != nil {
				return err
			}
			before := net.Stats()

			m, err := machine.New(net, machine.WithPasses(optimize.Prune, optimize.FactorDisjunctions))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printStats(out, "compiled", before)
			for _, r := range m.Reports() {
				fmt.Fprintf(out, "%-8s before=%d after=%d removed=%d forced=%d factors=%d\n",
					r.Pass, r.Before, r.After, r.Removed, r.Forced, r.Factors)
			}
			printStats(out, "optimised", m.Network().Stats())
			for _, role := range m.Roles() {
				moves, err := m.LegalMoves(m.InitialState(), role)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "initial legal moves for %s: %v\n", role, moves)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "game", "tictactoe", fmt.Sprintf("game to inspect %v", game.Names()))
	return cmd
}

func printStats(out io.Writer, label string, s circuit.Stats) {
	fmt.Fprintf(out, "%-9s components=%d gates=%d constants=%d", label, s.Components, s.Gates, s.Constants)
	for _, tag := range []circuit.Tag{circuit.Base, circuit.Input, circuit.Legal, circuit.Goal, circuit.View} {
		fmt.Fprintf(out, " %s=%d", tag, s.Propositions[tag])
	}
	fmt.Fprintln(out)
}
