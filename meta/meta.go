// meta/meta.go
package meta

// MAX_TURNS bounds a match played by the local engine.
const MAX_TURNS = 300

// GO_ROUTINES defines the default number of playout goroutines.
const GO_ROUTINES = 8

// DURATION_MS defines the default length of a throughput run.
const DURATION_MS = 1000

// SEED seeds random agents when no seed is configured.
const SEED = 1
