// Package solve finds low energy spin assignments of Ising models.
//
// A Solver is anything that takes an Ising model and returns samples: exhaustive
// enumeration, a MaxSAT reduction, or a remote annealer. Callers may not assume
// anything about the order or multiplicity of the samples returned.
package solve

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/jjtimmons/qdenovo/internal/ising"
)

// ErrNoResult is returned when a solver produced no samples, e.g. a cancelled job.
var ErrNoResult = errors.New("no result")

// tolerance for two energies to be considered equal
const tolerance = 1e-9

// Sample is a single spin assignment and its energy (without the model's offset).
type Sample struct {
	Spins  map[string]int8 `json:"spins"`
	Energy float64         `json:"energy"`
}

// Solver returns samples of an Ising model.
type Solver interface {
	Solve(ctx context.Context, m ising.Model) ([]Sample, error)
}

// Lowest returns every sample with the minimum energy, sorted by spins so the
// result doesn't depend on the solver's order. ErrNoResult if there are no samples.
func Lowest(samples []Sample) ([]Sample, error) {
	if len(samples) == 0 {
		return nil, ErrNoResult
	}

	min := math.Inf(1)
	for _, s := range samples {
		if s.Energy < min {
			min = s.Energy
		}
	}

	var ground []Sample
	seen := make(map[string]bool)
	for _, s := range samples {
		if s.Energy-min > tolerance {
			continue
		}
		if k := key(s.Spins); !seen[k] {
			seen[k] = true
			ground = append(ground, s)
		}
	}

	sort.Slice(ground, func(i, j int) bool {
		return key(ground[i].Spins) > key(ground[j].Spins)
	})
	return ground, nil
}

// key is a string of the spins' signs in variable order
func key(spins map[string]int8) string {
	names := make([]string, 0, len(spins))
	for v := range spins {
		names = append(names, v)
	}
	sort.Strings(names)

	b := make([]byte, 0, len(names)*8)
	for _, v := range names {
		b = append(b, v...)
		if spins[v] > 0 {
			b = append(b, '+')
		} else {
			b = append(b, '-')
		}
	}
	return string(b)
}
