package solve

import (
	"context"
	"fmt"

	"github.com/jjtimmons/qdenovo/internal/ising"
)

// DefaultMaxVars is the largest model Enumerate will accept by default: 2^20 assignments.
const DefaultMaxVars = 20

// Enumerate is an exact solver that checks the energy of every spin assignment.
// It returns the ground states only; there are 2^k assignments for k variables.
type Enumerate struct {
	// MaxVars caps the number of variables. Zero means DefaultMaxVars.
	MaxVars int
}

// Solve implements Solver.
func (e Enumerate) Solve(ctx context.Context, m ising.Model) ([]Sample, error) {
	maxVars := e.MaxVars
	if maxVars <= 0 {
		maxVars = DefaultMaxVars
	}

	vars := m.Variables()
	if len(vars) > maxVars {
		return nil, fmt.Errorf("failed to enumerate: %d variables is more than the %d allowed", len(vars), maxVars)
	}
	if len(vars) > 62 {
		return nil, fmt.Errorf("failed to enumerate: %d variables", len(vars))
	}

	index := make(map[string]int, len(vars))
	for i, v := range vars {
		index[v] = i
	}
	h := make([]float64, len(vars))
	for v, b := range m.H {
		h[index[v]] += b
	}
	type coupling struct {
		i, j int
		w    float64
	}
	js := make([]coupling, 0, len(m.J))
	for p, w := range m.J {
		js = append(js, coupling{index[p.U], index[p.V], w})
	}

	spin := func(mask uint64, i int) float64 {
		if mask&(1<<uint(i)) != 0 {
			return 1
		}
		return -1
	}

	var best []uint64
	bestEnergy := 0.0
	for mask := uint64(0); mask < 1<<uint(len(vars)); mask++ {
		if mask&0xfff == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		energy := 0.0
		for i, b := range h {
			energy += b * spin(mask, i)
		}
		for _, c := range js {
			energy += c.w * spin(mask, c.i) * spin(mask, c.j)
		}

		switch {
		case len(best) == 0 || energy < bestEnergy-tolerance:
			best = append(best[:0], mask)
			bestEnergy = energy
		case energy-bestEnergy <= tolerance:
			best = append(best, mask)
		}
	}

	samples := make([]Sample, len(best))
	for k, mask := range best {
		spins := make(map[string]int8, len(vars))
		for i, v := range vars {
			spins[v] = int8(spin(mask, i))
		}
		samples[k] = Sample{Spins: spins, Energy: m.Energy(spins)}
	}
	return samples, nil
}
