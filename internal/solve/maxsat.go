package solve

import (
	"context"
	"fmt"
	"math"

	"github.com/crillab/gophersat/maxsat"

	"github.com/jjtimmons/qdenovo/internal/ising"
	"github.com/jjtimmons/qdenovo/internal/qubo"
)

// DefaultScale multiplies coefficients before they're rounded to MaxSAT weights.
const DefaultScale = 1000

// MaxSAT solves a model exactly by reducing it to weighted partial MaxSAT.
//
// The model is converted back to a QUBO and each term becomes a weighted clause
// that is violated exactly when the term costs energy:
//
//	 a*x,     a > 0:  soft (¬x), weight a
//	 a*x,     a < 0:  soft (x), weight -a, plus a constant a
//	 b*x*y,   b > 0:  soft (¬x ∨ ¬y), weight b
//	 b*x*y,   b < 0:  soft (z), weight -b, plus a constant b, with hard z -> x, z -> y
//
// Weights are integers, so coefficients are scaled and rounded first. The energy of
// the returned sample is recomputed from the unrounded model.
type MaxSAT struct {
	// Scale multiplies coefficients before rounding. Zero means DefaultScale.
	Scale float64
}

// Solve implements Solver. It returns a single optimal sample.
func (s MaxSAT) Solve(ctx context.Context, m ising.Model) ([]Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scale := s.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	q, _ := m.ToQUBO()
	constrs, err := clauses(q, scale)
	if err != nil {
		return nil, err
	}

	binary := make(map[string]bool)
	if len(constrs) > 0 {
		model, cost := maxsat.New(constrs...).Solve()
		if model == nil || cost < 0 {
			return nil, fmt.Errorf("failed to solve MaxSAT reduction: %w", ErrNoResult)
		}
		binary = model
	}

	spins := make(map[string]int8)
	for _, v := range m.Variables() {
		spins[v] = -1
		if binary[v] {
			spins[v] = 1
		}
	}

	return []Sample{{Spins: spins, Energy: m.Energy(spins)}}, nil
}

// clauses converts each QUBO term to weighted clauses. Terms that round to a zero
// weight are dropped.
func clauses(q qubo.Sparse, scale float64) ([]maxsat.Constr, error) {
	var constrs []maxsat.Constr
	for _, p := range q.Pairs() {
		c := q[p]
		weight := math.Round(math.Abs(c) * scale)
		if weight > math.MaxInt32 {
			return nil, fmt.Errorf("failed to scale coefficient %v of %s*%s: too large for scale %v", c, p.U, p.V, scale)
		}
		w := int(weight)
		if w == 0 {
			continue
		}

		switch {
		case p.Linear() && c > 0:
			constrs = append(constrs, maxsat.WeightedClause([]maxsat.Lit{maxsat.Not(p.U)}, w))
		case p.Linear():
			constrs = append(constrs, maxsat.WeightedClause([]maxsat.Lit{maxsat.Var(p.U)}, w))
		case c > 0:
			constrs = append(constrs, maxsat.WeightedClause([]maxsat.Lit{maxsat.Not(p.U), maxsat.Not(p.V)}, w))
		default:
			z := "and(" + p.U + "," + p.V + ")"
			constrs = append(constrs,
				maxsat.HardClause(maxsat.Not(z), maxsat.Var(p.U)),
				maxsat.HardClause(maxsat.Not(z), maxsat.Var(p.V)),
				maxsat.WeightedClause([]maxsat.Lit{maxsat.Var(z)}, w),
			)
		}
	}
	return constrs, nil
}
