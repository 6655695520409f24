// Package qubo turns a read overlap matrix into a QUBO over the assembly variables
// x[c,t] ("read c is at position t in the assembly").
//
// The problem is a traveling salesman tour through the reads: each read is a city,
// each position a stop, and the reward for a leg is the overlap between consecutive
// reads. Constraints that keep the assignment a permutation are added as penalties.
package qubo

import "fmt"

// Weights are the coefficients of the penalty and reward terms.
type Weights struct {
	// Reward is added to every diagonal cell. Assignment is enforced by the penalties
	// so this is neutral by default.
	Reward float64

	// Location penalizes one read occupying two positions.
	Location float64

	// Visit penalizes two reads occupying the same position.
	Visit float64

	// OpenPath drops the path reward from the last position back to the first.
	//
	// By default the path cost includes a wraparound leg from position n-1 to
	// position 0, making the layout a cyclic tour (a Hamiltonian cycle). That suits
	// circular targets; linear assemblies may prefer the open path.
	OpenPath bool
}

// DefaultWeights returns the weights that reliably assemble small read sets:
// no assignment reward and a penalty of 4 for each broken permutation constraint.
func DefaultWeights() Weights {
	return Weights{
		Reward:   0,
		Location: 4,
		Visit:    4,
	}
}

// Builder creates a sparse QUBO from the overlaps between reads.
type Builder interface {
	Build(o [][]int) (Sparse, error)
}

// DenseBuilder accumulates the QUBO in a dense n^2 x n^2 matrix
// and then drops its zero cells.
type DenseBuilder struct {
	Weights Weights
}

// Build implements Builder.
func (b DenseBuilder) Build(o [][]int) (Sparse, error) {
	d, err := b.Dense(o)
	if err != nil {
		return nil, err
	}
	return d.Sparse(), nil
}

// Dense returns the full coefficient matrix for the overlap matrix o.
//
// Each term is added onto the cells it touches, in order:
//  1. the assignment reward on the diagonal
//  2. the multi-location penalty, Q[c,t1][c,t2] for t1 != t2
//  3. the visit-repetition penalty, Q[c1,t][c2,t] for c1 != c2
//  4. the path reward, -O[ci][cj] at Q[ci,t][cj,t+1]
func (b DenseBuilder) Dense(o [][]int) (*Dense, error) {
	n := len(o)
	if n == 0 {
		return nil, fmt.Errorf("failed to build QUBO: empty overlap matrix")
	}
	for i, row := range o {
		if len(row) != n {
			return nil, fmt.Errorf("failed to build QUBO: overlap row %d has %d columns, expected %d", i, len(row), n)
		}
	}

	d := NewDense(n)
	w := b.Weights

	for ct := 0; ct < d.Dim(); ct++ {
		d.Add(ct, ct, w.Reward)
	}

	for c := 0; c < n; c++ {
		for t1 := 0; t1 < n; t1++ {
			for t2 := 0; t2 < n; t2++ {
				if t1 != t2 {
					d.Add(c*n+t1, c*n+t2, w.Location)
				}
			}
		}
	}

	for t := 0; t < n; t++ {
		for c1 := 0; c1 < n; c1++ {
			for c2 := 0; c2 < n; c2++ {
				if c1 != c2 {
					d.Add(c1*n+t, c2*n+t, w.Visit)
				}
			}
		}
	}

	for ci := 0; ci < n; ci++ {
		for cj := 0; cj < n; cj++ {
			for ti := 0; ti < n; ti++ {
				tj := (ti + 1) % n
				if w.OpenPath && tj == 0 {
					continue
				}
				d.Add(ci*n+ti, cj*n+tj, -float64(o[ci][cj]))
			}
		}
	}

	return d, nil
}

// Dense is a square QUBO coefficient matrix over n^2 assembly variables.
// Cell (i, j) is the coefficient of x_i * x_j. It isn't necessarily symmetric.
type Dense struct {
	n     int
	cells [][]float64
}

// NewDense returns a zeroed matrix for n reads.
func NewDense(n int) *Dense {
	cells := make([][]float64, n*n)
	for i := range cells {
		cells[i] = make([]float64, n*n)
	}
	return &Dense{n: n, cells: cells}
}

// Reads is the number of reads the matrix was built for.
func (d *Dense) Reads() int { return d.n }

// Dim is the number of rows (and columns) in the matrix: Reads()^2.
func (d *Dense) Dim() int { return len(d.cells) }

// At returns the coefficient at row i, column j.
func (d *Dense) At(i, j int) float64 { return d.cells[i][j] }

// Add accumulates v into the cell at row i, column j.
func (d *Dense) Add(i, j int, v float64) { d.cells[i][j] += v }
