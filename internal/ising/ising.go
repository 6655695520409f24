// Package ising converts QUBOs over binary variables into Ising models over spins.
//
// The substitution is x = (1+s)/2, so a binary 1 is spin +1 and a binary 0 is spin -1.
package ising

import (
	"github.com/jjtimmons/qdenovo/internal/qubo"
)

// Model is an Ising model: linear biases, pairwise couplings and the constant
// energy offset that makes its energy equal to the QUBO it came from.
type Model struct {
	H      map[string]float64
	J      map[qubo.Pair]float64
	Offset float64
}

// FromQUBO converts a sparse QUBO into an Ising model such that, for every
// assignment, Energy(Spins(x)) + Offset == q.Energy(x).
//
//	x_i       = (1 + s_i) / 2
//	x_i * x_j = (1 + s_i + s_j + s_i*s_j) / 4
//
// Every variable in q gets an entry in H, even if it only appears in couplings.
// Both orientations of a pair are accepted and summed.
func FromQUBO(q qubo.Sparse) Model {
	m := Model{
		H: make(map[string]float64),
		J: make(map[qubo.Pair]float64),
	}

	for p, v := range q {
		if p.U == p.V {
			m.H[p.U] += v / 2
			m.Offset += v / 2
			continue
		}

		m.H[p.U] += v / 4
		m.H[p.V] += v / 4
		m.J[qubo.NewPair(p.U, p.V)] += v / 4
		m.Offset += v / 4
	}

	return m
}

// ToQUBO is the inverse of FromQUBO. It returns the QUBO and the constant that
// must be added to its energy to match the model's energy (including Offset).
//
//	s_i       = 2x_i - 1
//	s_i * s_j = 4x_i*x_j - 2x_i - 2x_j + 1
func (m Model) ToQUBO() (qubo.Sparse, float64) {
	q := make(qubo.Sparse)
	constant := m.Offset

	for v, h := range m.H {
		q.Add(v, v, 2*h)
		constant -= h
	}

	for p, j := range m.J {
		if p.U == p.V {
			// s_i * s_i is always 1
			constant += j
			continue
		}
		q.Add(p.U, p.V, 4*j)
		q.Add(p.U, p.U, -2*j)
		q.Add(p.V, p.V, -2*j)
		constant += j
	}

	return q, constant
}

// Energy is the model's energy for the spin assignment s, without Offset.
// Variables missing from s are spin -1.
func (m Model) Energy(s map[string]int8) float64 {
	spin := func(v string) float64 {
		if s[v] > 0 {
			return 1
		}
		return -1
	}

	e := 0.0
	for v, h := range m.H {
		e += h * spin(v)
	}
	for p, j := range m.J {
		e += j * spin(p.U) * spin(p.V)
	}
	return e
}

// Variables returns the sorted names of every variable in the model.
func (m Model) Variables() []string {
	seen := make(map[string]bool, len(m.H))
	for v := range m.H {
		seen[v] = true
	}
	for p := range m.J {
		seen[p.U] = true
		seen[p.V] = true
	}
	return qubo.SortVariables(seen)
}

// Spins converts a binary assignment into spins.
func Spins(x map[string]bool) map[string]int8 {
	s := make(map[string]int8, len(x))
	for v, b := range x {
		s[v] = -1
		if b {
			s[v] = 1
		}
	}
	return s
}

// Binary converts a spin assignment into a binary one.
func Binary(s map[string]int8) map[string]bool {
	x := make(map[string]bool, len(s))
	for v, spin := range s {
		x[v] = spin > 0
	}
	return x
}
