package qubo

import "sort"

// Pair is an unordered pair of variable names. A variable paired with itself
// is a linear term.
type Pair struct {
	U string
	V string
}

// NewPair returns the canonical Pair of a and b, so NewPair(a, b) == NewPair(b, a).
func NewPair(a, b string) Pair {
	if varLess(b, a) {
		a, b = b, a
	}
	return Pair{U: a, V: b}
}

// Linear is whether the pair is a variable with itself.
func (p Pair) Linear() bool { return p.U == p.V }

// Sparse maps pairs of variables to their nonzero QUBO coefficient.
type Sparse map[Pair]float64

// Sparse folds the matrix into a Sparse map, dropping every cell that's exactly zero.
//
// Cells (i, j) and (j, i) multiply the same two variables and are summed into one
// Pair. If the sum is zero the pair is dropped too.
func (d *Dense) Sparse() Sparse {
	s := make(Sparse)
	for i := 0; i < d.Dim(); i++ {
		ni := Name(i, d.n)
		for j := 0; j < d.Dim(); j++ {
			if d.cells[i][j] == 0 {
				continue
			}
			s[NewPair(ni, Name(j, d.n))] += d.cells[i][j]
		}
	}

	for p, v := range s {
		if v == 0 {
			delete(s, p)
		}
	}
	return s
}

// Add accumulates v onto the pair's coefficient, removing the pair if it cancels to zero.
func (s Sparse) Add(a, b string, v float64) {
	p := NewPair(a, b)
	s[p] += v
	if s[p] == 0 {
		delete(s, p)
	}
}

// Variables returns the sorted names of every variable in the map.
func (s Sparse) Variables() []string {
	seen := make(map[string]bool)
	for p := range s {
		seen[p.U] = true
		seen[p.V] = true
	}
	return SortVariables(seen)
}

// Pairs returns the map's pairs, linear terms first, each group in variable order.
func (s Sparse) Pairs() []Pair {
	pairs := make([]Pair, 0, len(s))
	for p := range s {
		pairs = append(pairs, p)
	}
	SortPairs(pairs)
	return pairs
}

// Energy is the value of the QUBO objective for the binary assignment x.
// Variables missing from x are 0.
func (s Sparse) Energy(x map[string]bool) float64 {
	e := 0.0
	for p, v := range s {
		if x[p.U] && x[p.V] {
			e += v
		}
	}
	return e
}

// SortVariables returns the keys of a variable set in flat index order.
func SortVariables(vars map[string]bool) []string {
	names := make([]string, 0, len(vars))
	for v := range vars {
		names = append(names, v)
	}
	sort.Slice(names, func(i, j int) bool {
		return varLess(names[i], names[j])
	})
	return names
}

// SortPairs orders pairs with linear terms first, then by their first and second variable.
func SortPairs(pairs []Pair) {
	sort.Slice(pairs, func(i, j int) bool {
		a, b := pairs[i], pairs[j]
		if a.Linear() != b.Linear() {
			return a.Linear()
		}
		if a.U != b.U {
			return varLess(a.U, b.U)
		}
		return varLess(a.V, b.V)
	})
}
