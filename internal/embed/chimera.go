package embed

// Chimera returns the edges of a C(m, n, t) Chimera graph: an m by n grid of cells,
// each a complete bipartite K(t,t) between a vertical and a horizontal shore.
// Vertical qubits couple to the same qubit in the cell below, horizontal qubits
// to the same qubit in the cell to the right.
//
// Qubit (i, j, u, k), in row i, column j, shore u and position k, is numbered
// ((i*n+j)*2+u)*t+k.
func Chimera(m, n, t int) []Edge {
	if m <= 0 || n <= 0 || t <= 0 {
		return nil
	}

	q := func(i, j, u, k int) int {
		return ((i*n+j)*2+u)*t + k
	}

	edges := make([]Edge, 0, m*n*t*t+(m-1)*n*t+m*(n-1)*t)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			for a := 0; a < t; a++ {
				for b := 0; b < t; b++ {
					edges = append(edges, Edge{U: q(i, j, 0, a), V: q(i, j, 1, b)})
				}
			}
			for k := 0; k < t; k++ {
				if i+1 < m {
					edges = append(edges, Edge{U: q(i, j, 0, k), V: q(i+1, j, 0, k)})
				}
				if j+1 < n {
					edges = append(edges, Edge{U: q(i, j, 1, k), V: q(i, j+1, 1, k)})
				}
			}
		}
	}
	return edges
}
