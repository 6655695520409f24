// Package embed maps the QUBO's logical graph onto an annealer's hardware graph.
//
// Finding a minor embedding is left to an Embedder; this package builds the graphs
// it needs, checks the embedding it returns and reports its chain lengths.
// A failed embedding is reported, it never stops the pipeline.
package embed

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jjtimmons/qdenovo/internal/qubo"
)

// ErrNotEmbeddable is returned by an Embedder that found no embedding.
var ErrNotEmbeddable = errors.New("not embeddable")

// Edge is an undirected edge between two nodes.
type Edge struct {
	U int `json:"u"`
	V int `json:"v"`
}

func newEdge(u, v int) Edge {
	if v < u {
		u, v = v, u
	}
	return Edge{U: u, V: v}
}

// Embedding maps each logical node to its chain of physical nodes.
type Embedding map[int][]int

// Embedder finds an embedding of the source graph in the target graph.
type Embedder interface {
	Embed(source, target []Edge) (Embedding, error)
}

// Report summarizes an embedding attempt.
type Report struct {
	Embedded       bool   `json:"embedded"`
	MaxChainLength int    `json:"maxChainLength"`
	Qubits         int    `json:"qubits"`
	Error          string `json:"error,omitempty"`
}

// Graph is the QUBO's logical graph: nodes are the flat indices of the variables
// and there's an edge for every quadratic term.
func Graph(q qubo.Sparse, n int) ([]Edge, error) {
	var edges []Edge
	for _, p := range q.Pairs() {
		if p.Linear() {
			continue
		}
		u, err := qubo.Index(p.U, n)
		if err != nil {
			return nil, err
		}
		v, err := qubo.Index(p.V, n)
		if err != nil {
			return nil, err
		}
		edges = append(edges, newEdge(u, v))
	}
	return edges, nil
}

// MaxChainLength is the length of the longest chain in the embedding, 0 if it's empty.
func MaxChainLength(e Embedding) int {
	max := 0
	for _, chain := range e {
		if len(chain) > max {
			max = len(chain)
		}
	}
	return max
}

// Run asks the embedder for an embedding, checks it and reports on it.
// Failures end up in the report rather than an error.
func Run(e Embedder, source, target []Edge) (Embedding, Report) {
	emb, err := e.Embed(source, target)
	if err == nil && len(emb) == 0 && len(source) > 0 {
		err = ErrNotEmbeddable
	}
	if err == nil {
		err = Validate(emb, source, target)
	}
	if err != nil {
		return nil, Report{Error: err.Error()}
	}

	qubits := 0
	for _, chain := range emb {
		qubits += len(chain)
	}
	return emb, Report{
		Embedded:       true,
		MaxChainLength: MaxChainLength(emb),
		Qubits:         qubits,
	}
}

// Validate checks that an embedding is usable: every source node has a chain,
// chains are disjoint and connected in the target, and each source edge is
// covered by at least one target edge between the two chains.
func Validate(emb Embedding, source, target []Edge) error {
	adj := make(map[Edge]bool, len(target))
	neighbors := make(map[int][]int)
	for _, e := range target {
		adj[newEdge(e.U, e.V)] = true
		neighbors[e.U] = append(neighbors[e.U], e.V)
		neighbors[e.V] = append(neighbors[e.V], e.U)
	}

	owner := make(map[int]int)
	for node, chain := range emb {
		if len(chain) == 0 {
			return fmt.Errorf("%w: node %d has an empty chain", ErrNotEmbeddable, node)
		}
		for _, q := range chain {
			if other, taken := owner[q]; taken {
				return fmt.Errorf("%w: qubit %d is in the chains of %d and %d", ErrNotEmbeddable, q, other, node)
			}
			owner[q] = node
		}
		if !connected(chain, neighbors) {
			return fmt.Errorf("%w: chain of node %d isn't connected", ErrNotEmbeddable, node)
		}
	}

	for _, e := range source {
		cu, okU := emb[e.U]
		cv, okV := emb[e.V]
		if !okU || !okV {
			return fmt.Errorf("%w: edge %d-%d has an unembedded node", ErrNotEmbeddable, e.U, e.V)
		}
		if !coupled(cu, cv, adj) {
			return fmt.Errorf("%w: no coupler between the chains of %d and %d", ErrNotEmbeddable, e.U, e.V)
		}
	}

	return nil
}

// connected is whether the chain is a connected subgraph of the target
func connected(chain []int, neighbors map[int][]int) bool {
	in := make(map[int]bool, len(chain))
	for _, q := range chain {
		in[q] = true
	}

	seen := map[int]bool{chain[0]: true}
	stack := []int{chain[0]}
	for len(stack) > 0 {
		q := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range neighbors[q] {
			if in[next] && !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return len(seen) == len(in)
}

// coupled is whether any qubit of one chain shares a target edge with the other
func coupled(a, b []int, adj map[Edge]bool) bool {
	for _, u := range a {
		for _, v := range b {
			if adj[newEdge(u, v)] {
				return true
			}
		}
	}
	return false
}

// nodes returns the sorted, distinct nodes of a graph
func nodes(edges []Edge) []int {
	seen := make(map[int]bool)
	for _, e := range edges {
		seen[e.U] = true
		seen[e.V] = true
	}
	ns := make([]int, 0, len(seen))
	for n := range seen {
		ns = append(ns, n)
	}
	sort.Ints(ns)
	return ns
}
