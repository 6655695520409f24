package embed

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Identity embeds each node onto the qubit with the same number. It only works
// when the source graph is already a subgraph of the target.
type Identity struct{}

// Embed implements Embedder.
func (Identity) Embed(source, target []Edge) (Embedding, error) {
	adj := make(map[Edge]bool, len(target))
	for _, e := range target {
		adj[newEdge(e.U, e.V)] = true
	}
	for _, e := range source {
		if !adj[newEdge(e.U, e.V)] {
			return nil, fmt.Errorf("%w: target has no edge %d-%d", ErrNotEmbeddable, e.U, e.V)
		}
	}

	emb := make(Embedding)
	for _, node := range nodes(source) {
		emb[node] = []int{node}
	}
	return emb, nil
}

// File loads an embedding computed elsewhere from a JSON object of node to chain,
// like {"0": [0, 4], "1": [1]}.
type File struct {
	Path string
}

// Embed implements Embedder. The graphs are only used to check the loaded embedding.
func (f File) Embed(source, target []Edge) (Embedding, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedding %s: %w", f.Path, err)
	}

	raw := make(map[string][]int)
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse embedding %s: %w", f.Path, err)
	}

	emb := make(Embedding, len(raw))
	for key, chain := range raw {
		node, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("failed to parse embedding %s: node %q isn't a number", f.Path, key)
		}
		emb[node] = chain
	}

	if err := Validate(emb, source, target); err != nil {
		return nil, err
	}
	return emb, nil
}
