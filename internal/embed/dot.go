package embed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/awalterschulze/gographviz"
)

// DOT renders the source graph in Graphviz format. When there's an embedding,
// each node is labeled with its chain of qubits.
func DOT(source []Edge, emb Embedding) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		return "", err
	}
	if err := g.SetDir(false); err != nil {
		return "", err
	}

	for _, node := range nodes(source) {
		attrs := make(map[string]string)
		if chain, ok := emb[node]; ok {
			qubits := make([]string, len(chain))
			for i, q := range chain {
				qubits[i] = strconv.Itoa(q)
			}
			attrs["label"] = fmt.Sprintf("\"%d: %s\"", node, strings.Join(qubits, " "))
		}
		if err := g.AddNode("G", strconv.Itoa(node), attrs); err != nil {
			return "", err
		}
	}

	for _, e := range source {
		if err := g.AddEdge(strconv.Itoa(e.U), strconv.Itoa(e.V), false, nil); err != nil {
			return "", err
		}
	}

	return g.String(), nil
}
