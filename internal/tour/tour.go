// Package tour turns solutions of the assembly QUBO back into read orders and contigs.
package tour

import (
	"errors"
	"fmt"

	"github.com/jjtimmons/qdenovo/internal/overlap"
	"github.com/jjtimmons/qdenovo/internal/qubo"
)

// ErrInvalidTour is returned for an assignment that isn't a permutation of the reads.
var ErrInvalidTour = errors.New("invalid tour")

// Decode reads the order of the reads from a binary assignment of the n² variables.
// order[t] is the read at position t. Every read must be at exactly one position
// and every position must hold exactly one read.
func Decode(x map[string]bool, n int) ([]int, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d reads", ErrInvalidTour, n)
	}

	order := make([]int, n)
	for t := range order {
		order[t] = -1
	}
	placed := make([]bool, n)

	for name, on := range x {
		if !on {
			continue
		}
		idx, err := qubo.Index(name, n)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTour, err)
		}

		c, t := idx/n, idx%n
		if placed[c] {
			return nil, fmt.Errorf("%w: read %d is in more than one position", ErrInvalidTour, c)
		}
		if order[t] >= 0 {
			return nil, fmt.Errorf("%w: position %d holds reads %d and %d", ErrInvalidTour, t, order[t], c)
		}
		placed[c] = true
		order[t] = c
	}

	for t, c := range order {
		if c < 0 {
			return nil, fmt.Errorf("%w: no read at position %d", ErrInvalidTour, t)
		}
	}
	return order, nil
}

// Overlap is the summed overlap of consecutive reads in the order, including
// the link from the last read back to the first if cyclic.
func Overlap(order []int, o overlap.Matrix, cyclic bool) int {
	total := 0
	for t := 0; t+1 < len(order); t++ {
		total += o[order[t]][order[t+1]]
	}
	if cyclic && len(order) > 1 {
		total += o[order[len(order)-1]][order[0]]
	}
	return total
}

// Contig merges the reads in order, dropping the overlapping prefix of each read.
//
// A cyclic tour has no start, so it is opened at its weakest link (the first one
// with the smallest overlap) and the returned path starts at the read after it.
func Contig(seqs []string, order []int, o overlap.Matrix, cyclic bool) (string, []int) {
	if len(order) == 0 {
		return "", nil
	}

	path := append([]int(nil), order...)
	if cyclic {
		weakest := 0
		for t := range order {
			next := (t + 1) % len(order)
			if o[order[t]][order[next]] < o[order[weakest]][order[(weakest+1)%len(order)]] {
				weakest = t
			}
		}
		start := (weakest + 1) % len(order)
		path = append(path[:0], order[start:]...)
		path = append(path, order[:start]...)
	}

	contig := seqs[path[0]]
	for t := 1; t < len(path); t++ {
		seq := seqs[path[t]]
		shared := o[path[t-1]][path[t]]
		if shared > len(seq) {
			shared = len(seq)
		}
		contig += seq[shared:]
	}
	return contig, path
}
