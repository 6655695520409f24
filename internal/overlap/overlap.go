// Package overlap scores directed suffix/prefix overlaps between reads.
package overlap

// Matrix is a square matrix of directed overlap lengths. Matrix[i][j] is
// the overlap of the end of read i with the start of read j.
type Matrix [][]int

// Score returns the length of the longest overlap between the end of a and
// the start of b that has no more than maxMismatches mismatching bases.
//
//	v-len(a)-len(b)          v-len(a)-1
//	-------------------------
//	            -------------
//	            ^ shift, scanned left to right
//
// The first (longest) overlap within the mismatch budget wins. A read longer than
// the one it's compared against leaves no window to slide through, so zero is returned.
func Score(a, b string, maxMismatches int) int {
	if len(b) == 0 || len(b) > len(a) {
		return 0
	}

	for shift := len(a) - len(b); shift < len(a); shift++ {
		mismatches := 0
		j := 0
		for k := shift; k < len(a); k++ {
			if a[k] != b[j] {
				mismatches++
				if mismatches > maxMismatches {
					break
				}
			}
			j++
		}

		if mismatches <= maxMismatches {
			return len(a) - shift
		}
	}

	return 0
}

// NewMatrix scores every ordered pair of distinct reads. Self-overlaps stay zero.
func NewMatrix(seqs []string, maxMismatches int) Matrix {
	m := make(Matrix, len(seqs))
	for i := range seqs {
		m[i] = make([]int, len(seqs))
		for j := range seqs {
			if i == j {
				continue
			}
			m[i][j] = Score(seqs[i], seqs[j], maxMismatches)
		}
	}
	return m
}
