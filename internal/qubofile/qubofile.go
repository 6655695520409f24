// Package qubofile reads and writes QUBOs and Ising models as plain text.
//
// The format is a header line followed by the linear terms and then the quadratic terms:
//
//	p qubo 0 <numVars> <numLinear> <numQuadratic>
//	<name> <name> <bias>
//	...
//	<name1> <name2> <coupling>
//	...
//
// Only the last two header fields are read; the first four are for other tools.
package qubofile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jjtimmons/qdenovo/internal/ising"
	"github.com/jjtimmons/qdenovo/internal/qubo"
)

// Write writes a sparse QUBO: diagonal terms as the linear lines, the rest as quadratic.
func Write(w io.Writer, q qubo.Sparse) error {
	pairs := q.Pairs()
	numLinear := 0
	for _, p := range pairs {
		if p.Linear() {
			numLinear++
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p qubo 0 %d %d %d\n", len(q.Variables()), numLinear, len(pairs)-numLinear)
	for _, p := range pairs {
		fmt.Fprintf(bw, "%s %s %s\n", p.U, p.V, formatFloat(q[p]))
	}
	return bw.Flush()
}

// Read parses a QUBO written by Write. Terms listed more than once are summed.
func Read(r io.Reader) (qubo.Sparse, error) {
	q := make(qubo.Sparse)
	err := parse(r, func(u, v string, val float64, linear bool) error {
		if linear && u != v {
			return fmt.Errorf("linear term names two variables, %s and %s", u, v)
		}
		if !linear && u == v {
			return fmt.Errorf("quadratic term of %s with itself", u)
		}
		q.Add(u, v, val)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

// WriteIsing writes an Ising model's biases and couplings. Every variable in H gets
// a linear line, including those with a zero bias, so no name is lost.
// The offset isn't part of the format.
func WriteIsing(w io.Writer, m ising.Model) error {
	vars := make(map[string]bool, len(m.H))
	for v := range m.H {
		vars[v] = true
	}
	linear := qubo.SortVariables(vars)

	couplings := make([]qubo.Pair, 0, len(m.J))
	for p := range m.J {
		couplings = append(couplings, p)
	}
	qubo.SortPairs(couplings)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p ising 0 %d %d %d\n", len(m.Variables()), len(linear), len(couplings))
	for _, v := range linear {
		fmt.Fprintf(bw, "%s %s %s\n", v, v, formatFloat(m.H[v]))
	}
	for _, p := range couplings {
		fmt.Fprintf(bw, "%s %s %s\n", p.U, p.V, formatFloat(m.J[p]))
	}
	return bw.Flush()
}

// ReadIsing parses an Ising model written by WriteIsing. Its Offset is zero.
func ReadIsing(r io.Reader) (ising.Model, error) {
	m := ising.Model{
		H: make(map[string]float64),
		J: make(map[qubo.Pair]float64),
	}
	err := parse(r, func(u, v string, val float64, linear bool) error {
		if linear {
			if u != v {
				return fmt.Errorf("linear term names two variables, %s and %s", u, v)
			}
			m.H[u] += val
			return nil
		}
		if u == v {
			return fmt.Errorf("coupling of %s with itself", u)
		}
		m.J[qubo.NewPair(u, v)] += val
		return nil
	})
	if err != nil {
		return ising.Model{}, err
	}
	return m, nil
}

// parse reads the header and hands each term line to add.
func parse(r io.Reader, add func(u, v string, val float64, linear bool) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	next := func() ([]string, bool) {
		for sc.Scan() {
			line++
			if fields := strings.Fields(sc.Text()); len(fields) > 0 {
				return fields, true
			}
		}
		return nil, false
	}

	header, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return fmt.Errorf("failed to read header: %w", err)
		}
		return fmt.Errorf("failed to read header: empty file")
	}
	if len(header) != 6 {
		return fmt.Errorf("failed to parse header, expected 6 fields: %q", strings.Join(header, " "))
	}
	numLinear, err := strconv.Atoi(header[4])
	if err != nil || numLinear < 0 {
		return fmt.Errorf("failed to parse linear term count %q", header[4])
	}
	numQuadratic, err := strconv.Atoi(header[5])
	if err != nil || numQuadratic < 0 {
		return fmt.Errorf("failed to parse quadratic term count %q", header[5])
	}

	for i := 0; i < numLinear+numQuadratic; i++ {
		fields, ok := next()
		if !ok {
			if err := sc.Err(); err != nil {
				return err
			}
			return fmt.Errorf("expected %d terms, found %d", numLinear+numQuadratic, i)
		}
		if len(fields) != 3 {
			return fmt.Errorf("line %d: expected 3 fields, found %d", line, len(fields))
		}
		val, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return fmt.Errorf("line %d: failed to parse coefficient: %w", line, err)
		}
		if err := add(fields[0], fields[1], val, i < numLinear); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}

	return sc.Err()
}

// formatFloat writes the shortest representation that parses back to f exactly.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
