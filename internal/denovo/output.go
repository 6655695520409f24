package denovo

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jjtimmons/qdenovo/internal/embed"
	"github.com/jjtimmons/qdenovo/internal/overlap"
	"github.com/jjtimmons/qdenovo/internal/qubo"
	"github.com/jjtimmons/qdenovo/internal/qubofile"
	"github.com/jjtimmons/qdenovo/internal/reads"
	"github.com/jjtimmons/qdenovo/internal/tour"
	"golang.org/x/crypto/blake2b"
)

// Stats counts the terms of a QUBO.
type Stats struct {
	Variables int `json:"variables"`
	Linear    int `json:"linear"`
	Quadratic int `json:"quadratic"`
}

// State is a ground state, as the read order it encodes.
type State struct {
	// Order is the read at each position, empty if the state isn't a valid tour
	Order []int `json:"order,omitempty"`

	// Spins that are up
	Up []string `json:"up"`
}

// Output is a struct containing the results of an assembly.
type Output struct {
	// ID is unique to each run
	ID string `json:"id"`

	// Input is the reads file, if there was one
	Input string `json:"input,omitempty"`

	// Time, ex: "2018-01-01 20:41:00"
	Time string `json:"time"`

	// Execution is the number of seconds it took to execute the command
	Execution float64 `json:"execution"`

	// Fingerprint is a hash of the QUBO, the same for the same reads and settings
	Fingerprint string `json:"fingerprint"`

	// Reads that were assembled
	Reads []reads.Read `json:"reads"`

	// Overlaps between each pair of reads
	Overlaps overlap.Matrix `json:"overlaps"`

	// QUBO term counts
	QUBO Stats `json:"qubo"`

	// IsingOffset is the constant between Ising and QUBO energies
	IsingOffset float64 `json:"isingOffset"`

	// Energy of the ground state in the QUBO
	Energy float64 `json:"energy"`

	// GroundStates are every ground state the solver found
	GroundStates []State `json:"groundStates"`

	// Order of the reads in the first ground state
	Order []int `json:"order"`

	// Path is the order the reads are merged in the contig
	Path []int `json:"path"`

	// Contig is the assembled sequence
	Contig string `json:"contig"`

	// Overlap is the total overlap along the order
	Overlap int `json:"overlap"`

	// Embedding is the report on embedding the QUBO onto the target
	Embedding embed.Report `json:"embedding"`
}

// newOutput summarizes an assembly.
func newOutput(in string, a *Assembly, seconds float64, cyclic bool) (*Output, error) {
	fingerprint, err := Fingerprint(a.QUBO)
	if err != nil {
		return nil, err
	}

	states := make([]State, len(a.GroundStates))
	for i, s := range a.GroundStates {
		up := make(map[string]bool)
		for v, spin := range s.Spins {
			if spin > 0 {
				up[v] = true
			}
		}
		states[i].Up = qubo.SortVariables(up)
		states[i].Order, _ = tour.Decode(up, len(a.Reads))
	}

	return &Output{
		ID:           uuid.New().String(),
		Input:        in,
		Time:         now(),
		Execution:    seconds,
		Fingerprint:  fingerprint,
		Reads:        a.Reads,
		Overlaps:     a.Overlaps,
		QUBO:         stats(a.QUBO),
		IsingOffset:  a.Ising.Offset,
		Energy:       a.Energy,
		GroundStates: states,
		Order:        a.Order,
		Path:         a.Path,
		Contig:       a.Contig,
		Overlap:      tour.Overlap(a.Order, a.Overlaps, cyclic),
		Embedding:    a.Report,
	}, nil
}

// writeJSON writes the output, indented, to the filename requested or to w if there's no filename.
func writeJSON(filename string, w io.Writer, out *Output) ([]byte, error) {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize output: %v", err)
	}

	if filename == "" {
		_, err = w.Write(append(data, '\n'))
		return data, err
	}

	if err = os.WriteFile(filename, data, 0666); err != nil {
		return nil, fmt.Errorf("failed to write the output: %v", err)
	}
	return data, nil
}

// Fingerprint is the hex BLAKE2b-256 hash of the QUBO file.
func Fingerprint(q qubo.Sparse) (string, error) {
	var buf bytes.Buffer
	if err := qubofile.Write(&buf, q); err != nil {
		return "", err
	}
	sum := blake2b.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}

// stats counts the variables and terms of a QUBO.
func stats(q qubo.Sparse) Stats {
	s := Stats{Variables: len(q.Variables())}
	for p := range q {
		if p.Linear() {
			s.Linear++
		} else {
			s.Quadratic++
		}
	}
	return s
}

// now is the current time, using same format as log.Println https://golang.org/pkg/log/#Println
func now() string {
	t := time.Now()
	return fmt.Sprintf(
		"%d/%02d/%02d %02d:%02d:%02d",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(),
	)
}
