// Package denovo assembles DNA reads by solving their layout as an Ising model.
//
// Reads are scored for overlap, the overlaps become a QUBO whose minimum is the
// best read order, and the QUBO is converted to an Ising model, solved, decoded
// into a read order and merged into a contig. The model's graph is also embedded
// onto an annealer topology to report whether it would fit on the hardware.
package denovo

import (
	"context"
	"fmt"
	"log"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/jjtimmons/qdenovo/config"
	"github.com/jjtimmons/qdenovo/internal/embed"
	"github.com/jjtimmons/qdenovo/internal/ising"
	"github.com/jjtimmons/qdenovo/internal/overlap"
	"github.com/jjtimmons/qdenovo/internal/qubo"
	"github.com/jjtimmons/qdenovo/internal/reads"
	"github.com/jjtimmons/qdenovo/internal/solve"
	"github.com/jjtimmons/qdenovo/internal/tour"
)

// Instance is a read set and the models built from it.
type Instance struct {
	Reads    []reads.Read
	Overlaps overlap.Matrix
	QUBO     qubo.Sparse
	Ising    ising.Model
}

// Assembly is a solved Instance.
type Assembly struct {
	*Instance

	// GroundStates are every lowest energy sample the solver returned
	GroundStates []solve.Sample

	// Energy of the ground state in the QUBO, ie with the Ising offset
	Energy float64

	// Order is the read at each position of the first ground state that is a valid tour
	Order []int

	// Path is the order the reads are merged in
	Path []int

	// Contig is the merged sequence
	Contig string

	// Source is the logical graph of the QUBO
	Source []embed.Edge

	// Embedding of the source graph on the target topology, nil if it failed
	Embedding embed.Embedding

	// Report on the embedding
	Report embed.Report
}

// Build validates the reads and builds the QUBO and Ising model for them.
func Build(rs []reads.Read, conf *config.Config) (*Instance, error) {
	if err := reads.Validate(rs, conf.Mismatches); err != nil {
		return nil, err
	}

	o := overlap.NewMatrix(reads.Seqs(rs), conf.Mismatches)
	q, err := qubo.DenseBuilder{Weights: conf.Weights()}.Build(o)
	if err != nil {
		return nil, err
	}

	if conf.Verbose {
		log.Printf("built QUBO over %s variables with %s terms\n",
			humanize.Comma(int64(len(rs)*len(rs))), humanize.Comma(int64(len(q))))
	}

	return &Instance{
		Reads:    rs,
		Overlaps: o,
		QUBO:     q,
		Ising:    ising.FromQUBO(q),
	}, nil
}

// Solve builds the models for the reads, finds their ground states and decodes
// the first one that is a valid tour into an assembly.
func Solve(ctx context.Context, rs []reads.Read, conf *config.Config) (*Assembly, error) {
	inst, err := Build(rs, conf)
	if err != nil {
		return nil, err
	}

	solver, err := newSolver(conf)
	if err != nil {
		return nil, err
	}

	samples, err := solver.Solve(ctx, inst.Ising)
	if err != nil {
		return nil, fmt.Errorf("failed to solve: %w", err)
	}
	ground, err := solve.Lowest(samples)
	if err != nil {
		return nil, fmt.Errorf("failed to solve: %w", err)
	}

	if conf.Verbose {
		log.Printf("%s samples, %d ground states at %.4g\n",
			humanize.Comma(int64(len(samples))), len(ground), ground[0].Energy+inst.Ising.Offset)
	}

	n := len(rs)
	order, err := decodeFirst(ground, n)
	if err != nil {
		return nil, err
	}
	contig, path := tour.Contig(reads.Seqs(rs), order, inst.Overlaps, !conf.OpenPath)

	source, err := embed.Graph(inst.QUBO, n)
	if err != nil {
		return nil, err
	}
	target := embed.Chimera(conf.ChimeraRows, conf.ChimeraCols, conf.ChimeraShore)
	emb, report := embed.Run(newEmbedder(conf), source, target)

	if conf.Verbose && !report.Embedded {
		log.Printf("failed to embed onto C(%d,%d,%d): %s\n", conf.ChimeraRows, conf.ChimeraCols, conf.ChimeraShore, report.Error)
	}

	return &Assembly{
		Instance:     inst,
		GroundStates: ground,
		Energy:       ground[0].Energy + inst.Ising.Offset,
		Order:        order,
		Path:         path,
		Contig:       contig,
		Source:       source,
		Embedding:    emb,
		Report:       report,
	}, nil
}

// decodeFirst returns the read order of the first ground state that is a valid tour.
// Reads without overlap tie partial assignments with full tours, so the first
// ground state isn't necessarily one.
func decodeFirst(ground []solve.Sample, n int) ([]int, error) {
	if n == 1 {
		// the QUBO of one read is empty
		return []int{0}, nil
	}

	var first error
	for _, s := range ground {
		order, err := tour.Decode(ising.Binary(s.Spins), n)
		if err == nil {
			return order, nil
		}
		if first == nil {
			first = err
		}
	}
	if first == nil {
		first = fmt.Errorf("%w: no ground states", tour.ErrInvalidTour)
	}
	// penalties too low for the overlaps
	return nil, fmt.Errorf("failed to decode any of %d ground states: %w", len(ground), first)
}

// newSolver returns the solver named in the settings.
func newSolver(conf *config.Config) (solve.Solver, error) {
	switch conf.Solver {
	case "", "enumerate":
		return solve.Enumerate{MaxVars: conf.SolverMaxVars}, nil
	case "maxsat":
		return solve.MaxSAT{Scale: conf.MaxSATScale}, nil
	default:
		return nil, fmt.Errorf("unknown solver %q", conf.Solver)
	}
}

// newEmbedder loads the embedding file if there is one, otherwise
// it tries the identity embedding, which only fits a single read.
func newEmbedder(conf *config.Config) embed.Embedder {
	if conf.Embedding != "" {
		return embed.File{Path: conf.Embedding}
	}
	return embed.Identity{}
}

// workers is the number of parallel batches, at least 1
func workers(conf *config.Config) int {
	if conf.Workers > 0 {
		return conf.Workers
	}
	return runtime.GOMAXPROCS(0)
}
