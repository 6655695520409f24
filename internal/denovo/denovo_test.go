package denovo

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/jjtimmons/qdenovo/config"
	"github.com/jjtimmons/qdenovo/internal/reads"
	"github.com/jjtimmons/qdenovo/internal/solve"
	"github.com/jjtimmons/qdenovo/internal/tour"
	"github.com/spf13/viper"
)

var fixtureReads = []string{"ATGGCGTGCA", "GCGTGCAATG", "TGCAATGGCG", "AATGGCGTGC"}

func testConfig(t *testing.T) *config.Config {
	viper.Reset()
	t.Cleanup(viper.Reset)
	return config.New()
}

func TestSolve(t *testing.T) {
	tests := []struct {
		name         string
		seqs         []string
		modify       func(c *config.Config)
		wantEnergy   float64
		wantStates   int
		wantOrder    []int
		wantPath     []int
		wantContig   string
		wantEmbedded bool
	}{
		{
			"cyclic tour",
			fixtureReads,
			func(c *config.Config) {},
			-30,
			4,
			[]int{1, 2, 3, 0},
			[]int{2, 3, 0, 1},
			"TGCAATGGCGTGCAATG",
			false,
		},
		{
			"open path",
			fixtureReads,
			func(c *config.Config) { c.OpenPath = true },
			-23,
			3,
			[]int{1, 2, 3, 0},
			[]int{1, 2, 3, 0},
			"GCGTGCAATGGCGTGCA",
			false,
		},
		{
			"one read",
			[]string{"ACGT"},
			func(c *config.Config) {},
			0,
			1,
			[]int{0},
			[]int{0},
			"ACGT",
			true,
		},
		{
			// every partial assignment ties the tours, the first tour is used
			"no overlaps",
			[]string{"AAAA", "CCCC", "GGGG"},
			func(c *config.Config) {},
			0,
			34,
			nil,
			nil,
			"",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := testConfig(t)
			tt.modify(conf)

			a, err := Solve(context.Background(), reads.FromStrings(tt.seqs), conf)
			if err != nil {
				t.Fatal(err)
			}

			if math.Abs(a.Energy-tt.wantEnergy) > 1e-9 {
				t.Errorf("Solve() energy = %v, want %v", a.Energy, tt.wantEnergy)
			}
			if len(a.GroundStates) != tt.wantStates {
				t.Errorf("Solve() found %d ground states, want %d", len(a.GroundStates), tt.wantStates)
			}
			if tt.wantOrder != nil && !reflect.DeepEqual(a.Order, tt.wantOrder) {
				t.Errorf("Solve() order = %v, want %v", a.Order, tt.wantOrder)
			}
			if tt.wantPath != nil && !reflect.DeepEqual(a.Path, tt.wantPath) {
				t.Errorf("Solve() path = %v, want %v", a.Path, tt.wantPath)
			}
			if tt.wantContig != "" && a.Contig != tt.wantContig {
				t.Errorf("Solve() contig = %v, want %v", a.Contig, tt.wantContig)
			}

			seen := make(map[int]bool)
			for _, c := range a.Order {
				seen[c] = true
			}
			if len(a.Order) != len(tt.seqs) || len(seen) != len(tt.seqs) {
				t.Errorf("Solve() order = %v isn't a permutation of %d reads", a.Order, len(tt.seqs))
			}
			for _, r := range tt.seqs {
				if !strings.Contains(a.Contig, r) {
					t.Errorf("Solve() contig %s is missing read %s", a.Contig, r)
				}
			}

			// the identity embedding only fits the empty QUBO of one read
			if a.Report.Embedded != tt.wantEmbedded || (a.Embedding == nil) == tt.wantEmbedded {
				t.Errorf("Solve() embedding report = %+v", a.Report)
			}
		})
	}
}

func TestSolve_maxsat(t *testing.T) {
	conf := testConfig(t)
	conf.Solver = "maxsat"

	a, err := Solve(context.Background(), reads.FromStrings(fixtureReads), conf)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(a.Energy+30) > 1e-9 {
		t.Errorf("Solve() energy = %v, want -30", a.Energy)
	}
	if got := tour.Overlap(a.Order, a.Overlaps, true); got != 30 {
		t.Errorf("Solve() order %v has overlap %d, want 30", a.Order, got)
	}
	if len(a.Contig) != 17 {
		t.Errorf("Solve() contig = %s, want 17 bases", a.Contig)
	}
}

func TestSolve_errors(t *testing.T) {
	tests := []struct {
		name    string
		seqs    []string
		modify  func(c *config.Config)
		wantErr error
	}{
		{
			"invalid base",
			[]string{"ACGN", "ACGT"},
			func(c *config.Config) {},
			reads.ErrInvalidInput,
		},
		{
			"no reads",
			nil,
			func(c *config.Config) {},
			reads.ErrInvalidInput,
		},
		{
			"no penalties",
			[]string{"GATTACA", "ACAGGG"},
			func(c *config.Config) {
				c.PenaltyLocation = 0
				c.PenaltyVisit = 0
			},
			tour.ErrInvalidTour,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := testConfig(t)
			tt.modify(conf)

			_, err := Solve(context.Background(), reads.FromStrings(tt.seqs), conf)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Solve() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	conf := testConfig(t)
	conf.SolverMaxVars = 4
	if _, err := Solve(context.Background(), reads.FromStrings(fixtureReads), conf); err == nil {
		t.Error("Solve() should fail when the solver refuses the model")
	}
}

func Test_decodeFirst(t *testing.T) {
	partial := solve.Sample{Spins: map[string]int8{"n0t0": 1, "n0t1": -1, "n1t0": -1, "n1t1": -1}}
	full := solve.Sample{Spins: map[string]int8{"n0t0": -1, "n0t1": 1, "n1t0": 1, "n1t1": -1}}

	tests := []struct {
		name    string
		ground  []solve.Sample
		n       int
		want    []int
		wantErr bool
	}{
		{"first is a tour", []solve.Sample{full, partial}, 2, []int{1, 0}, false},
		{"skips partial assignments", []solve.Sample{partial, full}, 2, []int{1, 0}, false},
		{"no tours", []solve.Sample{partial}, 2, nil, true},
		{"no ground states", nil, 2, nil, true},
		{"one read", []solve.Sample{{Spins: map[string]int8{}}}, 1, []int{0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeFirst(tt.ground, tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("decodeFirst() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && !errors.Is(err, tour.ErrInvalidTour) {
				t.Errorf("decodeFirst() error = %v, want %v", err, tour.ErrInvalidTour)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("decodeFirst() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	conf := testConfig(t)

	inst, err := Build(reads.FromStrings(fixtureReads), conf)
	if err != nil {
		t.Fatal(err)
	}

	if got := stats(inst.QUBO); got != (Stats{Variables: 16, Linear: 0, Quadratic: 96}) {
		t.Errorf("Build() QUBO stats = %+v", got)
	}
	if inst.Overlaps[3][0] != 9 {
		t.Errorf("Build() overlaps = %v", inst.Overlaps)
	}
	if len(inst.Ising.Variables()) != 16 {
		t.Errorf("Build() Ising model has %d variables, want 16", len(inst.Ising.Variables()))
	}
}

func Test_newSolver(t *testing.T) {
	tests := []struct {
		name    string
		solver  string
		want    solve.Solver
		wantErr bool
	}{
		{"default", "", solve.Enumerate{MaxVars: 20}, false},
		{"enumerate", "enumerate", solve.Enumerate{MaxVars: 20}, false},
		{"maxsat", "maxsat", solve.MaxSAT{Scale: 1000}, false},
		{"unknown", "qpu", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := testConfig(t)
			conf.Solver = tt.solver

			got, err := newSolver(conf)
			if (err != nil) != tt.wantErr {
				t.Errorf("newSolver() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("newSolver() = %v, want %v", got, tt.want)
			}
		})
	}
}

func fixturePath(name string) string {
	return filepath.Join("..", "..", "test", "input", name)
}
