package tour

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jjtimmons/qdenovo/internal/overlap"
	"github.com/jjtimmons/qdenovo/internal/qubo"
)

var fixtureReads = []string{"ATGGCGTGCA", "GCGTGCAATG", "TGCAATGGCG", "AATGGCGTGC"}

// assignment sets the variables of each (read, position) in order
func assignment(order []int) map[string]bool {
	n := len(order)
	x := make(map[string]bool)
	for i := 0; i < n*n; i++ {
		x[qubo.Name(i, n)] = false
	}
	for t, c := range order {
		x[qubo.Name(c*n+t, n)] = true
	}
	return x
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		x       map[string]bool
		n       int
		want    []int
		wantErr bool
	}{
		{"diagonal", assignment([]int{0, 1, 2, 3}), 4, []int{0, 1, 2, 3}, false},
		{"rotated", assignment([]int{3, 0, 1, 2}), 4, []int{3, 0, 1, 2}, false},
		{"single read", map[string]bool{"n0t0": true}, 1, []int{0}, false},
		{"read twice", map[string]bool{"n0t0": true, "n0t1": true}, 2, nil, true},
		{"shared position", map[string]bool{"n0t0": true, "n1t0": true}, 2, nil, true},
		{"empty position", map[string]bool{"n0t0": true}, 2, nil, true},
		{"all off", map[string]bool{"n0t0": false}, 1, nil, true},
		{"unknown variable", map[string]bool{"n5t0": true}, 2, nil, true},
		{"no reads", map[string]bool{}, 0, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.x, tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("Decode() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil && !errors.Is(err, ErrInvalidTour) {
				t.Errorf("Decode() error = %v, want ErrInvalidTour", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlap(t *testing.T) {
	o := overlap.NewMatrix(fixtureReads, 0)

	if got := Overlap([]int{0, 1, 2, 3}, o, true); got != 30 {
		t.Errorf("Overlap() cyclic = %d, want 30", got)
	}
	if got := Overlap([]int{3, 0, 1, 2}, o, false); got != 23 {
		t.Errorf("Overlap() open = %d, want 23", got)
	}
	if got := Overlap([]int{2}, o, true); got != 0 {
		t.Errorf("Overlap() single read = %d, want 0", got)
	}
}

func TestContig(t *testing.T) {
	o := overlap.NewMatrix(fixtureReads, 0)

	type args struct {
		order  []int
		cyclic bool
	}
	tests := []struct {
		name       string
		args       args
		wantContig string
		wantPath   []int
	}{
		{
			"open path",
			args{[]int{3, 0, 1, 2}, false},
			"AATGGCGTGCAATGGCG",
			[]int{3, 0, 1, 2},
		},
		{
			"cyclic tour opened at the weakest link",
			args{[]int{0, 1, 2, 3}, true},
			"GCGTGCAATGGCGTGCA",
			[]int{1, 2, 3, 0},
		},
		{
			"cyclic tour with ties",
			args{[]int{2, 3, 0, 1}, true},
			"AATGGCGTGCAATGGCG",
			[]int{3, 0, 1, 2},
		},
		{
			"single read",
			args{[]int{0}, true},
			"ATGGCGTGCA",
			[]int{0},
		},
		{
			"no reads",
			args{nil, false},
			"",
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotContig, gotPath := Contig(fixtureReads, tt.args.order, o, tt.args.cyclic)
			if gotContig != tt.wantContig {
				t.Errorf("Contig() = %v, want %v", gotContig, tt.wantContig)
			}
			if !reflect.DeepEqual(gotPath, tt.wantPath) {
				t.Errorf("Contig() path = %v, want %v", gotPath, tt.wantPath)
			}
		})
	}
}
