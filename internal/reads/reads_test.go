package reads

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
)

var fixture = []Read{
	{ID: "read_0", Seq: "ATGGCGTGCA"},
	{ID: "read_1", Seq: "GCGTGCAATG"},
	{ID: "read_2", Seq: "TGCAATGGCG"},
	{ID: "read_3", Seq: "AATGGCGTGC"},
}

func TestReadFile(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []Read
	}{
		{
			"fasta",
			path.Join("..", "..", "test", "input", "denovo.fa"),
			fixture,
		},
		{
			"fastq, lower case",
			path.Join("..", "..", "test", "input", "denovo.fq"),
			fixture,
		},
		{
			"sam, skipping secondary alignments",
			path.Join("..", "..", "test", "input", "denovo.sam"),
			fixture,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadFile_bam(t *testing.T) {
	out := filepath.Join(t.TempDir(), "reads.bam")
	f, err := os.Create(out)
	if err != nil {
		t.Fatal(err)
	}

	h, err := sam.NewHeader(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	w, err := bam.NewWriter(f, h, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range fixture {
		rec, err := sam.NewRecord(r.ID, nil, nil, -1, -1, 0, 0, nil, []byte(r.Seq), nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		rec.Flags = sam.Unmapped
		if err := w.Write(rec); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	got, err := ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, fixture) {
		t.Errorf("ReadFile() = %v, want %v", got, fixture)
	}
}

func TestReadFile_errors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.fa")
	if err := os.WriteFile(empty, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(empty); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ReadFile() of an empty file = %v, want ErrInvalidInput", err)
	}

	if _, err := ReadFile(filepath.Join(dir, "reads.txt")); err == nil {
		t.Error("ReadFile() of a missing file should fail")
	}

	txt := filepath.Join(dir, "reads.txt")
	if err := os.WriteFile(txt, []byte("ACGT\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(txt); err == nil {
		t.Error("ReadFile() of an unknown extension should fail")
	}
}

func TestValidate(t *testing.T) {
	type args struct {
		rs         []Read
		mismatches int
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{
			"valid reads",
			args{fixture, 0},
			false,
		},
		{
			"single read",
			args{FromStrings([]string{"A"}), 3},
			false,
		},
		{
			"no reads",
			args{nil, 0},
			true,
		},
		{
			"negative mismatches",
			args{fixture, -1},
			true,
		},
		{
			"ambiguous base",
			args{FromStrings([]string{"ACGT", "ACNT"}), 0},
			true,
		},
		{
			"RNA",
			args{FromStrings([]string{"ACGU"}), 0},
			true,
		},
		{
			"empty read",
			args{[]Read{{ID: "blank"}}, 0},
			true,
		},
		{
			"lower-case read that wasn't loaded",
			args{[]Read{{ID: "raw", Seq: "acgt"}}, 0},
			true,
		},
		{
			"lower-case read upper-cased on load",
			args{FromStrings([]string{"acgt"}), 0},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.args.rs, tt.args.mismatches)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Validate() error = %v, should wrap ErrInvalidInput", err)
			}
		})
	}
}

func TestFromStrings(t *testing.T) {
	got := FromStrings([]string{"acgt", " GGA\n"})
	want := []Read{{ID: "read_0", Seq: "ACGT"}, {ID: "read_1", Seq: "GGA"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromStrings() = %v, want %v", got, want)
	}

	if seqs := Seqs(got); !reflect.DeepEqual(seqs, []string{"ACGT", "GGA"}) {
		t.Errorf("Seqs() = %v", seqs)
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"reads.fa", true},
		{"READS.FASTQ", true},
		{"dir/reads.bam", true},
		{"reads.sam", true},
		{"reads.gb", false},
		{"reads", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Supported(tt.path); got != tt.want {
				t.Errorf("Supported() = %v, want %v", got, tt.want)
			}
		})
	}
}
