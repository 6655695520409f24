// Package reads loads and validates the DNA reads that get assembled.
package reads

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq/linear"
	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
)

// ErrInvalidInput is returned for read sets that can't be turned into a QUBO.
var ErrInvalidInput = errors.New("invalid input")

// Read is a single DNA read. Its position in a slice of reads is its identity;
// the ID is only for reporting.
type Read struct {
	ID  string `json:"id"`
	Seq string `json:"seq"`
}

// FromStrings makes reads from raw sequences, upper-cased, named by their index.
func FromStrings(seqs []string) []Read {
	rs := make([]Read, len(seqs))
	for i, s := range seqs {
		rs[i] = Read{
			ID:  fmt.Sprintf("read_%d", i),
			Seq: strings.ToUpper(strings.TrimSpace(s)),
		}
	}
	return rs
}

// Seqs returns the sequences of the reads, in order.
func Seqs(rs []Read) []string {
	seqs := make([]string, len(rs))
	for i, r := range rs {
		seqs[i] = r.Seq
	}
	return seqs
}

// Validate checks that there's at least one read, that every read is a non-empty
// sequence of A, C, G and T, and that the mismatch tolerance isn't negative.
// Lower-case bases are rejected: FromStrings and ReadFile upper-case them on load,
// so soft-masked sequences are accepted from those.
func Validate(rs []Read, mismatches int) error {
	if len(rs) == 0 {
		return fmt.Errorf("%w: no reads", ErrInvalidInput)
	}

	if mismatches < 0 {
		return fmt.Errorf("%w: negative mismatch tolerance, %d", ErrInvalidInput, mismatches)
	}

	for i, r := range rs {
		if r.Seq == "" {
			return fmt.Errorf("%w: read %d (%s) is empty", ErrInvalidInput, i, r.ID)
		}
		for j, b := range r.Seq {
			switch b {
			case 'A', 'C', 'G', 'T':
			default:
				return fmt.Errorf("%w: read %d (%s) has %q at index %d", ErrInvalidInput, i, r.ID, b, j)
			}
		}
	}

	return nil
}

// parsers by lower-case file extension
var parsers = map[string]func(io.Reader) ([]Read, error){
	".fa":    readFASTA,
	".fasta": readFASTA,
	".fna":   readFASTA,
	".fas":   readFASTA,
	".fq":    readFASTQ,
	".fastq": readFASTQ,
	".sam":   readSAM,
	".bam":   readBAM,
}

// Supported is whether ReadFile can parse the file, judging by its extension.
func Supported(path string) bool {
	_, ok := parsers[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ReadFile reads every record of a FASTA, FASTQ, SAM or BAM file, picked by
// the file's extension.
func ReadFile(path string) ([]Read, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reads file: %w", err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	parse, ok := parsers[ext]
	if !ok {
		return nil, fmt.Errorf("failed to read %s: unrecognized extension %q", path, ext)
	}

	rs, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// opened and parsed file but found nothing
	if len(rs) < 1 {
		return nil, fmt.Errorf("%w: no reads in %s", ErrInvalidInput, path)
	}

	return rs, nil
}

func readFASTA(r io.Reader) ([]Read, error) {
	var rs []Read
	fa := fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA))
	for {
		s, err := fa.Read()
		if err == io.EOF {
			return rs, nil
		} else if err != nil {
			return nil, err
		}

		l := s.(*linear.Seq)
		seq := make([]byte, len(l.Seq))
		for i, v := range l.Seq {
			seq[i] = byte(v)
		}
		rs = append(rs, Read{ID: l.ID, Seq: strings.ToUpper(string(seq))})
	}
}

func readFASTQ(r io.Reader) ([]Read, error) {
	var rs []Read
	fq := fastq.NewReader(r, linear.NewQSeq("", nil, alphabet.DNA, alphabet.Sanger))
	for {
		s, err := fq.Read()
		if err == io.EOF {
			return rs, nil
		} else if err != nil {
			return nil, err
		}

		l := s.(*linear.QSeq)
		seq := make([]byte, len(l.Seq))
		for i, ql := range l.Seq {
			seq[i] = byte(ql.L)
		}
		rs = append(rs, Read{ID: l.ID, Seq: strings.ToUpper(string(seq))})
	}
}

// record is the subset of sam.Reader and bam.Reader used here
type record interface {
	Read() (*sam.Record, error)
}

func readSAM(r io.Reader) ([]Read, error) {
	sr, err := sam.NewReader(r)
	if err != nil {
		return nil, err
	}
	return readRecords(sr)
}

func readBAM(r io.Reader) ([]Read, error) {
	br, err := bam.NewReader(r, 0)
	if err != nil {
		return nil, err
	}
	defer br.Close()
	return readRecords(br)
}

// readRecords collects the primary records of an alignment file. Secondary and
// supplementary alignments repeat a read that's already been collected.
func readRecords(rr record) ([]Read, error) {
	var rs []Read
	for {
		rec, err := rr.Read()
		if err == io.EOF {
			return rs, nil
		} else if err != nil {
			return nil, err
		}

		if rec.Flags&(sam.Secondary|sam.Supplementary) != 0 {
			continue
		}
		rs = append(rs, Read{ID: rec.Name, Seq: strings.ToUpper(string(rec.Seq.Expand()))})
	}
}
