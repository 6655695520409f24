package denovo

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jjtimmons/qdenovo/config"
	"github.com/jjtimmons/qdenovo/internal/embed"
	"github.com/jjtimmons/qdenovo/internal/overlap"
	"github.com/jjtimmons/qdenovo/internal/qubofile"
	"github.com/jjtimmons/qdenovo/internal/reads"
	"github.com/spf13/cobra"
)

// QUBOCmd takes a cobra command (with its flags) and writes the QUBO of the reads.
func QUBOCmd(cmd *cobra.Command, args []string) {
	flags, conf := parseCmdFlags(cmd, args, ".qubo")
	inst := build(flags, conf)
	if err := writeTo(flags.out, os.Stdout, func(w io.Writer) error {
		return qubofile.Write(w, inst.QUBO)
	}); err != nil {
		stderr.Fatalln(err)
	}
}

// IsingCmd takes a cobra command (with its flags) and writes the Ising model of the reads.
func IsingCmd(cmd *cobra.Command, args []string) {
	flags, conf := parseCmdFlags(cmd, args, ".ising")
	inst := build(flags, conf)
	if err := writeTo(flags.out, os.Stdout, func(w io.Writer) error {
		return qubofile.WriteIsing(w, inst.Ising)
	}); err != nil {
		stderr.Fatalln(err)
	}
}

// SolveCmd takes a cobra command (with its flags) and assembles the reads.
func SolveCmd(cmd *cobra.Command, args []string) {
	flags, conf := parseCmdFlags(cmd, args, ".output.json")
	dot, _ := cmd.Flags().GetString("dot")

	if _, err := Assemble(contextOf(cmd), flags, conf, dot); err != nil {
		stderr.Fatalln(err)
	}
}

// Assemble solves the reads of the flags and writes the JSON output.
// If dot isn't empty the QUBO's graph is also written there in Graphviz format.
func Assemble(ctx context.Context, flags *Flags, conf *config.Config, dot string) (*Assembly, error) {
	start := time.Now()

	rs, err := flags.reads()
	if err != nil {
		return nil, err
	}

	a, err := Solve(ctx, rs, conf)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	out, err := newOutput(flags.in, a, elapsed.Seconds(), !conf.OpenPath)
	if err != nil {
		return nil, err
	}
	if _, err = writeJSON(flags.out, os.Stdout, out); err != nil {
		return nil, err
	}

	if dot != "" {
		graph, err := embed.DOT(a.Source, a.Embedding)
		if err != nil {
			return nil, fmt.Errorf("failed to render the QUBO graph: %w", err)
		}
		if err = os.WriteFile(dot, []byte(graph), 0666); err != nil {
			return nil, fmt.Errorf("failed to write the QUBO graph: %w", err)
		}
	}

	if flags.out != "" {
		fmt.Println(a.Contig)
	}

	if conf.Verbose {
		fmt.Printf("%s\n\n", elapsed)
	}

	return a, nil
}

// BatchCmd takes a cobra command (with its flags) and assembles each reads file
// passed as an argument or with --in.
func BatchCmd(cmd *cobra.Command, args []string) {
	conf := config.New()
	if err := conf.Validate(); err != nil {
		stderr.Fatal(err)
	}

	inputs := args
	if in, err := cmd.Flags().GetStringSlice("in"); err == nil {
		inputs = append(inputs, in...)
	}
	if len(inputs) == 0 {
		cmd.Help()
		stderr.Fatal("\nno reads files passed.")
	}
	outDir, _ := cmd.Flags().GetString("out-dir")

	results := Batch(contextOf(cmd), inputs, outDir, conf, os.Stderr)

	failed := 0
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
	fmt.Fprintf(writer, "input\toutput\tcontig\t\n")
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(writer, "%s\t-\t%v\t\n", r.Input, r.Err)
			continue
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t\n", r.Input, r.Output, r.Contig)
	}
	writer.Flush()

	if failed > 0 {
		stderr.Fatalf("failed to assemble %d of %d inputs", failed, len(results))
	}
}

// OverlapCmd takes a cobra command (with its flags) and prints the overlap matrix of the reads.
func OverlapCmd(cmd *cobra.Command, args []string) {
	flags, conf := parseCmdFlags(cmd, args, "")

	rs, err := flags.reads()
	if err != nil {
		stderr.Fatalln(err)
	}
	if err = reads.Validate(rs, conf.Mismatches); err != nil {
		stderr.Fatalln(err)
	}

	writeOverlaps(os.Stdout, rs, overlap.NewMatrix(reads.Seqs(rs), conf.Mismatches))
}

// writeOverlaps prints the matrix as a table, one row and column per read
func writeOverlaps(w io.Writer, rs []reads.Read, o overlap.Matrix) {
	writer := tabwriter.NewWriter(w, 0, 4, 3, ' ', tabwriter.AlignRight)

	header := make([]string, len(rs))
	for i, r := range rs {
		header[i] = r.ID
	}
	fmt.Fprintf(writer, "\t%s\t\n", strings.Join(header, "\t"))

	for i, row := range o {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = humanize.Comma(int64(v))
		}
		fmt.Fprintf(writer, "%s\t%s\t\n", rs[i].ID, strings.Join(cells, "\t"))
	}
	writer.Flush()
}

// build reads and validates the reads of the flags and builds their models.
func build(flags *Flags, conf *config.Config) *Instance {
	rs, err := flags.reads()
	if err != nil {
		stderr.Fatalln(err)
	}

	inst, err := Build(rs, conf)
	if err != nil {
		stderr.Fatalln(err)
	}
	return inst
}

// writeTo calls write with the file, created, or with w if there's no filename.
func writeTo(filename string, w io.Writer, write func(io.Writer) error) error {
	if filename == "" {
		return write(w)
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if err = write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return f.Close()
}

// contextOf is the command's context, cancelled on interrupt when run from main
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
