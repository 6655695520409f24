package cmd

import (
	"github.com/jjtimmons/qdenovo/internal/denovo"
	"github.com/spf13/cobra"
)

// solveCmd is for assembling a set of reads end to end
var solveCmd = &cobra.Command{
	Use:                        "solve [read] ... [readN]",
	Short:                      "Assemble reads into a contig",
	Run:                        denovo.SolveCmd,
	SuggestionsMinimumDistance: 2,
	Long: `
Assemble reads de novo. The reads' QUBO is converted to an Ising model and solved
for its ground states. The first ground state is decoded into a read order and the
reads are merged, in that order, into a contig.

The QUBO's graph is also embedded onto a Chimera topology to check whether it
would fit on an annealer. Results are written as JSON.

Without --embedding, each variable is mapped onto the qubit with the same index.
That can't fit the QUBO of more than one read (its penalties form triangles and
the Chimera graph is bipartite), so the embedding is reported as failed. Pass a
precomputed embedding, a JSON object of variable index to qubit chain, with
--embedding for a useful report.`,
	Aliases: []string{"assemble"},
}

// batchCmd is for assembling many reads files in parallel
var batchCmd = &cobra.Command{
	Use:                        "batch [file] ... [fileN]",
	Short:                      "Assemble many reads files in parallel",
	Run:                        denovo.BatchCmd,
	SuggestionsMinimumDistance: 2,
	Long: `
Assemble each reads file as "solve" would, in parallel. Each file's output is
written next to it as <name>.output.json, or to --out-dir.`,
}

// set flags
func init() {
	solveCmd.Flags().StringP("in", "i", "", "input file with reads <FASTA|FASTQ|SAM|BAM>")
	solveCmd.Flags().StringP("out", "o", "", "output file name <JSON>")
	solveCmd.Flags().StringP("dot", "d", "", "output file for the QUBO's graph <DOT>")

	batchCmd.Flags().StringSliceP("in", "i", []string{}, "input files with reads")
	batchCmd.Flags().StringP("out-dir", "o", "", "directory to write the outputs to")

	RootCmd.AddCommand(solveCmd)
	RootCmd.AddCommand(batchCmd)
}
