package cmd

import (
	"github.com/jjtimmons/qdenovo/internal/denovo"
	"github.com/spf13/cobra"
)

// quboCmd is for writing the QUBO of a set of reads
var quboCmd = &cobra.Command{
	Use:                        "qubo [read] ... [readN]",
	Short:                      "Write the QUBO for assembling reads",
	Run:                        denovo.QUBOCmd,
	SuggestionsMinimumDistance: 2,
	Long: `
Build the QUBO whose minimum is the best layout of the reads. The QUBO has a
variable per read and position, "n{read}t{position}", and is written in the
qbsolv format: a "p qubo" header, linear terms, then quadratic terms.

Reads are passed as arguments or read from a FASTA, FASTQ, SAM or BAM file.`,
}

// isingCmd is for writing the Ising model of a set of reads
var isingCmd = &cobra.Command{
	Use:                        "ising [read] ... [readN]",
	Short:                      "Write the Ising model for assembling reads",
	Run:                        denovo.IsingCmd,
	SuggestionsMinimumDistance: 2,
	Long: `
Build the QUBO for the reads and convert it to an Ising model with x = (1 + s) / 2.
Written like a QUBO file with a "p ising" header: fields, then couplings.`,
}

// set flags
func init() {
	for _, c := range []*cobra.Command{quboCmd, isingCmd} {
		c.Flags().StringP("in", "i", "", "input file with reads <FASTA|FASTQ|SAM|BAM>")
		c.Flags().StringP("out", "o", "", "output file name (default: stdout for reads as arguments)")
		RootCmd.AddCommand(c)
	}
}
