package cmd

import (
	"github.com/jjtimmons/qdenovo/internal/denovo"
	"github.com/spf13/cobra"
)

// overlapCmd is for printing the overlaps between reads
var overlapCmd = &cobra.Command{
	Use:                        "overlap [read] ... [readN]",
	Short:                      "Print the overlap matrix of reads",
	Run:                        denovo.OverlapCmd,
	SuggestionsMinimumDistance: 2,
	Long: `
Print the length of the overlap between the end of each read (rows) and the
start of every other read (columns).`,
	Aliases: []string{"overlaps"},
}

// set flags
func init() {
	overlapCmd.Flags().StringP("in", "i", "", "input file with reads <FASTA|FASTQ|SAM|BAM>")

	RootCmd.AddCommand(overlapCmd)
}
