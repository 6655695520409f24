// Package cmd is for command line interactions with the qdenovo application
package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/jjtimmons/qdenovo/config"
	"github.com/jjtimmons/qdenovo/internal/qubo"
	"github.com/jjtimmons/qdenovo/internal/solve"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "qdenovo",
	Short: `Assemble DNA reads de novo as an Ising model.
Reads are laid out by minimizing a QUBO over their positions`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}

// initConfig reads in the settings file, if there is one
func initConfig() {
	if err := config.Load(viper.GetString("settings")); err != nil {
		log.Fatal(err)
	}
}

// set flags
func init() {
	cobra.OnInitialize(initConfig)

	w := qubo.DefaultWeights()
	flags := RootCmd.PersistentFlags()

	// settings is an optional parameter for a settings file (that overrides the defaults)
	flags.StringP("settings", "s", config.RootSettingsFile, "settings file <YAML>")
	flags.IntP("mismatches", "m", 0, "mismatches allowed in an overlap between reads")
	flags.Float64("penalty-reward", w.Reward, "reward for placing a read, p0")
	flags.Float64("penalty-location", w.Location, "penalty for a read in more than one position, p1")
	flags.Float64("penalty-visit", w.Visit, "penalty for a position with more than one read, p2 (default p1)")
	flags.Bool("open-path", false, "don't reward an overlap from the last read back to the first")
	flags.String("solver", "enumerate", "solver for the Ising model: enumerate or maxsat")
	flags.Int("solver-max-vars", solve.DefaultMaxVars, "largest model the enumerate solver accepts")
	flags.Float64("maxsat-scale", solve.DefaultScale, "scale of coefficients before rounding to MaxSAT weights")
	flags.Int("chimera-rows", 3, "rows of Chimera cells in the target topology")
	flags.Int("chimera-cols", 3, "columns of Chimera cells in the target topology")
	flags.Int("chimera-shore", 4, "qubits per shore of a Chimera cell")
	flags.String("embedding", "", "precomputed embedding of the QUBO onto the target <JSON>")
	flags.BoolP("verbose", "v", false, "whether to log progress")
	flags.IntP("workers", "w", 0, "inputs to assemble in parallel with batch (default one per CPU)")

	for _, name := range []string{
		"settings",
		"mismatches",
		"penalty-reward",
		"penalty-location",
		"penalty-visit",
		"open-path",
		"solver",
		"solver-max-vars",
		"maxsat-scale",
		"chimera-rows",
		"chimera-cols",
		"chimera-shore",
		"embedding",
		"verbose",
		"workers",
	} {
		viper.BindPFlag(name, flags.Lookup(name))
	}
}
