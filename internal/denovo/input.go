package denovo

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jjtimmons/qdenovo/config"
	"github.com/jjtimmons/qdenovo/internal/reads"
	"github.com/spf13/cobra"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// Flags contains parsed cobra Flags like "in" and "out" that are used by multiple commands.
type Flags struct {
	// the reads file to assemble
	in string

	// the name of the file to write the output to. Empty is stdout
	out string

	// reads passed as arguments rather than in a file
	seqs []string
}

// inputParser contains methods for parsing flags from the input &cobra.Command.
type inputParser struct{}

// NewFlags makes a new flags object manually. for testing.
func NewFlags(in, out string, seqs []string) (*Flags, *config.Config) {
	return &Flags{in: in, out: out, seqs: seqs}, config.New()
}

// parseCmdFlags gathers the in path, out path, etc from a cobra cmd object.
// ext is the extension of the guessed output file, if none was passed.
func parseCmdFlags(cmd *cobra.Command, args []string, ext string) (*Flags, *config.Config) {
	var err error
	fs := &Flags{} // parsed flags
	p := inputParser{}
	c := config.New()

	if err = c.Validate(); err != nil {
		stderr.Fatal(err)
	}

	fs.out, _ = cmd.Flags().GetString("out")

	if len(args) > 0 {
		fs.seqs = args // reads on the command line, output to stdout by default
		return fs, c
	}

	if fs.in, err = cmd.Flags().GetString("in"); fs.in == "" || err != nil {
		if fs.in, err = p.guessInput(); err != nil {
			cmd.Help()
			stderr.Fatal(err)
		}
	}

	if fs.out == "" && ext != "" {
		fs.out = p.guessOutput(fs.in, ext)
	}

	return fs, c
}

// reads returns the reads from the command line or the input file.
func (fs *Flags) reads() ([]reads.Read, error) {
	if len(fs.seqs) > 0 {
		return reads.FromStrings(fs.seqs), nil
	}
	return reads.ReadFile(fs.in)
}

// guessInput returns the first reads file in the current directory. Is used
// if the user hasn't specified an input file.
func (p *inputParser) guessInput() (in string, err error) {
	dir, _ := filepath.Abs(".")
	files, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		if reads.Supported(file.Name()) {
			return file.Name(), nil
		}
	}

	return "", fmt.Errorf("failed: no input argument set and no reads file found in %s", dir)
}

// guessOutput gets an outpath path from an input path (if no output path is
// specified). It uses the same name as the input path to create an output.
func (p *inputParser) guessOutput(in, ext string) (out string) {
	noExt := strings.TrimSuffix(in, filepath.Ext(in))
	return noExt + ext
}
