package denovo

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/exascience/pargo/parallel"
	"github.com/jjtimmons/qdenovo/config"
	"github.com/jjtimmons/qdenovo/internal/reads"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Result of assembling one file in a batch.
type Result struct {
	// Input is the reads file
	Input string

	// Output is the JSON file written, empty if the assembly failed
	Output string

	// Contig assembled from the reads
	Contig string

	// Err is why the assembly failed
	Err error
}

// Batch assembles each reads file and writes its output next to it, or to outDir
// if it's set. Files are solved in parallel, with a progress bar written to progress.
// A failed file doesn't stop the others; its error is in its Result.
func Batch(ctx context.Context, inputs []string, outDir string, conf *config.Config, progress io.Writer) []Result {
	results := make([]Result, len(inputs))
	if len(inputs) == 0 {
		return results
	}

	label := "assembled: "
	pbs := mpb.New(mpb.WithWidth(40), mpb.WithOutput(progress))
	bar := pbs.AddBar(int64(len(inputs)),
		mpb.PrependDecorators(
			decor.Name(label, decor.WC{W: len(label), C: decor.DindentRight}),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
			decor.EwmaETA(decor.ET_STYLE_GO, 16),
			decor.OnComplete(decor.Name(""), ". done"),
		),
	)

	parallel.Range(0, len(inputs), workers(conf), func(low, high int) {
		for i := low; i < high; i++ {
			start := time.Now()
			results[i] = assembleFile(ctx, inputs[i], outDir, conf)
			bar.EwmaIncrBy(1, time.Since(start))
		}
	})
	pbs.Wait()

	return results
}

// assembleFile solves one reads file and writes its JSON output.
func assembleFile(ctx context.Context, in, outDir string, conf *config.Config) Result {
	start := time.Now()
	res := Result{Input: in}

	rs, err := reads.ReadFile(in)
	if err != nil {
		res.Err = err
		return res
	}

	a, err := Solve(ctx, rs, conf)
	if err != nil {
		res.Err = err
		return res
	}

	out, err := newOutput(in, a, time.Since(start).Seconds(), !conf.OpenPath)
	if err != nil {
		res.Err = err
		return res
	}

	filename := (&inputParser{}).guessOutput(in, ".output.json")
	if outDir != "" {
		filename = filepath.Join(outDir, filepath.Base(filename))
	}
	if _, err = writeJSON(filename, nil, out); err != nil {
		res.Err = err
		return res
	}

	res.Output = filename
	res.Contig = a.Contig
	return res
}
