// Command wfdenoise denoises detector waveforms with a total-variation filter.
//
// Usage:
//
//	wfdenoise [flags] [file]
//
// The input is a plain-text waveform, one sample per line; without a file
// argument samples are read from stdin. Blank lines and lines starting with
// '#' are skipped. The processed waveform is written one sample per line to
// stdout.
//
// Examples:
//
//	wfdenoise -lambda 4 record.txt
//	wfdenoise -lambda 4 -baseline record.txt
//	wfdenoise -lambda 4 -stats record.txt
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-waveform/dsp/baseline"
	"github.com/cwbudde/algo-waveform/dsp/denoise/tv1d"
	"github.com/cwbudde/algo-waveform/dsp/pulse"
	"github.com/cwbudde/algo-waveform/measure/noise"
	timestats "github.com/cwbudde/algo-waveform/stats/time"
)

func main() {
	lambda := flag.Float64("lambda", 0, "total-variation denoising weight; 0 disables")
	subtract := flag.Bool("baseline", false, "estimate the baseline and subtract it")
	stats := flag.Bool("stats", false, "print raw/processed statistics instead of samples")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wfdenoise [flags] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Denoises a plain-text waveform (one sample per line).\n")
		fmt.Fprintf(os.Stderr, "Without a file argument, samples are read from stdin.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  wfdenoise -lambda 4 record.txt\n")
		fmt.Fprintf(os.Stderr, "  wfdenoise -lambda 4 -baseline record.txt\n")
		fmt.Fprintf(os.Stderr, "  wfdenoise -lambda 4 -stats record.txt\n")
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	samples, err := readSamples(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if len(samples) == 0 {
		fmt.Fprintf(os.Stderr, "error: no samples in input\n")
		os.Exit(1)
	}

	processed := samples
	if *lambda > 0 {
		processed, err = tv1d.Denoise(samples, *lambda)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: denoise: %v\n", err)
			os.Exit(1)
		}
	}

	if *subtract {
		est := baseline.Default()
		res, err := est.Estimate(processed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: baseline: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "baseline: %.3f (optimal=%v)\n", res.Value, res.Optimal)
		processed = pulse.SubtractBaseline(processed, res.Value)
	}

	if *stats {
		printStats(samples, processed)
		return
	}

	w := bufio.NewWriter(os.Stdout)
	for _, v := range processed {
		if _, err := fmt.Fprintln(w, strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
			fmt.Fprintf(os.Stderr, "error: write output: %v\n", err)
			os.Exit(1)
		}
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: flush output: %v\n", err)
		os.Exit(1)
	}
}

func readSamples(path string) ([]float64, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var samples []float64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		samples = append(samples, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}

func printStats(raw, processed []float64) {
	rawStats := timestats.Calculate(raw)
	procStats := timestats.Calculate(processed)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Metric\tRaw\tProcessed\n")
	fmt.Fprintf(tw, "------\t---\t---------\n")

	rows := []struct {
		name      string
		raw, proc float64
	}{
		{"Mean", rawStats.Mean, procStats.Mean},
		{"RMS", rawStats.RMS, procStats.RMS},
		{"StdDev", rawStats.StdDev, procStats.StdDev},
		{"Min", rawStats.Min, procStats.Min},
		{"Max", rawStats.Max, procStats.Max},
		{"PeakToPeak", rawStats.PeakToPeak, procStats.PeakToPeak},
		{"TotalVariation", rawStats.TotalVariation, procStats.TotalVariation},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%.6g\t%.6g\n", row.name, row.raw, row.proc)
	}

	if len(raw) == len(processed) {
		if rms, err := noise.ResidualRMS(raw, processed); err == nil {
			fmt.Fprintf(tw, "ResidualRMS\t\t%.6g\n", rms)
		}
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: flush output: %v\n", err)
	}
}
