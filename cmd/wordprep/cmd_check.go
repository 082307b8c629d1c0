package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/upsun/wordprep/pkg/convert"
	"github.com/upsun/wordprep/pkg/wordpair"
)

// gridSize is the number of cards the flashcard page lays out. A list with
// fewer pairs cannot fill the grid and the page refuses to load it.
const gridSize = 25

var errTooFewPairs = errors.New("too few word pairs")

type checkResult struct {
	Path      string
	Pairs     int
	Malformed []*wordpair.MalformedLineError
}

func checkCmd(opts *globalOptions) *cobra.Command {
	var plain bool
	var minPairs int
	cmd := &cobra.Command{
		Use:           "check [file...]",
		Short:         "Check word lists for malformed lines without writing anything",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cnf, err := loadConfig(opts, stderrFor(cmd, opts))
			if err != nil {
				return err
			}
			if minPairs < 0 {
				return fmt.Errorf("--min-pairs must not be negative, got %d", minPairs)
			}
			paths := args
			if len(paths) == 0 {
				paths = []string{cnf.InputPath}
			}
			return runCheck(cmd.Context(), paths, cnf, checkOptions{plain: plain, minPairs: minPairs}, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false,
		"Output plain tab-separated values with header row.")
	cmd.Flags().IntVar(&minPairs, "min-pairs", 0,
		fmt.Sprintf("Fail if a file has fewer valid pairs than this (0 disables; the flashcard grid needs %d).", gridSize))

	return cmd
}

type checkOptions struct {
	plain    bool
	minPairs int
}

func runCheck(ctx context.Context, paths []string, cnf *convert.Config, opts checkOptions, stdout io.Writer) error {
	results, err := checkFiles(ctx, paths, wordpair.ParseOptions{TrailingLine: cnf.TrailingLine})
	if err != nil {
		return err
	}

	if opts.plain {
		outputCheckPlain(results, stdout)
	} else {
		printCheckResults(results, stdout)
	}

	var malformed, files int
	var short []string
	for _, r := range results {
		if len(r.Malformed) > 0 {
			malformed += len(r.Malformed)
			files++
		}
		if r.Pairs < opts.minPairs {
			short = append(short, fmt.Sprintf("%s has %d", r.Path, r.Pairs))
		}
	}

	var errs []error
	if malformed > 0 {
		errs = append(errs, fmt.Errorf("%w: %d malformed line(s) in %d file(s)", wordpair.ErrMalformedRecord, malformed, files))
	}
	if len(short) > 0 {
		errs = append(errs, fmt.Errorf("%w: need at least %d, %s", errTooFewPairs, opts.minPairs, strings.Join(short, ", ")))
	}
	return errors.Join(errs...)
}

// checkFiles scans the files concurrently. Results are in the order of paths.
func checkFiles(ctx context.Context, paths []string, opts wordpair.ParseOptions) ([]checkResult, error) {
	results := make([]checkResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			pairs, malformed := wordpair.Scan(string(b), opts)
			results[i] = checkResult{Path: path, Pairs: len(pairs), Malformed: malformed}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printCheckResults(results []checkResult, stdout io.Writer) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(stdout)
	tbl.SetAllowedRowLength(getTerminalWidth())
	tbl.AppendHeader(table.Row{"File", "Pairs", "Malformed"})
	for _, r := range results {
		tbl.AppendRow(table.Row{r.Path, r.Pairs, len(r.Malformed)})
	}
	tbl.Render()

	var hasMalformed bool
	for _, r := range results {
		if len(r.Malformed) > 0 {
			hasMalformed = true
			break
		}
	}
	if !hasMalformed {
		return
	}

	fmt.Fprintln(stdout, "\nMalformed lines:")
	errTbl := table.NewWriter()
	errTbl.SetOutputMirror(stdout)
	errTbl.SetAllowedRowLength(getTerminalWidth())
	errTbl.AppendHeader(table.Row{"File", "Line", "Fields", "Text"})
	for _, r := range results {
		for _, m := range r.Malformed {
			errTbl.AppendRow(table.Row{r.Path, m.Line, m.Fields, fmt.Sprintf("%q", m.Text)})
		}
	}
	errTbl.Render()
}
