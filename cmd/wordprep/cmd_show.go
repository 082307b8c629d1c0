package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/IGLOU-EU/go-wildcard/v2"
	"github.com/itchyny/gojq"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/upsun/wordprep/pkg/convert"
	"github.com/upsun/wordprep/pkg/wordpair"
)

type showOptions struct {
	plain  bool
	asJSON bool
	match  []string
	query  string
}

func showCmd(opts *globalOptions) *cobra.Command {
	var so showOptions
	cmd := &cobra.Command{
		Use:           "show [file]",
		Short:         "Print the pairs of a word list",
		Args:          cobra.RangeArgs(0, 1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cnf, err := loadConfig(opts, stderrFor(cmd, opts))
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cnf.InputPath = args[0]
			}
			return runShow(cmd.Context(), cnf, so, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&so.plain, "plain", false,
		"Output plain tab-separated values with header row.")
	cmd.Flags().BoolVar(&so.asJSON, "json", false, "Print output in JSON format.")
	cmd.Flags().StringSliceVar(&so.match, "match", []string{},
		"Only show pairs whose source word matches one of the wildcard pattern(s).")
	cmd.Flags().StringVar(&so.query, "query", "",
		"A jq expression to apply to the JSON array of pairs.")
	cmd.MarkFlagsMutuallyExclusive("plain", "json", "query")

	return cmd
}

func runShow(ctx context.Context, cnf *convert.Config, so showOptions, stdout io.Writer) error {
	dir, name, err := splitPath(cnf.InputPath)
	if err != nil {
		return err
	}
	pairs, err := wordpair.ReadFile(os.DirFS(dir), name, wordpair.ParseOptions{
		TrailingLine: cnf.TrailingLine,
		FailFast:     cnf.FailFast,
	})
	if err != nil {
		return err
	}
	pairs = filterPairs(pairs, so.match)

	switch {
	case so.query != "":
		return queryPairs(ctx, pairs, so.query, stdout)
	case so.asJSON:
		if pairs == nil {
			pairs = []wordpair.Pair{}
		}
		return json.NewEncoder(stdout).Encode(pairs)
	case so.plain:
		outputPairsPlain(pairs, stdout)
		return nil
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(stdout)
	tbl.SetAllowedRowLength(getTerminalWidth())
	tbl.AppendHeader(table.Row{"Line", "Source", "Target"})
	for _, p := range pairs {
		tbl.AppendRow(table.Row{p.Line, p.Source, p.Target})
	}
	tbl.Render()
	return nil
}

func filterPairs(pairs []wordpair.Pair, patterns []string) []wordpair.Pair {
	if len(patterns) == 0 {
		return pairs
	}
	var filtered []wordpair.Pair
	for _, p := range pairs {
		for _, pattern := range patterns {
			if wildcard.Match(strings.TrimSpace(pattern), p.Source) {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered
}

// queryPairs runs a jq expression over the pairs, printing strings raw and other values as JSON.
func queryPairs(ctx context.Context, pairs []wordpair.Pair, expr string, stdout io.Writer) error {
	query, err := gojq.Parse(expr)
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}

	input := make([]any, 0, len(pairs))
	for _, p := range pairs {
		input = append(input, map[string]any{
			"source": p.Source,
			"target": p.Target,
			"line":   p.Line,
		})
	}

	iter := query.RunWithContext(ctx, input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			var he *gojq.HaltError
			if errors.As(err, &he) && he.Value() == nil {
				break
			}
			return err
		}
		if s, ok := v.(string); ok {
			fmt.Fprintln(stdout, s)
			continue
		}
		b, err := gojq.Marshal(v)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(b))
	}
	return nil
}
