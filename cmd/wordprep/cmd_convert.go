package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/upsun/wordprep/pkg/convert"
	"github.com/upsun/wordprep/pkg/wordpair"
)

func convertCmd(opts *globalOptions) *cobra.Command {
	var (
		escape         bool
		strictTrailing bool
		failFast       bool
	)
	cmd := &cobra.Command{
		Use:           "convert [input [output]]",
		Short:         "Convert a word list into an array literal declaration",
		Args:          cobra.RangeArgs(0, 2),
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
			if len(args) > 1 {
				cnf.OutputPath = args[1]
			}
			if cmd.Flags().Changed("escape") {
				cnf.Escape = escape
			}
			if cmd.Flags().Changed("strict-trailing") {
				cnf.TrailingLine = wordpair.TrailingLineSkip
				if strictTrailing {
					cnf.TrailingLine = wordpair.TrailingLineMalformed
				}
			}
			if cmd.Flags().Changed("fail-fast") {
				cnf.FailFast = failFast
			}
			return runConvert(cmd.Context(), cnf, stderrFor(cmd, opts))
		},
	}
	cmd.Flags().BoolVar(&escape, "escape", false,
		"Escape quotes, backslashes, tabs and carriage returns inside words.")
	cmd.Flags().BoolVar(&strictTrailing, "strict-trailing", false,
		"Report the empty line after a final line break as malformed.")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false,
		"Stop at the first malformed line.")

	return cmd
}

func runConvert(ctx context.Context, cnf *convert.Config, stderr io.Writer) error {
	inDir, inName, err := splitPath(cnf.InputPath)
	if err != nil {
		return err
	}
	local := *cnf
	local.InputPath = inName

	converter, err := convert.New(os.DirFS(inDir), afero.NewOsFs(), &local)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := converter.Convert(ctx)
	if err != nil {
		return err
	}

	note := noter(stderr)
	note("Wrote %d pairs from %s to %s in %s", res.Pairs, cnf.InputPath, res.OutputPath, time.Since(start))
	return nil
}
