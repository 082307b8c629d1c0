package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/upsun/wordprep/pkg/config"
	"github.com/upsun/wordprep/pkg/convert"
	"github.com/upsun/wordprep/pkg/wordpair"
)

const (
	exitError     = 1
	exitMalformed = 2
)

type globalOptions struct {
	configPath string
	quiet      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		stop()
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, wordpair.ErrMalformedRecord) {
		return exitMalformed
	}
	return exitError
}

func rootCmd() *cobra.Command {
	var opts globalOptions
	cmd := &cobra.Command{
		Use:   "wordprep",
		Short: "Convert a word list into an array literal declaration",
		Long: "Reads a word list with one source~target pair per line and writes\n" +
			"an array literal declaration (var words = [...];) to the output file.\n\n" +
			"Without a subcommand, converts using the configuration file in the\n" +
			"current directory, or words.txt to words_prep.txt by default.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cnf, err := loadConfig(&opts, stderrFor(cmd, &opts))
			if err != nil {
				return err
			}
			return runConvert(cmd.Context(), cnf, stderrFor(cmd, &opts))
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"Path to a configuration file (default: wordprep.{yaml,yml,toml,json,jsonc} in the current directory)")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress progress notes")

	cmd.AddCommand(convertCmd(&opts), checkCmd(&opts), showCmd(&opts), initCmd(&opts))
	return cmd
}

// loadConfig resolves the effective configuration from the --config flag or the current directory.
func loadConfig(opts *globalOptions, stderr io.Writer) (*convert.Config, error) {
	dir, base := ".", ""
	if opts.configPath != "" {
		var err error
		if dir, base, err = splitPath(opts.configPath); err != nil {
			return nil, err
		}
	}
	cnf, name, err := config.Resolve(os.DirFS(dir), base)
	if err != nil {
		return nil, err
	}
	if opts.configPath != "" {
		name = opts.configPath
	}
	if name != "" {
		noter(stderr)("Using configuration from %s", name)
	}
	return cnf, nil
}

// splitPath returns the absolute directory of path and its base name, for use with os.DirFS.
func splitPath(path string) (string, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", err
	}
	return filepath.Dir(abs), filepath.Base(abs), nil
}

func stderrFor(cmd *cobra.Command, opts *globalOptions) io.Writer {
	if opts.quiet {
		return io.Discard
	}
	return cmd.ErrOrStderr()
}

func noter(w io.Writer) func(format string, args ...any) {
	return func(format string, args ...any) {
		fmt.Fprintln(w, color.New(color.Faint).Sprintf(format, args...))
	}
}
