package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/upsun/wordprep"
)

func initCmd(opts *globalOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write an example wordprep.yaml configuration file",
		Args:  cobra.RangeArgs(0, 1),
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveFilterDirs
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(afero.NewOsFs(), dir, force, stderrFor(cmd, opts))
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration file.")
	return cmd
}

func runInit(fsys afero.Fs, dir string, force bool, stderr io.Writer) error {
	path := filepath.Join(dir, "wordprep.yaml")
	exists, err := afero.Exists(fsys, path)
	if err != nil {
		return err
	}
	if exists && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := afero.WriteFile(fsys, path, wordprep.ExampleConfig, 0o644); err != nil {
		return err
	}
	noter(stderr)("Wrote configuration to %s", path)
	return nil
}
