package main

import (
	"fmt"
	"os"

	"github.com/upsun/wordprep/pkg/config"
)

func main() {
	dir := "."
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	fsys := os.DirFS(dir)

	name, err := config.Find(fsys)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}
	if name == "" {
		fmt.Fprintf(os.Stderr, "No configuration file found in %s directory\n", dir)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Validating configuration file %s in %s directory...\n", name, dir)

	if _, _, err := config.Resolve(fsys, name); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintln(os.Stderr, "The configuration is valid.")
}
