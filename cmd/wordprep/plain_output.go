package main

import (
	"fmt"
	"io"

	"github.com/upsun/wordprep/pkg/wordpair"
)

// outputPairsPlain outputs pairs in plain tab-separated format
func outputPairsPlain(pairs []wordpair.Pair, stdout io.Writer) {
	fmt.Fprintln(stdout, "Line\tSource\tTarget")
	for _, p := range pairs {
		fmt.Fprintf(stdout, "%d\t%s\t%s\n", p.Line, p.Source, p.Target)
	}
}

// outputCheckPlain outputs one row per file followed by one row per malformed line
func outputCheckPlain(results []checkResult, stdout io.Writer) {
	fmt.Fprintln(stdout, "File\tPairs\tMalformed")
	for _, r := range results {
		fmt.Fprintf(stdout, "%s\t%d\t%d\n", r.Path, r.Pairs, len(r.Malformed))
	}
	for _, r := range results {
		for _, m := range r.Malformed {
			fmt.Fprintf(stdout, "%s:%d\t%d\t%q\n", r.Path, m.Line, m.Fields, m.Text)
		}
	}
}
