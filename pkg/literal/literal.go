// Package literal renders word pairs as an array-literal declaration, e.g.:
//
//	var words = [
//	    ["cat", "macska"],
//	];
package literal

import (
	"bufio"
	"io"
	"strings"

	"github.com/upsun/wordprep/pkg/wordpair"
)

const (
	Prologue = "var words = [\n"
	Epilogue = "];"
)

type Options struct {
	// Escape backslashes, double quotes, tabs and carriage returns inside words.
	// When false, words are written verbatim.
	Escape bool
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\t", `\t`,
	"\r", `\r`,
)

// Render writes the declaration for pairs to w.
func Render(w io.Writer, pairs []wordpair.Pair, opts Options) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Prologue); err != nil {
		return err
	}
	for _, p := range pairs {
		src, tgt := p.Source, p.Target
		if opts.Escape {
			src, tgt = escaper.Replace(src), escaper.Replace(tgt)
		}
		if _, err := bw.WriteString(`    ["` + src + `", "` + tgt + `"],` + "\n"); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString(Epilogue); err != nil {
		return err
	}
	return bw.Flush()
}

// RenderString returns the declaration for pairs.
func RenderString(pairs []wordpair.Pair, opts Options) string {
	var sb strings.Builder
	_ = Render(&sb, pairs, opts) // strings.Builder does not return write errors.
	return sb.String()
}
