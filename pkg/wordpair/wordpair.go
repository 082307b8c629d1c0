// Package wordpair parses word lists with one "source~target" pair per line.
package wordpair

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Separator divides the source word from the target word on a line.
const Separator = "~"

// ErrMalformedRecord is matched by every error describing a line that does not split into two fields.
var ErrMalformedRecord = errors.New("malformed record")

// Pair is a source-language word and its translation.
type Pair struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Line   int    `json:"line"` // 1-based line number in the input.
}

// MalformedLineError describes a line that does not contain exactly one separator.
type MalformedLineError struct {
	Line   int
	Text   string
	Fields int
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("line %d: expected 2 fields separated by %q, found %d: %q", e.Line, Separator, e.Fields, e.Text)
}

func (e *MalformedLineError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// TrailingLinePolicy decides what happens to the empty line after a final line break.
type TrailingLinePolicy string

const (
	// TrailingLineSkip drops the empty line after a final line break.
	TrailingLineSkip TrailingLinePolicy = "skip"
	// TrailingLineMalformed reports it like any other line without a separator.
	TrailingLineMalformed TrailingLinePolicy = "malformed"
)

// Valid reports whether p is a known policy.
func (p TrailingLinePolicy) Valid() bool {
	return p == TrailingLineSkip || p == TrailingLineMalformed
}

// ParseOptions controls how a word list is split into pairs.
type ParseOptions struct {
	TrailingLine TrailingLinePolicy // Defaults to TrailingLineSkip.
	FailFast     bool               // Stop at the first malformed line.
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// ParseLine splits a single line into a Pair.
// The returned Pair has no line number; callers that know it should set it.
func ParseLine(line string) (Pair, error) {
	fields := strings.Split(line, Separator)
	if len(fields) != 2 {
		return Pair{}, &MalformedLineError{Text: line, Fields: len(fields)}
	}
	return Pair{Source: fields[0], Target: fields[1]}, nil
}

// Scan parses every line of content, returning the valid pairs and every malformed line.
// Line breaks may be "\n", "\r\n" or a lone "\r".
func Scan(content string, opts ParseOptions) ([]Pair, []*MalformedLineError) {
	lines := strings.Split(newlines.Replace(content), "\n")
	if opts.TrailingLine != TrailingLineMalformed && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var (
		pairs = make([]Pair, 0, len(lines))
		errs  []*MalformedLineError
	)
	for i, line := range lines {
		p, err := ParseLine(line)
		if err != nil {
			var mle *MalformedLineError
			if errors.As(err, &mle) {
				mle.Line = i + 1
				errs = append(errs, mle)
			}
			if opts.FailFast {
				return pairs, errs
			}
			continue
		}
		p.Line = i + 1
		pairs = append(pairs, p)
	}
	return pairs, errs
}

// Parse parses content into pairs in line order.
// If any line is malformed, no pairs are returned and the error wraps every
// malformed line found (only the first one with FailFast).
func Parse(content string, opts ParseOptions) ([]Pair, error) {
	pairs, errs := Scan(content, opts)
	if len(errs) == 0 {
		return pairs, nil
	}
	joined := make([]error, len(errs))
	for i, e := range errs {
		joined[i] = e
	}
	return nil, errors.Join(joined...)
}

// ReadFile reads and parses a whole file from fsys.
func ReadFile(fsys fs.FS, name string, opts ParseOptions) ([]Pair, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	pairs, err := Parse(string(b), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return pairs, nil
}
