// Package engine implements the superficial mutation operators: comment
// insertion, identifier renaming and dead-code insertion. Every mutator is a
// pure function from (code, defect line, supply) to a Result; randomness is
// injected through an explicit *rand.Rand so callers control reproducibility.
package engine

import (
	"errors"
	"strings"
)

// Result is the sole output type of every mutator: the rewritten code and the
// defect pointer tracking the labeled line through the rewrite. It is also
// the input when mutators are chained.
type Result struct {
	Code string
	Line int
}

// ErrInsufficientSupply is returned by InsertComments when the requested
// insert count exceeds the supplied comments. It is fatal to that mutation
// branch only; sibling branches proceed.
var ErrInsufficientSupply = errors.New("requested insert count exceeds available supply")

// splitLines splits code into lines without terminators. A trailing newline
// does not open a final empty line.
func splitLines(code string) []string {
	if code == "" {
		return nil
	}

	lines := strings.Split(code, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// splitLinesKeepEnds splits code into lines, each keeping its terminator.
func splitLinesKeepEnds(code string) []string {
	if code == "" {
		return nil
	}

	lines := strings.SplitAfter(code, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// leadingWhitespace returns the run of spaces and tabs at the start of line.
func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
