package engine

import (
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"sort"
	"strings"
)

// InsertComments inserts up to count supplied comment lines at statement
// boundaries chosen uniformly at random. The shuffle selects which lines
// receive a comment; re-sorting fixes the order insertions are applied in.
// Every insertion at or before the defect line shifts the pointer forward by
// one. Requesting more comments than the supply holds is a fatal
// precondition violation for this branch; an unparseable sample is passed
// through unchanged.
func InsertComments(rng *rand.Rand, code string, defectLine, count int, comments []string) (Result, error) {
	if count > len(comments) {
		return Result{}, fmt.Errorf("%w: %d comments requested, %d supplied", ErrInsufficientSupply, count, len(comments))
	}

	unchanged := Result{Code: code, Line: defectLine}
	if count <= 0 {
		return unchanged, nil
	}

	tree, err := parseUnit(code)
	if err != nil {
		slog.Debug("comment insertion skipped, sample not parseable", "error", err)
		return unchanged, nil
	}

	lines := statementLines(tree, len(splitLines(code)))
	if len(lines) == 0 {
		return unchanged, nil
	}

	rng.Shuffle(len(lines), func(i, j int) {
		lines[i], lines[j] = lines[j], lines[i]
	})

	picks := lines[:min(count, len(lines))]
	sort.Ints(picks)

	updated := splitLines(code)
	newLine := defectLine

	for i, pos := range picks {
		updated = slices.Insert(updated, pos-1, comments[i])

		// Inclusive boundary: an insertion on the defect line itself still
		// pushes the pointer down.
		if pos <= defectLine {
			newLine++
		}
	}

	return Result{Code: strings.Join(updated, "\n") + "\n", Line: newLine}, nil
}
