// Package model defines the data structures for superficial program mutation.
package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Path represents a file system path.
type Path string

// Sample is one labeled program: a short buggy snippet plus the line the
// defect was injected on. LineNoPercent is recomputed after every mutation;
// the stored input value is ignored.
type Sample struct {
	Instruction   string `json:"instruction"`
	BuggyCode     string `json:"buggy_code"`
	LineNo        int    `json:"line_no"`
	LineNoPercent string `json:"line_no_percent"`
}

// LineCount returns the number of lines in the sample's code.
func (s Sample) LineCount() int {
	return CountLines(s.BuggyCode)
}

// RecomputePercent refreshes LineNoPercent from the current LineNo and code.
func (s *Sample) RecomputePercent() {
	s.LineNoPercent = FormatPercent(s.LineNo, s.LineCount())
}

// FormatPercent renders a defect position as a rounded integer percentage,
// e.g. line 3 of 4 -> "75%".
func FormatPercent(line, totalLines int) string {
	if totalLines <= 0 {
		return "0%"
	}

	return fmt.Sprintf("%d%%", int(math.Round(float64(line)/float64(totalLines)*100)))
}

// ParsePercent reads a "NN%" string back into a float.
func ParsePercent(percent string) (float64, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(percent), "%")

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid percent %q: %w", percent, err)
	}

	return value, nil
}

// CountLines counts lines the way Python's splitlines does: a trailing
// newline does not open a final empty line.
func CountLines(code string) int {
	if code == "" {
		return 0
	}

	n := strings.Count(code, "\n")
	if !strings.HasSuffix(code, "\n") {
		n++
	}

	return n
}
