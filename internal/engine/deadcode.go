package engine

import (
	"math/rand"
	"sort"
	"strings"
)

// insertion pairs a dead-code snippet with the raw line offset it is
// inserted at. Offsets count line boundaries: 0 is before the first line,
// total_lines is after the last.
type insertion struct {
	offset  int
	snippet string
}

// InsertDeadCode inserts up to count dead-code snippets at line offsets
// chosen uniformly without replacement from [0, total_lines]. Offsets are
// raw line-insertion points, not statement boundaries. The defect pointer
// shifts by the non-blank line count of every snippet whose offset is at or
// before defectLine-1 — an exclusive boundary, one off from the comment
// injector's rule; the asymmetry is intentional and observable downstream.
func InsertDeadCode(rng *rand.Rand, code string, defectLine, count int, snippets []string) Result {
	lines := splitLinesKeepEnds(code)
	total := len(lines)

	limit := min(count, len(snippets), total)
	if limit <= 0 {
		return Result{Code: code, Line: defectLine}
	}

	chosen := make([]string, limit)
	for i, idx := range rng.Perm(len(snippets))[:limit] {
		chosen[i] = snippets[idx]
	}

	offsets := rng.Perm(total + 1)[:limit]
	sort.Ints(offsets)

	inserts := make([]insertion, limit)
	for i := range chosen {
		inserts[i] = insertion{offset: offsets[i], snippet: chosen[i]}
	}

	return insertAt(lines, defectLine, inserts)
}

// insertAt applies all insertions in a single pass over the original line
// sequence, preserving line order between insertion points.
func insertAt(lines []string, defectLine int, inserts []insertion) Result {
	sort.SliceStable(inserts, func(i, j int) bool {
		return inserts[i].offset < inserts[j].offset
	})

	shift := 0
	for _, ins := range inserts {
		if ins.offset <= defectLine-1 {
			shift += nonBlankCount(ins.snippet)
		}
	}

	var out []string

	cur := 0
	for _, ins := range inserts {
		for cur < ins.offset {
			out = append(out, lines[cur])
			cur++
		}

		out = append(out, indentSnippet(ins.snippet, baseIndent(lines, ins.offset))...)
	}

	for cur < len(lines) {
		out = append(out, lines[cur])
		cur++
	}

	return Result{Code: strings.Join(out, ""), Line: defectLine + shift}
}

// baseIndent determines the indentation to re-indent a snippet with: the
// target line's own indentation, or the nearest preceding non-blank line's
// when inserting at end-of-file or at a blank line, or empty if none exists.
func baseIndent(lines []string, pos int) string {
	if pos < len(lines) && !isBlank(lines[pos]) {
		return leadingWhitespace(lines[pos])
	}

	start := pos - 1
	if start >= len(lines) {
		start = len(lines) - 1
	}

	for i := start; i >= 0; i-- {
		if !isBlank(lines[i]) {
			return leadingWhitespace(lines[i])
		}
	}

	return ""
}

// indentSnippet dedents a snippet to zero base indentation, drops blank
// lines and prefixes every remaining line with base.
func indentSnippet(snippet, base string) []string {
	var out []string

	for _, line := range splitLines(dedent(snippet)) {
		if isBlank(line) {
			continue
		}

		out = append(out, base+line+"\n")
	}

	return out
}

// nonBlankCount is the inserted line delta of a snippet.
func nonBlankCount(snippet string) int {
	n := 0

	for _, line := range splitLines(snippet) {
		if !isBlank(line) {
			n++
		}
	}

	return n
}

// dedent strips the longest common leading whitespace of the non-blank
// lines from every line.
func dedent(snippet string) string {
	lines := strings.Split(snippet, "\n")

	margin := ""
	found := false

	for _, line := range lines {
		if isBlank(line) {
			continue
		}

		indent := leadingWhitespace(line)
		if !found {
			margin = indent
			found = true

			continue
		}

		limit := min(len(margin), len(indent))

		i := 0
		for i < limit && margin[i] == indent[i] {
			i++
		}

		margin = margin[:i]
	}

	if margin == "" {
		return snippet
	}

	for i, line := range lines {
		if !isBlank(line) {
			lines[i] = strings.TrimPrefix(line, margin)
		}
	}

	return strings.Join(lines, "\n")
}
