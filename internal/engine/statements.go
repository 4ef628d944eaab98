package engine

import (
	"go/ast"
	"sort"
)

// statementLines returns the distinct 1-based line numbers where the parser
// recognized the start of any construct (statement, expression or
// declaration), sorted ascending and clamped to the original line range.
// An empty result is a valid no-op insertion set, not an error.
func statementLines(tree *parseTree, lineCount int) []int {
	seen := make(map[int]struct{})

	ast.Inspect(tree.file, func(n ast.Node) bool {
		if n == nil {
			return true
		}

		line := tree.lineFor(n.Pos())
		if line >= 1 && line <= lineCount {
			seen[line] = struct{}{}
		}

		return true
	})

	lines := make([]int, 0, len(seen))
	for line := range seen {
		lines = append(lines, line)
	}

	sort.Ints(lines)

	return lines
}
