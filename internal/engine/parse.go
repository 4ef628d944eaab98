package engine

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

// parseTree is a successfully parsed sample. Samples are short snippets, so
// the retry normalization may have wrapped the text into a complete
// compilation unit; header records how many synthetic lines were prepended
// so tree positions can be mapped back onto the original text.
type parseTree struct {
	fset   *token.FileSet
	file   *ast.File
	header int
}

// parseUnit parses sample text into a structural tree. On the first failure
// it applies a single snippet normalization and retries once; a second
// failure is reported to the caller, which must treat the sample as opaque
// text and pass it through unmodified.
func parseUnit(code string) (*parseTree, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, "sample.go", code, parser.ParseComments)
	if err == nil {
		return &parseTree{fset: fset, file: file}, nil
	}

	wrapped, header := normalizeSnippet(code)

	fset = token.NewFileSet()

	file, retryErr := parser.ParseFile(fset, "sample.go", wrapped, parser.ParseComments)
	if retryErr != nil {
		return nil, fmt.Errorf("parse failed after snippet normalization: %w", retryErr)
	}

	return &parseTree{fset: fset, file: file, header: header}, nil
}

// normalizeSnippet rewraps snippet text into a parseable compilation unit.
// Declaration-shaped snippets get a package clause; bare statement lists are
// additionally wrapped in a throwaway function body. Returns the wrapped
// text and the number of synthetic lines prepended.
func normalizeSnippet(code string) (string, int) {
	trimmed := strings.TrimLeft(code, " \t\n")

	if strings.HasPrefix(trimmed, "package") {
		// Already a full file; nothing a wrapper can fix.
		return code, 0
	}

	for _, kw := range []string{"func", "import", "type", "const", "var"} {
		if strings.HasPrefix(trimmed, kw) {
			return "package sample\n\n" + code, 2
		}
	}

	return "package sample\n\nfunc _() {\n" + code + "\n}", 3
}

// lineFor maps a token position back onto the original sample text,
// compensating for synthetic header lines. Returns 0 for positions inside
// the wrapper itself.
func (t *parseTree) lineFor(pos token.Pos) int {
	line := t.fset.Position(pos).Line - t.header
	if line < 1 {
		return 0
	}

	return line
}
