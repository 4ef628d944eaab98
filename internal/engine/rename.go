package engine

import (
	"fmt"
	"go/ast"
	"go/scanner"
	"go/token"
	"log/slog"
	"strings"
)

// RenameIdentifiers renames up to count write-bound identifiers using the
// supplied replacement names, paired positionally in first-discovery order.
// The rewrite is a token-level global substitution keyed purely on spelling:
// every IDENT token with a mapped name is replaced, in any lexical context,
// including selector and field positions. This scope-unaware behavior is
// deliberate and must not be tightened. Line count and defect pointer never
// change; parse or tokenize failures pass the input through unchanged.
func RenameIdentifiers(code string, defectLine, count int, names []string) Result {
	unchanged := Result{Code: code, Line: defectLine}
	if count <= 0 || len(names) == 0 {
		return unchanged
	}

	tree, err := parseUnit(code)
	if err != nil {
		slog.Debug("rename skipped, sample not parseable", "error", err)
		return unchanged
	}

	collected := writeBoundNames(tree)

	limit := min(count, len(collected), len(names))
	if limit <= 0 {
		return unchanged
	}

	renames := make(map[string]string, limit)
	for i := 0; i < limit; i++ {
		renames[collected[i]] = names[i]
	}

	rewritten, err := rewriteIdents(code, renames)
	if err != nil {
		slog.Debug("rename skipped, token stream not reconstructable", "error", err)
		return unchanged
	}

	return Result{Code: rewritten, Line: defectLine}
}

// writeBoundNames collects the distinct identifier names bound in a write
// context (assignment targets, range variables, var/const names, inc/dec
// targets), in the order the traversal first discovers them. The blank
// identifier is never a rename candidate.
func writeBoundNames(tree *parseTree) []string {
	var names []string

	seen := make(map[string]struct{})

	add := func(ident *ast.Ident) {
		if ident == nil || ident.Name == "_" {
			return
		}

		if _, ok := seen[ident.Name]; ok {
			return
		}

		seen[ident.Name] = struct{}{}
		names = append(names, ident.Name)
	}

	ast.Inspect(tree.file, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.AssignStmt:
			for _, lhs := range node.Lhs {
				if ident, ok := lhs.(*ast.Ident); ok {
					add(ident)
				}
			}

		case *ast.RangeStmt:
			if ident, ok := node.Key.(*ast.Ident); ok {
				add(ident)
			}

			if ident, ok := node.Value.(*ast.Ident); ok {
				add(ident)
			}

		case *ast.ValueSpec:
			for _, ident := range node.Names {
				add(ident)
			}

		case *ast.IncDecStmt:
			if ident, ok := node.X.(*ast.Ident); ok {
				add(ident)
			}
		}

		return true
	})

	return names
}

// rewriteIdents re-lexes code and splices replacements over every IDENT
// token whose spelling is mapped. Scanner errors abort the rewrite.
func rewriteIdents(code string, renames map[string]string) (string, error) {
	fset := token.NewFileSet()
	file := fset.AddFile("sample.go", fset.Base(), len(code))

	var scanErr error

	var s scanner.Scanner

	s.Init(file, []byte(code), func(pos token.Position, msg string) {
		if scanErr == nil {
			scanErr = fmt.Errorf("tokenize failed at %s: %s", pos, msg)
		}
	}, scanner.ScanComments)

	type edit struct {
		start int
		end   int
		text  string
	}

	var edits []edit

	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}

		if tok != token.IDENT {
			continue
		}

		replacement, ok := renames[lit]
		if !ok {
			continue
		}

		start := file.Offset(pos)
		edits = append(edits, edit{start: start, end: start + len(lit), text: replacement})
	}

	if scanErr != nil {
		return "", scanErr
	}

	var b strings.Builder

	last := 0
	for _, e := range edits {
		b.WriteString(code[last:e.start])
		b.WriteString(e.text)
		last = e.end
	}

	b.WriteString(code[last:])

	return b.String(), nil
}
