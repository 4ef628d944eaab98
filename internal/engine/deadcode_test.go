package engine

import (
	"math/rand"
	"strings"
	"testing"
)

func TestInsertAt(t *testing.T) {
	code := "a := 1\nb := a + 1\nc := b\n"

	t.Run("offset at or before pointer minus one shifts the pointer", func(t *testing.T) {
		got := insertAt(splitLinesKeepEnds(code), 3, []insertion{{offset: 1, snippet: "z := 0"}})

		if lines := len(splitLinesKeepEnds(got.Code)); lines != 4 {
			t.Errorf("expected 4 output lines, got %d", lines)
		}

		if got.Line != 4 {
			t.Errorf("pointer = %d, want 4", got.Line)
		}

		want := "a := 1\nz := 0\nb := a + 1\nc := b\n"
		if got.Code != want {
			t.Errorf("code = %q, want %q", got.Code, want)
		}
	})

	t.Run("offset past the boundary leaves the pointer alone", func(t *testing.T) {
		got := insertAt(splitLinesKeepEnds(code), 3, []insertion{{offset: 3, snippet: "z := 0"}})

		if lines := len(splitLinesKeepEnds(got.Code)); lines != 4 {
			t.Errorf("expected 4 output lines, got %d", lines)
		}

		if got.Line != 3 {
			t.Errorf("pointer = %d, want 3 (unshifted)", got.Line)
		}
	})

	t.Run("exclusive boundary differs from the comment rule", func(t *testing.T) {
		// Offset 2 == pointer-1 shifts; offset 3 == pointer does not. The
		// comment injector would shift on both.
		shifted := insertAt(splitLinesKeepEnds(code), 3, []insertion{{offset: 2, snippet: "z := 0"}})
		if shifted.Line != 4 {
			t.Errorf("offset 2: pointer = %d, want 4", shifted.Line)
		}

		unshifted := insertAt(splitLinesKeepEnds(code), 3, []insertion{{offset: 3, snippet: "z := 0"}})
		if unshifted.Line != 3 {
			t.Errorf("offset 3: pointer = %d, want 3", unshifted.Line)
		}
	})

	t.Run("snippet adopts the insertion point indentation", func(t *testing.T) {
		nested := "func f(x bool) {\n\tif x {\n\t\ty := 1\n\t\t_ = y\n\t}\n}\n"

		got := insertAt(splitLinesKeepEnds(nested), 1, []insertion{{offset: 2, snippet: "z := 0\nw := z"}})

		if !strings.Contains(got.Code, "\t\tz := 0\n\t\tw := z\n\t\ty := 1\n") {
			t.Errorf("snippet not re-indented to context:\n%s", got.Code)
		}
	})

	t.Run("end-of-file insertion falls back to preceding indentation", func(t *testing.T) {
		indented := "\tx := 1\n"

		got := insertAt(splitLinesKeepEnds(indented), 1, []insertion{{offset: 1, snippet: "z := 0"}})

		want := "\tx := 1\n\tz := 0\n"
		if got.Code != want {
			t.Errorf("code = %q, want %q", got.Code, want)
		}
	})

	t.Run("blank lines in a snippet are dropped but dedent is shared", func(t *testing.T) {
		got := insertAt(splitLinesKeepEnds(code), 3, []insertion{{offset: 0, snippet: "    z := 0\n\n    w := 1"}})

		if !strings.HasPrefix(got.Code, "z := 0\nw := 1\na := 1\n") {
			t.Errorf("unexpected prefix: %q", got.Code)
		}

		// Two non-blank lines inserted before the pointer.
		if got.Line != 5 {
			t.Errorf("pointer = %d, want 5", got.Line)
		}
	})
}

func TestInsertDeadCode(t *testing.T) {
	code := "func f(x int) int {\n\ty := x + 1\n\treturn y\n}\n"
	snippets := []string{"z := 0", "w := 1\n_ = w", "v := 2"}

	t.Run("zero count is a no-op", func(t *testing.T) {
		got := InsertDeadCode(rand.New(rand.NewSource(1)), code, 3, 0, snippets)
		if got.Code != code || got.Line != 3 {
			t.Errorf("expected pass-through, got %+v", got)
		}
	})

	t.Run("empty supply is a no-op", func(t *testing.T) {
		got := InsertDeadCode(rand.New(rand.NewSource(1)), code, 3, 2, nil)
		if got.Code != code || got.Line != 3 {
			t.Errorf("expected pass-through, got %+v", got)
		}
	})

	t.Run("line count grows by the inserted delta and pointer stays in range", func(t *testing.T) {
		for seed := int64(0); seed < 25; seed++ {
			got := InsertDeadCode(rand.New(rand.NewSource(seed)), code, 3, 2, snippets)

			inLines := len(splitLinesKeepEnds(code))
			outLines := len(splitLinesKeepEnds(got.Code))

			if outLines <= inLines {
				t.Errorf("seed %d: expected growth, %d -> %d", seed, inLines, outLines)
			}

			if got.Line < 1 || got.Line > outLines {
				t.Errorf("seed %d: pointer %d outside 1..%d", seed, got.Line, outLines)
			}
		}
	})

	t.Run("count clamps to supply and line total", func(t *testing.T) {
		short := "x := 1\n"

		got := InsertDeadCode(rand.New(rand.NewSource(7)), short, 1, 10, snippets)

		// At most one snippet fits a one-line sample.
		outLines := len(splitLinesKeepEnds(got.Code))
		if outLines > 3 {
			t.Errorf("expected at most one snippet inserted, got %d lines", outLines)
		}
	})
}
