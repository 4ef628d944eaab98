package pkg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileSpill(t *testing.T) {
	t.Run("NewFileSpill", func(t *testing.T) {
		spill, err := NewFileSpill[int]()
		require.NoError(t, err)
		require.NotNil(t, spill)
		require.Contains(t, spill.Path(), "spm-spill")
		defer spill.Close()
	})

	t.Run("Append and Get", func(t *testing.T) {
		spill, err := NewFileSpill[string]()
		require.NoError(t, err)
		defer spill.Close()

		require.NoError(t, spill.Append("first"))
		require.NoError(t, spill.Append("second"))

		val, err := spill.Get(0)
		require.NoError(t, err)
		require.Equal(t, "first", val)

		val, err = spill.Get(1)
		require.NoError(t, err)
		require.Equal(t, "second", val)

		val, err = spill.Get(2)
		require.Error(t, err)
		require.Equal(t, "", val)
	})

	t.Run("Len tracks appended count", func(t *testing.T) {
		spill, err := NewFileSpill[int]()
		require.NoError(t, err)
		defer spill.Close()

		require.Equal(t, uint64(0), spill.Len())

		require.NoError(t, spill.Append(1))
		require.NoError(t, spill.Append(2))
		require.Equal(t, uint64(2), spill.Len())
	})

	t.Run("Range replays items in append order", func(t *testing.T) {
		type report struct {
			File string
			Line int
		}

		spill, err := NewFileSpill[report]()
		require.NoError(t, err)
		defer spill.Close()

		expected := []report{
			{File: "1.json", Line: 3},
			{File: "2.json", Line: 7},
			{File: "3.json", Line: 1},
		}
		for _, r := range expected {
			require.NoError(t, spill.Append(r))
		}

		var collected []report
		err = spill.Range(func(_ uint64, item report) error {
			collected = append(collected, item)
			return nil
		})

		require.NoError(t, err)
		require.Equal(t, expected, collected)
	})

	t.Run("Range callback error stops iteration", func(t *testing.T) {
		spill, err := NewFileSpill[int]()
		require.NoError(t, err)
		defer spill.Close()

		for i := range 3 {
			require.NoError(t, spill.Append(i))
		}

		count := 0
		rangeErr := spill.Range(func(index uint64, _ int) error {
			count++
			if index == 1 {
				return errors.New("stop at index 1")
			}
			return nil
		})

		require.Error(t, rangeErr)
		require.Equal(t, 2, count)
	})

	t.Run("Close keeps data readable", func(t *testing.T) {
		spill, err := NewFileSpill[int]()
		require.NoError(t, err)

		require.NoError(t, spill.Append(42))
		require.NoError(t, spill.Close())

		val, err := spill.Get(0)
		require.NoError(t, err)
		require.Equal(t, 42, val)
	})
}

func BenchmarkFileSpillAppend(b *testing.B) {
	spill, err := NewFileSpill[int]()
	if err != nil {
		b.Fatalf("failed to create filespill: %v", err)
	}
	defer spill.Close()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = spill.Append(i)
	}
}
