package cmd

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	m "github.com/sabaat/LLM-FL-Artifacts/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <original> <mutated>",
		Short: "Show the code diff between an original and a mutated sample",
		Long: `Render a unified diff of the buggy code of two sample records and report
how the defect line pointer moved between them.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, err := store.ReadSample(m.Path(args[0]))
			if err != nil {
				return err
			}

			mutated, err := store.ReadSample(m.Path(args[1]))
			if err != nil {
				return err
			}

			diff := difflib.UnifiedDiff{
				A:        difflib.SplitLines(original.BuggyCode),
				B:        difflib.SplitLines(mutated.BuggyCode),
				FromFile: args[0],
				ToFile:   args[1],
				Context:  3,
			}

			text, err := difflib.GetUnifiedDiffString(diff)
			if err != nil {
				return fmt.Errorf("render diff: %w", err)
			}

			if text == "" {
				cmd.Println("no code changes")
			} else {
				cmd.Print(text)
			}

			cmd.Printf("defect line: %d (%s) -> %d (%s)\n",
				original.LineNo, original.LineNoPercent,
				mutated.LineNo, mutated.LineNoPercent)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
