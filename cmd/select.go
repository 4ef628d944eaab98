package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sabaat/LLM-FL-Artifacts/internal/domain"
	m "github.com/sabaat/LLM-FL-Artifacts/internal/model"
)

var selectCountFlag int

// selectCmd represents the select command.
var selectCmd = newSelectCmd()

func newSelectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select <source> <destination>",
		Short: "Copy the first N samples of a folder, by filename order",
		Long: `Copy the first N sample files of the source folder into the destination,
so evaluation sets of different mutation variants can be compared at equal
size.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := domain.NewSelector(store)

			copied, err := sel.SelectFirstN(cmd.Context(), m.Path(args[0]), m.Path(args[1]), selectCountFlag)
			if err != nil {
				return err
			}

			cmd.Printf("copied %d sample(s) to %s\n", copied, args[1])

			return nil
		},
	}

	cmd.Flags().IntVarP(&selectCountFlag, countFlagName, "n", 50, "number of samples to copy")

	return cmd
}

func init() {
	rootCmd.AddCommand(selectCmd)
}
