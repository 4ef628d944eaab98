package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sabaat/LLM-FL-Artifacts/internal/domain"
)

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <folder>...",
		Short: "Aggregate windowed evaluation results across variant folders",
		Long: `Sum the windowed_results.json and success/fail lists of previously
evaluated folders into one overview, broken down by quartile of the defect
position.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep := domain.NewReporter(store, ui)

			_, _, err := rep.Report(cmd.Context(), parsePaths(args))

			return err
		},
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
