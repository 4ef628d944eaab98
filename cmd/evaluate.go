package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sabaat/LLM-FL-Artifacts/internal/adapter"
	"github.com/sabaat/LLM-FL-Artifacts/internal/domain"
	m "github.com/sabaat/LLM-FL-Artifacts/internal/model"
)

var matchedDirFlag string
var csvPathFlag string
var toleranceFlag int

// evaluateCmd represents the evaluate command.
var evaluateCmd = newEvaluateCmd()

func newEvaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate <folder>",
		Short: "Probe the fault localizer against every sample in a folder",
		Long: `Ask the configured model for the defect line of every sample in the folder.
A prediction within the tolerance counts as a match. Writes success.txt,
fail.txt and windowed_results.json into the folder and appends a summary row
to the results CSV.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev := domain.NewEvaluator(store, faultLocalizer(), adapter.NewResultsCSV(), ui)

			_, err := ev.Evaluate(cmd.Context(), domain.EvaluateArgs{
				Folder:    m.Path(args[0]),
				Matched:   m.Path(viper.GetString(matchedFlagName)),
				CSVPath:   m.Path(viper.GetString(csvConfigKey)),
				Model:     viper.GetString(modelConfigKey),
				Tolerance: viper.GetInt(toleranceConfigKey),
			})

			return err
		},
	}

	cmd.Flags().StringVar(
		&matchedDirFlag, matchedFlagName,
		"",
		"folder that receives a copy of every matched sample",
	)
	bindFlagToConfig(cmd.Flags().Lookup(matchedFlagName), matchedFlagName)

	cmd.Flags().StringVar(
		&csvPathFlag, csvFlagName,
		viper.GetString(csvConfigKey),
		"results CSV to append the summary row to",
	)
	bindFlagToConfig(cmd.Flags().Lookup(csvFlagName), csvConfigKey)

	cmd.Flags().IntVar(
		&toleranceFlag, toleranceFlagName,
		viper.GetInt(toleranceConfigKey),
		"allowed distance between predicted and labeled line",
	)
	bindFlagToConfig(cmd.Flags().Lookup(toleranceFlagName), toleranceConfigKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}
