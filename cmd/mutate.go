package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sabaat/LLM-FL-Artifacts/internal/domain"
	m "github.com/sabaat/LLM-FL-Artifacts/internal/model"
)

var outputDirFlag string
var maxInsertsFlag int
var parallelFlag int
var seedFlag string
var supplyFileFlag string

// mutateCmd represents the mutate command.
var mutateCmd = newMutateCmd()

func newMutateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mutate <dataset>",
		Short: "Produce the five mutation variants of a sample dataset",
		Long: `Read every JSON sample in the dataset folder, fetch mutation supply for it,
and write the commented, variable, dead_code, variable_cumulative and
dead_code_cumulative variants into subfolders of the output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			oracle, err := supplyOracle()
			if err != nil {
				return fmt.Errorf("configure supply source: %w", err)
			}

			wf := domain.NewWorkflow(store, oracle, orchestrator, ui)

			return wf.Mutate(cmd.Context(), domain.MutateArgs{
				Dataset:    m.Path(args[0]),
				Output:     m.Path(viper.GetString(outputConfigKey)),
				MaxInserts: viper.GetInt(maxInsertsConfigKey),
				Threads:    viper.GetInt(parallelConfigKey),
				Seed:       viper.GetString(seedConfigKey),
			})
		},
	}

	cmd.Flags().StringVarP(
		&outputDirFlag, outputFlagName, "o",
		viper.GetString(outputConfigKey),
		"output directory for the variant subfolders",
	)
	bindFlagToConfig(cmd.Flags().Lookup(outputFlagName), outputConfigKey)

	cmd.Flags().IntVar(
		&maxInsertsFlag, maxInsertsFlagName,
		viper.GetInt(maxInsertsConfigKey),
		"mutation strength: insertions/renames per sample",
	)
	bindFlagToConfig(cmd.Flags().Lookup(maxInsertsFlagName), maxInsertsConfigKey)

	cmd.Flags().IntVarP(
		&parallelFlag, parallelFlagName, "p",
		viper.GetInt(parallelConfigKey),
		"number of samples mutated concurrently",
	)
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.Flags().StringVar(
		&seedFlag, seedFlagName,
		viper.GetString(seedConfigKey),
		"seed string for reproducible placement",
	)
	bindFlagToConfig(cmd.Flags().Lookup(seedFlagName), seedConfigKey)

	cmd.Flags().StringVar(
		&supplyFileFlag, supplyFileFlagName,
		viper.GetString(supplyFileConfigKey),
		"YAML supply file to use instead of the ollama oracle",
	)
	bindFlagToConfig(cmd.Flags().Lookup(supplyFileFlagName), supplyFileConfigKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(mutateCmd)
}
