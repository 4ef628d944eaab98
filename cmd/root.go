// Package cmd provides the root command and CLI setup for spm.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sabaat/LLM-FL-Artifacts/internal/adapter"
	"github.com/sabaat/LLM-FL-Artifacts/internal/controller"
	"github.com/sabaat/LLM-FL-Artifacts/internal/domain"
	m "github.com/sabaat/LLM-FL-Artifacts/internal/model"
)

var store adapter.SampleStore
var orchestrator domain.Orchestrator
var ui controller.UI

// modelFlag selects the Ollama model for supply generation and evaluation.
var modelFlag string

// verboseFlag switches file logging to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	store = adapter.NewLocalSampleStore()
	orchestrator = domain.NewOrchestrator()
}

const rootLongDescription = `spm perturbs labeled buggy code samples with superficial mutations
(misleading comments, identifier renames, dead code) that preserve runtime
behavior while keeping each sample's defect line pointer in sync. The mutated
datasets probe how robust a fault-localization model is to cosmetic noise.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spm",
		Short: "Superficial program mutation tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(
		&modelFlag, modelFlagName, "m",
		viper.GetString(modelConfigKey),
		"ollama model used for supply generation and evaluation",
	)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(modelFlagName), modelConfigKey)

	cmd.PersistentFlags().BoolVarP(
		&verboseFlag, verboseFlagName, "v",
		viper.GetBool(logVerboseKey),
		"enable debug logging",
	)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// supplyOracle picks the configured supply source: a YAML supply file when
// one is set, the live Ollama endpoint otherwise.
func supplyOracle() (adapter.SupplyOracle, error) {
	if path := viper.GetString(supplyFileConfigKey); path != "" {
		return adapter.NewFileSupply(m.Path(path))
	}

	return adapter.NewOllamaOracle(viper.GetString(baseURLConfigKey), viper.GetString(modelConfigKey)), nil
}

func faultLocalizer() adapter.FaultLocalizer {
	return adapter.NewOllamaLocalizer(viper.GetString(baseURLConfigKey), viper.GetString(modelConfigKey))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
