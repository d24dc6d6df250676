package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/embeddings/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration after merging the config file, EMB_* environment
variables (also read from .env) and command-line flags.

Keys:
  embeddings_dir  Directory searched for ensemble members
  pattern         Glob of ensemble members inside embeddings_dir (default *.emb)
  training_data   Training corpus used by corpus commands and frequency columns
  precision       Decimals shown with --human (default 4)
  log_level       debug, info, warn, or error (default info)`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

// ConfigResponse is the JSON response for emb config.
type ConfigResponse struct {
	Path string `json:"path"`
	config.Config
}

func runConfig(cmd *cobra.Command, args []string) error {
	path := config.GlobalConfigPath()
	if humanOutput {
		outputHuman("config file:     %s\n", path)
		outputHuman("embeddings_dir:  %s\n", settings.EmbeddingsDir)
		outputHuman("pattern:         %s\n", settings.Pattern)
		outputHuman("training_data:   %s\n", settings.TrainingData)
		outputHuman("precision:       %d\n", settings.Precision)
		outputHuman("log_level:       %s\n", settings.LogLevel)
		return nil
	}
	outputJSON(ConfigResponse{Path: path, Config: settings})
	return nil
}
