// Package main provides the emb CLI entry point.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/embeddings/internal/config"
	"github.com/matsen/embeddings/internal/corpus"
	"github.com/matsen/embeddings/internal/diag"
	"github.com/matsen/embeddings/internal/embedding"
	"github.com/matsen/embeddings/internal/ensemble"
)

// Version is set at build time via ldflags
var Version = "dev"

// Persistent flags.
var (
	humanOutput    bool
	precisionFlag  int
	maxRowsFlag    int
	logLevelFlag   string
	embeddingPaths []string
	trainingFlag   string
)

// Resolved once per invocation by setup.
var (
	settings config.Config
	logger   = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		stop()
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "emb",
	Short: "Word embedding analysis toolkit",
	Long: `emb analyses word embeddings.

Core features:
  - Similarity, nearest neighbours and analogies in one embedding
  - Projections onto bipolar, unipolar and principal-component dimensions
  - Word statistics of the training corpus
  - Aggregation of the same analyses over an ensemble of embeddings
  - HTML plots and an interactive explorer

Embeddings are word2vec text/binary files or SQLite vector stores.
All commands output JSON by default; use --human for tables.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Load .env file if present (for EMB_* settings)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().IntVar(&precisionFlag, "precision", 0, "Decimals shown with --human (default from config)")
	rootCmd.PersistentFlags().IntVar(&maxRowsFlag, "max-rows", 0, "Output at most this many table rows (0 shows all)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, or error (default from config)")
	rootCmd.PersistentFlags().StringArrayVarP(&embeddingPaths, "embedding", "e", nil, "Embedding file (repeat for an ensemble)")
	rootCmd.PersistentFlags().StringVar(&trainingFlag, "training-data", "", "Training corpus (text or PDF)")
	rootCmd.Version = Version
}

// setup merges config, environment and flags, then builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v\n\n%s", err, config.HelpfulConfigMessage())
	}
	settings = *cfg
	if precisionFlag != 0 {
		settings.Precision = precisionFlag
	}
	if logLevelFlag != "" {
		settings.LogLevel = logLevelFlag
	}
	if trainingFlag != "" {
		settings.TrainingData = trainingFlag
	}
	if err := settings.Validate(); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	level, _ := config.ParseLogLevel(settings.LogLevel)
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// diagnostics routes analysis notices to the log.
func diagnostics() diag.Sink {
	return diag.NewLogSink(logger)
}

// mustLoadCorpus loads the configured training corpus, or returns nil when
// none is configured.
func mustLoadCorpus() *corpus.Corpus {
	if settings.TrainingData == "" {
		return nil
	}
	c, err := corpus.Load(settings.TrainingData)
	if err != nil {
		fail(err, "loading training data")
	}
	logger.Debug("loaded training data", "path", settings.TrainingData, "tokens", c.Size())
	return c
}

// mustLoadEmbedding loads the single embedding named by --embedding.
func mustLoadEmbedding() *embedding.Embedding {
	if len(embeddingPaths) != 1 {
		exitWithError(ExitError, "exactly one --embedding is required, got %d", len(embeddingPaths))
	}
	opts := []embedding.Option{embedding.WithDiagnostics(diagnostics())}
	if c := mustLoadCorpus(); c != nil {
		opts = append(opts, embedding.WithTrainingData(c))
	}
	e, err := embedding.Load(embeddingPaths[0], opts...)
	if err != nil {
		fail(err, "loading embedding")
	}
	logger.Debug("loaded embedding", "name", e.Name(), "words", e.VocabSize(), "dim", e.Dim())
	return e
}

// mustLoadEnsemble loads every --embedding, or the files matching pattern
// when none is given. An empty pattern falls back to the configured glob.
func mustLoadEnsemble(ctx context.Context, pattern string) *ensemble.Ensemble {
	opts := []ensemble.Option{ensemble.WithDiagnostics(diagnostics())}
	if c := mustLoadCorpus(); c != nil {
		opts = append(opts, ensemble.WithTrainingData(c))
	}

	var (
		en  *ensemble.Ensemble
		err error
	)
	if len(embeddingPaths) > 0 {
		en, err = ensemble.Load(ctx, embeddingPaths, opts...)
	} else {
		if pattern == "" {
			pattern = settings.EmbeddingsGlob()
		}
		en, err = ensemble.LoadGlob(ctx, pattern, opts...)
	}
	if err != nil {
		fail(err, "loading ensemble")
	}
	return en
}
