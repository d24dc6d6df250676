package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/embeddings/internal/ensemble"
)

var (
	ensemblePattern string

	ensembleBipolarDims     dimensionFlags
	ensembleRawDifference   bool
	ensembleNormCentroids   bool
	ensembleUnipolarDims    dimensionFlags
	ensembleUnipolarNormBef bool
)

func init() {
	ensembleCmd.PersistentFlags().StringVar(&ensemblePattern, "pattern", "", "Glob of member files (default: embeddings_dir/pattern from config)")

	ensembleBipolarDims.register(ensembleBipolarCmd)
	ensembleBipolarCmd.Flags().BoolVar(&ensembleRawDifference, "raw-difference", false, "Do not normalise the centroid difference")
	ensembleBipolarCmd.Flags().BoolVar(&ensembleNormCentroids, "normalize-centroids", false, "Normalise each centroid before differencing")

	ensembleUnipolarDims.register(ensembleUnipolarCmd)
	ensembleUnipolarCmd.Flags().BoolVar(&ensembleUnipolarNormBef, "normalize-before", true, "Normalise the centroid")

	ensembleCmd.AddCommand(ensembleSharedVocabCmd, ensembleInVocabCmd, ensembleSimilarityCmd,
		ensembleSimilaritiesCmd, ensembleBipolarCmd, ensembleUnipolarCmd)
	rootCmd.AddCommand(ensembleCmd)
}

var ensembleCmd = &cobra.Command{
	Use:   "ensemble",
	Short: "Aggregate analyses over several embeddings",
	Long: `Run an analysis in every member of an ensemble and report the mean and
sample standard deviation across members.

Members are given with repeated -e flags, or matched with --pattern
(lexical order). They are labelled emb1..embN in that order. Members that
lack a word are skipped for it; what was skipped is logged as a warning.

Examples:
  emb ensemble similarity king queen --pattern 'runs/seed_*.emb'
  emb ensemble unipolar man woman -e a.emb -e b.emb --dim royal=king,queen`,
}

var ensembleSharedVocabCmd = &cobra.Command{
	Use:   "shared-vocab",
	Short: "Words known to every member",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		en := mustLoadEnsemble(cmd.Context(), ensemblePattern)
		outputWords(en.SharedVocab())
		return nil
	},
}

var ensembleInVocabCmd = &cobra.Command{
	Use:   "in-vocab WORD",
	Short: "Which members know a word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		en := mustLoadEnsemble(cmd.Context(), ensemblePattern)
		outputTable(en.InVocab(args[0]))
		return nil
	},
}

var ensembleSimilarityCmd = &cobra.Command{
	Use:   "similarity WORD1 WORD2",
	Short: "Similarity of two words in every member",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		en := mustLoadEnsemble(cmd.Context(), ensemblePattern)
		t, err := en.Similarity(args[0], args[1])
		if err != nil {
			fail(err, "computing similarity")
		}
		outputTable(t)
		return nil
	},
}

var ensembleSimilaritiesCmd = &cobra.Command{
	Use:   "similarities PAIR...",
	Short: "Similarities of word pairs in every member",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, err := parsePairs(args)
		if err != nil {
			fail(err, "parsing pairs")
		}
		en := mustLoadEnsemble(cmd.Context(), ensemblePattern)
		t, err := en.Similarities(pairs)
		if err != nil {
			fail(err, "computing similarities")
		}
		outputTable(t)
		return nil
	},
}

var ensembleBipolarCmd = &cobra.Command{
	Use:   "bipolar TEST...",
	Short: "Mean projections onto bipolar dimensions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dims := ensembleBipolarDims.mustLoad()
		en := mustLoadEnsemble(cmd.Context(), ensemblePattern)
		opts := ensemble.DefaultBipolarOptions()
		if ensembleRawDifference {
			opts.NormalizeBefore = false
		}
		if ensembleNormCentroids {
			opts.NormalizeCentroids = true
		}
		t, err := en.ProjectionsToBipolarDimensions(splitWords(args), dims, opts)
		if err != nil {
			fail(err, "projecting")
		}
		outputTable(t)
		return nil
	},
}

var ensembleUnipolarCmd = &cobra.Command{
	Use:   "unipolar TEST...",
	Short: "Mean projections onto unipolar dimensions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dims := ensembleUnipolarDims.mustLoad()
		en := mustLoadEnsemble(cmd.Context(), ensemblePattern)
		t, err := en.ProjectionsToUnipolarDimensions(splitWords(args), dims, ensembleUnipolarNormBef)
		if err != nil {
			fail(err, "projecting")
		}
		outputTable(t)
		return nil
	},
}
