package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/embeddings/internal/embedding"
	"github.com/matsen/embeddings/internal/viz"
)

var (
	vizOutput    string
	vizLayout    string
	vizThreshold float64

	matrixNonlinear bool
	matrixScaling   float64

	diversityPlotBandwidth float64

	colourCentroid    bool
	colourComponents  int
	colourDifferences bool
)

func init() {
	vizCmd.PersistentFlags().StringVarP(&vizOutput, "output", "o", "", "Output file path (default: stdout)")

	vizGraphCmd.Flags().StringVar(&vizLayout, "layout", "force", "Layout algorithm: force, circle, or grid")
	vizGraphCmd.Flags().Float64Var(&vizThreshold, "threshold", viz.DefaultThreshold, "Minimum similarity for an edge")

	vizMatrixCmd.Flags().BoolVar(&matrixNonlinear, "nonlinear", false, "Show tanh(scaling * similarity)")
	vizMatrixCmd.Flags().Float64Var(&matrixScaling, "scaling", embedding.DefaultScaling, "Scaling for --nonlinear")

	vizDiversityCmd.Flags().Float64Var(&diversityPlotBandwidth, "bandwidth", embedding.DefaultBandwidth, "Kernel width")

	vizColoursCmd.Flags().BoolVar(&colourCentroid, "centroid", false, "Add the centroid row")
	vizColoursCmd.Flags().IntVarP(&colourComponents, "components", "k", 0, "Add this many principal component rows")
	vizColoursCmd.Flags().BoolVar(&colourDifferences, "differences", false, "Add a row per ordered word pair difference")

	vizCmd.AddCommand(vizGraphCmd, vizMatrixCmd, vizPCACmd, vizDiversityCmd, vizColoursCmd)
	rootCmd.AddCommand(vizCmd)
}

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Generate HTML visualisations",
	Long: `Generate self-contained HTML plots of word sets.

Examples:
  # Similarity network of a word set
  emb viz graph -e vectors.emb king queen man woman apple --output graph.html

  # Circular layout, only strong links
  emb viz graph -e vectors.emb king queen man woman --layout circle --threshold 0.7

  # Heatmap of vector coordinates with centroid and two principal components
  emb viz colours -e vectors.emb king queen man woman --centroid -k 2`,
}

// withRenderer runs draw against an HTML renderer writing to --output or stdout.
func withRenderer(draw func(r viz.Renderer) error) error {
	var w io.Writer = os.Stdout
	var f *os.File
	if vizOutput != "" {
		var err error
		f, err = os.Create(vizOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	opts := viz.DefaultOptions()
	opts.Layout = vizLayout
	opts.Threshold = vizThreshold
	if err := draw(viz.NewHTMLRenderer(w, opts)); err != nil {
		return fmt.Errorf("generating HTML: %w", err)
	}

	if f != nil {
		if err := f.Close(); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		outputFile(vizOutput)
	}
	return nil
}

var vizGraphCmd = &cobra.Command{
	Use:   "graph WORD...",
	Short: "Similarity network",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := mustLoadEmbedding()
		words := splitWords(args)
		m, err := e.SimilarityMatrix(words, false, 0)
		if err != nil {
			fail(err, "computing similarities")
		}
		return withRenderer(func(r viz.Renderer) error {
			return r.Network(e.Name()+": similarity network", words, m)
		})
	},
}

var vizMatrixCmd = &cobra.Command{
	Use:   "matrix WORD...",
	Short: "Similarity heatmap",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := mustLoadEmbedding()
		words := splitWords(args)
		m, err := e.SimilarityMatrix(words, matrixNonlinear, matrixScaling)
		if err != nil {
			fail(err, "computing similarities")
		}
		return withRenderer(func(r viz.Renderer) error {
			return r.Heatmap(e.Name()+": similarity", words, words, m)
		})
	},
}

var vizPCACmd = &cobra.Command{
	Use:   "pca WORD...",
	Short: "Words on their first two principal components",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := mustLoadEmbedding()
		words := splitWords(args)
		k := min(2, len(words), e.Dim())
		points, err := e.PCAPoints(words, k)
		if err != nil {
			fail(err, "fitting PCA")
		}
		return withRenderer(func(r viz.Renderer) error {
			return r.Scatter(e.Name()+": PCA", words, points)
		})
	},
}

var vizDiversityCmd = &cobra.Command{
	Use:   "diversity WORD...",
	Short: "Density of pairwise similarities in a word cluster",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := mustLoadEmbedding()
		sims, err := e.PairwiseSimilarities(splitWords(args))
		if err != nil {
			fail(err, "computing similarities")
		}
		return withRenderer(func(r viz.Renderer) error {
			return r.Density(e.Name()+": pairwise similarities", sims, diversityPlotBandwidth)
		})
	},
}

var vizColoursCmd = &cobra.Command{
	Use:     "colours WORD...",
	Aliases: []string{"colors"},
	Short:   "Heatmap of vector coordinates",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := mustLoadEmbedding()
		labels, rows, err := e.ColourArray(splitWords(args), embedding.ColourArrayOptions{
			IncludeCentroid:     colourCentroid,
			PrincipalComponents: colourComponents,
			IncludeDifferences:  colourDifferences,
		})
		if err != nil {
			fail(err, "building colour array")
		}
		cols := make([]string, e.Dim())
		for i := range cols {
			cols[i] = fmt.Sprint(i)
		}
		return withRenderer(func(r viz.Renderer) error {
			return r.Heatmap(e.Name()+": coordinates", labels, cols, rows)
		})
	},
}
