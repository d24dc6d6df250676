package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/embeddings/internal/dimension"
	"github.com/matsen/embeddings/internal/embedding"
)

// Dimension flags shared by the projection commands here and in ensemble.go.
type dimensionFlags struct {
	specs []string
	file  string
	only  []string
}

func (f *dimensionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.specs, "dim", nil, `Dimension: "name=a,b" (unipolar) or "name=a,b:c,d" (bipolar); repeatable`)
	cmd.Flags().StringVar(&f.file, "dims", "", "YAML file of dimensions")
	cmd.Flags().StringSliceVar(&f.only, "only", nil, "Use only these dimensions, in this order (comma-separated names)")
}

func (f *dimensionFlags) mustLoad() dimension.Set {
	dims, err := loadDimensions(f.specs, f.file)
	if err == nil {
		dims, err = selectDimensions(dims, f.only)
	}
	if err != nil {
		fail(err, "reading dimensions")
	}
	return dims
}

var (
	projectPairs []string

	projectBipolarDims     dimensionFlags
	projectNormalizeBefore bool
	projectRawCentroids    bool
	projectUnipolarDims    dimensionFlags
	projectUnipolarNormBef bool
	projectPCDims          dimensionFlags
	projectPCComponents    int
	projectPCNeighbors     int
)

func init() {
	projectPairsCmd.Flags().StringArrayVar(&projectPairs, "pair", nil, "Pair first:second defining an axis; repeatable")

	projectBipolarDims.register(projectBipolarCmd)
	projectBipolarCmd.Flags().BoolVar(&projectNormalizeBefore, "normalize-before", false, "Normalise the centroid difference")
	projectBipolarCmd.Flags().BoolVar(&projectRawCentroids, "raw-centroids", false, "Do not normalise each centroid before differencing")

	projectUnipolarDims.register(projectUnipolarCmd)
	projectUnipolarCmd.Flags().BoolVar(&projectUnipolarNormBef, "normalize-before", true, "Normalise the centroid")

	projectPCDims.register(projectPCCmd)
	projectPCCmd.Flags().IntVarP(&projectPCComponents, "components", "k", 2, "Principal components per dimension")
	projectPCCmd.Flags().IntVarP(&projectPCNeighbors, "number", "n", DefaultNeighbors, "Closest words reported per component")

	projectCmd.AddCommand(projectPairsCmd, projectBipolarCmd, projectUnipolarCmd, projectPCCmd)
	rootCmd.AddCommand(projectCmd)
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project words onto semantic dimensions",
	Long: `Project test words onto axes built from other words.

A bipolar dimension has two clusters; a positive score means the test word
is closer to the first. A unipolar dimension has one cluster.

Dimension file format (YAML, order kept):
  gender:
    - [man, king, he]
    - [woman, queen, she]
  royalty: [king, queen, prince]`,
}

var projectPairsCmd = &cobra.Command{
	Use:   "pairs TEST...",
	Short: "Project onto single word-pair axes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProjectPairs,
}

func runProjectPairs(cmd *cobra.Command, args []string) error {
	pairs, err := parsePairs(projectPairs)
	if err != nil {
		fail(err, "parsing pairs")
	}
	e := mustLoadEmbedding()
	t, err := e.Projections(splitWords(args), pairs)
	if err != nil {
		fail(err, "projecting")
	}
	outputTable(t)
	return nil
}

var projectBipolarCmd = &cobra.Command{
	Use:   "bipolar TEST...",
	Short: "Project onto bipolar dimensions",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProjectBipolar,
}

func runProjectBipolar(cmd *cobra.Command, args []string) error {
	dims := projectBipolarDims.mustLoad()
	e := mustLoadEmbedding()
	opts := embedding.BipolarOptions{
		NormalizeBefore:    projectNormalizeBefore,
		NormalizeCentroids: !projectRawCentroids,
	}
	t, err := e.ProjectionsToBipolarDimensions(splitWords(args), dims, opts)
	if err != nil {
		fail(err, "projecting")
	}
	outputTable(t)
	return nil
}

var projectUnipolarCmd = &cobra.Command{
	Use:   "unipolar TEST...",
	Short: "Project onto unipolar dimensions",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProjectUnipolar,
}

func runProjectUnipolar(cmd *cobra.Command, args []string) error {
	dims := projectUnipolarDims.mustLoad()
	e := mustLoadEmbedding()
	t, err := e.ProjectionsToUnipolarDimensions(splitWords(args), dims, projectUnipolarNormBef)
	if err != nil {
		fail(err, "projecting")
	}
	outputTable(t)
	return nil
}

var projectPCCmd = &cobra.Command{
	Use:   "pc TEST...",
	Short: "Project onto the principal components of unipolar dimensions",
	Long: `Project test words onto the top principal components of each unipolar
dimension. The words closest to each component are logged at info level.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProjectPC,
}

func runProjectPC(cmd *cobra.Command, args []string) error {
	dims := projectPCDims.mustLoad()
	e := mustLoadEmbedding()
	t, _, err := e.ProjectionsToPrincipalComponents(splitWords(args), dims, projectPCComponents, projectPCNeighbors)
	if err != nil {
		fail(err, "projecting")
	}
	outputTable(t)
	return nil
}
