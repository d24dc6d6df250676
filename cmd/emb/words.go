package main

import (
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/matsen/embeddings/internal/embedding"
	"github.com/matsen/embeddings/internal/table"
)

var (
	vocabNGrams       int
	vocabContains     string
	vocabWithFreq     bool
	vocabRandom       int
	vocabMinFrequency int
	vocabSeed         uint64
	vocabSize         bool

	vectorCentroid  bool
	vectorNormalize bool

	similarityDifferences bool

	similarN     int
	similarLeast bool

	analogyPositive []string
	analogyNegative []string
	analogyN        int

	diversityMethod    string
	diversityBandwidth float64

	pcaComponents int
	pcaNeighbors  int
	pcaVariance   bool
)

func init() {
	vocabCmd.Flags().IntVar(&vocabNGrams, "ngrams", 0, "Only words made of this many _-joined parts (0 = all)")
	vocabCmd.Flags().StringVar(&vocabContains, "contains", "", "Only words containing this substring")
	vocabCmd.Flags().BoolVar(&vocabWithFreq, "frequency", false, "With --contains, add training-data frequencies")
	vocabCmd.Flags().IntVar(&vocabRandom, "random", 0, "Sample this many random words")
	vocabCmd.Flags().IntVar(&vocabMinFrequency, "min-frequency", 0, "With --random, only words seen more than this often in the training data")
	vocabCmd.Flags().Uint64Var(&vocabSeed, "seed", 0, "Random seed (0 picks one)")
	vocabCmd.Flags().BoolVar(&vocabSize, "size", false, "Only print the vocabulary size")

	vectorCmd.Flags().BoolVar(&vectorCentroid, "centroid", false, "Print the centroid of the words instead")
	vectorCmd.Flags().BoolVar(&vectorNormalize, "normalize", false, "With --centroid, normalise the centroid")

	similarityCmd.Flags().BoolVar(&similarityDifferences, "differences", false, "Compare the difference vectors of the pairs instead")

	similarCmd.Flags().IntVarP(&similarN, "number", "n", DefaultNeighbors, "Number of words")
	similarCmd.Flags().BoolVar(&similarLeast, "least", false, "Least similar words instead")

	analogyCmd.Flags().StringSliceVarP(&analogyPositive, "positive", "p", nil, "Words to add")
	analogyCmd.Flags().StringSliceVarP(&analogyNegative, "negative", "m", nil, "Words to subtract")
	analogyCmd.Flags().IntVarP(&analogyN, "number", "n", DefaultNeighbors, "Number of words")

	diversityCmd.Flags().StringVar(&diversityMethod, "method", embedding.DiversityCentroidLength, "Measure: centroid_length or mmd")
	diversityCmd.Flags().Float64Var(&diversityBandwidth, "bandwidth", embedding.DefaultBandwidth, "Kernel width for mmd")

	pcaCmd.Flags().IntVarP(&pcaComponents, "components", "k", 2, "Number of principal components")
	pcaCmd.Flags().IntVarP(&pcaNeighbors, "number", "n", DefaultNeighbors, "Closest words per component")
	pcaCmd.Flags().BoolVar(&pcaVariance, "variance", false, "Print explained variance instead")

	rootCmd.AddCommand(vocabCmd, vectorCmd, similarityCmd, similarCmd, analogyCmd, diversityCmd, pcaCmd)
}

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "List the vocabulary",
	Long: `List the vocabulary of an embedding.

Examples:
  emb vocab -e vectors.emb --size
  emb vocab -e vectors.emb --ngrams 2
  emb vocab -e vectors.emb --contains ice --frequency --training-data corpus.txt
  emb vocab -e vectors.emb --random 20 --min-frequency 5 --training-data corpus.txt`,
	Args: cobra.NoArgs,
	RunE: runVocab,
}

func runVocab(cmd *cobra.Command, args []string) error {
	e := mustLoadEmbedding()

	switch {
	case vocabSize:
		outputValue("vocab_size", e.VocabSize())
	case vocabRandom > 0:
		rng := rand.New(rand.NewPCG(vocabSeed, vocabSeed))
		if vocabSeed == 0 {
			rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		words, err := e.RandomWords(vocabRandom, vocabMinFrequency, rng)
		if err != nil {
			fail(err, "sampling words")
		}
		outputWords(words)
	case vocabContains != "" && vocabWithFreq:
		t, err := e.VocabContainingWithFrequency(vocabContains)
		if err != nil {
			fail(err, "listing vocabulary")
		}
		outputTable(t)
	case vocabContains != "":
		outputWords(e.VocabContaining(vocabContains))
	default:
		words, err := e.Vocab(vocabNGrams)
		if err != nil {
			fail(err, "listing vocabulary")
		}
		outputWords(words)
	}
	return nil
}

func outputWords(words []string) {
	if words == nil {
		words = []string{}
	}
	if humanOutput {
		for _, w := range words {
			outputHuman("%s\n", w)
		}
		return
	}
	outputJSON(words)
}

var vectorCmd = &cobra.Command{
	Use:   "vector WORD...",
	Short: "Print unit vectors",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runVector,
}

func runVector(cmd *cobra.Command, args []string) error {
	e := mustLoadEmbedding()
	words := splitWords(args)

	if vectorCentroid {
		c, err := e.CentroidOfVectors(words, vectorNormalize)
		if err != nil {
			fail(err, "computing centroid")
		}
		outputJSON(map[string]any{"centroid": []float64(c)})
		return nil
	}

	vecs, err := e.Vectors(words)
	if err != nil {
		fail(err, "looking up vectors")
	}
	out := make(map[string][]float64, len(words))
	for i, w := range words {
		out[w] = vecs[i]
	}
	outputJSON(out)
	return nil
}

var similarityCmd = &cobra.Command{
	Use:   "similarity PAIR...",
	Short: "Cosine similarity of word pairs",
	Long: `Cosine similarity of word pairs, written first:second.

Examples:
  emb similarity -e vectors.emb king:queen man:woman
  emb similarity -e vectors.emb --differences king:queen man:woman`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSimilarity,
}

func runSimilarity(cmd *cobra.Command, args []string) error {
	pairs, err := parsePairs(args)
	if err != nil {
		fail(err, "parsing pairs")
	}
	e := mustLoadEmbedding()

	var t *table.Table
	if similarityDifferences {
		t, err = e.SimilaritiesOfDifferences(pairs)
	} else {
		t, err = e.Similarities(pairs)
	}
	if err != nil {
		fail(err, "computing similarities")
	}
	outputTable(t)
	return nil
}

var similarCmd = &cobra.Command{
	Use:   "similar WORD",
	Short: "Most (or least) similar words",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilar,
}

func runSimilar(cmd *cobra.Command, args []string) error {
	e := mustLoadEmbedding()
	var (
		ns  []embedding.Neighbor
		err error
	)
	if similarLeast {
		ns, err = e.LeastSimilar(args[0], similarN)
	} else {
		ns, err = e.MostSimilar(args[0], similarN)
	}
	if err != nil {
		fail(err, "ranking words")
	}
	outputTable(neighborsTable(ns))
	return nil
}

var analogyCmd = &cobra.Command{
	Use:   "analogy",
	Short: "Solve word analogies",
	Long: `Rank words by similarity to the mean of the positive minus the negative words.

Example:
  emb analogy -e vectors.emb -p king,woman -m man`,
	Args: cobra.NoArgs,
	RunE: runAnalogy,
}

func runAnalogy(cmd *cobra.Command, args []string) error {
	e := mustLoadEmbedding()
	ns, err := e.Analogy(analogyPositive, analogyNegative, analogyN)
	if err != nil {
		fail(err, "solving analogy")
	}
	outputTable(neighborsTable(ns))
	return nil
}

var diversityCmd = &cobra.Command{
	Use:   "diversity WORD...",
	Short: "Measure how spread out a word cluster is",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDiversity,
}

func runDiversity(cmd *cobra.Command, args []string) error {
	e := mustLoadEmbedding()
	d, err := e.ClusterDiversity(splitWords(args), diversityMethod, diversityBandwidth)
	if err != nil {
		fail(err, "measuring diversity")
	}
	outputValue(diversityMethod, d)
	return nil
}

var pcaCmd = &cobra.Command{
	Use:   "pca [WORD...]",
	Short: "Words closest to the principal components",
	Long: `Fit a PCA on the given words (or the whole vocabulary) and list the words
closest to each component, or the variance each component explains.`,
	RunE: runPCA,
}

func runPCA(cmd *cobra.Command, args []string) error {
	e := mustLoadEmbedding()
	words := splitWords(args)

	if pcaVariance {
		if words == nil {
			words, _ = e.Vocab(0)
		}
		v, err := e.PrincipalComponentsVariance(words, pcaComponents)
		if err != nil {
			fail(err, "fitting PCA")
		}
		t := table.New("component", "variance")
		for k, x := range v {
			t.Append(k+1, x)
		}
		outputTable(t)
		return nil
	}

	t, err := e.WordsClosestToPrincipalComponents(words, pcaComponents, pcaNeighbors)
	if err != nil {
		fail(err, "fitting PCA")
	}
	outputTable(t)
	return nil
}
