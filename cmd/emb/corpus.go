package main

import (
	"github.com/spf13/cobra"
)

var (
	contextWidth int
	topFirst     int
	topMoreThan  int
)

func init() {
	corpusContextCmd.Flags().IntVarP(&contextWidth, "number", "n", DefaultContext, "Words shown on each side")
	corpusTopCmd.Flags().IntVar(&topFirst, "first", 0, "Keep the N most frequent words (negative: the |N| least frequent)")
	corpusTopCmd.Flags().IntVar(&topMoreThan, "more-than", 0, "Keep words seen more than this often")

	corpusCmd.AddCommand(corpusFreqCmd, corpusContextCmd, corpusTopCmd, corpusSizeCmd, corpusSortCmd)
	rootCmd.AddCommand(corpusCmd)
}

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Statistics of the training data",
	Long: `Word statistics of the corpus an embedding was trained on.

All subcommands need --training-data (or training_data in the config).
The corpus is plain text with one whitespace-tokenised sentence per line,
or a PDF.`,
}

var corpusFreqCmd = &cobra.Command{
	Use:   "freq WORD",
	Short: "Occurrences of a word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := mustLoadEmbedding()
		n, err := e.FrequencyInTrainingData(args[0])
		if err != nil {
			fail(err, "counting")
		}
		outputValue(args[0], n)
		return nil
	},
}

var corpusContextCmd = &cobra.Command{
	Use:   "context WORD",
	Short: "Every occurrence of a word with its neighbours",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := mustLoadEmbedding()
		lines, err := e.ContextInTrainingData(args[0], contextWidth)
		if err != nil {
			fail(err, "collecting contexts")
		}
		outputWords(lines)
		return nil
	},
}

var corpusTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Corpus words ranked by frequency",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e := mustLoadEmbedding()
		t, err := e.VocabSortedByFrequencyInTrainingData(topFirst, topMoreThan)
		if err != nil {
			fail(err, "ranking words")
		}
		outputTable(t)
		return nil
	},
}

var corpusSizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Number of tokens in the corpus",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e := mustLoadEmbedding()
		n, err := e.TrainingDataSize()
		if err != nil {
			fail(err, "counting")
		}
		outputValue("tokens", n)
		return nil
	},
}

var corpusSortCmd = &cobra.Command{
	Use:   "sort WORD...",
	Short: "Sort words by corpus frequency",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := mustLoadEmbedding()
		t, err := e.SortByFrequencyInTrainingData(splitWords(args))
		if err != nil {
			fail(err, "sorting")
		}
		outputTable(t)
		return nil
	},
}
