package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/embeddings/internal/vecstore"
)

func init() {
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert INPUT OUTPUT",
	Short: "Convert between vector file formats",
	Long: `Convert an embedding between formats. The format of each file follows
from its extension:

  .txt, .vec    word2vec / GloVe text
  .bin, .emb    word2vec binary
  .db, .sqlite  SQLite vector store

Vectors are copied as stored, without normalisation.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		vecs, err := vecstore.Load(args[0])
		if err != nil {
			fail(err, "reading vectors")
		}
		if err := vecstore.Save(args[1], vecs); err != nil {
			fail(err, "writing vectors")
		}
		logger.Info("converted vectors", "from", args[0], "to", args[1], "words", vecs.Len(), "dim", vecs.Dim)
		outputFile(args[1])
		return nil
	},
}
