package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matsen/embeddings/internal/tui"
)

var exploreN int

func init() {
	exploreCmd.Flags().IntVarP(&exploreN, "number", "n", tui.DefaultResults, "Words shown per query")
	rootCmd.AddCommand(exploreCmd)
}

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Interactive explorer",
	Long: `Query an embedding interactively.

Query syntax:
  king                 most similar words
  !king                least similar words
  king - man + woman   analogy
  king, queen          similarity of two words`,
	Args: cobra.NoArgs,
	RunE: runExplore,
}

func runExplore(cmd *cobra.Command, args []string) error {
	e := mustLoadEmbedding()
	m := tui.New(e, e.Name(), exploreN, settings.Precision)
	if _, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run(); err != nil {
		return fmt.Errorf("running explorer: %w", err)
	}
	return nil
}
