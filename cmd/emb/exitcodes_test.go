package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/matsen/embeddings/internal/config"
	"github.com/matsen/embeddings/internal/corpus"
	"github.com/matsen/embeddings/internal/dimension"
	"github.com/matsen/embeddings/internal/embedding"
	"github.com/matsen/embeddings/internal/ensemble"
	"github.com/matsen/embeddings/internal/vecstore"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"config", fmt.Errorf("loading: %w", config.ErrInvalidConfig), ExitConfigError},
		{"vector file", fmt.Errorf("loading embedding: %w", vecstore.ErrLoad), ExitLoadError},
		{"no members", ensemble.ErrNoEmbeddings, ExitLoadError},
		{"corpus", corpus.ErrLoad, ExitLoadError},
		{"no corpus", embedding.ErrNoTrainingData, ExitNoTrainingData},
		{"unknown word", fmt.Errorf("%w: %q", embedding.ErrNotInVocab, "dragon"), ExitNotInVocab},
		{"dimension", dimension.ErrInvalidSpec, ExitValidationError},
		{"degenerate", embedding.ErrDegenerate, ExitValidationError},
		{"empty list", embedding.ErrEmptyWordList, ExitValidationError},
		{"bad argument", embedding.ErrInvalidArgument, ExitValidationError},
		{"method", embedding.ErrUnknownMethod, ExitValidationError},
		{"other", errors.New("boom"), ExitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
