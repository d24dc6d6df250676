package main

import (
	"errors"

	"github.com/matsen/embeddings/internal/config"
	"github.com/matsen/embeddings/internal/corpus"
	"github.com/matsen/embeddings/internal/dimension"
	"github.com/matsen/embeddings/internal/embedding"
	"github.com/matsen/embeddings/internal/vecstore"
)

// Exit codes.
const (
	ExitSuccess         = 0 // Success
	ExitError           = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError     = 2 // Configuration error (bad config file or flag values)
	ExitValidationError = 3 // Malformed dimension, degenerate pair, bad argument
	ExitNotInVocab      = 4 // Word not in the embedding vocabulary
	ExitLoadError       = 5 // Embedding or corpus file unreadable or malformed
	ExitNoTrainingData  = 6 // Command needs --training-data
)

// exitCodeFor classifies err by the sentinel it wraps.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, config.ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, vecstore.ErrLoad), errors.Is(err, corpus.ErrLoad):
		return ExitLoadError
	case errors.Is(err, embedding.ErrNoTrainingData):
		return ExitNoTrainingData
	case errors.Is(err, embedding.ErrNotInVocab):
		return ExitNotInVocab
	case errors.Is(err, dimension.ErrInvalidSpec),
		errors.Is(err, embedding.ErrDegenerate),
		errors.Is(err, embedding.ErrEmptyWordList),
		errors.Is(err, embedding.ErrInvalidArgument),
		errors.Is(err, embedding.ErrUnknownMethod):
		return ExitValidationError
	default:
		return ExitError
	}
}
