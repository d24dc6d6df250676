package embedding

import "errors"

// Sentinel errors for embedding operations. Callers classify with errors.Is.
var (
	// ErrNotInVocab means a requested word is absent from the vocabulary.
	ErrNotInVocab = errors.New("word not in vocabulary")

	// ErrNoTrainingData means the operation needs a training corpus and none is attached.
	ErrNoTrainingData = errors.New("no training data loaded")

	// ErrDegenerate means two words have the same unit vector, so their difference is undefined.
	ErrDegenerate = errors.New("words have the same vector representation")

	// ErrEmptyWordList means an operation received no words to work with.
	ErrEmptyWordList = errors.New("empty word list")

	// ErrInvalidArgument covers out-of-range counts and malformed in-memory input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownMethod means a named method (e.g. a diversity measure) is not recognised.
	ErrUnknownMethod = errors.New("unknown method")
)
