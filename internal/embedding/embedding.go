// Package embedding analyses a single word embedding: a vocabulary mapped to
// dense vectors, optionally paired with the corpus it was trained on.
//
// Every vector handed out is unit length. Raw vectors are normalised once at
// construction and the embedding is read-only afterwards, so an *Embedding is
// safe for concurrent use.
package embedding

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matsen/embeddings/internal/corpus"
	"github.com/matsen/embeddings/internal/diag"
	"github.com/matsen/embeddings/internal/vecstore"
	"github.com/matsen/embeddings/internal/vector"
)

// Embedding is one vocabulary-to-vector mapping.
type Embedding struct {
	name   string
	words  []string // file order
	index  map[string]int
	unit   []vector.Vector
	dim    int
	corpus *corpus.Corpus
	sink   diag.Sink
}

// Option configures an Embedding at construction.
type Option func(*Embedding)

// WithTrainingData attaches a training corpus.
func WithTrainingData(c *corpus.Corpus) Option {
	return func(e *Embedding) {
		e.corpus = c
	}
}

// WithDiagnostics routes advisory notices to sink.
func WithDiagnostics(sink diag.Sink) Option {
	return func(e *Embedding) {
		e.sink = sink
	}
}

// WithName overrides the display name.
func WithName(name string) Option {
	return func(e *Embedding) {
		e.name = name
	}
}

// Load reads the vector file at path. Failures wrap vecstore.ErrLoad.
func Load(path string, opts ...Option) (*Embedding, error) {
	vecs, err := vecstore.Load(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return fromVectors(name, vecs, opts...), nil
}

// New builds an embedding from in-memory words and raw vectors.
func New(name string, words []string, vectors []vector.Vector, opts ...Option) (*Embedding, error) {
	vecs := &vecstore.Vectors{Words: words, Vectors: vectors}
	if len(vectors) > 0 {
		vecs.Dim = len(vectors[0])
	}
	if err := vecs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if vecs.Dim == 0 {
		return nil, fmt.Errorf("%w: zero-dimensional vectors", ErrInvalidArgument)
	}
	return fromVectors(name, vecs, opts...), nil
}

func fromVectors(name string, vecs *vecstore.Vectors, opts ...Option) *Embedding {
	e := &Embedding{
		name:  name,
		words: append([]string(nil), vecs.Words...),
		index: make(map[string]int, len(vecs.Words)),
		unit:  make([]vector.Vector, len(vecs.Vectors)),
		dim:   vecs.Dim,
		sink:  diag.Discard,
	}
	for i, w := range vecs.Words {
		e.index[w] = i
		e.unit[i] = vector.Normalize(vecs.Vectors[i])
	}
	for _, opt := range opts {
		opt(e)
	}
	e.sink = diag.Or(e.sink)
	return e
}

// Name returns the display name.
func (e *Embedding) Name() string { return e.name }

// Dim returns the vector length.
func (e *Embedding) Dim() int { return e.dim }

func (e *Embedding) String() string {
	return fmt.Sprintf("<Embedding %s>", e.name)
}

// AttachTrainingData returns a copy of e that carries c as its training corpus.
func (e *Embedding) AttachTrainingData(c *corpus.Corpus) *Embedding {
	cp := *e
	cp.corpus = c
	return &cp
}

// LoadTrainingData reads a corpus file and returns a copy of e carrying it.
func (e *Embedding) LoadTrainingData(path string) (*Embedding, error) {
	c, err := corpus.Load(path)
	if err != nil {
		return nil, err
	}
	return e.AttachTrainingData(c), nil
}

// HasTrainingData reports whether a corpus is attached.
func (e *Embedding) HasTrainingData() bool {
	return e.corpus != nil
}

// TrainingData returns the attached corpus or ErrNoTrainingData.
func (e *Embedding) TrainingData() (*corpus.Corpus, error) {
	if e.corpus == nil {
		return nil, ErrNoTrainingData
	}
	return e.corpus, nil
}

// lookup returns the shared unit vector of word. Callers must not modify it.
func (e *Embedding) lookup(word string) (vector.Vector, error) {
	i, ok := e.index[word]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotInVocab, word)
	}
	return e.unit[i], nil
}

func (e *Embedding) lookupAll(words []string) ([]vector.Vector, error) {
	out := make([]vector.Vector, len(words))
	for i, w := range words {
		v, err := e.lookup(w)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
