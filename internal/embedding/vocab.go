package embedding

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/matsen/embeddings/internal/table"
)

// MaxNGrams bounds the n-gram filter of Vocab.
const MaxNGrams = 99

// Vocab returns the sorted vocabulary. nGrams in 1..MaxNGrams keeps only
// n-grams, i.e. words made of nGrams "_"-joined parts; 0 keeps every word.
func (e *Embedding) Vocab(nGrams int) ([]string, error) {
	if nGrams < 0 || nGrams > MaxNGrams {
		return nil, fmt.Errorf("%w: n-grams must be between 1 and %d, got %d", ErrInvalidArgument, MaxNGrams, nGrams)
	}
	out := make([]string, 0, len(e.words))
	for _, w := range e.words {
		if nGrams == 0 || strings.Count(w, "_") == nGrams-1 {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out, nil
}

// VocabSize returns the number of words.
func (e *Embedding) VocabSize() int {
	return len(e.words)
}

// InVocab reports whether word has a vector.
func (e *Embedding) InVocab(word string) bool {
	_, ok := e.index[word]
	return ok
}

// VocabContaining returns the sorted words that contain part as a substring.
func (e *Embedding) VocabContaining(part string) []string {
	var out []string
	for _, w := range e.words {
		if strings.Contains(w, part) {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

// VocabContainingWithFrequency is VocabContaining as a "Word, Frequency"
// table sorted by descending training-data frequency.
func (e *Embedding) VocabContainingWithFrequency(part string) (*table.Table, error) {
	c, err := e.TrainingData()
	if err != nil {
		return nil, err
	}
	t := table.New("Word", "Frequency")
	for _, w := range e.VocabContaining(part) {
		t.Append(w, c.Frequency(w))
	}
	t.SortDesc("Frequency")
	return t, nil
}

// RandomWords samples n distinct vocabulary words. With minFrequency > 0 only
// words seen more than minFrequency times in the training data qualify.
// A nil rng uses the package-level source.
func (e *Embedding) RandomWords(n, minFrequency int, rng *rand.Rand) ([]string, error) {
	var pool []string
	if minFrequency > 0 {
		c, err := e.TrainingData()
		if err != nil {
			return nil, err
		}
		for _, wc := range c.Ranked(0, minFrequency) {
			if e.InVocab(wc.Word) {
				pool = append(pool, wc.Word)
			}
		}
	} else {
		pool, _ = e.Vocab(0)
	}

	if n < 0 || n > len(pool) {
		return nil, fmt.Errorf("%w: cannot sample %d words from %d candidates", ErrInvalidArgument, n, len(pool))
	}

	var perm []int
	if rng != nil {
		perm = rng.Perm(len(pool))
	} else {
		perm = rand.Perm(len(pool))
	}
	out := make([]string, n)
	for i := range out {
		out[i] = pool[perm[i]]
	}
	return out, nil
}
