package embedding

import (
	"fmt"
	"sort"

	"github.com/matsen/embeddings/internal/table"
	"github.com/matsen/embeddings/internal/vector"
)

// Neighbor is a vocabulary word with its cosine similarity to a query.
type Neighbor struct {
	Word       string  `json:"word"`
	Similarity float64 `json:"similarity"`
}

// Similarity returns the cosine similarity of two words, in [-1, 1].
func (e *Embedding) Similarity(w1, w2 string) (float64, error) {
	v1, err := e.lookup(w1)
	if err != nil {
		return 0, err
	}
	v2, err := e.lookup(w2)
	if err != nil {
		return 0, err
	}
	return vector.Dot(v1, v2), nil
}

// Similarities returns a "Word1, Word2, Similarity" table for pairs, sorted
// by ascending similarity.
func (e *Embedding) Similarities(pairs []WordPair) (*table.Table, error) {
	t := table.New("Word1", "Word2", "Similarity")
	for _, p := range pairs {
		sim, err := e.Similarity(p.First, p.Second)
		if err != nil {
			return nil, err
		}
		t.Append(p.First, p.Second, sim)
	}
	t.SortAsc("Similarity")
	return t, nil
}

// rank scores every vocabulary word against the unit query q, skipping
// excluded words, and sorts by descending similarity. Ties keep vocabulary
// order.
func (e *Embedding) rank(q vector.Vector, exclude map[string]bool) []Neighbor {
	results := make([]Neighbor, 0, len(e.words))
	for i, w := range e.words {
		if exclude[w] {
			continue
		}
		results = append(results, Neighbor{Word: w, Similarity: vector.Dot(q, e.unit[i])})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	return results
}

func checkCount(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: n must be positive, got %d", ErrInvalidArgument, n)
	}
	return nil
}

func head(results []Neighbor, n int) []Neighbor {
	if n < len(results) {
		results = results[:n]
	}
	return results
}

// MostSimilar returns the n words closest to word, excluding word itself,
// most similar first.
func (e *Embedding) MostSimilar(word string, n int) ([]Neighbor, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	q, err := e.lookup(word)
	if err != nil {
		return nil, err
	}
	return head(e.rank(q, map[string]bool{word: true}), n), nil
}

// MostSimilarByVector returns the n words closest to v, most similar first.
// No word is excluded.
func (e *Embedding) MostSimilarByVector(v vector.Vector, n int) ([]Neighbor, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	if len(v) != e.dim {
		return nil, fmt.Errorf("%w: query has %d dimensions, want %d", ErrInvalidArgument, len(v), e.dim)
	}
	return head(e.rank(vector.Normalize(v), nil), n), nil
}

// LeastSimilar returns the n words furthest from word, most dissimilar first.
func (e *Embedding) LeastSimilar(word string, n int) ([]Neighbor, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	q, err := e.lookup(word)
	if err != nil {
		return nil, err
	}
	ranked := e.rank(q, map[string]bool{word: true})
	if n < len(ranked) {
		ranked = ranked[len(ranked)-n:]
	}
	out := make([]Neighbor, len(ranked))
	for i, nb := range ranked {
		out[len(ranked)-1-i] = nb
	}
	return out, nil
}

// LeastSimilarByVector returns the n words closest to -v.
func (e *Embedding) LeastSimilarByVector(v vector.Vector, n int) ([]Neighbor, error) {
	return e.MostSimilarByVector(vector.Neg(v), n)
}

// Analogy ranks the vocabulary by similarity to the mean of the positive
// words' unit vectors and the negated negative ones (3CosAdd). Query words
// are excluded from the result.
func (e *Embedding) Analogy(positive, negative []string, n int) ([]Neighbor, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	if len(positive)+len(negative) == 0 {
		return nil, ErrEmptyWordList
	}

	exclude := make(map[string]bool, len(positive)+len(negative))
	terms := make([]vector.Vector, 0, len(positive)+len(negative))
	for _, w := range positive {
		v, err := e.lookup(w)
		if err != nil {
			return nil, err
		}
		terms = append(terms, v)
		exclude[w] = true
	}
	for _, w := range negative {
		v, err := e.lookup(w)
		if err != nil {
			return nil, err
		}
		terms = append(terms, vector.Neg(v))
		exclude[w] = true
	}

	q := vector.Normalize(vector.Mean(terms))
	return head(e.rank(q, exclude), n), nil
}

// SimilaritiesOfDifferences compares the normalised difference vectors of
// every unordered combination of distinct pairs. The result is a
// "Pair1, Pair2, Alignment" table.
func (e *Embedding) SimilaritiesOfDifferences(pairs []WordPair) (*table.Table, error) {
	diffs, err := e.DifferenceVectors(pairs, true)
	if err != nil {
		return nil, err
	}
	t := table.New("Pair1", "Pair2", "Alignment")
	for i := range pairs {
		for j := i; j < len(pairs); j++ {
			if pairs[i] == pairs[j] {
				continue
			}
			t.Append(pairs[i].String(), pairs[j].String(), vector.Dot(diffs[i], diffs[j]))
		}
	}
	return t, nil
}

// WordsClosestToPrincipalComponents lists, for each of the first nComponents
// principal components of words, the n nearest vocabulary words. A nil words
// slice uses the whole vocabulary. Columns come in pairs: princ_compK and
// princ_compK_sim.
func (e *Embedding) WordsClosestToPrincipalComponents(words []string, nComponents, n int) (*table.Table, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	if words == nil {
		words, _ = e.Vocab(0)
	}
	comps, err := e.PrincipalComponents(words, nComponents, true)
	if err != nil {
		return nil, err
	}

	cols := make([]string, 0, 2*len(comps))
	neighbors := make([][]Neighbor, len(comps))
	for k, c := range comps {
		label := fmt.Sprintf("princ_comp%d", k+1)
		cols = append(cols, label, label+"_sim")
		neighbors[k] = head(e.rank(c, nil), n)
	}

	t := table.New(cols...)
	for r := 0; r < min(n, e.VocabSize()); r++ {
		row := make([]any, 0, len(cols))
		for k := range comps {
			row = append(row, neighbors[k][r].Word, neighbors[k][r].Similarity)
		}
		t.Append(row...)
	}
	return t, nil
}
