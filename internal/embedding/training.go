package embedding

import (
	"github.com/matsen/embeddings/internal/table"
)

// FrequencyInTrainingData counts exact-token occurrences of word.
func (e *Embedding) FrequencyInTrainingData(word string) (int, error) {
	c, err := e.TrainingData()
	if err != nil {
		return 0, err
	}
	return c.Frequency(word), nil
}

// ContextInTrainingData returns the n-token window around every occurrence
// of word, clipped at sentence bounds.
func (e *Embedding) ContextInTrainingData(word string, n int) ([]string, error) {
	c, err := e.TrainingData()
	if err != nil {
		return nil, err
	}
	return c.Context(word, n), nil
}

// SortByFrequencyInTrainingData returns a "Word, Frequency" table of words,
// most frequent first. Equal frequencies keep input order.
func (e *Embedding) SortByFrequencyInTrainingData(words []string) (*table.Table, error) {
	c, err := e.TrainingData()
	if err != nil {
		return nil, err
	}
	t := table.New("Word", "Frequency")
	for _, w := range words {
		t.Append(w, c.Frequency(w))
	}
	t.SortDesc("Frequency")
	return t, nil
}

// VocabSortedByFrequencyInTrainingData ranks corpus tokens by frequency.
// firstN > 0 keeps the top N, firstN < 0 the bottom |N|; moreFrequentThan > 0
// keeps only counts strictly above it. Zero disables either filter.
func (e *Embedding) VocabSortedByFrequencyInTrainingData(firstN, moreFrequentThan int) (*table.Table, error) {
	c, err := e.TrainingData()
	if err != nil {
		return nil, err
	}
	t := table.New("Word", "Frequency")
	for _, wc := range c.Ranked(firstN, moreFrequentThan) {
		t.Append(wc.Word, wc.Count)
	}
	return t, nil
}

// TrainingDataSize returns the number of tokens in the training data.
func (e *Embedding) TrainingDataSize() (int, error) {
	c, err := e.TrainingData()
	if err != nil {
		return 0, err
	}
	return c.Size(), nil
}
