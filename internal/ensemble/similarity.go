package ensemble

import (
	"fmt"

	"github.com/matsen/embeddings/internal/diag"
	"github.com/matsen/embeddings/internal/embedding"
	"github.com/matsen/embeddings/internal/stats"
	"github.com/matsen/embeddings/internal/table"
)

// Column names of ensemble tables.
const (
	ColMean = "MEAN"
	ColStd  = "STD"
)

// InVocab returns a one-row table telling which members know word. MEAN is
// the fraction of members that do.
func (en *Ensemble) InVocab(word string) *table.Table {
	t := table.New(append(append([]string{""}, en.Labels()...), ColMean)...)
	row := []any{"in_vocab"}
	present := 0
	for _, m := range en.members {
		ok := m.InVocab(word)
		if ok {
			present++
		}
		row = append(row, ok)
	}
	row = append(row, float64(present)/float64(len(en.members)))
	t.Append(row...)
	return t
}

// memberSimilarities scores a pair in every member. Members lacking either
// word get a nil cell.
func (en *Ensemble) memberSimilarities(p embedding.WordPair) (cells []any, scores []float64, err error) {
	cells = make([]any, len(en.members))
	for i, m := range en.members {
		if !m.InVocab(p.First) || !m.InVocab(p.Second) {
			continue
		}
		s, err := m.Similarity(p.First, p.Second)
		if err != nil {
			return nil, nil, err
		}
		cells[i] = s
		scores = append(scores, s)
	}
	return cells, scores, nil
}

func summaryCells(scores []float64) (mean, std any) {
	s, ok := stats.Summarize(scores)
	if !ok {
		return nil, nil
	}
	return s.Mean, s.Std
}

func (en *Ensemble) notePartialPair(p embedding.WordPair) {
	_, missing := en.membersWith(p.First, p.Second)
	if len(missing) == 0 {
		return
	}
	en.sink.Notify(diag.Notice{
		Kind:    diag.KindPairPartial,
		Message: fmt.Sprintf("pair %q not in vocab of %v; those embeddings are skipped", p.String(), labelsOf(missing)),
		Words:   []string{p.First, p.Second},
		Members: missing,
	})
}

// Similarity returns a one-row table with the similarity of w1 and w2 in
// every member plus MEAN and STD over the members that know both words.
func (en *Ensemble) Similarity(w1, w2 string) (*table.Table, error) {
	p := embedding.WordPair{First: w1, Second: w2}
	cells, scores, err := en.memberSimilarities(p)
	if err != nil {
		return nil, err
	}
	en.notePartialPair(p)
	if len(scores) == 0 {
		en.sink.Notify(diag.Notice{
			Kind:    diag.KindNoContributions,
			Message: fmt.Sprintf("no embedding knows both %q and %q", w1, w2),
			Words:   []string{w1, w2},
		})
	}

	t := table.New(append(append([]string{""}, en.Labels()...), ColMean, ColStd)...)
	mean, std := summaryCells(scores)
	row := append([]any{"similarity"}, cells...)
	t.Append(append(row, mean, std)...)
	return t, nil
}

// Similarities scores every pair in every member. Pairs no member can score
// are dropped. Rows are sorted by ascending MEAN.
func (en *Ensemble) Similarities(pairs []embedding.WordPair) (*table.Table, error) {
	cols := []string{"Word1", "Word2"}
	for _, l := range en.Labels() {
		cols = append(cols, "Sim_"+l)
	}
	cols = append(cols, ColMean, ColStd)
	if en.corpus != nil {
		cols = append(cols, "Word1_freq", "Word2_freq")
	}
	t := table.New(cols...)

	for _, p := range pairs {
		cells, scores, err := en.memberSimilarities(p)
		if err != nil {
			return nil, err
		}
		if len(scores) == 0 {
			en.sink.Notify(diag.Notice{
				Kind:    diag.KindPairDropped,
				Message: fmt.Sprintf("pair %q is not in the vocab of any embedding and was removed", p.String()),
				Words:   []string{p.First, p.Second},
			})
			continue
		}
		en.notePartialPair(p)

		mean, std := summaryCells(scores)
		row := append([]any{p.First, p.Second}, cells...)
		row = append(row, mean, std)
		if en.corpus != nil {
			row = append(row, en.corpus.Frequency(p.First), en.corpus.Frequency(p.Second))
		}
		t.Append(row...)
	}
	t.SortAsc(ColMean)
	return t, nil
}
