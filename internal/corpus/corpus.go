// Package corpus holds tokenised training text and answers frequency and
// context questions about it.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrLoad is returned (wrapped) when a corpus file cannot be read.
var ErrLoad = errors.New("failed to load training data")

// MaxLineCapacity is the maximum length of one sentence line.
// Some corpora put whole documents on a single line.
const MaxLineCapacity = 16 * 1024 * 1024

// Corpus is an ordered list of sentences, each an ordered list of tokens.
// It is read-only after construction.
type Corpus struct {
	sentences [][]string
	counts    map[string]int
	order     []string // distinct tokens in first-occurrence order
	size      int
}

// WordCount is a token with its number of occurrences.
type WordCount struct {
	Word  string
	Count int
}

// FromSentences builds a corpus from already tokenised sentences.
func FromSentences(sentences [][]string) *Corpus {
	c := &Corpus{
		sentences: sentences,
		counts:    make(map[string]int),
	}
	for _, sentence := range sentences {
		for _, tok := range sentence {
			if c.counts[tok] == 0 {
				c.order = append(c.order, tok)
			}
			c.counts[tok]++
			c.size++
		}
	}
	return c
}

// Read tokenises r on whitespace, one sentence per line.
// Blank lines become empty sentences.
func Read(r io.Reader) (*Corpus, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, MaxLineCapacity)

	var sentences [][]string
	for scanner.Scan() {
		sentences = append(sentences, strings.Fields(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading sentences: %w", err)
	}
	return FromSentences(sentences), nil
}

// Load reads a corpus file. Files ending in .pdf have their text extracted
// first; everything else is read as plain text.
func Load(path string) (*Corpus, error) {
	var (
		c   *Corpus
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		c, err = loadPDF(path)
	} else {
		c, err = loadText(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	return c, nil
}

func loadText(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Sentences returns the number of sentences.
func (c *Corpus) Sentences() int {
	return len(c.sentences)
}

// Frequency returns how often word occurs as an exact token.
func (c *Corpus) Frequency(word string) int {
	return c.counts[word]
}

// Size returns the total number of tokens.
func (c *Corpus) Size() int {
	return c.size
}

// Context returns, for every occurrence of word, the tokens within n positions
// on either side joined by single spaces. Windows are clipped at sentence
// bounds and never span sentences.
func (c *Corpus) Context(word string, n int) []string {
	if n < 0 {
		n = 0
	}
	var out []string
	for _, sentence := range c.sentences {
		for i, tok := range sentence {
			if tok != word {
				continue
			}
			start := max(i-n, 0)
			stop := min(i+n, len(sentence)-1)
			out = append(out, strings.Join(sentence[start:stop+1], " "))
		}
	}
	return out
}

// Ranked returns distinct tokens by descending frequency, ties in order of
// first occurrence.
//
// firstN > 0 keeps the N most frequent tokens, firstN < 0 keeps the |N| least
// frequent, and 0 keeps all. moreFrequentThan > 0 then keeps only tokens with
// a strictly greater count; 0 disables the filter.
func (c *Corpus) Ranked(firstN, moreFrequentThan int) []WordCount {
	ranked := make([]WordCount, len(c.order))
	for i, w := range c.order {
		ranked[i] = WordCount{Word: w, Count: c.counts[w]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	switch {
	case firstN > 0 && firstN < len(ranked):
		ranked = ranked[:firstN]
	case firstN < 0 && -firstN < len(ranked):
		ranked = ranked[len(ranked)+firstN:]
	}

	if moreFrequentThan > 0 {
		kept := ranked[:0:0]
		for _, wc := range ranked {
			if wc.Count > moreFrequentThan {
				kept = append(kept, wc)
			}
		}
		ranked = kept
	}
	return ranked
}
