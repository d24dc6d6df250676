package corpus

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func testCorpus() *Corpus {
	return FromSentences([][]string{
		{"the", "king", "rules", "the", "land"},
		{"a", "queen", "rules"},
		{"king"},
	})
}

func TestFrequencyAndSize(t *testing.T) {
	c := testCorpus()
	tests := []struct {
		word string
		want int
	}{
		{"the", 2},
		{"king", 2},
		{"rules", 2},
		{"queen", 1},
		{"King", 0},
		{"absent", 0},
	}
	for _, tt := range tests {
		if got := c.Frequency(tt.word); got != tt.want {
			t.Errorf("Frequency(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
	if got := c.Size(); got != 9 {
		t.Errorf("Size() = %d, want 9", got)
	}
	if got := c.Sentences(); got != 3 {
		t.Errorf("Sentences() = %d, want 3", got)
	}
}

func TestContext(t *testing.T) {
	c := testCorpus()
	tests := []struct {
		name string
		word string
		n    int
		want []string
	}{
		{
			name: "clipped at both sentence bounds",
			word: "king",
			n:    1,
			want: []string{"the king rules", "king"},
		},
		{
			name: "window larger than sentence",
			word: "queen",
			n:    5,
			want: []string{"a queen rules"},
		},
		{
			name: "every occurrence is reported",
			word: "the",
			n:    1,
			want: []string{"the king", "rules the land"},
		},
		{
			name: "zero window",
			word: "rules",
			n:    0,
			want: []string{"rules", "rules"},
		},
		{
			name: "absent word",
			word: "prince",
			n:    3,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Context(tt.word, tt.n)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Context(%q, %d) = %q, want %q", tt.word, tt.n, got, tt.want)
			}
		})
	}
}

func TestRanked(t *testing.T) {
	c := FromSentences([][]string{
		{"b", "a", "a", "c", "a"},
		{"c", "b", "d"},
	})
	// counts: a=3, b=2, c=2, d=1; b precedes c by first occurrence.
	words := func(wcs []WordCount) []string {
		out := make([]string, len(wcs))
		for i, wc := range wcs {
			out[i] = wc.Word
		}
		return out
	}

	tests := []struct {
		name             string
		firstN           int
		moreFrequentThan int
		want             []string
	}{
		{"all", 0, 0, []string{"a", "b", "c", "d"}},
		{"first two", 2, 0, []string{"a", "b"}},
		{"last two", -2, 0, []string{"c", "d"}},
		{"first N beyond vocabulary", 10, 0, []string{"a", "b", "c", "d"}},
		{"threshold", 0, 1, []string{"a", "b", "c"}},
		{"threshold is strict", 0, 2, []string{"a"}},
		{"first N then threshold", 3, 2, []string{"a"}},
		{"nothing passes", 0, 5, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := words(c.Ranked(tt.firstN, tt.moreFrequentThan))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Ranked(%d, %d) = %v, want %v", tt.firstN, tt.moreFrequentThan, got, tt.want)
			}
		})
	}

	if got := c.Ranked(1, 0)[0].Count; got != 3 {
		t.Errorf("Ranked(1, 0)[0].Count = %d, want 3", got)
	}
}

func TestRead(t *testing.T) {
	c, err := Read(strings.NewReader("  the king \n\nqueen\tand king\n"))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if c.Sentences() != 3 {
		t.Errorf("Sentences() = %d, want 3", c.Sentences())
	}
	if c.Frequency("king") != 2 {
		t.Errorf("Frequency(king) = %d, want 2", c.Frequency("king"))
	}
	if c.Size() != 5 {
		t.Errorf("Size() = %d, want 5", c.Size())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.txt")
	if err := os.WriteFile(path, []byte("the king\nthe queen\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Frequency("the") != 2 {
		t.Errorf("Frequency(the) = %d, want 2", c.Frequency("the"))
	}

	if _, err := Load(filepath.Join(dir, "missing.txt")); !errors.Is(err, ErrLoad) {
		t.Errorf("Load(missing) error = %v, want ErrLoad", err)
	}

	bogus := filepath.Join(dir, "bogus.pdf")
	if err := os.WriteFile(bogus, []byte("not a pdf"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bogus); !errors.Is(err, ErrLoad) {
		t.Errorf("Load(bogus.pdf) error = %v, want ErrLoad", err)
	}
}

func TestReadPDF_Invalid(t *testing.T) {
	data := []byte("not a pdf")
	if _, err := ReadPDF(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Error("ReadPDF() on non-PDF input expected error")
	}
}
