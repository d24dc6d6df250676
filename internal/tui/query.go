package tui

import (
	"fmt"
	"strings"
)

// QueryKind selects the operation an input line runs.
type QueryKind int

const (
	QueryMostSimilar QueryKind = iota
	QueryLeastSimilar
	QueryAnalogy
	QuerySimilarity
)

// Query is a parsed input line.
//
//	king               most similar to king
//	!king              least similar to king
//	king - man + woman analogy
//	king , queen       similarity of two words
type Query struct {
	Kind     QueryKind
	Words    []string // Positive words; both words for QuerySimilarity
	Negative []string
}

// ParseQuery parses one input line.
func ParseQuery(line string) (Query, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Query{}, fmt.Errorf("empty query")
	}

	if a, b, ok := strings.Cut(line, ","); ok {
		a, b = strings.TrimSpace(a), strings.TrimSpace(b)
		if a == "" || b == "" || strings.Contains(b, ",") {
			return Query{}, fmt.Errorf("similarity takes exactly two words: %q", line)
		}
		return Query{Kind: QuerySimilarity, Words: []string{a, b}}, nil
	}

	if word, ok := strings.CutPrefix(line, "!"); ok {
		word = strings.TrimSpace(word)
		if word == "" || strings.ContainsAny(word, " +") {
			return Query{}, fmt.Errorf("least similar takes one word: %q", line)
		}
		return Query{Kind: QueryLeastSimilar, Words: []string{word}}, nil
	}

	fields := strings.Fields(line)
	if len(fields) == 1 {
		return Query{Kind: QueryMostSimilar, Words: fields}, nil
	}
	return parseAnalogy(fields)
}

// parseAnalogy reads "a - b + c". The first word is positive; operators
// must be separated from words by spaces.
func parseAnalogy(fields []string) (Query, error) {
	q := Query{Kind: QueryAnalogy}
	sign := "+"
	expectWord := true
	for _, f := range fields {
		if expectWord {
			if f == "+" || f == "-" {
				return Query{}, fmt.Errorf("expected a word, got %q", f)
			}
			if sign == "+" {
				q.Words = append(q.Words, f)
			} else {
				q.Negative = append(q.Negative, f)
			}
			expectWord = false
			continue
		}
		if f != "+" && f != "-" {
			return Query{}, fmt.Errorf("expected + or -, got %q", f)
		}
		sign = f
		expectWord = true
	}
	if expectWord {
		return Query{}, fmt.Errorf("query ends with an operator")
	}
	return q, nil
}
