package main

import (
	"fmt"
	"strings"

	"github.com/matsen/embeddings/internal/dimension"
	"github.com/matsen/embeddings/internal/embedding"
)

// parsePair reads "first:second".
func parsePair(s string) (embedding.WordPair, error) {
	first, second, ok := strings.Cut(s, ":")
	first, second = strings.TrimSpace(first), strings.TrimSpace(second)
	if !ok || first == "" || second == "" || strings.Contains(second, ":") {
		return embedding.WordPair{}, fmt.Errorf("%w: pair %q must look like first:second", embedding.ErrInvalidArgument, s)
	}
	return embedding.WordPair{First: first, Second: second}, nil
}

func parsePairs(args []string) ([]embedding.WordPair, error) {
	pairs := make([]embedding.WordPair, 0, len(args))
	for _, a := range args {
		p, err := parsePair(a)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// splitWords flattens comma-separated lists: ["a,b", "c"] -> [a b c].
func splitWords(args []string) []string {
	var out []string
	for _, a := range args {
		for _, w := range strings.Split(a, ",") {
			if w = strings.TrimSpace(w); w != "" {
				out = append(out, w)
			}
		}
	}
	return out
}

// loadDimensions builds a set from --dim specs followed by the dimensions
// of file, if given.
func loadDimensions(specs []string, file string) (dimension.Set, error) {
	var dims []dimension.Dimension
	for _, s := range specs {
		d, err := dimension.Parse(s)
		if err != nil {
			return nil, err
		}
		dims = append(dims, d)
	}
	if file != "" {
		fromFile, err := dimension.LoadFile(file)
		if err != nil {
			return nil, err
		}
		dims = append(dims, fromFile...)
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("%w: no dimensions given; use --dim or --dims", dimension.ErrInvalidSpec)
	}
	return dimension.NewSet(dims...)
}

// selectDimensions picks the named dimensions from dims. No names keeps all.
func selectDimensions(dims dimension.Set, names []string) (dimension.Set, error) {
	if len(names) == 0 {
		return dims, nil
	}
	picked := make([]dimension.Dimension, 0, len(names))
	for _, name := range names {
		d, ok := dims.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: no dimension named %q", dimension.ErrInvalidSpec, name)
		}
		picked = append(picked, d)
	}
	return dimension.NewSet(picked...)
}
