package embedding

import (
	"fmt"
	"math"

	"github.com/matsen/embeddings/internal/vector"
)

// Cluster diversity measures.
const (
	// DiversityCentroidLength is the squared length of the centroid of the
	// cluster's unit vectors: 1 for identical words, near 0 for scattered ones.
	DiversityCentroidLength = "centroid_length"

	// DiversityMMD is the squared maximum mean discrepancy between the
	// cluster's pairwise similarities and a uniform spread over [-1, 1].
	DiversityMMD = "mmd"
)

// DefaultBandwidth is the kernel width used for MMD and density plots.
const DefaultBandwidth = 0.1

// ClusterDiversity measures how spread out words are. bandwidth is only used
// by DiversityMMD.
func (e *Embedding) ClusterDiversity(words []string, method string, bandwidth float64) (float64, error) {
	switch method {
	case DiversityCentroidLength:
		c, err := e.CentroidOfVectors(words, false)
		if err != nil {
			return 0, err
		}
		return vector.Dot(c, c), nil

	case DiversityMMD:
		if bandwidth <= 0 {
			return 0, fmt.Errorf("%w: bandwidth must be positive, got %g", ErrInvalidArgument, bandwidth)
		}
		sims, err := e.PairwiseSimilarities(words)
		if err != nil {
			return 0, err
		}
		if len(sims) == 0 {
			return 0, fmt.Errorf("%w: diversity needs at least 2 words", ErrInvalidArgument)
		}
		return MMD2(sims, UniformSample(len(sims)), bandwidth), nil

	default:
		return 0, fmt.Errorf("%w: diversity method %q", ErrUnknownMethod, method)
	}
}

// PairwiseSimilarities returns the similarity of every unordered pair of
// distinct positions in words.
func (e *Embedding) PairwiseSimilarities(words []string) ([]float64, error) {
	vecs, err := e.lookupAll(words)
	if err != nil {
		return nil, err
	}
	var out []float64
	for i := range vecs {
		for j := i + 1; j < len(vecs); j++ {
			out = append(out, vector.Dot(vecs[i], vecs[j]))
		}
	}
	return out, nil
}

// UniformSample returns n evenly spaced midpoints of [-1, 1].
func UniformSample(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = -1 + (2*float64(i)+1)/float64(n)
	}
	return out
}

// MMD2 is the biased estimate of the squared maximum mean discrepancy
// between samples x and y under a Gaussian kernel of width bandwidth.
func MMD2(x, y []float64, bandwidth float64) float64 {
	k := func(a, b float64) float64 {
		d := a - b
		return math.Exp(-d * d / (2 * bandwidth * bandwidth))
	}
	mean := func(a, b []float64) float64 {
		var s float64
		for _, u := range a {
			for _, v := range b {
				s += k(u, v)
			}
		}
		return s / float64(len(a)*len(b))
	}
	return mean(x, x) + mean(y, y) - 2*mean(x, y)
}
