package embedding

import (
	"fmt"
	"math"

	"github.com/matsen/embeddings/internal/vector"
)

// DefaultScaling is the tanh scaling used by nonlinear similarity matrices.
const DefaultScaling = 2.0

// SimilarityMatrix returns the word-by-word similarity matrix. With nonlinear
// set, every entry becomes tanh(scaling * similarity) to stretch small
// differences.
func (e *Embedding) SimilarityMatrix(words []string, nonlinear bool, scaling float64) ([][]float64, error) {
	vecs, err := e.lookupAll(words)
	if err != nil {
		return nil, err
	}
	m := make([][]float64, len(vecs))
	for i := range vecs {
		m[i] = make([]float64, len(vecs))
		for j := range vecs {
			s := vector.Dot(vecs[i], vecs[j])
			if nonlinear {
				s = math.Tanh(scaling * s)
			}
			m[i][j] = s
		}
	}
	return m, nil
}

// ColourArrayOptions selects extra rows for ColourArray.
type ColourArrayOptions struct {
	IncludeCentroid     bool
	PrincipalComponents int  // number of component rows; 0 for none
	IncludeDifferences  bool // difference vectors of all ordered pairs of distinct words
}

// ColourArray returns labelled vectors for drawing as a heatmap: the unit
// vector of every word followed by the extra rows selected in opts.
func (e *Embedding) ColourArray(words []string, opts ColourArrayOptions) ([]string, [][]float64, error) {
	vecs, err := e.Vectors(words)
	if err != nil {
		return nil, nil, err
	}
	labels := append([]string(nil), words...)
	rows := make([][]float64, 0, len(vecs))
	for _, v := range vecs {
		rows = append(rows, v)
	}

	if opts.IncludeCentroid {
		c, err := e.CentroidOfVectors(words, false)
		if err != nil {
			return nil, nil, err
		}
		labels = append(labels, "centroid")
		rows = append(rows, c)
	}

	if opts.PrincipalComponents > 0 {
		comps, err := e.PrincipalComponents(words, opts.PrincipalComponents, false)
		if err != nil {
			return nil, nil, err
		}
		for k, c := range comps {
			labels = append(labels, fmt.Sprintf("princ_comp%d", k+1))
			rows = append(rows, c)
		}
	}

	if opts.IncludeDifferences {
		for _, a := range words {
			for _, b := range words {
				if a == b {
					continue
				}
				d, err := e.DifferenceVector(a, b, false)
				if err != nil {
					return nil, nil, err
				}
				labels = append(labels, a+"-"+b)
				rows = append(rows, d)
			}
		}
	}
	return labels, rows, nil
}
