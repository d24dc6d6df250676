package embedding

import (
	"fmt"

	"github.com/matsen/embeddings/internal/diag"
	"github.com/matsen/embeddings/internal/dimension"
	"github.com/matsen/embeddings/internal/table"
	"github.com/matsen/embeddings/internal/vector"
)

// Column names of projection tables.
const (
	ColTestWord   = "test_word"
	ColTest       = "test"
	ColDimension  = "dimension"
	ColProjection = "projection"
	ColTestFreq   = "test_freq"
)

// BipolarOptions controls how a bipolar axis is built from its two centroids.
type BipolarOptions struct {
	NormalizeBefore    bool // normalise the difference of the centroids
	NormalizeCentroids bool // normalise each centroid before differencing
}

// DefaultBipolarOptions are the single-embedding defaults.
func DefaultBipolarOptions() BipolarOptions {
	return BipolarOptions{NormalizeBefore: false, NormalizeCentroids: true}
}

// Projection returns the projection of test onto the normalised difference
// vector of pair. Positive means closer to pair.First, negative closer to
// pair.Second.
func (e *Embedding) Projection(test string, pair WordPair) (float64, error) {
	diff, err := e.DifferenceVector(pair.First, pair.Second, true)
	if err != nil {
		return 0, err
	}
	v, err := e.lookup(test)
	if err != nil {
		return 0, err
	}
	return vector.Dot(v, diff), nil
}

// Projections projects every test word onto every pair, in cross-product
// order. A test_freq column is added when training data is attached.
func (e *Embedding) Projections(tests []string, pairs []WordPair) (*table.Table, error) {
	cols := []string{ColTest, ColDimension, ColProjection}
	if e.corpus != nil {
		cols = append(cols, ColTestFreq)
	}
	t := table.New(cols...)
	for _, w := range tests {
		for _, p := range pairs {
			proj, err := e.Projection(w, p)
			if err != nil {
				return nil, err
			}
			if e.corpus != nil {
				t.Append(w, p.String(), proj, e.corpus.Frequency(w))
			} else {
				t.Append(w, p.String(), proj)
			}
		}
	}
	return t, nil
}

// BipolarAxis returns centroid(left) - centroid(right) built according to opts.
func (e *Embedding) BipolarAxis(left, right []string, opts BipolarOptions) (vector.Vector, error) {
	cl, err := e.CentroidOfVectors(left, opts.NormalizeCentroids)
	if err != nil {
		return nil, err
	}
	cr, err := e.CentroidOfVectors(right, opts.NormalizeCentroids)
	if err != nil {
		return nil, err
	}
	diff := vector.Sub(cl, cr)
	if opts.NormalizeBefore {
		diff = vector.Normalize(diff)
	}
	return diff, nil
}

// UnipolarAxis returns the centroid of words, optionally normalised.
func (e *Embedding) UnipolarAxis(words []string, normalize bool) (vector.Vector, error) {
	return e.CentroidOfVectors(words, normalize)
}

// ProjectionsToBipolarDimensions scores every test word against every
// bipolar dimension. Any unipolar dimension is an error.
func (e *Embedding) ProjectionsToBipolarDimensions(tests []string, dims dimension.Set, opts BipolarOptions) (*table.Table, error) {
	if err := dims.RequireKind(dimension.Bipolar); err != nil {
		return nil, err
	}
	axes := make([]vector.Vector, len(dims))
	for i, d := range dims {
		clusters := d.Clusters()
		axis, err := e.BipolarAxis(clusters[0], clusters[1], opts)
		if err != nil {
			return nil, fmt.Errorf("building dimension %q: %w", d.Name(), err)
		}
		axes[i] = axis
	}
	return e.projectOntoAxes(tests, dims.Names(), axes)
}

// ProjectionsToUnipolarDimensions scores every test word against the centroid
// of every unipolar dimension. Any bipolar dimension is an error.
func (e *Embedding) ProjectionsToUnipolarDimensions(tests []string, dims dimension.Set, normalizeBefore bool) (*table.Table, error) {
	if err := dims.RequireKind(dimension.Unipolar); err != nil {
		return nil, err
	}
	axes := make([]vector.Vector, len(dims))
	for i, d := range dims {
		axis, err := e.UnipolarAxis(d.Words(), normalizeBefore)
		if err != nil {
			return nil, fmt.Errorf("building dimension %q: %w", d.Name(), err)
		}
		axes[i] = axis
	}
	return e.projectOntoAxes(tests, dims.Names(), axes)
}

// projectOntoAxes builds a "test_word, <labels...>" table sorted descending
// by the score columns.
func (e *Embedding) projectOntoAxes(tests, labels []string, axes []vector.Vector) (*table.Table, error) {
	t := table.New(append([]string{ColTestWord}, labels...)...)
	for _, w := range tests {
		v, err := e.lookup(w)
		if err != nil {
			return nil, err
		}
		row := make([]any, 0, len(axes)+1)
		row = append(row, w)
		for _, axis := range axes {
			row = append(row, vector.Dot(v, axis))
		}
		t.Append(row...)
	}
	t.SortDesc(labels...)
	return t, nil
}

// ComponentNeighbors describes one principal component of a dimension by the
// vocabulary words nearest to it.
type ComponentNeighbors struct {
	Dimension string     `json:"dimension"`
	Component int        `json:"component"`
	Label     string     `json:"label"`
	Neighbors []Neighbor `json:"neighbors"`
}

// ComponentLabel names the k-th (1-based) component of a dimension.
func ComponentLabel(dim string, k int) string {
	return fmt.Sprintf("%s-P%d", dim, k)
}

// ProjectionsToPrincipalComponents projects every test word onto the first
// nComponents normalised principal components of each unipolar dimension.
// The n words nearest each component are returned and also sent to the
// diagnostics sink, to help interpret the axes.
func (e *Embedding) ProjectionsToPrincipalComponents(tests []string, dims dimension.Set, nComponents, n int) (*table.Table, []ComponentNeighbors, error) {
	if err := dims.RequireKind(dimension.Unipolar); err != nil {
		return nil, nil, err
	}

	var (
		labels    []string
		axes      []vector.Vector
		described []ComponentNeighbors
	)
	for _, d := range dims {
		comps, err := e.PrincipalComponents(d.Words(), nComponents, true)
		if err != nil {
			return nil, nil, fmt.Errorf("building dimension %q: %w", d.Name(), err)
		}
		for k, c := range comps {
			label := ComponentLabel(d.Name(), k+1)
			nearest, err := e.MostSimilarByVector(c, n)
			if err != nil {
				return nil, nil, err
			}
			cn := ComponentNeighbors{Dimension: d.Name(), Component: k + 1, Label: label, Neighbors: nearest}
			described = append(described, cn)
			e.sink.Notify(diag.Notice{
				Kind:      diag.KindComponentNeighbors,
				Message:   fmt.Sprintf("%s is similar to: %s", label, neighborWords(nearest)),
				Dimension: d.Name(),
				Words:     neighborWords(nearest),
			})

			labels = append(labels, label)
			axes = append(axes, c)
		}
	}

	t, err := e.projectOntoAxes(tests, labels, axes)
	if err != nil {
		return nil, nil, err
	}
	return t, described, nil
}

func neighborWords(ns []Neighbor) []string {
	out := make([]string, len(ns))
	for i, nb := range ns {
		out[i] = nb.Word
	}
	return out
}
