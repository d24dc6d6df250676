package embedding

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/matsen/embeddings/internal/vector"
)

// WordPair is an ordered pair of words. Its difference vector points from
// Second to First.
type WordPair struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

// String returns the "first - second" label used in result tables.
func (p WordPair) String() string {
	return p.First + " - " + p.Second
}

// Vector returns the unit vector of word.
func (e *Embedding) Vector(word string) (vector.Vector, error) {
	v, err := e.lookup(word)
	if err != nil {
		return nil, err
	}
	return v.Clone(), nil
}

// Vectors returns the unit vector of every word. The first unknown word
// aborts.
func (e *Embedding) Vectors(words []string) ([]vector.Vector, error) {
	out := make([]vector.Vector, len(words))
	for i, w := range words {
		v, err := e.Vector(w)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// DifferenceVector returns unit(w1) - unit(w2), optionally normalised.
// It fails with ErrDegenerate if the two unit vectors coincide.
func (e *Embedding) DifferenceVector(w1, w2 string, normalize bool) (vector.Vector, error) {
	v1, err := e.lookup(w1)
	if err != nil {
		return nil, err
	}
	v2, err := e.lookup(w2)
	if err != nil {
		return nil, err
	}
	if vector.AllClose(v1, v2, vector.DegenerateTolerance) {
		return nil, fmt.Errorf("%w: %q and %q", ErrDegenerate, w1, w2)
	}
	diff := vector.Sub(v1, v2)
	if normalize {
		diff = vector.Normalize(diff)
	}
	return diff, nil
}

// DifferenceVectors applies DifferenceVector to every pair.
func (e *Embedding) DifferenceVectors(pairs []WordPair, normalize bool) ([]vector.Vector, error) {
	out := make([]vector.Vector, len(pairs))
	for i, p := range pairs {
		d, err := e.DifferenceVector(p.First, p.Second, normalize)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// CentroidOfVectors returns the mean of the words' unit vectors, optionally
// normalised.
func (e *Embedding) CentroidOfVectors(words []string, normalize bool) (vector.Vector, error) {
	if len(words) == 0 {
		return nil, ErrEmptyWordList
	}
	vecs, err := e.lookupAll(words)
	if err != nil {
		return nil, err
	}
	c := vector.Mean(vecs)
	if normalize {
		c = vector.Normalize(c)
	}
	return c, nil
}

// CentroidOfDifferenceVectors returns the mean difference vector of pairs.
func (e *Embedding) CentroidOfDifferenceVectors(pairs []WordPair, normalizeDiffs, normalizeCentroid bool) (vector.Vector, error) {
	if len(pairs) == 0 {
		return nil, ErrEmptyWordList
	}
	diffs, err := e.DifferenceVectors(pairs, normalizeDiffs)
	if err != nil {
		return nil, err
	}
	c := vector.Mean(diffs)
	if normalizeCentroid {
		c = vector.Normalize(c)
	}
	return c, nil
}

// pca fits a centred, unscaled PCA to the unit vectors of words.
type pca struct {
	data  *mat.Dense // one row per word
	axes  *mat.Dense // dim x k, one column per component
	vars  []float64
	means []float64
}

func (e *Embedding) fitPCA(words []string, nComponents int) (*pca, error) {
	if len(words) == 0 {
		return nil, ErrEmptyWordList
	}
	if len(words) < 2 {
		return nil, fmt.Errorf("%w: principal components need at least 2 words", ErrInvalidArgument)
	}
	if limit := min(len(words), e.dim); nComponents < 1 || nComponents > limit {
		return nil, fmt.Errorf("%w: n_components must be between 1 and %d, got %d", ErrInvalidArgument, limit, nComponents)
	}

	vecs, err := e.lookupAll(words)
	if err != nil {
		return nil, err
	}
	data := mat.NewDense(len(vecs), e.dim, nil)
	for i, v := range vecs {
		data.SetRow(i, v)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(data, nil); !ok {
		return nil, fmt.Errorf("%w: principal component decomposition failed", ErrInvalidArgument)
	}

	var full mat.Dense
	pc.VectorsTo(&full)
	vars := pc.VarsTo(nil)

	axes := mat.NewDense(e.dim, nComponents, nil)
	axes.Copy(full.Slice(0, e.dim, 0, nComponents))
	for k := 0; k < nComponents; k++ {
		orientColumn(axes, k)
	}

	means := make([]float64, e.dim)
	for j := range means {
		means[j] = stat.Mean(mat.Col(nil, j, data), nil)
	}
	return &pca{data: data, axes: axes, vars: vars[:nComponents], means: means}, nil
}

// orientColumn flips column k so that its largest-magnitude coordinate is
// positive. This makes component signs deterministic.
func orientColumn(m *mat.Dense, k int) {
	rows, _ := m.Dims()
	best, bestAbs := 0.0, -1.0
	for i := 0; i < rows; i++ {
		if a := math.Abs(m.At(i, k)); a > bestAbs {
			best, bestAbs = m.At(i, k), a
		}
	}
	if best < 0 {
		for i := 0; i < rows; i++ {
			m.Set(i, k, -m.At(i, k))
		}
	}
}

func (p *pca) component(k int) vector.Vector {
	return vector.Vector(mat.Col(nil, k, p.axes))
}

// PrincipalComponents returns the first nComponents principal axes of the
// words' unit vectors, as directions in embedding space. nComponents must be
// in 1..min(len(words), Dim()).
func (e *Embedding) PrincipalComponents(words []string, nComponents int, normalize bool) ([]vector.Vector, error) {
	p, err := e.fitPCA(words, nComponents)
	if err != nil {
		return nil, err
	}
	out := make([]vector.Vector, nComponents)
	for k := range out {
		out[k] = p.component(k)
		if normalize {
			out[k] = vector.Normalize(out[k])
		}
	}
	return out, nil
}

// PrincipalComponentsVariance returns the variance explained by each of the
// first nComponents components (divisor n-1).
func (e *Embedding) PrincipalComponentsVariance(words []string, nComponents int) ([]float64, error) {
	p, err := e.fitPCA(words, nComponents)
	if err != nil {
		return nil, err
	}
	return append([]float64(nil), p.vars...), nil
}

// PCAPoints projects the centred unit vectors of words onto their first
// nComponents principal axes, one row per word.
func (e *Embedding) PCAPoints(words []string, nComponents int) ([][]float64, error) {
	p, err := e.fitPCA(words, nComponents)
	if err != nil {
		return nil, err
	}
	n, _ := p.data.Dims()
	centred := mat.DenseCopyOf(p.data)
	for i := 0; i < n; i++ {
		for j, m := range p.means {
			centred.Set(i, j, centred.At(i, j)-m)
		}
	}

	var scores mat.Dense
	scores.Mul(centred, p.axes)

	out := make([][]float64, n)
	for i := range out {
		out[i] = mat.Row(nil, i, &scores)
	}
	return out, nil
}
