package ensemble

import (
	"fmt"

	"github.com/matsen/embeddings/internal/diag"
	"github.com/matsen/embeddings/internal/dimension"
	"github.com/matsen/embeddings/internal/embedding"
	"github.com/matsen/embeddings/internal/table"
	"github.com/matsen/embeddings/internal/vector"
)

// StdSuffix marks the standard-deviation column that follows each dimension.
const StdSuffix = "(std)"

// DefaultBipolarOptions are the ensemble defaults: the centroid difference is
// normalised, the centroids themselves are not.
func DefaultBipolarOptions() embedding.BipolarOptions {
	return embedding.BipolarOptions{NormalizeBefore: true, NormalizeCentroids: false}
}

// axisFunc builds a dimension axis in one member from clusters already
// filtered to that member's vocabulary.
type axisFunc func(m *embedding.Embedding, clusters [][]string) (vector.Vector, error)

// ProjectionsToBipolarDimensions averages the bipolar projections of every
// test word over the members able to compute them.
func (en *Ensemble) ProjectionsToBipolarDimensions(tests []string, dims dimension.Set, opts embedding.BipolarOptions) (*table.Table, error) {
	if err := dims.RequireKind(dimension.Bipolar); err != nil {
		return nil, err
	}
	return en.project(tests, dims, func(m *embedding.Embedding, c [][]string) (vector.Vector, error) {
		return m.BipolarAxis(c[0], c[1], opts)
	})
}

// ProjectionsToUnipolarDimensions averages the unipolar projections of every
// test word over the members able to compute them.
func (en *Ensemble) ProjectionsToUnipolarDimensions(tests []string, dims dimension.Set, normalizeBefore bool) (*table.Table, error) {
	if err := dims.RequireKind(dimension.Unipolar); err != nil {
		return nil, err
	}
	return en.project(tests, dims, func(m *embedding.Embedding, c [][]string) (vector.Vector, error) {
		return m.UnipolarAxis(c[0], normalizeBefore)
	})
}

func clusterName(d dimension.Dimension, i int) string {
	if d.Kind() != dimension.Bipolar {
		return ""
	}
	if i == 0 {
		return "left"
	}
	return "right"
}

// memberAxes builds d in every member. A nil entry means the member is
// excluded for d because one of its clusters has no known word. Missing words
// of the clusters checked before the exclusion are still reported.
func (en *Ensemble) memberAxes(d dimension.Dimension, build axisFunc) ([]vector.Vector, error) {
	axes := make([]vector.Vector, len(en.members))
	for i, m := range en.members {
		clusters := d.Clusters()
		usable := make([][]string, len(clusters))
		var missing [][]string
		var exclusion *diag.Notice

		for c, words := range clusters {
			var known, unknown []string
			for _, w := range words {
				if m.InVocab(w) {
					known = append(known, w)
				} else {
					unknown = append(unknown, w)
				}
			}
			if len(known) == 0 {
				exclusion = &diag.Notice{
					Kind:      diag.KindMemberExcluded,
					Message:   fmt.Sprintf("no %s word of dimension %q is in the vocab of %s; it is not used for this dimension", clusterLabel(d, c), d.Name(), Label(i)),
					Dimension: d.Name(),
					Words:     unknown,
					Members:   []int{i},
					Cluster:   clusterName(d, c),
				}
				break
			}
			usable[c] = known
			missing = append(missing, unknown)
		}

		for c, unknown := range missing {
			if len(unknown) == 0 {
				continue
			}
			en.sink.Notify(diag.Notice{
				Kind:      diag.KindClusterWordsMissing,
				Message:   fmt.Sprintf("%s word(s) %v of dimension %q not in the vocab of %s; they are not used", clusterLabel(d, c), unknown, d.Name(), Label(i)),
				Dimension: d.Name(),
				Words:     unknown,
				Members:   []int{i},
				Cluster:   clusterName(d, c),
			})
		}
		if exclusion != nil {
			en.sink.Notify(*exclusion)
			continue
		}

		axis, err := build(m, usable)
		if err != nil {
			return nil, fmt.Errorf("building dimension %q in %s: %w", d.Name(), Label(i), err)
		}
		axes[i] = axis
	}
	return axes, nil
}

func clusterLabel(d dimension.Dimension, i int) string {
	if name := clusterName(d, i); name != "" {
		return name + " cluster"
	}
	return "cluster"
}

// project scores every test word on every dimension in every member that has
// both the test word and a usable axis, and summarises per dimension.
func (en *Ensemble) project(tests []string, dims dimension.Set, build axisFunc) (*table.Table, error) {
	axes := make([][]vector.Vector, len(dims))
	for j, d := range dims {
		a, err := en.memberAxes(d, build)
		if err != nil {
			return nil, err
		}
		axes[j] = a
	}

	cols := []string{embedding.ColTestWord}
	for _, d := range dims {
		cols = append(cols, d.Name(), d.Name()+StdSuffix)
	}
	t := table.New(cols...)

	for _, w := range tests {
		have, missing := en.membersWith(w)
		if len(have) == 0 {
			en.sink.Notify(diag.Notice{
				Kind:    diag.KindTestWordDropped,
				Message: fmt.Sprintf("test word %q is not in the vocab of any embedding and was removed", w),
				Word:    w,
			})
			continue
		}
		if len(missing) > 0 {
			en.sink.Notify(diag.Notice{
				Kind:    diag.KindTestWordPartial,
				Message: fmt.Sprintf("test word %q not in the vocab of %v; those embeddings are skipped for it", w, labelsOf(missing)),
				Word:    w,
				Members: missing,
			})
		}

		row := []any{w}
		for j, d := range dims {
			var scores []float64
			for _, i := range have {
				if axes[j][i] == nil {
					continue
				}
				v, err := en.members[i].Vector(w)
				if err != nil {
					return nil, err
				}
				scores = append(scores, vector.Dot(v, axes[j][i]))
			}
			if len(scores) == 0 {
				en.sink.Notify(diag.Notice{
					Kind:      diag.KindNoContributions,
					Message:   fmt.Sprintf("no embedding can project %q onto %q", w, d.Name()),
					Dimension: d.Name(),
					Word:      w,
				})
			}
			mean, std := summaryCells(scores)
			row = append(row, mean, std)
		}
		t.Append(row...)
	}

	t.SortDesc(cols[1:]...)
	return t, nil
}
