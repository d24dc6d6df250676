// Package dimension defines named semantic axes built from word clusters.
//
// A dimension is either unipolar (one cluster, the axis is its centroid) or
// bipolar (two clusters, the axis is the difference of their centroids).
// Shapes are validated once, at construction.
package dimension

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSpec is returned (wrapped) for malformed dimension specifications.
var ErrInvalidSpec = errors.New("invalid dimension specification")

// Kind distinguishes unipolar from bipolar dimensions.
type Kind int

const (
	Unipolar Kind = iota + 1
	Bipolar
)

func (k Kind) String() string {
	switch k {
	case Unipolar:
		return "unipolar"
	case Bipolar:
		return "bipolar"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Dimension is a named unipolar or bipolar axis. The zero value is invalid.
type Dimension struct {
	name     string
	kind     Kind
	clusters [][]string
}

// NewUnipolar returns a dimension defined by a single cluster.
func NewUnipolar(name string, words []string) (Dimension, error) {
	if err := checkName(name); err != nil {
		return Dimension{}, err
	}
	cluster, err := checkCluster(name, "cluster", words)
	if err != nil {
		return Dimension{}, err
	}
	return Dimension{name: name, kind: Unipolar, clusters: [][]string{cluster}}, nil
}

// NewBipolar returns a dimension pointing from the right cluster towards the
// left one. A word scoring positive is closer to left.
func NewBipolar(name string, left, right []string) (Dimension, error) {
	if err := checkName(name); err != nil {
		return Dimension{}, err
	}
	l, err := checkCluster(name, "left cluster", left)
	if err != nil {
		return Dimension{}, err
	}
	r, err := checkCluster(name, "right cluster", right)
	if err != nil {
		return Dimension{}, err
	}
	return Dimension{name: name, kind: Bipolar, clusters: [][]string{l, r}}, nil
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty dimension name", ErrInvalidSpec)
	}
	return nil
}

func checkCluster(name, which string, words []string) ([]string, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: %s: %s is empty", ErrInvalidSpec, name, which)
	}
	out := make([]string, len(words))
	for i, w := range words {
		if w == "" {
			return nil, fmt.Errorf("%w: %s: %s contains an empty word", ErrInvalidSpec, name, which)
		}
		out[i] = w
	}
	return out, nil
}

// Name returns the dimension's name.
func (d Dimension) Name() string { return d.name }

// Kind returns whether the dimension is unipolar or bipolar.
func (d Dimension) Kind() Kind { return d.kind }

// Clusters returns a copy of the word clusters: one for unipolar
// dimensions, left then right for bipolar ones.
func (d Dimension) Clusters() [][]string {
	out := make([][]string, len(d.clusters))
	for i, c := range d.clusters {
		out[i] = append([]string(nil), c...)
	}
	return out
}

// Words returns every word of every cluster in order.
func (d Dimension) Words() []string {
	var out []string
	for _, c := range d.clusters {
		out = append(out, c...)
	}
	return out
}

// RequireKind returns ErrInvalidSpec unless d has kind k.
func (d Dimension) RequireKind(k Kind) error {
	if d.kind != k {
		return fmt.Errorf("%w: dimension %q is %s, want %s", ErrInvalidSpec, d.name, d.kind, k)
	}
	return nil
}

func (d Dimension) String() string {
	parts := make([]string, len(d.clusters))
	for i, c := range d.clusters {
		parts[i] = strings.Join(c, ",")
	}
	return d.name + "=" + strings.Join(parts, ":")
}

// Parse reads the compact form used on the command line:
//
//	royal=king,queen,prince             unipolar
//	gender=man,he,him:woman,she,her     bipolar
func Parse(text string) (Dimension, error) {
	name, body, ok := strings.Cut(text, "=")
	if !ok {
		return Dimension{}, fmt.Errorf("%w: %q: expected name=words", ErrInvalidSpec, text)
	}
	name = strings.TrimSpace(name)

	clusters := strings.Split(body, ":")
	switch len(clusters) {
	case 1:
		return NewUnipolar(name, splitWords(clusters[0]))
	case 2:
		return NewBipolar(name, splitWords(clusters[0]), splitWords(clusters[1]))
	default:
		return Dimension{}, fmt.Errorf("%w: %s: %d clusters, want 1 or 2", ErrInvalidSpec, name, len(clusters))
	}
}

func splitWords(s string) []string {
	var out []string
	for _, w := range strings.Split(s, ",") {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}
