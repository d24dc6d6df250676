package dimension

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Set is an ordered collection of uniquely named dimensions.
type Set []Dimension

// NewSet returns dims as a Set, rejecting duplicate names.
func NewSet(dims ...Dimension) (Set, error) {
	seen := make(map[string]bool, len(dims))
	for _, d := range dims {
		if d.kind == 0 {
			return nil, fmt.Errorf("%w: uninitialised dimension", ErrInvalidSpec)
		}
		if seen[d.name] {
			return nil, fmt.Errorf("%w: duplicate dimension %q", ErrInvalidSpec, d.name)
		}
		seen[d.name] = true
	}
	return Set(dims), nil
}

// Names returns dimension names in order.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, d := range s {
		names[i] = d.name
	}
	return names
}

// Get returns the dimension with the given name.
func (s Set) Get(name string) (Dimension, bool) {
	for _, d := range s {
		if d.name == name {
			return d, true
		}
	}
	return Dimension{}, false
}

// RequireKind returns ErrInvalidSpec if any dimension is not of kind k.
func (s Set) RequireKind(k Kind) error {
	for _, d := range s {
		if err := d.RequireKind(k); err != nil {
			return err
		}
	}
	return nil
}

// ParseYAML reads a mapping from dimension names to cluster specs, keeping
// the mapping's key order:
//
//	royal: [king, queen, prince]
//	gender:
//	  - [man, he, him]
//	  - [woman, she, her]
//
// A flat list of words is unipolar, a list of exactly two word lists is
// bipolar. Any other shape is ErrInvalidSpec.
func ParseYAML(data []byte) (Set, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing YAML: %w", ErrInvalidSpec, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidSpec)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: expected a mapping of dimension names", ErrInvalidSpec, root.Line)
	}

	dims := make([]Dimension, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		d, err := fromNode(key.Value, value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", value.Line, err)
		}
		dims = append(dims, d)
	}
	return NewSet(dims...)
}

func fromNode(name string, n *yaml.Node) (Dimension, error) {
	if n.Kind != yaml.SequenceNode {
		return Dimension{}, fmt.Errorf("%w: %s: expected a list", ErrInvalidSpec, name)
	}

	if words, ok := scalarList(n); ok {
		return NewUnipolar(name, words)
	}

	if len(n.Content) != 2 {
		return Dimension{}, fmt.Errorf("%w: %s: expected a word list or two word lists, got %d items", ErrInvalidSpec, name, len(n.Content))
	}
	left, okL := scalarList(n.Content[0])
	right, okR := scalarList(n.Content[1])
	if n.Content[0].Kind != yaml.SequenceNode || n.Content[1].Kind != yaml.SequenceNode || !okL || !okR {
		return Dimension{}, fmt.Errorf("%w: %s: bipolar clusters must be flat word lists", ErrInvalidSpec, name)
	}
	return NewBipolar(name, left, right)
}

// scalarList reports whether n is a sequence of scalars and returns them.
func scalarList(n *yaml.Node) ([]string, bool) {
	if n.Kind != yaml.SequenceNode {
		return nil, false
	}
	words := make([]string, 0, len(n.Content))
	for _, c := range n.Content {
		if c.Kind != yaml.ScalarNode {
			return nil, false
		}
		words = append(words, c.Value)
	}
	return words, true
}

// LoadFile reads a YAML dimension file.
func LoadFile(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dimension file: %w", err)
	}
	set, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}
