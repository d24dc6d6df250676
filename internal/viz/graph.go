package viz

import (
	"fmt"
	"math"
)

// DefaultThreshold is the similarity an edge needs when none is configured.
const DefaultThreshold = 0.5

// BuildSimilarityGraph turns a square similarity matrix over labels into a
// network. Words i and j are linked when matrix[i][j] >= threshold. Every
// word becomes a node, linked or not.
func BuildSimilarityGraph(labels []string, matrix [][]float64, threshold float64) (*GraphData, error) {
	if err := checkSquare(labels, matrix); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		if seen[l] {
			return nil, fmt.Errorf("duplicate label %q", l)
		}
		seen[l] = true
	}

	degree := make([]int, len(labels))
	var edges []Edge
	for i := range labels {
		for j := i + 1; j < len(labels); j++ {
			s := matrix[i][j]
			if math.IsNaN(s) || s < threshold {
				continue
			}
			degree[i]++
			degree[j]++
			edges = append(edges, Edge{Source: labels[i], Target: labels[j], Similarity: s})
		}
	}

	nodes := make([]Node, len(labels))
	for i, l := range labels {
		nodes[i] = Node{ID: l, Label: l, Degree: degree[i]}
	}
	return &GraphData{Nodes: nodes, Edges: edges}, nil
}

func checkSquare(labels []string, matrix [][]float64) error {
	if len(matrix) != len(labels) {
		return fmt.Errorf("matrix has %d rows for %d labels", len(matrix), len(labels))
	}
	for i, row := range matrix {
		if len(row) != len(labels) {
			return fmt.Errorf("matrix row %d has %d columns, want %d", i, len(row), len(labels))
		}
	}
	return nil
}
