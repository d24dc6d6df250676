// Package viz renders embedding analyses as standalone HTML pages.
package viz

// GraphData contains all data needed to render a word network.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a word in the network.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`

	// Sizing
	Degree int `json:"degree"`
}

// Edge links two words whose similarity passed the threshold.
type Edge struct {
	Source     string  `json:"source"`
	Target     string  `json:"target"`
	Similarity float64 `json:"similarity"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *GraphData) IsEmpty() bool {
	return len(g.Nodes) == 0
}
