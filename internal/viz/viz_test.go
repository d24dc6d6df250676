package viz

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
)

var (
	testLabels = []string{"king", "queen", "apple"}
	testMatrix = [][]float64{
		{1, 0.8, 0.1},
		{0.8, 1, 0.6},
		{0.1, 0.6, 1},
	}
)

func TestBuildSimilarityGraph(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		wantEdges int
		wantDeg   []int
	}{
		{"default", DefaultThreshold, 2, []int{1, 2, 1}},
		{"strict", 0.7, 1, []int{1, 1, 0}},
		{"everything", -1, 3, []int{2, 2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := BuildSimilarityGraph(testLabels, testMatrix, tt.threshold)
			if err != nil {
				t.Fatalf("BuildSimilarityGraph() error = %v", err)
			}
			if len(g.Nodes) != len(testLabels) {
				t.Errorf("nodes = %d, want %d", len(g.Nodes), len(testLabels))
			}
			if len(g.Edges) != tt.wantEdges {
				t.Errorf("edges = %d, want %d", len(g.Edges), tt.wantEdges)
			}
			for i, n := range g.Nodes {
				if n.Degree != tt.wantDeg[i] {
					t.Errorf("Degree(%s) = %d, want %d", n.ID, n.Degree, tt.wantDeg[i])
				}
			}
		})
	}
}

func TestBuildSimilarityGraph_Errors(t *testing.T) {
	if _, err := BuildSimilarityGraph([]string{"a"}, testMatrix, 0); err == nil {
		t.Error("expected error for label/row mismatch")
	}
	if _, err := BuildSimilarityGraph([]string{"a", "b"}, [][]float64{{1, 0}, {0}}, 0); err == nil {
		t.Error("expected error for ragged matrix")
	}
	if _, err := BuildSimilarityGraph([]string{"a", "a"}, [][]float64{{1, 0}, {0, 1}}, 0); err == nil {
		t.Error("expected error for duplicate labels")
	}
}

func TestToCytoscapeJSON(t *testing.T) {
	g, err := BuildSimilarityGraph(testLabels, testMatrix, DefaultThreshold)
	if err != nil {
		t.Fatalf("BuildSimilarityGraph() error = %v", err)
	}
	s, err := g.ToCytoscapeJSON()
	if err != nil {
		t.Fatalf("ToCytoscapeJSON() error = %v", err)
	}

	var elements CytoscapeElements
	if err := json.Unmarshal([]byte(s), &elements); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(elements.Nodes) != 3 || len(elements.Edges) != 2 {
		t.Errorf("elements = %d nodes, %d edges; want 3, 2", len(elements.Nodes), len(elements.Edges))
	}
	if got := elements.Edges[0].Data.ID; got != "king-queen-0" {
		t.Errorf("first edge ID = %q, want king-queen-0", got)
	}
}

func TestGenerateHTML(t *testing.T) {
	g, _ := BuildSimilarityGraph(testLabels, testMatrix, DefaultThreshold)

	for _, layout := range ValidLayouts {
		t.Run(layout, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Layout = layout
			page, err := GenerateHTML("royals", g, opts)
			if err != nil {
				t.Fatalf("GenerateHTML() error = %v", err)
			}
			if !strings.Contains(page, "cytoscape") || !strings.Contains(page, "royals") {
				t.Error("page is missing cytoscape or title")
			}
			if !strings.Contains(page, `"`+layoutToCytoscape(layout)+`"`) {
				t.Errorf("page does not use layout %q", layoutToCytoscape(layout))
			}
		})
	}

	if _, err := GenerateHTML("x", g, HTMLOptions{Layout: "spiral"}); err == nil {
		t.Error("expected error for invalid layout")
	}
	if _, err := GenerateHTML("x", nil, DefaultOptions()); err == nil {
		t.Error("expected error for nil graph")
	}

	empty, err := GenerateHTML("nothing", &GraphData{}, DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateHTML(empty) error = %v", err)
	}
	if !strings.Contains(empty, "No words to show") {
		t.Error("empty graph should render the empty state")
	}
}

func TestHTMLRenderer(t *testing.T) {
	tests := []struct {
		name   string
		render func(r Renderer) error
		want   []string
	}{
		{
			name: "scatter",
			render: func(r Renderer) error {
				return r.Scatter("pca", []string{"a<b", "c"}, [][]float64{{0, 1}, {1, 0}})
			},
			want: []string{"<svg", "a&lt;b", `class="point"`},
		},
		{
			name: "scatter 1d",
			render: func(r Renderer) error {
				return r.Scatter("line", []string{"a", "b"}, [][]float64{{0}, {1}})
			},
			want: []string{"<svg"},
		},
		{
			name: "heatmap",
			render: func(r Renderer) error {
				return r.Heatmap("sims", testLabels, testLabels, testMatrix)
			},
			want: []string{"<rect", "queen / apple: 0.6000", "rgb(255,51,51)"},
		},
		{
			name: "density",
			render: func(r Renderer) error {
				return r.Density("diversity", []float64{0.1, 0.2, 0.9}, 0.1)
			},
			want: []string{`class="density"`, `class="rug"`},
		},
		{
			name: "network",
			render: func(r Renderer) error {
				return r.Network("net", testLabels, testMatrix)
			},
			want: []string{"cytoscape", `"degree":2`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.render(NewHTMLRenderer(&buf, DefaultOptions())); err != nil {
				t.Fatalf("render error = %v", err)
			}
			page := buf.String()
			if !strings.HasPrefix(page, "<!DOCTYPE html>") {
				t.Error("output is not an HTML page")
			}
			for _, w := range tt.want {
				if !strings.Contains(page, w) {
					t.Errorf("page does not contain %q", w)
				}
			}
		})
	}
}

func TestHTMLRenderer_Errors(t *testing.T) {
	r := NewHTMLRenderer(&bytes.Buffer{}, HTMLOptions{})
	if err := r.Scatter("x", nil, nil); err == nil {
		t.Error("Scatter(no points) expected error")
	}
	if err := r.Scatter("x", []string{"a"}, [][]float64{{}}); err == nil {
		t.Error("Scatter(empty point) expected error")
	}
	if err := r.Heatmap("x", []string{"a"}, []string{"b", "c"}, [][]float64{{1}}); err == nil {
		t.Error("Heatmap(ragged) expected error")
	}
	if err := r.Density("x", []float64{1}, 0); err == nil {
		t.Error("Density(bandwidth 0) expected error")
	}
	if err := r.Density("x", nil, 0.1); err == nil {
		t.Error("Density(no samples) expected error")
	}
}

func TestHeatColour(t *testing.T) {
	tests := []struct {
		v, extent float64
		want      string
	}{
		{1, 1, "rgb(255,0,0)"},
		{-1, 1, "rgb(0,0,255)"},
		{0, 1, "rgb(255,255,255)"},
		{0.5, 0, "rgb(255,255,255)"},
		{math.NaN(), 1, "rgb(255,255,255)"},
	}
	for _, tt := range tests {
		if got := heatColour(tt.v, tt.extent); got != tt.want {
			t.Errorf("heatColour(%v, %v) = %q, want %q", tt.v, tt.extent, got, tt.want)
		}
	}
}

func TestKDE(t *testing.T) {
	ys := kde([]float64{0}, 1, []float64{0})
	if want := 1 / math.Sqrt(2*math.Pi); math.Abs(ys[0]-want) > 1e-12 {
		t.Errorf("kde at the sample = %v, want %v", ys[0], want)
	}

	// Two samples average their kernels.
	ys = kde([]float64{-1, 1}, 0.5, []float64{-1, 1})
	if math.Abs(ys[0]-ys[1]) > 1e-12 {
		t.Errorf("symmetric samples gave %v and %v", ys[0], ys[1])
	}
}
