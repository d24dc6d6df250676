package viz

import (
	"fmt"
	"io"
)

// Renderer draws analysis results.
type Renderer interface {
	// Scatter plots labelled points using their first two coordinates.
	Scatter(title string, labels []string, points [][]float64) error
	// Heatmap draws matrix with one row per rowLabel and one column per colLabel.
	Heatmap(title string, rowLabels, colLabels []string, matrix [][]float64) error
	// Density draws a Gaussian kernel density estimate of samples.
	Density(title string, samples []float64, bandwidth float64) error
	// Network links the words of a square similarity matrix.
	Network(title string, labels []string, matrix [][]float64) error
}

// HTMLRenderer writes one self-contained HTML page per call.
type HTMLRenderer struct {
	w    io.Writer
	opts HTMLOptions
}

var _ Renderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer returns a renderer writing to w. Zero sizes in opts fall
// back to DefaultOptions.
func NewHTMLRenderer(w io.Writer, opts HTMLOptions) *HTMLRenderer {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	return &HTMLRenderer{w: w, opts: opts}
}

func (r *HTMLRenderer) writePlot(title, svg string) error {
	page, err := generatePlotHTML(title, svg)
	if err != nil {
		return err
	}
	return r.write(page)
}

func (r *HTMLRenderer) write(page string) error {
	if _, err := io.WriteString(r.w, page); err != nil {
		return fmt.Errorf("writing HTML: %w", err)
	}
	return nil
}

// Scatter implements Renderer.
func (r *HTMLRenderer) Scatter(title string, labels []string, points [][]float64) error {
	svg, err := scatterSVG(labels, points, r.opts.Width, r.opts.Height)
	if err != nil {
		return err
	}
	return r.writePlot(title, svg)
}

// Heatmap implements Renderer.
func (r *HTMLRenderer) Heatmap(title string, rowLabels, colLabels []string, matrix [][]float64) error {
	svg, err := heatmapSVG(rowLabels, colLabels, matrix, r.opts.Width, r.opts.Height)
	if err != nil {
		return err
	}
	return r.writePlot(title, svg)
}

// Density implements Renderer.
func (r *HTMLRenderer) Density(title string, samples []float64, bandwidth float64) error {
	svg, err := densitySVG(samples, bandwidth, r.opts.Width, r.opts.Height)
	if err != nil {
		return err
	}
	return r.writePlot(title, svg)
}

// Network implements Renderer. Edges join words whose similarity reaches
// the configured threshold.
func (r *HTMLRenderer) Network(title string, labels []string, matrix [][]float64) error {
	graph, err := BuildSimilarityGraph(labels, matrix, r.opts.Threshold)
	if err != nil {
		return err
	}
	page, err := GenerateHTML(title, graph, r.opts)
	if err != nil {
		return err
	}
	return r.write(page)
}
