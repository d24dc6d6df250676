package viz

import (
	"fmt"
	"html"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	plotMargin   = 40.0
	labelMargin  = 120.0
	densityGrid  = 200
	densityReach = 3.0 // bandwidths beyond the sample range
)

// linear maps a data range onto a pixel range.
type linear struct {
	min, max float64
	lo, hi   float64
}

func newLinear(values []float64, lo, hi float64) linear {
	mn, mx := floats.Min(values), floats.Max(values)
	if mn == mx {
		mn, mx = mn-1, mx+1
	}
	return linear{min: mn, max: mx, lo: lo, hi: hi}
}

func (l linear) at(v float64) float64 {
	return l.lo + (v-l.min)/(l.max-l.min)*(l.hi-l.lo)
}

func openSVG(b *strings.Builder, width, height int) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, width, height, width, height)
	b.WriteString("\n")
}

func axes(b *strings.Builder, left, top, right, bottom float64) {
	fmt.Fprintf(b, `<line class="axis" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", left, bottom, right, bottom)
	fmt.Fprintf(b, `<line class="axis" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", left, top, left, bottom)
}

// scatterSVG draws labelled points. Only the first two coordinates of each
// point are used; one-dimensional points sit on y = 0.
func scatterSVG(labels []string, points [][]float64, width, height int) (string, error) {
	if len(points) == 0 {
		return "", fmt.Errorf("scatter needs at least one point")
	}
	if len(labels) != len(points) {
		return "", fmt.Errorf("%d labels for %d points", len(labels), len(points))
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		switch {
		case len(p) == 0:
			return "", fmt.Errorf("point %d (%s) has no coordinates", i, labels[i])
		case len(p) == 1:
			xs[i] = p[0]
		default:
			xs[i], ys[i] = p[0], p[1]
		}
	}

	w, h := float64(width), float64(height)
	sx := newLinear(xs, plotMargin, w-plotMargin)
	sy := newLinear(ys, h-plotMargin, plotMargin)

	var b strings.Builder
	openSVG(&b, width, height)
	axes(&b, plotMargin, plotMargin, w-plotMargin, h-plotMargin)
	for i := range points {
		x, y := sx.at(xs[i]), sy.at(ys[i])
		fmt.Fprintf(&b, `<circle class="point" cx="%.1f" cy="%.1f" r="4"/>`+"\n", x, y)
		fmt.Fprintf(&b, `<text class="label" x="%.1f" y="%.1f">%s</text>`+"\n", x+6, y-6, html.EscapeString(labels[i]))
	}
	b.WriteString("</svg>")
	return b.String(), nil
}

// heatColour maps v onto a blue-white-red ramp symmetric around zero.
func heatColour(v, extent float64) string {
	if extent == 0 || math.IsNaN(v) {
		return "rgb(255,255,255)"
	}
	t := math.Max(-1, math.Min(1, v/extent))
	fade := int(math.Round(255 * (1 - math.Abs(t))))
	if t >= 0 {
		return fmt.Sprintf("rgb(255,%d,%d)", fade, fade)
	}
	return fmt.Sprintf("rgb(%d,%d,255)", fade, fade)
}

// heatmapSVG draws matrix as coloured cells with row and column labels.
func heatmapSVG(rowLabels, colLabels []string, matrix [][]float64, width, height int) (string, error) {
	if len(matrix) == 0 || len(colLabels) == 0 {
		return "", fmt.Errorf("heatmap needs a non-empty matrix")
	}
	if len(rowLabels) != len(matrix) {
		return "", fmt.Errorf("%d row labels for %d rows", len(rowLabels), len(matrix))
	}
	var extent float64
	for i, row := range matrix {
		if len(row) != len(colLabels) {
			return "", fmt.Errorf("row %d has %d values, want %d", i, len(row), len(colLabels))
		}
		for _, v := range row {
			if !math.IsNaN(v) {
				extent = math.Max(extent, math.Abs(v))
			}
		}
	}

	cell := math.Min(
		(float64(width)-labelMargin-plotMargin)/float64(len(colLabels)),
		(float64(height)-labelMargin-plotMargin)/float64(len(matrix)),
	)

	var b strings.Builder
	openSVG(&b, width, height)
	for j, l := range colLabels {
		x := labelMargin + (float64(j)+0.5)*cell
		fmt.Fprintf(&b, `<text class="label" transform="translate(%.1f,%.1f) rotate(-60)">%s</text>`+"\n", x, labelMargin-6, html.EscapeString(l))
	}
	for i, row := range matrix {
		y := labelMargin + float64(i)*cell
		fmt.Fprintf(&b, `<text class="label" text-anchor="end" x="%.1f" y="%.1f">%s</text>`+"\n", labelMargin-6, y+cell/2, html.EscapeString(rowLabels[i]))
		for j, v := range row {
			x := labelMargin + float64(j)*cell
			fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"><title>%s / %s: %.4f</title></rect>`+"\n",
				x, y, cell, cell, heatColour(v, extent),
				html.EscapeString(rowLabels[i]), html.EscapeString(colLabels[j]), v)
		}
	}
	b.WriteString("</svg>")
	return b.String(), nil
}

// kde evaluates a Gaussian kernel density estimate of samples at xs.
func kde(samples []float64, bandwidth float64, xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for _, s := range samples {
		k := distuv.Normal{Mu: s, Sigma: bandwidth}
		for i, x := range xs {
			ys[i] += k.Prob(x)
		}
	}
	floats.Scale(1/float64(len(samples)), ys)
	return ys
}

// densitySVG draws the kernel density of samples as a filled curve with a
// rug of the samples themselves.
func densitySVG(samples []float64, bandwidth float64, width, height int) (string, error) {
	if len(samples) == 0 {
		return "", fmt.Errorf("density needs at least one sample")
	}
	if bandwidth <= 0 {
		return "", fmt.Errorf("bandwidth must be positive, got %v", bandwidth)
	}

	lo := floats.Min(samples) - densityReach*bandwidth
	hi := floats.Max(samples) + densityReach*bandwidth
	xs := make([]float64, densityGrid)
	floats.Span(xs, lo, hi)
	ys := kde(samples, bandwidth, xs)

	w, h := float64(width), float64(height)
	sx := newLinear(xs, plotMargin, w-plotMargin)
	sy := newLinear(append([]float64{0}, ys...), h-plotMargin, plotMargin)

	var b strings.Builder
	openSVG(&b, width, height)
	axes(&b, plotMargin, plotMargin, w-plotMargin, h-plotMargin)

	var path strings.Builder
	fmt.Fprintf(&path, "M%.1f,%.1f", sx.at(xs[0]), sy.at(0))
	for i := range xs {
		fmt.Fprintf(&path, " L%.1f,%.1f", sx.at(xs[i]), sy.at(ys[i]))
	}
	fmt.Fprintf(&path, " L%.1f,%.1f Z", sx.at(xs[len(xs)-1]), sy.at(0))
	fmt.Fprintf(&b, `<path class="density" d="%s"/>`+"\n", path.String())

	for _, s := range samples {
		x := sx.at(s)
		fmt.Fprintf(&b, `<line class="rug" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x, h-plotMargin, x, h-plotMargin+8)
	}
	fmt.Fprintf(&b, `<text class="label" x="%.1f" y="%.1f">%.2f</text>`+"\n", plotMargin, h-plotMargin+24, lo)
	fmt.Fprintf(&b, `<text class="label" text-anchor="end" x="%.1f" y="%.1f">%.2f</text>`+"\n", w-plotMargin, h-plotMargin+24, hi)
	b.WriteString("</svg>")
	return b.String(), nil
}
