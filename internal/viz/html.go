package viz

import (
	"bytes"
	"fmt"
	"html/template"
)

// Templates are parsed at init time to fail fast on template errors.
var (
	networkTemplate = template.Must(template.New("network").Parse(networkHTML))
	plotTemplate    = template.Must(template.New("plot").Parse(plotHTML))
	emptyTemplate   = template.Must(template.New("empty").Parse(emptyHTML))
)

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Layout    string  // "force", "circle", or "grid"
	Threshold float64 // minimum similarity for a network edge
	Width     int     // SVG width in pixels
	Height    int     // SVG height in pixels
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{
		Layout:    "force",
		Threshold: DefaultThreshold,
		Width:     800,
		Height:    600,
	}
}

// ValidLayouts lists the supported layout algorithm names.
var ValidLayouts = []string{"force", "circle", "grid"}

// GenerateHTML generates a self-contained HTML page for a word network.
func GenerateHTML(title string, graph *GraphData, opts HTMLOptions) (string, error) {
	if graph == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}

	if err := validateLayout(opts.Layout); err != nil {
		return "", err
	}

	if graph.IsEmpty() {
		return execute(emptyTemplate, pageData{Title: title})
	}

	graphJSON, err := graph.ToCytoscapeJSON()
	if err != nil {
		return "", err
	}

	return execute(networkTemplate, pageData{
		Title:     title,
		GraphJSON: template.JS(graphJSON),
		Layout:    layoutToCytoscape(opts.Layout),
	})
}

// generatePlotHTML wraps an SVG document in a page.
func generatePlotHTML(title, svg string) (string, error) {
	return execute(plotTemplate, pageData{Title: title, SVG: template.HTML(svg)})
}

func execute(t *template.Template, data pageData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s page: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// validateLayout checks if the layout option is valid.
func validateLayout(layout string) error {
	switch layout {
	case "", "force", "circle", "grid":
		return nil
	default:
		return fmt.Errorf("invalid layout %q: must be force, circle, or grid", layout)
	}
}

// pageData holds data for the HTML templates.
type pageData struct {
	Title     string
	GraphJSON template.JS
	Layout    string
	SVG       template.HTML
}

// layoutToCytoscape converts user-friendly layout names to Cytoscape.js layout algorithm names.
func layoutToCytoscape(layout string) string {
	switch layout {
	case "circle":
		return "circle"
	case "grid":
		return "grid"
	default:
		return "cose"
	}
}

const pageStyle = `
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      background: #f5f5f5;
    }
    h1 {
      font-size: 16px;
      font-weight: 600;
      margin: 0;
      padding: 12px 16px;
      color: #333;
    }`

const emptyHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}} - Empty</title>
  <style>` + pageStyle + `
    .empty-state {
      text-align: center;
      color: #666;
      margin-top: 30vh;
    }
  </style>
</head>
<body>
  <div class="empty-state">
    <h1>{{.Title}}</h1>
    <p>No words to show.</p>
  </div>
</body>
</html>`

const plotHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>` + pageStyle + `
    svg {
      display: block;
      margin: 0 16px;
      background: white;
    }
    .axis { stroke: #999; stroke-width: 1; }
    .point { fill: #4A90D9; }
    .label { font-size: 11px; fill: #333; }
    .density { fill: rgba(74,144,217,0.35); stroke: #4A90D9; stroke-width: 1.5; }
    .rug { stroke: #E8923A; stroke-width: 1; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  {{.SVG}}
</body>
</html>`

const networkHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <script src="https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"></script>
  <style>` + pageStyle + `
    #cy {
      width: 100%;
      height: calc(100vh - 44px);
      background: white;
    }
    #tooltip {
      position: absolute;
      display: none;
      background: white;
      border: 1px solid #ccc;
      border-radius: 4px;
      padding: 6px 10px;
      box-shadow: 0 2px 8px rgba(0,0,0,0.15);
      font-size: 13px;
      z-index: 1000;
      pointer-events: none;
    }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <div id="cy"></div>
  <div id="tooltip"></div>
  <script>
    (function() {
      const graphData = {{.GraphJSON}};
      const layout = "{{.Layout}}";

      const cy = cytoscape({
        container: document.getElementById('cy'),
        elements: graphData,
        style: [
          {
            selector: 'node',
            style: {
              'background-color': '#4A90D9',
              'label': 'data(label)',
              'color': '#333',
              'font-size': '11px',
              'text-valign': 'bottom',
              'text-margin-y': '5px',
              'width': 'mapData(degree, 0, 10, 20, 50)',
              'height': 'mapData(degree, 0, 10, 20, 50)'
            }
          },
          {
            selector: 'edge',
            style: {
              'line-color': '#95A5A6',
              'curve-style': 'bezier',
              'width': 'mapData(similarity, 0, 1, 1, 6)'
            }
          },
          {
            selector: 'node.highlighted',
            style: {
              'border-width': 3,
              'border-color': '#ff6b6b'
            }
          },
          {
            selector: '.dimmed',
            style: {
              'opacity': 0.25
            }
          }
        ],
        layout: {
          name: layout,
          animate: false,
          nodeRepulsion: 8000,
          idealEdgeLength: 100,
          edgeElasticity: 100
        }
      });

      const tooltip = document.getElementById('tooltip');

      cy.on('mouseover', 'edge', function(evt) {
        const d = evt.target.data();
        tooltip.textContent = d.source + ' / ' + d.target + ': ' + d.similarity.toFixed(4);
        const pos = evt.renderedPosition || evt.position;
        tooltip.style.left = (pos.x + 15) + 'px';
        tooltip.style.top = (pos.y + 60) + 'px';
        tooltip.style.display = 'block';
      });

      cy.on('mouseout', 'edge', function() {
        tooltip.style.display = 'none';
      });

      cy.on('tap', 'node', function(evt) {
        const neighborhood = evt.target.neighborhood().add(evt.target);
        cy.elements().removeClass('highlighted dimmed');
        neighborhood.nodes().addClass('highlighted');
        cy.elements().not(neighborhood).addClass('dimmed');
      });

      cy.on('tap', function(evt) {
        if (evt.target === cy) {
          cy.elements().removeClass('highlighted dimmed');
        }
      });
    })();
  </script>
</body>
</html>`
