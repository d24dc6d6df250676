// Package tui provides the interactive embedding explorer.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matsen/embeddings/internal/embedding"
)

// DefaultResults is how many neighbours a query shows.
const DefaultResults = 10

// Explorer is the subset of an embedding the explorer queries.
type Explorer interface {
	MostSimilar(word string, n int) ([]embedding.Neighbor, error)
	LeastSimilar(word string, n int) ([]embedding.Neighbor, error)
	Analogy(positive, negative []string, n int) ([]embedding.Neighbor, error)
	Similarity(w1, w2 string) (float64, error)
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	wordStyle    = lipgloss.NewStyle().Width(24)
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Width(8).Align(lipgloss.Right)
	resultsStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Model is the Bubble Tea model for the explorer.
type Model struct {
	explorer Explorer
	name     string
	n        int

	input     textinput.Model
	heading   string
	results   []embedding.Neighbor
	score     *float64
	err       error
	precision int
}

// New creates an explorer over e. name is shown in the title.
func New(e Explorer, name string, n, precision int) Model {
	if n <= 0 {
		n = DefaultResults
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "word, !word, king - man + woman, or a, b"
	ti.Focus()
	return Model{explorer: e, name: name, n: n, input: ti, precision: precision}
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m = m.run(m.input.Value())
			m.input.SetValue("")
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// run executes one query and stores its outcome.
func (m Model) run(line string) Model {
	m.results, m.score, m.err = nil, nil, nil
	q, err := ParseQuery(line)
	if err != nil {
		m.err = err
		return m
	}

	switch q.Kind {
	case QueryMostSimilar:
		m.heading = fmt.Sprintf("most similar to %s", q.Words[0])
		m.results, m.err = m.explorer.MostSimilar(q.Words[0], m.n)
	case QueryLeastSimilar:
		m.heading = fmt.Sprintf("least similar to %s", q.Words[0])
		m.results, m.err = m.explorer.LeastSimilar(q.Words[0], m.n)
	case QueryAnalogy:
		m.heading = fmt.Sprintf("+%v -%v", q.Words, q.Negative)
		m.results, m.err = m.explorer.Analogy(q.Words, q.Negative, m.n)
	case QuerySimilarity:
		m.heading = fmt.Sprintf("similarity of %s and %s", q.Words[0], q.Words[1])
		s, err := m.explorer.Similarity(q.Words[0], q.Words[1])
		if err == nil {
			m.score = &s
		}
		m.err = err
	}
	return m
}

func (m Model) format(v float64) string {
	p := m.precision
	if p <= 0 {
		p = 4
	}
	return fmt.Sprintf("%.*f", p, v)
}

// View renders the input and the latest results.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("emb explore: "+m.name) + "\n")
	b.WriteString(m.input.View() + "\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: "+m.err.Error()) + "\n")
	case m.score != nil:
		b.WriteString(resultsStyle.Render(m.heading+": "+scoreStyle.Render(m.format(*m.score))) + "\n")
	case len(m.results) > 0:
		lines := []string{subtleStyle.Render(m.heading)}
		for _, r := range m.results {
			lines = append(lines, wordStyle.Render(r.Word)+scoreStyle.Render(m.format(r.Similarity)))
		}
		b.WriteString(resultsStyle.Render(strings.Join(lines, "\n")) + "\n")
	}

	b.WriteString(subtleStyle.Render("enter: run query  esc: quit"))
	return b.String()
}
