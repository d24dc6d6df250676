package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matsen/embeddings/internal/embedding"
	"github.com/matsen/embeddings/internal/table"
)

// Default result sizes.
const (
	DefaultNeighbors = 10
	DefaultContext   = 5
)

// ErrorResponse is the JSON body written for a failed command.
type ErrorResponse struct {
	Error string `json:"error"`
}

// OutputResponse reports a file a command wrote.
type OutputResponse struct {
	Output string `json:"output"`
}

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// fail exits with the code err's sentinel maps to.
func fail(err error, doing string) {
	exitWithError(exitCodeFor(err), "%s: %v", doing, err)
}

// outputTable writes t as JSON records, or as a rendered table with --human.
func outputTable(t *table.Table) {
	if humanOutput {
		outputHuman("%s\n", t.Render(table.Format{Precision: settings.Precision, MaxRows: maxRowsFlag}))
		return
	}
	outputJSON(limitRows(t, maxRowsFlag))
}

// limitRows keeps the first n rows of t. n <= 0 keeps all.
func limitRows(t *table.Table, n int) *table.Table {
	if n <= 0 {
		return t
	}
	return t.Head(n)
}

// neighborsTable turns a ranked word list into a table.
func neighborsTable(ns []embedding.Neighbor) *table.Table {
	t := table.New("Word", "Similarity")
	for _, n := range ns {
		t.Append(n.Word, n.Similarity)
	}
	return t
}

// outputValue writes a single named result.
func outputValue(name string, v any) {
	if humanOutput {
		outputHuman("%s: %s\n", name, table.FormatValue(v, settings.Precision))
		return
	}
	outputJSON(map[string]any{name: v})
}

// outputFile reports a written file.
func outputFile(path string) {
	if humanOutput {
		outputHuman("Written to %s\n", path)
		return
	}
	outputJSON(OutputResponse{Output: path})
}
