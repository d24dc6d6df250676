package tui

import (
	"reflect"
	"testing"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		line    string
		want    Query
		wantErr bool
	}{
		{line: "king", want: Query{Kind: QueryMostSimilar, Words: []string{"king"}}},
		{line: "  ice-cream ", want: Query{Kind: QueryMostSimilar, Words: []string{"ice-cream"}}},
		{line: "!king", want: Query{Kind: QueryLeastSimilar, Words: []string{"king"}}},
		{line: "king - man + woman", want: Query{Kind: QueryAnalogy, Words: []string{"king", "woman"}, Negative: []string{"man"}}},
		{line: "king + queen", want: Query{Kind: QueryAnalogy, Words: []string{"king", "queen"}}},
		{line: "king, queen", want: Query{Kind: QuerySimilarity, Words: []string{"king", "queen"}}},
		{line: "", wantErr: true},
		{line: "!", wantErr: true},
		{line: "!king queen", wantErr: true},
		{line: "a, b, c", wantErr: true},
		{line: ", b", wantErr: true},
		{line: "king -", wantErr: true},
		{line: "king man", wantErr: true},
		{line: "- king", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseQuery(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseQuery(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseQuery(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}
