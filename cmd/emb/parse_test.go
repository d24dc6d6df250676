package main

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matsen/embeddings/internal/dimension"
	"github.com/matsen/embeddings/internal/embedding"
)

func TestParsePair(t *testing.T) {
	tests := []struct {
		in      string
		want    embedding.WordPair
		wantErr bool
	}{
		{in: "king:queen", want: embedding.WordPair{First: "king", Second: "queen"}},
		{in: " ice_cream : apple ", want: embedding.WordPair{First: "ice_cream", Second: "apple"}},
		{in: "king", wantErr: true},
		{in: "king:", wantErr: true},
		{in: ":queen", wantErr: true},
		{in: "a:b:c", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePair(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePair(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, embedding.ErrInvalidArgument) {
					t.Errorf("parsePair(%q) error = %v, want ErrInvalidArgument", tt.in, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("parsePair(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParsePairs(t *testing.T) {
	pairs, err := parsePairs([]string{"a:b", "c:d"})
	if err != nil {
		t.Fatalf("parsePairs() error = %v", err)
	}
	if len(pairs) != 2 || pairs[1].First != "c" {
		t.Errorf("parsePairs() = %+v", pairs)
	}
	if _, err := parsePairs([]string{"a:b", "c"}); err == nil {
		t.Error("parsePairs() with a bad pair should fail")
	}
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{nil, nil},
		{[]string{"a"}, []string{"a"}},
		{[]string{"a,b", "c"}, []string{"a", "b", "c"}},
		{[]string{" a , ,b "}, []string{"a", "b"}},
	}
	for _, tt := range tests {
		if got := splitWords(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitWords(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadDimensions(t *testing.T) {
	file := filepath.Join(t.TempDir(), "dims.yml")
	content := "gender:\n  - [man, king]\n  - [woman, queen]\n"
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	dims, err := loadDimensions([]string{"royal=king,queen"}, file)
	if err != nil {
		t.Fatalf("loadDimensions() error = %v", err)
	}
	if got := dims.Names(); !reflect.DeepEqual(got, []string{"royal", "gender"}) {
		t.Errorf("Names() = %v, want [royal gender]", got)
	}

	tests := []struct {
		name  string
		specs []string
		file  string
	}{
		{"nothing", nil, ""},
		{"bad spec", []string{"royal"}, ""},
		{"duplicate", []string{"royal=king", "royal=queen"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadDimensions(tt.specs, tt.file); !errors.Is(err, dimension.ErrInvalidSpec) {
				t.Errorf("loadDimensions() error = %v, want ErrInvalidSpec", err)
			}
		})
	}
}

func TestSelectDimensions(t *testing.T) {
	dims, err := loadDimensions([]string{"royal=king,queen", "gender=man:woman", "fruit=apple"}, "")
	if err != nil {
		t.Fatalf("loadDimensions() error = %v", err)
	}

	all, err := selectDimensions(dims, nil)
	if err != nil || len(all) != 3 {
		t.Errorf("selectDimensions(nil) = %v, %v; want all 3", all.Names(), err)
	}

	picked, err := selectDimensions(dims, []string{"fruit", "royal"})
	if err != nil {
		t.Fatalf("selectDimensions() error = %v", err)
	}
	if got := picked.Names(); !reflect.DeepEqual(got, []string{"fruit", "royal"}) {
		t.Errorf("Names() = %v, want [fruit royal]", got)
	}

	if _, err := selectDimensions(dims, []string{"size"}); !errors.Is(err, dimension.ErrInvalidSpec) {
		t.Errorf("selectDimensions(unknown) error = %v, want ErrInvalidSpec", err)
	}
	if _, err := selectDimensions(dims, []string{"royal", "royal"}); !errors.Is(err, dimension.ErrInvalidSpec) {
		t.Errorf("selectDimensions(repeated) error = %v, want ErrInvalidSpec", err)
	}
}
