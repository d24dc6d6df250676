package table

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"
)

func firstColumn(t *Table) []any {
	return t.Column(t.Columns[0])
}

func TestAppend_PanicsOnWidthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Append() with wrong width did not panic")
		}
	}()
	New("a", "b").Append(1)
}

func TestAccessors(t *testing.T) {
	tbl := New("word", "score")
	tbl.Append("king", 0.5)
	tbl.Append("queen", nil)

	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
	if tbl.Index("score") != 1 || tbl.Index("nope") != -1 {
		t.Errorf("Index() = %d, %d; want 1, -1", tbl.Index("score"), tbl.Index("nope"))
	}
	if got, ok := tbl.Float(0, "score"); !ok || got != 0.5 {
		t.Errorf("Float(0, score) = %v, %v; want 0.5, true", got, ok)
	}
	if _, ok := tbl.Float(1, "score"); ok {
		t.Error("Float() of nil cell should not be ok")
	}
	if tbl.Value(5, "word") != nil {
		t.Error("Value() out of range should be nil")
	}
	if tbl.Column("nope") != nil {
		t.Error("Column(nope) should be nil")
	}
}

func TestSortDesc(t *testing.T) {
	tbl := New("w", "a", "b")
	tbl.Append("x", 1.0, 5.0)
	tbl.Append("y", 2.0, 1.0)
	tbl.Append("z", 1.0, 7.0)
	tbl.Append("n", nil, 9.0)
	tbl.Append("v", 2.0, 1.0)

	tbl.SortDesc("a", "b")

	want := []any{"y", "v", "z", "x", "n"}
	if got := firstColumn(tbl); !reflect.DeepEqual(got, want) {
		t.Errorf("SortDesc() order = %v, want %v", got, want)
	}
}

func TestSortAsc(t *testing.T) {
	tbl := New("w", "mean")
	tbl.Append("a", 0.3)
	tbl.Append("b", math.NaN())
	tbl.Append("c", -0.1)
	tbl.Append("d", 2) // ints compare numerically with floats

	tbl.SortAsc("mean")

	want := []any{"c", "a", "d", "b"}
	if got := firstColumn(tbl); !reflect.DeepEqual(got, want) {
		t.Errorf("SortAsc() order = %v, want %v", got, want)
	}
}

func TestSortByString(t *testing.T) {
	tbl := New("w")
	tbl.Append("pear")
	tbl.Append("apple")
	tbl.SortAsc("w")
	if got := firstColumn(tbl); !reflect.DeepEqual(got, []any{"apple", "pear"}) {
		t.Errorf("SortAsc(strings) = %v", got)
	}
}

func TestHead(t *testing.T) {
	tbl := New("n")
	for i := 0; i < 5; i++ {
		tbl.Append(i)
	}
	tests := []struct {
		n    int
		want int
	}{
		{2, 2},
		{0, 0},
		{10, 5},
		{-1, 5},
	}
	for _, tt := range tests {
		if got := tbl.Head(tt.n).Len(); got != tt.want {
			t.Errorf("Head(%d).Len() = %d, want %d", tt.n, got, tt.want)
		}
	}

	head := tbl.Head(2)
	head.Append(99)
	if tbl.Len() != 5 {
		t.Error("appending to Head() result changed the original")
	}
}

func TestMarshalJSON(t *testing.T) {
	tbl := New("", "emb1", "MEAN", "STD")
	tbl.Append("similarity", 0.25, 0.25, math.NaN())

	data, err := json.Marshal(tbl)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `[{"":"similarity","emb1":0.25,"MEAN":0.25,"STD":null}]`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	empty, err := json.Marshal(New("a"))
	if err != nil {
		t.Fatalf("Marshal(empty) error = %v", err)
	}
	if string(empty) != "[]" {
		t.Errorf("Marshal(empty) = %s, want []", empty)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v         any
		precision int
		want      string
	}{
		{0.123456, 2, "0.12"},
		{0.5, 0, "0.5000"},
		{nil, 3, Missing},
		{"king", 3, "king"},
		{42, 3, "42"},
		{true, 3, "true"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.v, tt.precision); got != tt.want {
			t.Errorf("FormatValue(%v, %d) = %q, want %q", tt.v, tt.precision, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	tbl := New("word", "score")
	tbl.Append("king", 0.987654)
	tbl.Append("queen", 0.5)
	tbl.Append("prince", nil)

	out := tbl.Render(Format{Precision: 2, MaxRows: 2})
	for _, want := range []string{"word", "score", "king", "0.99", "queen", "1 more rows"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "prince") {
		t.Errorf("Render() should hide rows past MaxRows:\n%s", out)
	}
}
