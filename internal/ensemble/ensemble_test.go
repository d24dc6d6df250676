package ensemble

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matsen/embeddings/internal/corpus"
	"github.com/matsen/embeddings/internal/diag"
	"github.com/matsen/embeddings/internal/dimension"
	"github.com/matsen/embeddings/internal/embedding"
	"github.com/matsen/embeddings/internal/vecstore"
	"github.com/matsen/embeddings/internal/vector"
)

const tol = 1e-9

var fixtureVectors = map[string]vector.Vector{
	"man":   {1, 0, 0},
	"woman": {0, 1, 0},
	"king":  {1, 0, 1},
	"queen": {0, 1, 1},
	"apple": {0, 0, -1},
}

// member builds an embedding over words, taking vectors from fixtureVectors
// perturbed by shift along the z axis.
func member(t *testing.T, name string, shift float64, words ...string) *embedding.Embedding {
	t.Helper()
	vecs := make([]vector.Vector, len(words))
	for i, w := range words {
		v := fixtureVectors[w].Clone()
		v[2] += shift
		vecs[i] = v
	}
	e, err := embedding.New(name, words, vecs)
	if err != nil {
		t.Fatalf("embedding.New() error = %v", err)
	}
	return e
}

func mustEnsemble(t *testing.T, members []*embedding.Embedding, opts ...Option) *Ensemble {
	t.Helper()
	en, err := New(members, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return en
}

func mustSet(t *testing.T, specs ...string) dimension.Set {
	t.Helper()
	var dims []dimension.Dimension
	for _, s := range specs {
		d, err := dimension.Parse(s)
		if err != nil {
			t.Fatalf("dimension.Parse(%q) error = %v", s, err)
		}
		dims = append(dims, d)
	}
	set, err := dimension.NewSet(dims...)
	if err != nil {
		t.Fatalf("NewSet() error = %v", err)
	}
	return set
}

func TestNew_Empty(t *testing.T) {
	_, err := New(nil)
	if !errors.Is(err, ErrNoEmbeddings) {
		t.Errorf("New(nil) error = %v, want ErrNoEmbeddings", err)
	}
	if !errors.Is(err, vecstore.ErrLoad) {
		t.Errorf("ErrNoEmbeddings should wrap vecstore.ErrLoad")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, words ...string) string {
		path := filepath.Join(dir, name)
		vecs := &vecstore.Vectors{Dim: 3}
		for _, w := range words {
			vecs.Words = append(vecs.Words, w)
			vecs.Vectors = append(vecs.Vectors, fixtureVectors[w])
		}
		if err := vecstore.Save(path, vecs); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		return path
	}
	b := write("run_b.emb", "man", "woman")
	a := write("run_a.emb", "man", "woman", "king")
	write("notes.txt", "apple")

	en, err := LoadGlob(context.Background(), DefaultPattern(filepath.Join(dir, "run_")))
	if err != nil {
		t.Fatalf("LoadGlob() error = %v", err)
	}
	if en.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", en.Len())
	}
	if en.Members()[0].Name() != "run_a" || en.Members()[1].Name() != "run_b" {
		t.Errorf("members = %s, %s; want lexical order", en.Members()[0].Name(), en.Members()[1].Name())
	}

	// Explicit paths keep their order, and so do the loading notices.
	c := write("run_c.emb", "king", "queen")
	notices := &diag.Collector{}
	en, err = Load(context.Background(), []string{b, a, c}, WithDiagnostics(notices))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if en.Members()[0].Name() != "run_b" {
		t.Errorf("Load() reordered members: first = %s", en.Members()[0].Name())
	}
	loading := notices.OfKind(diag.KindLoading)
	if len(loading) != 3 {
		t.Fatalf("loading notices = %d, want 3", len(loading))
	}
	for i, n := range loading {
		if !reflect.DeepEqual(n.Members, []int{i}) {
			t.Errorf("loading notice %d Members = %v, want [%d]", i, n.Members, i)
		}
	}

	if _, err := Load(context.Background(), []string{a, filepath.Join(dir, "missing.emb")}); !errors.Is(err, vecstore.ErrLoad) {
		t.Errorf("Load(missing member) error = %v, want vecstore.ErrLoad", err)
	}
	if _, err := LoadGlob(context.Background(), filepath.Join(dir, "nothing*.emb")); !errors.Is(err, ErrNoEmbeddings) {
		t.Errorf("LoadGlob(no match) error = %v, want ErrNoEmbeddings", err)
	}
	if _, err := Load(context.Background(), nil); !errors.Is(err, ErrNoEmbeddings) {
		t.Errorf("Load(nil) error = %v, want ErrNoEmbeddings", err)
	}
}

func TestSharedVocab(t *testing.T) {
	en := mustEnsemble(t, []*embedding.Embedding{
		member(t, "a", 0, "man", "woman", "king"),
		member(t, "b", 0, "woman", "man", "apple"),
	})
	if got := en.SharedVocab(); !reflect.DeepEqual(got, []string{"man", "woman"}) {
		t.Errorf("SharedVocab() = %v, want [man woman]", got)
	}
}

func TestInVocab(t *testing.T) {
	en := mustEnsemble(t, []*embedding.Embedding{
		member(t, "a", 0, "man", "king"),
		member(t, "b", 0, "man"),
	})
	tbl := en.InVocab("king")
	if want := []string{"", "emb1", "emb2", "MEAN"}; !reflect.DeepEqual(tbl.Columns, want) {
		t.Errorf("Columns = %v, want %v", tbl.Columns, want)
	}
	if tbl.Value(0, "emb1") != true || tbl.Value(0, "emb2") != false {
		t.Errorf("row = %v", tbl.Rows[0])
	}
	if m, _ := tbl.Float(0, ColMean); m != 0.5 {
		t.Errorf("MEAN = %v, want 0.5", m)
	}
}

func TestSimilarity(t *testing.T) {
	var c diag.Collector
	en := mustEnsemble(t, []*embedding.Embedding{
		member(t, "a", 0, "man", "king"),
		member(t, "b", 0.5, "man", "king"),
		member(t, "c", 0, "man"),
	}, WithDiagnostics(&c))

	tbl, err := en.Similarity("man", "king")
	if err != nil {
		t.Fatalf("Similarity() error = %v", err)
	}
	if len(tbl.Columns) != en.Len()+3 {
		t.Errorf("Columns = %v, want %d", tbl.Columns, en.Len()+3)
	}
	if tbl.Value(0, "emb3") != nil {
		t.Errorf("emb3 lacks king, cell = %v, want nil", tbl.Value(0, "emb3"))
	}

	s1, _ := tbl.Float(0, "emb1")
	s2, _ := tbl.Float(0, "emb2")
	mean, _ := tbl.Float(0, ColMean)
	if math.Abs(mean-(s1+s2)/2) > tol {
		t.Errorf("MEAN = %v, want %v", mean, (s1+s2)/2)
	}
	std, _ := tbl.Float(0, ColStd)
	if want := math.Abs(s1-s2) / math.Sqrt2; math.Abs(std-want) > tol {
		t.Errorf("STD = %v, want sample std %v", std, want)
	}

	partial := c.OfKind(diag.KindPairPartial)
	if len(partial) != 1 || !reflect.DeepEqual(partial[0].Members, []int{2}) {
		t.Errorf("pair_partial notices = %+v", partial)
	}
}

func TestSimilarities(t *testing.T) {
	var c diag.Collector
	en := mustEnsemble(t, []*embedding.Embedding{
		member(t, "a", 0, "man", "woman", "king", "apple"),
		member(t, "b", 0.3, "man", "woman", "king"),
	}, WithDiagnostics(&c))

	pairs := []embedding.WordPair{
		{First: "man", Second: "king"},
		{First: "man", Second: "woman"},
		{First: "man", Second: "apple"},
		{First: "queen", Second: "king"},
	}
	tbl, err := en.Similarities(pairs)
	if err != nil {
		t.Fatalf("Similarities() error = %v", err)
	}

	wantCols := []string{"Word1", "Word2", "Sim_emb1", "Sim_emb2", "MEAN", "STD"}
	if !reflect.DeepEqual(tbl.Columns, wantCols) {
		t.Errorf("Columns = %v, want %v", tbl.Columns, wantCols)
	}
	if tbl.Len() != 3 {
		t.Fatalf("rows = %d, want 3 (queen/king dropped)", tbl.Len())
	}

	prev := math.Inf(-1)
	for i := 0; i < tbl.Len(); i++ {
		mean, ok := tbl.Float(i, ColMean)
		if !ok {
			t.Fatalf("row %d has no MEAN", i)
		}
		if mean < prev {
			t.Errorf("rows not sorted by ascending MEAN")
		}
		prev = mean

		var sum float64
		var n int
		for _, col := range []string{"Sim_emb1", "Sim_emb2"} {
			if v, ok := tbl.Float(i, col); ok {
				sum += v
				n++
			}
		}
		if math.Abs(mean-sum/float64(n)) > tol {
			t.Errorf("row %d MEAN = %v, want mean of member cells %v", i, mean, sum/float64(n))
		}
	}

	if len(c.OfKind(diag.KindPairDropped)) != 1 {
		t.Errorf("pair_dropped notices = %v", c.OfKind(diag.KindPairDropped))
	}
	if len(c.OfKind(diag.KindPairPartial)) != 1 {
		t.Errorf("pair_partial notices = %v", c.OfKind(diag.KindPairPartial))
	}

	withFreq := mustEnsemble(t, en.Members(), WithTrainingData(corpus.FromSentences([][]string{{"man", "man", "king"}})))
	tbl, _ = withFreq.Similarities(pairs[:1])
	if tbl.Value(0, "Word1_freq") != 2 || tbl.Value(0, "Word2_freq") != 1 {
		t.Errorf("frequency columns = %v", tbl.Rows[0])
	}
}

// The two-embedding scenario: B lacks "king", so only A defines "royal".
func TestProjectionsToUnipolarDimensions_MemberExcluded(t *testing.T) {
	a := member(t, "A", 0, "man", "woman", "king")
	b := member(t, "B", 0, "man", "woman")

	var c diag.Collector
	en := mustEnsemble(t, []*embedding.Embedding{a, b}, WithDiagnostics(&c))

	tbl, err := en.ProjectionsToUnipolarDimensions([]string{"man"}, mustSet(t, "royal=king"), true)
	if err != nil {
		t.Fatalf("ProjectionsToUnipolarDimensions() error = %v", err)
	}

	excluded := c.OfKind(diag.KindMemberExcluded)
	if len(excluded) != 1 || excluded[0].Dimension != "royal" || !reflect.DeepEqual(excluded[0].Members, []int{1}) {
		t.Fatalf("member_excluded notices = %+v, want embedding 2 excluded for royal", excluded)
	}

	single, err := a.ProjectionsToUnipolarDimensions([]string{"man"}, mustSet(t, "royal=king"), true)
	if err != nil {
		t.Fatalf("single ProjectionsToUnipolarDimensions() error = %v", err)
	}
	want, _ := single.Float(0, "royal")
	got, _ := tbl.Float(0, "royal")
	if math.Abs(got-want) > tol {
		t.Errorf("royal = %v, want embedding A's score %v", got, want)
	}
	if std, ok := tbl.Float(0, "royal"+StdSuffix); !ok || std != 0 {
		t.Errorf("royal(std) = %v, want 0", std)
	}
}

func TestProjectionsToUnipolarDimensions_TestWords(t *testing.T) {
	var c diag.Collector
	en := mustEnsemble(t, []*embedding.Embedding{
		member(t, "a", 0, "man", "woman", "king", "apple"),
		member(t, "b", 0.2, "man", "woman", "king"),
	}, WithDiagnostics(&c))

	dims := mustSet(t, "royal=king,prince", "people=man,woman")
	tbl, err := en.ProjectionsToUnipolarDimensions([]string{"xyzzy", "apple", "man"}, dims, true)
	if err != nil {
		t.Fatalf("ProjectionsToUnipolarDimensions() error = %v", err)
	}

	wantCols := []string{"test_word", "royal", "royal(std)", "people", "people(std)"}
	if !reflect.DeepEqual(tbl.Columns, wantCols) {
		t.Errorf("Columns = %v, want %v", tbl.Columns, wantCols)
	}
	if tbl.Len() != 2 {
		t.Errorf("rows = %d, want 2 (xyzzy dropped)", tbl.Len())
	}
	if tbl.Value(0, "test_word") != "man" {
		t.Errorf("first row = %v, want man (sorted descending)", tbl.Rows[0])
	}

	if got := c.OfKind(diag.KindTestWordDropped); len(got) != 1 || got[0].Word != "xyzzy" {
		t.Errorf("test_word_dropped = %+v", got)
	}
	if got := c.OfKind(diag.KindTestWordPartial); len(got) != 1 || got[0].Word != "apple" {
		t.Errorf("test_word_partial = %+v", got)
	}
	// "prince" is missing in both members.
	if got := c.OfKind(diag.KindClusterWordsMissing); len(got) != 2 {
		t.Errorf("cluster_words_missing = %+v, want one per member", got)
	}
}

func TestProjectionsToBipolarDimensions(t *testing.T) {
	var c diag.Collector
	en := mustEnsemble(t, []*embedding.Embedding{
		member(t, "a", 0, "man", "woman", "king", "queen"),
		member(t, "b", 0.1, "man", "woman", "king", "queen"),
		member(t, "c", 0, "man", "woman", "king"),
	}, WithDiagnostics(&c))

	dims := mustSet(t, "d=king:queen")
	tbl, err := en.ProjectionsToBipolarDimensions([]string{"queen", "king"}, dims, DefaultBipolarOptions())
	if err != nil {
		t.Fatalf("ProjectionsToBipolarDimensions() error = %v", err)
	}
	if len(tbl.Columns) != 1+2*len(dims) {
		t.Errorf("Columns = %v, want %d", tbl.Columns, 1+2*len(dims))
	}
	if tbl.Value(0, "test_word") != "king" {
		t.Errorf("first row = %v, want king", tbl.Rows[0])
	}
	king, _ := tbl.Float(0, "d")
	queen, _ := tbl.Float(1, "d")
	if king <= 0 || queen >= 0 {
		t.Errorf("king = %v, queen = %v; want positive, negative", king, queen)
	}

	excluded := c.OfKind(diag.KindMemberExcluded)
	if len(excluded) != 1 || excluded[0].Cluster != "right" || excluded[0].Members[0] != 2 {
		t.Errorf("member_excluded = %+v, want emb3 right cluster", excluded)
	}

	if _, err := en.ProjectionsToBipolarDimensions([]string{"man"}, mustSet(t, "royal=king"), DefaultBipolarOptions()); !errors.Is(err, dimension.ErrInvalidSpec) {
		t.Errorf("unipolar dimension error = %v, want ErrInvalidSpec", err)
	}
	if _, err := en.ProjectionsToUnipolarDimensions([]string{"man"}, dims, true); !errors.Is(err, dimension.ErrInvalidSpec) {
		t.Errorf("bipolar dimension error = %v, want ErrInvalidSpec", err)
	}
}

func TestProjectionsToBipolarDimensions_ExcludedMemberReportsMissing(t *testing.T) {
	var c diag.Collector
	en := mustEnsemble(t, []*embedding.Embedding{
		member(t, "a", 0, "man", "woman", "king", "queen"),
		member(t, "b", 0, "man", "woman", "king"),
	}, WithDiagnostics(&c))

	// Member b knows only king on the left and nothing on the right.
	if _, err := en.ProjectionsToBipolarDimensions([]string{"man"}, mustSet(t, "d=king,prince:queen"), DefaultBipolarOptions()); err != nil {
		t.Fatalf("ProjectionsToBipolarDimensions() error = %v", err)
	}

	var got []diag.Notice
	for _, n := range c.Notices() {
		if len(n.Members) == 1 && n.Members[0] == 1 {
			got = append(got, n)
		}
	}
	if len(got) != 2 {
		t.Fatalf("notices for emb2 = %+v, want missing then excluded", got)
	}
	if got[0].Kind != diag.KindClusterWordsMissing || got[0].Cluster != "left" || !reflect.DeepEqual(got[0].Words, []string{"prince"}) {
		t.Errorf("first notice = %+v, want left cluster missing [prince]", got[0])
	}
	if got[1].Kind != diag.KindMemberExcluded || got[1].Cluster != "right" {
		t.Errorf("second notice = %+v, want right cluster exclusion", got[1])
	}
}

func TestProjections_NoContributions(t *testing.T) {
	var c diag.Collector
	en := mustEnsemble(t, []*embedding.Embedding{
		member(t, "a", 0, "man", "king"),
		member(t, "b", 0, "man", "apple"),
	}, WithDiagnostics(&c))

	// Only member a knows king, only member b knows apple.
	tbl, err := en.ProjectionsToUnipolarDimensions([]string{"apple"}, mustSet(t, "royal=king"), true)
	if err != nil {
		t.Fatalf("ProjectionsToUnipolarDimensions() error = %v", err)
	}
	if tbl.Value(0, "royal") != nil || tbl.Value(0, "royal(std)") != nil {
		t.Errorf("row = %v, want nil score", tbl.Rows[0])
	}
	if len(c.OfKind(diag.KindNoContributions)) != 1 {
		t.Errorf("no_contributions notices = %v", c.OfKind(diag.KindNoContributions))
	}
}
