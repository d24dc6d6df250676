// Package ensemble replays single-embedding analyses across several
// embeddings and aggregates the results.
//
// Members may have different vocabularies. Structural problems (a malformed
// dimension) fail the whole call; missing words only shrink the set of
// members that contribute to a value, and are reported as diag notices.
package ensemble

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/matsen/embeddings/internal/corpus"
	"github.com/matsen/embeddings/internal/diag"
	"github.com/matsen/embeddings/internal/embedding"
	"github.com/matsen/embeddings/internal/vecstore"
)

// ErrNoEmbeddings is returned when an ensemble would have no members.
// It wraps vecstore.ErrLoad.
var ErrNoEmbeddings = fmt.Errorf("%w: no embeddings found", vecstore.ErrLoad)

// Ensemble is an ordered, non-empty list of embeddings.
type Ensemble struct {
	members []*embedding.Embedding
	corpus  *corpus.Corpus
	sink    diag.Sink
	load    []embedding.Option
}

// Option configures an Ensemble.
type Option func(*Ensemble)

// WithTrainingData attaches a corpus used for frequency columns.
func WithTrainingData(c *corpus.Corpus) Option {
	return func(en *Ensemble) {
		en.corpus = c
	}
}

// WithDiagnostics routes advisory notices to sink.
func WithDiagnostics(sink diag.Sink) Option {
	return func(en *Ensemble) {
		en.sink = sink
	}
}

// WithMemberOptions passes opts to every member loaded by Load or LoadGlob.
func WithMemberOptions(opts ...embedding.Option) Option {
	return func(en *Ensemble) {
		en.load = append(en.load, opts...)
	}
}

func newEnsemble(opts []Option) *Ensemble {
	en := &Ensemble{}
	for _, opt := range opts {
		opt(en)
	}
	en.sink = diag.Or(en.sink)
	return en
}

// New builds an ensemble from already loaded embeddings.
func New(members []*embedding.Embedding, opts ...Option) (*Ensemble, error) {
	if len(members) == 0 {
		return nil, ErrNoEmbeddings
	}
	en := newEnsemble(opts)
	en.members = append([]*embedding.Embedding(nil), members...)
	return en, nil
}

// Load reads every path concurrently. Members keep the order of paths, and
// loading notices follow that order once every member is read. The first
// failure aborts the load and no partial ensemble is returned.
func Load(ctx context.Context, paths []string, opts ...Option) (*Ensemble, error) {
	if len(paths) == 0 {
		return nil, ErrNoEmbeddings
	}
	en := newEnsemble(opts)
	members := make([]*embedding.Embedding, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := embedding.Load(path, en.load...)
			if err != nil {
				return fmt.Errorf("loading member %d: %w", i+1, err)
			}
			members[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, m := range members {
		en.sink.Notify(diag.Notice{
			Kind:    diag.KindLoading,
			Message: fmt.Sprintf("loaded %s as %s (%d words)", paths[i], Label(i), m.VocabSize()),
			Members: []int{i},
		})
	}
	en.members = members
	return en, nil
}

// DefaultPattern matches embedding files under prefix.
func DefaultPattern(prefix string) string {
	return prefix + "*" + vecstore.DefaultExtension
}

// LoadGlob loads every file matching pattern, in lexical order.
func LoadGlob(ctx context.Context, pattern string, opts ...Option) (*Ensemble, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", vecstore.ErrLoad, pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: pattern %q matched no files", ErrNoEmbeddings, pattern)
	}
	sort.Strings(paths)
	return Load(ctx, paths, opts...)
}

// Label returns the column label of the i-th (zero-based) member.
func Label(i int) string {
	return fmt.Sprintf("emb%d", i+1)
}

// Len returns the number of members.
func (en *Ensemble) Len() int {
	return len(en.members)
}

// Members returns the member embeddings in order.
func (en *Ensemble) Members() []*embedding.Embedding {
	return append([]*embedding.Embedding(nil), en.members...)
}

// Labels returns emb1..embN.
func (en *Ensemble) Labels() []string {
	out := make([]string, len(en.members))
	for i := range out {
		out[i] = Label(i)
	}
	return out
}

// HasTrainingData reports whether a corpus is attached.
func (en *Ensemble) HasTrainingData() bool {
	return en.corpus != nil
}

// SharedVocab returns the sorted words present in every member.
func (en *Ensemble) SharedVocab() []string {
	first, _ := en.members[0].Vocab(0)
	var out []string
	for _, w := range first {
		shared := true
		for _, m := range en.members[1:] {
			if !m.InVocab(w) {
				shared = false
				break
			}
		}
		if shared {
			out = append(out, w)
		}
	}
	return out
}

// membersWith returns the indices of members that have word, and those that
// do not.
func (en *Ensemble) membersWith(words ...string) (have, missing []int) {
	for i, m := range en.members {
		ok := true
		for _, w := range words {
			if !m.InVocab(w) {
				ok = false
				break
			}
		}
		if ok {
			have = append(have, i)
		} else {
			missing = append(missing, i)
		}
	}
	return have, missing
}

func labelsOf(idx []int) []string {
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = Label(j)
	}
	return out
}
