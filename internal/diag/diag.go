// Package diag carries advisory notices from analysis code to the caller.
//
// Notices describe data-availability gaps (words missing from a vocabulary,
// embeddings skipped for a dimension). They never abort a computation.
package diag

import (
	"context"
	"log/slog"
	"sync"
)

// Kind classifies a notice.
type Kind string

// Notice kinds emitted by the analysis packages.
const (
	KindClusterWordsMissing Kind = "cluster_words_missing"
	KindMemberExcluded      Kind = "member_excluded"
	KindTestWordDropped     Kind = "test_word_dropped"
	KindTestWordPartial     Kind = "test_word_partial"
	KindNoContributions     Kind = "no_contributions"
	KindPairPartial         Kind = "pair_partial"
	KindPairDropped         Kind = "pair_dropped"
	KindComponentNeighbors  Kind = "component_neighbors"
	KindLoading             Kind = "loading"
)

// Notice is a single structured diagnostic.
type Notice struct {
	Kind      Kind     `json:"kind"`
	Message   string   `json:"message"`
	Dimension string   `json:"dimension,omitempty"`
	Word      string   `json:"word,omitempty"`
	Words     []string `json:"words,omitempty"`
	Members   []int    `json:"members,omitempty"` // Zero-based member indices
	Cluster   string   `json:"cluster,omitempty"` // "left", "right" or "" for unipolar
}

// Sink receives notices. Operations in this module notify from a single
// goroutine, but a sink shared across concurrent calls must serialize
// Notify itself, as Collector does.
type Sink interface {
	Notify(n Notice)
}

// Discard drops every notice.
var Discard Sink = discard{}

type discard struct{}

func (discard) Notify(Notice) {}

// Collector stores notices in memory so tests and callers can inspect them.
type Collector struct {
	mu      sync.Mutex
	notices []Notice
}

// Notify implements Sink.
func (c *Collector) Notify(n Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, n)
}

// Notices returns a copy of the collected notices in arrival order.
func (c *Collector) Notices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notice, len(c.notices))
	copy(out, c.notices)
	return out
}

// OfKind returns the collected notices of the given kind.
func (c *Collector) OfKind(k Kind) []Notice {
	var out []Notice
	for _, n := range c.Notices() {
		if n.Kind == k {
			out = append(out, n)
		}
	}
	return out
}

// LogSink forwards notices to a slog.Logger at info level.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink returns a Sink writing to logger.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Notify implements Sink.
func (s *LogSink) Notify(n Notice) {
	attrs := []slog.Attr{slog.String("kind", string(n.Kind))}
	if n.Dimension != "" {
		attrs = append(attrs, slog.String("dimension", n.Dimension))
	}
	if n.Word != "" {
		attrs = append(attrs, slog.String("word", n.Word))
	}
	if len(n.Words) > 0 {
		attrs = append(attrs, slog.Any("words", n.Words))
	}
	if len(n.Members) > 0 {
		attrs = append(attrs, slog.Any("members", n.Members))
	}
	if n.Cluster != "" {
		attrs = append(attrs, slog.String("cluster", n.Cluster))
	}
	s.logger.LogAttrs(context.Background(), slog.LevelInfo, n.Message, attrs...)
}

// Or returns s, or Discard when s is nil.
func Or(s Sink) Sink {
	if s == nil {
		return Discard
	}
	return s
}
