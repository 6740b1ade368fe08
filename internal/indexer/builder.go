// Package indexer turns an inverted list into the vector model: it filters
// the vocabulary, counts raw term frequencies over the full document
// universe, optionally normalizes them, and weights them by idf.
package indexer

import (
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/indexer/matrix"
	apperrors "github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/errors"
)

// Options configures a Builder.
type Options struct {
	Filter        VocabularyFilter
	Normalization matrix.Axis
	LogBase       float64
}

// Result is the outcome of one build. Discarded lists the terms the
// vocabulary filter rejected, in list order.
type Result struct {
	Model     *matrix.Model
	Discarded []string
}

// Builder is the vector model builder. It holds no state between builds.
type Builder struct {
	opts   Options
	logger *slog.Logger
}

// NewBuilder returns a builder. Zero options default to an alphabetic
// filter of length 2, no normalization and base-10 logarithms.
func NewBuilder(opts Options, logger *slog.Logger) *Builder {
	if opts.Filter == nil {
		opts.Filter = NewAlphaFilter(2)
	}
	if opts.Normalization == "" {
		opts.Normalization = matrix.AxisNone
	}
	if opts.LogBase == 0 {
		opts.LogBase = 10
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		opts:   opts,
		logger: logger.With("component", "model-builder"),
	}
}

// Build runs filter → count → normalize → idf → weight over list. The
// document universe comes from the unfiltered list, so filtering never
// removes documents.
func (b *Builder) Build(list *index.InvertedList) (*Result, error) {
	docs := list.DocumentIDs()
	if len(docs) == 0 {
		return nil, apperrors.New(apperrors.ErrEmptyCorpus, "model", "", "inverted list has no document ids")
	}

	kept, discarded := Partition(list, b.opts.Filter)
	b.logger.Info("vocabulary filtered",
		"terms_kept", kept.Len(),
		"terms_discarded", len(discarded),
		"documents", len(docs),
	)

	tf, err := matrix.Count(kept, docs)
	if err != nil {
		return nil, err
	}
	normalized, err := matrix.Normalize(tf, b.opts.Normalization)
	if err != nil {
		return nil, err
	}
	idf, err := matrix.IDF(normalized, b.opts.LogBase)
	if err != nil {
		return nil, err
	}
	weights, err := matrix.Weight(normalized, idf)
	if err != nil {
		return nil, err
	}
	model, err := matrix.NewModel(weights, idf)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("vector model built",
		"normalization", b.opts.Normalization,
		"log_base", b.opts.LogBase,
	)
	return &Result{Model: model, Discarded: discarded}, nil
}
