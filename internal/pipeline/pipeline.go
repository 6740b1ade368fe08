// Package pipeline runs the four batch stages: inverted-list generation,
// vector model building, query processing and search. Each stage reads its
// KEY=VALUE stage file, owns its file handles, writes its outputs atomically
// and returns a typed error to the caller.
package pipeline

import (
	"context"
	"io"
	"log/slog"
	"strconv"

	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/indexer/segment"
	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/ingestion"
	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/ingestion/validator"
	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/tracing"
)

// Stage names, used in logs, spans, metrics and errors.
const (
	StageIndex   = "index"
	StageModel   = "model"
	StageQueries = "queries"
	StageSearch  = "search"
)

// Pipeline holds what every stage needs: the configuration, the run's
// metrics and the base logger.
type Pipeline struct {
	cfg     *config.Config
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New returns a pipeline. A nil m gets a fresh, unpushed registry.
func New(cfg *config.Config, m *metrics.Metrics, log *slog.Logger) *Pipeline {
	if m == nil {
		m = metrics.New()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		cfg:     cfg,
		metrics: m,
		logger:  logger.WithComponent(log, "pipeline"),
	}
}

// Metrics returns the registry the pipeline records into.
func (p *Pipeline) Metrics() *metrics.Metrics {
	return p.metrics
}

// RunAll runs index, model, queries and search in order and stops at the
// first failure. The span tree of the run is logged when it returns.
func (p *Pipeline) RunAll(ctx context.Context) error {
	ctx, root := tracing.StartSpan(ctx, "pipeline", logger.RunID(ctx))
	log := logger.FromContext(ctx, p.logger)
	defer func() {
		root.End()
		root.Log(log)
	}()

	stages := []func(context.Context) error{p.RunIndex, p.RunModel, p.RunQueries, p.RunSearch}
	for _, run := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := run(ctx); err != nil {
			root.SetAttr("outcome", apperrors.Kind(err))
			return err
		}
	}
	root.SetAttr("outcome", "success")
	log.Info("pipeline completed")
	return nil
}

// stage wraps one stage run with a child span, timing, metrics and
// start/finish logging. Failures are returned, not logged.
func (p *Pipeline) stage(ctx context.Context, name string, fn func(context.Context, *slog.Logger, *tracing.Span) error) error {
	ctx, span := tracing.StartChildSpan(ctx, name)
	log := logger.FromContext(ctx, p.logger).With("stage", name)
	log.Info("stage started")

	err := fn(ctx, log, span)
	elapsed := span.End()
	outcome := "success"
	if err != nil {
		outcome = apperrors.Kind(err)
	}
	span.SetAttr("outcome", outcome)
	p.metrics.ObserveStage(name, outcome, elapsed.Seconds())
	if err != nil {
		return err
	}
	log.Info("stage completed", "duration_ms", elapsed.Milliseconds())
	return nil
}

func (p *Pipeline) readStage(name string) (*config.StageFile, error) {
	return config.ReadStageFile(p.cfg.StagePath(name))
}

// RunIndex reads every corpus file named by LEIA, tokenizes each record and
// writes the inverted list to ESCREVA. A record number repeated across files
// is indexed once, with the text read last.
func (p *Pipeline) RunIndex(ctx context.Context) error {
	return p.stage(ctx, StageIndex, func(ctx context.Context, log *slog.Logger, span *tracing.Span) error {
		sf, err := p.readStage(p.cfg.Stages.Index)
		if err != nil {
			return err
		}
		st, err := sf.IndexStage()
		if err != nil {
			return err
		}

		corpus := ingestion.NewCorpus()
		for _, name := range st.Read {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := p.cfg.DataPath(name)
			records, err := readCorpusFile(path)
			if err != nil {
				return err
			}
			replaced := corpus.Add(records...)
			p.metrics.DocumentsRead.Add(float64(len(records)))
			log.Info("corpus file read", "file", path, "records", len(records), "replaced", replaced)
		}

		builder := index.NewBuilder()
		for _, r := range corpus.Records() {
			builder.AddDocument(r.Number, r.Text)
		}

		docs := builder.DocCount()
		list := builder.Build()
		out := p.cfg.ResultPath(st.Write)
		if err := segment.WriteFile(StageIndex, out, list.Encode); err != nil {
			return err
		}
		span.SetAttr("documents", docs)
		span.SetAttr("terms", list.Len())
		log.Info("inverted list written", "file", out, "documents", docs, "terms", list.Len())
		return nil
	})
}

func readCorpusFile(path string) ([]ingestion.Record, error) {
	f, err := segment.OpenFile(StageIndex, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	records, err := ingestion.ReadCorpus(f, path)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateRecords(records); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInputFormat, StageIndex, path, err)
	}
	return records, nil
}

// RunModel reads the inverted list named by LEIA, builds the tf-idf vector
// model and writes it to ESCREVA.
func (p *Pipeline) RunModel(ctx context.Context) error {
	return p.stage(ctx, StageModel, func(ctx context.Context, log *slog.Logger, span *tracing.Span) error {
		sf, err := p.readStage(p.cfg.Stages.Model)
		if err != nil {
			return err
		}
		st, err := sf.ModelStage()
		if err != nil {
			return err
		}

		in := p.cfg.ResultPath(st.Read)
		list, err := readInvertedList(in)
		if err != nil {
			return err
		}
		log.Info("inverted list read", "file", in, "terms", list.Len())

		builder := indexer.NewBuilder(indexer.Options{
			Filter:        indexer.NewAlphaFilter(p.cfg.Model.MinTermLength),
			Normalization: p.cfg.Model.Normalization,
			LogBase:       p.cfg.Model.LogBase,
		}, log)
		res, err := builder.Build(list)
		if err != nil {
			return err
		}

		weights := res.Model.Weights
		p.metrics.TermsKept.Set(float64(weights.NumTerms()))
		p.metrics.TermsDiscarded.Set(float64(len(res.Discarded)))
		p.metrics.ModelDocuments.Set(float64(weights.NumDocs()))

		out := p.cfg.ResultPath(st.Write)
		if err := segment.WriteFile(StageModel, out, func(w io.Writer) error {
			return segment.EncodeModel(w, res.Model)
		}); err != nil {
			return err
		}
		span.SetAttr("terms", weights.NumTerms())
		span.SetAttr("documents", weights.NumDocs())
		log.Info("vector model written", "file", out, "terms", weights.NumTerms(), "documents", weights.NumDocs())
		return nil
	})
}

func readInvertedList(path string) (*index.InvertedList, error) {
	f, err := segment.OpenFile(StageModel, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return index.Decode(f, path)
}

// RunQueries reads the query corpus named by LEIA and writes the processed
// queries to CONSULTAS and the assessor rankings to ESPERADOS.
func (p *Pipeline) RunQueries(ctx context.Context) error {
	return p.stage(ctx, StageQueries, func(ctx context.Context, log *slog.Logger, span *tracing.Span) error {
		sf, err := p.readStage(p.cfg.Stages.Queries)
		if err != nil {
			return err
		}
		st, err := sf.QueryStage()
		if err != nil {
			return err
		}

		in := p.cfg.DataPath(st.Read)
		queries, err := readQueryFile(in)
		if err != nil {
			return err
		}
		log.Info("queries read", "file", in, "queries", len(queries))

		processed := make([]parser.Query, 0, len(queries))
		var expected []executor.RankRow
		for _, q := range queries {
			processed = append(processed, parser.Query{Number: q.Number, Text: q.Text})
			for i, d := range ingestion.RankExpected(q) {
				expected = append(expected, executor.RankRow{
					QueryNumber: q.Number,
					Rank:        i + 1,
					DocID:       d.DocNumber,
					Value:       strconv.Itoa(d.Votes),
				})
			}
		}

		queriesOut := p.cfg.ResultPath(st.Queries)
		if err := segment.WriteFile(StageQueries, queriesOut, func(w io.Writer) error {
			return parser.Encode(w, processed)
		}); err != nil {
			return err
		}
		expectedOut := p.cfg.ResultPath(st.Expected)
		if err := segment.WriteFile(StageQueries, expectedOut, func(w io.Writer) error {
			return executor.WriteRankRows(w, expected)
		}); err != nil {
			return err
		}
		p.metrics.QueriesProcessed.Add(float64(len(processed)))
		span.SetAttr("queries", len(processed))
		log.Info("queries written",
			"queries_file", queriesOut,
			"expected_file", expectedOut,
			"queries", len(processed),
			"expected_rows", len(expected),
		)
		return nil
	})
}

func readQueryFile(path string) ([]ingestion.Query, error) {
	f, err := segment.OpenFile(StageQueries, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	queries, err := ingestion.ReadQueries(f, path)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateQueries(queries); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInputFormat, StageQueries, path, err)
	}
	return queries, nil
}

// RunSearch loads the model named by MODELO, ranks every processed query in
// CONSULTAS and writes the results to RESULTADOS in query order.
func (p *Pipeline) RunSearch(ctx context.Context) error {
	return p.stage(ctx, StageSearch, func(ctx context.Context, log *slog.Logger, span *tracing.Span) error {
		sf, err := p.readStage(p.cfg.Stages.Search)
		if err != nil {
			return err
		}
		st, err := sf.SearchStage()
		if err != nil {
			return err
		}

		modelPath := p.cfg.ResultPath(st.Model)
		model, err := segment.ReadModel(modelPath)
		if err != nil {
			return err
		}
		log.Info("vector model read", "file", modelPath,
			"terms", model.Weights.NumTerms(),
			"documents", model.Weights.NumDocs(),
		)

		queriesPath := p.cfg.ResultPath(st.Queries)
		queries, err := readProcessedQueries(queriesPath)
		if err != nil {
			return err
		}
		plans := make([]*parser.QueryPlan, 0, len(queries))
		for _, q := range queries {
			plans = append(plans, parser.Parse(q))
		}

		exec := executor.New(ranker.NewEngine(model), p.cfg.Search.Workers, p.metrics, log)
		results, err := exec.Execute(ctx, plans)
		if err != nil {
			return err
		}

		rows := executor.ResultRows(results)
		out := p.cfg.ResultPath(st.Results)
		if err := segment.WriteFile(StageSearch, out, func(w io.Writer) error {
			return executor.WriteRankRows(w, rows)
		}); err != nil {
			return err
		}
		span.SetAttr("queries", len(plans))
		span.SetAttr("results", len(rows))
		log.Info("results written", "file", out, "queries", len(plans), "rows", len(rows))
		return nil
	})
}

func readProcessedQueries(path string) ([]parser.Query, error) {
	f, err := segment.OpenFile(StageSearch, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parser.Decode(f, path)
}
