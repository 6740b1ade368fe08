package executor

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/metrics"
)

// QueryResult is the ranked result list of one query.
type QueryResult struct {
	QueryNumber int
	Terms       []string
	Results     []ranker.Result
}

// Executor ranks a batch of queries against one engine. Queries are
// independent, so they run on a bounded pool of goroutines; results keep
// the input order. Queries with the same term set are ranked once.
type Executor struct {
	engine  *ranker.Engine
	cache   *cache.QueryCache
	workers int
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New returns an executor. workers <= 0 means GOMAXPROCS. m may be nil.
func New(engine *ranker.Engine, workers int, m *metrics.Metrics, logger *slog.Logger) *Executor {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		engine:  engine,
		cache:   cache.New(),
		workers: workers,
		metrics: m,
		logger:  logger.With("component", "query-executor"),
	}
}

// Execute ranks every plan. It stops at the first cancelled context.
func (e *Executor) Execute(ctx context.Context, plans []*parser.QueryPlan) ([]QueryResult, error) {
	start := time.Now()
	out := make([]QueryResult, len(plans))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, plan := range plans {
		i, plan := i, plan
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results, _ := e.cache.GetOrCompute(plan.Terms, func() []ranker.Result {
				return e.engine.Rank(plan.Terms)
			})
			out[i] = QueryResult{
				QueryNumber: plan.Number,
				Terms:       plan.Terms,
				Results:     results,
			}
			e.metrics.ObserveQuery(len(results))
			e.logger.Debug("query ranked",
				"query", plan.Number,
				"terms", len(plan.Terms),
				"results", len(results),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var empty int
	for _, r := range out {
		if len(r.Results) == 0 {
			empty++
		}
	}
	hits, _ := e.cache.Stats()
	e.logger.Info("queries executed",
		"queries", len(plans),
		"zero_result", empty,
		"distinct_term_sets", e.cache.Len(),
		"cache_hits", hits,
		"workers", e.workers,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}
