package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/resilience"
)

// Push sends every collector on m's registry to the Pushgateway at url under
// job, grouped by run id. An empty url is a no-op.
func (m *Metrics) Push(ctx context.Context, url, job, runID string, logger *slog.Logger) error {
	if m == nil || url == "" {
		return nil
	}
	pusher := push.New(url, job).Gatherer(m.Registry)
	if runID != "" {
		pusher = pusher.Grouping("run_id", runID)
	}
	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("pushing metrics to %s: %w", url, err)
	}
	if logger != nil {
		logger.Info("metrics pushed", "url", url, "job", job)
	}
	return nil
}

// PushOptions configures PushWithRetry.
type PushOptions struct {
	URL      string
	Job      string
	RunID    string
	Attempts int
	Timeout  time.Duration
}

// PushWithRetry pushes like Push, bounding each attempt by opts.Timeout and
// retrying up to opts.Attempts times.
func (m *Metrics) PushWithRetry(ctx context.Context, opts PushOptions, logger *slog.Logger) error {
	if m == nil || opts.URL == "" {
		return nil
	}
	cfg := resilience.RetryConfig{MaxAttempts: opts.Attempts, AttemptTimeout: opts.Timeout}
	return resilience.Retry(ctx, "metrics-push", cfg, logger, func(ctx context.Context) error {
		return m.Push(ctx, opts.URL, opts.Job, opts.RunID, logger)
	})
}
