package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/hacor/internal/domain/model"
	"github.com/okian/hacor/pkg/logger"
	"github.com/okian/hacor/pkg/metrics"
)

// Case is one entry of a batch.
type Case struct {
	ID      string
	Request Request
}

// CaseResult pairs a case with its assessment or its error.
type CaseResult struct {
	ID         string
	Assessment model.Assessment
	Err        error
}

// BatchSummary counts the outcomes of a batch.
type BatchSummary struct {
	Scored int
	Failed int
}

// Summarize counts scored and failed results.
func Summarize(results []CaseResult) BatchSummary {
	var sum BatchSummary
	for _, r := range results {
		if r.Err != nil {
			sum.Failed++
			continue
		}
		sum.Scored++
	}
	return sum
}

// AssessBatch evaluates every case with at most the configured number of
// concurrent workers. Per-case failures are reported in the results, which
// keep input order; only context cancellation fails the whole batch.
func (s *Service) AssessBatch(ctx context.Context, cases []Case) ([]CaseResult, error) {
	if len(cases) == 0 {
		return nil, ErrEmptyBatch
	}

	start := time.Now()
	metrics.UpdateBatchWorkers(s.batchWorkers)

	results := make([]CaseResult, len(cases))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchWorkers)

	for i, c := range cases {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			id := c.ID
			if id == "" {
				id = s.newID()
			}
			a, err := s.assess(gctx, id, c.Request)
			results[i] = CaseResult{ID: id, Assessment: a, Err: err}
			if err != nil {
				metrics.RecordBatchCase("failed")
			} else {
				metrics.RecordBatchCase("scored")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn(ctx, "batch aborted", logger.Error(err))
		return nil, err
	}
	// A cancellation that raced the last case is still a cancellation.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sum := Summarize(results)
	metrics.RecordBatchDuration(float64(time.Since(start).Microseconds()) / 1000)
	s.logger.Info(ctx, "batch completed",
		logger.Int("cases", len(cases)),
		logger.Int("scored", sum.Scored),
		logger.Int("failed", sum.Failed),
		logger.Int("workers", s.batchWorkers),
	)
	return results, nil
}
