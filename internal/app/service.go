// Package app wires the scoring engines to logging, metrics and
// correlation ids. Adapters (CLI, form, case files) talk to it only.
package app

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/okian/hacor/internal/domain/model"
	"github.com/okian/hacor/internal/domain/risk"
	"github.com/okian/hacor/internal/domain/scoring"
	"github.com/okian/hacor/internal/domain/sofa"
	"github.com/okian/hacor/pkg/logger"
	"github.com/okian/hacor/pkg/metrics"
)

// Failure reasons used as metric labels.
const (
	reasonMissingInput = "missing_input"
	reasonCatalog      = "points_not_in_catalog"
	reasonCanceled     = "canceled"
	reasonOther        = "other"
)

// Request is one calculation. When SOFA is non-nil its components replace
// Input.SOFA, the same way applying the SOFA dialog overwrites the field.
type Request struct {
	Input model.HACORInput
	SOFA  *model.SOFAInput
}

// Service runs assessments.
type Service struct {
	logger       logger.Logger
	strict       bool
	batchWorkers int
	newID        func() string
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStrictPoints toggles rejection of point values outside the catalogs.
// Off by default: the engine sums whatever integers it is given.
func WithStrictPoints(strict bool) Option {
	return func(s *Service) {
		s.strict = strict
	}
}

// WithBatchWorkers bounds concurrent case evaluation in AssessBatch.
func WithBatchWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchWorkers = n
		}
	}
}

// WithIDGenerator replaces the correlation id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New constructs a Service. Without WithLogger the global logger is used,
// so logger.Init must have run.
func New(opts ...Option) *Service {
	s := &Service{
		batchWorkers: runtime.NumCPU(),
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	return s
}

// SubScore sums the six SOFA components.
func (s *Service) SubScore(ctx context.Context, in model.SOFAInput) int {
	v := sofa.ComputeSubScore(in)
	metrics.RecordSubScore(v)
	s.logger.Debug(ctx, "sofa sub-score computed", logger.Int("sofa", v))
	return v
}

// Classify maps a score to its risk tier.
func (s *Service) Classify(ctx context.Context, score float64) risk.Tier {
	t := risk.Classify(score)
	s.logger.Debug(ctx, "score classified",
		logger.Float64("score", score),
		logger.String("tier", t.Level.String()),
	)
	return t
}

// Assess computes the score, its breakdown and its tier.
func (s *Service) Assess(ctx context.Context, req Request) (model.Assessment, error) {
	return s.assess(ctx, s.newID(), req)
}

func (s *Service) assess(ctx context.Context, id string, req Request) (model.Assessment, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		s.fail(ctx, id, reasonCanceled, err)
		return model.Assessment{}, err
	}

	in := req.Input
	if req.SOFA != nil {
		in.SOFA = float64(s.SubScore(ctx, *req.SOFA))
	}

	if s.strict {
		if err := checkCatalog(in, req.SOFA); err != nil {
			s.fail(ctx, id, reasonCatalog, err)
			return model.Assessment{}, err
		}
	}

	b, err := scoring.Explain(in)
	if err != nil {
		reason := reasonOther
		if errors.Is(err, scoring.ErrMissingInput) {
			reason = reasonMissingInput
		}
		s.fail(ctx, id, reason, err)
		return model.Assessment{}, err
	}

	tier := risk.Classify(b.Score)
	metrics.RecordAssessment(tier.Level.String(), b.Score)
	metrics.RecordAssessmentLatency(float64(time.Since(start).Microseconds()) / 1000)

	s.logger.Debug(ctx, "assessment computed",
		logger.String("id", id),
		logger.Int("base", b.Base),
		logger.Float64("sofa", b.SOFA),
		logger.Float64("score", b.Score),
		logger.String("tier", tier.Level.String()),
	)

	return model.Assessment{ID: id, Breakdown: b, Score: b.Score, Tier: tier}, nil
}

func (s *Service) fail(ctx context.Context, id, reason string, err error) {
	metrics.RecordAssessmentFailure(reason)
	metrics.RecordErrorByComponent("service", reason)
	s.logger.Warn(ctx, "assessment rejected",
		logger.String("id", id),
		logger.String("reason", reason),
		logger.Error(err),
	)
}

// checkCatalog returns a *PointsError for the first selection whose value
// is not offered by its component.
func checkCatalog(in model.HACORInput, sofaIn *model.SOFAInput) error {
	hacor := scoring.Components()
	for i, sel := range scoring.Selections(in) {
		if p, ok := sel.Points(); ok && !hacor[i].Contains(p) {
			return &PointsError{Component: hacor[i].Key, Points: p}
		}
	}
	if sofaIn == nil {
		return nil
	}
	organs := sofa.Components()
	for i, sel := range sofaIn.Values() {
		if p, ok := sel.Points(); ok && !organs[i].Contains(p) {
			return &PointsError{Component: organs[i].Key, Points: p}
		}
	}
	return nil
}
