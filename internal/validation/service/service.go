package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"cadastro/internal/validation/metrics"
	"cadastro/internal/validation/models"
	"cadastro/pkg/cnpj"
	dErrors "cadastro/pkg/domain-errors"
	"cadastro/pkg/requestcontext"
)

const (
	tracerName = "cadastro/internal/validation"

	defaultBatchLimit  = 1000
	defaultConcurrency = 8
)

// Service validates and formats CNPJ numbers for the transport layers.
// The checksum itself lives in pkg/cnpj; this layer adds verdict shaping,
// batching, metrics and tracing.
type Service struct {
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
	batchLimit  int
	concurrency int
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithBatchLimit caps the number of inputs accepted by ValidateBatch.
func WithBatchLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.batchLimit = limit
		}
	}
}

// WithConcurrency caps the number of inputs validated in parallel.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// New constructs a Service.
func New(opts ...Option) *Service {
	s := &Service{
		tracer:      otel.Tracer(tracerName),
		batchLimit:  defaultBatchLimit,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BatchLimit reports the largest batch ValidateBatch accepts.
func (s *Service) BatchLimit() int {
	return s.batchLimit
}

// Validate returns the verdict for raw. An invalid identifier is a normal
// result, not an error.
func (s *Service) Validate(ctx context.Context, raw string) models.Result {
	ctx, span := s.tracer.Start(ctx, "validation.Validate")
	defer span.End()

	result := s.validate(ctx, raw)
	span.SetAttributes(
		attribute.Bool("cnpj.valid", result.Valid),
		attribute.String("cnpj.reason", string(result.Reason)),
	)
	return result
}

func (s *Service) validate(ctx context.Context, raw string) models.Result {
	reason := models.ReasonFor(cnpj.Check(raw))
	s.metrics.IncrementOutcome(reason.Outcome())

	return models.Result{
		Input:     raw,
		Digits:    cnpj.Digits(raw),
		Masked:    cnpj.Format(raw),
		Valid:     reason == models.ReasonNone,
		Reason:    reason,
		CheckedAt: requestcontext.Now(ctx),
	}
}

// ValidateBatch validates raws concurrently and returns the verdicts in
// input order. It fails only for an empty or oversized batch or when ctx is
// done before every input was checked: a passed deadline is a timeout, any
// other cancellation means the caller went away.
func (s *Service) ValidateBatch(ctx context.Context, raws []string) ([]models.Result, error) {
	if len(raws) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "batch must contain at least one cnpj")
	}
	if len(raws) > s.batchLimit {
		return nil, dErrors.New(dErrors.CodeValidation, "batch exceeds the maximum size")
	}

	ctx, span := s.tracer.Start(ctx, "validation.ValidateBatch",
		trace.WithAttributes(attribute.Int("batch.size", len(raws))))
	defer span.End()

	start := time.Now()
	// One timestamp for the whole batch.
	ctx = requestcontext.WithTime(ctx, requestcontext.Now(ctx))

	results := make([]models.Result, len(raws))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, raw := range raws {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.validate(gctx, raw)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch cancelled")
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "batch validation did not complete")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeCanceled, "batch validation was cancelled")
	}

	elapsed := time.Since(start)
	s.metrics.ObserveBatch(len(raws), elapsed)

	valid := 0
	for _, r := range results {
		if r.Valid {
			valid++
		}
	}
	span.SetAttributes(attribute.Int("batch.valid", valid))
	if s.logger != nil {
		s.logger.DebugContext(ctx, "batch validated",
			"request_id", requestcontext.RequestID(ctx),
			"size", len(raws),
			"valid", valid,
			"duration_ms", elapsed.Milliseconds(),
		)
	}
	return results, nil
}

// Format masks raw.
func (s *Service) Format(ctx context.Context, raw string) models.FormatResult {
	_, span := s.tracer.Start(ctx, "validation.Format")
	defer span.End()

	s.metrics.IncrementFormats()
	return models.FormatResult{Input: raw, Masked: cnpj.Format(raw)}
}

// Reserved lists the reserved repeated-digit numbers.
func (s *Service) Reserved() []string {
	return cnpj.ReservedNumbers()
}
