package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/tempo-aqi-etl/internal/domain"
	"github.com/couchcryptid/tempo-aqi-etl/internal/observability"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Extractor reads the current set of NO2 samples from the source.
type Extractor interface {
	Extract(ctx context.Context) ([]domain.Sample, error)
}

// Loader persists or publishes a completed assessment.
type Loader interface {
	Load(ctx context.Context, a domain.Assessment) error
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLoaders appends loaders, which run in the order given.
func WithLoaders(loaders ...Loader) Option {
	return func(p *Pipeline) {
		p.loaders = append(p.loaders, loaders...)
	}
}

// WithInterval enables a periodic refresh. Zero disables it.
func WithInterval(d time.Duration) Option {
	return func(p *Pipeline) {
		p.interval = d
	}
}

// WithClock replaces the clock driving the refresh ticker and run timing.
func WithClock(c clockwork.Clock) Option {
	return func(p *Pipeline) {
		p.clock = c
	}
}

// Pipeline orchestrates extract-aggregate-advise-load runs. Runs are
// serialized; the most recent successful assessment is kept for readers.
type Pipeline struct {
	extractor Extractor
	loaders   []Loader
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
	interval  time.Duration

	runMu   sync.Mutex
	latest  atomic.Pointer[domain.Assessment]
	ready   atomic.Bool
	trigger chan struct{}
}

// New creates a Pipeline reading from e.
func New(e Extractor, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor: e,
		logger:    logger,
		metrics:   metrics,
		clock:     clockwork.NewRealClock(),
		trigger:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CheckReadiness returns nil once a run has succeeded.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not completed a successful run yet")
	}
	return nil
}

// Latest returns the most recent successful assessment.
func (p *Pipeline) Latest() (domain.Assessment, bool) {
	a := p.latest.Load()
	if a == nil {
		return domain.Assessment{}, false
	}
	return *a, true
}

// Trigger requests a run from the Run loop. It never blocks; requests made
// while one is already pending collapse into it.
func (p *Pipeline) Trigger() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// RunOnce performs a single complete run and returns its assessment. On
// failure the previously stored assessment is left untouched.
func (p *Pipeline) RunOnce(ctx context.Context) (domain.Assessment, error) {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	start := p.clock.Now()
	a, err := p.run(ctx)
	p.metrics.RunDuration.Observe(p.clock.Since(start).Seconds())
	if err != nil {
		kind := domain.ErrorKind(err)
		p.metrics.RunsTotal.WithLabelValues(kind).Inc()
		p.logger.Error("run failed", "error", err, "kind", kind)
		return domain.Assessment{}, err
	}

	p.metrics.RunsTotal.WithLabelValues("success").Inc()
	p.metrics.LastSuccess.Set(float64(a.GeneratedAt.Unix()))
	p.latest.Store(&a)
	p.ready.Store(true)
	p.logger.Info("run completed",
		"run_id", a.RunID,
		"samples", a.Samples,
		"points", len(a.Points),
		"outside_coverage", a.OutsideCoverage(),
		"zones", len(a.Zones),
	)
	return a, nil
}

func (p *Pipeline) run(ctx context.Context) (domain.Assessment, error) {
	samples, err := p.extractor.Extract(ctx)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("extract: %w", err)
	}
	p.metrics.SamplesRead.Add(float64(len(samples)))

	points, zones, err := domain.AggregateZones(samples)
	if err != nil {
		return domain.Assessment{}, err
	}
	advisories := domain.Advise(domain.ScoresOf(zones))
	a := domain.NewAssessment(uuid.NewString(), len(samples), points, zones, advisories)

	p.metrics.OutsideCoverage.Add(float64(a.OutsideCoverage()))
	p.metrics.PointsEnriched.Add(float64(len(points)))
	for _, z := range zones {
		p.metrics.ZoneRiskScore.WithLabelValues(z.Zone.String()).Set(float64(z.MeanScore))
	}

	for _, l := range p.loaders {
		if err := l.Load(ctx, a); err != nil {
			return domain.Assessment{}, fmt.Errorf("load: %w", err)
		}
	}
	return a, nil
}

// Run executes one run immediately, then another for every trigger and
// refresh tick until the context is cancelled. Failed runs are logged and
// do not stop the loop.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "refresh_interval", p.interval)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	var tick <-chan time.Time
	if p.interval > 0 {
		ticker := p.clock.NewTicker(p.interval)
		defer ticker.Stop()
		tick = ticker.Chan()
	}

	for {
		if ctx.Err() != nil {
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		}
		_, _ = p.RunOnce(ctx)

		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		case <-p.trigger:
		case <-tick:
		}
	}
}
