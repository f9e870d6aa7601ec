package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"ScenarioLens/internal/compare"
	"ScenarioLens/internal/forecast"
	"ScenarioLens/internal/impact"
	"ScenarioLens/internal/model"
	"ScenarioLens/internal/projection"
	"ScenarioLens/internal/risk"

	"github.com/google/uuid"
)

// Quality tags a simulation result so callers can display a caveat when a
// fallback forecast was used.
type Quality string

const (
	QualityOK       Quality = "ok"
	QualityDegraded Quality = "degraded"
)

// Result is the full outcome of one scenario simulation.
type Result struct {
	SimulationID  string
	BusinessID    string
	Projection    *model.CashFlowProjection
	Signals       []model.RiskSignal
	Quality       Quality
	ForecastModel string
	Warning       string
	Elapsed       time.Duration
}

// Config holds the engine's tunables.
type Config struct {
	// HorizonDays is the projection window, defaulting to 90.
	HorizonDays int
	// SimulationBudget bounds one whole simulate call.
	SimulationBudget time.Duration
	// ProviderTimeout bounds the forecast provider call, the only
	// potentially blocking step.
	ProviderTimeout time.Duration
	// SparseHistoryDays is the history length below which inputs count as
	// sparse and per-day confidence is penalized.
	SparseHistoryDays int
	// Risk configures the analyzer thresholds.
	Risk risk.Config
}

// DefaultConfig returns the standard engine settings.
func DefaultConfig() Config {
	return Config{
		HorizonDays:       projection.DefaultHorizonDays,
		SimulationBudget:  5 * time.Second,
		ProviderTimeout:   3 * time.Second,
		SparseHistoryDays: 30,
		Risk:              risk.DefaultConfig(),
	}
}

// Engine runs decision simulations. It holds no mutable state besides the
// provider breaker, so concurrent Simulate calls need no coordination.
type Engine struct {
	provider forecast.Provider
	breaker  *forecast.Breaker
	cfg      Config
	clock    func() time.Time
}

// New creates an engine around the given forecast provider.
func New(provider forecast.Provider, cfg Config) *Engine {
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = projection.DefaultHorizonDays
	}
	if cfg.SimulationBudget <= 0 {
		cfg.SimulationBudget = 5 * time.Second
	}
	if cfg.ProviderTimeout <= 0 || cfg.ProviderTimeout > cfg.SimulationBudget {
		cfg.ProviderTimeout = cfg.SimulationBudget * 3 / 5
	}
	return &Engine{
		provider: provider,
		breaker:  forecast.NewBreaker(3, 60*time.Second),
		cfg:      cfg,
		clock:    time.Now,
	}
}

// Simulate runs translate -> forecast -> project -> analyze for one
// scenario. Parameter validation happens before any provider call; a
// provider timeout or outage degrades to a fallback forecast instead of
// failing, and the result is tagged accordingly.
func (e *Engine) Simulate(ctx context.Context, biz *model.BusinessContext, params *model.ScenarioParams) (*Result, error) {
	if biz == nil {
		return nil, &model.InvalidParametersError{Field: "business_context", Guidance: "a business context snapshot is required"}
	}

	started := e.clock()
	ctx, cancel := context.WithTimeout(ctx, e.cfg.SimulationBudget)
	defer cancel()

	imp, err := impact.Translate(params, started)
	if err != nil {
		return nil, err
	}

	quality := model.DataQualityFull
	if biz.HistoryDays() < e.cfg.SparseHistoryDays {
		quality = model.DataQualitySparse
	}

	baseline, degraded, warning, err := e.baseline(ctx, biz)
	if err != nil {
		return nil, err
	}

	proj, err := projection.Project(baseline, imp, e.cfg.HorizonDays, quality)
	if err != nil {
		return nil, err
	}

	signals := risk.Analyze(proj, biz, imp, e.cfg.Risk)

	result := &Result{
		SimulationID:  uuid.New().String(),
		BusinessID:    biz.ID,
		Projection:    proj,
		Signals:       signals,
		Quality:       QualityOK,
		ForecastModel: baseline.ModelVersion,
		Elapsed:       e.clock().Sub(started),
	}
	if degraded {
		result.Quality = QualityDegraded
		result.Warning = warning
	}
	return result, nil
}

// Compare ranks a set of completed scenario outcomes.
func (e *Engine) Compare(scenarios []model.ScenarioOutcome) (*model.ComparisonResult, error) {
	return compare.Compare(scenarios)
}

// baseline obtains the forecast, degrading through the fallback chain:
// provider (breaker-gated, bounded wait) -> history trend -> benchmark.
// It only errors when even the benchmark has nothing to work from.
func (e *Engine) baseline(ctx context.Context, biz *model.BusinessContext) (*model.Forecast, bool, string, error) {
	start := e.clock().Truncate(24 * time.Hour)

	var provErr error
	if e.breaker.Allow() {
		callCtx, cancel := context.WithTimeout(ctx, e.cfg.ProviderTimeout)
		f, err := e.provider.GenerateForecast(callCtx, biz.ID, e.cfg.HorizonDays)
		cancel()
		if err == nil && len(f.Points) > 0 {
			e.breaker.RecordSuccess()
			return f, false, "", nil
		}
		e.breaker.RecordFailure()
		if err == nil {
			err = &model.InsufficientDataError{Reason: "provider returned an empty forecast"}
		}
		provErr = err
		log.Printf("[WARN] forecast provider %s failed: %v, using fallback", e.provider.Name(), err)
	} else {
		provErr = model.ErrProviderUnavailable
		log.Printf("[WARN] forecast provider circuit open, using fallback")
	}

	if f, err := forecast.FromHistory(biz, start, e.cfg.HorizonDays); err == nil {
		return f, true, fmt.Sprintf("forecast provider unavailable (%v); projection built from historical trend", provErr), nil
	}

	f, err := forecast.Benchmark(biz, start, e.cfg.HorizonDays)
	if err != nil {
		return nil, false, "", err
	}
	return f, true, fmt.Sprintf("forecast provider unavailable (%v); projection built from reported monthly revenue", provErr), nil
}
