package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ScenarioLens/internal/forecast"
	"ScenarioLens/internal/model"

	"github.com/shopspring/decimal"
)

var testStart = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func hiringScenario() *model.ScenarioParams {
	return &model.ScenarioParams{
		Type:   model.DecisionHiring,
		Cost:   decimal.NewFromInt(5000),
		Timing: testStart.AddDate(0, 0, 10),
		Hiring: &model.HiringParams{
			MonthlySalary: decimal.NewFromInt(7000),
			Headcount:     2,
			RampUpDays:    14,
		},
	}
}

func richBusiness() *model.BusinessContext {
	history := make([]model.DataPoint, 60)
	for i := range history {
		history[i] = model.DataPoint{
			Date:       testStart.AddDate(0, 0, i-60),
			Value:      decimal.NewFromInt(3000),
			Confidence: 1,
			Source:     "pos",
		}
	}
	return &model.BusinessContext{
		ID:             "biz-1",
		Name:           "Corner Cafe",
		MonthlyRevenue: decimal.NewFromInt(90000),
		EmployeeCount:  8,
		RevenueHistory: history,
	}
}

func testEngine(p forecast.Provider) *Engine {
	e := New(p, DefaultConfig())
	e.clock = func() time.Time { return testStart }
	return e
}

func TestSimulate_HealthyProvider(t *testing.T) {
	provider := &forecast.MockProvider{
		DailyRevenue: decimal.NewFromInt(3000),
		Start:        testStart,
	}
	e := testEngine(provider)

	res, err := e.Simulate(context.Background(), richBusiness(), hiringScenario())
	if err != nil {
		t.Fatal(err)
	}
	if res.Quality != QualityOK {
		t.Errorf("quality = %s, want ok", res.Quality)
	}
	if res.ForecastModel != "mock-v1" {
		t.Errorf("forecast model = %s", res.ForecastModel)
	}
	if res.Warning != "" {
		t.Errorf("unexpected warning: %s", res.Warning)
	}
	if res.SimulationID == "" {
		t.Error("simulation id missing")
	}
	if got := len(res.Projection.Timeline); got != 90 {
		t.Errorf("timeline length = %d, want 90", got)
	}
}

func TestSimulate_InvalidParamsSkipsProvider(t *testing.T) {
	provider := &forecast.MockProvider{DailyRevenue: decimal.NewFromInt(3000)}
	e := testEngine(provider)

	params := hiringScenario()
	params.Hiring.MonthlySalary = decimal.Zero

	_, err := e.Simulate(context.Background(), richBusiness(), params)
	var ip *model.InvalidParametersError
	if !errors.As(err, &ip) {
		t.Fatalf("expected InvalidParametersError, got %v", err)
	}
	if provider.Calls != 0 {
		t.Errorf("provider called %d times before validation", provider.Calls)
	}
}

func TestSimulate_ProviderErrorFallsBackToTrend(t *testing.T) {
	provider := &forecast.MockProvider{Err: errors.New("upstream 503")}
	e := testEngine(provider)

	res, err := e.Simulate(context.Background(), richBusiness(), hiringScenario())
	if err != nil {
		t.Fatal(err)
	}
	if res.Quality != QualityDegraded {
		t.Errorf("quality = %s, want degraded", res.Quality)
	}
	if res.ForecastModel != "fallback-trend-v1" {
		t.Errorf("forecast model = %s", res.ForecastModel)
	}
	if !strings.Contains(res.Warning, "historical trend") {
		t.Errorf("warning should name the fallback, got %q", res.Warning)
	}
}

func TestSimulate_ProviderTimeoutFallsBack(t *testing.T) {
	provider := &forecast.MockProvider{
		DailyRevenue: decimal.NewFromInt(3000),
		Delay:        200 * time.Millisecond,
	}
	cfg := DefaultConfig()
	cfg.ProviderTimeout = 50 * time.Millisecond
	e := New(provider, cfg)
	e.clock = func() time.Time { return testStart }

	res, err := e.Simulate(context.Background(), richBusiness(), hiringScenario())
	if err != nil {
		t.Fatal(err)
	}
	if res.Quality != QualityDegraded {
		t.Errorf("quality = %s, want degraded", res.Quality)
	}
	if provider.Calls != 1 {
		t.Errorf("provider calls = %d, want 1", provider.Calls)
	}
}

func TestSimulate_NoHistoryFallsBackToBenchmark(t *testing.T) {
	provider := &forecast.MockProvider{Err: errors.New("upstream 503")}
	e := testEngine(provider)

	biz := &model.BusinessContext{
		ID:             "biz-2",
		MonthlyRevenue: decimal.NewFromInt(90000),
	}
	res, err := e.Simulate(context.Background(), biz, hiringScenario())
	if err != nil {
		t.Fatal(err)
	}
	if res.ForecastModel != "fallback-benchmark-v1" {
		t.Errorf("forecast model = %s", res.ForecastModel)
	}
	if res.Quality != QualityDegraded {
		t.Errorf("quality = %s, want degraded", res.Quality)
	}
}

func TestSimulate_NothingToWorkFrom(t *testing.T) {
	provider := &forecast.MockProvider{Err: errors.New("upstream 503")}
	e := testEngine(provider)

	biz := &model.BusinessContext{ID: "biz-3"}
	_, err := e.Simulate(context.Background(), biz, hiringScenario())
	var id *model.InsufficientDataError
	if !errors.As(err, &id) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
}

func TestSimulate_NilBusiness(t *testing.T) {
	e := testEngine(&forecast.MockProvider{DailyRevenue: decimal.NewFromInt(3000)})

	_, err := e.Simulate(context.Background(), nil, hiringScenario())
	var ip *model.InvalidParametersError
	if !errors.As(err, &ip) {
		t.Fatalf("expected InvalidParametersError, got %v", err)
	}
}

func TestSimulate_SparseHistoryTagged(t *testing.T) {
	provider := &forecast.MockProvider{
		DailyRevenue: decimal.NewFromInt(3000),
		Start:        testStart,
	}
	e := testEngine(provider)

	biz := richBusiness()
	biz.RevenueHistory = biz.RevenueHistory[:10]

	res, err := e.Simulate(context.Background(), biz, hiringScenario())
	if err != nil {
		t.Fatal(err)
	}
	// Sparse inputs surface as reduced confidence, not a different quality
	// tag; the provider forecast is still authoritative.
	if res.Quality != QualityOK {
		t.Errorf("quality = %s, want ok", res.Quality)
	}
	full, _ := e.Simulate(context.Background(), richBusiness(), hiringScenario())
	if res.Projection.Timeline[0].Confidence >= full.Projection.Timeline[0].Confidence {
		t.Errorf("sparse confidence %v should be below full %v",
			res.Projection.Timeline[0].Confidence, full.Projection.Timeline[0].Confidence)
	}
}
