package compare

import (
	"errors"
	"testing"
	"time"

	"ScenarioLens/internal/model"

	"github.com/shopspring/decimal"
)

var start = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func outcome(id string, netChange int64, breakEvenDay int, severities ...model.Severity) model.ScenarioOutcome {
	summary := model.ProjectionSummary{NetChange: decimal.NewFromInt(netChange)}
	if breakEvenDay >= 0 {
		d := start.AddDate(0, 0, breakEvenDay)
		summary.BreakEvenDate = &d
	}
	signals := make([]model.RiskSignal, len(severities))
	for i, s := range severities {
		signals[i] = model.RiskSignal{Severity: s, Type: model.RiskCashflow, ProjectedDate: start}
	}
	return model.ScenarioOutcome{
		ID: id,
		Projection: &model.CashFlowProjection{
			Timeline: []model.TimePoint{{Date: start}},
			Summary:  summary,
		},
		Signals: signals,
	}
}

func TestCompare_TooFewScenarios(t *testing.T) {
	_, err := Compare([]model.ScenarioOutcome{outcome("a", 1000, 5)})
	var ip *model.InvalidParametersError
	if !errors.As(err, &ip) {
		t.Fatalf("expected InvalidParametersError, got %v", err)
	}
}

func TestCompare_Completeness(t *testing.T) {
	res, err := Compare([]model.ScenarioOutcome{
		outcome("hire-2", 50000, 10),
		outcome("inventory", -20000, -1, model.SeverityCritical),
		outcome("launch", 120000, 30, model.SeverityMedium),
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"hire-2", "inventory", "launch"} {
		if _, ok := res.Metrics[id]; !ok {
			t.Errorf("metrics missing for %s", id)
		}
	}
	if res.BestCaseScenarioID != "launch" {
		t.Errorf("best case %s, want launch", res.BestCaseScenarioID)
	}
	if res.WorstCaseScenarioID != "inventory" {
		t.Errorf("worst case %s, want inventory", res.WorstCaseScenarioID)
	}
}

func TestCompare_DeltasRelativeToFirst(t *testing.T) {
	res, err := Compare([]model.ScenarioOutcome{
		outcome("base", 10000, 5),
		outcome("alt", 25000, 15),
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Metrics["alt"].NetChangeDelta.StringFixed(2); got != "15000.00" {
		t.Errorf("alt delta %s, want 15000.00", got)
	}
	if !res.Metrics["base"].NetChangeDelta.IsZero() {
		t.Errorf("base delta should be zero, got %s", res.Metrics["base"].NetChangeDelta)
	}
	if res.Metrics["alt"].BreakEvenDeltaDays == nil || *res.Metrics["alt"].BreakEvenDeltaDays != 10 {
		t.Errorf("alt break-even delta wrong: %v", res.Metrics["alt"].BreakEvenDeltaDays)
	}
}

func TestCompare_NeverBreakingEvenRanksWorse(t *testing.T) {
	res, err := Compare([]model.ScenarioOutcome{
		outcome("a", 5000, -1),
		outcome("b", 5000, 60),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.BestCaseScenarioID != "b" {
		t.Errorf("scenario with a break-even date must beat one without, best = %s", res.BestCaseScenarioID)
	}
	if res.WorstCaseScenarioID != "a" {
		t.Errorf("worst case %s, want a", res.WorstCaseScenarioID)
	}
}

func TestCompare_RiskTieBreak(t *testing.T) {
	res, err := Compare([]model.ScenarioOutcome{
		outcome("risky", 5000, 10, model.SeverityHigh, model.SeverityMedium),
		outcome("calm", 5000, 10, model.SeverityLow),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.BestCaseScenarioID != "calm" {
		t.Errorf("least-severe signals should win the tie, best = %s", res.BestCaseScenarioID)
	}
}

func TestCompare_DoesNotMutateInputs(t *testing.T) {
	scenarios := []model.ScenarioOutcome{
		outcome("a", 1000, 5),
		outcome("b", 2000, 3),
		outcome("c", -500, -1),
	}
	if _, err := Compare(scenarios); err != nil {
		t.Fatal(err)
	}
	if scenarios[0].ID != "a" || scenarios[1].ID != "b" || scenarios[2].ID != "c" {
		t.Error("input slice order was mutated")
	}
}

func TestCompare_HighestSeverity(t *testing.T) {
	res, err := Compare([]model.ScenarioOutcome{
		outcome("a", 1000, 5, model.SeverityMedium, model.SeverityCritical, model.SeverityLow),
		outcome("b", 2000, 3),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Metrics["a"].HighestSeverity != model.SeverityCritical {
		t.Errorf("highest severity %s, want critical", res.Metrics["a"].HighestSeverity)
	}
	if res.Metrics["b"].HighestSeverity != model.Severity("") {
		t.Errorf("no signals should leave severity empty, got %q", res.Metrics["b"].HighestSeverity)
	}
	if res.Metrics["a"].SignalCount != 3 {
		t.Errorf("signal count %d, want 3", res.Metrics["a"].SignalCount)
	}
}
