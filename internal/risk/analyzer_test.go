package risk

import (
	"testing"
	"time"

	"ScenarioLens/internal/model"

	"github.com/shopspring/decimal"
)

var start = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

// projWithCumulative builds a projection whose cumulative net follows the
// given per-day values. Only the fields the analyzer reads are filled in.
func projWithCumulative(values []string) *model.CashFlowProjection {
	timeline := make([]model.TimePoint, len(values))
	prev := decimal.Zero
	for i, v := range values {
		cum := decimal.RequireFromString(v)
		timeline[i] = model.TimePoint{
			Date:          start.AddDate(0, 0, i),
			NetCash:       cum.Sub(prev),
			CumulativeNet: cum,
			Confidence:    0.8,
		}
		prev = cum
	}
	return &model.CashFlowProjection{Timeline: timeline}
}

// flatThenDip builds a 90-day projection that stays at zero except for a
// contiguous dip to the given value over [from, to].
func flatThenDip(dip string, from, to int) *model.CashFlowProjection {
	values := make([]string, 90)
	for i := range values {
		if i >= from && i <= to {
			values[i] = dip
		} else {
			values[i] = "0"
		}
	}
	return projWithCumulative(values)
}

func biz(monthlyRevenue int64, employees int) *model.BusinessContext {
	return &model.BusinessContext{
		ID:             "biz-1",
		Name:           "Corner Bakery",
		MonthlyRevenue: decimal.NewFromInt(monthlyRevenue),
		EmployeeCount:  employees,
	}
}

func TestAnalyze_BoundaryExclusive(t *testing.T) {
	// Threshold 10% of 100,000 = 10,000. A dip to exactly -10,000 is not a
	// breach; one cent below is.
	cfg := DefaultConfig()

	atBoundary := Analyze(flatThenDip("-10000", 40, 45), biz(100000, 5), nil, cfg)
	if len(atBoundary) != 0 {
		t.Fatalf("dip to exactly the threshold must not signal, got %d signals", len(atBoundary))
	}

	below := Analyze(flatThenDip("-10000.01", 40, 45), biz(100000, 5), nil, cfg)
	if len(below) != 1 {
		t.Fatalf("expected exactly one signal for the contiguous dip, got %d", len(below))
	}
	sig := below[0]
	if sig.Type != model.RiskCashflow {
		t.Errorf("expected cashflow signal, got %s", sig.Type)
	}
	if !sig.ProjectedDate.Equal(start.AddDate(0, 0, 40)) {
		t.Errorf("signal anchored at %v, want first breach day %v", sig.ProjectedDate, start.AddDate(0, 0, 40))
	}
	if len(sig.MitigationSuggestions) == 0 {
		t.Error("emitted signal must carry at least one mitigation suggestion")
	}
}

func TestAnalyze_SeverityGrading(t *testing.T) {
	// Dips placed past the 30-day escalation window so grading is pure.
	tests := []struct {
		dip  string
		want model.Severity
	}{
		{"-12000", model.SeverityMedium},   // 1.2x threshold
		{"-14999", model.SeverityMedium},   // just under 1.5x
		{"-15000", model.SeverityHigh},     // 1.5x
		{"-29000", model.SeverityHigh},     // under 3x
		{"-40000", model.SeverityCritical}, // 4x
	}
	for _, tt := range tests {
		signals := Analyze(flatThenDip(tt.dip, 50, 55), biz(100000, 5), nil, DefaultConfig())
		if len(signals) != 1 {
			t.Fatalf("dip %s: expected one signal, got %d", tt.dip, len(signals))
		}
		if signals[0].Severity != tt.want {
			t.Errorf("dip %s: severity %s, want %s", tt.dip, signals[0].Severity, tt.want)
		}
	}
}

func TestAnalyze_CoalescesRunsSeparately(t *testing.T) {
	// Two separate dips produce two signals, graded independently.
	values := make([]string, 90)
	for i := range values {
		switch {
		case i >= 35 && i <= 40:
			values[i] = "-12000"
		case i >= 60 && i <= 70:
			values[i] = "-45000"
		default:
			values[i] = "1000"
		}
	}
	signals := Analyze(projWithCumulative(values), biz(100000, 5), nil, DefaultConfig())
	if len(signals) != 2 {
		t.Fatalf("expected two signals for two dips, got %d", len(signals))
	}
	// Ordered critical first despite occurring later.
	if signals[0].Severity != model.SeverityCritical {
		t.Errorf("first signal %s, want critical", signals[0].Severity)
	}
	if signals[1].Severity != model.SeverityMedium {
		t.Errorf("second signal %s, want medium", signals[1].Severity)
	}
}

func TestAnalyze_EscalationWindow(t *testing.T) {
	cfg := DefaultConfig()

	// A medium-grade dip 10 days out escalates to at least high.
	soon := Analyze(flatThenDip("-12000", 10, 15), biz(100000, 5), nil, cfg)
	if len(soon) != 1 {
		t.Fatalf("expected one signal, got %d", len(soon))
	}
	if soon[0].Severity.Rank() < model.SeverityHigh.Rank() {
		t.Errorf("signal 10 days out must be at least high, got %s", soon[0].Severity)
	}

	// A critical dip within the window stays critical.
	crit := Analyze(flatThenDip("-50000", 10, 15), biz(100000, 5), nil, cfg)
	if crit[0].Severity != model.SeverityCritical {
		t.Errorf("critical must stay critical, got %s", crit[0].Severity)
	}

	// The same medium-grade dip outside the window is untouched.
	later := Analyze(flatThenDip("-12000", 50, 55), biz(100000, 5), nil, cfg)
	if later[0].Severity != model.SeverityMedium {
		t.Errorf("signal outside the window must keep its grade, got %s", later[0].Severity)
	}
}

func TestAnalyze_OperationalRecurringCost(t *testing.T) {
	// 40,000/month recurring against 100,000 revenue exceeds the 30% ratio.
	impact := &model.ScenarioImpact{
		DailyRecurringCost: decimal.RequireFromString("1333.33"),
		TimingOffsetDays:   45,
		OperationalChanges: map[string]float64{},
	}
	signals := Analyze(flatThenDip("0", 0, 0), biz(100000, 20), impact, DefaultConfig())
	if len(signals) != 1 {
		t.Fatalf("expected one operational signal, got %d", len(signals))
	}
	sig := signals[0]
	if sig.Type != model.RiskOperational {
		t.Fatalf("expected operational signal, got %s", sig.Type)
	}
	// Advisory rule alone never exceeds medium; it fires at day 45, past
	// the escalation window.
	if sig.Severity != model.SeverityLow {
		t.Errorf("expected low severity, got %s", sig.Severity)
	}
}

func TestAnalyze_OperationalHiringRatio(t *testing.T) {
	// Three hires on a team of six is a 50% step.
	impact := &model.ScenarioImpact{
		DailyRecurringCost: decimal.Zero,
		TimingOffsetDays:   60,
		OperationalChanges: map[string]float64{"headcount": 3},
	}
	signals := Analyze(flatThenDip("0", 0, 0), biz(100000, 6), impact, DefaultConfig())
	if len(signals) != 1 {
		t.Fatalf("expected one operational signal, got %d", len(signals))
	}
	if signals[0].Severity != model.SeverityLow {
		t.Errorf("expected low severity, got %s", signals[0].Severity)
	}
}

func TestSortByPriority(t *testing.T) {
	d := func(days int) time.Time { return start.AddDate(0, 0, days) }
	signals := []model.RiskSignal{
		{Severity: model.SeverityLow, ProjectedDate: d(3)},
		{Severity: model.SeverityCritical, ProjectedDate: d(80)},
		{Severity: model.SeverityHigh, ProjectedDate: d(50)},
		{Severity: model.SeverityMedium, ProjectedDate: d(1)},
		{Severity: model.SeverityHigh, ProjectedDate: d(20)},
	}
	sortByPriority(signals)

	wantSev := []model.Severity{
		model.SeverityCritical,
		model.SeverityHigh,
		model.SeverityHigh,
		model.SeverityMedium,
		model.SeverityLow,
	}
	for i, want := range wantSev {
		if signals[i].Severity != want {
			t.Fatalf("position %d: severity %s, want %s", i, signals[i].Severity, want)
		}
	}
	// Equal severity ordered soonest first.
	if !signals[1].ProjectedDate.Equal(d(20)) || !signals[2].ProjectedDate.Equal(d(50)) {
		t.Errorf("equal-severity signals not ordered by date ascending")
	}
}

func TestAnalyze_InventoryOverspend(t *testing.T) {
	// A 500,000 purchase against 100,000/month revenue dives cumulative
	// cash far past 3x the 10,000 threshold on the purchase day.
	values := make([]string, 90)
	for i := range values {
		if i == 0 {
			values[i] = "-496000"
		} else {
			values[i] = decimal.NewFromInt(int64(-496000 + 4000*i)).String()
		}
	}
	signals := Analyze(projWithCumulative(values), biz(100000, 5), nil, DefaultConfig())
	if len(signals) == 0 {
		t.Fatal("expected at least one signal")
	}
	if signals[0].Severity != model.SeverityCritical {
		t.Errorf("expected critical, got %s", signals[0].Severity)
	}
	if signals[0].Type != model.RiskCashflow {
		t.Errorf("expected cashflow signal, got %s", signals[0].Type)
	}
	if !signals[0].ProjectedDate.Equal(start) {
		t.Errorf("signal anchored at %v, want purchase day %v", signals[0].ProjectedDate, start)
	}
}
