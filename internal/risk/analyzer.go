package risk

import (
	"fmt"
	"sort"
	"time"

	"ScenarioLens/internal/model"

	"github.com/shopspring/decimal"
)

// Config holds the analyzer's threshold settings.
type Config struct {
	// CashflowThreshold is the fraction of monthly revenue below zero that
	// cumulative net cash may dip before a cashflow signal fires.
	CashflowThreshold float64
	// CriticalDays is the escalation window: signals projected inside it
	// are promoted to at least high severity.
	CriticalDays int
	// RecurringCostRatio is the fraction of monthly revenue a decision's
	// recurring cost may reach before an operational signal fires.
	RecurringCostRatio float64
	// HiringGrowthRatio is the sustainable headcount growth fraction.
	HiringGrowthRatio float64
}

// DefaultConfig returns the standard analyzer thresholds.
func DefaultConfig() Config {
	return Config{
		CashflowThreshold:  0.10,
		CriticalDays:       30,
		RecurringCostRatio: 0.30,
		HiringGrowthRatio:  0.25,
	}
}

// Severity grading by breach depth relative to the threshold amount.
const (
	highBreachRatio     = 1.5
	criticalBreachRatio = 3.0
)

// Analyze scans a projection for risk conditions and returns the ordered
// signal list: severity descending, then projected date ascending, stable
// beyond that. Every emitted signal carries at least one mitigation
// suggestion. The impact may be nil when only cashflow rules are wanted.
func Analyze(proj *model.CashFlowProjection, biz *model.BusinessContext, impact *model.ScenarioImpact, cfg Config) []model.RiskSignal {
	if proj == nil || len(proj.Timeline) == 0 || biz == nil {
		return nil
	}

	asOf := proj.Timeline[0].Date
	signals := cashflowSignals(proj, biz, cfg)
	signals = append(signals, operationalSignals(proj, biz, impact, cfg)...)

	for i := range signals {
		escalate(&signals[i], asOf, cfg.CriticalDays)
		if len(signals[i].MitigationSuggestions) == 0 {
			signals[i].MitigationSuggestions = suggestions(signals[i].Type, signals[i].Severity, 0)
		}
	}

	sortByPriority(signals)
	return signals
}

// cashflowSignals emits one signal per contiguous run of days whose
// cumulative net cash breaches the threshold, anchored at the first day of
// the run and graded by the deepest point reached within it.
func cashflowSignals(proj *model.CashFlowProjection, biz *model.BusinessContext, cfg Config) []model.RiskSignal {
	thresholdAmt := biz.MonthlyRevenue.Mul(decimal.NewFromFloat(cfg.CashflowThreshold))
	if !thresholdAmt.IsPositive() {
		return nil
	}
	floor := thresholdAmt.Neg()

	var signals []model.RiskSignal
	inRun := false
	var runStart time.Time
	var deepest decimal.Decimal

	flush := func() {
		if !inRun {
			return
		}
		depth := deepest.Abs()
		sev := gradeBreach(depth, thresholdAmt)
		signals = append(signals, model.RiskSignal{
			Severity: sev,
			Type:     model.RiskCashflow,
			Description: fmt.Sprintf("projected cash position drops %s below the safety threshold starting %s",
				depth.StringFixed(2), runStart.Format("2006-01-02")),
			ProjectedDate:         runStart,
			ImpactAmount:          depth,
			MitigationSuggestions: suggestions(model.RiskCashflow, sev, cfg.CriticalDays),
		})
		inRun = false
	}

	for _, tp := range proj.Timeline {
		// Boundary is exclusive: a dip to exactly the threshold is not a
		// breach.
		if tp.CumulativeNet.LessThan(floor) {
			if !inRun {
				inRun = true
				runStart = tp.Date
				deepest = tp.CumulativeNet
			} else if tp.CumulativeNet.LessThan(deepest) {
				deepest = tp.CumulativeNet
			}
			continue
		}
		flush()
	}
	flush()
	return signals
}

// gradeBreach maps breach depth to severity. Low is reserved for the
// advisory operational rule and is never produced here.
func gradeBreach(depth, thresholdAmt decimal.Decimal) model.Severity {
	ratio := depth.Div(thresholdAmt)
	switch {
	case ratio.GreaterThan(decimal.NewFromFloat(criticalBreachRatio)):
		return model.SeverityCritical
	case ratio.GreaterThanOrEqual(decimal.NewFromFloat(highBreachRatio)):
		return model.SeverityHigh
	default:
		return model.SeverityMedium
	}
}

// operationalSignals flags decisions whose running costs or headcount
// growth look unsustainable for the business. Advisory only: never more
// severe than medium from this rule alone.
func operationalSignals(proj *model.CashFlowProjection, biz *model.BusinessContext, impact *model.ScenarioImpact, cfg Config) []model.RiskSignal {
	if impact == nil || !biz.MonthlyRevenue.IsPositive() {
		return nil
	}

	activation := proj.Timeline[0].Date
	if impact.TimingOffsetDays > 0 && impact.TimingOffsetDays < len(proj.Timeline) {
		activation = proj.Timeline[impact.TimingOffsetDays].Date
	}

	var signals []model.RiskSignal

	monthlyRecurring := impact.DailyRecurringCost.Mul(decimal.NewFromInt(30))
	limit := biz.MonthlyRevenue.Mul(decimal.NewFromFloat(cfg.RecurringCostRatio))
	if limit.IsPositive() && monthlyRecurring.GreaterThan(limit) {
		sev := model.SeverityLow
		if monthlyRecurring.GreaterThan(limit.Mul(decimal.NewFromInt(2))) {
			sev = model.SeverityMedium
		}
		signals = append(signals, model.RiskSignal{
			Severity: sev,
			Type:     model.RiskOperational,
			Description: fmt.Sprintf("recurring cost of %s/month is %.0f%% of current monthly revenue",
				monthlyRecurring.StringFixed(2),
				monthlyRecurring.Div(biz.MonthlyRevenue).InexactFloat64()*100),
			ProjectedDate:         activation,
			ImpactAmount:          monthlyRecurring,
			MitigationSuggestions: suggestions(model.RiskOperational, sev, 0),
		})
	}

	if added, ok := impact.OperationalChanges["headcount"]; ok && biz.EmployeeCount > 0 {
		growth := added / float64(biz.EmployeeCount)
		if growth > cfg.HiringGrowthRatio {
			sev := model.SeverityLow
			if growth > 2*cfg.HiringGrowthRatio {
				sev = model.SeverityMedium
			}
			signals = append(signals, model.RiskSignal{
				Severity: sev,
				Type:     model.RiskOperational,
				Description: fmt.Sprintf("headcount grows %.0f%% in one step (%d -> %d employees)",
					growth*100, biz.EmployeeCount, biz.EmployeeCount+int(added)),
				ProjectedDate:         activation,
				MitigationSuggestions: suggestions(model.RiskOperational, sev, 0),
			})
		}
	}

	return signals
}

// escalate promotes any signal landing within the critical window to at
// least high severity. Critical signals stay critical.
func escalate(sig *model.RiskSignal, asOf time.Time, criticalDays int) {
	if sig.Severity.Rank() >= model.SeverityHigh.Rank() {
		return
	}
	window := asOf.AddDate(0, 0, criticalDays)
	if !sig.ProjectedDate.After(window) {
		sig.Severity = model.SeverityHigh
	}
}

// sortByPriority orders signals by severity descending, then projected
// date ascending. The sort is stable so ties beyond date keep insertion
// order; downstream notification dispatch relies on this.
func sortByPriority(signals []model.RiskSignal) {
	sort.SliceStable(signals, func(i, j int) bool {
		if signals[i].Severity.Rank() != signals[j].Severity.Rank() {
			return signals[i].Severity.Rank() > signals[j].Severity.Rank()
		}
		return signals[i].ProjectedDate.Before(signals[j].ProjectedDate)
	})
}
