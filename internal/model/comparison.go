package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScenarioOutcome bundles one completed simulation for comparison.
type ScenarioOutcome struct {
	ID         string              `json:"id"`
	Projection *CashFlowProjection `json:"projection"`
	Signals    []RiskSignal        `json:"signals"`
}

// ScenarioMetrics holds the differential figures for one scenario.
// Deltas are relative to the first scenario in the compared set.
type ScenarioMetrics struct {
	NetChange          decimal.Decimal `json:"net_change"`
	NetChangeDelta     decimal.Decimal `json:"net_change_delta"`
	HighestSeverity    Severity        `json:"highest_severity,omitempty"` // empty when no signals
	SignalCount        int             `json:"signal_count"`
	BreakEvenDate      *time.Time      `json:"break_even_date,omitempty"`
	BreakEvenDeltaDays *int            `json:"break_even_delta_days,omitempty"`
}

// ComparisonResult ranks a set of simulated scenarios. It is recomputed on
// every comparison request and never stored.
type ComparisonResult struct {
	Metrics             map[string]ScenarioMetrics `json:"comparative_metrics"`
	BestCaseScenarioID  string                     `json:"best_case_scenario_id"`
	WorstCaseScenarioID string                     `json:"worst_case_scenario_id"`
}
