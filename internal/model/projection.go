package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimePoint is one day of the projected cash-flow timeline.
type TimePoint struct {
	Date          time.Time       `json:"date"`
	CashIn        decimal.Decimal `json:"cash_in"`
	CashOut       decimal.Decimal `json:"cash_out"`
	NetCash       decimal.Decimal `json:"net_cash"`
	CumulativeNet decimal.Decimal `json:"cumulative_net"`
	Confidence    float64         `json:"confidence"`
}

// ProjectionSummary aggregates a timeline into headline figures.
// LowestPoint and HighestPoint are the min/max of CumulativeNet, not of
// the per-day NetCash.
type ProjectionSummary struct {
	NetChange        decimal.Decimal `json:"net_change"`
	LowestPoint      decimal.Decimal `json:"lowest_point"`
	LowestPointDate  time.Time       `json:"lowest_point_date"`
	HighestPoint     decimal.Decimal `json:"highest_point"`
	HighestPointDate time.Time       `json:"highest_point_date"`
	BreakEvenDate    *time.Time      `json:"break_even_date,omitempty"`
	TotalCashIn      decimal.Decimal `json:"total_cash_in"`
	TotalCashOut     decimal.Decimal `json:"total_cash_out"`
}

// CashFlowProjection is the day-granular result of simulating a scenario.
// It is immutable once returned.
type CashFlowProjection struct {
	Timeline []TimePoint       `json:"timeline"`
	Summary  ProjectionSummary `json:"summary"`
}
