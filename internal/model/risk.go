package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Severity grades a risk signal.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank returns an ordering weight for a severity, higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// RiskType identifies which rule family emitted a signal.
type RiskType string

const (
	RiskCashflow    RiskType = "cashflow"
	RiskOperational RiskType = "operational"
	RiskMarket      RiskType = "market"
)

// RiskSignal is one detected risk condition. The engine never mutates a
// signal after emitting it; Acknowledged is owned by the caller.
type RiskSignal struct {
	Severity              Severity        `json:"severity"`
	Type                  RiskType        `json:"type"`
	Description           string          `json:"description"`
	ProjectedDate         time.Time       `json:"projected_date"`
	ImpactAmount          decimal.Decimal `json:"impact_amount,omitempty"` // zero when not applicable
	MitigationSuggestions []string        `json:"mitigation_suggestions"`
	Acknowledged          bool            `json:"acknowledged"`
}
