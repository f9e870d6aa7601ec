package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DataPoint is one observed day of revenue or expense history.
type DataPoint struct {
	Date       time.Time       `json:"date"`
	Value      decimal.Decimal `json:"value"`
	Confidence float64         `json:"confidence"` // 0.0 ~ 1.0
	Source     string          `json:"source"`     // "pos", "csv", "manual"
}

// BusinessContext is a read-only snapshot of a business supplied by the
// context store. The engine never writes back to it.
type BusinessContext struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Location       string          `json:"location"`
	MonthlyRevenue decimal.Decimal `json:"monthly_revenue"`
	EmployeeCount  int             `json:"employee_count"`
	RevenueHistory []DataPoint     `json:"revenue_history"`
	ExpenseHistory []DataPoint     `json:"expense_history"`
}

// HistoryDays returns the number of recorded revenue history days.
func (b *BusinessContext) HistoryDays() int {
	return len(b.RevenueHistory)
}
