package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ForecastPoint is one projected day of baseline revenue with its
// confidence bounds.
type ForecastPoint struct {
	Date    time.Time       `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Lower   decimal.Decimal `json:"lower"`
	Upper   decimal.Decimal `json:"upper"`
}

// Forecast is the baseline daily revenue projection produced by a forecast
// provider. The engine treats it as read-only.
type Forecast struct {
	BusinessID   string          `json:"business_id"`
	Points       []ForecastPoint `json:"points"`
	Confidence   float64         `json:"confidence"` // 0.0 ~ 1.0
	ModelVersion string          `json:"model_version"`
}

// Start returns the first forecast date, or the zero time for an empty
// forecast.
func (f *Forecast) Start() time.Time {
	if len(f.Points) == 0 {
		return time.Time{}
	}
	return f.Points[0].Date
}

// End returns the last forecast date, or the zero time for an empty
// forecast.
func (f *Forecast) End() time.Time {
	if len(f.Points) == 0 {
		return time.Time{}
	}
	return f.Points[len(f.Points)-1].Date
}
