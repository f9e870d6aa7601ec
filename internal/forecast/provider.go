package forecast

import (
	"context"
	"time"

	"ScenarioLens/internal/model"

	"github.com/shopspring/decimal"
)

// Provider supplies a baseline daily revenue forecast for a business.
type Provider interface {
	GenerateForecast(ctx context.Context, businessID string, horizonDays int) (*model.Forecast, error)
	Name() string
}

// MockProvider returns controllable fixed data for development and testing.
type MockProvider struct {
	DailyRevenue decimal.Decimal
	Confidence   float64
	Err          error
	Delay        time.Duration
	Start        time.Time
	Calls        int
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) GenerateForecast(ctx context.Context, businessID string, horizonDays int) (*model.Forecast, error) {
	m.Calls++
	if m.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.Delay):
		}
	}
	if m.Err != nil {
		return nil, m.Err
	}

	start := m.Start
	if start.IsZero() {
		start = time.Now().Truncate(24 * time.Hour)
	}
	conf := m.Confidence
	if conf == 0 {
		conf = 0.9
	}

	band := m.DailyRevenue.Mul(decimal.NewFromFloat(0.1))
	points := make([]model.ForecastPoint, horizonDays)
	for i := range points {
		points[i] = model.ForecastPoint{
			Date:    start.AddDate(0, 0, i),
			Revenue: m.DailyRevenue,
			Lower:   m.DailyRevenue.Sub(band),
			Upper:   m.DailyRevenue.Add(band),
		}
	}

	return &model.Forecast{
		BusinessID:   businessID,
		Points:       points,
		Confidence:   conf,
		ModelVersion: "mock-v1",
	}, nil
}
