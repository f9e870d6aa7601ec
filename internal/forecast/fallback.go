package forecast

import (
	"time"

	"ScenarioLens/internal/model"

	"github.com/shopspring/decimal"
)

// Fallback forecasts carry deliberately low confidence so downstream
// callers surface a caveat.
const (
	trendFallbackConfidence     = 0.55
	benchmarkFallbackConfidence = 0.35

	trendBandRatio     = 0.20
	benchmarkBandRatio = 0.35

	// minTrendHistoryDays is the least history the trend fallback works
	// from; below it the benchmark fallback applies.
	minTrendHistoryDays = 7
)

// FromHistory builds a trend-extrapolated forecast from the business's own
// revenue history: recent average continued with the drift between the
// older and newer half of the window.
func FromHistory(biz *model.BusinessContext, start time.Time, horizonDays int) (*model.Forecast, error) {
	history := biz.RevenueHistory
	if len(history) < minTrendHistoryDays {
		return nil, &model.InsufficientDataError{Reason: "not enough revenue history for trend extrapolation"}
	}

	// Work from the most recent 60 days at most.
	if len(history) > 60 {
		history = history[len(history)-60:]
	}

	half := len(history) / 2
	olderAvg := average(history[:half])
	newerAvg := average(history[half:])
	base := average(history)

	// Daily drift between the two half-window averages.
	drift := newerAvg.Sub(olderAvg).Div(decimal.NewFromInt(int64(half)))

	points := make([]model.ForecastPoint, horizonDays)
	for i := range points {
		rev := base.Add(drift.Mul(decimal.NewFromInt(int64(i + 1)))).Round(2)
		if rev.IsNegative() {
			rev = decimal.Zero
		}
		band := rev.Mul(decimal.NewFromFloat(trendBandRatio)).Round(2)
		points[i] = model.ForecastPoint{
			Date:    start.AddDate(0, 0, i),
			Revenue: rev,
			Lower:   rev.Sub(band),
			Upper:   rev.Add(band),
		}
	}

	return &model.Forecast{
		BusinessID:   biz.ID,
		Points:       points,
		Confidence:   trendFallbackConfidence,
		ModelVersion: "fallback-trend-v1",
	}, nil
}

// Benchmark builds a flat forecast from the business's reported monthly
// revenue. It is the last resort before a simulation fails outright.
func Benchmark(biz *model.BusinessContext, start time.Time, horizonDays int) (*model.Forecast, error) {
	if !biz.MonthlyRevenue.IsPositive() {
		return nil, &model.InsufficientDataError{Reason: "business has no revenue history and no reported monthly revenue"}
	}

	daily := biz.MonthlyRevenue.Div(decimal.NewFromInt(30)).Round(2)
	band := daily.Mul(decimal.NewFromFloat(benchmarkBandRatio)).Round(2)

	points := make([]model.ForecastPoint, horizonDays)
	for i := range points {
		points[i] = model.ForecastPoint{
			Date:    start.AddDate(0, 0, i),
			Revenue: daily,
			Lower:   daily.Sub(band),
			Upper:   daily.Add(band),
		}
	}

	return &model.Forecast{
		BusinessID:   biz.ID,
		Points:       points,
		Confidence:   benchmarkFallbackConfidence,
		ModelVersion: "fallback-benchmark-v1",
	}, nil
}

func average(points []model.DataPoint) decimal.Decimal {
	if len(points) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, p := range points {
		sum = sum.Add(p.Value)
	}
	return sum.Div(decimal.NewFromInt(int64(len(points))))
}
