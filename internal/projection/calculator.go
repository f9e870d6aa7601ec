package projection

import (
	"fmt"
	"time"

	"ScenarioLens/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultHorizonDays is the standard projection window.
const DefaultHorizonDays = 90

// sparseConfidencePenalty lowers (never raises) per-day confidence when the
// impact was derived from sparse historical data.
const sparseConfidencePenalty = 0.75

// Project merges a baseline forecast and a scenario impact into a
// day-by-day cash-flow projection over horizonDays.
//
// Day 0 is the first baseline day (the evaluation instant); the impact
// activates at TimingOffsetDays into the window. When the baseline is
// shorter than the horizon, missing days are extrapolated by holding the
// last known revenue flat with bounds widened proportionally to the
// distance past the known horizon.
func Project(baseline *model.Forecast, impact *model.ScenarioImpact, horizonDays int, quality model.DataQuality) (*model.CashFlowProjection, error) {
	if horizonDays <= 0 {
		return nil, &model.InvalidParametersError{Field: "horizon_days", Guidance: "must be > 0"}
	}
	if baseline == nil || len(baseline.Points) == 0 {
		return nil, &model.InsufficientDataError{Reason: "baseline forecast has no data points"}
	}
	if impact == nil {
		return nil, &model.InvalidParametersError{Field: "impact", Guidance: "scenario impact is required"}
	}

	known := len(baseline.Points)
	last := baseline.Points[known-1]

	timeline := make([]model.TimePoint, 0, horizonDays)
	cumulative := decimal.Zero
	totalIn := decimal.Zero
	totalOut := decimal.Zero

	summary := model.ProjectionSummary{}

	for i := 0; i < horizonDays; i++ {
		var revenue decimal.Decimal
		var width decimal.Decimal
		var date time.Time

		if i < known {
			p := baseline.Points[i]
			revenue = p.Revenue
			width = p.Upper.Sub(p.Lower)
			date = p.Date
		} else {
			// Flat extrapolation past the known horizon.
			dist := i - known + 1
			revenue = last.Revenue
			scale := decimal.NewFromInt(int64(known + dist)).Div(decimal.NewFromInt(int64(known)))
			width = last.Upper.Sub(last.Lower).Mul(scale)
			date = last.Date.AddDate(0, 0, dist)
		}

		confidence := pointConfidence(baseline.Confidence, revenue, width)
		if quality == model.DataQualitySparse {
			confidence *= sparseConfidencePenalty
		}

		ramp := rampFactor(i, impact.TimingOffsetDays, impact.RampUpDays)
		// A finite duration ends the uplift and recurring cost; the one-time
		// charge on the activation day is unaffected.
		if impact.DurationDays > 0 && i >= impact.TimingOffsetDays+impact.DurationDays {
			ramp = 0
		}

		cashIn := revenue.Mul(decimal.NewFromFloat(1 + impact.RevenueMultiplier*ramp)).Round(2)
		cashOut := decimal.Zero
		if i >= impact.TimingOffsetDays {
			cashOut = impact.DailyRecurringCost.Mul(decimal.NewFromFloat(ramp)).Round(2)
		}
		if i == impact.TimingOffsetDays {
			cashOut = cashOut.Add(impact.InitialCost)
		}

		net := cashIn.Sub(cashOut)
		cumulative = cumulative.Add(net)
		totalIn = totalIn.Add(cashIn)
		totalOut = totalOut.Add(cashOut)

		timeline = append(timeline, model.TimePoint{
			Date:          date,
			CashIn:        cashIn,
			CashOut:       cashOut,
			NetCash:       net,
			CumulativeNet: cumulative,
			Confidence:    confidence,
		})

		if i == 0 || cumulative.LessThan(summary.LowestPoint) {
			summary.LowestPoint = cumulative
			summary.LowestPointDate = date
		}
		if i == 0 || cumulative.GreaterThan(summary.HighestPoint) {
			summary.HighestPoint = cumulative
			summary.HighestPointDate = date
		}
		if summary.BreakEvenDate == nil && cumulative.GreaterThanOrEqual(decimal.Zero) {
			d := date
			summary.BreakEvenDate = &d
		}
	}

	summary.NetChange = cumulative
	summary.TotalCashIn = totalIn
	summary.TotalCashOut = totalOut

	proj := &model.CashFlowProjection{Timeline: timeline, Summary: summary}
	if err := verify(proj, horizonDays); err != nil {
		return nil, err
	}
	return proj, nil
}

// rampFactor is 0 before the activation day, rises linearly to 1 over the
// ramp window, then stays constant. A zero-length ramp switches on fully at
// the activation day.
func rampFactor(day, offset, rampDays int) float64 {
	if day < offset {
		return 0
	}
	if rampDays <= 0 {
		return 1
	}
	f := float64(day-offset+1) / float64(rampDays)
	if f > 1 {
		return 1
	}
	return f
}

// pointConfidence derives per-day confidence from the forecast's bound
// width: the wider the band relative to the projected revenue, the lower
// the confidence.
func pointConfidence(base float64, revenue, width decimal.Decimal) float64 {
	if revenue.IsZero() || revenue.IsNegative() {
		return 0
	}
	ratio, _ := width.Div(revenue.Mul(decimal.NewFromInt(2))).Float64()
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}
	c := base * (1 - ratio)
	if c < 0 {
		c = 0
	}
	return c
}

// verify re-checks the structural invariants of a finished projection.
// A failure here is a defect in the calculator itself, never corrected.
func verify(proj *model.CashFlowProjection, horizonDays int) error {
	if len(proj.Timeline) != horizonDays {
		return &model.InvariantViolationError{
			Detail: fmt.Sprintf("timeline has %d points, want %d", len(proj.Timeline), horizonDays),
		}
	}
	running := decimal.Zero
	for i, tp := range proj.Timeline {
		if i > 0 && !proj.Timeline[i-1].Date.AddDate(0, 0, 1).Equal(tp.Date) {
			return &model.InvariantViolationError{
				Detail: fmt.Sprintf("timeline gap between day %d and %d", i-1, i),
			}
		}
		running = running.Add(tp.NetCash)
		if !running.Equal(tp.CumulativeNet) {
			return &model.InvariantViolationError{
				Detail: fmt.Sprintf("cumulative mismatch at day %d", i),
			}
		}
	}
	if !proj.Summary.NetChange.Equal(running) {
		return &model.InvariantViolationError{Detail: "net_change does not match final cumulative"}
	}
	return nil
}
