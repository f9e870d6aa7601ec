package impact

import (
	"math"
	"time"

	"ScenarioLens/internal/model"

	"github.com/shopspring/decimal"
)

// daysPerMonth converts monthly amounts to the daily rate the projection
// loop works in.
var daysPerMonth = decimal.NewFromInt(30)

// Store-launch uplift assumes a 1000 sqft reference location contributes a
// 35% revenue uplift; larger or smaller fit-outs scale linearly.
const (
	storeLaunchBaseUplift   = 0.35
	storeLaunchBaselineSqft = 1000.0
)

// Translate converts decision parameters into a ScenarioImpact. It is pure
// and deterministic: all validation happens here, before any forecast work,
// so a bad request never reaches the provider.
func Translate(params *model.ScenarioParams, now time.Time) (*model.ScenarioImpact, error) {
	if params == nil {
		return nil, &model.InvalidParametersError{Field: "params", Guidance: "scenario parameters are required"}
	}
	if !params.Timing.After(now) {
		return nil, &model.InvalidParametersError{Field: "timing", Guidance: "must be strictly after the evaluation instant"}
	}
	if params.Cost.IsNegative() {
		return nil, &model.InvalidParametersError{Field: "cost", Guidance: "must be >= 0"}
	}
	if params.DurationDays < 0 {
		return nil, &model.InvalidParametersError{Field: "duration_days", Guidance: "must be >= 0"}
	}

	offset := offsetDays(params.Timing, now)

	var imp *model.ScenarioImpact
	var err error
	switch params.Type {
	case model.DecisionHiring:
		imp, err = translateHiring(params, offset)
	case model.DecisionInventory:
		imp, err = translateInventory(params, offset)
	case model.DecisionStoreLaunch:
		imp, err = translateStoreLaunch(params, offset)
	case model.DecisionCustom:
		imp, err = translateCustom(params, offset)
	default:
		return nil, &model.InvalidParametersError{Field: "type", Guidance: "must be one of hiring, inventory, store_launch, custom"}
	}
	if err != nil {
		return nil, err
	}
	imp.DurationDays = params.DurationDays
	return imp, nil
}

func translateHiring(params *model.ScenarioParams, offset int) (*model.ScenarioImpact, error) {
	h := params.Hiring
	if h == nil || h.MonthlySalary.IsZero() {
		return nil, &model.InvalidParametersError{Field: "salary", Guidance: "hiring scenarios require a monthly salary"}
	}
	if h.MonthlySalary.IsNegative() {
		return nil, &model.InvalidParametersError{Field: "salary", Guidance: "must be >= 0"}
	}
	if h.RampUpDays < 0 {
		return nil, &model.InvalidParametersError{Field: "ramp_up_days", Guidance: "must be >= 0"}
	}

	headcount := h.Headcount
	if headcount == 0 {
		headcount = 1
	}

	return &model.ScenarioImpact{
		InitialCost:        decimal.Zero,
		DailyRecurringCost: h.MonthlySalary.Div(daysPerMonth).Round(2),
		RevenueMultiplier:  0,
		OperationalChanges: map[string]float64{"headcount": float64(headcount)},
		TimingOffsetDays:   offset,
		RampUpDays:         h.RampUpDays,
	}, nil
}

func translateInventory(params *model.ScenarioParams, offset int) (*model.ScenarioImpact, error) {
	inv := params.Inventory
	if inv == nil {
		return nil, &model.InvalidParametersError{Field: "inventory", Guidance: "inventory scenarios require storage cost and sell-through rate"}
	}
	if inv.MonthlyStorageCost.IsNegative() {
		return nil, &model.InvalidParametersError{Field: "storage_cost", Guidance: "must be >= 0"}
	}

	// The expected turnover factor is 1 + sell_through_rate; the stored
	// multiplier is the uplift above baseline, clamped so the total factor
	// never drops below zero revenue.
	uplift := inv.SellThroughRate
	if uplift < -1 {
		uplift = -1
	}

	return &model.ScenarioImpact{
		InitialCost:        params.Cost.Round(2),
		DailyRecurringCost: inv.MonthlyStorageCost.Div(daysPerMonth).Round(2),
		RevenueMultiplier:  uplift,
		OperationalChanges: map[string]float64{"inventory_turnover": 1 + inv.SellThroughRate},
		TimingOffsetDays:   offset,
	}, nil
}

func translateStoreLaunch(params *model.ScenarioParams, offset int) (*model.ScenarioImpact, error) {
	sl := params.StoreLaunch
	if sl == nil {
		return nil, &model.InvalidParametersError{Field: "store_launch", Guidance: "store launch scenarios require rent, staffing estimate and size"}
	}
	if sl.MonthlyRent.IsNegative() {
		return nil, &model.InvalidParametersError{Field: "rent", Guidance: "must be >= 0"}
	}
	if sl.StaffingEstimate.IsNegative() {
		return nil, &model.InvalidParametersError{Field: "staffing_estimate", Guidance: "must be >= 0"}
	}
	if sl.SizeSqft <= 0 {
		return nil, &model.InvalidParametersError{Field: "size_sqft", Guidance: "must be > 0"}
	}

	uplift := storeLaunchBaseUplift * (sl.SizeSqft / storeLaunchBaselineSqft)
	recurring := sl.MonthlyRent.Add(sl.StaffingEstimate).Div(daysPerMonth).Round(2)

	return &model.ScenarioImpact{
		InitialCost:        params.Cost.Round(2),
		DailyRecurringCost: recurring,
		RevenueMultiplier:  uplift,
		OperationalChanges: map[string]float64{"locations": 1, "size_sqft": sl.SizeSqft},
		TimingOffsetDays:   offset,
	}, nil
}

func translateCustom(params *model.ScenarioParams, offset int) (*model.ScenarioImpact, error) {
	c := params.Custom
	if c == nil {
		return nil, &model.InvalidParametersError{Field: "custom", Guidance: "custom scenarios require explicit impact fields"}
	}
	if c.InitialCost.IsNegative() {
		return nil, &model.InvalidParametersError{Field: "initial_cost", Guidance: "must be >= 0"}
	}
	if c.MonthlyRecurring.IsNegative() {
		return nil, &model.InvalidParametersError{Field: "monthly_recurring", Guidance: "must be >= 0"}
	}
	if c.RevenueMultiplier < 0 || math.IsNaN(c.RevenueMultiplier) {
		return nil, &model.InvalidParametersError{Field: "revenue_multiplier", Guidance: "must be >= 0"}
	}

	changes := make(map[string]float64, len(c.OperationalChanges))
	for k, v := range c.OperationalChanges {
		changes[k] = v
	}

	return &model.ScenarioImpact{
		InitialCost:        c.InitialCost.Round(2),
		DailyRecurringCost: c.MonthlyRecurring.Div(daysPerMonth).Round(2),
		RevenueMultiplier:  c.RevenueMultiplier,
		OperationalChanges: changes,
		TimingOffsetDays:   offset,
	}, nil
}

// offsetDays counts whole days between the evaluation instant and the
// decision's activation. Same-day timings activate on day 0.
func offsetDays(timing, now time.Time) int {
	d := int(timing.Sub(now).Hours() / 24)
	if d < 0 {
		d = 0
	}
	return d
}
