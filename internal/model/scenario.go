package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DecisionType identifies the kind of tactical decision being simulated.
type DecisionType string

const (
	DecisionHiring      DecisionType = "hiring"
	DecisionInventory   DecisionType = "inventory"
	DecisionStoreLaunch DecisionType = "store_launch"
	DecisionCustom      DecisionType = "custom"
)

// HiringParams holds the fields specific to a hiring decision.
type HiringParams struct {
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	Headcount     int             `json:"headcount"`
	RampUpDays    int             `json:"ramp_up_days"`
}

// InventoryParams holds the fields specific to a bulk inventory purchase.
type InventoryParams struct {
	MonthlyStorageCost decimal.Decimal `json:"monthly_storage_cost"`
	SellThroughRate    float64         `json:"sell_through_rate"`
}

// StoreLaunchParams holds the fields specific to opening a new location.
type StoreLaunchParams struct {
	MonthlyRent      decimal.Decimal `json:"monthly_rent"`
	StaffingEstimate decimal.Decimal `json:"staffing_estimate"`
	SizeSqft         float64         `json:"size_sqft"`
}

// CustomParams carries caller-supplied impact fields for decisions that do
// not fit a built-in type. They pass through range validation unchanged.
type CustomParams struct {
	InitialCost        decimal.Decimal    `json:"initial_cost"`
	MonthlyRecurring   decimal.Decimal    `json:"monthly_recurring"`
	RevenueMultiplier  float64            `json:"revenue_multiplier"`
	OperationalChanges map[string]float64 `json:"operational_changes,omitempty"`
}

// ScenarioParams describes a proposed decision. Exactly one of the
// type-specific blocks must be set, matching Type.
type ScenarioParams struct {
	Type         DecisionType       `json:"type"`
	Cost         decimal.Decimal    `json:"cost"`
	Timing       time.Time          `json:"timing"`
	DurationDays int                `json:"duration_days,omitempty"`
	Hiring       *HiringParams      `json:"hiring,omitempty"`
	Inventory    *InventoryParams   `json:"inventory,omitempty"`
	StoreLaunch  *StoreLaunchParams `json:"store_launch,omitempty"`
	Custom       *CustomParams      `json:"custom,omitempty"`
}

// ScenarioImpact is the translated effect of a decision on daily cash flow.
// It is computed once per simulation and never persisted on its own.
type ScenarioImpact struct {
	InitialCost        decimal.Decimal
	DailyRecurringCost decimal.Decimal
	RevenueMultiplier  float64 // incremental uplift, >= 0
	OperationalChanges map[string]float64
	TimingOffsetDays   int
	RampUpDays         int
	// DurationDays bounds the impact window; zero means open-ended.
	DurationDays int
}

// DataQuality marks how much history backed the inputs of a simulation.
type DataQuality string

const (
	DataQualityFull   DataQuality = "full"
	DataQualitySparse DataQuality = "sparse"
)
