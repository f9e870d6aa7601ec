package risk

import (
	"fmt"

	"ScenarioLens/internal/model"
)

// suggestions builds the mitigation list for a signal. The list is never
// empty: an emitted signal without guidance is treated as a defect, so the
// generic fallback covers any type/severity pair without its own entry.
func suggestions(t model.RiskType, sev model.Severity, delayDays int) []string {
	if delayDays <= 0 {
		delayDays = 30
	}

	switch t {
	case model.RiskCashflow:
		switch sev {
		case model.SeverityCritical:
			return []string{
				fmt.Sprintf("delay the decision by %d days to rebuild cash reserves", delayDays),
				"negotiate extended payment terms with suppliers",
				"arrange a short-term credit line before committing",
			}
		case model.SeverityHigh:
			return []string{
				fmt.Sprintf("consider delaying the decision by %d days", delayDays),
				"stagger the outlay across several smaller payments",
				"review discretionary spending over the breach window",
			}
		default:
			return []string{
				"monitor cash position weekly over the breach window",
				"keep a contingency buffer for the projected dip",
			}
		}
	case model.RiskOperational:
		switch sev {
		case model.SeverityMedium:
			return []string{
				"phase the commitment in smaller increments",
				"re-check recurring costs against a conservative revenue forecast",
			}
		default:
			return []string{
				"review the recurring commitment against seasonal revenue lows",
			}
		}
	case model.RiskMarket:
		return []string{
			"validate demand assumptions against regional benchmarks",
		}
	}

	return []string{"review this scenario with a financial advisor before committing"}
}
