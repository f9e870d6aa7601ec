package compare

import (
	"sort"

	"ScenarioLens/internal/model"
)

// Compare computes differential metrics for a set of completed scenarios
// and ranks the best and worst case. Deltas are taken relative to the first
// scenario supplied. Inputs are not mutated.
func Compare(scenarios []model.ScenarioOutcome) (*model.ComparisonResult, error) {
	if len(scenarios) < 2 {
		return nil, &model.InvalidParametersError{Field: "scenarios", Guidance: "at least 2 scenarios are required for comparison"}
	}
	for _, sc := range scenarios {
		if sc.ID == "" {
			return nil, &model.InvalidParametersError{Field: "scenarios", Guidance: "every scenario needs a non-empty id"}
		}
		if sc.Projection == nil || len(sc.Projection.Timeline) == 0 {
			return nil, &model.InvalidParametersError{Field: "scenarios", Guidance: "every scenario needs a completed projection"}
		}
	}

	first := scenarios[0]
	metrics := make(map[string]model.ScenarioMetrics, len(scenarios))
	for _, sc := range scenarios {
		m := model.ScenarioMetrics{
			NetChange:       sc.Projection.Summary.NetChange,
			NetChangeDelta:  sc.Projection.Summary.NetChange.Sub(first.Projection.Summary.NetChange),
			HighestSeverity: highestSeverity(sc.Signals),
			SignalCount:     len(sc.Signals),
			BreakEvenDate:   sc.Projection.Summary.BreakEvenDate,
		}
		if m.BreakEvenDate != nil && first.Projection.Summary.BreakEvenDate != nil {
			days := int(m.BreakEvenDate.Sub(*first.Projection.Summary.BreakEvenDate).Hours() / 24)
			m.BreakEvenDeltaDays = &days
		}
		metrics[sc.ID] = m
	}

	ranked := make([]model.ScenarioOutcome, len(scenarios))
	copy(ranked, scenarios)
	sort.SliceStable(ranked, func(i, j int) bool {
		return better(&ranked[i], &ranked[j])
	})

	return &model.ComparisonResult{
		Metrics:             metrics,
		BestCaseScenarioID:  ranked[0].ID,
		WorstCaseScenarioID: ranked[len(ranked)-1].ID,
	}, nil
}

// better reports whether a should rank ahead of b: greater net change
// first, then earlier break-even (never breaking even ranks worse than any
// date), then less severe and fewer risk signals.
func better(a, b *model.ScenarioOutcome) bool {
	an := a.Projection.Summary.NetChange
	bn := b.Projection.Summary.NetChange
	if !an.Equal(bn) {
		return an.GreaterThan(bn)
	}

	abe := a.Projection.Summary.BreakEvenDate
	bbe := b.Projection.Summary.BreakEvenDate
	switch {
	case abe != nil && bbe == nil:
		return true
	case abe == nil && bbe != nil:
		return false
	case abe != nil && bbe != nil && !abe.Equal(*bbe):
		return abe.Before(*bbe)
	}

	ar := highestSeverity(a.Signals).Rank()
	br := highestSeverity(b.Signals).Rank()
	if ar != br {
		return ar < br
	}
	return len(a.Signals) < len(b.Signals)
}

func highestSeverity(signals []model.RiskSignal) model.Severity {
	var top model.Severity
	for _, s := range signals {
		if s.Severity.Rank() > top.Rank() {
			top = s.Severity
		}
	}
	return top
}
