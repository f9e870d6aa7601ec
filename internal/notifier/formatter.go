package notifier

import (
	"fmt"
	"sort"
	"strings"

	"ScenarioLens/internal/engine"
	"ScenarioLens/internal/model"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

func severityIcon(s model.Severity) string {
	switch s {
	case model.SeverityCritical:
		return "🔴"
	case model.SeverityHigh:
		return "🟠"
	case model.SeverityMedium:
		return "🟡"
	default:
		return "🔵"
	}
}

func money(d decimal.Decimal) string {
	return humanize.CommafWithDigits(d.InexactFloat64(), 2)
}

// FormatSimulationReport renders one simulation result into a Telegram
// message: projection summary first, then the ordered risk signals.
func FormatSimulationReport(bizName, scenarioLabel string, res *engine.Result) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> — %s\n\n", bizName, scenarioLabel))

	sum := res.Projection.Summary
	b.WriteString(fmt.Sprintf("90-day net change: %s\n", money(sum.NetChange)))
	b.WriteString(fmt.Sprintf("Lowest point: %s on %s\n", money(sum.LowestPoint), sum.LowestPointDate.Format("2006-01-02")))
	if sum.BreakEvenDate != nil {
		b.WriteString(fmt.Sprintf("Break-even: %s\n", sum.BreakEvenDate.Format("2006-01-02")))
	} else {
		b.WriteString("Break-even: not reached within the horizon\n")
	}

	if res.Quality == engine.QualityDegraded {
		b.WriteString(fmt.Sprintf("\n⚠️ <i>%s</i>\n", res.Warning))
	}

	if len(res.Signals) == 0 {
		b.WriteString("\n✅ No risk signals detected\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("\n<b>Risk signals (%d):</b>\n", len(res.Signals)))
	for _, sig := range res.Signals {
		b.WriteString(fmt.Sprintf("%s <b>%s</b> %s — %s\n",
			severityIcon(sig.Severity), strings.ToUpper(string(sig.Severity)), sig.Type, sig.Description))
		for _, m := range sig.MitigationSuggestions {
			b.WriteString(fmt.Sprintf("   • %s\n", m))
		}
	}
	return b.String()
}

// FormatComparison renders a scenario comparison into a Telegram message.
func FormatComparison(res *model.ComparisonResult) string {
	var b strings.Builder

	b.WriteString("⚖️ <b>Scenario comparison</b>\n\n")
	ids := make([]string, 0, len(res.Metrics))
	for id := range res.Metrics {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		m := res.Metrics[id]
		marker := ""
		if id == res.BestCaseScenarioID {
			marker = " 🏆"
		} else if id == res.WorstCaseScenarioID {
			marker = " ⚠️"
		}
		b.WriteString(fmt.Sprintf("<b>%s</b>%s\n", id, marker))
		b.WriteString(fmt.Sprintf("  Net change: %s (Δ %s)\n", money(m.NetChange), money(m.NetChangeDelta)))
		if m.BreakEvenDate != nil {
			b.WriteString(fmt.Sprintf("  Break-even: %s\n", m.BreakEvenDate.Format("2006-01-02")))
		} else {
			b.WriteString("  Break-even: never\n")
		}
		if m.SignalCount > 0 {
			b.WriteString(fmt.Sprintf("  Risks: %d (worst: %s)\n", m.SignalCount, m.HighestSeverity))
		}
	}
	b.WriteString(fmt.Sprintf("\nBest case: <b>%s</b> | Worst case: <b>%s</b>", res.BestCaseScenarioID, res.WorstCaseScenarioID))
	return b.String()
}
