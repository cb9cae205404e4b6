package gateway

import (
	"strings"

	"betsense/internal/analysis"
	"betsense/internal/models"
)

// enforceValueInvariants replaces the stake narrative with the locally
// computed one. The "Warning:" marker may only come from that narrative.
func enforceValueInvariants(in CalculateBetValueInput, out CalculateBetValueOutput) CalculateBetValueOutput {
	profile := analysis.ComputeStakeProfile(in.BetHistory)
	out.StakeAnalysis = analysis.StakeNarrative(in.Stake, profile)
	out.RiskAssessment = strings.ReplaceAll(out.RiskAssessment, analysis.StakeWarningPrefix, "Note:")
	return out
}

// enforceHistoryInvariants drops insights below the significance floor or
// claiming more bets than the sport-filtered history holds, and forces the
// empty form when that history has no qualifying group.
func enforceHistoryInvariants(in AnalyzeBetHistoryInput, out AnalyzeBetHistoryOutput) AnalyzeBetHistoryOutput {
	if len(analysis.SignificantGroups(in.BetHistory, in.CurrentBetContext)) == 0 {
		return AnalyzeBetHistoryOutput{
			OverallSummary: analysis.NoPatternSummary(in.CurrentBetContext),
			Insights:       []models.Insight{},
		}
	}
	available := len(analysis.FilterBySport(in.BetHistory, in.CurrentBetContext.Sport))
	kept := make([]models.Insight, 0, len(out.Insights))
	for _, insight := range out.Insights {
		if insight.BetsAnalyzed < models.MinBetsPerInsight || insight.BetsAnalyzed > available {
			continue
		}
		kept = append(kept, insight)
	}
	out.Insights = kept
	if len(kept) == 0 && strings.TrimSpace(out.OverallSummary) == "" {
		out.OverallSummary = analysis.NoPatternSummary(in.CurrentBetContext)
	}
	return out
}
