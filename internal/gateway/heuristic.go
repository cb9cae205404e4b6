package gateway

import (
	"context"
	"strings"

	"betsense/internal/analysis"
)

// Heuristic answers every contract locally without a model.
type Heuristic struct{}

func (Heuristic) Name() string {
	return "heuristic"
}

func (Heuristic) PredictOddsChanges(_ context.Context, in PredictOddsChangesInput) (PredictOddsChangesOutput, error) {
	f := analysis.ForecastOdds(in.CurrentOdds, in.MarketInfluences)
	return PredictOddsChangesOutput{
		PredictedChange: f.PredictedChange(in.CurrentOdds),
		ConfidenceLevel: f.ConfidenceLevel(),
		Reasoning:       f.Reasoning(in.HistoricalOdds),
	}, nil
}

func (Heuristic) CalculateBetValue(_ context.Context, in CalculateBetValueInput) (CalculateBetValueOutput, error) {
	vi := in.valueInput()
	est := analysis.EstimateValue(vi)
	risk := est.RiskAssessment(vi)
	if h := strings.TrimSpace(in.UserHistoryAnalysis); h != "" {
		risk += " History: " + h
	}
	return CalculateBetValueOutput{
		BetValue:        est.BetValue,
		RiskAssessment:  risk,
		SuggestedAction: est.SuggestedAction(),
		StakeAnalysis:   analysis.StakeNarrative(in.Stake, analysis.ComputeStakeProfile(in.BetHistory)),
	}, nil
}

func (Heuristic) AnalyzeBetHistory(_ context.Context, in AnalyzeBetHistoryInput) (AnalyzeBetHistoryOutput, error) {
	res := analysis.AnalyzeHistory(in.BetHistory, in.CurrentBetContext)
	return AnalyzeBetHistoryOutput{
		OverallSummary: res.OverallSummary,
		Insights:       res.Insights,
	}, nil
}
