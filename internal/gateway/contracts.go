package gateway

import (
	"strings"

	"betsense/internal/analysis"
	"betsense/internal/models"
)

// Contract names are versioned; a change to either side of a contract gets a
// new version.
const (
	ContractPredictOddsChanges = "predict_odds_changes.v1"
	ContractCalculateBetValue  = "calculate_bet_value.v3"
	ContractAnalyzeBetHistory  = "analyze_bet_history.v1"
)

type PredictOddsChangesInput struct {
	CurrentOdds      float64 `json:"currentOdds" validate:"finite,gte=1"`
	MarketInfluences string  `json:"marketInfluences"`
	HistoricalOdds   string  `json:"historicalOdds"`
}

// PredictionInputFromOdd assembles the prediction input the way the
// dashboard does for a row of the odds table.
func PredictionInputFromOdd(o models.Odd) PredictOddsChangesInput {
	return PredictOddsChangesInput{
		CurrentOdds:      o.AverageOdds(),
		MarketInfluences: o.InfluenceNames(),
		HistoricalOdds:   o.HistoricalOdds,
	}
}

type PredictOddsChangesOutput struct {
	PredictedChange string `json:"predictedChange" validate:"required"`
	// ConfidenceLevel is always "<0-100>%".
	ConfidenceLevel string `json:"confidenceLevel" validate:"required"`
	Reasoning       string `json:"reasoning" validate:"required"`
}

// Confidence is the integer percentage of ConfidenceLevel.
func (o PredictOddsChangesOutput) Confidence() int {
	v, _ := models.LeadingInt(o.ConfidenceLevel)
	return v
}

type CalculateBetValueInput struct {
	Sport               string       `json:"sport" validate:"required"`
	BetType             string       `json:"betType" validate:"required"`
	Odds                float64      `json:"odds" validate:"finite,gte=1"`
	Stake               float64      `json:"stake" validate:"finite,gt=0"`
	MarketInfluences    string       `json:"marketInfluences"`
	UserHistoryAnalysis string       `json:"userHistoryAnalysis"`
	BetHistory          []models.Bet `json:"betHistory"`
}

func (in CalculateBetValueInput) valueInput() analysis.ValueInput {
	return analysis.ValueInput{
		Sport:            in.Sport,
		BetType:          in.BetType,
		Odds:             in.Odds,
		Stake:            in.Stake,
		MarketInfluences: in.MarketInfluences,
		History:          in.BetHistory,
	}
}

type CalculateBetValueOutput struct {
	BetValue        float64 `json:"betValue"`
	RiskAssessment  string  `json:"riskAssessment" validate:"required"`
	SuggestedAction string  `json:"suggestedAction" validate:"required"`
	StakeAnalysis   string  `json:"stakeAnalysis"`
}

// Combined is the single user-facing risk text: match risk, then stake.
func (o CalculateBetValueOutput) Combined() string {
	parts := make([]string, 0, 2)
	for _, s := range []string{o.RiskAssessment, o.StakeAnalysis} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

type AnalyzeBetHistoryInput struct {
	BetHistory        []models.Bet        `json:"betHistory"`
	CurrentBetContext analysis.BetContext `json:"currentBetContext"`
}

type AnalyzeBetHistoryOutput struct {
	OverallSummary string           `json:"overallSummary" validate:"required"`
	Insights       []models.Insight `json:"insights" validate:"dive"`
}
