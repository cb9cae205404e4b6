package analysis

import (
	"fmt"
	"math"
	"strings"

	"betsense/internal/models"
)

// historyPrior is the pseudo-count of bets given to the implied probability
// when blending it with the user's own win rate.
const historyPrior = 10.0

type ValueInput struct {
	Sport            string
	BetType          string
	Odds             float64
	Stake            float64
	MarketInfluences string
	History          []models.Bet
}

// ValueEstimate is the expected-value heuristic behind betValue.
//
// implied = 1/odds. The user's win rate w on n bets of the same sport and bet
// type is blended in with weight n/(n+historyPrior) once n >= 2. EV per unit
// is p*odds - 1 and BetValue is stake*EV rounded to cents. Kelly is
// (b*p - q)/b with b = odds - 1.
type ValueEstimate struct {
	ImpliedProbability   float64                  `json:"impliedProbability"`
	EstimatedProbability float64                  `json:"estimatedProbability"`
	HistoryBets          int                      `json:"historyBets"`
	HistoryWinRate       float64                  `json:"historyWinRate"`
	ExpectedValuePerUnit float64                  `json:"expectedValuePerUnit"`
	KellyFraction        float64                  `json:"kellyFraction"`
	BetValue             float64                  `json:"betValue"`
	Influences           []models.MarketInfluence `json:"influences"`
}

func EstimateValue(in ValueInput) ValueEstimate {
	est := ValueEstimate{Influences: MentionedInfluences(in.MarketInfluences)}
	if in.Odds < 1 {
		return est
	}
	implied := 1 / in.Odds
	est.ImpliedProbability = implied
	p := implied

	var n, wins int
	for _, b := range FilterBySport(in.History, in.Sport) {
		if !strings.EqualFold(string(b.BetType), strings.TrimSpace(in.BetType)) {
			continue
		}
		n++
		if b.Won() {
			wins++
		}
	}
	est.HistoryBets = n
	if n > 0 {
		est.HistoryWinRate = float64(wins) / float64(n)
	}
	if n >= models.MinBetsPerInsight {
		alpha := float64(n) / (float64(n) + historyPrior)
		p = (1-alpha)*implied + alpha*est.HistoryWinRate
	}
	est.EstimatedProbability = p
	est.ExpectedValuePerUnit = p*in.Odds - 1
	if b := in.Odds - 1; b > 0 {
		est.KellyFraction = (b*p - (1 - p)) / b
	}
	est.BetValue = round(in.Stake * est.ExpectedValuePerUnit)
	return est
}

// RiskLevel grades match risk from the price and the number of influences.
func (e ValueEstimate) RiskLevel() string {
	level := 0
	switch {
	case e.ImpliedProbability > 0 && e.ImpliedProbability < 1.0/3:
		level = 2
	case e.ImpliedProbability > 0 && e.ImpliedProbability < 0.5:
		level = 1
	}
	if len(e.Influences) >= 2 {
		level++
	}
	switch {
	case level >= 2:
		return "High"
	case level == 1:
		return "Moderate"
	default:
		return "Low"
	}
}

// RiskAssessment covers match and market risk only. Stake size is handled by
// StakeNarrative.
func (e ValueEstimate) RiskAssessment(in ValueInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s risk. The odds of %.2f imply a %.1f%% chance of winning", e.RiskLevel(), in.Odds, e.ImpliedProbability*100)
	if e.HistoryBets >= models.MinBetsPerInsight {
		fmt.Fprintf(&b, "; your %d previous %s %s bets won %.0f%% of the time, giving an adjusted estimate of %.1f%%.",
			e.HistoryBets, strings.TrimSpace(in.Sport), strings.TrimSpace(in.BetType), e.HistoryWinRate*100, e.EstimatedProbability*100)
	} else {
		b.WriteString("; there is not enough similar history to adjust this estimate.")
	}
	if len(e.Influences) > 0 {
		names := make([]string, 0, len(e.Influences))
		for _, mi := range e.Influences {
			names = append(names, mi.Name)
		}
		fmt.Fprintf(&b, " Market influences (%s) add uncertainty to the price.", strings.Join(names, ", "))
	} else {
		b.WriteString(" No significant market influences were reported.")
	}
	return b.String()
}

func (e ValueEstimate) SuggestedAction() string {
	edge := e.ExpectedValuePerUnit * 100
	switch {
	case e.ExpectedValuePerUnit > 0.05 && e.KellyFraction > 0:
		return fmt.Sprintf("Place the bet: the estimated edge is %.1f%% per unit staked.", edge)
	case e.ExpectedValuePerUnit > 0:
		return fmt.Sprintf("Consider a smaller stake or wait for better odds: the edge is thin (%.1f%% per unit staked).", edge)
	default:
		return fmt.Sprintf("Avoid this bet: the expected value is negative (%.1f%% per unit staked).", edge)
	}
}

// MentionedInfluences finds catalog influences named in free text, e.g.
// "Key player injury, bad weather" -> Injury, Weather.
func MentionedInfluences(text string) []models.MarketInfluence {
	lower := strings.ToLower(text)
	var out []models.MarketInfluence
	for _, mi := range models.InfluenceCatalog() {
		if strings.Contains(lower, strings.ToLower(mi.Name)) || strings.Contains(lower, string(mi.ID)) {
			out = append(out, mi)
		}
	}
	return out
}

func round(val float64) float64 {
	return math.Round(val*100) / 100
}
