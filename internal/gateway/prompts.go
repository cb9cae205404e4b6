package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"betsense/internal/models"
)

const systemPrompt = `You are a sports betting analyst. Answer with a single JSON object that matches the required schema. Do not wrap it in markdown and do not add any text before or after it.`

var promptFuncs = template.FuncMap{
	"json": func(v any) (string, error) {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b), nil
	},
}

var predictTmpl = template.Must(template.New(ContractPredictOddsChanges).Funcs(promptFuncs).Parse(`Predict how the odds of this betting market are likely to move.

Current odds: {{printf "%.2f" .CurrentOdds}}
Market influences: {{.MarketInfluences}}
Historical odds data: {{.HistoricalOdds}}

Weigh injuries to key players, weather changes, team news and recent line movement against the historical trend for similar events.

Required JSON schema:
{
  "predictedChange": "string, direction (increase or decrease) and magnitude",
  "confidenceLevel": "string, integer percentage such as \"70%\"",
  "reasoning": "string, the influences and history behind the prediction"
}`))

var valueTmpl = template.Must(template.New(ContractCalculateBetValue).Funcs(promptFuncs).Parse(`Estimate the value of this prospective bet.

Sport: {{.Sport}}
Bet type: {{.BetType}}
Odds: {{printf "%.2f" .Odds}}
Stake: {{printf "%.2f" .Stake}}
Market influences: {{.MarketInfluences}}
User's historical bet analysis: {{if .UserHistoryAnalysis}}{{.UserHistoryAnalysis}}{{else}}none{{end}}

A strong history with this kind of bet raises the value; a poor history lowers it and raises the risk.
Assess match and market risk only. Stake size is analysed separately, so do not comment on it.

Required JSON schema:
{
  "betValue": "number, expected profit or loss in the stake currency",
  "riskAssessment": "string",
  "suggestedAction": "string, e.g. place the bet or wait for better odds"
}`))

var historyTmpl = template.Must(template.New(ContractAnalyzeBetHistory).Funcs(promptFuncs).Parse(`Analyze the user's bet history for patterns relevant to the current bet.

Bet history ({{.Sport}} only):
{{json .Bets}}

Current bet context:
{{json .Context}}

Rules:
1. Only consider the bets listed above.
2. Group them by team involvement, market condition and, when it forms a strong pattern, bet type.
3. Report a group only if it contains at least {{.MinBets}} bets, with winRate as an integer percentage such as "75%".
4. If no group qualifies, return an empty insights list and say that no relevant pattern was found.
5. The overall summary must name strengths and weaknesses relevant to the current context; it is passed to another analysis verbatim.

Required JSON schema:
{
  "overallSummary": "string",
  "insights": [
    {"condition": "string", "winRate": "string", "summary": "string", "betsAnalyzed": "integer >= {{.MinBets}}"}
  ]
}`))

type promptBet struct {
	ID              string  `json:"id"`
	Sport           string  `json:"sport"`
	Event           string  `json:"event"`
	BetType         string  `json:"betType"`
	BetOn           string  `json:"betOn"`
	Stake           float64 `json:"stake"`
	Odds            float64 `json:"odds"`
	Outcome         string  `json:"outcome"`
	Date            string  `json:"date"`
	MarketCondition string  `json:"marketCondition,omitempty"`
}

func toPromptBets(bets []models.Bet) []promptBet {
	out := make([]promptBet, 0, len(bets))
	for _, b := range bets {
		out = append(out, promptBet{
			ID:              b.ID,
			Sport:           string(b.Sport),
			Event:           b.Event,
			BetType:         string(b.BetType),
			BetOn:           b.BetOn,
			Stake:           b.Stake,
			Odds:            b.Odds,
			Outcome:         string(b.Outcome),
			Date:            b.Date,
			MarketCondition: b.MarketCondition,
		})
	}
	return out
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", t.Name(), err)
	}
	return buf.String(), nil
}
