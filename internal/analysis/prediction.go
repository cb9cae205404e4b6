package analysis

import (
	"fmt"
	"math"
	"strings"

	"betsense/internal/models"
)

// influenceDrift is the signed odds drift, in percent, attributed to each
// influence by the local predictor.
var influenceDrift = map[models.MarketInfluenceID]float64{
	models.InfluenceInjury:      4,
	models.InfluenceWeather:     2,
	models.InfluenceTeamNews:    3,
	models.InfluenceMarketTrend: -5,
}

type OddsForecast struct {
	DriftPct      float64
	Confidence    int
	ProjectedOdds float64
	Influences    []models.MarketInfluence
}

// ForecastOdds sums the drift of every mentioned influence. Confidence starts
// at 55 and grows by 8 per influence up to 90; with no influences the odds
// are forecast stable at 50.
func ForecastOdds(currentOdds float64, influences string) OddsForecast {
	f := OddsForecast{Influences: MentionedInfluences(influences), ProjectedOdds: currentOdds}
	if len(f.Influences) == 0 {
		f.Confidence = 50
		return f
	}
	for _, mi := range f.Influences {
		f.DriftPct += influenceDrift[mi.ID]
	}
	f.Confidence = 55 + 8*len(f.Influences)
	if f.Confidence > 90 {
		f.Confidence = 90
	}
	projected := currentOdds * (1 + f.DriftPct/100)
	if projected < 1 {
		projected = 1
	}
	f.ProjectedOdds = round(projected)
	return f
}

func (f OddsForecast) PredictedChange(currentOdds float64) string {
	if f.DriftPct == 0 {
		return "Stable (±0%)"
	}
	direction := "Increase"
	if f.DriftPct < 0 {
		direction = "Decrease"
	}
	return fmt.Sprintf("%s of about %.0f%% (from %.2f to %.2f)", direction, math.Abs(f.DriftPct), currentOdds, f.ProjectedOdds)
}

func (f OddsForecast) ConfidenceLevel() string {
	return fmt.Sprintf("%d%%", f.Confidence)
}

func (f OddsForecast) Reasoning(historicalOdds string) string {
	var b strings.Builder
	if len(f.Influences) == 0 {
		b.WriteString("No market influences were reported, so no significant movement is expected.")
	} else {
		parts := make([]string, 0, len(f.Influences))
		for _, mi := range f.Influences {
			parts = append(parts, fmt.Sprintf("%s (%+.0f%%)", mi.Name, influenceDrift[mi.ID]))
		}
		fmt.Fprintf(&b, "Expected drift from market influences: %s.", strings.Join(parts, ", "))
	}
	if h := strings.TrimSpace(historicalOdds); h != "" {
		fmt.Fprintf(&b, " Historical context: %s", h)
	}
	return b.String()
}
