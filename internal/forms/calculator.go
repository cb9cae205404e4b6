package forms

import (
	"strings"

	"betsense/internal/models"
	"betsense/internal/service"
)

// DefaultMarketInfluences is submitted when the calculator field is left blank.
const DefaultMarketInfluences = "No significant news, standard market conditions."

// CalculatorForm is the bet value calculator. TeamA and TeamB are optional
// match context for the history analysis that precedes the valuation.
type CalculatorForm struct {
	Sport               string  `form:"sport" json:"sport" validate:"required"`
	BetType             string  `form:"betType" json:"betType" validate:"required"`
	Odds                float64 `form:"odds" json:"odds" validate:"finite,gte=1"`
	Stake               float64 `form:"stake" json:"stake" validate:"finite,gt=0"`
	MarketInfluences    string  `form:"marketInfluences" json:"marketInfluences" validate:"required"`
	UserHistoryAnalysis string  `form:"userHistoryAnalysis" json:"userHistoryAnalysis"`
	TeamA               string  `form:"teamA" json:"teamA"`
	TeamB               string  `form:"teamB" json:"teamB"`
}

var calculatorMessages = map[string]string{
	"sport":            "Sport is required",
	"betType":          "Bet type is required",
	"odds":             "Odds must be at least 1",
	"stake":            "Stake must be a positive number",
	"marketInfluences": "Market influences are required",
}

func (f *CalculatorForm) Validate() error {
	f.Sport = strings.TrimSpace(f.Sport)
	f.BetType = strings.TrimSpace(f.BetType)
	if strings.TrimSpace(f.MarketInfluences) == "" {
		f.MarketInfluences = DefaultMarketInfluences
	}
	errs := check(f, calculatorMessages)
	if f.Sport != "" {
		if _, ok := models.ParseSport(f.Sport); !ok {
			errs.add("sport", "Unknown sport")
		}
	}
	return orNil(errs)
}

func (f *CalculatorForm) Request() service.ValueRequest {
	return service.ValueRequest{
		Sport:               f.Sport,
		BetType:             f.BetType,
		Odds:                f.Odds,
		Stake:               f.Stake,
		MarketInfluences:    f.MarketInfluences,
		UserHistoryAnalysis: strings.TrimSpace(f.UserHistoryAnalysis),
		TeamA:               strings.TrimSpace(f.TeamA),
		TeamB:               strings.TrimSpace(f.TeamB),
	}
}
