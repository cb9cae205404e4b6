package forms

import (
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"betsense/internal/models"
)

// OddForm is the odd creation form. Nested fields are JSON-encoded.
type OddForm struct {
	Event     string   `form:"event" json:"event" validate:"min=3"`
	Sport     string   `form:"sport" json:"sport" validate:"required"`
	TeamA     string   `form:"teamA" json:"teamA" validate:"min=2"`
	TeamAOdds float64  `form:"teamAOdds" json:"teamAOdds" validate:"finite,gte=1"`
	TeamB     string   `form:"teamB" json:"teamB" validate:"min=2"`
	TeamBOdds float64  `form:"teamBOdds" json:"teamBOdds" validate:"finite,gte=1"`
	DrawOdds  *float64 `form:"drawOdds" json:"drawOdds" validate:"omitempty,finite,gte=1"`

	// MarketInfluences holds influence ids or names.
	MarketInfluences              []string `form:"marketInfluences" json:"marketInfluences"`
	MarketInfluenceDetails        Encoded  `form:"marketInfluenceDetails" json:"marketInfluenceDetails"`
	HistoricalComparisonChartData Encoded  `form:"historicalComparisonChartData" json:"historicalComparisonChartData"`
	PlayerStatusData              Encoded  `form:"playerStatusData" json:"playerStatusData"`

	ChangesSinceLastMatch string `form:"changesSinceLastMatch" json:"changesSinceLastMatch"`
	HistoricalOdds        string `form:"historicalOdds" json:"historicalOdds"`
}

var oddMessages = map[string]string{
	"event":         "Event name is too short",
	"sport":         "Sport is required",
	"teamA":         "Team name is too short",
	"teamB":         "Team name is too short",
	"teamAOdds.gte": "Odds must be at least 1",
	"teamBOdds.gte": "Odds must be at least 1",
	"drawOdds.gte":  "Odds must be at least 1",
	"teamAOdds":     "Odds must be a finite number",
	"teamBOdds":     "Odds must be a finite number",
	"drawOdds":      "Odds must be a finite number",
}

func (f *OddForm) normalize() {
	f.Event = strings.TrimSpace(f.Event)
	f.Sport = strings.TrimSpace(f.Sport)
	f.TeamA = strings.TrimSpace(f.TeamA)
	f.TeamB = strings.TrimSpace(f.TeamB)
}

// Validate reports field errors as FieldErrors.
func (f *OddForm) Validate() error {
	f.normalize()
	errs := check(f, oddMessages)
	if f.Sport != "" {
		sport, ok := models.ParseSport(f.Sport)
		switch {
		case !ok:
			errs.add("sport", "Unknown sport")
		case f.DrawOdds != nil && !sport.AllowsDraw():
			errs.add("drawOdds", "Draw odds are only available for sports with a draw")
		}
	}
	for _, raw := range f.MarketInfluences {
		if _, ok := models.LookupInfluence(raw); !ok {
			errs.add("marketInfluences", "Unknown market influence: "+strings.TrimSpace(raw))
			break
		}
	}
	return orNil(errs)
}

// Odd builds the model. Call Validate first. Malformed nested JSON falls
// back to an empty value, details for influences not attached are dropped
// and player rows with an unknown availability are skipped.
func (f *OddForm) Odd(log *zap.Logger) models.Odd {
	sport, _ := models.ParseSport(f.Sport)
	influences := models.ResolveInfluences(f.MarketInfluences)

	details := decode(log, "marketInfluenceDetails", f.MarketInfluenceDetails, map[string]string{})
	attached := make(map[string]string, len(details))
	for _, mi := range influences {
		if text, ok := details[string(mi.ID)]; ok {
			attached[string(mi.ID)] = text
		}
	}

	chart := decode(log, "historicalComparisonChartData", f.HistoricalComparisonChartData, []models.ChartPoint{})

	players := decode(log, "playerStatusData", f.PlayerStatusData, []models.PlayerStatus{})
	keptPlayers := make([]models.PlayerStatus, 0, len(players))
	for _, p := range players {
		if !p.Availability.Valid() {
			continue
		}
		keptPlayers = append(keptPlayers, p)
	}

	return models.Odd{
		Event:                         f.Event,
		Sport:                         sport,
		TeamA:                         f.TeamA,
		TeamAOdds:                     f.TeamAOdds,
		TeamB:                         f.TeamB,
		TeamBOdds:                     f.TeamBOdds,
		DrawOdds:                      f.DrawOdds,
		MarketInfluences:              datatypes.JSONSlice[models.MarketInfluence](influences),
		MarketInfluenceDetails:        datatypes.NewJSONType(attached),
		HistoricalComparisonChartData: datatypes.JSONSlice[models.ChartPoint](chart),
		PlayerStatusData:              datatypes.JSONSlice[models.PlayerStatus](keptPlayers),
		ChangesSinceLastMatch:         strings.TrimSpace(f.ChangesSinceLastMatch),
		HistoricalOdds:                strings.TrimSpace(f.HistoricalOdds),
	}
}

// OddFormFrom renders a stored odd as a filled-in form.
func OddFormFrom(o models.Odd) OddForm {
	ids := make([]string, 0, len(o.MarketInfluences))
	for _, mi := range o.MarketInfluences {
		ids = append(ids, string(mi.ID))
	}
	return OddForm{
		Event:                         o.Event,
		Sport:                         string(o.Sport),
		TeamA:                         o.TeamA,
		TeamAOdds:                     o.TeamAOdds,
		TeamB:                         o.TeamB,
		TeamBOdds:                     o.TeamBOdds,
		DrawOdds:                      o.DrawOdds,
		MarketInfluences:              ids,
		MarketInfluenceDetails:        encode(o.MarketInfluenceDetails.Data()),
		HistoricalComparisonChartData: encode([]models.ChartPoint(o.HistoricalComparisonChartData)),
		PlayerStatusData:              encode([]models.PlayerStatus(o.PlayerStatusData)),
		ChangesSinceLastMatch:         o.ChangesSinceLastMatch,
		HistoricalOdds:                o.HistoricalOdds,
	}
}
