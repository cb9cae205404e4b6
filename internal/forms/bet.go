package forms

import (
	"strings"

	"betsense/internal/models"
)

type BetForm struct {
	Sport           string  `form:"sport" json:"sport" validate:"required"`
	Event           string  `form:"event" json:"event" validate:"required"`
	BetType         string  `form:"betType" json:"betType" validate:"required"`
	BetOn           string  `form:"betOn" json:"betOn" validate:"required"`
	Stake           float64 `form:"stake" json:"stake" validate:"finite,gt=0"`
	Odds            float64 `form:"odds" json:"odds" validate:"finite,gte=1"`
	Outcome         string  `form:"outcome" json:"outcome" validate:"oneof=win loss"`
	Date            string  `form:"date" json:"date" validate:"datetime=2006-01-02"`
	MarketCondition string  `form:"marketCondition" json:"marketCondition"`
}

var betMessages = map[string]string{
	"sport":         "Sport is required",
	"event":         "Event is required",
	"betType":       "Bet type is required",
	"betOn":         "Pick the side you backed",
	"stake":         "Stake must be a positive number",
	"odds":          "Odds must be at least 1",
	"outcome":       "Outcome must be win or loss",
	"date.datetime": "Date must be YYYY-MM-DD",
}

func (f *BetForm) normalize() {
	f.Sport = strings.TrimSpace(f.Sport)
	f.Event = strings.TrimSpace(f.Event)
	f.BetType = strings.TrimSpace(f.BetType)
	f.BetOn = strings.TrimSpace(f.BetOn)
	f.Outcome = strings.ToLower(strings.TrimSpace(f.Outcome))
	f.Date = strings.TrimSpace(f.Date)
	f.MarketCondition = strings.TrimSpace(f.MarketCondition)
}

func (f *BetForm) Validate() error {
	f.normalize()
	errs := check(f, betMessages)
	if f.Sport != "" {
		if _, ok := models.ParseSport(f.Sport); !ok {
			errs.add("sport", "Unknown sport")
		}
	}
	if f.BetType != "" {
		if _, ok := models.ParseBetType(f.BetType); !ok {
			errs.add("betType", "Unknown bet type")
		}
	}
	return orNil(errs)
}

// Bet builds the model. Call Validate first.
func (f *BetForm) Bet() models.Bet {
	sport, _ := models.ParseSport(f.Sport)
	betType, _ := models.ParseBetType(f.BetType)
	return models.Bet{
		Sport:           sport,
		Event:           f.Event,
		BetType:         betType,
		BetOn:           f.BetOn,
		Stake:           f.Stake,
		Odds:            f.Odds,
		Outcome:         models.Outcome(f.Outcome),
		Date:            f.Date,
		MarketCondition: f.MarketCondition,
	}
}
