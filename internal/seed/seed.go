package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	"betsense/internal/logger"
	"betsense/internal/models"
	"betsense/internal/repository"
)

//go:embed seed.yaml
var defaultData []byte

type File struct {
	Odds []Odd `yaml:"odds"`
	Bets []Bet `yaml:"bets"`
}

type Odd struct {
	ID                            string            `yaml:"id"`
	Sport                         string            `yaml:"sport"`
	Event                         string            `yaml:"event"`
	TeamA                         string            `yaml:"teamA"`
	TeamAOdds                     float64           `yaml:"teamAOdds"`
	TeamB                         string            `yaml:"teamB"`
	TeamBOdds                     float64           `yaml:"teamBOdds"`
	DrawOdds                      *float64          `yaml:"drawOdds"`
	MarketInfluences              []string          `yaml:"marketInfluences"`
	MarketInfluenceDetails        map[string]string `yaml:"marketInfluenceDetails"`
	HistoricalComparisonChartData []ChartPoint      `yaml:"historicalComparisonChartData"`
	PlayerStatusData              []PlayerStatus    `yaml:"playerStatusData"`
	ChangesSinceLastMatch         string            `yaml:"changesSinceLastMatch"`
	HistoricalOdds                string            `yaml:"historicalOdds"`
}

type ChartPoint struct {
	MatchDate string  `yaml:"matchDate"`
	TeamA     float64 `yaml:"teamA"`
	TeamB     float64 `yaml:"teamB"`
}

type PlayerStatus struct {
	Name         string `yaml:"name"`
	Status       string `yaml:"status"`
	Availability string `yaml:"availability"`
}

type Bet struct {
	ID              string  `yaml:"id"`
	Sport           string  `yaml:"sport"`
	Event           string  `yaml:"event"`
	BetType         string  `yaml:"betType"`
	BetOn           string  `yaml:"betOn"`
	Stake           float64 `yaml:"stake"`
	Odds            float64 `yaml:"odds"`
	Outcome         string  `yaml:"outcome"`
	Date            string  `yaml:"date"`
	MarketCondition string  `yaml:"marketCondition"`
}

// Adder is the mutation side of the ledger.
type Adder interface {
	AddOdd(ctx context.Context, odd *models.Odd) error
	AddBet(ctx context.Context, bet *models.Bet) error
}

// Default returns the embedded demo data.
func Default() (File, error) {
	return Parse(defaultData)
}

func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse seed: %w", err)
	}
	return f, nil
}

func (o Odd) Model() (models.Odd, error) {
	sport, ok := models.ParseSport(o.Sport)
	if !ok {
		return models.Odd{}, fmt.Errorf("odd %s: unknown sport %q", o.ID, o.Sport)
	}
	if !models.ValidOdds(o.TeamAOdds) || !models.ValidOdds(o.TeamBOdds) || (o.DrawOdds != nil && !models.ValidOdds(*o.DrawOdds)) {
		return models.Odd{}, fmt.Errorf("odd %s: odds below 1", o.ID)
	}
	influences := models.ResolveInfluences(o.MarketInfluences)
	if len(influences) != len(o.MarketInfluences) {
		return models.Odd{}, fmt.Errorf("odd %s: unknown or duplicate market influence in %v", o.ID, o.MarketInfluences)
	}
	details := map[string]string{}
	for _, mi := range influences {
		if text, ok := o.MarketInfluenceDetails[string(mi.ID)]; ok {
			details[string(mi.ID)] = text
		}
	}
	chart := make([]models.ChartPoint, 0, len(o.HistoricalComparisonChartData))
	for _, p := range o.HistoricalComparisonChartData {
		chart = append(chart, models.ChartPoint{MatchDate: p.MatchDate, TeamA: p.TeamA, TeamB: p.TeamB})
	}
	players := make([]models.PlayerStatus, 0, len(o.PlayerStatusData))
	for _, p := range o.PlayerStatusData {
		av := models.Availability(p.Availability)
		if !av.Valid() {
			return models.Odd{}, fmt.Errorf("odd %s: player %s: unknown availability %q", o.ID, p.Name, p.Availability)
		}
		players = append(players, models.PlayerStatus{Name: p.Name, Status: p.Status, Availability: av})
	}
	return models.Odd{
		ID:                            o.ID,
		Event:                         o.Event,
		Sport:                         sport,
		TeamA:                         o.TeamA,
		TeamAOdds:                     o.TeamAOdds,
		TeamB:                         o.TeamB,
		TeamBOdds:                     o.TeamBOdds,
		DrawOdds:                      o.DrawOdds,
		MarketInfluences:              datatypes.JSONSlice[models.MarketInfluence](influences),
		MarketInfluenceDetails:        datatypes.NewJSONType(details),
		HistoricalComparisonChartData: datatypes.JSONSlice[models.ChartPoint](chart),
		PlayerStatusData:              datatypes.JSONSlice[models.PlayerStatus](players),
		ChangesSinceLastMatch:         o.ChangesSinceLastMatch,
		HistoricalOdds:                o.HistoricalOdds,
	}, nil
}

func (b Bet) Model() (models.Bet, error) {
	sport, ok := models.ParseSport(b.Sport)
	if !ok {
		return models.Bet{}, fmt.Errorf("bet %s: unknown sport %q", b.ID, b.Sport)
	}
	betType, ok := models.ParseBetType(b.BetType)
	if !ok {
		return models.Bet{}, fmt.Errorf("bet %s: unknown bet type %q", b.ID, b.BetType)
	}
	outcome := models.Outcome(b.Outcome)
	if outcome != models.OutcomeWin && outcome != models.OutcomeLoss {
		return models.Bet{}, fmt.Errorf("bet %s: unknown outcome %q", b.ID, b.Outcome)
	}
	if !models.ValidStake(b.Stake) || !models.ValidOdds(b.Odds) {
		return models.Bet{}, fmt.Errorf("bet %s: stake must be positive and odds at least 1", b.ID)
	}
	return models.Bet{
		ID:              b.ID,
		Sport:           sport,
		Event:           b.Event,
		BetType:         betType,
		BetOn:           b.BetOn,
		Stake:           b.Stake,
		Odds:            b.Odds,
		Outcome:         outcome,
		Date:            b.Date,
		MarketCondition: b.MarketCondition,
	}, nil
}

// Apply adds every entry through the ledger. Entries already present (by
// id) are skipped so a persistent store can be seeded on every start.
func Apply(ctx context.Context, dst Adder, f File, log *zap.Logger) error {
	log = logger.OrNop(log)
	var added, skipped int
	for _, entry := range f.Odds {
		odd, err := entry.Model()
		if err != nil {
			return err
		}
		switch err := dst.AddOdd(ctx, &odd); {
		case errors.Is(err, repository.ErrDuplicateID):
			skipped++
		case err != nil:
			return err
		default:
			added++
		}
	}
	for _, entry := range f.Bets {
		bet, err := entry.Model()
		if err != nil {
			return err
		}
		switch err := dst.AddBet(ctx, &bet); {
		case errors.Is(err, repository.ErrDuplicateID):
			skipped++
		case err != nil:
			return err
		default:
			added++
		}
	}
	log.Info("seed applied", zap.Int("added", added), zap.Int("skipped", skipped))
	return nil
}
