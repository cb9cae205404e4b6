package models

import (
	"strings"
	"time"
)

type BetType string

const (
	BetTypeMoneyline BetType = "Moneyline"
	BetTypeSpread    BetType = "Spread"
	BetTypeOverUnder BetType = "Over/Under"
	BetTypeDraw      BetType = "Draw"
)

func AvailableBetTypes() []BetType {
	return []BetType{BetTypeMoneyline, BetTypeSpread, BetTypeOverUnder, BetTypeDraw}
}

func ParseBetType(raw string) (BetType, bool) {
	v := strings.TrimSpace(raw)
	for _, bt := range AvailableBetTypes() {
		if strings.EqualFold(string(bt), v) {
			return bt, true
		}
	}
	return "", false
}

type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

// Bet is one historical wager. Bets are append-only.
type Bet struct {
	ID              string    `gorm:"primaryKey;type:varchar(64);comment:time-ordered id" json:"id"`
	Sport           Sport     `gorm:"type:varchar(20);not null;index" json:"sport"`
	Event           string    `gorm:"type:text;not null" json:"event"`
	BetType         BetType   `gorm:"type:varchar(20);not null" json:"betType"`
	BetOn           string    `gorm:"type:text;not null;comment:backed side" json:"betOn"`
	Stake           float64   `gorm:"type:numeric(20,4);not null" json:"stake"`
	Odds            float64   `gorm:"type:numeric(10,4);not null" json:"odds"`
	Outcome         Outcome   `gorm:"type:varchar(10);not null;index" json:"outcome"`
	Date            string    `gorm:"type:varchar(10);not null;index;comment:YYYY-MM-DD" json:"date"`
	MarketCondition string    `gorm:"type:text" json:"marketCondition,omitempty"`
	CreatedAt       time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"createdAt"`
}

func (Bet) TableName() string {
	return "bets"
}

func (b Bet) Won() bool {
	return b.Outcome == OutcomeWin
}
