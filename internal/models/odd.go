package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type Sport string

const (
	SportSoccer     Sport = "Soccer"
	SportBasketball Sport = "Basketball"
	SportTennis     Sport = "Tennis"
)

func AvailableSports() []Sport {
	return []Sport{SportSoccer, SportBasketball, SportTennis}
}

// ParseSport matches case-insensitively against the known sports.
func ParseSport(raw string) (Sport, bool) {
	v := strings.TrimSpace(raw)
	for _, s := range AvailableSports() {
		if strings.EqualFold(string(s), v) {
			return s, true
		}
	}
	return "", false
}

// AllowsDraw reports whether a market for the sport may carry draw odds.
func (s Sport) AllowsDraw() bool {
	return s == SportSoccer
}

type ChartPoint struct {
	MatchDate string  `json:"matchDate"`
	TeamA     float64 `json:"teamA"`
	TeamB     float64 `json:"teamB"`
}

type Availability string

const (
	AvailabilityYes       Availability = "Yes"
	AvailabilityDoubtful  Availability = "Doubtful"
	AvailabilityUnclear   Availability = "Unclear"
	AvailabilityLikelySub Availability = "Likely sub"
)

func AvailableAvailability() []Availability {
	return []Availability{AvailabilityYes, AvailabilityDoubtful, AvailabilityUnclear, AvailabilityLikelySub}
}

func (a Availability) Valid() bool {
	for _, v := range AvailableAvailability() {
		if a == v {
			return true
		}
	}
	return false
}

type PlayerStatus struct {
	Name         string       `json:"name"`
	Status       string       `json:"status"`
	Availability Availability `json:"availability"`
}

// Odd is a betting market for one event.
type Odd struct {
	ID        string   `gorm:"primaryKey;type:varchar(64);comment:market id" json:"id"`
	Event     string   `gorm:"type:text;not null;comment:event name" json:"event"`
	Sport     Sport    `gorm:"type:varchar(20);not null;index;comment:sport" json:"sport"`
	TeamA     string   `gorm:"column:team_a;type:text;not null" json:"teamA"`
	TeamAOdds float64  `gorm:"column:team_a_odds;type:numeric(10,4);not null" json:"teamAOdds"`
	TeamB     string   `gorm:"column:team_b;type:text;not null" json:"teamB"`
	TeamBOdds float64  `gorm:"column:team_b_odds;type:numeric(10,4);not null" json:"teamBOdds"`
	DrawOdds  *float64 `gorm:"type:numeric(10,4);comment:only for sports with a draw outcome" json:"drawOdds,omitempty"`

	MarketInfluences              datatypes.JSONSlice[MarketInfluence]  `gorm:"type:jsonb" json:"marketInfluences"`
	MarketInfluenceDetails        datatypes.JSONType[map[string]string] `gorm:"type:jsonb" json:"marketInfluenceDetails"`
	HistoricalComparisonChartData datatypes.JSONSlice[ChartPoint]       `gorm:"type:jsonb" json:"historicalComparisonChartData"`
	PlayerStatusData              datatypes.JSONSlice[PlayerStatus]     `gorm:"type:jsonb" json:"playerStatusData"`

	ChangesSinceLastMatch string `gorm:"type:text" json:"changesSinceLastMatch"`
	HistoricalOdds        string `gorm:"type:text" json:"historicalOdds"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"createdAt"`
}

func (Odd) TableName() string {
	return "odds"
}

// AverageOdds is the figure the prediction contract receives as current odds.
func (o Odd) AverageOdds() float64 {
	return (o.TeamAOdds + o.TeamBOdds) / 2
}

// InfluenceNames joins influence names with ", ", or returns "None".
func (o Odd) InfluenceNames() string {
	if len(o.MarketInfluences) == 0 {
		return "None"
	}
	names := make([]string, 0, len(o.MarketInfluences))
	for _, mi := range o.MarketInfluences {
		names = append(names, mi.Name)
	}
	return strings.Join(names, ", ")
}

func (o Odd) HasInfluence(id MarketInfluenceID) bool {
	for _, mi := range o.MarketInfluences {
		if mi.ID == id {
			return true
		}
	}
	return false
}

// InfluenceDetail returns the explanation for an attached influence. Detail
// keys that do not belong to an attached influence are ignored.
func (o Odd) InfluenceDetail(id MarketInfluenceID) string {
	if !o.HasInfluence(id) {
		return ""
	}
	details := o.MarketInfluenceDetails.Data()
	if details == nil {
		return ""
	}
	return details[string(id)]
}
