package models

import "strings"

type MarketInfluenceID string

const (
	InfluenceTeamNews    MarketInfluenceID = "team_news"
	InfluenceWeather     MarketInfluenceID = "weather"
	InfluenceInjury      MarketInfluenceID = "injury"
	InfluenceMarketTrend MarketInfluenceID = "market_trend"
)

// MarketInfluence is a tagged external factor attached to a market.
type MarketInfluence struct {
	ID          MarketInfluenceID `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
}

var influenceCatalog = []MarketInfluence{
	{
		ID:          InfluenceTeamNews,
		Name:        "Team News",
		Description: "Recent news or announcements related to the teams.",
	},
	{
		ID:          InfluenceWeather,
		Name:        "Weather",
		Description: "Weather conditions that might affect the game's outcome.",
	},
	{
		ID:          InfluenceInjury,
		Name:        "Injury",
		Description: "A key player is injured, potentially impacting team performance.",
	},
	{
		ID:          InfluenceMarketTrend,
		Name:        "Market Trend",
		Description: "Significant betting volume or line movement in the market.",
	},
}

func InfluenceCatalog() []MarketInfluence {
	out := make([]MarketInfluence, len(influenceCatalog))
	copy(out, influenceCatalog)
	return out
}

// LookupInfluence resolves either an id ("market_trend") or a display name
// ("Market Trend").
func LookupInfluence(raw string) (MarketInfluence, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return MarketInfluence{}, false
	}
	for _, mi := range influenceCatalog {
		if strings.EqualFold(string(mi.ID), v) || strings.EqualFold(mi.Name, v) {
			return mi, true
		}
	}
	return MarketInfluence{}, false
}

// ResolveInfluences maps ids or names to catalog entries, dropping unknown
// and duplicate entries while keeping input order.
func ResolveInfluences(items []string) []MarketInfluence {
	out := make([]MarketInfluence, 0, len(items))
	seen := map[MarketInfluenceID]struct{}{}
	for _, raw := range items {
		mi, ok := LookupInfluence(raw)
		if !ok {
			continue
		}
		if _, dup := seen[mi.ID]; dup {
			continue
		}
		seen[mi.ID] = struct{}{}
		out = append(out, mi)
	}
	return out
}
