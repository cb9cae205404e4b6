package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"betsense/internal/models"
)

// BetContext describes the match a user is looking at.
type BetContext struct {
	Sport            string `json:"sport" validate:"required"`
	TeamA            string `json:"teamA"`
	TeamB            string `json:"teamB"`
	MarketInfluences string `json:"marketInfluences"`
}

// ContextFromOdd builds the analysis context for a market.
func ContextFromOdd(o models.Odd) BetContext {
	return BetContext{
		Sport:            string(o.Sport),
		TeamA:            o.TeamA,
		TeamB:            o.TeamB,
		MarketInfluences: o.InfluenceNames(),
	}
}

func (c BetContext) matchup() string {
	a, b := strings.TrimSpace(c.TeamA), strings.TrimSpace(c.TeamB)
	switch {
	case a != "" && b != "":
		return a + " vs " + b
	case a != "":
		return a
	case b != "":
		return b
	default:
		return "this match"
	}
}

type GroupKind string

const (
	KindTeam      GroupKind = "team"
	KindInfluence GroupKind = "influence"
	KindBetType   GroupKind = "bet_type"
)

// Group is one condition axis over the sport-filtered history.
type Group struct {
	Kind      GroupKind
	Condition string
	phrase    string
	members   []int
	Wins      int
}

func (g Group) Size() int { return len(g.members) }

func (g Group) rate() int {
	if len(g.members) == 0 {
		return 0
	}
	return int(float64(g.Wins)/float64(len(g.members))*100 + 0.5)
}

// WinRate renders wins/total as a percentage, or "N losses" when nothing was won.
func WinRate(wins, total int) string {
	if total <= 0 {
		return "0%"
	}
	if wins == 0 {
		if total == 1 {
			return "1 loss"
		}
		return strconv.Itoa(total) + " losses"
	}
	return strconv.Itoa(int(float64(wins)/float64(total)*100+0.5)) + "%"
}

// FilterBySport keeps only bets on the given sport.
func FilterBySport(history []models.Bet, sport string) []models.Bet {
	want := strings.TrimSpace(sport)
	out := make([]models.Bet, 0, len(history))
	if want == "" {
		return out
	}
	for _, b := range history {
		if strings.EqualFold(strings.TrimSpace(string(b.Sport)), want) {
			out = append(out, b)
		}
	}
	return out
}

// SignificantGroups returns every group of the sport-filtered history with
// at least MinBetsPerInsight bets. Groups with identical membership are
// reported once, first one wins.
func SignificantGroups(history []models.Bet, ctx BetContext) []Group {
	filtered := FilterBySport(history, ctx.Sport)
	if len(filtered) == 0 {
		return nil
	}

	var candidates []Group
	for _, team := range []string{ctx.TeamA, ctx.TeamB} {
		team = strings.TrimSpace(team)
		if team == "" {
			continue
		}
		g := collect(filtered, KindTeam, "Bets involving "+team, "bets involving "+team, func(b models.Bet) bool {
			return mentions(b.BetOn, team) || mentions(b.Event, team)
		})
		candidates = append(candidates, g)
		candidates = append(candidates, betTypeSubgroups(filtered, g, team)...)
	}
	for _, token := range InfluenceTokens(ctx.MarketInfluences) {
		g := collect(filtered, KindInfluence, "Bets during "+token+" conditions", "bets placed during "+strings.ToLower(token)+" conditions", func(b models.Bet) bool {
			cond := strings.TrimSpace(b.MarketCondition)
			if cond == "" {
				return false
			}
			return mentions(cond, token) || mentions(token, cond)
		})
		candidates = append(candidates, g)
	}

	seen := map[string]struct{}{}
	out := make([]Group, 0, len(candidates))
	for _, g := range candidates {
		if g.Size() < models.MinBetsPerInsight {
			continue
		}
		key := membershipKey(g.members)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, g)
	}
	return out
}

// betTypeSubgroups splits a team group by bet type. A split is kept only when
// it is a strict subset of the team group and forms a strong pattern.
func betTypeSubgroups(filtered []models.Bet, parent Group, team string) []Group {
	if parent.Size() <= models.MinBetsPerInsight {
		return nil
	}
	byType := map[models.BetType][]int{}
	var order []models.BetType
	for _, idx := range parent.members {
		bt := filtered[idx].BetType
		if _, ok := byType[bt]; !ok {
			order = append(order, bt)
		}
		byType[bt] = append(byType[bt], idx)
	}
	var out []Group
	for _, bt := range order {
		idxs := byType[bt]
		if len(idxs) < models.MinBetsPerInsight || len(idxs) == parent.Size() {
			continue
		}
		g := Group{
			Kind:      KindBetType,
			Condition: fmt.Sprintf("%s bets involving %s", bt, team),
			phrase:    fmt.Sprintf("%s bets involving %s", bt, team),
			members:   idxs,
		}
		for _, idx := range idxs {
			if filtered[idx].Won() {
				g.Wins++
			}
		}
		if r := g.rate(); r >= 70 || r <= 30 {
			out = append(out, g)
		}
	}
	return out
}

func collect(filtered []models.Bet, kind GroupKind, condition, phrase string, match func(models.Bet) bool) Group {
	g := Group{Kind: kind, Condition: condition, phrase: phrase}
	for i, b := range filtered {
		if !match(b) {
			continue
		}
		g.members = append(g.members, i)
		if b.Won() {
			g.Wins++
		}
	}
	return g
}

// InfluenceTokens splits a comma-joined influence text, dropping "None".
func InfluenceTokens(text string) []string {
	var out []string
	for _, raw := range strings.Split(text, ",") {
		v := strings.TrimSpace(raw)
		if v == "" || strings.EqualFold(v, "none") {
			continue
		}
		out = append(out, v)
	}
	return out
}

func mentions(haystack, needle string) bool {
	h := strings.ToLower(strings.TrimSpace(haystack))
	n := strings.ToLower(strings.TrimSpace(needle))
	if h == "" || n == "" {
		return false
	}
	return strings.Contains(h, n)
}

func membershipKey(members []int) string {
	sorted := append([]int(nil), members...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, v := range sorted {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// HistoryAnalysis is the locally computed analysis of a bet history.
type HistoryAnalysis struct {
	OverallSummary string           `json:"overallSummary"`
	Insights       []models.Insight `json:"insights"`
}

// AnalyzeHistory groups the history against the context and renders one
// insight per significant group.
func AnalyzeHistory(history []models.Bet, ctx BetContext) HistoryAnalysis {
	groups := SignificantGroups(history, ctx)
	insights := make([]models.Insight, 0, len(groups))
	for _, g := range groups {
		insights = append(insights, models.Insight{
			Condition:    g.Condition,
			WinRate:      WinRate(g.Wins, g.Size()),
			Summary:      groupSummary(g),
			BetsAnalyzed: g.Size(),
		})
	}
	return HistoryAnalysis{
		OverallSummary: overallSummary(ctx, groups, len(FilterBySport(history, ctx.Sport))),
		Insights:       insights,
	}
}

// NoPatternSummary is the overall summary when nothing reaches the floor.
func NoPatternSummary(ctx BetContext) string {
	sport := strings.TrimSpace(ctx.Sport)
	if sport == "" {
		sport = "this sport"
	}
	return fmt.Sprintf("No relevant betting patterns were found in your %s history for %s.", sport, ctx.matchup())
}

func groupSummary(g Group) string {
	n := g.Size()
	switch r := g.rate(); {
	case r >= 60:
		return fmt.Sprintf("You have a strong record on %s (%d of %d won).", g.phrase, g.Wins, n)
	case r <= 40:
		return fmt.Sprintf("You tend to lose on %s (%d of %d won).", g.phrase, g.Wins, n)
	default:
		return fmt.Sprintf("Your results on %s are mixed (%d of %d won).", g.phrase, g.Wins, n)
	}
}

func overallSummary(ctx BetContext, groups []Group, sportBets int) string {
	if len(groups) == 0 {
		return NoPatternSummary(ctx)
	}
	var strengths, weaknesses, mixed []string
	for _, g := range groups {
		item := fmt.Sprintf("%s (%s over %d bets)", g.phrase, WinRate(g.Wins, g.Size()), g.Size())
		switch r := g.rate(); {
		case r >= 60:
			strengths = append(strengths, item)
		case r <= 40:
			weaknesses = append(weaknesses, item)
		default:
			mixed = append(mixed, item)
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Across %d %s bets relevant to %s:", sportBets, strings.TrimSpace(ctx.Sport), ctx.matchup())
	if len(strengths) > 0 {
		fmt.Fprintf(&b, " strengths are %s.", strings.Join(strengths, "; "))
	} else {
		b.WriteString(" no clear strengths.")
	}
	if len(weaknesses) > 0 {
		fmt.Fprintf(&b, " Weaknesses are %s.", strings.Join(weaknesses, "; "))
	} else {
		b.WriteString(" No clear weaknesses.")
	}
	if len(mixed) > 0 {
		fmt.Fprintf(&b, " Mixed results on %s.", strings.Join(mixed, "; "))
	}
	return b.String()
}
