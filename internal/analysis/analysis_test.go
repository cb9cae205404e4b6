package analysis

import (
	"math"
	"strings"
	"testing"

	"betsense/internal/models"
)

func bet(sport models.Sport, event, betOn string, bt models.BetType, stake float64, outcome models.Outcome, cond string) models.Bet {
	return models.Bet{
		Sport:           sport,
		Event:           event,
		BetType:         bt,
		BetOn:           betOn,
		Stake:           stake,
		Odds:            2.0,
		Outcome:         outcome,
		Date:            "2024-07-01",
		MarketCondition: cond,
	}
}

func TestStakeNarrative_WarningWhenAboveMax(t *testing.T) {
	history := []models.Bet{
		bet(models.SportSoccer, "A vs B", "A", models.BetTypeMoneyline, 20, models.OutcomeWin, ""),
		bet(models.SportSoccer, "A vs B", "A", models.BetTypeMoneyline, 10, models.OutcomeLoss, ""),
		bet(models.SportSoccer, "A vs B", "A", models.BetTypeMoneyline, 15, models.OutcomeWin, ""),
	}
	p := ComputeStakeProfile(history)
	if p.MaxStake.StringFixed(2) != "20.00" {
		t.Fatalf("max=%s want=20.00", p.MaxStake)
	}
	if p.AvgStake.StringFixed(2) != "15.00" {
		t.Fatalf("avg=%s want=15.00", p.AvgStake)
	}
	got := StakeNarrative(50, p)
	if !strings.HasPrefix(got, StakeWarningPrefix) {
		t.Fatalf("narrative=%q want Warning prefix", got)
	}
}

func TestStakeNarrative_WarningIffAboveMax(t *testing.T) {
	history := []models.Bet{
		bet(models.SportTennis, "X vs Y", "X", models.BetTypeMoneyline, 12.5, models.OutcomeWin, ""),
		bet(models.SportBasketball, "C vs D", "C", models.BetTypeSpread, 40, models.OutcomeLoss, ""),
		bet(models.SportSoccer, "A vs B", "A", models.BetTypeDraw, 7.25, models.OutcomeLoss, ""),
	}
	p := ComputeStakeProfile(history)
	tests := []struct {
		stake float64
		warn  bool
	}{
		{1, false},
		{7.25, false},
		{19.9, false},
		{40, false},
		{40.01, true},
		{1000, true},
	}
	for _, tt := range tests {
		got := StakeNarrative(tt.stake, p)
		if strings.Contains(got, "Warning:") != tt.warn {
			t.Fatalf("stake=%v narrative=%q warn=%v", tt.stake, got, tt.warn)
		}
		if !tt.warn && !strings.Contains(got, p.AvgStake.StringFixed(2)) {
			t.Fatalf("stake=%v narrative=%q should reference the average", tt.stake, got)
		}
	}
}

func TestStakeNarrative_EmptyHistory(t *testing.T) {
	got := StakeNarrative(50, ComputeStakeProfile(nil))
	if strings.Contains(got, "Warning:") {
		t.Fatalf("narrative=%q want no warning", got)
	}
}

func TestComputeStakeProfile_Bounds(t *testing.T) {
	histories := [][]float64{
		{1},
		{0.1, 0.2, 0.7},
		{10, 10, 10},
		{1, 2, 3, 4, 5, 1000},
		{33.33, 33.33, 33.34},
	}
	for _, stakes := range histories {
		var h []models.Bet
		for _, s := range stakes {
			h = append(h, bet(models.SportSoccer, "A vs B", "A", models.BetTypeMoneyline, s, models.OutcomeWin, ""))
		}
		p := ComputeStakeProfile(h)
		if p.AvgStake.LessThan(p.MinStake) || p.AvgStake.GreaterThan(p.MaxStake) {
			t.Fatalf("stakes=%v min=%s avg=%s max=%s", stakes, p.MinStake, p.AvgStake, p.MaxStake)
		}
	}
}

func TestComputeStakeProfile_SkipsNonFiniteStakes(t *testing.T) {
	history := []models.Bet{
		bet(models.SportSoccer, "A vs B", "A", models.BetTypeMoneyline, math.Inf(1), models.OutcomeWin, ""),
		bet(models.SportSoccer, "A vs B", "A", models.BetTypeMoneyline, 10, models.OutcomeWin, ""),
		bet(models.SportSoccer, "A vs B", "A", models.BetTypeMoneyline, math.NaN(), models.OutcomeLoss, ""),
		bet(models.SportSoccer, "A vs B", "A", models.BetTypeMoneyline, 30, models.OutcomeLoss, ""),
	}
	p := ComputeStakeProfile(history)
	if p.Count != 2 || p.MaxStake.StringFixed(2) != "30.00" || p.AvgStake.StringFixed(2) != "20.00" {
		t.Fatalf("profile=%+v", p)
	}
	if !strings.HasPrefix(StakeNarrative(31, p), StakeWarningPrefix) {
		t.Fatalf("want warning above the finite maximum")
	}
	if !ComputeStakeProfile(history[:1]).Empty() {
		t.Fatalf("only non-finite stakes should give an empty profile")
	}
}

func TestAnalyzeHistory_NoCrossSportLeakage(t *testing.T) {
	history := []models.Bet{
		bet(models.SportBasketball, "Lakers vs Celtics", "Lakers", models.BetTypeMoneyline, 10, models.OutcomeWin, ""),
		bet(models.SportBasketball, "Lakers vs Celtics", "Lakers", models.BetTypeMoneyline, 10, models.OutcomeWin, ""),
		bet(models.SportBasketball, "Lakers vs Celtics", "Lakers", models.BetTypeMoneyline, 10, models.OutcomeLoss, ""),
	}
	ctx := BetContext{Sport: "Soccer", TeamA: "Lakers", TeamB: "Celtics"}
	got := AnalyzeHistory(history, ctx)
	if len(got.Insights) != 0 {
		t.Fatalf("insights=%v want empty", got.Insights)
	}
	if got.OverallSummary != NoPatternSummary(ctx) {
		t.Fatalf("summary=%q", got.OverallSummary)
	}
}

func TestAnalyzeHistory_TwoRealMadridWins(t *testing.T) {
	history := []models.Bet{
		bet(models.SportSoccer, "Real Madrid vs Barcelona", "Real Madrid", models.BetTypeMoneyline, 20, models.OutcomeWin, ""),
		bet(models.SportSoccer, "Real Madrid vs Atletico", "Real Madrid", models.BetTypeMoneyline, 15, models.OutcomeWin, ""),
	}
	ctx := BetContext{Sport: "Soccer", TeamA: "Real Madrid", TeamB: "Liverpool", MarketInfluences: "None"}
	got := AnalyzeHistory(history, ctx)
	if len(got.Insights) != 1 {
		t.Fatalf("insights=%d want=1 (%v)", len(got.Insights), got.Insights)
	}
	in := got.Insights[0]
	if in.BetsAnalyzed != 2 || in.WinRate != "100%" {
		t.Fatalf("insight=%+v", in)
	}
	if !strings.Contains(got.OverallSummary, "Real Madrid") {
		t.Fatalf("summary=%q should mention the team", got.OverallSummary)
	}
}

func TestAnalyzeHistory_SignificanceFloor(t *testing.T) {
	history := []models.Bet{
		bet(models.SportSoccer, "Liverpool vs Chelsea", "Liverpool", models.BetTypeMoneyline, 20, models.OutcomeWin, "Injury"),
		bet(models.SportSoccer, "Arsenal vs Spurs", "Arsenal", models.BetTypeSpread, 10, models.OutcomeLoss, "Weather"),
		bet(models.SportSoccer, "Arsenal vs Chelsea", "Chelsea", models.BetTypeSpread, 10, models.OutcomeLoss, "Weather"),
		bet(models.SportSoccer, "Man City vs Spurs", "Man City", models.BetTypeOverUnder, 30, models.OutcomeWin, ""),
	}
	ctx := BetContext{Sport: "Soccer", TeamA: "Liverpool", TeamB: "Man City", MarketInfluences: "Injury, Weather"}
	got := AnalyzeHistory(history, ctx)
	if len(got.Insights) != 1 {
		t.Fatalf("insights=%v want only the weather group", got.Insights)
	}
	for _, in := range got.Insights {
		if in.BetsAnalyzed < models.MinBetsPerInsight {
			t.Fatalf("insight below floor: %+v", in)
		}
	}
	if got.Insights[0].WinRate != "2 losses" {
		t.Fatalf("winRate=%q want=2 losses", got.Insights[0].WinRate)
	}
}

func TestAnalyzeHistory_BetTypeSubgroupAndDedup(t *testing.T) {
	history := []models.Bet{
		bet(models.SportBasketball, "Lakers vs Celtics", "Lakers", models.BetTypeSpread, 10, models.OutcomeLoss, ""),
		bet(models.SportBasketball, "Lakers vs Nets", "Lakers", models.BetTypeSpread, 10, models.OutcomeLoss, ""),
		bet(models.SportBasketball, "Lakers vs Heat", "Lakers", models.BetTypeMoneyline, 10, models.OutcomeWin, ""),
		bet(models.SportBasketball, "Lakers vs Bulls", "Lakers", models.BetTypeMoneyline, 10, models.OutcomeWin, ""),
	}
	ctx := BetContext{Sport: "basketball", TeamA: "Lakers", TeamB: "Warriors"}
	got := AnalyzeHistory(history, ctx)
	if len(got.Insights) != 3 {
		t.Fatalf("insights=%d want=3 (%v)", len(got.Insights), got.Insights)
	}
	if got.Insights[0].BetsAnalyzed != 4 || got.Insights[0].WinRate != "50%" {
		t.Fatalf("team insight=%+v", got.Insights[0])
	}

	// Same bets under both team names collapse into one group.
	ctx = BetContext{Sport: "Basketball", TeamA: "Lakers", TeamB: "Lakers"}
	if n := len(SignificantGroups(history[:2], ctx)); n != 1 {
		t.Fatalf("groups=%d want=1", n)
	}
}

func TestWinRate(t *testing.T) {
	tests := []struct {
		wins, total int
		want        string
	}{
		{2, 2, "100%"},
		{1, 3, "33%"},
		{2, 3, "67%"},
		{0, 1, "1 loss"},
		{0, 4, "4 losses"},
	}
	for _, tt := range tests {
		if got := WinRate(tt.wins, tt.total); got != tt.want {
			t.Fatalf("WinRate(%d,%d)=%q want=%q", tt.wins, tt.total, got, tt.want)
		}
	}
}

func TestEstimateValue(t *testing.T) {
	est := EstimateValue(ValueInput{Sport: "Soccer", BetType: "Moneyline", Odds: 2.5, Stake: 100})
	if est.ImpliedProbability != 0.4 {
		t.Fatalf("implied=%v want=0.4", est.ImpliedProbability)
	}
	if est.BetValue != 0 {
		t.Fatalf("betValue=%v want=0 without history", est.BetValue)
	}

	history := []models.Bet{
		bet(models.SportSoccer, "A vs B", "A", models.BetTypeMoneyline, 10, models.OutcomeWin, ""),
		bet(models.SportSoccer, "A vs C", "A", models.BetTypeMoneyline, 10, models.OutcomeWin, ""),
		bet(models.SportSoccer, "A vs D", "A", models.BetTypeMoneyline, 10, models.OutcomeWin, ""),
		bet(models.SportSoccer, "A vs E", "A", models.BetTypeMoneyline, 10, models.OutcomeLoss, ""),
		bet(models.SportTennis, "X vs Y", "X", models.BetTypeMoneyline, 10, models.OutcomeLoss, ""),
	}
	est = EstimateValue(ValueInput{Sport: "Soccer", BetType: "moneyline", Odds: 2.5, Stake: 100, History: history})
	if est.HistoryBets != 4 || est.HistoryWinRate != 0.75 {
		t.Fatalf("history bets=%d rate=%v", est.HistoryBets, est.HistoryWinRate)
	}
	// alpha = 4/14, p = 10/14*0.4 + 4/14*0.75 = 0.5
	if est.BetValue != 25 {
		t.Fatalf("betValue=%v want=25", est.BetValue)
	}
	if !strings.HasPrefix(est.SuggestedAction(), "Place the bet") {
		t.Fatalf("action=%q", est.SuggestedAction())
	}
}

func TestMentionedInfluences(t *testing.T) {
	got := MentionedInfluences("Key player injury, heavy weather, market_trend")
	if len(got) != 3 {
		t.Fatalf("influences=%v want=3", got)
	}
	if len(MentionedInfluences("None")) != 0 {
		t.Fatalf("None should mention nothing")
	}
}

func TestForecastOdds(t *testing.T) {
	f := ForecastOdds(2.0, "None")
	if f.PredictedChange(2.0) != "Stable (±0%)" || f.ConfidenceLevel() != "50%" {
		t.Fatalf("forecast=%+v", f)
	}
	f = ForecastOdds(2.0, "Injury, Weather")
	if f.DriftPct != 6 || f.ConfidenceLevel() != "71%" || f.ProjectedOdds != 2.12 {
		t.Fatalf("forecast=%+v", f)
	}
	if !strings.HasPrefix(f.PredictedChange(2.0), "Increase") {
		t.Fatalf("change=%q", f.PredictedChange(2.0))
	}
	f = ForecastOdds(2.0, "Team News, Weather, Injury, Market Trend")
	if f.Confidence != 87 {
		t.Fatalf("confidence=%d want=87", f.Confidence)
	}
}
