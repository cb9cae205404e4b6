package gateway

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"betsense/internal/analysis"
	"betsense/internal/cache"
	"betsense/internal/models"
)

type stubModel struct {
	reply   string
	err     error
	calls   atomic.Int32
	prompts []string
}

func (m *stubModel) Name() string { return "stub" }

func (m *stubModel) Complete(_ context.Context, _, prompt string) (string, error) {
	m.calls.Add(1)
	m.prompts = append(m.prompts, prompt)
	return m.reply, m.err
}

func history() []models.Bet {
	return []models.Bet{
		{ID: "b1", Sport: models.SportSoccer, Event: "Real Madrid vs Barcelona", BetType: models.BetTypeMoneyline, BetOn: "Real Madrid", Stake: 20, Odds: 2.1, Outcome: models.OutcomeWin, Date: "2024-05-01"},
		{ID: "b2", Sport: models.SportSoccer, Event: "Real Madrid vs Sevilla", BetType: models.BetTypeMoneyline, BetOn: "Real Madrid", Stake: 10, Odds: 1.8, Outcome: models.OutcomeWin, Date: "2024-05-08"},
		{ID: "b3", Sport: models.SportBasketball, Event: "Lakers vs Celtics", BetType: models.BetTypeSpread, BetOn: "Lakers", Stake: 15, Odds: 1.9, Outcome: models.OutcomeLoss, Date: "2024-05-09"},
	}
}

func TestPredictOddsChanges_InvalidInput(t *testing.T) {
	_, err := PredictOddsChanges(context.Background(), Heuristic{}, PredictOddsChangesInput{CurrentOdds: 0.5})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err=%v want ErrInvalidInput", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Fields["currentOdds"] == "" {
		t.Fatalf("fields=%v", verr)
	}
}

func TestPredictOddsChanges_LLMNormalizesConfidence(t *testing.T) {
	m := &stubModel{reply: "```json\n{\"predictedChange\":\"Increase of 5%\",\"confidenceLevel\":0.72,\"reasoning\":\"Injury news\"}\n```"}
	a := &LLM{Model: m}
	out, err := PredictOddsChanges(context.Background(), a, PredictionInputFromOdd(models.Odd{TeamAOdds: 2.5, TeamBOdds: 3.0, HistoricalOdds: "Home teams win 60%."}))
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if out.ConfidenceLevel != "72%" || out.Confidence() != 72 {
		t.Fatalf("confidence=%q", out.ConfidenceLevel)
	}
	if !strings.Contains(m.prompts[0], "Current odds: 2.75") || !strings.Contains(m.prompts[0], "Market influences: None") {
		t.Fatalf("prompt=%s", m.prompts[0])
	}
}

func TestPredictOddsChanges_MalformedOutput(t *testing.T) {
	tests := []string{
		"I think the odds will go up.",
		`{"predictedChange":"Up","confidenceLevel":"high","reasoning":"x"}`,
		`{"predictedChange":"","confidenceLevel":"50%","reasoning":"x"}`,
	}
	for _, reply := range tests {
		_, err := PredictOddsChanges(context.Background(), &LLM{Model: &stubModel{reply: reply}}, PredictOddsChangesInput{CurrentOdds: 2})
		if !errors.Is(err, ErrMalformedOutput) {
			t.Fatalf("reply=%q err=%v want ErrMalformedOutput", reply, err)
		}
	}
}

func TestCalculateBetValue_StakeNarrativeIsLocal(t *testing.T) {
	m := &stubModel{reply: `{"betValue":"$12.345","riskAssessment":"Warning: rainy conditions.","suggestedAction":"Place the bet"}`}
	in := CalculateBetValueInput{Sport: "Soccer", BetType: "Moneyline", Odds: 2.5, Stake: 50, BetHistory: history()}
	out, err := CalculateBetValue(context.Background(), &LLM{Model: m}, in)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if out.BetValue != 12.35 && out.BetValue != 12.34 {
		t.Fatalf("betValue=%v", out.BetValue)
	}
	if !strings.HasPrefix(out.StakeAnalysis, "Warning:") {
		t.Fatalf("stakeAnalysis=%q want warning", out.StakeAnalysis)
	}
	if strings.Contains(out.RiskAssessment, "Warning:") {
		t.Fatalf("riskAssessment=%q must not carry the stake marker", out.RiskAssessment)
	}

	in.Stake = 15
	out, err = CalculateBetValue(context.Background(), Heuristic{}, in)
	if err != nil {
		t.Fatalf("heuristic: %v", err)
	}
	if strings.Contains(out.Combined(), "Warning:") {
		t.Fatalf("combined=%q want no warning", out.Combined())
	}
}

func TestCalculateBetValue_MissingBetValue(t *testing.T) {
	m := &stubModel{reply: `{"riskAssessment":"ok","suggestedAction":"wait"}`}
	_, err := CalculateBetValue(context.Background(), &LLM{Model: m}, CalculateBetValueInput{Sport: "Soccer", BetType: "Spread", Odds: 2, Stake: 10})
	if !errors.Is(err, ErrMalformedOutput) {
		t.Fatalf("err=%v want ErrMalformedOutput", err)
	}
}

func TestCalculateBetValue_RejectsNonPositiveStake(t *testing.T) {
	_, err := CalculateBetValue(context.Background(), Heuristic{}, CalculateBetValueInput{Sport: "Soccer", BetType: "Spread", Odds: 2, Stake: 0})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Fields["stake"] == "" {
		t.Fatalf("err=%v want stake field error", err)
	}
}

func TestAnalyzeBetHistory_LLMInvariants(t *testing.T) {
	ctx := analysis.BetContext{Sport: "Soccer", TeamA: "Real Madrid", TeamB: "Liverpool", MarketInfluences: "Injury"}
	m := &stubModel{reply: `{"overallSummary":"Strong on Real Madrid.","insights":[
		{"condition":"Bets on Real Madrid","winRate":"100%","summary":"Great record","betsAnalyzed":2},
		{"condition":"Bets in rain","winRate":"0%","summary":"One loss","betsAnalyzed":1}
	]}`}
	out, err := AnalyzeBetHistory(context.Background(), &LLM{Model: m}, AnalyzeBetHistoryInput{BetHistory: history(), CurrentBetContext: ctx})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(out.Insights) != 1 || out.Insights[0].BetsAnalyzed != 2 {
		t.Fatalf("insights=%v", out.Insights)
	}
	if strings.Contains(m.prompts[0], "Lakers") {
		t.Fatalf("prompt leaked another sport: %s", m.prompts[0])
	}
}

func TestAnalyzeBetHistory_DropsInsightsBeyondHistory(t *testing.T) {
	ctx := analysis.BetContext{Sport: "Soccer", TeamA: "Real Madrid", TeamB: "Liverpool"}
	m := &stubModel{reply: `{"overallSummary":"Strong on Real Madrid.","insights":[
		{"condition":"Bets on Real Madrid","winRate":"100%","summary":"Great record","betsAnalyzed":2},
		{"condition":"All soccer bets","winRate":"80%","summary":"Invented","betsAnalyzed":3}
	]}`}
	out, err := AnalyzeBetHistory(context.Background(), &LLM{Model: m}, AnalyzeBetHistoryInput{BetHistory: history(), CurrentBetContext: ctx})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(out.Insights) != 1 || out.Insights[0].Condition != "Bets on Real Madrid" {
		t.Fatalf("insights=%v want only the 2-bet insight", out.Insights)
	}
}

func TestCalculateBetValue_RejectsNonFiniteNumbers(t *testing.T) {
	inf := math.Inf(1)
	_, err := CalculateBetValue(context.Background(), Heuristic{}, CalculateBetValueInput{Sport: "Soccer", BetType: "Spread", Odds: 2, Stake: inf})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Fields["stake"] != "must be a finite number" {
		t.Fatalf("err=%v want stake finite error", err)
	}
	_, err = PredictOddsChanges(context.Background(), Heuristic{}, PredictOddsChangesInput{CurrentOdds: math.NaN(), MarketInfluences: "None"})
	if !errors.As(err, &verr) || verr.Fields["currentOdds"] == "" {
		t.Fatalf("err=%v want currentOdds error", err)
	}
}

func TestAnalyzeBetHistory_NoQualifyingGroupSkipsModel(t *testing.T) {
	m := &stubModel{reply: `{"overallSummary":"You love soccer.","insights":[{"condition":"Soccer","winRate":"50%","summary":"x","betsAnalyzed":5}]}`}
	ctx := analysis.BetContext{Sport: "Tennis", TeamA: "N. Djokovic", TeamB: "C. Alcaraz"}
	out, err := AnalyzeBetHistory(context.Background(), &LLM{Model: m}, AnalyzeBetHistoryInput{BetHistory: history(), CurrentBetContext: ctx})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(out.Insights) != 0 || out.OverallSummary != analysis.NoPatternSummary(ctx) {
		t.Fatalf("out=%+v", out)
	}
	if m.calls.Load() != 0 {
		t.Fatalf("model calls=%d want=0", m.calls.Load())
	}
}

func TestAnalyzeBetHistory_RequiresSport(t *testing.T) {
	_, err := AnalyzeBetHistory(context.Background(), Heuristic{}, AnalyzeBetHistoryInput{})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Fields["currentBetContext.sport"] == "" {
		t.Fatalf("err=%v", err)
	}
}

func TestNormalizeConfidence(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"75", "75%"},
		{"75 %", "75%"},
		{"0.75", "75%"},
		{"75.4%", "75%"},
		{"140", "100%"},
		{"-3", "0%"},
		{"1.0", "100%"},
	}
	for _, tt := range tests {
		got, err := NormalizeConfidence(tt.raw)
		if err != nil || got != tt.want {
			t.Fatalf("NormalizeConfidence(%q)=%q,%v want=%q", tt.raw, got, err, tt.want)
		}
	}
	if _, err := NormalizeConfidence("likely"); !errors.Is(err, ErrMalformedOutput) {
		t.Fatalf("err=%v", err)
	}
}

func TestCached_HitAvoidsModelCall(t *testing.T) {
	m := &stubModel{reply: `{"predictedChange":"Stable","confidenceLevel":"60%","reasoning":"quiet market"}`}
	c := &Cached{Next: &LLM{Model: m}, Store: cache.NewMemoryStore(), TTL: time.Minute}
	in := PredictOddsChangesInput{CurrentOdds: 1.9, MarketInfluences: "Team News"}
	for i := 0; i < 3; i++ {
		if _, err := PredictOddsChanges(context.Background(), c, in); err != nil {
			t.Fatalf("predict: %v", err)
		}
	}
	if m.calls.Load() != 1 {
		t.Fatalf("model calls=%d want=1", m.calls.Load())
	}
}

func TestCached_ErrorsAreNotCached(t *testing.T) {
	m := &stubModel{err: errors.New("upstream 500")}
	c := &Cached{Next: &LLM{Model: m}, Store: cache.NewMemoryStore(), TTL: time.Minute}
	in := PredictOddsChangesInput{CurrentOdds: 1.9}
	for i := 0; i < 2; i++ {
		if _, err := PredictOddsChanges(context.Background(), c, in); err == nil {
			t.Fatalf("expected error")
		}
	}
	if m.calls.Load() != 2 {
		t.Fatalf("model calls=%d want=2", m.calls.Load())
	}
}
