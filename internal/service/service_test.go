package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"betsense/internal/analysis"
	"betsense/internal/gateway"
	"betsense/internal/models"
	"betsense/internal/repository/memory"
)

type stubAnalyst struct {
	gateway.Heuristic
	err       error
	panicMsg  string
	onPredict func()
}

func (s *stubAnalyst) Name() string { return "stub" }

func (s *stubAnalyst) PredictOddsChanges(ctx context.Context, in gateway.PredictOddsChangesInput) (gateway.PredictOddsChangesOutput, error) {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	if s.err != nil {
		return gateway.PredictOddsChangesOutput{}, s.err
	}
	if hook := s.onPredict; hook != nil {
		s.onPredict = nil
		hook()
	}
	return s.Heuristic.PredictOddsChanges(ctx, in)
}

func (s *stubAnalyst) CalculateBetValue(ctx context.Context, in gateway.CalculateBetValueInput) (gateway.CalculateBetValueOutput, error) {
	if s.err != nil {
		return gateway.CalculateBetValueOutput{}, s.err
	}
	return s.Heuristic.CalculateBetValue(ctx, in)
}

func (s *stubAnalyst) AnalyzeBetHistory(ctx context.Context, in gateway.AnalyzeBetHistoryInput) (gateway.AnalyzeBetHistoryOutput, error) {
	if s.err != nil {
		return gateway.AnalyzeBetHistoryOutput{}, s.err
	}
	return s.Heuristic.AnalyzeBetHistory(ctx, in)
}

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) Publish(eventType string, _ any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, eventType)
}

func (r *recorder) count(eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e == eventType {
			n++
		}
	}
	return n
}

type notifyRecorder struct {
	calls int
}

func (n *notifyRecorder) NotifyPrediction(context.Context, models.Odd, gateway.PredictOddsChangesOutput) error {
	n.calls++
	return nil
}

func newAdvisor(t *testing.T, an gateway.Analyst) (*Advisor, *Ledger, *recorder) {
	t.Helper()
	repo := memory.New()
	rec := &recorder{}
	ledger := &Ledger{Repo: repo, Stream: rec}
	adv := &Advisor{
		Repo:     repo,
		Actions:  &Actions{Analyst: an},
		Surfaces: NewSurfaces(),
		Stream:   rec,
	}
	return adv, ledger, rec
}

func TestActions_FailureBecomesFixedMessage(t *testing.T) {
	a := &Actions{Analyst: &stubAnalyst{err: errors.New("upstream 500")}}
	ctx := context.Background()

	p := a.PredictOddsChanges(ctx, gateway.PredictOddsChangesInput{CurrentOdds: 2})
	if p.OK() || p.Error != ErrMsgPredictOddsChanges {
		t.Fatalf("predict=%+v", p)
	}
	v := a.CalculateBetValue(ctx, gateway.CalculateBetValueInput{Sport: "Soccer", BetType: "Moneyline", Odds: 2, Stake: 10})
	if v.OK() || v.Error != ErrMsgCalculateBetValue {
		t.Fatalf("value=%+v", v)
	}
	h := a.AnalyzeBetHistory(ctx, gateway.AnalyzeBetHistoryInput{CurrentBetContext: analysisContext("Soccer")})
	if h.OK() || h.Error != ErrMsgAnalyzeBetHistory {
		t.Fatalf("history=%+v", h)
	}
}

func TestActions_InvalidInputBecomesFixedMessage(t *testing.T) {
	a := &Actions{Analyst: gateway.Heuristic{}}
	v := a.CalculateBetValue(context.Background(), gateway.CalculateBetValueInput{Sport: "Soccer", BetType: "Moneyline", Odds: 2, Stake: 0})
	if v.Output != nil || v.Error != ErrMsgCalculateBetValue {
		t.Fatalf("value=%+v", v)
	}
}

func TestActions_PanicIsRecovered(t *testing.T) {
	a := &Actions{Analyst: &stubAnalyst{panicMsg: "boom"}}
	p := a.PredictOddsChanges(context.Background(), gateway.PredictOddsChangesInput{CurrentOdds: 2})
	if p.Error != ErrMsgPredictOddsChanges {
		t.Fatalf("predict=%+v", p)
	}
}

func TestActions_NilAnalyst(t *testing.T) {
	var a *Actions
	p := a.PredictOddsChanges(context.Background(), gateway.PredictOddsChangesInput{CurrentOdds: 2})
	if p.Error != ErrMsgPredictOddsChanges {
		t.Fatalf("predict=%+v", p)
	}
}

func TestSurfaces_OnlyNewestGenerationApplies(t *testing.T) {
	s := NewSurfaces()
	first := s.Begin("prediction:1")
	second := s.Begin("prediction:1")

	if s.Resolve(first, "old") {
		t.Fatalf("stale generation applied")
	}
	snap, ok := s.Snapshot("prediction:1")
	if !ok || !snap.Busy || snap.Result != nil {
		t.Fatalf("snapshot=%+v", snap)
	}
	if !s.Resolve(second, "new") {
		t.Fatalf("newest generation rejected")
	}
	snap, _ = s.Snapshot("prediction:1")
	if snap.Busy || snap.Result != "new" || snap.AppliedGeneration != 2 {
		t.Fatalf("snapshot=%+v", snap)
	}
	if s.Resolve(second, "again") {
		t.Fatalf("generation applied twice")
	}

	// Surfaces are independent.
	other := s.Begin("calculator")
	if other.Generation != 1 || !s.Resolve(other, 1) {
		t.Fatalf("other=%+v", other)
	}
}

func TestSurfaces_CapEvictsIdleFirst(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	s := NewSurfaces()
	s.MaxKeys = 2
	s.now = func() time.Time { return now }

	busy := s.Begin("busy")
	now = now.Add(time.Minute)
	idle := s.Begin("idle")
	if !s.Resolve(idle, "done") {
		t.Fatalf("idle surface not applied")
	}
	now = now.Add(time.Minute)
	for i := 0; i < 50; i++ {
		s.Begin(fmt.Sprintf("client-%d", i))
	}
	if n := s.Len(); n != 2 {
		t.Fatalf("len=%d want=2", n)
	}
	if _, ok := s.Snapshot("idle"); ok {
		t.Fatalf("idle surface kept")
	}
	if s.Resolve(idle, "late") {
		t.Fatalf("evicted surface took a result")
	}
	if s.Resolve(busy, "late") {
		t.Fatalf("evicted busy surface took a result")
	}
}

func TestSurfaces_SweepDropsIdle(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	s := NewSurfaces()
	s.IdleTime = 10 * time.Minute
	s.now = func() time.Time { return now }

	done := s.Begin("done")
	s.Resolve(done, 1)
	pending := s.Begin("pending")
	now = now.Add(5 * time.Minute)
	s.Begin("fresh")

	now = now.Add(6 * time.Minute)
	if n := s.Sweep(); n != 1 {
		t.Fatalf("swept=%d want=1", n)
	}
	if _, ok := s.Snapshot("done"); ok {
		t.Fatalf("idle surface survived the sweep")
	}
	if _, ok := s.Snapshot("fresh"); !ok {
		t.Fatalf("recent surface swept")
	}
	if !s.Resolve(pending, 2) {
		t.Fatalf("busy surface swept")
	}
}

func TestAdvisor_SupersededPrediction(t *testing.T) {
	stub := &stubAnalyst{}
	adv, ledger, rec := newAdvisor(t, stub)
	ctx := context.Background()
	odd := &models.Odd{Event: "Final", Sport: models.SportSoccer, TeamA: "A", TeamAOdds: 2, TeamB: "B", TeamBOdds: 3}
	if err := ledger.AddOdd(ctx, odd); err != nil {
		t.Fatalf("add odd: %v", err)
	}

	var inner Outcome[gateway.PredictOddsChangesOutput]
	stub.onPredict = func() {
		inner, _ = adv.PredictForOdd(ctx, odd.ID, "")
	}
	outer, err := adv.PredictForOdd(ctx, odd.ID, "")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !outer.Superseded || outer.Generation != 1 {
		t.Fatalf("outer=%+v", outer)
	}
	if inner.Superseded || inner.Generation != 2 || !inner.OK() {
		t.Fatalf("inner=%+v", inner)
	}
	snap, _ := adv.Surfaces.Snapshot(SurfacePrediction(odd.ID))
	if snap.Busy || snap.AppliedGeneration != 2 {
		t.Fatalf("snapshot=%+v", snap)
	}
	if n := rec.count(EventSurfaceApplied); n != 1 {
		t.Fatalf("applied events=%d want=1", n)
	}
}

func TestAdvisor_PredictNotifies(t *testing.T) {
	adv, ledger, _ := newAdvisor(t, gateway.Heuristic{})
	n := &notifyRecorder{}
	adv.Notifier = n
	ctx := context.Background()
	odd := &models.Odd{Event: "Final", Sport: models.SportTennis, TeamA: "A", TeamAOdds: 1.5, TeamB: "B", TeamBOdds: 2.5}
	if err := ledger.AddOdd(ctx, odd); err != nil {
		t.Fatalf("add odd: %v", err)
	}
	out, err := adv.PredictForOdd(ctx, odd.ID, "")
	if err != nil || !out.OK() {
		t.Fatalf("out=%+v err=%v", out, err)
	}
	if n.calls != 1 {
		t.Fatalf("notify calls=%d want=1", n.calls)
	}
	if _, err := adv.PredictForOdd(ctx, "missing", ""); err == nil {
		t.Fatalf("want not found")
	}
}

func TestAdvisor_CalculateValueUsesStoredHistory(t *testing.T) {
	adv, ledger, _ := newAdvisor(t, gateway.Heuristic{})
	ctx := context.Background()
	for _, stake := range []float64{20, 10, 15} {
		b := &models.Bet{Sport: models.SportSoccer, Event: "A vs B", BetType: models.BetTypeMoneyline, BetOn: "A", Stake: stake, Odds: 2, Outcome: models.OutcomeWin, Date: "2024-07-01"}
		if err := ledger.AddBet(ctx, b); err != nil {
			t.Fatalf("add bet: %v", err)
		}
	}
	out, err := adv.CalculateValue(ctx, "", ValueRequest{Sport: "Soccer", BetType: "Moneyline", Odds: 2.5, Stake: 50, TeamA: "A", TeamB: "C"})
	if err != nil || !out.OK() {
		t.Fatalf("out=%+v err=%v", out, err)
	}
	if out.Key != SurfaceCalculator {
		t.Fatalf("surface=%q", out.Key)
	}
	if got := out.Output.StakeAnalysis; len(got) < 8 || got[:8] != "Warning:" {
		t.Fatalf("stakeAnalysis=%q want warning", got)
	}
}

func TestLedger_Defaults(t *testing.T) {
	_, ledger, rec := newAdvisor(t, gateway.Heuristic{})
	ctx := context.Background()
	odd := &models.Odd{Event: "Final", Sport: models.SportSoccer, TeamA: "A", TeamAOdds: 2, TeamB: "B", TeamBOdds: 3}
	if err := ledger.AddOdd(ctx, odd); err != nil {
		t.Fatalf("add odd: %v", err)
	}
	if odd.ID == "" || odd.HistoricalOdds != DefaultHistoricalOdds || odd.MarketInfluences == nil {
		t.Fatalf("odd=%+v", odd)
	}
	dup := *odd
	if err := ledger.AddOdd(ctx, &dup); err == nil {
		t.Fatalf("want duplicate error")
	}
	if n := rec.count(EventOddCreated); n != 1 {
		t.Fatalf("created events=%d want=1", n)
	}
}

func TestLedger_RejectsNonFiniteNumbers(t *testing.T) {
	_, ledger, rec := newAdvisor(t, gateway.Heuristic{})
	ctx := context.Background()
	bets := []*models.Bet{
		{Sport: models.SportSoccer, Event: "A vs B", BetType: models.BetTypeMoneyline, BetOn: "A", Stake: math.Inf(1), Odds: 2, Outcome: models.OutcomeWin, Date: "2024-07-01"},
		{Sport: models.SportSoccer, Event: "A vs B", BetType: models.BetTypeMoneyline, BetOn: "A", Stake: 10, Odds: math.NaN(), Outcome: models.OutcomeWin, Date: "2024-07-01"},
	}
	for _, b := range bets {
		if err := ledger.AddBet(ctx, b); !errors.Is(err, models.ErrInvalidNumber) {
			t.Fatalf("bet=%+v err=%v want ErrInvalidNumber", b, err)
		}
	}
	odd := &models.Odd{Event: "Final", Sport: models.SportSoccer, TeamA: "A", TeamAOdds: math.Inf(1), TeamB: "B", TeamBOdds: 3}
	if err := ledger.AddOdd(ctx, odd); !errors.Is(err, models.ErrInvalidNumber) {
		t.Fatalf("odd err=%v want ErrInvalidNumber", err)
	}
	if n := rec.count(EventBetCreated) + rec.count(EventOddCreated); n != 0 {
		t.Fatalf("created events=%d want=0", n)
	}
}

func analysisContext(sport string) analysis.BetContext {
	return analysis.BetContext{Sport: sport}
}
