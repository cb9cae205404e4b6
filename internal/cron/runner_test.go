package cronrunner

import (
	"context"
	"testing"

	"betsense/internal/models"
	"betsense/internal/repository/memory"
)

func TestRunner_Add(t *testing.T) {
	r := New(nil, context.Background())
	if _, err := r.Add("sweep", "@every 5m", func(context.Context) {}); err != nil {
		t.Fatalf("descriptor: %v", err)
	}
	if _, err := r.Add("stats", "0 */15 * * * *", func(context.Context) {}); err != nil {
		t.Fatalf("seconds spec: %v", err)
	}
	if _, err := r.Add("bad", "every now and then", func(context.Context) {}); err == nil {
		t.Fatalf("want parse error")
	}
	if r.Len() != 2 {
		t.Fatalf("entries=%d want=2", r.Len())
	}
	r.Start()
	r.Stop()
}

type countingSweeper struct{ calls int }

func (c *countingSweeper) Sweep() int {
	c.calls++
	return 2
}

func TestSweepJob(t *testing.T) {
	s := &countingSweeper{}
	SweepJob("cache", s, nil)(context.Background())
	if s.calls != 1 {
		t.Fatalf("calls=%d want=1", s.calls)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	SweepJob("cache", s, nil)(ctx)
	if s.calls != 1 {
		t.Fatalf("calls=%d after cancel, want=1", s.calls)
	}
}

type fixedLen int

func (f fixedLen) Len() int { return int(f) }

func TestStatsSource_Collect(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	if err := repo.InsertOdd(ctx, &models.Odd{ID: "1", Sport: models.SportSoccer}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.InsertBet(ctx, &models.Bet{ID: "b", Sport: models.SportSoccer, Stake: 1, Odds: 2, Outcome: models.OutcomeWin}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	st, err := StatsSource{Repo: repo, Surfaces: fixedLen(3)}.Collect(ctx)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if st.Odds != 1 || st.Bets != 1 || st.Surfaces != 3 {
		t.Fatalf("stats=%+v", st)
	}
	StoreStats(StatsSource{Repo: repo}, nil)(ctx)
}
