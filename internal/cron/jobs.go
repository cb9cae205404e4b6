package cronrunner

import (
	"context"

	"go.uber.org/zap"

	"betsense/internal/logger"
	"betsense/internal/repository"
)

// Sweeper drops expired entries and returns how many it removed. The result
// cache and the surface registry both implement it.
type Sweeper interface {
	Sweep() int
}

// SweepJob runs s.Sweep and logs what kind of entries it removed.
func SweepJob(kind string, s Sweeper, log *zap.Logger) func(context.Context) {
	log = logger.OrNop(log)
	return func(ctx context.Context) {
		if ctx.Err() != nil {
			return
		}
		if n := s.Sweep(); n > 0 {
			log.Info("swept", zap.String("kind", kind), zap.Int("removed", n))
		}
	}
}

type StatsSource struct {
	Repo     repository.Repository
	Surfaces interface{ Len() int }
	Stream   interface {
		Clients() int
		Dropped() uint64
	}
}

// Stats is one store stats sample.
type Stats struct {
	Odds          int64
	Bets          int64
	Surfaces      int
	StreamClients int
	StreamDropped uint64
}

func (s StatsSource) Collect(ctx context.Context) (Stats, error) {
	var out Stats
	var err error
	if out.Odds, err = s.Repo.CountOdds(ctx, repository.ListOddsParams{}); err != nil {
		return Stats{}, err
	}
	if out.Bets, err = s.Repo.CountBets(ctx, repository.ListBetsParams{}); err != nil {
		return Stats{}, err
	}
	if s.Surfaces != nil {
		out.Surfaces = s.Surfaces.Len()
	}
	if s.Stream != nil {
		out.StreamClients = s.Stream.Clients()
		out.StreamDropped = s.Stream.Dropped()
	}
	return out, nil
}

func StoreStats(src StatsSource, log *zap.Logger) func(context.Context) {
	log = logger.OrNop(log)
	return func(ctx context.Context) {
		st, err := src.Collect(ctx)
		if err != nil {
			log.Warn("store stats failed", zap.Error(err))
			return
		}
		log.Info("store stats",
			zap.Int64("odds", st.Odds),
			zap.Int64("bets", st.Bets),
			zap.Int("surfaces", st.Surfaces),
			zap.Int("stream_clients", st.StreamClients),
			zap.Uint64("stream_dropped", st.StreamDropped),
		)
	}
}
