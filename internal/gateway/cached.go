package gateway

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"betsense/internal/cache"
	"betsense/internal/logger"
)

// Cached memoizes successful analyst results by contract and input digest.
// Cache failures are logged and never fail the call.
type Cached struct {
	Next   Analyst
	Store  cache.Store
	TTL    time.Duration
	Logger *zap.Logger
}

func (c *Cached) Name() string {
	return c.Next.Name()
}

func (c *Cached) PredictOddsChanges(ctx context.Context, in PredictOddsChangesInput) (PredictOddsChangesOutput, error) {
	return cachedCall(ctx, c, ContractPredictOddsChanges, in, c.Next.PredictOddsChanges)
}

func (c *Cached) CalculateBetValue(ctx context.Context, in CalculateBetValueInput) (CalculateBetValueOutput, error) {
	return cachedCall(ctx, c, ContractCalculateBetValue, in, c.Next.CalculateBetValue)
}

func (c *Cached) AnalyzeBetHistory(ctx context.Context, in AnalyzeBetHistoryInput) (AnalyzeBetHistoryOutput, error) {
	return cachedCall(ctx, c, ContractAnalyzeBetHistory, in, c.Next.AnalyzeBetHistory)
}

func cachedCall[I, O any](ctx context.Context, c *Cached, contract string, in I, call func(context.Context, I) (O, error)) (O, error) {
	if c.Store == nil {
		return call(ctx, in)
	}
	log := logger.OrNop(c.Logger)
	key, err := cacheKey(c.Next.Name(), contract, in)
	if err != nil {
		return call(ctx, in)
	}
	var out O
	found, err := cache.GetJSON(ctx, c.Store, key, &out)
	if err != nil {
		log.Warn("analyst cache get failed", zap.String("contract", contract), zap.Error(err))
	}
	if found {
		return out, nil
	}
	out, err = call(ctx, in)
	if err != nil {
		return out, err
	}
	if err := cache.SetJSON(ctx, c.Store, key, out, c.TTL); err != nil {
		log.Warn("analyst cache set failed", zap.String("contract", contract), zap.Error(err))
	}
	return out, nil
}

func cacheKey(analyst, contract string, in any) (string, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return "analyst:" + analyst + ":" + contract + ":" + hex.EncodeToString(sum[:]), nil
}
