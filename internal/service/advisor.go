package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"betsense/internal/analysis"
	"betsense/internal/gateway"
	"betsense/internal/logger"
	"betsense/internal/models"
	"betsense/internal/repository"
)

// PredictionNotifier is told about every successful odds prediction.
type PredictionNotifier interface {
	NotifyPrediction(ctx context.Context, odd models.Odd, out gateway.PredictOddsChangesOutput) error
}

// Outcome is an action result stamped with the surface generation it was
// issued under. Superseded results were not applied to the surface.
type Outcome[T any] struct {
	Result[T]
	Ticket
	Superseded bool `json:"superseded"`
}

type ValueRequest struct {
	Sport               string  `json:"sport"`
	BetType             string  `json:"betType"`
	Odds                float64 `json:"odds"`
	Stake               float64 `json:"stake"`
	MarketInfluences    string  `json:"marketInfluences"`
	UserHistoryAnalysis string  `json:"userHistoryAnalysis"`
	TeamA               string  `json:"teamA"`
	TeamB               string  `json:"teamB"`
}

// Advisor runs the actions against stored state and sequences the results
// per surface.
type Advisor struct {
	Repo     repository.Repository
	Actions  *Actions
	Surfaces *Surfaces
	Stream   Publisher
	Notifier PredictionNotifier
	Logger   *zap.Logger
}

func SurfacePrediction(oddID string) string { return "prediction:" + oddID }
func SurfaceInsights(oddID string) string {
	if oddID == "" {
		return "insights"
	}
	return "insights:" + oddID
}

const SurfaceCalculator = "calculator"

func (a *Advisor) Predict(ctx context.Context, surface string, in gateway.PredictOddsChangesInput) Outcome[gateway.PredictOddsChangesOutput] {
	t := a.Surfaces.Begin(surface)
	return finish(a, t, a.Actions.PredictOddsChanges(ctx, in))
}

func (a *Advisor) PredictForOdd(ctx context.Context, oddID, surface string) (Outcome[gateway.PredictOddsChangesOutput], error) {
	odd, err := a.Repo.GetOdd(ctx, oddID)
	if err != nil {
		return Outcome[gateway.PredictOddsChangesOutput]{}, err
	}
	if surface == "" {
		surface = SurfacePrediction(odd.ID)
	}
	out := a.Predict(ctx, surface, gateway.PredictionInputFromOdd(*odd))
	if out.OK() && a.Notifier != nil {
		if err := a.Notifier.NotifyPrediction(ctx, *odd, *out.Output); err != nil {
			logger.OrNop(a.Logger).Warn("prediction notify failed", zap.String("odd_id", odd.ID), zap.Error(err))
		}
	}
	return out, nil
}

func (a *Advisor) AnalyzeHistory(ctx context.Context, surface string, betCtx analysis.BetContext) (Outcome[gateway.AnalyzeBetHistoryOutput], error) {
	history, err := a.Repo.BetHistory(ctx)
	if err != nil {
		return Outcome[gateway.AnalyzeBetHistoryOutput]{}, err
	}
	if surface == "" {
		surface = SurfaceInsights("")
	}
	t := a.Surfaces.Begin(surface)
	res := a.Actions.AnalyzeBetHistory(ctx, gateway.AnalyzeBetHistoryInput{
		BetHistory:        history,
		CurrentBetContext: betCtx,
	})
	return finish(a, t, res), nil
}

func (a *Advisor) InsightsForOdd(ctx context.Context, oddID, surface string) (Outcome[gateway.AnalyzeBetHistoryOutput], error) {
	odd, err := a.Repo.GetOdd(ctx, oddID)
	if err != nil {
		return Outcome[gateway.AnalyzeBetHistoryOutput]{}, err
	}
	if surface == "" {
		surface = SurfaceInsights(odd.ID)
	}
	return a.AnalyzeHistory(ctx, surface, analysis.ContextFromOdd(*odd))
}

// CalculateValue feeds the stored history into the value contract. Without
// a supplied history analysis, the analysis contract runs first and its
// overall summary is passed along.
func (a *Advisor) CalculateValue(ctx context.Context, surface string, req ValueRequest) (Outcome[gateway.CalculateBetValueOutput], error) {
	history, err := a.Repo.BetHistory(ctx)
	if err != nil {
		return Outcome[gateway.CalculateBetValueOutput]{}, err
	}
	if surface == "" {
		surface = SurfaceCalculator
	}
	t := a.Surfaces.Begin(surface)

	summary := strings.TrimSpace(req.UserHistoryAnalysis)
	if summary == "" {
		hist := a.Actions.AnalyzeBetHistory(ctx, gateway.AnalyzeBetHistoryInput{
			BetHistory: history,
			CurrentBetContext: analysis.BetContext{
				Sport:            req.Sport,
				TeamA:            req.TeamA,
				TeamB:            req.TeamB,
				MarketInfluences: req.MarketInfluences,
			},
		})
		if hist.OK() {
			summary = hist.Output.OverallSummary
		}
	}

	res := a.Actions.CalculateBetValue(ctx, gateway.CalculateBetValueInput{
		Sport:               req.Sport,
		BetType:             req.BetType,
		Odds:                req.Odds,
		Stake:               req.Stake,
		MarketInfluences:    req.MarketInfluences,
		UserHistoryAnalysis: summary,
		BetHistory:          history,
	})
	return finish(a, t, res), nil
}

func finish[T any](a *Advisor, t Ticket, res Result[T]) Outcome[T] {
	applied := a.Surfaces.Resolve(t, res)
	if !applied {
		logger.OrNop(a.Logger).Debug("stale result discarded",
			zap.String("surface", t.Key),
			zap.Uint64("generation", t.Generation),
		)
	} else if a.Stream != nil {
		a.Stream.Publish(EventSurfaceApplied, Outcome[T]{Result: res, Ticket: t})
	}
	return Outcome[T]{Result: res, Ticket: t, Superseded: !applied}
}
