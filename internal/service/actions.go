package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"betsense/internal/gateway"
	"betsense/internal/logger"
)

const (
	ErrMsgPredictOddsChanges = "Failed to predict odds changes. Please try again."
	ErrMsgCalculateBetValue  = "Failed to calculate bet value. Please try again."
	ErrMsgAnalyzeBetHistory  = "Failed to analyze bet history. Please try again."
)

// Result is either an output or an error message, never both. Callers check
// Error before using Output.
type Result[T any] struct {
	Output *T     `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (r Result[T]) OK() bool {
	return r.Error == "" && r.Output != nil
}

// Actions is the error boundary around the analyst contracts. No error or
// panic crosses it; failures become a Result with a fixed message.
type Actions struct {
	Analyst gateway.Analyst
	Logger  *zap.Logger
}

func (a *Actions) PredictOddsChanges(ctx context.Context, in gateway.PredictOddsChangesInput) Result[gateway.PredictOddsChangesOutput] {
	return run(ctx, a, "predict_odds_changes", ErrMsgPredictOddsChanges, func(ctx context.Context, an gateway.Analyst) (gateway.PredictOddsChangesOutput, error) {
		return gateway.PredictOddsChanges(ctx, an, in)
	})
}

func (a *Actions) CalculateBetValue(ctx context.Context, in gateway.CalculateBetValueInput) Result[gateway.CalculateBetValueOutput] {
	return run(ctx, a, "calculate_bet_value", ErrMsgCalculateBetValue, func(ctx context.Context, an gateway.Analyst) (gateway.CalculateBetValueOutput, error) {
		return gateway.CalculateBetValue(ctx, an, in)
	})
}

func (a *Actions) AnalyzeBetHistory(ctx context.Context, in gateway.AnalyzeBetHistoryInput) Result[gateway.AnalyzeBetHistoryOutput] {
	return run(ctx, a, "analyze_bet_history", ErrMsgAnalyzeBetHistory, func(ctx context.Context, an gateway.Analyst) (gateway.AnalyzeBetHistoryOutput, error) {
		return gateway.AnalyzeBetHistory(ctx, an, in)
	})
}

var errNoAnalyst = errors.New("analyst not configured")

func run[T any](ctx context.Context, a *Actions, action, failMsg string, fn func(context.Context, gateway.Analyst) (T, error)) (res Result[T]) {
	var log *zap.Logger
	var analyst gateway.Analyst
	if a != nil {
		log = a.Logger
		analyst = a.Analyst
	}
	log = logger.OrNop(log)

	defer func() {
		if p := recover(); p != nil {
			log.Error("action panicked", zap.String("action", action), zap.Any("panic", p))
			res = Result[T]{Error: failMsg}
		}
	}()

	if analyst == nil {
		log.Error("action failed", zap.String("action", action), zap.Error(errNoAnalyst))
		return Result[T]{Error: failMsg}
	}
	out, err := fn(ctx, analyst)
	if err != nil {
		log.Warn("action failed",
			zap.String("action", action),
			zap.String("analyst", analyst.Name()),
			zap.String("kind", errorKind(err)),
			zap.Error(err),
		)
		return Result[T]{Error: failMsg}
	}
	return Result[T]{Output: &out}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, gateway.ErrInvalidInput):
		return "validation"
	case errors.Is(err, gateway.ErrMalformedOutput):
		return "contract"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "transport"
	}
}
