package gateway

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"betsense/internal/analysis"
	"betsense/internal/llm"
	"betsense/internal/logger"
	"betsense/internal/models"
)

// LLM answers the contracts with a hosted model. Replies that do not parse
// into the output contract fail the call; nothing is partially accepted.
type LLM struct {
	Model   llm.Model
	Timeout time.Duration
	Logger  *zap.Logger
}

func (a *LLM) Name() string {
	if a == nil || a.Model == nil {
		return "llm"
	}
	return a.Model.Name()
}

func (a *LLM) PredictOddsChanges(ctx context.Context, in PredictOddsChangesInput) (PredictOddsChangesOutput, error) {
	prompt, err := render(predictTmpl, in)
	if err != nil {
		return PredictOddsChangesOutput{}, err
	}
	text, err := a.complete(ctx, ContractPredictOddsChanges, prompt)
	if err != nil {
		return PredictOddsChangesOutput{}, err
	}
	var reply predictReply
	if err := decodeReply(ContractPredictOddsChanges, text, &reply); err != nil {
		return PredictOddsChangesOutput{}, err
	}
	return PredictOddsChangesOutput{
		PredictedChange: strings.TrimSpace(reply.PredictedChange),
		ConfidenceLevel: string(reply.ConfidenceLevel),
		Reasoning:       strings.TrimSpace(reply.Reasoning),
	}, nil
}

func (a *LLM) CalculateBetValue(ctx context.Context, in CalculateBetValueInput) (CalculateBetValueOutput, error) {
	prompt, err := render(valueTmpl, in)
	if err != nil {
		return CalculateBetValueOutput{}, err
	}
	text, err := a.complete(ctx, ContractCalculateBetValue, prompt)
	if err != nil {
		return CalculateBetValueOutput{}, err
	}
	var reply valueReply
	if err := decodeReply(ContractCalculateBetValue, text, &reply); err != nil {
		return CalculateBetValueOutput{}, err
	}
	if reply.BetValue == nil {
		return CalculateBetValueOutput{}, fmt.Errorf("%s: %w: betValue missing", ContractCalculateBetValue, ErrMalformedOutput)
	}
	return CalculateBetValueOutput{
		BetValue:        math.Round(float64(*reply.BetValue)*100) / 100,
		RiskAssessment:  strings.TrimSpace(reply.RiskAssessment),
		SuggestedAction: strings.TrimSpace(reply.SuggestedAction),
		StakeAnalysis:   analysis.StakeNarrative(in.Stake, analysis.ComputeStakeProfile(in.BetHistory)),
	}, nil
}

func (a *LLM) AnalyzeBetHistory(ctx context.Context, in AnalyzeBetHistoryInput) (AnalyzeBetHistoryOutput, error) {
	filtered := analysis.FilterBySport(in.BetHistory, in.CurrentBetContext.Sport)
	if len(analysis.SignificantGroups(filtered, in.CurrentBetContext)) == 0 {
		// No group can reach the floor, so there is nothing to ask the model.
		return AnalyzeBetHistoryOutput{
			OverallSummary: analysis.NoPatternSummary(in.CurrentBetContext),
			Insights:       []models.Insight{},
		}, nil
	}
	prompt, err := render(historyTmpl, map[string]any{
		"Sport":   in.CurrentBetContext.Sport,
		"Bets":    toPromptBets(filtered),
		"Context": in.CurrentBetContext,
		"MinBets": models.MinBetsPerInsight,
	})
	if err != nil {
		return AnalyzeBetHistoryOutput{}, err
	}
	text, err := a.complete(ctx, ContractAnalyzeBetHistory, prompt)
	if err != nil {
		return AnalyzeBetHistoryOutput{}, err
	}
	var reply historyReply
	if err := decodeReply(ContractAnalyzeBetHistory, text, &reply); err != nil {
		return AnalyzeBetHistoryOutput{}, err
	}
	out := AnalyzeBetHistoryOutput{
		OverallSummary: strings.TrimSpace(reply.OverallSummary),
		Insights:       make([]models.Insight, 0, len(reply.Insights)),
	}
	for _, r := range reply.Insights {
		out.Insights = append(out.Insights, models.Insight{
			Condition:    strings.TrimSpace(r.Condition),
			WinRate:      strings.TrimSpace(string(r.WinRate)),
			Summary:      strings.TrimSpace(r.Summary),
			BetsAnalyzed: int(r.BetsAnalyzed),
		})
	}
	return out, nil
}

func (a *LLM) complete(ctx context.Context, contract, prompt string) (string, error) {
	if a == nil || a.Model == nil {
		return "", fmt.Errorf("%s: model not configured", contract)
	}
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}
	log := logger.OrNop(a.Logger)
	started := time.Now()
	text, err := a.Model.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		log.Warn("model call failed",
			zap.String("contract", contract),
			zap.String("model", a.Model.Name()),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err),
		)
		return "", fmt.Errorf("%s: %w", contract, err)
	}
	log.Debug("model call ok",
		zap.String("contract", contract),
		zap.String("model", a.Model.Name()),
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("reply_bytes", len(text)),
	)
	return text, nil
}
