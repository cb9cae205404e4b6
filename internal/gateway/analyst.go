package gateway

import "context"

// Analyst implements the three AI contracts. Inputs are validated by the
// caller-facing functions in this package before an Analyst sees them.
type Analyst interface {
	Name() string
	PredictOddsChanges(ctx context.Context, in PredictOddsChangesInput) (PredictOddsChangesOutput, error)
	CalculateBetValue(ctx context.Context, in CalculateBetValueInput) (CalculateBetValueOutput, error)
	AnalyzeBetHistory(ctx context.Context, in AnalyzeBetHistoryInput) (AnalyzeBetHistoryOutput, error)
}

// PredictOddsChanges validates the input, runs the analyst and checks the
// output contract.
func PredictOddsChanges(ctx context.Context, a Analyst, in PredictOddsChangesInput) (PredictOddsChangesOutput, error) {
	if err := validateInput(ContractPredictOddsChanges, in); err != nil {
		return PredictOddsChangesOutput{}, err
	}
	out, err := a.PredictOddsChanges(ctx, in)
	if err != nil {
		return PredictOddsChangesOutput{}, err
	}
	level, err := NormalizeConfidence(out.ConfidenceLevel)
	if err != nil {
		return PredictOddsChangesOutput{}, err
	}
	out.ConfidenceLevel = level
	if err := validateOutput(ContractPredictOddsChanges, out); err != nil {
		return PredictOddsChangesOutput{}, err
	}
	return out, nil
}

func CalculateBetValue(ctx context.Context, a Analyst, in CalculateBetValueInput) (CalculateBetValueOutput, error) {
	if err := validateInput(ContractCalculateBetValue, in); err != nil {
		return CalculateBetValueOutput{}, err
	}
	out, err := a.CalculateBetValue(ctx, in)
	if err != nil {
		return CalculateBetValueOutput{}, err
	}
	out = enforceValueInvariants(in, out)
	if err := validateOutput(ContractCalculateBetValue, out); err != nil {
		return CalculateBetValueOutput{}, err
	}
	return out, nil
}

func AnalyzeBetHistory(ctx context.Context, a Analyst, in AnalyzeBetHistoryInput) (AnalyzeBetHistoryOutput, error) {
	if err := validateInput(ContractAnalyzeBetHistory, in); err != nil {
		return AnalyzeBetHistoryOutput{}, err
	}
	out, err := a.AnalyzeBetHistory(ctx, in)
	if err != nil {
		return AnalyzeBetHistoryOutput{}, err
	}
	out = enforceHistoryInvariants(in, out)
	if err := validateOutput(ContractAnalyzeBetHistory, out); err != nil {
		return AnalyzeBetHistoryOutput{}, err
	}
	return out, nil
}
