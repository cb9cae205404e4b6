package analysis

import (
	"fmt"

	"github.com/shopspring/decimal"

	"betsense/internal/models"
)

// StakeWarningPrefix starts the stake narrative exactly when the stake is
// above the largest stake in history.
const StakeWarningPrefix = "Warning:"

// StakeProfile is the global stake profile over a bet history. It is not
// filtered by sport or outcome.
type StakeProfile struct {
	Count    int             `json:"count"`
	MinStake decimal.Decimal `json:"minStake"`
	MaxStake decimal.Decimal `json:"maxStake"`
	AvgStake decimal.Decimal `json:"avgStake"`
}

// ComputeStakeProfile skips stakes that are not finite.
func ComputeStakeProfile(history []models.Bet) StakeProfile {
	var (
		n                  int
		sum                = decimal.Zero
		minStake, maxStake decimal.Decimal
	)
	for _, b := range history {
		if !models.Finite(b.Stake) {
			continue
		}
		s := decimal.NewFromFloat(b.Stake)
		if n == 0 || s.LessThan(minStake) {
			minStake = s
		}
		if n == 0 || s.GreaterThan(maxStake) {
			maxStake = s
		}
		sum = sum.Add(s)
		n++
	}
	if n == 0 {
		return StakeProfile{}
	}
	avg := sum.Div(decimal.NewFromInt(int64(n)))
	// Division rounds at DivisionPrecision; keep the mean inside the range.
	if avg.GreaterThan(maxStake) {
		avg = maxStake
	}
	if avg.LessThan(minStake) {
		avg = minStake
	}
	return StakeProfile{
		Count:    n,
		MinStake: minStake,
		MaxStake: maxStake,
		AvgStake: avg,
	}
}

func (p StakeProfile) Empty() bool {
	return p.Count == 0
}

// Exceeds reports stake > maxStake. An empty profile has no maximum.
func (p StakeProfile) Exceeds(stake float64) bool {
	if p.Empty() {
		return false
	}
	return decimal.NewFromFloat(stake).GreaterThan(p.MaxStake)
}

// StakeNarrative compares a prospective stake to the profile.
func StakeNarrative(stake float64, p StakeProfile) string {
	s := decimal.NewFromFloat(stake)
	if p.Empty() {
		return fmt.Sprintf("This stake of $%s cannot be compared yet: there are no previous stakes in your history.", s.StringFixed(2))
	}
	if p.Exceeds(stake) {
		return fmt.Sprintf("%s this stake of $%s is higher than your largest previous stake of $%s (average $%s). Consider reducing it to stay within your usual range.",
			StakeWarningPrefix, s.StringFixed(2), p.MaxStake.StringFixed(2), p.AvgStake.StringFixed(2))
	}
	switch {
	case s.GreaterThan(p.AvgStake):
		return fmt.Sprintf("This stake of $%s is above your average stake of $%s but within your previous range.", s.StringFixed(2), p.AvgStake.StringFixed(2))
	case s.LessThan(p.AvgStake):
		return fmt.Sprintf("This stake of $%s is below your average stake of $%s.", s.StringFixed(2), p.AvgStake.StringFixed(2))
	default:
		return fmt.Sprintf("This stake of $%s matches your average stake of $%s.", s.StringFixed(2), p.AvgStake.StringFixed(2))
	}
}
