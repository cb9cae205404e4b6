package models

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidNumber marks a stake or price that is out of range or not finite.
var ErrInvalidNumber = errors.New("invalid number")

func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidStake is a finite stake above zero.
func ValidStake(v float64) bool {
	return Finite(v) && v > 0
}

// ValidOdds is a finite decimal price of at least 1.
func ValidOdds(v float64) bool {
	return Finite(v) && v >= 1
}

func (b Bet) CheckNumbers() error {
	if !ValidStake(b.Stake) {
		return fmt.Errorf("%w: stake %v", ErrInvalidNumber, b.Stake)
	}
	if !ValidOdds(b.Odds) {
		return fmt.Errorf("%w: odds %v", ErrInvalidNumber, b.Odds)
	}
	return nil
}

func (o Odd) CheckNumbers() error {
	if !ValidOdds(o.TeamAOdds) {
		return fmt.Errorf("%w: teamAOdds %v", ErrInvalidNumber, o.TeamAOdds)
	}
	if !ValidOdds(o.TeamBOdds) {
		return fmt.Errorf("%w: teamBOdds %v", ErrInvalidNumber, o.TeamBOdds)
	}
	if o.DrawOdds != nil && !ValidOdds(*o.DrawOdds) {
		return fmt.Errorf("%w: drawOdds %v", ErrInvalidNumber, *o.DrawOdds)
	}
	for _, p := range o.HistoricalComparisonChartData {
		if !Finite(p.TeamA) || !Finite(p.TeamB) {
			return fmt.Errorf("%w: chart point %s", ErrInvalidNumber, p.MatchDate)
		}
	}
	return nil
}
