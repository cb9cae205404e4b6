package repository

import (
	"context"
	"errors"

	"betsense/internal/models"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrDuplicateID = errors.New("duplicate id")
)

// Repository is the application state store. Odds and bets are only ever
// added; nothing is updated or deleted.
type Repository interface {
	InsertOdd(ctx context.Context, item *models.Odd) error
	GetOdd(ctx context.Context, id string) (*models.Odd, error)
	ListOdds(ctx context.Context, params ListOddsParams) ([]models.Odd, error)
	CountOdds(ctx context.Context, params ListOddsParams) (int64, error)

	InsertBet(ctx context.Context, item *models.Bet) error
	ListBets(ctx context.Context, params ListBetsParams) ([]models.Bet, error)
	CountBets(ctx context.Context, params ListBetsParams) (int64, error)
	// BetHistory returns every bet in insertion order.
	BetHistory(ctx context.Context) ([]models.Bet, error)

	Ping(ctx context.Context) error
}

type ListOddsParams struct {
	Limit  int
	Offset int
	Sport  *string
}

type ListBetsParams struct {
	Limit   int
	Offset  int
	Sport   *string
	Outcome *string
	// Newest first unless Asc is set.
	Asc *bool
}

func NormalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func NormalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
