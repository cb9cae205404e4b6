package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"betsense/internal/logger"
	"betsense/internal/models"
	"betsense/internal/repository"
)

const (
	EventOddCreated     = "odd.created"
	EventBetCreated     = "bet.created"
	EventSurfaceApplied = "surface.applied"
)

// DefaultHistoricalOdds is stored on created odds that carry no history text.
const DefaultHistoricalOdds = "No historical data available for mock events."

// Publisher fans events out to connected clients.
type Publisher interface {
	Publish(eventType string, payload any)
}

// Ledger is the only mutation entry point for odds and bets.
type Ledger struct {
	Repo   repository.Repository
	Stream Publisher
	Logger *zap.Logger
}

func (l *Ledger) AddOdd(ctx context.Context, odd *models.Odd) error {
	if l == nil || l.Repo == nil || odd == nil {
		return fmt.Errorf("ledger not configured")
	}
	if err := odd.CheckNumbers(); err != nil {
		return err
	}
	if odd.ID == "" {
		id, err := newID()
		if err != nil {
			return err
		}
		odd.ID = id
	}
	if odd.HistoricalOdds == "" {
		odd.HistoricalOdds = DefaultHistoricalOdds
	}
	if odd.MarketInfluences == nil {
		odd.MarketInfluences = datatypes.JSONSlice[models.MarketInfluence]{}
	}
	if err := l.Repo.InsertOdd(ctx, odd); err != nil {
		return fmt.Errorf("insert odd: %w", err)
	}
	logger.OrNop(l.Logger).Info("odd added",
		zap.String("id", odd.ID),
		zap.String("sport", string(odd.Sport)),
		zap.String("event", odd.Event),
	)
	l.publish(EventOddCreated, odd)
	return nil
}

func (l *Ledger) AddBet(ctx context.Context, bet *models.Bet) error {
	if l == nil || l.Repo == nil || bet == nil {
		return fmt.Errorf("ledger not configured")
	}
	if err := bet.CheckNumbers(); err != nil {
		return err
	}
	if bet.ID == "" {
		id, err := newID()
		if err != nil {
			return err
		}
		bet.ID = id
	}
	if err := l.Repo.InsertBet(ctx, bet); err != nil {
		return fmt.Errorf("insert bet: %w", err)
	}
	logger.OrNop(l.Logger).Info("bet added",
		zap.String("id", bet.ID),
		zap.String("sport", string(bet.Sport)),
		zap.String("outcome", string(bet.Outcome)),
	)
	l.publish(EventBetCreated, bet)
	return nil
}

func (l *Ledger) publish(eventType string, payload any) {
	if l.Stream != nil {
		l.Stream.Publish(eventType, payload)
	}
}

// newID returns a time-ordered UUIDv7.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}
