package gormrepository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"betsense/internal/models"
	"betsense/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InsertOdd(ctx context.Context, item *models.Odd) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return translate("odd", item.ID, err)
	}
	return nil
}

func (s *Store) GetOdd(ctx context.Context, id string) (*models.Odd, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	var item models.Odd
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListOdds(ctx context.Context, params repository.ListOddsParams) ([]models.Odd, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := oddsQuery(s.db.WithContext(ctx), params)
	limit := repository.NormalizeLimit(params.Limit, 100)
	offset := repository.NormalizeOffset(params.Offset)
	var items []models.Odd
	if err := query.Order("created_at asc").Order("id asc").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountOdds(ctx context.Context, params repository.ListOddsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var n int64
	if err := oddsQuery(s.db.WithContext(ctx), params).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) InsertBet(ctx context.Context, item *models.Bet) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return translate("bet", item.ID, err)
	}
	return nil
}

func (s *Store) ListBets(ctx context.Context, params repository.ListBetsParams) ([]models.Bet, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	direction := "desc"
	if params.Asc != nil && *params.Asc {
		direction = "asc"
	}
	query := betsQuery(s.db.WithContext(ctx), params)
	limit := repository.NormalizeLimit(params.Limit, 100)
	offset := repository.NormalizeOffset(params.Offset)
	var items []models.Bet
	if err := query.Order("created_at " + direction).Order("id " + direction).Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountBets(ctx context.Context, params repository.ListBetsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var n int64
	if err := betsQuery(s.db.WithContext(ctx), params).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) BetHistory(ctx context.Context) ([]models.Bet, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Bet
	if err := s.db.WithContext(ctx).Order("created_at asc").Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("db missing")
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func oddsQuery(db *gorm.DB, params repository.ListOddsParams) *gorm.DB {
	query := db.Model(&models.Odd{})
	if params.Sport != nil && *params.Sport != "" {
		query = query.Where("LOWER(sport) = LOWER(?)", *params.Sport)
	}
	return query
}

func betsQuery(db *gorm.DB, params repository.ListBetsParams) *gorm.DB {
	query := db.Model(&models.Bet{})
	if params.Sport != nil && *params.Sport != "" {
		query = query.Where("LOWER(sport) = LOWER(?)", *params.Sport)
	}
	if params.Outcome != nil && *params.Outcome != "" {
		query = query.Where("LOWER(outcome) = LOWER(?)", *params.Outcome)
	}
	return query
}

func translate(kind, id string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s %s: %w", kind, id, repository.ErrDuplicateID)
	}
	return err
}
