package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"betsense/internal/models"
	"betsense/internal/repository"
)

// Store keeps odds and bets in process memory. Contents are lost on restart.
type Store struct {
	mu      sync.RWMutex
	odds    []models.Odd
	oddByID map[string]int
	bets    []models.Bet
	betIDs  map[string]struct{}
}

func New() *Store {
	return &Store{
		oddByID: map[string]int{},
		betIDs:  map[string]struct{}{},
	}
}

func (s *Store) InsertOdd(_ context.Context, item *models.Odd) error {
	if item == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.oddByID[item.ID]; ok {
		return fmt.Errorf("odd %s: %w", item.ID, repository.ErrDuplicateID)
	}
	s.oddByID[item.ID] = len(s.odds)
	s.odds = append(s.odds, *item)
	return nil
}

func (s *Store) GetOdd(_ context.Context, id string) (*models.Odd, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.oddByID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := s.odds[idx]
	return &out, nil
}

func (s *Store) ListOdds(_ context.Context, params repository.ListOddsParams) ([]models.Odd, error) {
	s.mu.RLock()
	matched := make([]models.Odd, 0, len(s.odds))
	for _, o := range s.odds {
		if matchOdd(o, params) {
			matched = append(matched, o)
		}
	}
	s.mu.RUnlock()
	return page(matched, params.Limit, params.Offset), nil
}

func (s *Store) CountOdds(_ context.Context, params repository.ListOddsParams) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, o := range s.odds {
		if matchOdd(o, params) {
			n++
		}
	}
	return n, nil
}

func (s *Store) InsertBet(_ context.Context, item *models.Bet) error {
	if item == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.betIDs[item.ID]; ok {
		return fmt.Errorf("bet %s: %w", item.ID, repository.ErrDuplicateID)
	}
	s.betIDs[item.ID] = struct{}{}
	s.bets = append(s.bets, *item)
	return nil
}

func (s *Store) ListBets(_ context.Context, params repository.ListBetsParams) ([]models.Bet, error) {
	asc := params.Asc != nil && *params.Asc
	s.mu.RLock()
	matched := make([]models.Bet, 0, len(s.bets))
	for i := range s.bets {
		b := s.bets[i]
		if !asc {
			b = s.bets[len(s.bets)-1-i]
		}
		if matchBet(b, params) {
			matched = append(matched, b)
		}
	}
	s.mu.RUnlock()
	return page(matched, params.Limit, params.Offset), nil
}

func (s *Store) CountBets(_ context.Context, params repository.ListBetsParams) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, b := range s.bets {
		if matchBet(b, params) {
			n++
		}
	}
	return n, nil
}

func (s *Store) BetHistory(_ context.Context) ([]models.Bet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Bet, len(s.bets))
	copy(out, s.bets)
	return out, nil
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func matchOdd(o models.Odd, params repository.ListOddsParams) bool {
	if params.Sport != nil && *params.Sport != "" && !strings.EqualFold(string(o.Sport), *params.Sport) {
		return false
	}
	return true
}

func matchBet(b models.Bet, params repository.ListBetsParams) bool {
	if params.Sport != nil && *params.Sport != "" && !strings.EqualFold(string(b.Sport), *params.Sport) {
		return false
	}
	if params.Outcome != nil && *params.Outcome != "" && !strings.EqualFold(string(b.Outcome), *params.Outcome) {
		return false
	}
	return true
}

func page[T any](items []T, limit, offset int) []T {
	limit = repository.NormalizeLimit(limit, 100)
	offset = repository.NormalizeOffset(offset)
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
