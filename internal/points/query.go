package points

import (
	"fmt"

	"github.com/google/uuid"
)

// Read-only projections. Everything returned is a defensive copy.

func (s *Service) ListUsers() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, len(s.users))
	for i, u := range s.users {
		out[i] = *u
	}

	return out
}

func (s *Service) ListCategories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Category, len(s.categories))
	for i, c := range s.categories {
		out[i] = cloneCategory(*c)
	}

	return out
}

func (s *Service) ListRewards() []Reward {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Reward, len(s.rewards))
	for i, r := range s.rewards {
		out[i] = *r
	}

	return out
}

// History returns the full log, newest first.
func (s *Service) History() []HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]HistoryEntry(nil), s.history...)
}

// TotalPoints is the sum of all user balances in per-user mode, or the pool
// directly in pooled mode.
func (s *Service) TotalPoints() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.mode == ModePooled {
		return s.pool
	}

	total := 0
	for _, u := range s.users {
		total += u.Balance
	}

	return total
}

// Balance returns the balance a redemption by the given user would be
// checked against: their own in per-user mode, the pool in pooled mode.
func (s *Service) Balance(userID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.findUser(userID)
	if u == nil {
		return 0, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	if s.mode == ModePooled {
		return s.pool, nil
	}

	return u.Balance, nil
}

// CanAfford reports whether redeeming the reward would succeed right now.
// No state is mutated.
func (s *Service) CanAfford(userID, rewardID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.findUser(userID)
	if u == nil {
		return false, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	r := s.findReward(rewardID)
	if r == nil {
		return false, fmt.Errorf("reward %s: %w", rewardID, ErrNotFound)
	}

	bal := u.Balance
	if s.mode == ModePooled {
		bal = s.pool
	}

	return bal >= r.PointsRequired, nil
}

// AffordabilityProgress maps a balance onto [0, 1] progress toward a
// reward, clamped at 1. A non-positive requirement counts as reached.
func AffordabilityProgress(balance, pointsRequired int) float64 {
	if pointsRequired <= 0 {
		return 1
	}

	p := float64(balance) / float64(pointsRequired)
	if p > 1 {
		return 1
	}

	if p < 0 {
		return 0
	}

	return p
}
