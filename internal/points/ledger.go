package points

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EarnPoints credits the relevant balance with the task's value for the
// acting user and records a task-completion entry at the head of the
// history. A resolved value of zero is legal and still recorded.
func (s *Service) EarnPoints(userID, taskID uuid.UUID) (*HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUser(userID)
	if u == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	c, i := s.findTask(taskID)
	if c == nil {
		return nil, fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}

	t := &c.Tasks[i]
	amount := t.Points.Resolve(userID)

	if s.mode == ModePooled {
		s.pool += amount
	} else {
		u.Balance += amount
	}

	entry := HistoryEntry{
		ID:           uuid.New(),
		Kind:         KindTaskCompletion,
		UserID:       u.ID,
		UserName:     u.Name,
		UserColor:    u.Color,
		Points:       amount,
		TaskName:     t.Name,
		CategoryName: c.Name,
		CreatedAt:    time.Now().UTC(),
	}
	s.prepend(entry)

	return &entry, nil
}

// RedeemReward checks affordability and debits the relevant balance in one
// atomic step. An unaffordable redemption returns false with no state
// change. Unknown ids are errors; insufficient balance is not.
func (s *Service) RedeemReward(userID, rewardID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUser(userID)
	if u == nil {
		return false, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	r := s.findReward(rewardID)
	if r == nil {
		return false, fmt.Errorf("reward %s: %w", rewardID, ErrNotFound)
	}

	bal := &u.Balance
	if s.mode == ModePooled {
		bal = &s.pool
	}

	if *bal < r.PointsRequired {
		return false, nil
	}

	*bal -= r.PointsRequired

	s.prepend(HistoryEntry{
		ID:         uuid.New(),
		Kind:       KindRewardRedemption,
		UserID:     u.ID,
		UserName:   u.Name,
		UserColor:  u.Color,
		Points:     -r.PointsRequired,
		RewardName: r.Name,
		CreatedAt:  time.Now().UTC(),
	})

	return true, nil
}

// ResetPoints zeroes every balance and clears the history log in a single
// atomic step. The catalog is untouched.
func (s *Service) ResetPoints() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		u.Balance = 0
	}

	s.pool = 0
	s.history = nil
}

// prepend keeps the log newest-first. Callers must hold the write lock.
func (s *Service) prepend(entry HistoryEntry) {
	s.history = append([]HistoryEntry{entry}, s.history...)
}
