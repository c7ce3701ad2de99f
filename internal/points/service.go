package points

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=points
type Repository interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}

// Service owns the catalog, the balances and the history log for one
// session. All state lives behind a single mutex: the history log is shared
// between users even in per-user mode, so every earn/redeem/reset must be
// atomic against the balance-and-log pair as a whole.
//
// Core operations do no I/O. Persistence is a collaborator: Checkpoint
// writes the current snapshot through the Repository, and callers decide
// when to invoke it.
type Service struct {
	mu   sync.RWMutex
	mode Mode
	repo Repository

	users      []*User
	categories []*Category
	rewards    []*Reward
	pool       int
	history    []HistoryEntry
}

// NewService returns an empty service in the given mode. repo may be nil
// for a purely in-memory session.
func NewService(mode Mode, repo Repository) *Service {
	return &Service{mode: mode, repo: repo}
}

func (s *Service) Mode() Mode {
	return s.mode
}

// Restore replaces all state with the snapshot's contents. The snapshot
// must have been taken under the same accounting mode; a snapshot with an
// empty mode (pre-mode data) is accepted as-is.
func (s *Service) Restore(snap *Snapshot) error {
	if snap.Mode != "" && snap.Mode != s.mode {
		return fmt.Errorf("restoring snapshot: %w: have %q, want %q", ErrModeMismatch, snap.Mode, s.mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make([]*User, len(snap.Users))
	for i, u := range snap.Users {
		u := u
		s.users[i] = &u
	}

	s.categories = make([]*Category, len(snap.Categories))
	for i, c := range snap.Categories {
		cc := cloneCategory(c)
		s.categories[i] = &cc
	}

	s.rewards = make([]*Reward, len(snap.Rewards))
	for i, r := range snap.Rewards {
		r := r
		s.rewards[i] = &r
	}

	s.pool = snap.Pool
	s.history = append([]HistoryEntry(nil), snap.History...)

	return nil
}

// Snapshot returns a deep copy of the full current state.
func (s *Service) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

func (s *Service) snapshotLocked() *Snapshot {
	snap := &Snapshot{
		Mode:       s.mode,
		Users:      make([]User, len(s.users)),
		Categories: make([]Category, len(s.categories)),
		Rewards:    make([]Reward, len(s.rewards)),
		Pool:       s.pool,
		History:    append([]HistoryEntry(nil), s.history...),
	}

	for i, u := range s.users {
		snap.Users[i] = *u
	}

	for i, c := range s.categories {
		snap.Categories[i] = cloneCategory(*c)
	}

	for i, r := range s.rewards {
		snap.Rewards[i] = *r
	}

	return snap
}

// Checkpoint persists the current snapshot through the repository. It is a
// no-op without one.
func (s *Service) Checkpoint(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	if err := s.repo.Save(ctx, s.Snapshot()); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	return nil
}

// Lookup helpers. Callers must hold the lock. The catalog is household
// scale, so linear scans beat index bookkeeping.

func (s *Service) findUser(id uuid.UUID) *User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}

	return nil
}

func (s *Service) findCategory(id uuid.UUID) *Category {
	for _, c := range s.categories {
		if c.ID == id {
			return c
		}
	}

	return nil
}

// findTask returns the owning category and the task's index within it.
func (s *Service) findTask(id uuid.UUID) (*Category, int) {
	for _, c := range s.categories {
		for i := range c.Tasks {
			if c.Tasks[i].ID == id {
				return c, i
			}
		}
	}

	return nil, 0
}

func (s *Service) findReward(id uuid.UUID) *Reward {
	for _, r := range s.rewards {
		if r.ID == id {
			return r
		}
	}

	return nil
}

func cloneCategory(c Category) Category {
	c.Tasks = append([]Task(nil), c.Tasks...)
	for i := range c.Tasks {
		c.Tasks[i].Points = clonePointSpec(c.Tasks[i].Points)
	}

	return c
}

func clonePointSpec(ps PointSpec) PointSpec {
	if ps.PerUser == nil {
		return ps
	}

	m := make(map[uuid.UUID]int, len(ps.PerUser))
	for id, v := range ps.PerUser {
		m[id] = v
	}

	ps.PerUser = m

	return ps
}
