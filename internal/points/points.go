package points

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Mode selects how balances are accounted. It is fixed when the Service is
// constructed and cannot change for the lifetime of a session.
type Mode string

const (
	// ModePerUser keeps an independent balance per user. Earning credits
	// the acting user; redemption checks and debits only that user.
	ModePerUser Mode = "per_user"
	// ModePooled keeps a single shared balance. Any user's earnings and
	// redemptions act on the pool.
	ModePooled Mode = "pooled"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePerUser, ModePooled:
		return Mode(s), nil
	}

	return "", fmt.Errorf("unknown ledger mode %q", s)
}

// User is a household member. Balance is mutated exclusively by ledger
// operations; catalog updates may only touch Name and Color.
type User struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Color   string    `json:"color"`
	Balance int       `json:"balance"`
}

// PointSpec defines how many points completing a task is worth.
// When PerUser is non-nil it takes precedence over Flat, and users absent
// from the map resolve to zero.
type PointSpec struct {
	Flat    int               `json:"flat,omitempty"`
	PerUser map[uuid.UUID]int `json:"per_user,omitempty"`
}

// Resolve returns the concrete point value for the given user.
func (ps PointSpec) Resolve(userID uuid.UUID) int {
	if ps.PerUser != nil {
		return ps.PerUser[userID]
	}

	return ps.Flat
}

// Task belongs to exactly one category at a time.
type Task struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	CategoryID uuid.UUID `json:"category_id"`
	Points     PointSpec `json:"points"`
}

// Category groups tasks. Tasks keeps insertion order.
type Category struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Tasks []Task    `json:"tasks"`
}

// Reward can be redeemed by any user with a sufficient balance.
type Reward struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	PointsRequired int       `json:"points_required"`
	Description    string    `json:"description,omitempty"`
}

// EntryKind tags a history entry as an earn or a redemption.
type EntryKind string

const (
	KindTaskCompletion   EntryKind = "task_completion"
	KindRewardRedemption EntryKind = "reward_redemption"
)

// HistoryEntry is an immutable record of a completed ledger transaction.
// User and catalog names (and the user color) are snapshots taken when the
// entry is created; later catalog edits or deletions never rewrite them.
type HistoryEntry struct {
	ID           uuid.UUID `json:"id"`
	Kind         EntryKind `json:"kind"`
	UserID       uuid.UUID `json:"user_id"`
	UserName     string    `json:"user_name"`
	UserColor    string    `json:"user_color"`
	Points       int       `json:"points"`
	TaskName     string    `json:"task_name,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
	RewardName   string    `json:"reward_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Snapshot is the full durable state of a session: the four entity
// collections, the pooled total, and the history log. It is what the
// snapshot Repository persists and restores.
type Snapshot struct {
	Mode       Mode           `json:"mode"`
	Users      []User         `json:"users"`
	Categories []Category     `json:"categories"`
	Rewards    []Reward       `json:"rewards"`
	Pool       int            `json:"pool"`
	History    []HistoryEntry `json:"history"`
}
