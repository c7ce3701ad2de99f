package points

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Patch types carry optional field updates; nil fields are left untouched.

type CategoryPatch struct {
	Name *string
}

type TaskPatch struct {
	Name   *string
	Points *PointSpec
}

type RewardPatch struct {
	Name           *string
	PointsRequired *int
	Description    *string
}

type UserPatch struct {
	Name  *string
	Color *string
}

func (s *Service) AddCategory(name string) (*Category, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := &Category{ID: uuid.New(), Name: name}
	s.categories = append(s.categories, c)

	out := cloneCategory(*c)

	return &out, nil
}

func (s *Service) UpdateCategory(id uuid.UUID, patch CategoryPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findCategory(id)
	if c == nil {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}

	if patch.Name != nil {
		name, err := validName(*patch.Name)
		if err != nil {
			return err
		}

		c.Name = name
	}

	return nil
}

// DeleteCategory removes the category and every task in it. Past history
// entries naming those tasks are untouched.
func (s *Service) DeleteCategory(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.categories {
		if c.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("category %s: %w", id, ErrNotFound)
}

func (s *Service) AddTask(categoryID uuid.UUID, name string, points PointSpec) (*Task, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}

	if err := validSpec(points); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findCategory(categoryID)
	if c == nil {
		return nil, fmt.Errorf("category %s: %w", categoryID, ErrNotFound)
	}

	t := Task{
		ID:         uuid.New(),
		Name:       name,
		CategoryID: c.ID,
		Points:     clonePointSpec(points),
	}
	c.Tasks = append(c.Tasks, t)

	t.Points = clonePointSpec(t.Points)

	return &t, nil
}

func (s *Service) UpdateTask(id uuid.UUID, patch TaskPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, i := s.findTask(id)
	if c == nil {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}

	t := &c.Tasks[i]

	if patch.Name != nil {
		name, err := validName(*patch.Name)
		if err != nil {
			return err
		}

		t.Name = name
	}

	if patch.Points != nil {
		if err := validSpec(*patch.Points); err != nil {
			return err
		}

		t.Points = clonePointSpec(*patch.Points)
	}

	return nil
}

func (s *Service) DeleteTask(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, i := s.findTask(id)
	if c == nil {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}

	c.Tasks = append(c.Tasks[:i], c.Tasks[i+1:]...)

	return nil
}

// MoveTask re-parents a task: removed from its old category's set, appended
// to the new one. Moving a task to the category it is already in is a no-op.
func (s *Service) MoveTask(id, newCategoryID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, i := s.findTask(id)
	if from == nil {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}

	to := s.findCategory(newCategoryID)
	if to == nil {
		return fmt.Errorf("category %s: %w", newCategoryID, ErrNotFound)
	}

	if from.ID == to.ID {
		return nil
	}

	t := from.Tasks[i]
	from.Tasks = append(from.Tasks[:i], from.Tasks[i+1:]...)

	t.CategoryID = to.ID
	to.Tasks = append(to.Tasks, t)

	return nil
}

func (s *Service) AddReward(name string, pointsRequired int, description string) (*Reward, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}

	if pointsRequired <= 0 {
		return nil, fmt.Errorf("points required: %w", ErrInvalidPoints)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := &Reward{
		ID:             uuid.New(),
		Name:           name,
		PointsRequired: pointsRequired,
		Description:    strings.TrimSpace(description),
	}
	s.rewards = append(s.rewards, r)

	out := *r

	return &out, nil
}

func (s *Service) UpdateReward(id uuid.UUID, patch RewardPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.findReward(id)
	if r == nil {
		return fmt.Errorf("reward %s: %w", id, ErrNotFound)
	}

	if patch.Name != nil {
		name, err := validName(*patch.Name)
		if err != nil {
			return err
		}

		r.Name = name
	}

	if patch.PointsRequired != nil {
		if *patch.PointsRequired <= 0 {
			return fmt.Errorf("points required: %w", ErrInvalidPoints)
		}

		r.PointsRequired = *patch.PointsRequired
	}

	if patch.Description != nil {
		r.Description = strings.TrimSpace(*patch.Description)
	}

	return nil
}

func (s *Service) DeleteReward(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.rewards {
		if r.ID == id {
			s.rewards = append(s.rewards[:i], s.rewards[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("reward %s: %w", id, ErrNotFound)
}

// UpdateUser updates name and color only. Balances belong to the ledger and
// are never writable through the catalog.
func (s *Service) UpdateUser(id uuid.UUID, patch UserPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUser(id)
	if u == nil {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}

	if patch.Name != nil {
		name, err := validName(*patch.Name)
		if err != nil {
			return err
		}

		u.Name = name
	}

	if patch.Color != nil {
		u.Color = strings.TrimSpace(*patch.Color)
	}

	return nil
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}

	return name, nil
}

func validSpec(ps PointSpec) error {
	if ps.PerUser == nil {
		if ps.Flat <= 0 {
			return fmt.Errorf("flat points: %w", ErrInvalidPoints)
		}

		return nil
	}

	if len(ps.PerUser) == 0 {
		return fmt.Errorf("per-user points: %w", ErrInvalidPoints)
	}

	for id, v := range ps.PerUser {
		if v <= 0 {
			return fmt.Errorf("points for user %s: %w", id, ErrInvalidPoints)
		}
	}

	return nil
}
