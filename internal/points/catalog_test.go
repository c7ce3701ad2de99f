package points_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/points"
)

func TestService_AddCategory(t *testing.T) {
	type testCase struct {
		name     string
		input    string
		wantName string
		wantErr  error
	}

	tests := []testCase{
		{name: "Success", input: "Garden", wantName: "Garden"},
		{name: "TrimsWhitespace", input: "  Garden  ", wantName: "Garden"},
		{name: "EmptyName", input: "", wantErr: points.ErrEmptyName},
		{name: "WhitespaceOnlyName", input: "   ", wantErr: points.ErrEmptyName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, points.ModePerUser)

			got, err := f.svc.AddCategory(tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.Name)
			assert.NotEmpty(t, got.ID)
			assert.Len(t, f.svc.ListCategories(), 2)
		})
	}
}

func TestService_AddTask(t *testing.T) {
	type testCase struct {
		name       string
		categoryID func(f *fixture) uuid.UUID
		taskName   string
		points     func(f *fixture) points.PointSpec
		wantErr    error
	}

	tests := []testCase{
		{
			name:       "FlatPoints",
			categoryID: func(f *fixture) uuid.UUID { return f.chores },
			taskName:   "Mow the lawn",
			points:     func(f *fixture) points.PointSpec { return points.PointSpec{Flat: 25} },
		},
		{
			name:       "PerUserPoints",
			categoryID: func(f *fixture) uuid.UUID { return f.chores },
			taskName:   "Cook dinner",
			points: func(f *fixture) points.PointSpec {
				return points.PointSpec{PerUser: map[uuid.UUID]int{f.lara: 10, f.isaac: 15}}
			},
		},
		{
			name:       "UnknownCategory",
			categoryID: func(f *fixture) uuid.UUID { return uuid.New() },
			taskName:   "Orphan",
			points:     func(f *fixture) points.PointSpec { return points.PointSpec{Flat: 5} },
			wantErr:    points.ErrNotFound,
		},
		{
			name:       "EmptyName",
			categoryID: func(f *fixture) uuid.UUID { return f.chores },
			taskName:   " ",
			points:     func(f *fixture) points.PointSpec { return points.PointSpec{Flat: 5} },
			wantErr:    points.ErrEmptyName,
		},
		{
			name:       "ZeroFlatPoints",
			categoryID: func(f *fixture) uuid.UUID { return f.chores },
			taskName:   "Free work",
			points:     func(f *fixture) points.PointSpec { return points.PointSpec{Flat: 0} },
			wantErr:    points.ErrInvalidPoints,
		},
		{
			name:       "NegativePerUserPoints",
			categoryID: func(f *fixture) uuid.UUID { return f.chores },
			taskName:   "Penalty",
			points: func(f *fixture) points.PointSpec {
				return points.PointSpec{PerUser: map[uuid.UUID]int{f.lara: -5}}
			},
			wantErr: points.ErrInvalidPoints,
		},
		{
			name:       "EmptyPerUserMap",
			categoryID: func(f *fixture) uuid.UUID { return f.chores },
			taskName:   "Nobody's job",
			points: func(f *fixture) points.PointSpec {
				return points.PointSpec{PerUser: map[uuid.UUID]int{}}
			},
			wantErr: points.ErrInvalidPoints,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, points.ModePerUser)

			got, err := f.svc.AddTask(tt.categoryID(f), tt.taskName, tt.points(f))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.categoryID(f), got.CategoryID)

			cats := f.svc.ListCategories()
			require.Len(t, cats, 1)
			assert.Equal(t, got.ID, cats[0].Tasks[len(cats[0].Tasks)-1].ID)
		})
	}
}

func TestService_UpdateTask(t *testing.T) {
	f := newFixture(t, points.ModePerUser)

	err := f.svc.UpdateTask(f.vacuum, points.TaskPatch{
		Name:   ptr("Vacuum upstairs"),
		Points: &points.PointSpec{Flat: 20},
	})
	require.NoError(t, err)

	cats := f.svc.ListCategories()
	var got *points.Task
	for i := range cats[0].Tasks {
		if cats[0].Tasks[i].ID == f.vacuum {
			got = &cats[0].Tasks[i]
		}
	}

	require.NotNil(t, got)
	assert.Equal(t, "Vacuum upstairs", got.Name)
	assert.Equal(t, 20, got.Points.Flat)

	// Invalid patches leave the task untouched.
	err = f.svc.UpdateTask(f.vacuum, points.TaskPatch{Points: &points.PointSpec{Flat: -1}})
	assert.ErrorIs(t, err, points.ErrInvalidPoints)

	err = f.svc.UpdateTask(uuid.New(), points.TaskPatch{Name: ptr("ghost")})
	assert.ErrorIs(t, err, points.ErrNotFound)
}

func TestService_MoveTask(t *testing.T) {
	f := newFixture(t, points.ModePerUser)

	goals, err := f.svc.AddCategory("Personal Goals")
	require.NoError(t, err)

	require.NoError(t, f.svc.MoveTask(f.vacuum, goals.ID))

	taskIn := func(categoryID uuid.UUID) bool {
		for _, c := range f.svc.ListCategories() {
			if c.ID != categoryID {
				continue
			}
			for _, task := range c.Tasks {
				if task.ID == f.vacuum {
					assert.Equal(t, categoryID, task.CategoryID)
					return true
				}
			}
		}

		return false
	}

	assert.True(t, taskIn(goals.ID))
	assert.False(t, taskIn(f.chores))

	// Moving to the current category is a no-op, not an error.
	require.NoError(t, f.svc.MoveTask(f.vacuum, goals.ID))
	assert.True(t, taskIn(goals.ID))

	// And back again.
	require.NoError(t, f.svc.MoveTask(f.vacuum, f.chores))
	assert.True(t, taskIn(f.chores))

	assert.ErrorIs(t, f.svc.MoveTask(f.vacuum, uuid.New()), points.ErrNotFound)
	assert.ErrorIs(t, f.svc.MoveTask(uuid.New(), goals.ID), points.ErrNotFound)
}

func TestService_DeleteCategory_CascadesTasks(t *testing.T) {
	f := newFixture(t, points.ModePerUser)
	f.earn(t, f.lara, f.dishes, 2)

	require.NoError(t, f.svc.DeleteCategory(f.chores))

	assert.Empty(t, f.svc.ListCategories())

	// Deleting the catalog entry never claws back earned points.
	bal, err := f.svc.Balance(f.lara)
	require.NoError(t, err)
	assert.Equal(t, 10, bal)
	assert.Len(t, f.svc.History(), 2)

	assert.ErrorIs(t, f.svc.DeleteCategory(f.chores), points.ErrNotFound)
}

func TestService_AddReward(t *testing.T) {
	type testCase struct {
		name           string
		rewardName     string
		pointsRequired int
		wantErr        error
	}

	tests := []testCase{
		{name: "Success", rewardName: "Spa Day", pointsRequired: 200},
		{name: "EmptyName", rewardName: "", pointsRequired: 100, wantErr: points.ErrEmptyName},
		{name: "ZeroCost", rewardName: "Freebie", pointsRequired: 0, wantErr: points.ErrInvalidPoints},
		{name: "NegativeCost", rewardName: "Refund", pointsRequired: -10, wantErr: points.ErrInvalidPoints},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, points.ModePerUser)

			got, err := f.svc.AddReward(tt.rewardName, tt.pointsRequired, "  a treat  ")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.rewardName, got.Name)
			assert.Equal(t, tt.pointsRequired, got.PointsRequired)
			assert.Equal(t, "a treat", got.Description)
			assert.Len(t, f.svc.ListRewards(), 3)
		})
	}
}

func TestService_UpdateReward(t *testing.T) {
	f := newFixture(t, points.ModePerUser)

	err := f.svc.UpdateReward(f.coffee, points.RewardPatch{
		Name:           ptr("Fancy Coffee"),
		PointsRequired: ptr(60),
	})
	require.NoError(t, err)

	var got *points.Reward
	for _, r := range f.svc.ListRewards() {
		if r.ID == f.coffee {
			got = &r
		}
	}

	require.NotNil(t, got)
	assert.Equal(t, "Fancy Coffee", got.Name)
	assert.Equal(t, 60, got.PointsRequired)

	assert.ErrorIs(t,
		f.svc.UpdateReward(f.coffee, points.RewardPatch{PointsRequired: ptr(0)}),
		points.ErrInvalidPoints)
	assert.ErrorIs(t,
		f.svc.UpdateReward(uuid.New(), points.RewardPatch{Name: ptr("ghost")}),
		points.ErrNotFound)
}

func TestService_DeleteReward(t *testing.T) {
	f := newFixture(t, points.ModePerUser)

	require.NoError(t, f.svc.DeleteReward(f.movie))
	assert.Len(t, f.svc.ListRewards(), 1)

	assert.ErrorIs(t, f.svc.DeleteReward(f.movie), points.ErrNotFound)
}

func TestService_UpdateUser(t *testing.T) {
	f := newFixture(t, points.ModePerUser)
	f.earn(t, f.lara, f.dishes, 1)

	err := f.svc.UpdateUser(f.lara, points.UserPatch{
		Name:  ptr("Laura"),
		Color: ptr(" #FFD700 "),
	})
	require.NoError(t, err)

	users := f.svc.ListUsers()
	var got *points.User
	for i := range users {
		if users[i].ID == f.lara {
			got = &users[i]
		}
	}

	require.NotNil(t, got)
	assert.Equal(t, "Laura", got.Name)
	assert.Equal(t, "#FFD700", got.Color)
	assert.Equal(t, 5, got.Balance)

	assert.ErrorIs(t, f.svc.UpdateUser(f.lara, points.UserPatch{Name: ptr("")}), points.ErrEmptyName)
	assert.ErrorIs(t, f.svc.UpdateUser(uuid.New(), points.UserPatch{Name: ptr("x")}), points.ErrNotFound)
}
