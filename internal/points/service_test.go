package points_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/points"
)

func TestParseMode(t *testing.T) {
	mode, err := points.ParseMode("per_user")
	require.NoError(t, err)
	assert.Equal(t, points.ModePerUser, mode)

	mode, err = points.ParseMode("pooled")
	require.NoError(t, err)
	assert.Equal(t, points.ModePooled, mode)

	_, err = points.ParseMode("shared")
	assert.Error(t, err)
}

func TestService_Restore_ModeMismatch(t *testing.T) {
	svc := points.NewService(points.ModePerUser, nil)

	err := svc.Restore(&points.Snapshot{Mode: points.ModePooled})
	assert.ErrorIs(t, err, points.ErrModeMismatch)

	// Snapshots written before modes existed carry no mode and restore fine.
	assert.NoError(t, svc.Restore(&points.Snapshot{}))
}

func TestService_Snapshot_IsDeepCopy(t *testing.T) {
	f := newFixture(t, points.ModePerUser)
	f.earn(t, f.lara, f.dishes, 1)

	snap := f.svc.Snapshot()
	snap.Users[0].Balance = 9999
	snap.Categories[0].Tasks[0].Name = "mangled"
	snap.Categories[0].Tasks[0].Points.PerUser[f.lara] = 9999
	snap.History[0].Points = 9999

	fresh := f.svc.Snapshot()
	assert.NotEqual(t, 9999, fresh.Users[0].Balance)
	assert.Equal(t, "Do the dishes", fresh.Categories[0].Tasks[0].Name)
	assert.Equal(t, 5, fresh.Categories[0].Tasks[0].Points.PerUser[f.lara])
	assert.Equal(t, 5, fresh.History[0].Points)
}

func TestService_RoundTrip(t *testing.T) {
	f := newFixture(t, points.ModePerUser)
	f.earn(t, f.lara, f.dishes, 11)

	redeemed, err := f.svc.RedeemReward(f.lara, f.coffee)
	require.NoError(t, err)
	require.True(t, redeemed)

	restored := points.NewService(points.ModePerUser, nil)
	require.NoError(t, restored.Restore(f.svc.Snapshot()))

	assert.Equal(t, f.svc.TotalPoints(), restored.TotalPoints())
	assert.Equal(t, f.svc.History(), restored.History())
	assert.Equal(t, f.svc.ListCategories(), restored.ListCategories())
	assert.Equal(t, f.svc.ListRewards(), restored.ListRewards())
}

func TestService_Checkpoint(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *points.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *points.MockRepository) {
				m.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, snap *points.Snapshot) error {
						assert.Equal(t, points.ModePerUser, snap.Mode)
						assert.Len(t, snap.Users, 2)
						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "RepoError",
			setupMock: func(m *points.MockRepository) {
				m.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := points.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := points.NewService(points.ModePerUser, repo)
			require.NoError(t, svc.Restore(points.DefaultSnapshot(points.ModePerUser)))

			err := svc.Checkpoint(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Checkpoint_NoRepository(t *testing.T) {
	svc := points.NewService(points.ModePerUser, nil)
	assert.NoError(t, svc.Checkpoint(context.Background()))
}

func TestService_CanAfford(t *testing.T) {
	f := newFixture(t, points.ModePerUser)
	f.earn(t, f.lara, f.dishes, 10) // 50

	ok, err := f.svc.CanAfford(f.lara, f.coffee)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.CanAfford(f.lara, f.movie)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.svc.CanAfford(f.isaac, f.coffee)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAffordabilityProgress(t *testing.T) {
	assert.Equal(t, 0.0, points.AffordabilityProgress(0, 100))
	assert.Equal(t, 0.5, points.AffordabilityProgress(50, 100))
	assert.Equal(t, 1.0, points.AffordabilityProgress(100, 100))
	assert.Equal(t, 1.0, points.AffordabilityProgress(150, 100))
	assert.Equal(t, 1.0, points.AffordabilityProgress(0, 0))
}

func TestDefaultSnapshot(t *testing.T) {
	snap := points.DefaultSnapshot(points.ModePerUser)

	assert.Equal(t, points.ModePerUser, snap.Mode)
	require.Len(t, snap.Users, 2)
	assert.Len(t, snap.Categories, 4)
	assert.Len(t, snap.Rewards, 6)
	assert.Empty(t, snap.History)

	// Every seeded task must resolve to a positive value for both users.
	for _, c := range snap.Categories {
		for _, task := range c.Tasks {
			assert.Equal(t, c.ID, task.CategoryID)
			for _, u := range snap.Users {
				assert.Positive(t, task.Points.Resolve(u.ID), "%s / %s", task.Name, u.Name)
			}
		}
	}

	svc := points.NewService(points.ModePerUser, nil)
	require.NoError(t, svc.Restore(snap))
	assert.Zero(t, svc.TotalPoints())
}
