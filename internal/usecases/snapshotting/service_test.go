package snapshotting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adsync-api/infrastructure/repository"
	"github.com/vfg2006/adsync-api/infrastructure/repository/mocks"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2024, 4, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(repo *mocks.MockSnapshotRepository) *Service {
	return &Service{
		repo:          repo,
		retentionDays: DefaultRetentionDays,
		now:           func() time.Time { return fixedNow },
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	campaigns := []domain.Campaign{
		{ID: "A", Status: domain.CampaignStatusEnabled, Metrics: domain.Metrics{Spend: 100, Conversions: 10, Impressions: 1000, Clicks: 50}},
		{ID: "B", Status: domain.CampaignStatusPaused, Metrics: domain.Metrics{Spend: 50, Conversions: 0, Impressions: 500, Clicks: 10}},
	}

	tests := []struct {
		name     string
		setup    func(repo *mocks.MockSnapshotRepository)
		validate func(t *testing.T, snapshot *domain.Snapshot, err error)
	}{
		{
			name: "grava agregado das campanhas",
			setup: func(repo *mocks.MockSnapshotRepository) {
				repo.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, s *domain.Snapshot) (bool, error) {
					s.ID = 1
					return true, nil
				})
			},
			validate: func(t *testing.T, snapshot *domain.Snapshot, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(1), snapshot.ID)
				assert.Equal(t, 1, snapshot.ActiveCampaigns)
				assert.Equal(t, 1, snapshot.PausedCampaigns)
				assert.Equal(t, 150.0, snapshot.Spend)
				assert.Equal(t, 15.0, snapshot.CPA)
				assert.Equal(t, day(30), snapshot.Date)
			},
		},
		{
			name: "segunda gravação na mesma data é conflito",
			setup: func(repo *mocks.MockSnapshotRepository) {
				repo.EXPECT().Insert(ctx, gomock.Any()).Return(false, nil)
			},
			validate: func(t *testing.T, snapshot *domain.Snapshot, err error) {
				assert.Nil(t, snapshot)
				assert.ErrorIs(t, err, ErrSnapshotAlreadyExists)

				var snapshotErr *SnapshotError
				require.True(t, errors.As(err, &snapshotErr))
				assert.Equal(t, apiErrors.ErrConflict, snapshotErr.ErrorCode())
			},
		},
		{
			name: "falha de banco",
			setup: func(repo *mocks.MockSnapshotRepository) {
				repo.EXPECT().Insert(ctx, gomock.Any()).Return(false, errors.New("connection refused"))
			},
			validate: func(t *testing.T, snapshot *domain.Snapshot, err error) {
				assert.ErrorIs(t, err, ErrDatabaseOperation)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockSnapshotRepository(ctrl)
			tt.setup(repo)

			snapshot, err := newTestService(repo).Create(ctx, "1234567890", campaigns, day(30).Add(18*time.Hour))

			tt.validate(t, snapshot, err)
		})
	}
}

func TestService_Latest(t *testing.T) {
	ctx := context.Background()

	t.Run("mais recente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSnapshotRepository(ctrl)
		repo.EXPECT().List(ctx, repository.SnapshotQuery{ExternalAccountID: "1234567890", Limit: 1}).
			Return([]*domain.Snapshot{{ID: 9, Date: day(30)}}, nil)

		snapshot, err := newTestService(repo).Latest(ctx, "1234567890")

		require.NoError(t, err)
		assert.Equal(t, int64(9), snapshot.ID)
	})

	t.Run("nenhum snapshot é not found, não acesso negado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSnapshotRepository(ctrl)
		repo.EXPECT().List(ctx, gomock.Any()).Return([]*domain.Snapshot{}, nil)

		_, err := newTestService(repo).Latest(ctx, "1234567890")

		assert.ErrorIs(t, err, ErrSnapshotNotFound)
		var snapshotErr *SnapshotError
		require.True(t, errors.As(err, &snapshotErr))
		assert.Equal(t, apiErrors.ErrNotFound, snapshotErr.ErrorCode())
	})
}

func TestService_Compare(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSnapshotRepository(ctrl)

	repo.EXPECT().GetByDate(ctx, "1234567890", day(2)).Return(&domain.Snapshot{Spend: 150, Impressions: 3000}, nil)
	repo.EXPECT().GetByDate(ctx, "1234567890", day(1)).Return(&domain.Snapshot{Spend: 100, Impressions: 0}, nil)

	comparison, err := newTestService(repo).Compare(ctx, "1234567890", day(2), day(1))

	require.NoError(t, err)
	assert.Equal(t, 50.0, comparison.Spend.Change)
	assert.Equal(t, 50.0, comparison.Spend.Percent)
	assert.Equal(t, 3000.0, comparison.Impressions.Change)
	assert.Equal(t, 0.0, comparison.Impressions.Percent)
}

func TestService_Trend(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSnapshotRepository(ctrl)

	period1 := domain.DateRange{Start: day(8), End: day(14)}
	period2 := domain.DateRange{Start: day(1), End: day(7)}

	repo.EXPECT().List(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, q repository.SnapshotQuery) ([]*domain.Snapshot, error) {
		assert.Equal(t, day(1), *q.From)
		assert.Equal(t, day(14), *q.To)
		return []*domain.Snapshot{
			{Date: day(10), Spend: 300, Impressions: 1000, Clicks: 40, CTR: 4},
			{Date: day(3), Spend: 200, Impressions: 1000, Clicks: 20, CTR: 2},
		}, nil
	})

	report, err := newTestService(repo).Trend(ctx, "1234567890", period1, period2)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Period1.Days)
	assert.Equal(t, 1, report.Period2.Days)
	assert.Equal(t, 100.0, report.Change.Spend.Change)
	assert.Equal(t, 50.0, report.Change.Spend.Percent)
	assert.Equal(t, 2.0, report.Change.CTRChange)
}

func TestService_Trend_InvalidPeriod(t *testing.T) {
	_, err := newTestService(nil).Trend(context.Background(), "1", domain.DateRange{Start: day(5), End: day(1)}, domain.DateRange{Start: day(1), End: day(2)})

	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestService_Purge(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSnapshotRepository(ctrl)

	repo.EXPECT().DeleteOlderThan(ctx, time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC)).Return(int64(3), nil)

	deleted, err := newTestService(repo).Purge(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}
