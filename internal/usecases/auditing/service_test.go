package auditing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adsync-api/infrastructure/repository/mocks"
	"github.com/vfg2006/adsync-api/internal/domain"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo *mocks.MockAuditRepository) *Service {
	return &Service{
		repo:          repo,
		retentionDays: DefaultRetentionDays,
		now:           func() time.Time { return fixedNow },
	}
}

func TestService_Record(t *testing.T) {
	ctx := context.Background()
	account := "1234567890"

	tests := []struct {
		name     string
		entry    domain.AuditEntry
		setup    func(repo *mocks.MockAuditRepository)
		validate func(t *testing.T, stored *domain.AuditEntry, err error)
	}{
		{
			name:  "devolve entrada com id e data",
			entry: domain.AuditEntry{UserID: 42, ExternalAccountID: &account, Action: domain.AuditActionConnectAccount, Success: true},
			setup: func(repo *mocks.MockAuditRepository) {
				repo.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *domain.AuditEntry) error {
					e.ID = 7
					e.CreatedAt = fixedNow
					return nil
				})
			},
			validate: func(t *testing.T, stored *domain.AuditEntry, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(7), stored.ID)
				assert.Equal(t, fixedNow, stored.CreatedAt)
				assert.Equal(t, domain.AuditActionConnectAccount, stored.Action)
			},
		},
		{
			name:  "usuário ausente",
			entry: domain.AuditEntry{Action: domain.AuditActionAuthorize},
			setup: func(repo *mocks.MockAuditRepository) {},
			validate: func(t *testing.T, stored *domain.AuditEntry, err error) {
				assert.Nil(t, stored)
				assert.ErrorIs(t, err, ErrMissingUser)
			},
		},
		{
			name:  "falha de banco",
			entry: domain.AuditEntry{UserID: 42, Action: domain.AuditActionAuthorize},
			setup: func(repo *mocks.MockAuditRepository) {
				repo.EXPECT().Insert(ctx, gomock.Any()).Return(errors.New("connection refused"))
			},
			validate: func(t *testing.T, stored *domain.AuditEntry, err error) {
				assert.ErrorIs(t, err, ErrDatabaseOperation)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockAuditRepository(ctrl)
			tt.setup(repo)

			stored, err := newTestService(repo).Record(ctx, tt.entry)

			tt.validate(t, stored, err)
		})
	}
}

func TestService_ListByUser_Pagination(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAuditRepository(ctrl)

	repo.EXPECT().List(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, f domain.AuditFilter) ([]*domain.AuditEntry, error) {
		require.NotNil(t, f.UserID)
		assert.Equal(t, 42, *f.UserID)
		assert.Equal(t, 20, f.Limit)
		assert.Equal(t, 40, f.Offset)
		return []*domain.AuditEntry{{ID: 3}, {ID: 2}}, nil
	})

	entries, err := newTestService(repo).ListByUser(ctx, 42, 3, 20)

	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestService_List_AppliesLimitCeiling(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAuditRepository(ctrl)

	repo.EXPECT().List(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, f domain.AuditFilter) ([]*domain.AuditEntry, error) {
		assert.Equal(t, domain.MaxAuditLimit, f.Limit)
		assert.True(t, f.OnlyFailures)
		return []*domain.AuditEntry{}, nil
	})

	_, err := newTestService(repo).ListFailures(ctx, nil, 10000)

	require.NoError(t, err)
}

func TestService_ListByResource(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAuditRepository(ctrl)

	repo.EXPECT().List(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, f domain.AuditFilter) ([]*domain.AuditEntry, error) {
		assert.Equal(t, "snapshot", *f.ResourceType)
		assert.Equal(t, "9", *f.ResourceID)
		assert.Equal(t, domain.DefaultAuditLimit, f.Limit)
		return nil, errors.New("timeout")
	})

	_, err := newTestService(repo).ListByResource(ctx, "snapshot", "9", 0)

	assert.ErrorIs(t, err, ErrDatabaseOperation)
}

func TestService_Cleanup(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAuditRepository(ctrl)

	repo.EXPECT().DeleteOlderThan(ctx, fixedNow.AddDate(0, 0, -90)).Return(int64(11), nil)

	deleted, err := newTestService(repo).Cleanup(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(11), deleted)
}

func TestService_EraseUser(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAuditRepository(ctrl)

	repo.EXPECT().DeleteByUser(ctx, 42).Return(int64(5), nil)

	deleted, err := newTestService(repo).EraseUser(ctx, 42)

	require.NoError(t, err)
	assert.Equal(t, int64(5), deleted)
}
