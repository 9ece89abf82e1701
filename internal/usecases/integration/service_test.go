package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adsmocks "github.com/vfg2006/adsync-api/infrastructure/integrator/googleads/mocks"
	repomocks "github.com/vfg2006/adsync-api/infrastructure/repository/mocks"
	"github.com/vfg2006/adsync-api/internal/domain"
	auditmocks "github.com/vfg2006/adsync-api/internal/usecases/auditing/mocks"
	cachemocks "github.com/vfg2006/adsync-api/internal/usecases/caching/mocks"
	"github.com/vfg2006/adsync-api/internal/usecases/credentialing"
	credmocks "github.com/vfg2006/adsync-api/internal/usecases/credentialing/mocks"
	"github.com/vfg2006/adsync-api/internal/usecases/ownership"
	ownmocks "github.com/vfg2006/adsync-api/internal/usecases/ownership/mocks"
	snapmocks "github.com/vfg2006/adsync-api/internal/usecases/snapshotting/mocks"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	credentials *credmocks.MockManager
	guard       *ownmocks.MockGuard
	cache       *cachemocks.MockCache
	snapshots   *snapmocks.MockStore
	audit       *auditmocks.MockLog
	ads         *adsmocks.MockIntegrator
	conns       *repomocks.MockConnectionRepository
	service     *Service
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		credentials: credmocks.NewMockManager(ctrl),
		guard:       ownmocks.NewMockGuard(ctrl),
		cache:       cachemocks.NewMockCache(ctrl),
		snapshots:   snapmocks.NewMockStore(ctrl),
		audit:       auditmocks.NewMockLog(ctrl),
		ads:         adsmocks.NewMockIntegrator(ctrl),
		conns:       repomocks.NewMockConnectionRepository(ctrl),
	}

	f.service = &Service{
		credentials: f.credentials,
		guard:       f.guard,
		cache:       f.cache,
		snapshots:   f.snapshots,
		audit:       f.audit,
		ads:         f.ads,
		connRepo:    f.conns,
		now:         func() time.Time { return fixedNow },
	}

	return f
}

// recordedActions aceita qualquer auditoria e guarda as ações na ordem
func (f *fixture) recordedActions() *[]domain.AuditEntry {
	entries := make([]domain.AuditEntry, 0)
	f.audit.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e domain.AuditEntry) (*domain.AuditEntry, error) {
		entries = append(entries, e)
		return &e, nil
	}).AnyTimes()
	return &entries
}

func activeConnection() *domain.Connection {
	return &domain.Connection{
		ID:                "conn01",
		UserID:            42,
		ExternalAccountID: "1234567890",
		AccessToken:       "stored-access",
		RefreshToken:      "refresh",
		TokenExpiry:       fixedNow.Add(time.Hour),
		Status:            domain.ConnectionStatusActive,
	}
}

func TestService_CompleteAuthorization(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	entries := f.recordedActions()

	tokens := &domain.TokenSet{AccessToken: "access", RefreshToken: "refresh", Expiry: fixedNow.Add(time.Hour)}

	f.credentials.EXPECT().ParseState("signed-state").Return(42, nil)
	f.credentials.EXPECT().ExchangeCode(ctx, "code").Return(tokens, nil)
	f.ads.EXPECT().ListAccessibleCustomers(ctx, "access").Return([]string{"111", "222", "333"}, nil)

	f.conns.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Connection) (bool, error) {
		assert.Equal(t, 42, c.UserID)
		assert.Equal(t, "refresh", c.RefreshToken)
		assert.NotEmpty(t, c.ID)

		switch c.ExternalAccountID {
		case "111":
			return true, nil
		case "222":
			return false, nil
		default:
			return false, errors.New("connection reset by peer")
		}
	}).Times(3)
	f.conns.EXPECT().GetByUserAndAccount(ctx, 42, "222").Return(activeConnection(), nil)

	result, err := f.service.CompleteAuthorization(ctx, "code", "signed-state", domain.RequestMeta{IPAddress: "10.0.0.1"})

	require.NoError(t, err)
	assert.Equal(t, 42, result.OwnerID)
	assert.Equal(t, tokens, result.Tokens)
	assert.Equal(t, []string{"111"}, result.Batch.Connected)
	assert.Equal(t, []string{"222"}, result.Batch.AlreadyConnected)
	require.Len(t, result.Batch.Failed, 1)
	assert.Equal(t, "333", result.Batch.Failed[0].ExternalAccountID)
	assert.Contains(t, result.Batch.Failed[0].Reason, "connection reset")

	require.Len(t, *entries, 4)
	assert.Equal(t, domain.AuditActionAuthorize, (*entries)[0].Action)
	assert.Equal(t, "10.0.0.1", *(*entries)[0].IPAddress)
	assert.True(t, (*entries)[2].Success)
	assert.False(t, (*entries)[3].Success)
}

func TestService_CompleteAuthorization_InvalidState(t *testing.T) {
	f := newFixture(t)

	f.credentials.EXPECT().ParseState("forged").
		Return(0, credentialing.NewCredentialError(credentialing.ErrInvalidState, apiErrors.ErrInvalidState, ""))

	_, err := f.service.CompleteAuthorization(context.Background(), "code", "forged", domain.RequestMeta{})

	assert.ErrorIs(t, err, credentialing.ErrInvalidState)
}

func TestService_CompleteAuthorization_ExchangeRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	entries := f.recordedActions()

	f.credentials.EXPECT().ParseState("state").Return(42, nil)
	f.credentials.EXPECT().ExchangeCode(ctx, "used-code").
		Return(nil, credentialing.NewCredentialError(credentialing.ErrProviderDenied, apiErrors.ErrProviderDenied, "invalid_grant"))

	_, err := f.service.CompleteAuthorization(ctx, "used-code", "state", domain.RequestMeta{})

	assert.ErrorIs(t, err, credentialing.ErrProviderDenied)
	require.Len(t, *entries, 1)
	assert.False(t, (*entries)[0].Success)
}

func TestService_Campaigns(t *testing.T) {
	ctx := context.Background()
	dr := domain.NewDateRange(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC))
	key := domain.CacheKey{Resource: domain.ResourceCampaigns, ExternalAccountID: "1234567890", Range: dr}
	campaigns := []domain.Campaign{{ID: "1", Name: "Search", Status: domain.CampaignStatusEnabled}}

	tests := []struct {
		name     string
		setup    func(f *fixture)
		validate func(t *testing.T, result []domain.Campaign, cached bool, err error)
	}{
		{
			name: "cache válido não chama a plataforma nem renova token",
			setup: func(f *fixture) {
				f.guard.EXPECT().Require(ctx, 42, "1234567890").Return(activeConnection(), nil)
				f.cache.EXPECT().Get(gomock.Any(), key).Return([]byte(`[{"id":"1","name":"Search","status":"ENABLED"}]`), true)
			},
			validate: func(t *testing.T, result []domain.Campaign, cached bool, err error) {
				require.NoError(t, err)
				assert.True(t, cached)
				assert.Equal(t, campaigns[0].Name, result[0].Name)
			},
		},
		{
			name: "miss busca, grava sincronização e cache",
			setup: func(f *fixture) {
				f.guard.EXPECT().Require(ctx, 42, "1234567890").Return(activeConnection(), nil)
				f.cache.EXPECT().Get(gomock.Any(), key).Return(nil, false)
				f.credentials.EXPECT().ValidAccessToken(gomock.Any(), gomock.Any()).Return("stored-access", nil)
				f.ads.EXPECT().GetCampaigns(gomock.Any(), "stored-access", "1234567890", dr).Return(campaigns, nil)
				f.conns.EXPECT().UpdateSyncResult(gomock.Any(), "conn01", fixedNow, (*string)(nil)).Return(nil)
				f.cache.EXPECT().Put(gomock.Any(), key, gomock.Any()).Return(true)
			},
			validate: func(t *testing.T, result []domain.Campaign, cached bool, err error) {
				require.NoError(t, err)
				assert.False(t, cached)
				assert.Equal(t, campaigns, result)
			},
		},
		{
			name: "conta de outro usuário é negada antes de qualquer acesso",
			setup: func(f *fixture) {
				f.guard.EXPECT().Require(ctx, 42, "1234567890").
					Return(nil, ownership.NewOwnershipError(ownership.ErrAccessDenied, apiErrors.ErrAccessDenied, 42, "1234567890", ""))
			},
			validate: func(t *testing.T, result []domain.Campaign, cached bool, err error) {
				assert.Nil(t, result)
				assert.True(t, ownership.IsAccessDenied(err))
			},
		},
		{
			name: "conexão desconectada é recusada",
			setup: func(f *fixture) {
				conn := activeConnection()
				conn.Status = domain.ConnectionStatusDisconnected
				f.guard.EXPECT().Require(ctx, 42, "1234567890").Return(conn, nil)
			},
			validate: func(t *testing.T, result []domain.Campaign, cached bool, err error) {
				assert.ErrorIs(t, err, ErrConnectionDisconnected)
			},
		},
		{
			name: "falha remota registra erro de sincronização e não grava cache",
			setup: func(f *fixture) {
				f.guard.EXPECT().Require(ctx, 42, "1234567890").Return(activeConnection(), nil)
				f.cache.EXPECT().Get(gomock.Any(), key).Return(nil, false)
				f.credentials.EXPECT().ValidAccessToken(gomock.Any(), gomock.Any()).Return("stored-access", nil)
				f.ads.EXPECT().GetCampaigns(gomock.Any(), "stored-access", "1234567890", dr).Return(nil, errors.New("socket hang up"))
				f.conns.EXPECT().UpdateSyncResult(gomock.Any(), "conn01", fixedNow, gomock.Not(gomock.Nil())).Return(nil)
			},
			validate: func(t *testing.T, result []domain.Campaign, cached bool, err error) {
				assert.ErrorIs(t, err, ErrRemoteUnavailable)

				var integrationErr *IntegrationError
				require.True(t, errors.As(err, &integrationErr))
				assert.Equal(t, apiErrors.ErrExternalService, integrationErr.ErrorCode())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			result, cached, err := f.service.Campaigns(ctx, 42, "1234567890", dr)

			tt.validate(t, result, cached, err)
		})
	}
}

func TestService_EnsureFreshToken_AuditsRefresh(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	entries := f.recordedActions()

	conn := activeConnection()
	conn.TokenExpiry = fixedNow

	f.credentials.EXPECT().ValidAccessToken(ctx, conn).Return("renewed", nil)

	token, err := f.service.EnsureFreshToken(ctx, conn)

	require.NoError(t, err)
	assert.Equal(t, "renewed", token)
	require.Len(t, *entries, 1)
	assert.Equal(t, domain.AuditActionRefreshToken, (*entries)[0].Action)
	assert.True(t, (*entries)[0].Success)
}

func TestService_RefreshAccount_KeepsSnapshots(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.recordedActions()

	report := domain.InvalidationReport{
		ExternalAccountID: "1234567890",
		Results:           []domain.InvalidationResult{{Resource: domain.ResourceCampaigns, Deleted: 3}},
	}

	f.guard.EXPECT().Require(ctx, 42, "1234567890").Return(activeConnection(), nil)
	f.cache.EXPECT().Invalidate(ctx, "1234567890").Return(report)
	// nenhuma chamada ao snapshots: o mock falha se houver

	got, err := f.service.RefreshAccount(ctx, 42, "1234567890", domain.RequestMeta{})

	require.NoError(t, err)
	assert.Equal(t, int64(3), got.TotalDeleted())
}

func TestService_Disconnect_AuditFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.guard.EXPECT().Require(ctx, 42, "1234567890").Return(activeConnection(), nil)
	f.conns.EXPECT().UpdateStatus(ctx, "conn01", domain.ConnectionStatusDisconnected, nil).Return(nil)
	f.cache.EXPECT().Invalidate(ctx, "1234567890").Return(domain.InvalidationReport{})
	f.audit.EXPECT().Record(ctx, gomock.Any()).Return(nil, errors.New("audit table locked"))

	err := f.service.Disconnect(ctx, 42, "1234567890", domain.RequestMeta{})

	assert.NoError(t, err)
}

func TestService_RemoveAccount(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		remaining int
		setup     func(f *fixture)
	}{
		{
			name:      "outro usuário ainda conectado mantém snapshots",
			remaining: 1,
			setup:     func(f *fixture) {},
		},
		{
			name:      "última conexão apaga snapshots",
			remaining: 0,
			setup: func(f *fixture) {
				f.snapshots.EXPECT().DeleteByAccount(ctx, "1234567890").Return(int64(30), nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.recordedActions()

			f.guard.EXPECT().Require(ctx, 42, "1234567890").Return(activeConnection(), nil)
			f.conns.EXPECT().Delete(ctx, "conn01").Return(nil)
			f.cache.EXPECT().Invalidate(ctx, "1234567890").Return(domain.InvalidationReport{})
			f.conns.EXPECT().CountByExternalAccount(ctx, "1234567890").Return(tt.remaining, nil)
			tt.setup(f)

			err := f.service.RemoveAccount(ctx, 42, "1234567890", domain.RequestMeta{})

			require.NoError(t, err)
		})
	}
}

func TestService_EraseUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	entries := f.recordedActions()

	f.conns.EXPECT().ListByUser(ctx, 42).Return([]*domain.Connection{activeConnection()}, nil)
	f.conns.EXPECT().DeleteByUser(ctx, 42).Return(int64(1), nil)
	f.cache.EXPECT().Invalidate(ctx, "1234567890").Return(domain.InvalidationReport{})
	f.conns.EXPECT().CountByExternalAccount(ctx, "1234567890").Return(0, nil)
	f.snapshots.EXPECT().DeleteByAccount(ctx, "1234567890").Return(int64(2), nil)
	f.audit.EXPECT().EraseUser(ctx, 42).Return(int64(9), nil)

	err := f.service.EraseUser(ctx, 42, domain.RequestMeta{})

	require.NoError(t, err)
	require.Len(t, *entries, 1)
	assert.Equal(t, domain.AuditActionEraseUser, (*entries)[0].Action)
}

func TestService_RecordSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	entries := f.recordedActions()

	day := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
	campaigns := []domain.Campaign{{ID: "1", Status: domain.CampaignStatusEnabled, Metrics: domain.Metrics{Spend: 10}}}

	f.guard.EXPECT().Require(ctx, 42, "1234567890").Return(activeConnection(), nil)
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return([]byte(`[{"id":"1","status":"ENABLED","metrics":{"spend":10}}]`), true)
	f.snapshots.EXPECT().Create(ctx, "1234567890", campaigns, day).Return(&domain.Snapshot{ID: 5, Date: day, Spend: 10}, nil)

	snapshot, err := f.service.RecordSnapshot(ctx, 42, "1234567890", day.Add(20*time.Hour), domain.RequestMeta{})

	require.NoError(t, err)
	assert.Equal(t, int64(5), snapshot.ID)
	require.Len(t, *entries, 1)
	assert.Equal(t, domain.AuditActionCreateSnapshot, (*entries)[0].Action)
	assert.Equal(t, "5", *(*entries)[0].ResourceID)
}

func TestService_LatestSnapshot_RequiresOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.guard.EXPECT().Require(ctx, 7, "1234567890").
		Return(nil, ownership.NewOwnershipError(ownership.ErrAccessDenied, apiErrors.ErrAccessDenied, 7, "1234567890", ""))

	_, err := f.service.LatestSnapshot(ctx, 7, "1234567890")

	assert.ErrorIs(t, err, ownership.ErrAccessDenied)
}

func TestService_ListAudit_ScopedToCaller(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	other := 99
	f.audit.EXPECT().List(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, filter domain.AuditFilter) ([]*domain.AuditEntry, error) {
		assert.Equal(t, 42, *filter.UserID)
		return []*domain.AuditEntry{}, nil
	})

	_, err := f.service.ListAudit(ctx, 42, domain.AuditFilter{UserID: &other})

	require.NoError(t, err)
}

func TestService_Resource_Unknown(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.service.Resource(context.Background(), 42, "1234567890", "ads", nil)

	assert.ErrorIs(t, err, ErrUnknownResource)
}
