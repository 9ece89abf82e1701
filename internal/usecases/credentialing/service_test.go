package credentialing

import (
	"context"
	"errors"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repomocks "github.com/vfg2006/adsync-api/infrastructure/repository/mocks"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/internal/usecases/credentialing/mocks"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
	"github.com/vfg2006/adsync-api/pkg/retry"
	"go.uber.org/mock/gomock"
	"golang.org/x/oauth2"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestService(provider Provider, connRepo *repomocks.MockConnectionRepository, locker Locker) *Service {
	return &Service{
		provider:        provider,
		connRepo:        connRepo,
		locker:          locker,
		stateSecret:     []byte("test-secret"),
		stateTTL:        10 * time.Minute,
		exchangeTimeout: time.Second,
		lockTTL:         30 * time.Second,
		now:             func() time.Time { return fixedNow },
		policy: retry.Policy{
			MaxAttempts: 3,
			BaseDelay:   time.Second,
			MaxDelay:    10 * time.Second,
			Sleep:       func(context.Context, time.Duration) error { return nil },
		},
	}
}

func invalidGrant() error {
	return &oauth2.RetrieveError{
		Response:  &http.Response{StatusCode: http.StatusBadRequest},
		ErrorCode: "invalid_grant",
	}
}

func TestService_ValidAccessToken(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		conn     *domain.Connection
		setup    func(provider *mocks.MockProvider, repo *repomocks.MockConnectionRepository)
		validate func(t *testing.T, conn *domain.Connection, token string, err error)
	}{
		{
			name: "token ainda válido não chama o provedor",
			conn: &domain.Connection{ID: "conn01", AccessToken: "stored", RefreshToken: "refresh", TokenExpiry: fixedNow.Add(time.Minute)},
			setup: func(provider *mocks.MockProvider, repo *repomocks.MockConnectionRepository) {
				provider.EXPECT().Refresh(gomock.Any(), gomock.Any()).Times(0)
			},
			validate: func(t *testing.T, conn *domain.Connection, token string, err error) {
				require.NoError(t, err)
				assert.Equal(t, "stored", token)
			},
		},
		{
			name: "token expirado faz um refresh e grava antes de devolver",
			conn: &domain.Connection{ID: "conn01", AccessToken: "old", RefreshToken: "refresh", TokenExpiry: fixedNow.Add(-time.Minute)},
			setup: func(provider *mocks.MockProvider, repo *repomocks.MockConnectionRepository) {
				newExpiry := fixedNow.Add(time.Hour)
				gomock.InOrder(
					provider.EXPECT().Refresh(gomock.Any(), "refresh").
						Return(&oauth2.Token{AccessToken: "new", RefreshToken: "refresh", Expiry: newExpiry}, nil).
						Times(1),
					repo.EXPECT().UpdateTokens(ctx, "conn01", domain.TokenSet{AccessToken: "new", RefreshToken: "refresh", Expiry: newExpiry}).
						Return(nil).
						Times(1),
				)
			},
			validate: func(t *testing.T, conn *domain.Connection, token string, err error) {
				require.NoError(t, err)
				assert.Equal(t, "new", token)
				assert.Equal(t, fixedNow.Add(time.Hour), conn.TokenExpiry)
				assert.Equal(t, domain.ConnectionStatusActive, conn.Status)
			},
		},
		{
			name: "expiração igual a agora já conta como expirado",
			conn: &domain.Connection{ID: "conn01", AccessToken: "old", RefreshToken: "refresh", TokenExpiry: fixedNow},
			setup: func(provider *mocks.MockProvider, repo *repomocks.MockConnectionRepository) {
				provider.EXPECT().Refresh(gomock.Any(), "refresh").
					Return(&oauth2.Token{AccessToken: "new", Expiry: fixedNow.Add(time.Hour)}, nil)
				repo.EXPECT().UpdateTokens(ctx, "conn01", gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, conn *domain.Connection, token string, err error) {
				require.NoError(t, err)
				assert.Equal(t, "new", token)
				assert.Equal(t, "refresh", conn.RefreshToken)
			},
		},
		{
			name: "invalid_grant não é repetido e marca a conexão com erro",
			conn: &domain.Connection{ID: "conn01", AccessToken: "old", RefreshToken: "revoked", TokenExpiry: fixedNow.Add(-time.Minute)},
			setup: func(provider *mocks.MockProvider, repo *repomocks.MockConnectionRepository) {
				provider.EXPECT().Refresh(gomock.Any(), "revoked").Return(nil, invalidGrant()).Times(1)
				repo.EXPECT().UpdateStatus(ctx, "conn01", domain.ConnectionStatusError, gomock.Not(gomock.Nil())).Return(nil)
			},
			validate: func(t *testing.T, conn *domain.Connection, token string, err error) {
				require.Error(t, err)
				assert.Empty(t, token)
				assert.True(t, IsAuthorizationError(err))

				var credentialErr *CredentialError
				require.True(t, errors.As(err, &credentialErr))
				assert.Equal(t, apiErrors.ErrProviderDenied, credentialErr.ErrorCode())
				assert.Equal(t, "conn01", credentialErr.ConnectionID)
			},
		},
		{
			name: "falha de rede é repetida até dar certo",
			conn: &domain.Connection{ID: "conn01", RefreshToken: "refresh", TokenExpiry: fixedNow.Add(-time.Minute)},
			setup: func(provider *mocks.MockProvider, repo *repomocks.MockConnectionRepository) {
				gomock.InOrder(
					provider.EXPECT().Refresh(gomock.Any(), "refresh").Return(nil, syscall.ECONNRESET).Times(2),
					provider.EXPECT().Refresh(gomock.Any(), "refresh").Return(&oauth2.Token{AccessToken: "new", Expiry: fixedNow.Add(time.Hour)}, nil),
				)
				repo.EXPECT().UpdateTokens(ctx, "conn01", gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, conn *domain.Connection, token string, err error) {
				require.NoError(t, err)
				assert.Equal(t, "new", token)
			},
		},
		{
			name: "sem refresh token não há como renovar",
			conn: &domain.Connection{ID: "conn01", TokenExpiry: fixedNow.Add(-time.Minute)},
			setup: func(provider *mocks.MockProvider, repo *repomocks.MockConnectionRepository) {
				repo.EXPECT().UpdateStatus(ctx, "conn01", domain.ConnectionStatusError, gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, conn *domain.Connection, token string, err error) {
				assert.ErrorIs(t, err, ErrMissingRefreshToken)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			provider := mocks.NewMockProvider(ctrl)
			repo := repomocks.NewMockConnectionRepository(ctrl)
			tt.setup(provider, repo)

			service := newTestService(provider, repo, nil)
			token, err := service.ValidAccessToken(ctx, tt.conn)

			tt.validate(t, tt.conn, token, err)
		})
	}
}

func TestService_ValidAccessToken_LockSkipsRenewedToken(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	repo := repomocks.NewMockConnectionRepository(ctrl)
	locker := mocks.NewMockLocker(ctrl)

	released := false
	locker.EXPECT().Acquire(ctx, "connection:conn01", 30*time.Second).Return(func() { released = true }, nil)
	repo.EXPECT().GetByID(ctx, "conn01").Return(&domain.Connection{
		ID:           "conn01",
		AccessToken:  "renewed-elsewhere",
		RefreshToken: "refresh",
		TokenExpiry:  fixedNow.Add(time.Hour),
	}, nil)
	provider.EXPECT().Refresh(gomock.Any(), gomock.Any()).Times(0)

	conn := &domain.Connection{ID: "conn01", AccessToken: "old", RefreshToken: "refresh", TokenExpiry: fixedNow.Add(-time.Minute)}
	token, err := newTestService(provider, repo, locker).ValidAccessToken(ctx, conn)

	require.NoError(t, err)
	assert.Equal(t, "renewed-elsewhere", token)
	assert.True(t, released)
}

func TestService_ValidAccessToken_LockFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	repo := repomocks.NewMockConnectionRepository(ctrl)
	locker := mocks.NewMockLocker(ctrl)

	locker.EXPECT().Acquire(ctx, "connection:conn01", gomock.Any()).Return(nil, errors.New("redis down"))
	provider.EXPECT().Refresh(gomock.Any(), "refresh").Return(&oauth2.Token{AccessToken: "new", Expiry: fixedNow.Add(time.Hour)}, nil)
	repo.EXPECT().UpdateTokens(ctx, "conn01", gomock.Any()).Return(nil)

	conn := &domain.Connection{ID: "conn01", RefreshToken: "refresh", TokenExpiry: fixedNow.Add(-time.Minute)}
	token, err := newTestService(provider, repo, locker).ValidAccessToken(ctx, conn)

	require.NoError(t, err)
	assert.Equal(t, "new", token)
}

func TestService_ExchangeCode(t *testing.T) {
	ctx := context.Background()

	t.Run("troca com sucesso", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		provider := mocks.NewMockProvider(ctrl)

		token := (&oauth2.Token{AccessToken: "access", RefreshToken: "refresh", Expiry: fixedNow.Add(time.Hour)}).
			WithExtra(map[string]interface{}{"scope": "https://www.googleapis.com/auth/adwords"})
		provider.EXPECT().Exchange(gomock.Any(), "the-code").Return(token, nil)

		tokens, err := newTestService(provider, nil, nil).ExchangeCode(ctx, "the-code")

		require.NoError(t, err)
		assert.Equal(t, "access", tokens.AccessToken)
		assert.Equal(t, "refresh", tokens.RefreshToken)
		assert.Equal(t, "https://www.googleapis.com/auth/adwords", tokens.Scope)
	})

	t.Run("sem refresh token é erro de autorização", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		provider := mocks.NewMockProvider(ctrl)
		provider.EXPECT().Exchange(gomock.Any(), "the-code").Return(&oauth2.Token{AccessToken: "access"}, nil)

		_, err := newTestService(provider, nil, nil).ExchangeCode(ctx, "the-code")

		assert.ErrorIs(t, err, ErrMissingRefreshToken)
		assert.True(t, IsAuthorizationError(err))
	})

	t.Run("invalid_grant acontece uma vez só", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		provider := mocks.NewMockProvider(ctrl)
		provider.EXPECT().Exchange(gomock.Any(), "used-code").Return(nil, invalidGrant()).Times(1)

		_, err := newTestService(provider, nil, nil).ExchangeCode(ctx, "used-code")

		assert.ErrorIs(t, err, ErrProviderDenied)
	})

	t.Run("rede fora esgota as tentativas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		provider := mocks.NewMockProvider(ctrl)
		provider.EXPECT().Exchange(gomock.Any(), "the-code").Return(nil, syscall.ECONNREFUSED).Times(3)

		_, err := newTestService(provider, nil, nil).ExchangeCode(ctx, "the-code")

		assert.ErrorIs(t, err, ErrProviderUnavailable)
		assert.False(t, IsAuthorizationError(err))
	})
}
