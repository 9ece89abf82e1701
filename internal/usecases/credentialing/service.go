package credentialing

//go:generate mockgen -source=service.go -destination=mocks/credentialing_mock.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/infrastructure/repository"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
	"github.com/vfg2006/adsync-api/pkg/retry"
	"golang.org/x/oauth2"
)

const (
	defaultExchangeTimeout = 15 * time.Second
	defaultStateTTL        = 10 * time.Minute
	defaultLockTTL         = 30 * time.Second
)

// Provider é o servidor OAuth da plataforma de anúncios
type Provider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// Locker serializa o refresh de uma mesma conexão. Opcional.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}

type Manager interface {
	AuthorizationURL(ownerID int) (string, error)
	ParseState(state string) (int, error)
	ExchangeCode(ctx context.Context, code string) (*domain.TokenSet, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenSet, error)
	// ValidAccessToken devolve o token gravado enquanto expiry > now. Caso contrário
	// faz exatamente um refresh e grava token e expiry antes de devolver.
	ValidAccessToken(ctx context.Context, conn *domain.Connection) (string, error)
}

type Service struct {
	provider        Provider
	connRepo        repository.ConnectionRepository
	locker          Locker
	policy          retry.Policy
	stateSecret     []byte
	stateTTL        time.Duration
	exchangeTimeout time.Duration
	lockTTL         time.Duration
	now             func() time.Time
}

func NewService(cfg *config.Config, provider Provider, connRepo repository.ConnectionRepository, locker Locker) Manager {
	service := &Service{
		provider:        provider,
		connRepo:        connRepo,
		locker:          locker,
		stateSecret:     []byte(cfg.Auth.Secret),
		stateTTL:        cfg.OAuth.StateTTL,
		exchangeTimeout: cfg.OAuth.ExchangeTimeout,
		lockTTL:         cfg.Redis.LockTTL,
		now:             time.Now,
		policy: retry.Policy{
			MaxAttempts: cfg.Retry.MaxAttempts,
			BaseDelay:   cfg.Retry.BaseDelay,
			MaxDelay:    cfg.Retry.MaxDelay,
		},
	}

	if service.stateTTL <= 0 {
		service.stateTTL = defaultStateTTL
	}
	if service.exchangeTimeout <= 0 {
		service.exchangeTimeout = defaultExchangeTimeout
	}
	if service.lockTTL <= 0 {
		service.lockTTL = defaultLockTTL
	}

	return service
}

func (s *Service) AuthorizationURL(ownerID int) (string, error) {
	state, err := s.newState(ownerID)
	if err != nil {
		return "", err
	}
	return s.provider.AuthCodeURL(state), nil
}

// tokenPolicy repete só falhas de transporte; invalid_grant nunca é repetido
func (s *Service) tokenPolicy(operation string) retry.Policy {
	return s.policy.
		Named(operation).
		WithPredicate(retry.Unless(retry.IsTransient, IsProviderRejection))
}

func (s *Service) callProvider(ctx context.Context, operation string, call func(ctx context.Context) (*oauth2.Token, error)) (*oauth2.Token, error) {
	token, err := retry.Do(ctx, s.tokenPolicy(operation), func(ctx context.Context) (*oauth2.Token, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, s.exchangeTimeout)
		defer cancel()

		return call(attemptCtx)
	})
	if err != nil {
		if IsProviderRejection(err) {
			return nil, NewCredentialError(ErrProviderDenied, apiErrors.ErrProviderDenied, err.Error())
		}
		return nil, NewCredentialError(ErrProviderUnavailable, apiErrors.ErrExternalService, err.Error())
	}

	return token, nil
}

func (s *Service) ExchangeCode(ctx context.Context, code string) (*domain.TokenSet, error) {
	if code == "" {
		return nil, NewCredentialError(ErrProviderDenied, apiErrors.ErrMissingRequiredData, "código de autorização ausente")
	}

	token, err := s.callProvider(ctx, "oauth.exchange", func(ctx context.Context) (*oauth2.Token, error) {
		return s.provider.Exchange(ctx, code)
	})
	if err != nil {
		logrus.WithField("error", err.Error()).Error("credentials: code exchange failed")
		return nil, err
	}

	if token.RefreshToken == "" {
		logrus.Warn("credentials: exchange returned no refresh token")
		return nil, NewCredentialError(ErrMissingRefreshToken, apiErrors.ErrMissingRefreshToken, "")
	}

	return toTokenSet(token), nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (*domain.TokenSet, error) {
	if refreshToken == "" {
		return nil, NewCredentialError(ErrMissingRefreshToken, apiErrors.ErrMissingRefreshToken, "")
	}

	token, err := s.callProvider(ctx, "oauth.refresh", func(ctx context.Context) (*oauth2.Token, error) {
		return s.provider.Refresh(ctx, refreshToken)
	})
	if err != nil {
		return nil, err
	}

	return toTokenSet(token), nil
}

func (s *Service) ValidAccessToken(ctx context.Context, conn *domain.Connection) (string, error) {
	if conn == nil {
		return "", errors.New("connection is required")
	}

	if conn.TokenValid(s.now()) {
		return conn.AccessToken, nil
	}

	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, "connection:"+conn.ID, s.lockTTL)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"connection_id": conn.ID,
				"error":         err.Error(),
			}).Warn("credentials: refresh lock unavailable, refreshing without it")
		} else {
			defer release()

			current, err := s.connRepo.GetByID(ctx, conn.ID)
			if err == nil && current != nil && current.TokenValid(s.now()) {
				logrus.WithField("connection_id", conn.ID).Debug("credentials: token already renewed by another caller")
				applyTokens(conn, domain.TokenSet{
					AccessToken:  current.AccessToken,
					RefreshToken: current.RefreshToken,
					Expiry:       current.TokenExpiry,
					Scope:        current.Scope,
				})
				return conn.AccessToken, nil
			}
		}
	}

	return s.refreshConnection(ctx, conn)
}

func (s *Service) refreshConnection(ctx context.Context, conn *domain.Connection) (string, error) {
	tokens, err := s.Refresh(ctx, conn.RefreshToken)
	if err != nil {
		message := err.Error()
		if statusErr := s.connRepo.UpdateStatus(ctx, conn.ID, domain.ConnectionStatusError, &message); statusErr != nil {
			logrus.WithFields(logrus.Fields{
				"connection_id": conn.ID,
				"error":         statusErr.Error(),
			}).Error("credentials: failed to mark connection as error")
		}

		logrus.WithFields(logrus.Fields{
			"connection_id": conn.ID,
			"account_id":    conn.ExternalAccountID,
			"error":         message,
		}).Error("credentials: token refresh failed")

		var credentialErr *CredentialError
		if errors.As(err, &credentialErr) {
			credentialErr.ConnectionID = conn.ID
		}
		return "", err
	}

	if err := s.connRepo.UpdateTokens(ctx, conn.ID, *tokens); err != nil {
		return "", NewConnectionCredentialError(ErrTokenPersistence, apiErrors.ErrDatabaseOperation, conn.ID, err.Error())
	}

	applyTokens(conn, *tokens)
	conn.Status = domain.ConnectionStatusActive

	logrus.WithFields(logrus.Fields{
		"connection_id": conn.ID,
		"account_id":    conn.ExternalAccountID,
		"expiry":        tokens.Expiry.Format(time.RFC3339),
	}).Info("credentials: token refreshed")

	return conn.AccessToken, nil
}

func applyTokens(conn *domain.Connection, tokens domain.TokenSet) {
	conn.AccessToken = tokens.AccessToken
	conn.TokenExpiry = tokens.Expiry
	if tokens.RefreshToken != "" {
		conn.RefreshToken = tokens.RefreshToken
	}
	if tokens.Scope != "" {
		conn.Scope = tokens.Scope
	}
}

func toTokenSet(token *oauth2.Token) *domain.TokenSet {
	tokens := &domain.TokenSet{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}
	if scope, ok := token.Extra("scope").(string); ok {
		tokens.Scope = scope
	}
	return tokens
}
