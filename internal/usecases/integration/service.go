package integration

//go:generate mockgen -source=service.go -destination=mocks/integration_mock.go -package=mocks

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/infrastructure/integrator/googleads"
	"github.com/vfg2006/adsync-api/infrastructure/repository"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/internal/usecases/auditing"
	"github.com/vfg2006/adsync-api/internal/usecases/caching"
	"github.com/vfg2006/adsync-api/internal/usecases/credentialing"
	"github.com/vfg2006/adsync-api/internal/usecases/ownership"
	"github.com/vfg2006/adsync-api/internal/usecases/snapshotting"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
	"github.com/vfg2006/adsync-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Integrator é a superfície usada pela API. Toda operação recebe usuário e conta
// explicitamente; a posse da conta é verificada antes de qualquer acesso.
type Integrator interface {
	SubmitAuthorization(ownerID int) (string, error)
	CompleteAuthorization(ctx context.Context, code, state string, meta domain.RequestMeta) (*domain.AuthorizationResult, error)
	ConnectAccounts(ctx context.Context, ownerID int, tokens domain.TokenSet, accountIDs []string, meta domain.RequestMeta) *domain.ConnectBatchResult
	EnsureFreshToken(ctx context.Context, conn *domain.Connection) (string, error)
	AssertOwnership(ctx context.Context, userID int, externalAccountID string) error
	ListConnections(ctx context.Context, userID int) ([]*domain.Connection, error)

	Campaigns(ctx context.Context, userID int, externalAccountID string, dr *domain.DateRange) ([]domain.Campaign, bool, error)
	AdGroups(ctx context.Context, userID int, externalAccountID string, dr *domain.DateRange) ([]domain.AdGroup, bool, error)
	Keywords(ctx context.Context, userID int, externalAccountID string, dr *domain.DateRange) ([]domain.Keyword, bool, error)
	DailyMetrics(ctx context.Context, userID int, externalAccountID string, dr *domain.DateRange) ([]domain.DailyMetric, bool, error)
	Recommendations(ctx context.Context, userID int, externalAccountID string) ([]domain.Recommendation, bool, error)
	GeoPerformance(ctx context.Context, userID int, externalAccountID string, dr *domain.DateRange) ([]domain.GeoPerformance, bool, error)
	Resource(ctx context.Context, userID int, externalAccountID string, resource domain.ResourceType, dr *domain.DateRange) (interface{}, bool, error)

	RefreshAccount(ctx context.Context, userID int, externalAccountID string, meta domain.RequestMeta) (domain.InvalidationReport, error)
	InvalidateAll(ctx context.Context) domain.InvalidationReport
	Disconnect(ctx context.Context, userID int, externalAccountID string, meta domain.RequestMeta) error
	RemoveAccount(ctx context.Context, userID int, externalAccountID string, meta domain.RequestMeta) error
	EraseUser(ctx context.Context, userID int, meta domain.RequestMeta) error

	RecordSnapshot(ctx context.Context, userID int, externalAccountID string, date time.Time, meta domain.RequestMeta) (*domain.Snapshot, error)
	QuerySnapshots(ctx context.Context, userID int, externalAccountID string, dr *domain.DateRange) ([]*domain.Snapshot, error)
	LatestSnapshot(ctx context.Context, userID int, externalAccountID string) (*domain.Snapshot, error)
	CompareSnapshots(ctx context.Context, userID int, externalAccountID string, current, previous time.Time) (*domain.SnapshotComparison, error)
	Trend(ctx context.Context, userID int, externalAccountID string, period1, period2 domain.DateRange) (*domain.TrendReport, error)

	Audit(ctx context.Context, entry domain.AuditEntry) (*domain.AuditEntry, error)
	ListAudit(ctx context.Context, userID int, filter domain.AuditFilter) ([]*domain.AuditEntry, error)
}

type Service struct {
	credentials credentialing.Manager
	guard       ownership.Guard
	cache       caching.Cache
	snapshots   snapshotting.Store
	audit       auditing.Log
	ads         googleads.Integrator
	connRepo    repository.ConnectionRepository
	now         func() time.Time
}

func NewService(
	credentials credentialing.Manager,
	guard ownership.Guard,
	cache caching.Cache,
	snapshots snapshotting.Store,
	audit auditing.Log,
	ads googleads.Integrator,
	connRepo repository.ConnectionRepository,
) Integrator {
	return &Service{
		credentials: credentials,
		guard:       guard,
		cache:       cache,
		snapshots:   snapshots,
		audit:       audit,
		ads:         ads,
		connRepo:    connRepo,
		now:         time.Now,
	}
}

func (s *Service) SubmitAuthorization(ownerID int) (string, error) {
	if ownerID <= 0 {
		return "", NewIntegrationError(credentialing.ErrInvalidState, apiErrors.ErrMissingRequiredData, "", "usuário ausente")
	}
	return s.credentials.AuthorizationURL(ownerID)
}

// CompleteAuthorization troca o código, lista as contas acessíveis com o token novo
// e conecta cada uma delas ao dono do state.
func (s *Service) CompleteAuthorization(ctx context.Context, code, state string, meta domain.RequestMeta) (*domain.AuthorizationResult, error) {
	ownerID, err := s.credentials.ParseState(state)
	if err != nil {
		logrus.WithField("error", err.Error()).Warn("integration: rejected authorization callback")
		return nil, err
	}

	tokens, err := s.credentials.ExchangeCode(ctx, code)
	if err != nil {
		s.record(ctx, meta, newEntry(ownerID, "", domain.AuditActionAuthorize, err))
		return nil, err
	}

	accountIDs, err := s.ads.ListAccessibleCustomers(ctx, tokens.AccessToken)
	if err != nil {
		s.record(ctx, meta, newEntry(ownerID, "", domain.AuditActionAuthorize, err))
		return nil, remoteError(err, "")
	}

	entry := newEntry(ownerID, "", domain.AuditActionAuthorize, nil)
	entry.After = marshalPayload(map[string]interface{}{"accounts": accountIDs})
	s.record(ctx, meta, entry)

	batch := s.ConnectAccounts(ctx, ownerID, *tokens, accountIDs, meta)

	logrus.WithFields(logrus.Fields{
		"user_id":           ownerID,
		"connected":         len(batch.Connected),
		"already_connected": len(batch.AlreadyConnected),
		"failed":            len(batch.Failed),
	}).Info("integration: authorization completed")

	return &domain.AuthorizationResult{
		OwnerID: ownerID,
		Tokens:  tokens,
		Batch:   batch,
	}, nil
}

// ConnectAccounts registra cada conta de forma independente; a falha de uma não interrompe o lote
func (s *Service) ConnectAccounts(ctx context.Context, ownerID int, tokens domain.TokenSet, accountIDs []string, meta domain.RequestMeta) *domain.ConnectBatchResult {
	batch := domain.NewConnectBatchResult()

	for _, accountID := range accountIDs {
		result := s.connectAccount(ctx, ownerID, tokens, accountID)
		batch.Add(result)

		var failure error
		if result.Outcome == domain.ConnectOutcomeFailed {
			failure = NewIntegrationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, accountID, result.Reason)
		}

		entry := newEntry(ownerID, accountID, domain.AuditActionConnectAccount, failure)
		entry.After = marshalPayload(map[string]interface{}{"outcome": result.Outcome})
		s.record(ctx, meta, entry)
	}

	return batch
}

func (s *Service) connectAccount(ctx context.Context, ownerID int, tokens domain.TokenSet, accountID string) domain.ConnectResult {
	result := domain.ConnectResult{ExternalAccountID: accountID}

	if accountID == "" {
		result.Outcome = domain.ConnectOutcomeFailed
		result.Reason = "conta externa vazia"
		return result
	}

	id, err := utils.GenerateID()
	if err != nil {
		result.Outcome = domain.ConnectOutcomeFailed
		result.Reason = err.Error()
		return result
	}

	inserted, err := s.connRepo.Create(ctx, &domain.Connection{
		ID:                id,
		UserID:            ownerID,
		ExternalAccountID: accountID,
		AccessToken:       tokens.AccessToken,
		RefreshToken:      tokens.RefreshToken,
		TokenExpiry:       tokens.Expiry,
		Scope:             tokens.Scope,
		Status:            domain.ConnectionStatusActive,
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":    ownerID,
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("integration: failed to connect account")
		result.Outcome = domain.ConnectOutcomeFailed
		result.Reason = err.Error()
		return result
	}

	if inserted {
		result.Outcome = domain.ConnectOutcomeConnected
		return result
	}

	result.Outcome = domain.ConnectOutcomeAlreadyConnected
	s.reactivate(ctx, ownerID, accountID, tokens)

	return result
}

// reactivate grava as credenciais novas numa conexão existente que não está ativa
func (s *Service) reactivate(ctx context.Context, ownerID int, accountID string, tokens domain.TokenSet) {
	existing, err := s.connRepo.GetByUserAndAccount(ctx, ownerID, accountID)
	if err != nil || existing == nil || existing.Status == domain.ConnectionStatusActive {
		return
	}

	if err := s.connRepo.UpdateTokens(ctx, existing.ID, tokens); err != nil {
		logrus.WithFields(logrus.Fields{
			"connection_id": existing.ID,
			"error":         err.Error(),
		}).Warn("integration: failed to reactivate connection")
	}
}

// EnsureFreshToken devolve um access token válido, renovando quando expirado
func (s *Service) EnsureFreshToken(ctx context.Context, conn *domain.Connection) (string, error) {
	wasValid := conn != nil && conn.TokenValid(s.now())

	token, err := s.credentials.ValidAccessToken(ctx, conn)
	if conn != nil && !wasValid {
		s.record(ctx, domain.RequestMeta{}, newEntry(conn.UserID, conn.ExternalAccountID, domain.AuditActionRefreshToken, err))
	}

	return token, err
}

func (s *Service) AssertOwnership(ctx context.Context, userID int, externalAccountID string) error {
	_, err := s.guard.Require(ctx, userID, externalAccountID)
	return err
}

func (s *Service) ListConnections(ctx context.Context, userID int) ([]*domain.Connection, error) {
	conns, err := s.connRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewIntegrationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "", err.Error())
	}
	return conns, nil
}

// RefreshAccount descarta o cache da conta; a próxima leitura vai à plataforma
func (s *Service) RefreshAccount(ctx context.Context, userID int, externalAccountID string, meta domain.RequestMeta) (domain.InvalidationReport, error) {
	if _, err := s.guard.Require(ctx, userID, externalAccountID); err != nil {
		return domain.InvalidationReport{}, err
	}

	report := s.cache.Invalidate(ctx, externalAccountID)

	entry := newEntry(userID, externalAccountID, domain.AuditActionRefreshData, nil)
	entry.After = marshalPayload(report)
	s.record(ctx, meta, entry)

	return report, nil
}

func (s *Service) InvalidateAll(ctx context.Context) domain.InvalidationReport {
	return s.cache.Sweep(ctx)
}

// Disconnect só muda o status; tokens e snapshots são mantidos
func (s *Service) Disconnect(ctx context.Context, userID int, externalAccountID string, meta domain.RequestMeta) error {
	conn, err := s.guard.Require(ctx, userID, externalAccountID)
	if err != nil {
		return err
	}

	entry := newEntry(userID, externalAccountID, domain.AuditActionDisconnectAccount, nil)
	entry.Before = marshalPayload(map[string]interface{}{"status": conn.Status})

	if err := s.connRepo.UpdateStatus(ctx, conn.ID, domain.ConnectionStatusDisconnected, nil); err != nil {
		failure := NewIntegrationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, externalAccountID, err.Error())
		entry.Success = false
		entry.ErrorMessage = stringPtr(failure.Error())
		s.record(ctx, meta, entry)
		return failure
	}

	s.cache.Invalidate(ctx, externalAccountID)

	entry.After = marshalPayload(map[string]interface{}{"status": domain.ConnectionStatusDisconnected})
	s.record(ctx, meta, entry)

	return nil
}

// RemoveAccount apaga a conexão. Snapshots da conta só são apagados quando
// nenhum outro usuário continua conectado a ela.
func (s *Service) RemoveAccount(ctx context.Context, userID int, externalAccountID string, meta domain.RequestMeta) error {
	conn, err := s.guard.Require(ctx, userID, externalAccountID)
	if err != nil {
		return err
	}

	if err := s.connRepo.Delete(ctx, conn.ID); err != nil {
		failure := NewIntegrationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, externalAccountID, err.Error())
		s.record(ctx, meta, newEntry(userID, externalAccountID, domain.AuditActionRemoveAccount, failure))
		return failure
	}

	snapshotsDeleted := s.releaseAccount(ctx, externalAccountID)

	entry := newEntry(userID, externalAccountID, domain.AuditActionRemoveAccount, nil)
	entry.After = marshalPayload(map[string]interface{}{"snapshots_deleted": snapshotsDeleted})
	s.record(ctx, meta, entry)

	return nil
}

// releaseAccount limpa o cache da conta e, sem outras conexões, os snapshots
func (s *Service) releaseAccount(ctx context.Context, externalAccountID string) int64 {
	s.cache.Invalidate(ctx, externalAccountID)

	remaining, err := s.connRepo.CountByExternalAccount(ctx, externalAccountID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": externalAccountID,
			"error":      err.Error(),
		}).Warn("integration: could not count remaining connections, keeping snapshots")
		return 0
	}
	if remaining > 0 {
		return 0
	}

	deleted, err := s.snapshots.DeleteByAccount(ctx, externalAccountID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": externalAccountID,
			"error":      err.Error(),
		}).Warn("integration: failed to delete snapshots of removed account")
		return 0
	}

	return deleted
}

// EraseUser remove conexões e histórico de auditoria do usuário
func (s *Service) EraseUser(ctx context.Context, userID int, meta domain.RequestMeta) error {
	conns, err := s.connRepo.ListByUser(ctx, userID)
	if err != nil {
		return NewIntegrationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "", err.Error())
	}

	connectionsDeleted, err := s.connRepo.DeleteByUser(ctx, userID)
	if err != nil {
		return NewIntegrationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "", err.Error())
	}

	for _, conn := range conns {
		s.releaseAccount(ctx, conn.ExternalAccountID)
	}

	auditDeleted, err := s.audit.EraseUser(ctx, userID)
	if err != nil {
		return err
	}

	entry := newEntry(userID, "", domain.AuditActionEraseUser, nil)
	entry.After = marshalPayload(map[string]interface{}{
		"connections_deleted": connectionsDeleted,
		"audit_deleted":       auditDeleted,
	})
	s.record(ctx, meta, entry)

	logrus.WithFields(logrus.Fields{
		"user_id":             userID,
		"connections_deleted": connectionsDeleted,
		"audit_deleted":       auditDeleted,
	}).Info("integration: user erased")

	return nil
}
