package auditing

//go:generate mockgen -source=service.go -destination=mocks/auditing_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/infrastructure/repository"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
)

const DefaultRetentionDays = 90

type Log interface {
	Record(ctx context.Context, entry domain.AuditEntry) (*domain.AuditEntry, error)
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEntry, error)
	ListByUser(ctx context.Context, userID, page, pageSize int) ([]*domain.AuditEntry, error)
	ListByAccount(ctx context.Context, externalAccountID string, limit int) ([]*domain.AuditEntry, error)
	ListByAction(ctx context.Context, action domain.AuditAction, limit int) ([]*domain.AuditEntry, error)
	ListByResource(ctx context.Context, resourceType, resourceID string, limit int) ([]*domain.AuditEntry, error)
	ListFailures(ctx context.Context, userID *int, limit int) ([]*domain.AuditEntry, error)
	EraseUser(ctx context.Context, userID int) (int64, error)
	Cleanup(ctx context.Context) (int64, error)
}

type Service struct {
	repo          repository.AuditRepository
	retentionDays int
	now           func() time.Time
}

func NewService(cfg *config.Config, repo repository.AuditRepository) Log {
	retention := cfg.Audit.RetentionDays
	if retention <= 0 {
		retention = DefaultRetentionDays
	}

	return &Service{
		repo:          repo,
		retentionDays: retention,
		now:           time.Now,
	}
}

// Record grava a entrada e devolve a versão persistida, com id e data
func (s *Service) Record(ctx context.Context, entry domain.AuditEntry) (*domain.AuditEntry, error) {
	if entry.UserID <= 0 {
		return nil, NewAuditError(ErrMissingUser, apiErrors.ErrMissingRequiredData, entry.UserID, string(entry.Action))
	}
	if entry.Action == "" {
		return nil, NewAuditError(ErrMissingAction, apiErrors.ErrMissingRequiredData, entry.UserID, "")
	}

	if err := s.repo.Insert(ctx, &entry); err != nil {
		return nil, NewAuditError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, entry.UserID, err.Error())
	}

	return &entry, nil
}

func (s *Service) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEntry, error) {
	entries, err := s.repo.List(ctx, filter.Normalize())
	if err != nil {
		userID := 0
		if filter.UserID != nil {
			userID = *filter.UserID
		}
		return nil, NewAuditError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, err.Error())
	}

	return entries, nil
}

// ListByUser pagina a partir de 1
func (s *Service) ListByUser(ctx context.Context, userID, page, pageSize int) ([]*domain.AuditEntry, error) {
	if page < 1 {
		page = 1
	}

	filter := domain.AuditFilter{UserID: &userID, Limit: pageSize}.Normalize()
	filter.Offset = (page - 1) * filter.Limit

	return s.List(ctx, filter)
}

func (s *Service) ListByAccount(ctx context.Context, externalAccountID string, limit int) ([]*domain.AuditEntry, error) {
	return s.List(ctx, domain.AuditFilter{ExternalAccountID: &externalAccountID, Limit: limit})
}

func (s *Service) ListByAction(ctx context.Context, action domain.AuditAction, limit int) ([]*domain.AuditEntry, error) {
	return s.List(ctx, domain.AuditFilter{Action: &action, Limit: limit})
}

func (s *Service) ListByResource(ctx context.Context, resourceType, resourceID string, limit int) ([]*domain.AuditEntry, error) {
	return s.List(ctx, domain.AuditFilter{ResourceType: &resourceType, ResourceID: &resourceID, Limit: limit})
}

func (s *Service) ListFailures(ctx context.Context, userID *int, limit int) ([]*domain.AuditEntry, error) {
	return s.List(ctx, domain.AuditFilter{UserID: userID, OnlyFailures: true, Limit: limit})
}

func (s *Service) EraseUser(ctx context.Context, userID int) (int64, error) {
	deleted, err := s.repo.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, NewAuditError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, err.Error())
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"deleted": deleted,
	}).Info("audit: user entries erased")

	return deleted, nil
}

func (s *Service) Cleanup(ctx context.Context) (int64, error) {
	cutoff := s.now().AddDate(0, 0, -s.retentionDays)

	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, NewAuditError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, 0, err.Error())
	}

	logrus.WithFields(logrus.Fields{
		"cutoff":  cutoff.Format(time.RFC3339),
		"deleted": deleted,
	}).Info("audit: cleanup finished")

	return deleted, nil
}
