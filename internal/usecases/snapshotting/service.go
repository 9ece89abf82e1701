package snapshotting

//go:generate mockgen -source=service.go -destination=mocks/snapshotting_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/infrastructure/repository"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
)

const DefaultRetentionDays = 365

// Store guarda os agregados diários. Snapshots não expiram com o cache e só
// são removidos por Purge ou na remoção da conta.
type Store interface {
	Create(ctx context.Context, externalAccountID string, campaigns []domain.Campaign, date time.Time) (*domain.Snapshot, error)
	Query(ctx context.Context, externalAccountID string, dr *domain.DateRange) ([]*domain.Snapshot, error)
	Latest(ctx context.Context, externalAccountID string) (*domain.Snapshot, error)
	GetByDate(ctx context.Context, externalAccountID string, date time.Time) (*domain.Snapshot, error)
	Compare(ctx context.Context, externalAccountID string, current, previous time.Time) (*domain.SnapshotComparison, error)
	Trend(ctx context.Context, externalAccountID string, period1, period2 domain.DateRange) (*domain.TrendReport, error)
	Purge(ctx context.Context) (int64, error)
	DeleteByAccount(ctx context.Context, externalAccountID string) (int64, error)
}

type Service struct {
	repo          repository.SnapshotRepository
	retentionDays int
	now           func() time.Time
}

func NewService(cfg *config.Config, repo repository.SnapshotRepository) Store {
	retention := cfg.Snapshot.RetentionDays
	if retention <= 0 {
		retention = DefaultRetentionDays
	}

	return &Service{
		repo:          repo,
		retentionDays: retention,
		now:           time.Now,
	}
}

func dbError(err error, accountID string) error {
	return NewSnapshotError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, accountID, err.Error())
}

func (s *Service) Create(ctx context.Context, externalAccountID string, campaigns []domain.Campaign, date time.Time) (*domain.Snapshot, error) {
	if externalAccountID == "" {
		return nil, NewSnapshotError(ErrMissingAccount, apiErrors.ErrMissingRequiredData, "", "")
	}
	if date.IsZero() {
		date = s.now()
	}

	snapshot := domain.NewSnapshotFromCampaigns(externalAccountID, date, campaigns)

	inserted, err := s.repo.Insert(ctx, snapshot)
	if err != nil {
		return nil, dbError(err, externalAccountID)
	}

	if !inserted {
		logrus.WithFields(logrus.Fields{
			"account_id": externalAccountID,
			"date":       snapshot.Date.Format(time.DateOnly),
		}).Warn("snapshot: already recorded for date, keeping original")
		return nil, NewSnapshotError(ErrSnapshotAlreadyExists, apiErrors.ErrConflict, externalAccountID, snapshot.Date.Format(time.DateOnly))
	}

	logrus.WithFields(logrus.Fields{
		"account_id":  externalAccountID,
		"date":        snapshot.Date.Format(time.DateOnly),
		"spend":       snapshot.Spend,
		"conversions": snapshot.Conversions,
	}).Info("snapshot: recorded")

	return snapshot, nil
}

func (s *Service) Query(ctx context.Context, externalAccountID string, dr *domain.DateRange) ([]*domain.Snapshot, error) {
	query := repository.SnapshotQuery{ExternalAccountID: externalAccountID}

	if dr != nil {
		if !dr.Valid() {
			return nil, NewSnapshotError(ErrInvalidPeriod, apiErrors.ErrInvalidFormat, externalAccountID, "")
		}
		start, end := dr.Start, dr.End
		query.From = &start
		query.To = &end
	}

	snapshots, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, dbError(err, externalAccountID)
	}

	return snapshots, nil
}

func (s *Service) Latest(ctx context.Context, externalAccountID string) (*domain.Snapshot, error) {
	snapshots, err := s.repo.List(ctx, repository.SnapshotQuery{ExternalAccountID: externalAccountID, Limit: 1})
	if err != nil {
		return nil, dbError(err, externalAccountID)
	}

	if len(snapshots) == 0 {
		return nil, NewSnapshotError(ErrSnapshotNotFound, apiErrors.ErrNotFound, externalAccountID, "")
	}

	return snapshots[0], nil
}

func (s *Service) GetByDate(ctx context.Context, externalAccountID string, date time.Time) (*domain.Snapshot, error) {
	snapshot, err := s.repo.GetByDate(ctx, externalAccountID, domain.TruncateDay(date))
	if err != nil {
		return nil, dbError(err, externalAccountID)
	}

	if snapshot == nil {
		return nil, NewSnapshotError(ErrSnapshotNotFound, apiErrors.ErrNotFound, externalAccountID, date.Format(time.DateOnly))
	}

	return snapshot, nil
}

// Compare mede o snapshot de current contra o de previous
func (s *Service) Compare(ctx context.Context, externalAccountID string, current, previous time.Time) (*domain.SnapshotComparison, error) {
	currentSnapshot, err := s.GetByDate(ctx, externalAccountID, current)
	if err != nil {
		return nil, err
	}

	previousSnapshot, err := s.GetByDate(ctx, externalAccountID, previous)
	if err != nil {
		return nil, err
	}

	comparison := domain.CompareSnapshots(currentSnapshot, previousSnapshot)
	return &comparison, nil
}

// Trend agrega os dois períodos e mede period1 contra period2
func (s *Service) Trend(ctx context.Context, externalAccountID string, period1, period2 domain.DateRange) (*domain.TrendReport, error) {
	if !period1.Valid() || !period2.Valid() {
		return nil, NewSnapshotError(ErrInvalidPeriod, apiErrors.ErrInvalidFormat, externalAccountID, "")
	}

	from := period1.Start
	if period2.Start.Before(from) {
		from = period2.Start
	}
	to := period1.End
	if period2.End.After(to) {
		to = period2.End
	}

	snapshots, err := s.repo.List(ctx, repository.SnapshotQuery{
		ExternalAccountID: externalAccountID,
		From:              &from,
		To:                &to,
	})
	if err != nil {
		return nil, dbError(err, externalAccountID)
	}

	return domain.NewTrendReport(
		externalAccountID,
		domain.AggregateSnapshots(period1, snapshots),
		domain.AggregateSnapshots(period2, snapshots),
	), nil
}

// Purge apaga snapshots anteriores ao horizonte de retenção
func (s *Service) Purge(ctx context.Context) (int64, error) {
	cutoff := domain.TruncateDay(s.now()).AddDate(0, 0, -s.retentionDays)

	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, dbError(err, "")
	}

	logrus.WithFields(logrus.Fields{
		"cutoff":  cutoff.Format(time.DateOnly),
		"deleted": deleted,
	}).Info("snapshot: purge finished")

	return deleted, nil
}

func (s *Service) DeleteByAccount(ctx context.Context, externalAccountID string) (int64, error) {
	deleted, err := s.repo.DeleteByAccount(ctx, externalAccountID)
	if err != nil {
		return 0, dbError(err, externalAccountID)
	}
	return deleted, nil
}
