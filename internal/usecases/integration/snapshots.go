package integration

import (
	"context"
	"strconv"
	"time"

	"github.com/vfg2006/adsync-api/internal/domain"
)

const snapshotResourceType = "snapshot"

// RecordSnapshot agrega as campanhas do dia informado e grava o snapshot.
// Nunca é chamado implicitamente pelas leituras.
func (s *Service) RecordSnapshot(ctx context.Context, userID int, externalAccountID string, date time.Time, meta domain.RequestMeta) (*domain.Snapshot, error) {
	if date.IsZero() {
		date = s.now()
	}
	day := domain.TruncateDay(date)

	campaigns, _, err := s.Campaigns(ctx, userID, externalAccountID, domain.NewDateRange(day, day))
	if err != nil {
		return nil, err
	}

	entry := newEntry(userID, externalAccountID, domain.AuditActionCreateSnapshot, nil)
	entry.ResourceType = stringPtr(snapshotResourceType)

	snapshot, err := s.snapshots.Create(ctx, externalAccountID, campaigns, day)
	if err != nil {
		entry.Success = false
		entry.ErrorMessage = stringPtr(err.Error())
		s.record(ctx, meta, entry)
		return nil, err
	}

	entry.ResourceID = stringPtr(strconv.FormatInt(snapshot.ID, 10))
	entry.After = marshalPayload(snapshot)
	s.record(ctx, meta, entry)

	return snapshot, nil
}

func (s *Service) QuerySnapshots(ctx context.Context, userID int, externalAccountID string, dr *domain.DateRange) ([]*domain.Snapshot, error) {
	if err := s.AssertOwnership(ctx, userID, externalAccountID); err != nil {
		return nil, err
	}
	return s.snapshots.Query(ctx, externalAccountID, dr)
}

func (s *Service) LatestSnapshot(ctx context.Context, userID int, externalAccountID string) (*domain.Snapshot, error) {
	if err := s.AssertOwnership(ctx, userID, externalAccountID); err != nil {
		return nil, err
	}
	return s.snapshots.Latest(ctx, externalAccountID)
}

func (s *Service) CompareSnapshots(ctx context.Context, userID int, externalAccountID string, current, previous time.Time) (*domain.SnapshotComparison, error) {
	if err := s.AssertOwnership(ctx, userID, externalAccountID); err != nil {
		return nil, err
	}
	return s.snapshots.Compare(ctx, externalAccountID, current, previous)
}

func (s *Service) Trend(ctx context.Context, userID int, externalAccountID string, period1, period2 domain.DateRange) (*domain.TrendReport, error) {
	if err := s.AssertOwnership(ctx, userID, externalAccountID); err != nil {
		return nil, err
	}
	return s.snapshots.Trend(ctx, externalAccountID, period1, period2)
}
