package integration

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/internal/domain"
)

func (s *Service) Audit(ctx context.Context, entry domain.AuditEntry) (*domain.AuditEntry, error) {
	return s.audit.Record(ctx, entry)
}

// ListAudit sempre filtra pelo usuário que pediu, qualquer que seja o filtro recebido
func (s *Service) ListAudit(ctx context.Context, userID int, filter domain.AuditFilter) ([]*domain.AuditEntry, error) {
	filter.UserID = &userID
	return s.audit.List(ctx, filter)
}

// record grava a auditoria sem afetar a operação auditada
func (s *Service) record(ctx context.Context, meta domain.RequestMeta, entry domain.AuditEntry) {
	if meta.IPAddress != "" {
		entry.IPAddress = stringPtr(meta.IPAddress)
	}
	if meta.UserAgent != "" {
		entry.UserAgent = stringPtr(meta.UserAgent)
	}

	if _, err := s.audit.Record(ctx, entry); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": entry.UserID,
			"action":  entry.Action,
			"error":   err.Error(),
		}).Warn("integration: failed to record audit entry")
	}
}

func newEntry(userID int, externalAccountID string, action domain.AuditAction, err error) domain.AuditEntry {
	entry := domain.AuditEntry{
		UserID:  userID,
		Action:  action,
		Success: err == nil,
	}
	if externalAccountID != "" {
		entry.ExternalAccountID = stringPtr(externalAccountID)
	}
	if err != nil {
		entry.ErrorMessage = stringPtr(err.Error())
	}
	return entry
}

func marshalPayload(value interface{}) []byte {
	payload, err := json.Marshal(value)
	if err != nil {
		logrus.WithField("error", err.Error()).Warn("integration: failed to encode audit payload")
		return nil
	}
	return payload
}

func stringPtr(value string) *string {
	return &value
}
