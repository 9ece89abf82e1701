package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adsync-api/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestAuditRepository_Insert(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewAuditRepository(conn)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO audit_log") + ".*" + regexp.QuoteMeta("RETURNING id, created_at")).
		WithArgs(42, "1234567890", "connect_account", nil, nil, nil, `{"status":"active"}`, true, nil, "10.0.0.1", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(99, now))

	entry := &domain.AuditEntry{
		UserID:            42,
		ExternalAccountID: strPtr("1234567890"),
		Action:            domain.AuditActionConnectAccount,
		After:             []byte(`{"status":"active"}`),
		Success:           true,
		IPAddress:         strPtr("10.0.0.1"),
	}

	err := repo.Insert(context.Background(), entry)

	require.NoError(t, err)
	assert.Equal(t, int64(99), entry.ID)
	assert.Equal(t, now, entry.CreatedAt)
}

func TestAuditRepository_InsertDatabaseError(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewAuditRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO audit_log")).
		WillReturnError(&pq.Error{Code: "23502", Message: "null value in column"})

	err := repo.Insert(context.Background(), &domain.AuditEntry{UserID: 1, Action: domain.AuditActionEraseUser})

	require.Error(t, err)
	var pqErr *pq.Error
	assert.True(t, errors.As(err, &pqErr))
	assert.Contains(t, err.Error(), "code: 23502")
}

func TestAuditRepository_ListFailuresForUser(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewAuditRepository(conn)

	userID := 42
	newer := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM audit_log WHERE user_id = $1 AND success = $2 ORDER BY created_at DESC, id DESC LIMIT")).
		WithArgs(42, false).
		WillReturnRows(sqlmock.NewRows(auditColumns).
			AddRow(2, 42, "1234567890", "refresh_token", nil, nil, nil, nil, false, "invalid_grant", nil, nil, newer).
			AddRow(1, 42, nil, "authorize", nil, nil, nil, nil, false, "state expired", nil, nil, older))

	entries, err := repo.List(context.Background(), domain.AuditFilter{UserID: &userID, OnlyFailures: true})

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[0].ID)
	assert.Equal(t, domain.AuditActionRefreshToken, entries[0].Action)
	assert.False(t, entries[0].Success)
	require.NotNil(t, entries[0].ErrorMessage)
	assert.Equal(t, "invalid_grant", *entries[0].ErrorMessage)
	assert.Nil(t, entries[1].ExternalAccountID)
	assert.True(t, entries[0].CreatedAt.After(entries[1].CreatedAt))
}

func TestAuditRepository_DeleteOlderThan(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewAuditRepository(conn)

	cutoff := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM audit_log WHERE created_at < $1")).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 5))

	deleted, err := repo.DeleteOlderThan(context.Background(), cutoff)

	require.NoError(t, err)
	assert.Equal(t, int64(5), deleted)
}
