package repository

//go:generate mockgen -source=audit.go -destination=mocks/audit_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/adsync-api/infrastructure/database/postgres"
	"github.com/vfg2006/adsync-api/internal/domain"
)

const auditTable = "audit_log"

var auditColumns = []string{
	"id",
	"user_id",
	"external_account_id",
	"action",
	"resource_type",
	"resource_id",
	"before_data",
	"after_data",
	"success",
	"error_message",
	"ip_address",
	"user_agent",
	"created_at",
}

type AuditRepository interface {
	// Insert preenche ID e CreatedAt da entrada
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	// List ordena do mais recente para o mais antigo
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEntry, error)
	DeleteByUser(ctx context.Context, userID int) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type auditRepository struct {
	conn postgres.Queryer
}

func NewAuditRepository(conn postgres.Queryer) AuditRepository {
	return &auditRepository{
		conn: conn,
	}
}

func jsonbValue(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

func (r *auditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	query, args, err := squirrel.
		Insert(auditTable).
		Columns(
			"user_id",
			"external_account_id",
			"action",
			"resource_type",
			"resource_id",
			"before_data",
			"after_data",
			"success",
			"error_message",
			"ip_address",
			"user_agent",
		).
		Values(
			entry.UserID,
			entry.ExternalAccountID,
			entry.Action,
			entry.ResourceType,
			entry.ResourceID,
			jsonbValue(entry.Before),
			jsonbValue(entry.After),
			entry.Success,
			entry.ErrorMessage,
			entry.IPAddress,
			entry.UserAgent,
		).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return dbError(err, "insert audit entry")
	}

	return nil
}

func (r *auditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEntry, error) {
	filter = filter.Normalize()

	builder := squirrel.
		Select(auditColumns...).
		From(auditTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		PlaceholderFormat(squirrel.Dollar)

	if filter.UserID != nil {
		builder = builder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.ExternalAccountID != nil {
		builder = builder.Where(squirrel.Eq{"external_account_id": *filter.ExternalAccountID})
	}
	if filter.Action != nil {
		builder = builder.Where(squirrel.Eq{"action": *filter.Action})
	}
	if filter.ResourceType != nil {
		builder = builder.Where(squirrel.Eq{"resource_type": *filter.ResourceType})
	}
	if filter.ResourceID != nil {
		builder = builder.Where(squirrel.Eq{"resource_id": *filter.ResourceID})
	}
	if filter.OnlyFailures {
		builder = builder.Where(squirrel.Eq{"success": false})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "list audit entries")
	}
	defer rows.Close()

	entries := make([]*domain.AuditEntry, 0)
	for rows.Next() {
		entry, err := scanAuditEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *auditRepository) DeleteByUser(ctx context.Context, userID int) (int64, error) {
	return r.delete(ctx, squirrel.Eq{"user_id": userID})
}

func (r *auditRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.delete(ctx, squirrel.Lt{"created_at": cutoff})
}

func (r *auditRepository) delete(ctx context.Context, condition squirrel.Sqlizer) (int64, error) {
	query, args, err := squirrel.
		Delete(auditTable).
		Where(condition).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, dbError(err, "delete audit entries")
	}

	return result.RowsAffected()
}

func scanAuditEntry(row rowScanner) (*domain.AuditEntry, error) {
	entry := &domain.AuditEntry{}

	var (
		externalAccountID sql.NullString
		resourceType      sql.NullString
		resourceID        sql.NullString
		before            []byte
		after             []byte
		errorMessage      sql.NullString
		ipAddress         sql.NullString
		userAgent         sql.NullString
	)

	if err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&externalAccountID,
		&entry.Action,
		&resourceType,
		&resourceID,
		&before,
		&after,
		&entry.Success,
		&errorMessage,
		&ipAddress,
		&userAgent,
		&entry.CreatedAt,
	); err != nil {
		return nil, err
	}

	entry.ExternalAccountID = nullableString(externalAccountID)
	entry.ResourceType = nullableString(resourceType)
	entry.ResourceID = nullableString(resourceID)
	entry.ErrorMessage = nullableString(errorMessage)
	entry.IPAddress = nullableString(ipAddress)
	entry.UserAgent = nullableString(userAgent)
	entry.Before = before
	entry.After = after

	return entry, nil
}

func nullableString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}
