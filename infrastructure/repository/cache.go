package repository

//go:generate mockgen -source=cache.go -destination=mocks/cache_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/adsync-api/infrastructure/database/postgres"
	"github.com/vfg2006/adsync-api/internal/domain"
)

type CacheRepository interface {
	// Get ignora entradas com expires_at <= now
	Get(ctx context.Context, key domain.CacheKey, now time.Time) (*domain.CacheEntry, error)
	// Insert não sobrescreve uma entrada ainda válida; devolve false nesse caso
	Insert(ctx context.Context, entry *domain.CacheEntry) (bool, error)
	DeleteByAccount(ctx context.Context, resource domain.ResourceType, externalAccountID string) (int64, error)
	DeleteExpired(ctx context.Context, resource domain.ResourceType, now time.Time) (int64, error)
}

type cacheRepository struct {
	conn postgres.Queryer
}

func NewCacheRepository(conn postgres.Queryer) CacheRepository {
	return &cacheRepository{
		conn: conn,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key domain.CacheKey, now time.Time) (*domain.CacheEntry, error) {
	table, err := cacheTable(key.Resource)
	if err != nil {
		return nil, err
	}

	query, args, err := squirrel.
		Select("payload", "created_at", "expires_at").
		From(table).
		Where(squirrel.Eq{"external_account_id": key.ExternalAccountID}).
		Where(squirrel.Eq{"range_key": key.Range.Key()}).
		Where(squirrel.Gt{"expires_at": now}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	entry := &domain.CacheEntry{Key: key}

	var payload []byte
	err = r.conn.QueryRow(ctx, query, args...).Scan(&payload, &entry.CreatedAt, &entry.ExpiresAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, dbError(err, fmt.Sprintf("get %s cache", key.Resource))
	}

	entry.Payload = payload

	return entry, nil
}

func (r *cacheRepository) Insert(ctx context.Context, entry *domain.CacheEntry) (bool, error) {
	table, err := cacheTable(entry.Key.Resource)
	if err != nil {
		return false, err
	}

	var rangeStart, rangeEnd *time.Time
	if entry.Key.Range != nil {
		rangeStart, rangeEnd = &entry.Key.Range.Start, &entry.Key.Range.End
	}

	// Uma linha vencida com a mesma chave é substituída; uma válida permanece (primeiro a gravar vence)
	query, args, err := squirrel.
		Insert(table+" AS t").
		Columns("external_account_id", "range_key", "range_start", "range_end", "payload", "created_at", "expires_at").
		Values(
			entry.Key.ExternalAccountID,
			entry.Key.Range.Key(),
			rangeStart,
			rangeEnd,
			string(entry.Payload),
			entry.CreatedAt,
			entry.ExpiresAt,
		).
		Suffix(`
			ON CONFLICT (external_account_id, range_key) DO UPDATE SET
				range_start = EXCLUDED.range_start,
				range_end = EXCLUDED.range_end,
				payload = EXCLUDED.payload,
				created_at = EXCLUDED.created_at,
				expires_at = EXCLUDED.expires_at
			WHERE t.expires_at <= EXCLUDED.created_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return false, dbError(err, fmt.Sprintf("insert %s cache", entry.Key.Resource))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *cacheRepository) DeleteByAccount(ctx context.Context, resource domain.ResourceType, externalAccountID string) (int64, error) {
	return r.delete(ctx, resource, squirrel.Eq{"external_account_id": externalAccountID})
}

func (r *cacheRepository) DeleteExpired(ctx context.Context, resource domain.ResourceType, now time.Time) (int64, error) {
	return r.delete(ctx, resource, squirrel.LtOrEq{"expires_at": now})
}

func (r *cacheRepository) delete(ctx context.Context, resource domain.ResourceType, condition squirrel.Sqlizer) (int64, error) {
	table, err := cacheTable(resource)
	if err != nil {
		return 0, err
	}

	query, args, err := squirrel.
		Delete(table).
		Where(condition).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, dbError(err, fmt.Sprintf("delete %s cache", resource))
	}

	return result.RowsAffected()
}
