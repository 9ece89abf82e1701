package repository

//go:generate mockgen -source=connection.go -destination=mocks/connection_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/adsync-api/infrastructure/database/postgres"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/pkg/crypto"
)

const connectionsTable = "ad_connections"

var connectionColumns = []string{
	"id",
	"user_id",
	"external_account_id",
	"account_name",
	"access_token",
	"refresh_token",
	"token_expiry",
	"scope",
	"status",
	"last_sync_at",
	"last_sync_error",
	"created_at",
	"updated_at",
}

type ConnectionRepository interface {
	// Create devolve false quando a conexão (usuário, conta) já existe
	Create(ctx context.Context, conn *domain.Connection) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.Connection, error)
	GetByUserAndAccount(ctx context.Context, userID int, externalAccountID string) (*domain.Connection, error)
	ListByUser(ctx context.Context, userID int) ([]*domain.Connection, error)
	UpdateTokens(ctx context.Context, id string, tokens domain.TokenSet) error
	UpdateStatus(ctx context.Context, id string, status domain.ConnectionStatus, statusErr *string) error
	UpdateSyncResult(ctx context.Context, id string, syncedAt time.Time, syncErr *string) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID int) (int64, error)
	CountByExternalAccount(ctx context.Context, externalAccountID string) (int, error)
}

type connectionRepository struct {
	conn   postgres.Queryer
	cipher *crypto.TokenCipher
}

// NewConnectionRepository grava os tokens cifrados quando cipher não é nil
func NewConnectionRepository(conn postgres.Queryer, cipher *crypto.TokenCipher) ConnectionRepository {
	return &connectionRepository{
		conn:   conn,
		cipher: cipher,
	}
}

func (r *connectionRepository) Create(ctx context.Context, conn *domain.Connection) (bool, error) {
	accessToken, err := r.cipher.Encrypt(conn.AccessToken)
	if err != nil {
		return false, err
	}

	refreshToken, err := r.cipher.Encrypt(conn.RefreshToken)
	if err != nil {
		return false, err
	}

	if conn.Status == "" {
		conn.Status = domain.ConnectionStatusActive
	}

	query, args, err := squirrel.
		Insert(connectionsTable).
		Columns("id", "user_id", "external_account_id", "account_name", "access_token", "refresh_token", "token_expiry", "scope", "status").
		Values(conn.ID, conn.UserID, conn.ExternalAccountID, conn.AccountName, accessToken, refreshToken, conn.TokenExpiry, conn.Scope, conn.Status).
		Suffix("ON CONFLICT (user_id, external_account_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return false, dbError(err, "create connection")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *connectionRepository) GetByID(ctx context.Context, id string) (*domain.Connection, error) {
	return r.get(ctx, squirrel.Eq{"id": id})
}

func (r *connectionRepository) GetByUserAndAccount(ctx context.Context, userID int, externalAccountID string) (*domain.Connection, error) {
	return r.get(ctx, squirrel.Eq{"user_id": userID}, squirrel.Eq{"external_account_id": externalAccountID})
}

func (r *connectionRepository) get(ctx context.Context, conditions ...squirrel.Sqlizer) (*domain.Connection, error) {
	builder := squirrel.
		Select(connectionColumns...).
		From(connectionsTable).
		PlaceholderFormat(squirrel.Dollar)

	for _, condition := range conditions {
		builder = builder.Where(condition)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	conn, err := r.scanConnection(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, dbError(err, "get connection")
	}

	return conn, nil
}

func (r *connectionRepository) ListByUser(ctx context.Context, userID int) ([]*domain.Connection, error) {
	query, args, err := squirrel.
		Select(connectionColumns...).
		From(connectionsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "list connections")
	}
	defer rows.Close()

	connections := make([]*domain.Connection, 0)
	for rows.Next() {
		conn, err := r.scanConnection(rows)
		if err != nil {
			return nil, err
		}
		connections = append(connections, conn)
	}

	return connections, rows.Err()
}

// UpdateTokens mantém o refresh token atual quando o provedor não emitiu um novo
func (r *connectionRepository) UpdateTokens(ctx context.Context, id string, tokens domain.TokenSet) error {
	accessToken, err := r.cipher.Encrypt(tokens.AccessToken)
	if err != nil {
		return err
	}

	builder := squirrel.
		Update(connectionsTable).
		Set("access_token", accessToken).
		Set("token_expiry", tokens.Expiry).
		Set("status", domain.ConnectionStatusActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	if tokens.RefreshToken != "" {
		refreshToken, err := r.cipher.Encrypt(tokens.RefreshToken)
		if err != nil {
			return err
		}
		builder = builder.Set("refresh_token", refreshToken)
	}

	if tokens.Scope != "" {
		builder = builder.Set("scope", tokens.Scope)
	}

	return r.exec(ctx, builder, "update connection tokens")
}

func (r *connectionRepository) UpdateStatus(ctx context.Context, id string, status domain.ConnectionStatus, statusErr *string) error {
	builder := squirrel.
		Update(connectionsTable).
		Set("status", status).
		Set("last_sync_error", statusErr).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	return r.exec(ctx, builder, "update connection status")
}

func (r *connectionRepository) UpdateSyncResult(ctx context.Context, id string, syncedAt time.Time, syncErr *string) error {
	builder := squirrel.
		Update(connectionsTable).
		Set("last_sync_at", syncedAt).
		Set("last_sync_error", syncErr).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	return r.exec(ctx, builder, "update connection sync result")
}

func (r *connectionRepository) exec(ctx context.Context, builder squirrel.UpdateBuilder, operation string) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return dbError(err, operation)
	}

	return nil
}

func (r *connectionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.delete(ctx, squirrel.Eq{"id": id})
	return err
}

func (r *connectionRepository) DeleteByUser(ctx context.Context, userID int) (int64, error) {
	return r.delete(ctx, squirrel.Eq{"user_id": userID})
}

func (r *connectionRepository) delete(ctx context.Context, condition squirrel.Sqlizer) (int64, error) {
	query, args, err := squirrel.
		Delete(connectionsTable).
		Where(condition).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, dbError(err, "delete connection")
	}

	return result.RowsAffected()
}

func (r *connectionRepository) CountByExternalAccount(ctx context.Context, externalAccountID string) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(connectionsTable).
		Where(squirrel.Eq{"external_account_id": externalAccountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, dbError(err, "count connections")
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *connectionRepository) scanConnection(row rowScanner) (*domain.Connection, error) {
	conn := &domain.Connection{}

	var (
		accountName   sql.NullString
		lastSyncAt    sql.NullTime
		lastSyncError sql.NullString
		accessToken   string
		refreshToken  string
	)

	if err := row.Scan(
		&conn.ID,
		&conn.UserID,
		&conn.ExternalAccountID,
		&accountName,
		&accessToken,
		&refreshToken,
		&conn.TokenExpiry,
		&conn.Scope,
		&conn.Status,
		&lastSyncAt,
		&lastSyncError,
		&conn.CreatedAt,
		&conn.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if accountName.Valid {
		conn.AccountName = &accountName.String
	}
	if lastSyncAt.Valid {
		conn.LastSyncAt = &lastSyncAt.Time
	}
	if lastSyncError.Valid {
		conn.LastSyncError = &lastSyncError.String
	}

	var err error
	if conn.AccessToken, err = r.cipher.Decrypt(accessToken); err != nil {
		return nil, err
	}
	if conn.RefreshToken, err = r.cipher.Decrypt(refreshToken); err != nil {
		return nil, err
	}

	return conn, nil
}
