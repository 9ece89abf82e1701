package repository

//go:generate mockgen -source=snapshot.go -destination=mocks/snapshot_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/adsync-api/infrastructure/database/postgres"
	"github.com/vfg2006/adsync-api/internal/domain"
)

const snapshotsTable = "ad_snapshots"

var snapshotColumns = []string{
	"id",
	"external_account_id",
	"snapshot_date",
	"spend",
	"impressions",
	"clicks",
	"conversions",
	"conversion_value",
	"ctr",
	"cpa",
	"roas",
	"active_campaigns",
	"paused_campaigns",
	"created_at",
}

type SnapshotQuery struct {
	ExternalAccountID string
	From              *time.Time
	To                *time.Time
	Limit             uint64
}

type SnapshotRepository interface {
	// Insert devolve false quando já existe snapshot para (conta, data); a linha original é mantida
	Insert(ctx context.Context, snapshot *domain.Snapshot) (bool, error)
	// List ordena do mais recente para o mais antigo
	List(ctx context.Context, query SnapshotQuery) ([]*domain.Snapshot, error)
	GetByDate(ctx context.Context, externalAccountID string, date time.Time) (*domain.Snapshot, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteByAccount(ctx context.Context, externalAccountID string) (int64, error)
}

type snapshotRepository struct {
	conn postgres.Queryer
}

func NewSnapshotRepository(conn postgres.Queryer) SnapshotRepository {
	return &snapshotRepository{
		conn: conn,
	}
}

func (r *snapshotRepository) Insert(ctx context.Context, snapshot *domain.Snapshot) (bool, error) {
	query, args, err := squirrel.
		Insert(snapshotsTable).
		Columns(
			"external_account_id",
			"snapshot_date",
			"spend",
			"impressions",
			"clicks",
			"conversions",
			"conversion_value",
			"ctr",
			"cpa",
			"roas",
			"active_campaigns",
			"paused_campaigns",
		).
		Values(
			snapshot.ExternalAccountID,
			snapshot.Date.Format(time.DateOnly),
			snapshot.Spend,
			snapshot.Impressions,
			snapshot.Clicks,
			snapshot.Conversions,
			snapshot.ConversionValue,
			snapshot.CTR,
			snapshot.CPA,
			snapshot.ROAS,
			snapshot.ActiveCampaigns,
			snapshot.PausedCampaigns,
		).
		Suffix("ON CONFLICT (external_account_id, snapshot_date) DO NOTHING RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	err = r.conn.QueryRow(ctx, query, args...).Scan(&snapshot.ID, &snapshot.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, dbError(err, "insert snapshot")
	}

	return true, nil
}

func (r *snapshotRepository) List(ctx context.Context, q SnapshotQuery) ([]*domain.Snapshot, error) {
	builder := squirrel.
		Select(snapshotColumns...).
		From(snapshotsTable).
		Where(squirrel.Eq{"external_account_id": q.ExternalAccountID}).
		OrderBy("snapshot_date DESC").
		PlaceholderFormat(squirrel.Dollar)

	if q.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"snapshot_date": q.From.Format(time.DateOnly)})
	}
	if q.To != nil {
		builder = builder.Where(squirrel.LtOrEq{"snapshot_date": q.To.Format(time.DateOnly)})
	}
	if q.Limit > 0 {
		builder = builder.Limit(q.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "list snapshots")
	}
	defer rows.Close()

	snapshots := make([]*domain.Snapshot, 0)
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, rows.Err()
}

func (r *snapshotRepository) GetByDate(ctx context.Context, externalAccountID string, date time.Time) (*domain.Snapshot, error) {
	query, args, err := squirrel.
		Select(snapshotColumns...).
		From(snapshotsTable).
		Where(squirrel.Eq{"external_account_id": externalAccountID}).
		Where(squirrel.Eq{"snapshot_date": date.Format(time.DateOnly)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	snapshot, err := scanSnapshot(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, dbError(err, "get snapshot")
	}

	return snapshot, nil
}

func (r *snapshotRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.delete(ctx, squirrel.Lt{"snapshot_date": cutoff.Format(time.DateOnly)})
}

func (r *snapshotRepository) DeleteByAccount(ctx context.Context, externalAccountID string) (int64, error) {
	return r.delete(ctx, squirrel.Eq{"external_account_id": externalAccountID})
}

func (r *snapshotRepository) delete(ctx context.Context, condition squirrel.Sqlizer) (int64, error) {
	query, args, err := squirrel.
		Delete(snapshotsTable).
		Where(condition).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, dbError(err, "delete snapshots")
	}

	return result.RowsAffected()
}

func scanSnapshot(row rowScanner) (*domain.Snapshot, error) {
	snapshot := &domain.Snapshot{}

	if err := row.Scan(
		&snapshot.ID,
		&snapshot.ExternalAccountID,
		&snapshot.Date,
		&snapshot.Spend,
		&snapshot.Impressions,
		&snapshot.Clicks,
		&snapshot.Conversions,
		&snapshot.ConversionValue,
		&snapshot.CTR,
		&snapshot.CPA,
		&snapshot.ROAS,
		&snapshot.ActiveCampaigns,
		&snapshot.PausedCampaigns,
		&snapshot.CreatedAt,
	); err != nil {
		return nil, err
	}

	return snapshot, nil
}
