package repository

//go:generate mockgen -source=dashboard_snapshot.go -destination=mocks/dashboard_snapshot.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/business-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
)

const (
	dashboardSnapshotsTable = "dashboard_snapshots"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type DashboardSnapshotRepository interface {
	SaveOrUpdate(ctx context.Context, entry *domain.DashboardSnapshotEntry) error
	GetByDateRange(ctx context.Context, ownerID int, startDate, endDate time.Time) ([]*domain.DashboardSnapshotEntry, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type dashboardSnapshotRepository struct {
	conn postgres.Conn
}

func NewDashboardSnapshotRepository(conn postgres.Conn) DashboardSnapshotRepository {
	return &dashboardSnapshotRepository{
		conn: conn,
	}
}

func (r *dashboardSnapshotRepository) SaveOrUpdate(ctx context.Context, entry *domain.DashboardSnapshotEntry) error {
	summaryJSON, err := json.Marshal(entry.Summary)
	if err != nil {
		return fmt.Errorf("erro ao serializar Summary para JSON: %w", err)
	}

	servicesJSON, err := json.Marshal(entry.Services)
	if err != nil {
		return fmt.Errorf("erro ao serializar Services para JSON: %w", err)
	}

	query, args, err := squirrel.StatementBuilder.
		Insert(dashboardSnapshotsTable).
		Columns("owner_id", "date", "summary", "services").
		Values(
			entry.OwnerID,
			entry.Date.Format(time.DateOnly),
			summaryJSON,
			servicesJSON,
		).
		Suffix(`
			ON CONFLICT (owner_id, date) DO UPDATE SET
				summary = EXCLUDED.summary,
				services = EXCLUDED.services,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return wrapPQError(err)
	}

	return nil
}

func (r *dashboardSnapshotRepository) GetByDateRange(ctx context.Context, ownerID int, startDate, endDate time.Time) ([]*domain.DashboardSnapshotEntry, error) {
	query, args, err := squirrel.
		Select("id", "owner_id", "date", "summary", "services", "created_at", "updated_at").
		From(dashboardSnapshotsTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.GtOrEq{"date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"date": endDate.Format(time.DateOnly)}).
		OrderBy("date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.DashboardSnapshotEntry, 0)
	for rows.Next() {
		entry := &domain.DashboardSnapshotEntry{}
		var summaryJSON, servicesJSON []byte

		if err := rows.Scan(
			&entry.ID,
			&entry.OwnerID,
			&entry.Date,
			&summaryJSON,
			&servicesJSON,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshot do painel: %w", err)
		}

		if summaryJSON != nil {
			entry.Summary = &domain.Summary{}
			if err := json.Unmarshal(summaryJSON, entry.Summary); err != nil {
				return nil, fmt.Errorf("erro ao deserializar JSON de summary: %w", err)
			}
		}

		if servicesJSON != nil {
			if err := json.Unmarshal(servicesJSON, &entry.Services); err != nil {
				return nil, fmt.Errorf("erro ao deserializar JSON de services: %w", err)
			}
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}

func (r *dashboardSnapshotRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format(time.DateOnly)

	query, args, err := squirrel.
		Delete(dashboardSnapshotsTable).
		Where(squirrel.Lt{"date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}
