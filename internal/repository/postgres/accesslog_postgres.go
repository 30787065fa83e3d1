package postgres

import (
	"context"
	"database/sql"

	"clinicdocs/internal/model"
	"clinicdocs/internal/repository"
)

// AccessLogPostgres is a PostgreSQL implementation of repository.AccessLogRepository.
type AccessLogPostgres struct {
	db *sql.DB
}

// NewAccessLogPostgres creates a new AccessLogPostgres repository.
func NewAccessLogPostgres(db *sql.DB) *AccessLogPostgres {
	return &AccessLogPostgres{db: db}
}

var _ repository.AccessLogRepository = (*AccessLogPostgres)(nil)

// Create inserts one audit row. ID and requested_at come back from the DB.
func (r *AccessLogPostgres) Create(ctx context.Context, entry *model.AccessLog) (*model.AccessLog, error) {
	const q = `
		INSERT INTO clinical_history_access_logs (clinic_id, requested_by, allowed, decision_reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, clinic_id, requested_by, allowed, decision_reason, requested_at
	`
	row := r.db.QueryRowContext(ctx, q,
		entry.ClinicID,
		entry.RequestedBy,
		entry.Allowed,
		entry.DecisionReason,
	)
	var out model.AccessLog
	if err := row.Scan(
		&out.ID,
		&out.ClinicID,
		&out.RequestedBy,
		&out.Allowed,
		&out.DecisionReason,
		&out.RequestedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByClinic returns a clinic's audit entries ordered from newest to oldest.
func (r *AccessLogPostgres) ListByClinic(ctx context.Context, clinicID string) ([]model.AccessLog, error) {
	const q = `
		SELECT id, clinic_id, requested_by, allowed, decision_reason, requested_at
		FROM clinical_history_access_logs
		WHERE clinic_id = $1
		ORDER BY requested_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, clinicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]model.AccessLog, 0)
	for rows.Next() {
		var e model.AccessLog
		if err := rows.Scan(
			&e.ID,
			&e.ClinicID,
			&e.RequestedBy,
			&e.Allowed,
			&e.DecisionReason,
			&e.RequestedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
