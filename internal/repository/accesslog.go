package repository

import (
	"context"

	"clinicdocs/internal/model"
)

// AccessLogRepository defines persistence for clinical-history access audits.
type AccessLogRepository interface {
	// Create inserts one audit row and returns it with the DB-assigned ID
	// and timestamp.
	Create(ctx context.Context, entry *model.AccessLog) (*model.AccessLog, error)

	// ListByClinic returns a clinic's audit entries, newest first.
	ListByClinic(ctx context.Context, clinicID string) ([]model.AccessLog, error)
}
