package service

import (
	"context"

	"clinicdocs/internal/authz"
	"clinicdocs/internal/model"
	"clinicdocs/internal/repository"
)

// HistoryService coordinates clinical-history reads: every attempt is
// checked against the authorization service and recorded in the audit log,
// granted or not.
type HistoryService interface {
	// Fetch returns a clinic's documents if the requester is authorized.
	// The attempt is logged either way; a denial surfaces as AccessDeniedError.
	Fetch(ctx context.Context, clinicID, requestedBy string) ([]model.Document, error)

	// ListAccessLogs returns a clinic's audit entries, newest first.
	ListAccessLogs(ctx context.Context, clinicID string) ([]model.AccessLog, error)
}

type historyService struct {
	authz    authz.Client
	docs     repository.DocumentRepository
	accesses repository.AccessLogRepository
}

// NewHistoryService constructs a new HistoryService.
func NewHistoryService(az authz.Client, docs repository.DocumentRepository, accesses repository.AccessLogRepository) HistoryService {
	return &historyService{authz: az, docs: docs, accesses: accesses}
}

func (s *historyService) Fetch(ctx context.Context, clinicID, requestedBy string) ([]model.Document, error) {
	if clinicID == "" {
		return nil, &ValidationError{Field: "clinic_id", Reason: "must not be empty"}
	}
	if requestedBy == "" {
		return nil, &ValidationError{Field: "requested_by", Reason: "must not be empty"}
	}

	decision := s.authz.Check(ctx, clinicID, requestedBy)

	// The audit row is written before any documents are returned so denied
	// attempts are recorded too.
	entry := &model.AccessLog{
		ClinicID:       clinicID,
		RequestedBy:    requestedBy,
		Allowed:        decision.Allowed,
		DecisionReason: decision.Reason,
	}
	if _, err := s.accesses.Create(ctx, entry); err != nil {
		return nil, &DatabaseError{Op: "insert access log", Err: err}
	}

	if !decision.Allowed {
		return nil, &AccessDeniedError{Reason: decision.Reason}
	}

	res, err := s.docs.ListByClinic(ctx, clinicID, repository.PageQuery{Limit: 100, Offset: 0})
	if err != nil {
		return nil, &DatabaseError{Op: "list documents", Err: err}
	}
	return res.Items, nil
}

func (s *historyService) ListAccessLogs(ctx context.Context, clinicID string) ([]model.AccessLog, error) {
	if clinicID == "" {
		return nil, &ValidationError{Field: "clinic_id", Reason: "must not be empty"}
	}
	entries, err := s.accesses.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, &DatabaseError{Op: "list access logs", Err: err}
	}
	return entries, nil
}
