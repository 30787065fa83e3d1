package mocks

import (
	"context"

	"clinicdocs/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) Fetch(ctx context.Context, clinicID, requestedBy string) ([]model.Document, error) {
	args := m.Called(ctx, clinicID, requestedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockHistoryService) ListAccessLogs(ctx context.Context, clinicID string) ([]model.AccessLog, error) {
	args := m.Called(ctx, clinicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AccessLog), args.Error(1)
}
