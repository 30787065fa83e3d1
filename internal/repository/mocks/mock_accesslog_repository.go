package mocks

import (
	"context"

	"clinicdocs/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockAccessLogRepository struct {
	mock.Mock
}

func (m *MockAccessLogRepository) Create(ctx context.Context, entry *model.AccessLog) (*model.AccessLog, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccessLog), args.Error(1)
}

func (m *MockAccessLogRepository) ListByClinic(ctx context.Context, clinicID string) ([]model.AccessLog, error) {
	args := m.Called(ctx, clinicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AccessLog), args.Error(1)
}
