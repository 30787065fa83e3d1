package mocks

import (
	"context"

	"clinicdocs/internal/authz"
	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Check(ctx context.Context, clinicID, requestedBy string) authz.Decision {
	args := m.Called(ctx, clinicID, requestedBy)
	return args.Get(0).(authz.Decision)
}
