package mocks

import (
	"context"

	"clinicdocs/internal/model"
	"clinicdocs/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) IssueUploadURL(ctx context.Context, clinicID, fileName, contentType string) (*service.UploadAuthorization, error) {
	args := m.Called(ctx, clinicID, fileName, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadAuthorization), args.Error(1)
}

func (m *MockDocumentService) Register(ctx context.Context, clinicID, fileName, s3URL, contentType string) (*model.Document, error) {
	args := m.Called(ctx, clinicID, fileName, s3URL, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, id string) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) ListByClinic(ctx context.Context, clinicID string, limit, offset int) (*service.DocumentListResult, error) {
	args := m.Called(ctx, clinicID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentListResult), args.Error(1)
}

func (m *MockDocumentService) IssueDownloadURL(ctx context.Context, id string) (*service.DownloadAuthorization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DownloadAuthorization), args.Error(1)
}
