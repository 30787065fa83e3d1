package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"clinicdocs/internal/model"
	"clinicdocs/internal/objectkey"
	"clinicdocs/internal/repository"
	"clinicdocs/internal/storage"
)

// nowFn is swapped in tests.
var nowFn = time.Now

// UploadAuthorization is the ephemeral result of issuing an upload URL.
// It is never persisted; it exists only for one request/response exchange
// and the client's subsequent direct upload to the store.
type UploadAuthorization struct {
	UploadURL        string    `json:"upload_url"`
	S3URL            string    `json:"s3_url"`
	ObjectKey        string    `json:"object_key"`
	ExpiresInSeconds int       `json:"expires_in_seconds"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// DownloadAuthorization is a time-limited read credential for one document.
type DownloadAuthorization struct {
	DownloadURL      string `json:"download_url"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService defines the use cases of the document-ingestion workflow.
//
// The workflow is a two-phase protocol: IssueUploadURL hands the client a
// scoped, time-bounded write capability; the client uploads out-of-band;
// Register validates the reported reference and persists the record. Phase-3
// input is never trusted blindly — the reference must sit inside the managed
// namespace and name the caller's own clinic.
type DocumentService interface {
	// IssueUploadURL names a fresh object key for (clinicID, fileName) and
	// returns a presigned PUT authorization scoped to exactly that key.
	// Identical inputs on repeated calls always yield distinct keys.
	IssueUploadURL(ctx context.Context, clinicID, fileName, contentType string) (*UploadAuthorization, error)

	// Register validates a client-reported object reference and persists the
	// document record with a server-assigned ID and timestamp.
	Register(ctx context.Context, clinicID, fileName, s3URL, contentType string) (*model.Document, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// ListByClinic returns one clinic's documents using limit/offset and a total count.
	ListByClinic(ctx context.Context, clinicID string, limit, offset int) (*DocumentListResult, error)

	// IssueDownloadURL returns a presigned GET for an existing document.
	IssueDownloadURL(ctx context.Context, id string) (*DownloadAuthorization, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store storage.Storage
	repo  repository.DocumentRepository
	ttl   time.Duration
}

// NewDocumentService constructs a new DocumentService. ttl bounds every
// presigned authorization it issues.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, ttl time.Duration) DocumentService {
	return &documentService{store: store, repo: repo, ttl: ttl}
}

func (s *documentService) IssueUploadURL(ctx context.Context, clinicID, fileName, contentType string) (*UploadAuthorization, error) {
	key, err := objectkey.New(clinicID, fileName)
	if err != nil {
		return nil, asValidationError(err)
	}

	ref := key.Ref()
	uploadURL, err := s.store.PresignPut(ctx, ref, contentType, s.ttl)
	if err != nil {
		return nil, &StorageError{Op: "presign put", Err: err}
	}

	return &UploadAuthorization{
		UploadURL:        uploadURL,
		S3URL:            ref,
		ObjectKey:        ref,
		ExpiresInSeconds: int(s.ttl.Seconds()),
		ExpiresAt:        nowFn().UTC().Add(s.ttl),
	}, nil
}

func (s *documentService) Register(ctx context.Context, clinicID, fileName, s3URL, contentType string) (*model.Document, error) {
	if clinicID == "" {
		return nil, &ValidationError{Field: "clinic_id", Reason: "must not be empty"}
	}
	if fileName == "" {
		return nil, &ValidationError{Field: "file_name", Reason: "must not be empty"}
	}

	key, err := objectkey.Parse(s3URL)
	if err != nil {
		return nil, asValidationError(err)
	}
	// A client may only register objects under its own clinic's prefix.
	if key.ClinicID != clinicID {
		return nil, &ValidationError{Field: "s3_url", Reason: "clinic segment does not match clinic_id"}
	}

	doc := &model.Document{
		ID:          uuid.NewString(),
		ClinicID:    clinicID,
		FileName:    objectkey.SanitizeFileName(fileName),
		ContentType: contentType,
		S3URL:       s3URL,
		CreatedAt:   nowFn().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		return nil, &DatabaseError{Op: "insert document", Err: err}
	}
	return stored, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &DatabaseError{Op: "find document", Err: err}
	}
	return doc, nil
}

// ListByClinic returns paginated documents without exposing repository types.
func (s *documentService) ListByClinic(ctx context.Context, clinicID string, limit, offset int) (*DocumentListResult, error) {
	if clinicID == "" {
		return nil, &ValidationError{Field: "clinic_id", Reason: "must not be empty"}
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.ListByClinic(ctx, clinicID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, &DatabaseError{Op: "list documents", Err: err}
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) IssueDownloadURL(ctx context.Context, id string) (*DownloadAuthorization, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	url, err := s.store.PresignGet(ctx, doc.S3URL, s.ttl)
	if err != nil {
		return nil, &StorageError{Op: "presign get", Err: err}
	}
	return &DownloadAuthorization{
		DownloadURL:      url,
		ExpiresInSeconds: int(s.ttl.Seconds()),
	}, nil
}

func asValidationError(err error) error {
	switch {
	case errors.Is(err, objectkey.ErrClinicIDRequired):
		return &ValidationError{Field: "clinic_id", Reason: "must not be empty"}
	case errors.Is(err, objectkey.ErrFileNameRequired):
		return &ValidationError{Field: "file_name", Reason: "must not be empty"}
	case errors.Is(err, objectkey.ErrOutsideNamespace):
		return &ValidationError{Field: "s3_url", Reason: "reference is outside the managed namespace"}
	case errors.Is(err, objectkey.ErrMalformedRef):
		return &ValidationError{Field: "s3_url", Reason: "reference is malformed"}
	default:
		return &ValidationError{Field: "request", Reason: err.Error()}
	}
}
