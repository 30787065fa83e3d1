package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinicdocs/internal/model"
	"clinicdocs/internal/service"
	serviceMocks "clinicdocs/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buf).Encode(v))
	return buf
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateUploadURL(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/api/documents/upload-url", CreateUploadURL(mockSvc))

	t.Run("success", func(t *testing.T) {
		auth := &service.UploadAuthorization{
			UploadURL:        "https://store.example/put?sig=abc",
			S3URL:            "documents/c1/obj-1/xray.png",
			ObjectKey:        "documents/c1/obj-1/xray.png",
			ExpiresInSeconds: 900,
			ExpiresAt:        time.Now().UTC().Add(900 * time.Second),
		}
		mockSvc.On("IssueUploadURL", mock.Anything, "c1", "xray.png", "image/png").Return(auth, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/documents/upload-url",
			jsonBody(t, map[string]string{"clinic_id": "c1", "file_name": "xray.png", "content_type": "image/png"}))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result service.UploadAuthorization
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, auth.UploadURL, result.UploadURL)
		assert.Equal(t, auth.S3URL, result.S3URL)
		assert.Equal(t, 900, result.ExpiresInSeconds)
		mockSvc.AssertExpectations(t)
	})

	t.Run("validation error maps to 422", func(t *testing.T) {
		mockSvc.On("IssueUploadURL", mock.Anything, "", "xray.png", "").
			Return(nil, &service.ValidationError{Field: "clinic_id", Reason: "must not be empty"}).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/documents/upload-url",
			jsonBody(t, map[string]string{"file_name": "xray.png"}))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("storage error maps to 502", func(t *testing.T) {
		mockSvc.On("IssueUploadURL", mock.Anything, "c1", "xray.png", "").
			Return(nil, &service.StorageError{Op: "presign put", Err: errors.New("unreachable")}).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/documents/upload-url",
			jsonBody(t, map[string]string{"clinic_id": "c1", "file_name": "xray.png"}))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "STORAGE_ERROR", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/documents/upload-url", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_BODY", body.Error.Code)
	})
}

func TestRegisterDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/api/documents", RegisterDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		doc := &model.Document{
			ID:        uuid.NewString(),
			ClinicID:  "c1",
			FileName:  "xray.png",
			S3URL:     "documents/c1/obj-1/xray.png",
			CreatedAt: time.Now().UTC(),
		}
		mockSvc.On("Register", mock.Anything, "c1", "xray.png", "documents/c1/obj-1/xray.png", "").
			Return(doc, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/documents",
			jsonBody(t, map[string]string{"clinic_id": "c1", "file_name": "xray.png", "s3_url": "documents/c1/obj-1/xray.png"}))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, doc.ID, result.ID)
		assert.Equal(t, doc.S3URL, result.S3URL)
		mockSvc.AssertExpectations(t)
	})

	t.Run("namespace mismatch maps to 422", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, "c1", "xray.png", "documents/c2/obj-1/xray.png", "").
			Return(nil, &service.ValidationError{Field: "s3_url", Reason: "clinic segment does not match clinic_id"}).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/documents",
			jsonBody(t, map[string]string{"clinic_id": "c1", "file_name": "xray.png", "s3_url": "documents/c2/obj-1/xray.png"}))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("database error maps to 500", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, "c1", "xray.png", "documents/c1/obj-1/xray.png", "").
			Return(nil, &service.DatabaseError{Op: "insert document", Err: errors.New("down")}).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/documents",
			jsonBody(t, map[string]string{"clinic_id": "c1", "file_name": "xray.png", "s3_url": "documents/c1/obj-1/xray.png"}))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "DATABASE_ERROR", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/documents/:id", GetDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.NewString()
		expectedDoc := &model.Document{ID: id, ClinicID: "c1", FileName: "xray.png"}
		mockSvc.On("Get", mock.Anything, id).Return(expectedDoc, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, id, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Get", mock.Anything, id).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/documents/invalid-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})
}

func TestListDocuments(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/documents", ListDocuments(mockSvc))

	t.Run("success", func(t *testing.T) {
		expectedRes := &service.DocumentListResult{
			Items: []model.Document{{ID: uuid.NewString(), ClinicID: "c1", FileName: "a.pdf"}},
			Total: 1,
		}
		mockSvc.On("ListByClinic", mock.Anything, "c1", 10, 0).Return(expectedRes, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/documents?clinic_id=c1&limit=10&offset=0", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.DocumentListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/documents?clinic_id=c1&limit=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_LIMIT", body.Error.Code)
	})

	t.Run("missing clinic id maps to 422", func(t *testing.T) {
		mockSvc.On("ListByClinic", mock.Anything, "", 10, 0).
			Return(nil, &service.ValidationError{Field: "clinic_id", Reason: "must not be empty"}).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateDownloadURL(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/documents/:id/download-url", CreateDownloadURL(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.NewString()
		auth := &service.DownloadAuthorization{DownloadURL: "https://store.example/get?sig=xyz", ExpiresInSeconds: 900}
		mockSvc.On("IssueDownloadURL", mock.Anything, id).Return(auth, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/documents/"+id+"/download-url", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.DownloadAuthorization
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, auth.DownloadURL, result.DownloadURL)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("IssueDownloadURL", mock.Anything, id).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/documents/"+id+"/download-url", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestFetchClinicalHistory(t *testing.T) {
	mockSvc := new(serviceMocks.MockHistoryService)
	app := fiber.New()
	app.Get("/api/clinical-history/:clinic_id", FetchClinicalHistory(mockSvc))

	t.Run("allowed", func(t *testing.T) {
		docs := []model.Document{{ID: uuid.NewString(), ClinicID: "c1"}}
		mockSvc.On("Fetch", mock.Anything, "c1", "12345678").Return(docs, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/clinical-history/c1?requested_by=12345678", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result []model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result, 1)
		mockSvc.AssertExpectations(t)
	})

	t.Run("denied maps to 403", func(t *testing.T) {
		mockSvc.On("Fetch", mock.Anything, "c1", "12345678").
			Return(nil, &service.AccessDeniedError{Reason: "no-consent"}).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/clinical-history/c1?requested_by=12345678", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "ACCESS_DENIED", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing requester maps to 422", func(t *testing.T) {
		mockSvc.On("Fetch", mock.Anything, "c1", "").
			Return(nil, &service.ValidationError{Field: "requested_by", Reason: "must not be empty"}).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/clinical-history/c1", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestListAccessLogs(t *testing.T) {
	mockSvc := new(serviceMocks.MockHistoryService)
	app := fiber.New()
	app.Get("/api/clinical-history/:clinic_id/access-logs", ListAccessLogs(mockSvc))

	entries := []model.AccessLog{
		{ID: 2, ClinicID: "c1", RequestedBy: "11111111", Allowed: false, DecisionReason: "no-consent"},
		{ID: 1, ClinicID: "c1", RequestedBy: "22222222", Allowed: true},
	}
	mockSvc.On("ListAccessLogs", mock.Anything, "c1").Return(entries, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/clinical-history/c1/access-logs", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result []model.AccessLog
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Len(t, result, 2)
	assert.False(t, result[0].Allowed)
	mockSvc.AssertExpectations(t)
}
