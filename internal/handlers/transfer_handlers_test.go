package handlers

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockMinioService struct {
	mock.Mock
}

func (m *MockMinioService) UploadCSV(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64) error {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize)
	return args.Error(0)
}

func (m *MockMinioService) GetPresignedURL(bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

func TestArchivedExportURL_ReturnsPresignedLink(t *testing.T) {
	minioSvc := new(MockMinioService)
	minioSvc.On("GetPresignedURL", "member-exports", "members_export_2026-08-28.csv", archiveURLExpiry).
		Return("https://minio.local/member-exports/members_export_2026-08-28.csv?sig=abc", nil)

	h := NewTransferHandlers(nil, minioSvc, "member-exports")
	c, rec := newTestContext(http.MethodGet,
		"/api/members/export/archive-url?filename=members_export_2026-08-28.csv", "")

	err := h.ArchivedExportURL(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "members_export_2026-08-28.csv")
	assert.Contains(t, rec.Body.String(), "sig=abc")
	minioSvc.AssertExpectations(t)
}

func TestArchivedExportURL_MissingFilename(t *testing.T) {
	minioSvc := new(MockMinioService)
	h := NewTransferHandlers(nil, minioSvc, "member-exports")
	c, rec := newTestContext(http.MethodGet, "/api/members/export/archive-url", "")

	err := h.ArchivedExportURL(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "filename")
	minioSvc.AssertNotCalled(t, "GetPresignedURL", mock.Anything, mock.Anything, mock.Anything)
}

func TestArchivedExportURL_ArchiveNotConfigured(t *testing.T) {
	h := NewTransferHandlers(nil, nil, "member-exports")
	c, rec := newTestContext(http.MethodGet,
		"/api/members/export/archive-url?filename=members_export_2026-08-28.csv", "")

	err := h.ArchivedExportURL(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "not configured")
}
