package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"housebill/internal/models"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

// stubCacheService answers every cache call without a redis connection.
type stubCacheService struct {
	pingErr error
}

func (s *stubCacheService) GetStats(ctx context.Context) (*models.Stats, error) { return nil, nil }
func (s *stubCacheService) SetStats(ctx context.Context, stats *models.Stats, ttl time.Duration) error {
	return nil
}
func (s *stubCacheService) GetHouseStats(ctx context.Context, houseID uuid.UUID) (*models.HouseStats, error) {
	return nil, nil
}
func (s *stubCacheService) SetHouseStats(ctx context.Context, stats *models.HouseStats, ttl time.Duration) error {
	return nil
}
func (s *stubCacheService) InvalidateStats(ctx context.Context) error { return nil }
func (s *stubCacheService) Ping(ctx context.Context) error            { return s.pingErr }

type stubJobReporter struct{}

func (s *stubJobReporter) GetJobStatus() map[string]interface{} {
	return map[string]interface{}{
		"total_jobs": 2,
		"jobs":       []string{"stats-refresh", "expiry-alerts"},
	}
}

func TestDetailed_IncludesJobStatus(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectExec("SELECT 1").WillReturnResult(pgxmock.NewResult("SELECT", 1))

	h := NewHealthHandlers(mockPool, &stubCacheService{}, &stubJobReporter{})
	c, rec := newTestContext(http.MethodGet, "/health/detailed", "")

	err = h.Detailed(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stats-refresh")
	assert.Contains(t, rec.Body.String(), "expiry-alerts")
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestDetailed_NoSchedulerOmitsJobs(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectExec("SELECT 1").WillReturnResult(pgxmock.NewResult("SELECT", 1))

	h := NewHealthHandlers(mockPool, &stubCacheService{}, nil)
	c, rec := newTestContext(http.MethodGet, "/health/detailed", "")

	err = h.Detailed(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "jobs")
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
