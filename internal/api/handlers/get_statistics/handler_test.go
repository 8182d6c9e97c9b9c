package get_statistics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/service/orders"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/orders/models"
)

var msk = time.FixedZone("MSK", 3*60*60)

type fakeService struct {
	got *models.StatisticsRequest
	err error
}

func (f *fakeService) GetStatistics(_ context.Context, req *models.StatisticsRequest) (*models.StatisticsResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.StatisticsResponse{From: req.From, To: req.To, TotalOrders: 3, TotalRevenue: "2500.00"}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler_Handle(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()
	NewHandler(svc, msk, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/admin/statistics?from=2025-03-01&to=2025-03-31", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.got.From.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, msk)))
	assert.Equal(t, 31, svc.got.To.Day())

	var body models.StatisticsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.TotalOrders)
	assert.Equal(t, "2500.00", body.TotalRevenue)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		err      error
		wantCode int
	}{
		{name: "missing to", target: "/admin/statistics?from=2025-03-01", wantCode: http.StatusBadRequest},
		{name: "garbage", target: "/admin/statistics?from=march&to=april", wantCode: http.StatusBadRequest},
		{name: "reversed", target: "/admin/statistics?from=2025-03-31&to=2025-03-01", err: fmt.Errorf("%w: from must not be after to", orders.ErrInvalidInput), wantCode: http.StatusBadRequest},
		{name: "internal", target: "/admin/statistics?from=2025-03-01&to=2025-03-31", err: orders.ErrInternal, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&fakeService{err: tt.err}, msk, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
