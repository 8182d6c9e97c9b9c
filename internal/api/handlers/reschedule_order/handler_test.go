package reschedule_order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	rescheduleOrder "github.com/m04kA/SMC-VenueBookingService/internal/usecase/reschedule_order"
)

var msk = time.FixedZone("MSK", 3*60*60)

type fakeUseCase struct {
	got *rescheduleOrder.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *rescheduleOrder.Request) (*rescheduleOrder.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &rescheduleOrder.Response{
		Order: &domain.Order{
			ID:         req.OrderID,
			UserID:     req.RequesterID,
			OrderDate:  req.NewStart.UTC(),
			Status:     domain.StatusCreated,
			TotalPrice: decimal.NewFromInt(1000),
		},
		PreviousStart: time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC),
		PreviousPrice: decimal.NewFromInt(1000),
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, target, body string, userID int64, admin bool) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/orders/{orderId}/reschedule", h.Handle)
	req := httptest.NewRequest(http.MethodPatch, target, bytes.NewBufferString(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUser(req.Context(), userID, admin))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(NewHandler(uc, msk, nopLogger{}), "/orders/3/reschedule", `{"start":"2025-03-15T10:00"}`, 10, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), uc.got.OrderID)
	assert.Equal(t, int64(10), uc.got.RequesterID)
	assert.True(t, uc.got.IsAdmin)
	assert.True(t, uc.got.NewStart.Equal(time.Date(2025, 3, 15, 10, 0, 0, 0, msk)))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "10:00", body["startTime"])
	assert.Equal(t, "1000.00", body["previousPrice"])
	assert.Equal(t, false, body["repriced"])
}

func TestHandler_Handle_Conflict(t *testing.T) {
	uc := &fakeUseCase{err: domain.NewResourceUnavailableError(1)}
	rec := serve(NewHandler(uc, msk, nopLogger{}), "/orders/3/reschedule", `{"start":"2025-03-10T15:30"}`, 10, false)

	require.Equal(t, http.StatusConflict, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []int64{1}, body.ResourceIDs)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		userID   int64
		body     string
		err      error
		wantCode int
	}{
		{name: "no user", body: `{"start":"2025-03-10T15:00"}`, wantCode: http.StatusUnauthorized},
		{name: "missing start", userID: 10, body: `{}`, wantCode: http.StatusBadRequest},
		{name: "bad start", userID: 10, body: `{"start":"15:00"}`, wantCode: http.StatusBadRequest},
		{name: "not found", userID: 10, body: `{"start":"2025-03-10T15:00"}`, err: rescheduleOrder.ErrOrderNotFound, wantCode: http.StatusNotFound},
		{name: "not owner", userID: 10, body: `{"start":"2025-03-10T15:00"}`, err: rescheduleOrder.ErrAccessDenied, wantCode: http.StatusForbidden},
		{name: "cancelled", userID: 10, body: `{"start":"2025-03-10T15:00"}`, err: fmt.Errorf("%w: status=cancelled", rescheduleOrder.ErrCannotReschedule), wantCode: http.StatusConflict},
		{name: "outside hours", userID: 10, body: `{"start":"2025-03-10T23:00"}`, err: rescheduleOrder.ErrOutsideOperatingHours, wantCode: http.StatusBadRequest},
		{name: "internal", userID: 10, body: `{"start":"2025-03-10T15:00"}`, err: rescheduleOrder.ErrInternal, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeUseCase{err: tt.err}, msk, nopLogger{}), "/orders/3/reschedule", tt.body, tt.userID, false)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
