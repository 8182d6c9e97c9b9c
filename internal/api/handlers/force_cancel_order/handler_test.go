package force_cancel_order

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-VenueBookingService/internal/service/orders"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/orders/models"
)

type fakeService struct{ err error }

func (f *fakeService) ForceCancel(_ context.Context, orderID int64) (*models.StatusChangeResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.StatusChangeResponse{OrderID: orderID, PreviousStatus: "paid", Status: "cancelled", Changed: true}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		err      error
		wantCode int
	}{
		{name: "cancelled", target: "/admin/orders/3/force-cancel", wantCode: http.StatusOK},
		{name: "bad id", target: "/admin/orders/x/force-cancel", wantCode: http.StatusBadRequest},
		{name: "not found", target: "/admin/orders/3/force-cancel", err: orders.ErrOrderNotFound, wantCode: http.StatusNotFound},
		{name: "terminal", target: "/admin/orders/3/force-cancel", err: fmt.Errorf("%w: order is already completed", orders.ErrInvalidTransition), wantCode: http.StatusConflict},
		{name: "internal", target: "/admin/orders/3/force-cancel", err: orders.ErrInternal, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mux.NewRouter()
			r.HandleFunc("/admin/orders/{orderId}/force-cancel", NewHandler(&fakeService{err: tt.err}, nopLogger{}).Handle)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.target, nil))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
