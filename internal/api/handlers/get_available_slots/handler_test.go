package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

var msk = time.FixedZone("MSK", 3*60*60)

type fakeUseCase struct {
	got *getAvailableSlots.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, msk)
	return &getAvailableSlots.Response{
		Date:        req.Date,
		Service:     &domain.Service{ID: req.ServiceID, Name: "Bowling"},
		PeopleCount: 4,
		Slots: []domain.AvailableSlot{
			{Start: start.UTC(), StartTime: types.MustTimeString("10:00"), DurationMinutes: 60, FreeResources: 1, TotalResources: 2, RequiredResources: 1, FreeCapacity: 6, PeopleCount: 4, BestCapacity: 6},
		},
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/services/{serviceId}/available-slots", h.Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(NewHandler(uc, msk, nopLogger{}), "/services/1/available-slots?date=2025-03-10&people=4")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, msk), uc.got.Date)
	assert.Equal(t, 4, uc.got.PeopleCount)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-03-10", body.Date)
	require.Len(t, body.Slots, 1)
	assert.Equal(t, "10:00", body.Slots[0].StartTime)
	assert.True(t, body.Slots[0].Bookable)
	assert.InDelta(t, 50.0, body.Slots[0].OccupancyRate, 0.001)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		err      error
		wantCode int
	}{
		{name: "missing date", target: "/services/1/available-slots", wantCode: http.StatusBadRequest},
		{name: "bad date", target: "/services/1/available-slots?date=10.03.2025", wantCode: http.StatusBadRequest},
		{name: "bad people", target: "/services/1/available-slots?date=2025-03-10&people=many", wantCode: http.StatusBadRequest},
		{name: "past date", target: "/services/1/available-slots?date=2025-03-10", err: getAvailableSlots.ErrInvalidDate, wantCode: http.StatusBadRequest},
		{name: "not found", target: "/services/1/available-slots?date=2025-03-10", err: getAvailableSlots.ErrServiceNotFound, wantCode: http.StatusNotFound},
		{name: "internal", target: "/services/1/available-slots?date=2025-03-10", err: getAvailableSlots.ErrInternal, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeUseCase{err: tt.err}, msk, nopLogger{}), tt.target)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
