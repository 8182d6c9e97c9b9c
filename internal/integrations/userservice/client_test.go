package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/pkg/circuitbreaker"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetUser(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/users/42":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":42,"name":"Анна","email":"anna@example.com","citizen_category":"student","discount_percent":15}`))
		case "/internal/users/404":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	client := NewClient(srv.URL+"/", time.Second, nil, nopLogger{})
	ctx := context.Background()

	user, err := client.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "student", user.CitizenCategory)
	assert.Equal(t, "15", user.DiscountPercent.String())

	_, err = client.GetUser(ctx, 404)
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = client.GetUser(ctx, 500)
	require.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_GetDiscountPercent(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/users/1":
			_, _ = w.Write([]byte(`{"id":1,"citizen_category":"pensioner","discount_percent":"20.5"}`))
		case "/internal/users/2":
			_, _ = w.Write([]byte(`{"id":2,"citizen_category":"broken","discount_percent":-3}`))
		case "/internal/users/3":
			_, _ = w.Write([]byte(`not json`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	client := NewClient(srv.URL, time.Second, nil, nopLogger{})
	ctx := context.Background()

	tests := []struct {
		name   string
		userID int64
		want   string
	}{
		{name: "category discount", userID: 1, want: "20.5"},
		{name: "negative ignored", userID: 2, want: "0"},
		{name: "malformed response", userID: 3, want: "0"},
		{name: "unknown user", userID: 9, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.GetDiscountPercent(ctx, tt.userID).String())
		})
	}
}

func TestClient_Disabled(t *testing.T) {
	client := NewClient("", time.Second, nil, nopLogger{})

	_, err := client.GetUser(context.Background(), 1)
	require.ErrorIs(t, err, ErrDisabled)
	assert.True(t, client.GetDiscountPercent(context.Background(), 1).IsZero())
}

func TestClient_BreakerOpensOnFailures(t *testing.T) {
	var calls int32
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	})

	breaker := circuitbreaker.New(circuitbreaker.Settings{
		WindowSize:   2,
		FailureRatio: 0.5,
		OpenTimeout:  time.Hour,
	})
	client := NewClient(srv.URL, time.Second, breaker, nopLogger{})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		assert.True(t, client.GetDiscountPercent(ctx, 1).IsZero())
	}
	require.Equal(t, circuitbreaker.Open, breaker.State())

	_, err := client.GetUser(ctx, 1)
	require.ErrorIs(t, err, ErrInternal)
	require.ErrorIs(t, err, circuitbreaker.ErrOpen)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_NotFoundDoesNotTripBreaker(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	breaker := circuitbreaker.New(circuitbreaker.Settings{WindowSize: 2, OpenTimeout: time.Hour})
	client := NewClient(srv.URL, time.Second, breaker, nopLogger{})

	for i := 0; i < 4; i++ {
		_, err := client.GetUser(context.Background(), 5)
		require.ErrorIs(t, err, ErrUserNotFound)
	}
	assert.Equal(t, circuitbreaker.Closed, breaker.State())
}
