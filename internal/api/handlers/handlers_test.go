package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var msk = time.FixedZone("MSK", 3*60*60)

func TestRespondConflictResources(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflictResources(rec, "busy", []int64{1, 2})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Code: http.StatusConflict, Message: "busy", ResourceIDs: []int64{1, 2}}, body)
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	var p payload
	require.NoError(t, DecodeJSON(httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"name":"x"}`)), &p))
	assert.Equal(t, "x", p.Name)

	assert.Error(t, DecodeJSON(httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"name":"x","extra":1}`)), &p))
	assert.Error(t, DecodeJSON(httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"name":"x"}{}`)), &p))
}

func TestPathInt64(t *testing.T) {
	var got int64
	var gotErr error
	r := mux.NewRouter()
	r.HandleFunc("/orders/{orderId}", func(_ http.ResponseWriter, req *http.Request) {
		got, gotErr = PathInt64(req, "orderId")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/12", nil))
	require.NoError(t, gotErr)
	assert.Equal(t, int64(12), got)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/0", nil))
	assert.Error(t, gotErr)
}

func TestParseInstant(t *testing.T) {
	local, err := ParseInstant("2025-03-10T14:00", msk)
	require.NoError(t, err)
	assert.True(t, local.Equal(time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)))

	utc, err := ParseInstant("2025-03-10T14:00:00Z", msk)
	require.NoError(t, err)
	assert.True(t, utc.Equal(time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)))

	_, err = ParseInstant("14:00", msk)
	assert.Error(t, err)
}

func TestQueryPeriod(t *testing.T) {
	from, to, err := QueryPeriod(url.Values{"from": {"2025-03-01"}, "to": {"2025-03-01"}}, msk)
	require.NoError(t, err)
	assert.True(t, from.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, msk)))
	assert.True(t, to.Equal(time.Date(2025, 3, 2, 0, 0, 0, 0, msk).Add(-time.Nanosecond)))

	_, to, err = QueryPeriod(url.Values{"to": {"2025-03-01T18:00"}}, msk)
	require.NoError(t, err)
	assert.True(t, to.Equal(time.Date(2025, 3, 1, 18, 0, 0, 0, msk)))

	from, to, err = QueryPeriod(url.Values{}, msk)
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, to)
}

func TestValidate(t *testing.T) {
	type req struct {
		ServiceID   int64   `validate:"required,gt=0"`
		ResourceIDs []int64 `validate:"required,min=1,dive,gt=0"`
	}

	assert.NoError(t, Validate(&req{ServiceID: 1, ResourceIDs: []int64{1}}))

	err := Validate(&req{ResourceIDs: []int64{0}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ServiceID(required)")
	assert.Contains(t, err.Error(), "ResourceIDs[0](gt)")
}
