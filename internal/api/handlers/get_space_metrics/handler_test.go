package get_space_metrics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/domain"
	"github.com/m04kA/SMC-SpaceAnalytics/internal/infra/storage/snapshot"
	"github.com/m04kA/SMC-SpaceAnalytics/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeStore struct {
	rows []snapshot.Row
	err  error
}

func (f *fakeStore) LatestForSpace(_ context.Context, _ string) ([]snapshot.Row, error) {
	return f.rows, f.err
}

func serve(store SnapshotStore, path string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/spaces/{spaceId}/metrics", NewHandler(store, nopLogger{}).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	space := domain.Space{
		SpaceID: "19904", SpaceName: "Studio A",
		CategoryID: "7571", CategoryName: "Media Studios",
		LocationID: "3148", LocationName: "Scott Library",
	}
	next := ptr.Ptr(time.Date(2026, time.March, 2, 13, 15, 0, 0, time.UTC))

	store := &fakeStore{rows: []snapshot.Row{
		{Space: space, Period: "1week", Metrics: domain.PeriodMetrics{BookingRatePct: 42.5, HoursAvailable: 56, HoursBooked: 23.8, BookingCount: 7}, NextAvailable: next},
		{Space: space, Period: "3months", Metrics: domain.PeriodMetrics{BookingRatePct: 18.1, HoursAvailable: 728, HoursBooked: 131.8, BookingCount: 40}, NextAvailable: next},
	}}

	rec := serve(store, "/api/v1/spaces/19904/metrics")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "19904", resp.SpaceID)
	assert.Equal(t, "Studio A", resp.SpaceName)
	assert.Equal(t, "Scott Library", resp.LocationName)
	require.NotNil(t, resp.NextAvailable)
	assert.Equal(t, "2026-03-02 13:15", *resp.NextAvailable)

	require.Len(t, resp.Periods, 2)
	assert.Equal(t, 42.5, resp.Periods["1week"].BookingRatePct)
	assert.Equal(t, 40, resp.Periods["3months"].BookingCount)
}

func TestHandler_Handle_NotFound(t *testing.T) {
	store := &fakeStore{err: snapshot.ErrNotFound}

	rec := serve(store, "/api/v1/spaces/99999/metrics")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Handle_StoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}

	rec := serve(store, "/api/v1/spaces/19904/metrics")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
