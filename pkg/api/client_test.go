package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	apperrors "geocortex/internal/errors"
	"geocortex/internal/middleware"
	"geocortex/internal/models"
	"geocortex/internal/services"
	"geocortex/internal/transformers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, listCalls *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/address", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			atomic.AddInt32(listCalls, 1)
			_, _ = w.Write([]byte(`[{"id":"a1","address":"1 Main","lat":53.5,"lon":-113.5,"Status":"Sold"}]`))
		case http.MethodPost:
			var row map[string]interface{}
			_ = json.NewDecoder(r.Body).Decode(&row)
			if row["address"] == nil {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":{"message":"Address is required.","code":"MISSING_ADDRESS"}}`))
				return
			}
			row["id"] = "b2"
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(row)
		case http.MethodDelete:
			_, _ = w.Write([]byte(`{"success":true}`))
		}
	})
	mux.HandleFunc("/api/address/a1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"deleted":1}`))
	})
	mux.HandleFunc("/api/geocode/a1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"address":"1 Main","geocode":[{"place_id":3,"lat":"53.5","lon":"-113.5","display_name":"1 Main"}]}`))
	})
	mux.HandleFunc("/api/geocode/zz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"Address not found.","code":"NOT_FOUND"}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientRoundTrips(t *testing.T) {
	assert := assert.New(t)
	var calls int32
	c := NewClient(newTestServer(t, &calls).URL+"/", 5*time.Second)
	ctx := context.Background()

	records, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal("a1", records[0].ID)
	assert.Equal("Sold", records[0].Attribute("Status"))

	rec := &models.PropertyRecord{Address: "2 Main", Lat: models.Float(1), Attributes: map[string]interface{}{"City": "X"}}
	require.NoError(t, c.Insert(ctx, rec))
	assert.Equal("b2", rec.ID)

	n, err := c.Delete(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(int64(1), n)

	geo, err := c.Geocode(ctx, "a1")
	require.NoError(t, err)
	assert.Equal("53.5", geo.Geocode[0].Lat)
}

func TestClientErrors(t *testing.T) {
	var calls int32
	c := NewClient(newTestServer(t, &calls).URL, 5*time.Second)

	_, err := c.Create(context.Background(), models.RawRow{"City": "x"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.True(t, errors.Is(err, apperrors.ErrMissingAddress))

	_, err = c.Geocode(context.Background(), "zz")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestRecordCacheRefetchesAfterMutation(t *testing.T) {
	assert := assert.New(t)
	var calls int32
	rc := NewRecordCache(NewClient(newTestServer(t, &calls).URL, 5*time.Second))
	ctx := context.Background()

	_, err := rc.Records(ctx)
	require.NoError(t, err)
	_, err = rc.Records(ctx)
	require.NoError(t, err)
	assert.Equal(int32(1), atomic.LoadInt32(&calls))

	_, err = rc.Delete(ctx, "a1")
	require.NoError(t, err)
	_, err = rc.Records(ctx)
	require.NoError(t, err)
	assert.Equal(int32(2), atomic.LoadInt32(&calls))

	require.NoError(t, rc.Clear(ctx))
	_, err = rc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(int32(3), atomic.LoadInt32(&calls))
}

// newLimitedServer mimics the API's POST /api/address behind the per-client limiter.
func newLimitedServer(t *testing.T, perMinute float64, burst int) (*httptest.Server, *int32) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	var stored int32
	r := gin.New()
	r.Use(middleware.ErrorHandler(), middleware.RateLimitMiddleware(middleware.NewRateLimiter(perMinute, burst)))
	r.POST("/api/address", func(c *gin.Context) {
		var row map[string]interface{}
		if err := c.ShouldBindJSON(&row); err != nil {
			_ = c.Error(apperrors.ErrInvalidParameters)
			return
		}
		row["id"] = fmt.Sprintf("%024x", atomic.AddInt32(&stored, 1))
		c.JSON(http.StatusCreated, row)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, &stored
}

func rowsOf(n int) []models.RawRow {
	rows := make([]models.RawRow, n)
	for i := range rows {
		rows[i] = models.RawRow{"address": fmt.Sprintf("%d Main St", i+1)}
	}
	return rows
}

func TestPacedUploadStaysUnderServerLimit(t *testing.T) {
	srv, stored := newLimitedServer(t, 6000, 50)
	c := NewClient(srv.URL, 5*time.Second, WithRateLimit(5400, 1))
	batcher := services.NewIngestionService(c, transformers.NewRecordTransformer(transformers.DefaultFieldSources), nil)

	result := batcher.Ingest(context.Background(), rowsOf(120))
	assert.Equal(t, 120, result.Accepted)
	assert.Empty(t, result.Rejected)
	assert.Equal(t, int32(120), atomic.LoadInt32(stored))
}

func TestUnpacedUploadReportsRateLimitedRows(t *testing.T) {
	srv, stored := newLimitedServer(t, 60, 5)
	c := NewClient(srv.URL, 5*time.Second, WithRetries(0, 0))
	batcher := services.NewIngestionService(c, transformers.NewRecordTransformer(transformers.DefaultFieldSources), nil)

	result := batcher.Ingest(context.Background(), rowsOf(8))
	assert.Equal(t, 5, result.Accepted)
	require.Len(t, result.Rejected, 3)
	assert.Equal(t, 6, result.Rejected[0].Row)
	assert.Equal(t, models.ReasonRateLimited, result.Rejected[0].Reason)
	assert.Equal(t, int32(5), atomic.LoadInt32(stored))
}

func TestClientRetriesTooManyRequests(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"Too many requests.","code":"RATE_LIMITED"}}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"c3","address":"1 Main"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, 5*time.Second, WithRetries(3, time.Millisecond))
	rec, err := c.Create(context.Background(), models.RawRow{"address": "1 Main"})
	require.NoError(t, err)
	assert.Equal(t, "c3", rec.ID)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}
