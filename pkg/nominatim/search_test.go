package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	assert := assert.New(t)

	var gotQuery, gotUA, gotFormat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		gotFormat = r.URL.Query().Get("format")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"place_id":1,"lat":"53.54","lon":"-113.49","display_name":"Edmonton, Alberta","boundingbox":["53.3","53.7","-113.7","-113.2"]}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "geocortex-test/1.0", 5*time.Second)
	places, err := c.Search(context.Background(), "10225 100 Ave & Co, Edmonton")
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal("53.54", places[0].Lat)
	assert.Equal("Edmonton, Alberta", places[0].DisplayName)
	assert.Equal("10225 100 Ave & Co, Edmonton", gotQuery)
	assert.Equal("json", gotFormat)
	assert.Equal("geocortex-test/1.0", gotUA)
}

func TestSearchEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	places, err := NewClient(srv.URL, "ua", time.Second).Search(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestSearchFailures(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "ua", time.Second).Search(context.Background(), "x")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Equal(t, 1, calls)

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer bad.Close()
	_, err = NewClient(bad.URL, "ua", time.Second).Search(context.Background(), "x")
	assert.Error(t, err)
}
