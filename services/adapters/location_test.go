package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func locationProviderFor(srv *httptest.Server, timeout time.Duration) *IPLocationProvider {
	p := NewIPLocationProvider("", timeout, zap.NewNop())
	p.BaseURL = srv.URL
	return p
}

func TestGetCurrentLocationSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"city":"Nairobi","region":"Nairobi County","country_name":"Kenya","latitude":-1.286389,"longitude":36.817223}`))
	}))
	defer srv.Close()

	loc, err := locationProviderFor(srv, time.Second).GetCurrentLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Nairobi, Nairobi County, Kenya", loc.Address)
	assert.InDelta(t, -1.286389, loc.Latitude, 1e-9)
	assert.InDelta(t, 36.817223, loc.Longitude, 1e-9)
}

func TestGetCurrentLocationResolvesClientIP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/203.0.113.7/json/", r.URL.Path)
		w.Write([]byte(`{"city":"Mombasa","country_name":"Kenya","latitude":-4.05,"longitude":39.67}`))
	}))
	defer srv.Close()

	p := locationProviderFor(srv, time.Second)
	p.IP = "203.0.113.7"
	loc, err := p.GetCurrentLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Mombasa, Kenya", loc.Address)
}

func TestGetCurrentLocationPermissionDenied(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusTooManyRequests} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := locationProviderFor(srv, time.Second).GetCurrentLocation(context.Background())
		srv.Close()

		var aerr *AdapterError
		require.ErrorAs(t, err, &aerr, "status %d", status)
		assert.Equal(t, CodePermissionDenied, aerr.Code)
	}
}

func TestGetCurrentLocationTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	_, err := locationProviderFor(srv, 20*time.Millisecond).GetCurrentLocation(context.Background())
	var aerr *AdapterError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, CodeTimeout, aerr.Code)
}

func TestGetCurrentLocationServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := locationProviderFor(srv, time.Second).GetCurrentLocation(context.Background())
	var aerr *AdapterError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, CodeUnavailable, aerr.Code)
}

func TestGetCurrentLocationEmptyAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"latitude":0,"longitude":0}`))
	}))
	defer srv.Close()

	loc, err := locationProviderFor(srv, time.Second).GetCurrentLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Unknown", loc.Address)
}
