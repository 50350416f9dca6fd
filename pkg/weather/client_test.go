package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Paris", r.URL.Query().Get("q"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Paris","sys":{"country":"FR"},"main":{"temp":18.2,"feels_like":17.5,"humidity":60},"weather":[{"description":"clear sky"}],"wind":{"speed":3.1}}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	payload := c.Current(context.Background(), "Paris")

	require.False(t, payload.IsError())
	assert.Equal(t, "Paris", payload["name"])
}

func TestCurrentCityNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	payload := c.Current(context.Background(), "Atlantis42")

	require.True(t, payload.IsError())
	assert.Equal(t, "City Atlantis42 not found", payload.ErrorMessage())
}

func TestCurrentServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	payload := c.Current(context.Background(), "Paris")

	require.True(t, payload.IsError())
	assert.Equal(t, "HTTP Error: status 500", payload.ErrorMessage())
}

func TestCurrentTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClientWithBaseURL("test-key", srv.URL)
	payload := c.Current(context.Background(), "Paris")

	require.True(t, payload.IsError())
	assert.Contains(t, payload.ErrorMessage(), "Request Error:")
}

func TestCurrentMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	payload := c.Current(context.Background(), "Paris")

	require.True(t, payload.IsError())
	assert.Equal(t, "Failed to parse API response", payload.ErrorMessage())
}
