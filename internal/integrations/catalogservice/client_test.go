package catalogservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, nopLogger{})
}

func TestGetService_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/services/1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"name":"Strategy consultation","category":"consulting","durationMinutes":60,"priceMinorUnits":15000,"active":true}`))
	})

	service, err := client.GetService(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), service.ID)
	assert.Equal(t, "Strategy consultation", service.Name)
	assert.Equal(t, 60, service.DurationMinutes)
	require.NotNil(t, service.PriceMinorUnits)
	assert.Equal(t, int64(15000), *service.PriceMinorUnits)
	assert.True(t, service.Active)
}

func TestGetService_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetService(context.Background(), 99)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGetService_UnexpectedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GetService(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestListServices_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/services", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Strategy consultation","active":true},{"id":2,"name":"Intro call","active":true}]`))
	})

	services, err := client.ListServices(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "Intro call", services[1].Name)
}

func TestListServices_UnexpectedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.ListServices(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
