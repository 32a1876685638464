package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_ValidHeader(t *testing.T) {
	var gotUserID int64
	var gotOK bool

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("X-User-ID", "42")
	rec := httptest.NewRecorder()

	Auth(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotOK)
	assert.Equal(t, int64(42), gotUserID)
}

func TestAuth_MissingHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called without X-User-ID")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	rec := httptest.NewRecorder()

	Auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidHeader(t *testing.T) {
	for _, value := range []string{"abc", "0", "-1"} {
		t.Run(value, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not be called with invalid X-User-ID")
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
			req.Header.Set("X-User-ID", value)
			rec := httptest.NewRecorder()

			Auth(next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequestID_Generated(t *testing.T) {
	var gotRequestID string
	var gotOK bool

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID, gotOK = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule", nil)
	rec := httptest.NewRecorder()

	RequestID(next).ServeHTTP(rec, req)

	require.True(t, gotOK)
	assert.NotEmpty(t, gotRequestID)
	// ID дублируется в заголовок ответа
	assert.Equal(t, gotRequestID, rec.Header().Get("X-Request-ID"))
}

func TestRequestID_PropagatedFromHeader(t *testing.T) {
	var gotRequestID string

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID, _ = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule", nil)
	req.Header.Set("X-Request-ID", "gateway-abc-123")
	rec := httptest.NewRecorder()

	RequestID(next).ServeHTTP(rec, req)

	assert.Equal(t, "gateway-abc-123", gotRequestID)
	assert.Equal(t, "gateway-abc-123", rec.Header().Get("X-Request-ID"))
}

func TestGetUserID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule", nil)

	_, ok := GetUserID(req.Context())
	assert.False(t, ok)
}
