package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	var got int64
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetUserID(r.Context())
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerUserID, "42")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), got)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuth(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	check := func(token, header string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if header != "" {
			req.Header.Set(headerAdminToken, header)
		}
		AdminAuth(token)(ok).ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, check("s3cret", "s3cret"))
	assert.Equal(t, http.StatusForbidden, check("s3cret", "wrong"))
	assert.Equal(t, http.StatusForbidden, check("s3cret", ""))
	assert.Equal(t, http.StatusForbidden, check("", ""))
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", seen)
}

type observation struct {
	method, route string
	status        int
}

type recordingObserver struct {
	got []observation
}

func (o *recordingObserver) ObserveHTTP(method, route string, status int, _ time.Duration) {
	o.got = append(o.got, observation{method, route, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	obs := &recordingObserver{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(obs))
	r.HandleFunc("/appointments/{appointmentId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/appointments/17", nil))

	require.Len(t, obs.got, 1)
	assert.Equal(t, observation{http.MethodGet, "/appointments/{appointmentId}", http.StatusNotFound}, obs.got[0])
}
