package httptransport

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/supplementstack/internal/logging"
)

func TestNewServerAppliesConfig(t *testing.T) {
	srv := NewServer(ServerConfig{Address: ":9000", ReadTimeout: time.Second, WriteTimeout: 2 * time.Second}, http.NotFoundHandler())
	require.Equal(t, ":9000", srv.Addr)
	require.Equal(t, time.Second, srv.ReadTimeout)
	require.Equal(t, 2*time.Second, srv.WriteTimeout)
}

func TestWithRequestLoggingAssignsRequestID(t *testing.T) {
	var seen string
	h := WithRequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusTeapot, rr.Code)
	require.NotEmpty(t, seen)
	require.Equal(t, seen, rr.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, "abc-123", seen)
	require.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}

func TestRouteLabels(t *testing.T) {
	require.Equal(t, "/v1/catalog", route("/v1/catalog"))
	require.Equal(t, "other", route("/v1/catalog/unknown/123"))
}
