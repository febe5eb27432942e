package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/teamsync/internal/store"
)

func TestCommands(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCommands(reg)

	c.CommandDispatched("projects/list")
	c.CommandDispatched("projects/list")
	assert.Equal(t, float64(2), testutil.ToFloat64(c.inFlight.WithLabelValues("projects/list")))

	c.CommandSettled("projects/list", store.StatusFulfilled, 10*time.Millisecond)
	c.CommandSettled("projects/list", store.StatusRejected, 20*time.Millisecond)

	assert.Equal(t, float64(0), testutil.ToFloat64(c.inFlight.WithLabelValues("projects/list")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.settled.WithLabelValues("projects/list", "fulfilled")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.settled.WithLabelValues("projects/list", "rejected")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.duration))
}

func TestCommands_ImplementsRecorder(t *testing.T) {
	var _ store.Recorder = NewCommands(prometheus.NewRegistry())
}

func TestHTTPMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewHTTP(reg)

	r := chi.NewRouter()
	r.Use(h.Middleware)
	r.Get("/projects/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/projects/1", "/projects/2", "/health"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(h.requests.WithLabelValues("GET", "/projects/{id}", "404")))
	assert.Equal(t, float64(1), testutil.ToFloat64(h.requests.WithLabelValues("GET", "/health", "200")))
}
