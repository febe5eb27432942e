// Package metrics собирает метрики Prometheus: жизненный цикл команд
// клиента и HTTP-запросы dev API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/teamsync/internal/store"
)

const namespace = "teamsync"

// Commands реализует store.Recorder.
type Commands struct {
	inFlight *prometheus.GaugeVec
	settled  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewCommands регистрирует метрики команд в reg.
func NewCommands(reg prometheus.Registerer) *Commands {
	c := &Commands{
		inFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "commands",
			Name:      "in_flight",
			Help:      "Number of dispatched commands that have not settled yet.",
		}, []string{"command"}),
		settled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "commands",
			Name:      "settled_total",
			Help:      "Settled commands by outcome.",
		}, []string{"command", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "commands",
			Name:      "duration_seconds",
			Help:      "Time from dispatch to settlement.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
	}
	reg.MustRegister(c.inFlight, c.settled, c.duration)
	return c
}

// CommandDispatched увеличивает число выполняющихся команд.
func (c *Commands) CommandDispatched(command string) {
	c.inFlight.WithLabelValues(command).Inc()
}

// CommandSettled учитывает итог и длительность команды.
func (c *Commands) CommandSettled(command string, status store.Status, elapsed time.Duration) {
	c.inFlight.WithLabelValues(command).Dec()
	c.settled.WithLabelValues(command, string(status)).Inc()
	c.duration.WithLabelValues(command).Observe(elapsed.Seconds())
}

// HTTP считает запросы dev API по шаблону маршрута chi.
type HTTP struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTP регистрирует метрики HTTP-запросов в reg.
func NewHTTP(reg prometheus.Registerer) *HTTP {
	h := &HTTP{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "devapi",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "devapi",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(h.requests, h.duration)
	return h
}

// Middleware оборачивает обработчик подсчётом запросов.
func (h *HTTP) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		h.requests.WithLabelValues(r.Method, route, strconv.Itoa(code)).Inc()
		h.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
