package httpserver

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const _metricPrefix = "leverbox"

var (
	uuidRegex = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

	instrumentsMu sync.Mutex
	instruments   *httpInstruments
)

type httpInstruments struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
	active   metric.Int64UpDownCounter
}

// ResetMetricsForTesting drops the instruments so the next middleware picks
// up the current meter provider.
func ResetMetricsForTesting() {
	instrumentsMu.Lock()
	defer instrumentsMu.Unlock()
	instruments = nil
}

func IsMetricsInitialized() bool {
	instrumentsMu.Lock()
	defer instrumentsMu.Unlock()
	return instruments != nil
}

func loadInstruments() *httpInstruments {
	instrumentsMu.Lock()
	defer instrumentsMu.Unlock()

	if instruments != nil {
		return instruments
	}

	meter := otel.GetMeterProvider().Meter(_metricPrefix)

	duration, err := meter.Float64Histogram(
		fmt.Sprintf("%s.%s", _metricPrefix, "http.request.duration.seconds"),
		metric.WithDescription("Duration of HTTP requests"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5),
	)
	if err != nil {
		panic(err)
	}

	total, err := meter.Int64Counter(
		fmt.Sprintf("%s.%s", _metricPrefix, "http.requests.total"),
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		panic(err)
	}

	active, err := meter.Int64UpDownCounter(
		fmt.Sprintf("%s.%s", _metricPrefix, "http.requests.active"),
		metric.WithDescription("Number of HTTP requests currently being processed"),
	)
	if err != nil {
		panic(err)
	}

	instruments = &httpInstruments{duration: duration, total: total, active: active}
	return instruments
}

// MetricsMiddleware records duration, count and in-flight requests per
// method and normalized endpoint.
func MetricsMiddleware() func(http.Handler) http.Handler {
	m := loadInstruments()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			route := metric.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.endpoint", normalizeEndpoint(r.URL.Path)),
			)

			m.active.Add(r.Context(), 1, route)
			defer m.active.Add(r.Context(), -1, route)

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			status := metric.WithAttributes(attribute.Int("http.status_code", wrapped.statusCode))
			m.duration.Record(r.Context(), time.Since(start).Seconds(), route, status)
			m.total.Add(r.Context(), 1, route, status)
		})
	}
}

// responseWriter remembers the status code and keeps websocket upgrades
// working through the middleware chain.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not support hijacking")
}

func normalizeEndpoint(path string) string {
	if path == "" || path == "/" {
		return "root"
	}

	return uuidRegex.ReplaceAllString(path, "_id")
}
