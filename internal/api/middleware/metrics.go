package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// HTTPMetrics получатель HTTP метрик. Реализуется *metrics.Metrics.
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
	IncInFlight()
	DecInFlight()
}

const unmatchedRoute = "unmatched"

// MetricsMiddleware собирает количество, длительность и число одновременных HTTP запросов.
// В метку route попадает шаблон маршрута, а не сырой путь.
func MetricsMiddleware(m HTTPMetrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			m.IncInFlight()
			defer m.DecInFlight()

			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			m.ObserveHTTPRequest(r.Method, routeTemplate(r), rec.status, time.Since(start))
		})
	}
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return unmatchedRoute
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return unmatchedRoute
	}
	return tpl
}
