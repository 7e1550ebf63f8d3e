package render

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ayush/edusync-gateway/internal/api"
)

// backendErrors counts failed requests by error kind. It is served on
// /metrics through the default registry.
var backendErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "edusync",
	Subsystem: "gateway",
	Name:      "backend_errors_total",
	Help:      "Requests that failed, by backend error kind.",
}, []string{"kind"})

func errorKind(err error) string {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return "internal"
	}
	return apiErr.Kind.String()
}
