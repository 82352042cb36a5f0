package telemetry

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Isolations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "morph_transform_isolations_total",
		Help: "Parameter isolations performed (cache-key computations).",
	})

	IsolationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "morph_transform_isolation_failures_total",
		Help: "Parameter isolations that failed and were left retryable.",
	})

	Executions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "morph_transform_executions_total",
		Help: "Transform invocations by result.",
	}, []string{"result"})

	OutputValidationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "morph_transform_output_validation_failures_total",
		Help: "Invocations whose declared outputs failed validation.",
	})
)

func Expose(port int) {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		_ = http.ListenAndServe(fmt.Sprintf(":%d", port), nil)
	}()
}
