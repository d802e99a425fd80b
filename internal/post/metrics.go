package post

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var fanoutFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "post_service",
	Name:      "fanout_failures_total",
	Help:      "Best-effort fan-out steps that failed after the post committed.",
}, []string{"step"})
