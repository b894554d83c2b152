package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EditDenials counts post mutations refused by the ownership check,
	// labelled by the reason the actor was turned away.
	EditDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_edit_denials_total",
		Help: "Post mutations refused by the ownership check.",
	}, []string{"reason"})

	// LoginFailures counts failed login attempts by failure kind.
	LoginFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_login_failures_total",
		Help: "Failed login attempts.",
	}, []string{"reason"})
)

var (
	promOnce sync.Once
	promInst *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for HTTP request metrics.
// The underlying collectors register on the default registry, so the
// instance is process-wide.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInst = fiberprometheus.New(serviceName)
	})
	return promInst
}
