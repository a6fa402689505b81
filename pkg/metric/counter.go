package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// ViewDispatchTotal counts view dispatches by view type and outcome.
	ViewDispatchTotal = "navtree_view_dispatch_total"

	// LookupTotal counts navigation lookups by kind and outcome.
	LookupTotal = "navtree_lookup_total"
)

// IncrementalCounter is a labeled counter.
type IncrementalCounter interface {
	Increment(val ...string)
}

type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

// Increment adds one to the series identified by the label values.
func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

// NewCounterWithRegistry creates a counter vector and registers it with reg.
// It panics when a collector with the same name is already registered.
func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) IncrementalCounter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// Nop is a counter that records nothing.
type Nop struct{}

func (Nop) Increment(...string) {}

// GetHandlerForRegistry returns an HTTP handler serving the metrics of reg.
func GetHandlerForRegistry(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
