package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	globalCollector *Collector
	collectorMutex  sync.Mutex
)

// Collector holds the Prometheus metrics for the service.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	Analyses         *prometheus.CounterVec
	ChainsAggregated prometheus.Counter
	GraphNodes       prometheus.Histogram
}

// NewCollector returns the process-wide collector, creating it on first use
// so repeated construction in tests does not double-register.
func NewCollector(namespace string) *Collector {
	collectorMutex.Lock()
	defer collectorMutex.Unlock()

	if globalCollector != nil {
		return globalCollector
	}

	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	analyses := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flow_analyses_total",
			Help:      "Total number of flow analyses by outcome",
		},
		[]string{"outcome"},
	)

	chains := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flow_chains_aggregated_total",
			Help:      "Total number of chains fed to the aggregator",
		},
	)

	nodes := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "flow_graph_nodes",
			Help:      "Number of nodes per aggregated graph",
			Buckets:   prometheus.ExponentialBuckets(2, 2, 8),
		},
	)

	registry.MustRegister(httpRequests, httpDuration, analyses, chains, nodes)

	globalCollector = &Collector{
		registry:         registry,
		HTTPRequests:     httpRequests,
		HTTPDuration:     httpDuration,
		Analyses:         analyses,
		ChainsAggregated: chains,
		GraphNodes:       nodes,
	}
	return globalCollector
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) RecordAnalysis(outcome string, chains, nodes int) {
	c.Analyses.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		c.ChainsAggregated.Add(float64(chains))
		c.GraphNodes.Observe(float64(nodes))
	}
}

const (
	OutcomeOK           = "ok"
	OutcomeDecodeError  = "decode_error"
	OutcomeShapeError   = "shape_error"
	OutcomeProcessError = "processing_error"
)
