// Package jsonmapprom exports jsonmap registry activity as Prometheus metrics.
package jsonmapprom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mapper-generator/jsonmap"
)

// Observer implements jsonmap.Observer with Prometheus collectors.
type Observer struct {
	Lookups       *prometheus.CounterVec
	MappersBuilt  prometheus.Counter
	BuildDuration prometheus.Histogram
}

var _ jsonmap.Observer = (*Observer)(nil)

// New creates the collectors and registers them with reg.
func New(namespace string, reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jsonmap_registry_lookups_total",
			Help:      "Mapper registry lookups by result",
		}, []string{"result"}),
		MappersBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jsonmap_mappers_built_total",
			Help:      "Mappers constructed and published by the registry",
		}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "jsonmap_registry_build_seconds",
			Help:      "Time spent constructing a mapper graph",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}

	for _, c := range []prometheus.Collector{o.Lookups, o.MappersBuilt, o.BuildDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// ObserveLookup counts a registry lookup.
func (o *Observer) ObserveLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}

	o.Lookups.WithLabelValues(result).Inc()
}

// ObserveBuild records a completed mapper graph construction.
func (o *Observer) ObserveBuild(ids []string, elapsed time.Duration) {
	o.MappersBuilt.Add(float64(len(ids)))
	o.BuildDuration.Observe(elapsed.Seconds())
}
