package metrics

import "github.com/prometheus/client_golang/prometheus"

type Observer interface {
	Observe(val float64, labels ...string)

	// for now we will tightly couple to the prometheus collector type
	// the go otel metrics sdk also has a prometheus adapter that implements this interface.
	prometheus.Collector
}

type Metrics struct {
	RendersCount     Observer
	BlocksCount      Observer
	WorkloadsCount   Observer
	RenderLatency    Observer
	SubstituteCount  Observer
	TagLookupLatency Observer
}

func (m Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.RendersCount,
		m.BlocksCount,
		m.WorkloadsCount,
		m.RenderLatency,
		m.SubstituteCount,
		m.TagLookupLatency,
	}
}
