package spatial

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	spatialObjectCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "spatial_object_count",
		Help: "The number of objects tracked by spatial trees.",
	})

	spatialObjectCountTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spatial_object_count_total",
		Help: "The total number of objects added to spatial trees.",
	})

	spatialReinsertCountTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spatial_reinsert_count_total",
		Help: "The total number of leaf reinsertions caused by updates.",
	})

	spatialQueryCountTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spatial_query_count_total",
		Help: "The total number of spatial queries issued.",
	})

	spatialNodeCapacity = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "spatial_node_capacity",
		Help: "The number of allocated spatial tree nodes.",
	})
)

func instrumentAddObject() {
	spatialObjectCount.Inc()
	spatialObjectCountTotal.Inc()
}

func instrumentRemoveObject() {
	spatialObjectCount.Dec()
}

func instrumentReinsertObject() {
	spatialReinsertCountTotal.Inc()
}

func instrumentQuery() {
	spatialQueryCountTotal.Inc()
}

func instrumentGrowNodeCapacity() {
	spatialNodeCapacity.Inc()
}
