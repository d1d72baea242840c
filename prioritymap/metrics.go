package prioritymap

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mergeStrategy = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "prioritymap_merge_strategy_total",
		Help: "The total number of merges, by operation and chosen strategy",
	}, []string{"op", "strategy"})

	rebuilds = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "prioritymap_rebuilds_total",
		Help: "The total number of times an order index was sorted from scratch",
	})

	pruned = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "prioritymap_pruned_entries_total",
		Help: "The total number of entries removed by Prune",
	})
)
