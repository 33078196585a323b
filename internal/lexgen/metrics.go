package lexgen

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricDFAStates = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "yalex",
		Subsystem: "lexgen",
		Name:      "dfa_states",
		Help:      "Number of states of each compiled rule DFA",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 15),
	})
	metricRuleFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "yalex",
		Subsystem: "lexgen",
		Name:      "rule_failures_total",
		Help:      "Total number of rules that failed to compile",
	})
	metricCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "yalex",
		Subsystem: "lexgen",
		Name:      "cache_hits_total",
		Help:      "Total number of rules served from the compiled rule cache",
	})
)
