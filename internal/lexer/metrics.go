package lexer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "yalex",
		Subsystem: "lexer",
		Name:      "tokens_total",
		Help:      "Total number of tokens emitted, per action",
	}, []string{"action"})
	metricSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "yalex",
		Subsystem: "lexer",
		Name:      "skipped_total",
		Help:      "Total number of matches consumed without a token",
	})
	metricLexicalErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "yalex",
		Subsystem: "lexer",
		Name:      "lexical_errors_total",
		Help:      "Total number of symbols no rule matched",
	})
)
