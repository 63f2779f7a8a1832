// Package metrics holds the Prometheus collectors shared by the pipeline,
// the interaction handler and the LLM client.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "feedquiz"

var (
	// PipelineRuns counts pipeline invocations by result (ok, failed).
	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total number of pipeline runs",
		},
		[]string{"result"},
	)

	ArticlesProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "articles_total",
			Help:      "Articles that passed the recency filter and were summarized",
		},
	)

	QuestionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "questions_created_total",
			Help:      "Quiz questions persisted",
		},
	)

	// QuestionsSkipped counts relevant articles whose generated question was
	// unusable.
	QuestionsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "questions_skipped_total",
			Help:      "Relevant articles for which no usable question was generated",
		},
	)

	Publishes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "slack",
			Name:      "publishes_total",
			Help:      "Webhook publishes by message kind and status",
		},
		[]string{"kind", "status"},
	)

	// Interactions counts handled button clicks by outcome
	// (correct, incorrect, not_found, malformed, ignored, error).
	Interactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "interaction",
			Name:      "handled_total",
			Help:      "Interaction callbacks by outcome",
		},
		[]string{"outcome"},
	)

	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "requests_total",
			Help:      "LLM requests by purpose and status",
		},
		[]string{"purpose", "status"},
	)

	LLMDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "request_duration_seconds",
			Help:      "LLM request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
		},
		[]string{"purpose"},
	)

	LLMTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "tokens_total",
			Help:      "Tokens consumed by direction (input, output)",
		},
		[]string{"direction"},
	)
)

func status(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

func RecordPublish(kind string, ok bool) {
	Publishes.WithLabelValues(kind, status(ok)).Inc()
}

func RecordRun(ok bool) {
	if ok {
		PipelineRuns.WithLabelValues("ok").Inc()
		return
	}
	PipelineRuns.WithLabelValues("failed").Inc()
}

func RecordInteraction(outcome string) {
	Interactions.WithLabelValues(outcome).Inc()
}

// RecordLLM records one completed LLM call.
func RecordLLM(purpose string, elapsed time.Duration, inputTokens, outputTokens int, ok bool) {
	LLMRequests.WithLabelValues(purpose, status(ok)).Inc()
	LLMDuration.WithLabelValues(purpose).Observe(elapsed.Seconds())
	if inputTokens > 0 {
		LLMTokens.WithLabelValues("input").Add(float64(inputTokens))
	}
	if outputTokens > 0 {
		LLMTokens.WithLabelValues("output").Add(float64(outputTokens))
	}
}
