// Package metrics exports pipeline observations as Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
)

const namespace = "resumechat"

// Ensure Recorder implements the interface.
var _ driven.MetricsRecorder = (*Recorder)(nil)

// Recorder holds the collectors registered on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	chunksIngested      prometheus.Counter
	embeddingCalls      *prometheus.CounterVec
	droppedIdentifiers  *prometheus.CounterVec
	fingerprintMismatch prometheus.Counter
	chatRequests        *prometheus.CounterVec
	chatDuration        prometheus.Histogram
}

// New creates a Recorder with its own registry, including Go runtime and
// process collectors.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return newRecorder(reg)
}

func newRecorder(reg *prometheus.Registry) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		chunksIngested: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingested_chunks_total",
			Help:      "Chunks embedded and upserted by ingestion runs.",
		}),
		embeddingCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "embedding_requests_total",
			Help:      "Embedding requests by outcome.",
		}, []string{"outcome"}),
		droppedIdentifiers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolver_dropped_identifiers_total",
			Help:      "Retrieved identifiers that did not resolve to a chunk of the current document.",
		}, []string{"reason"}),
		fingerprintMismatch: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "index_fingerprint_mismatch_total",
			Help:      "Queries against an index whose manifest fingerprint differs from the current document.",
		}),
		chatRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_requests_total",
			Help:      "Chat requests by HTTP status code.",
		}, []string{"status"}),
		chatDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chat_request_duration_seconds",
			Help:      "Time spent answering chat requests.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}
}

// Registry returns the registry the collectors are registered on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ChunksIngested implements driven.MetricsRecorder.
func (r *Recorder) ChunksIngested(n int) {
	r.chunksIngested.Add(float64(n))
}

// EmbeddingCall implements driven.MetricsRecorder.
func (r *Recorder) EmbeddingCall(outcome string) {
	r.embeddingCalls.WithLabelValues(outcome).Inc()
}

// IdentifiersDropped implements driven.MetricsRecorder.
func (r *Recorder) IdentifiersDropped(reason string, n int) {
	if n <= 0 {
		return
	}
	r.droppedIdentifiers.WithLabelValues(reason).Add(float64(n))
}

// FingerprintMismatch implements driven.MetricsRecorder.
func (r *Recorder) FingerprintMismatch() {
	r.fingerprintMismatch.Inc()
}

// ChatRequest implements driven.MetricsRecorder.
func (r *Recorder) ChatRequest(status int, d time.Duration) {
	r.chatRequests.WithLabelValues(strconv.Itoa(status)).Inc()
	r.chatDuration.Observe(d.Seconds())
}
