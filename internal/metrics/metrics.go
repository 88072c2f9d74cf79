package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes for RequestsTotal.
const (
	ResultOK         = "ok"
	ResultNoOutfit   = "no_outfit"
	ResultInvalid    = "invalid"
	ResultStoreError = "store_error"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfit_requests_total",
			Help: "Total outfit recommendation requests by result",
		},
		[]string{"result"},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "outfit_recommend_duration_seconds",
			Help:    "Time spent producing one recommendation, store read included",
			Buckets: prometheus.DefBuckets,
		},
	)

	CandidatesAssembled = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "outfit_candidates_assembled",
			Help:    "Number of candidate outfits assembled per request",
			Buckets: []float64{0, 1, 5, 25, 100, 250, 1000, 5000},
		},
	)

	ClosetItemsFetched = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "closet_items_fetched",
			Help:    "Number of closet items read from the store per request",
			Buckets: []float64{0, 10, 50, 100, 250, 500, 1000},
		},
	)

	EmbeddingDecodeErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "embedding_decode_errors_total",
			Help: "Stored embeddings that could not be decoded and were treated as empty",
		},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_errors_total",
			Help: "Closet store read failures by backend",
		},
		[]string{"backend"},
	)
)
