package monitoring

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"

	"gpapredict/ml"
)

const (
	metricPredictCount   = "predict.count"
	metricPredictError   = "predict.error"
	metricPredictLatency = "predict.latency"
)

// Error classes reported on predict.error and in the snapshot.
const (
	ErrorArtifactMissing = "artifact_missing"
	ErrorShapeMismatch   = "shape_mismatch"
	ErrorInvalidInput    = "invalid_input"
	ErrorInternal        = "internal"
)

// Metrics counts predictions per tier and failures per class, and forwards
// them to DogStatsD when an address is configured.
type Metrics struct {
	client statsd.ClientInterface

	mu          sync.RWMutex
	total       int64
	tiers       map[ml.Tier]int64
	errors      map[string]int64
	lastLatency time.Duration
	lastAt      time.Time
	startTime   time.Time
}

// Snapshot is the JSON view served by /api/metrics.
type Snapshot struct {
	Predictions   int64             `json:"predictions"`
	Tiers         map[ml.Tier]int64 `json:"tiers"`
	Errors        map[string]int64  `json:"errors"`
	LastLatencyMs float64           `json:"last_latency_ms"`
	LastAt        *time.Time        `json:"last_prediction_at,omitempty"`
	Uptime        string            `json:"uptime"`
}

// NewMetrics creates a collector. An empty addr disables forwarding.
func NewMetrics(addr, namespace string) (*Metrics, error) {
	var client statsd.ClientInterface = &statsd.NoOpClient{}
	if addr != "" {
		c, err := statsd.New(addr, statsd.WithNamespace(namespace))
		if err != nil {
			return nil, fmt.Errorf("statsd client: %w", err)
		}
		client = c
	}
	return newMetrics(client), nil
}

func newMetrics(client statsd.ClientInterface) *Metrics {
	return &Metrics{
		client:    client,
		tiers:     make(map[ml.Tier]int64),
		errors:    make(map[string]int64),
		startTime: time.Now(),
	}
}

func (m *Metrics) RecordPrediction(tier ml.Tier, latency time.Duration) {
	m.mu.Lock()
	m.total++
	m.tiers[tier]++
	m.lastLatency = latency
	m.lastAt = time.Now()
	m.mu.Unlock()

	tags := []string{"tier:" + string(tier)}
	_ = m.client.Incr(metricPredictCount, tags, 1)
	_ = m.client.Timing(metricPredictLatency, latency, tags, 1)
}

func (m *Metrics) RecordError(err error) {
	class := ErrorClass(err)

	m.mu.Lock()
	m.errors[class]++
	m.mu.Unlock()

	_ = m.client.Incr(metricPredictError, []string{"class:" + class}, 1)
}

func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Snapshot{
		Predictions:   m.total,
		Tiers:         make(map[ml.Tier]int64, len(m.tiers)),
		Errors:        make(map[string]int64, len(m.errors)),
		LastLatencyMs: float64(m.lastLatency) / float64(time.Millisecond),
		Uptime:        time.Since(m.startTime).Round(time.Second).String(),
	}
	for k, v := range m.tiers {
		s.Tiers[k] = v
	}
	for k, v := range m.errors {
		s.Errors[k] = v
	}
	if !m.lastAt.IsZero() {
		at := m.lastAt
		s.LastAt = &at
	}
	return s
}

func (m *Metrics) Close() error {
	return m.client.Close()
}

// ErrorClass maps a prediction error onto one of the Error* classes.
func ErrorClass(err error) string {
	switch {
	case errors.Is(err, ml.ErrArtifactMissing):
		return ErrorArtifactMissing
	case errors.Is(err, ml.ErrShapeMismatch):
		return ErrorShapeMismatch
	case errors.Is(err, ml.ErrInvalidCategoricalCode),
		errors.Is(err, ml.ErrMissingField),
		errors.Is(err, ml.ErrInvalidValue):
		return ErrorInvalidInput
	default:
		return ErrorInternal
	}
}
