// Package metrics holds the Prometheus collectors for discount evaluation,
// promo resolution and HTTP traffic.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"discount-kart/internal/discount"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Outcome labels.
const (
	ResultApplied     = "applied"
	ResultInvalid     = "invalid"
	ResultUnknownKind = "unknown_kind"
	ResultError       = "error"

	PromoResolved = "resolved"
	PromoRejected = "rejected"

	// KindOther labels every kind outside the known set.
	KindOther = "other"
)

// Metrics groups the application's collectors. A nil *Metrics records nothing.
type Metrics struct {
	Evaluations    *prometheus.CounterVec
	DiscountAmount *prometheus.CounterVec
	PromoLookups   *prometheus.CounterVec
	Requests       *prometheus.CounterVec
	RequestLatency *prometheus.HistogramVec

	// kinds bounds the kind label; request tags outside it collapse to KindOther.
	kinds map[discount.Kind]struct{}
}

// New creates the collectors and registers them with reg, or with the
// default registerer when reg is nil. It panics if registration fails.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discount_evaluations_total",
			Help:      "Count of discount evaluations by classification kind and outcome.",
		}, []string{"kind", "result"}),
		DiscountAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discount_amount_total",
			Help:      "Sum of discount amounts granted, by classification kind.",
		}, []string{"kind"}),
		PromoLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promo_lookups_total",
			Help:      "Count of promo code lookups by outcome.",
		}, []string{"result"}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the server.",
		}, []string{"method", "route", "status"}),
		RequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency distribution in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"method", "route"}),
		kinds: map[discount.Kind]struct{}{
			discount.KindPercent: {},
			discount.KindFlat:    {},
			discount.KindBOGO:    {},
			discount.KindNone:    {},
		},
	}

	reg.MustRegister(m.Evaluations, m.DiscountAmount, m.PromoLookups, m.Requests, m.RequestLatency)

	return m
}

// ObserveEvaluation records one engine call for a classification of kind.
func (m *Metrics) ObserveEvaluation(kind discount.Kind, amount decimal.Decimal, err error) {
	if m == nil {
		return
	}

	result := Result(err)
	label := m.kindLabel(kind, result)
	m.Evaluations.WithLabelValues(label, result).Inc()
	if result == ResultApplied && amount.IsPositive() {
		m.DiscountAmount.WithLabelValues(label).Add(amount.InexactFloat64())
	}
}

// AddKinds extends the kind label set with registered rule kinds. Call it
// before the metrics are shared between goroutines.
func (m *Metrics) AddKinds(kinds ...discount.Kind) {
	if m == nil {
		return
	}
	for _, k := range kinds {
		m.kinds[k] = struct{}{}
	}
}

func (m *Metrics) kindLabel(kind discount.Kind, result string) string {
	if result == ResultUnknownKind {
		return KindOther
	}
	if _, ok := m.kinds[kind]; !ok {
		return KindOther
	}
	return string(kind)
}

// ObservePromoLookup records whether a promo code resolved.
func (m *Metrics) ObservePromoLookup(err error) {
	if m == nil {
		return
	}

	if err != nil {
		m.PromoLookups.WithLabelValues(PromoRejected).Inc()
		return
	}
	m.PromoLookups.WithLabelValues(PromoResolved).Inc()
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestLatency.WithLabelValues(method, route).Observe(float64(elapsed) / float64(time.Millisecond))
}

// Result maps an engine error to its outcome label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultApplied
	case errors.Is(err, discount.ErrInvalidDiscountParameter):
		return ResultInvalid
	case errors.Is(err, discount.ErrUnknownDiscountKind):
		return ResultUnknownKind
	default:
		return ResultError
	}
}
