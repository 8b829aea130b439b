package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Victor-armando18/promo-cart/internal/interfaces"
)

const namespace = "promocart"

// CartMetrics records checkout outcomes. It satisfies usecase.CheckoutRecorder.
type CartMetrics struct {
	Checkouts         prometheus.Counter
	PromotionsApplied *prometheus.CounterVec
	PromotionsSkipped *prometheus.CounterVec
	CheckoutTotal     prometheus.Histogram
	CheckoutDiscount  prometheus.Histogram
}

func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	m := &CartMetrics{
		Checkouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "checkouts_total",
			Help:      "Total number of checkout passes.",
		}),
		PromotionsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "promotions_applied_total",
			Help:      "Promotions applied during checkout.",
		}, []string{"promotion", "mode"}),
		PromotionsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "promotions_skipped_total",
			Help:      "Promotions triggered but not applied during checkout.",
		}, []string{"promotion", "reason"}),
		CheckoutTotal: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "checkout_total_amount",
			Help:      "Cart total after promotions.",
			Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 25000},
		}),
		CheckoutDiscount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "checkout_discount_amount",
			Help:      "Discount granted per checkout.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
	}
	reg.MustRegister(m.Checkouts, m.PromotionsApplied, m.PromotionsSkipped, m.CheckoutTotal, m.CheckoutDiscount)
	return m
}

func (m *CartMetrics) ObserveCheckout(r *interfaces.Receipt) {
	if r == nil {
		return
	}
	m.Checkouts.Inc()
	for _, a := range r.Applied {
		m.PromotionsApplied.WithLabelValues(a.PromotionID, string(a.Mode)).Inc()
	}
	for _, s := range r.Skipped {
		m.PromotionsSkipped.WithLabelValues(s.PromotionID, s.Reason).Inc()
	}
	total, _ := r.Total.Float64()
	m.CheckoutTotal.Observe(total)
	discount, _ := r.Discount.Float64()
	m.CheckoutDiscount.Observe(discount)
}

type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

func NewServerMetrics(reg prometheus.Registerer, service string) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: service,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"handler"})

	reg.MustRegister(requests, latency)
	return &ServerMetrics{Requests: requests, LatencyMS: latency}
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
