package httpx

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockflow_orders_placed_total",
		Help: "Orders successfully placed.",
	})
	ordersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockflow_orders_cancelled_total",
		Help: "Orders cancelled with stock restored.",
	})
	ordersRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockflow_orders_rejected_total",
		Help: "Order placements rejected before any mutation.",
	}, []string{"reason"})
)
