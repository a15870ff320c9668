package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ApplicationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leave_applications_created_total",
		Help: "Leave applications created, by leave type.",
	}, []string{"type"})

	BalanceDeductions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leave_balance_deductions_total",
		Help: "Successful annual leave deductions.",
	})

	BalanceRestorations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leave_balance_restorations_total",
		Help: "Annual leave restorations after rejection, by result.",
	}, []string{"result"})

	InsufficientBalance = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leave_insufficient_balance_total",
		Help: "Requests refused because the balance could not cover them.",
	})

	BalanceResets = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leave_balance_resets_total",
		Help: "Completed bulk balance resets.",
	})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
