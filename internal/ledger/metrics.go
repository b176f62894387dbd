package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	expensesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitledger_expenses_created_total",
		Help: "Number of expenses created, by split type.",
	}, []string{"split_type"})

	settlementsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitledger_settlements_total",
		Help: "Number of settlements recorded.",
	})
)
