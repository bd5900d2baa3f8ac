package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReservationsTotal counts successfully committed reservations
	ReservationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scheduling_reservations_total",
		Help: "Number of successfully reserved appointments.",
	})

	// SlotConflictsTotal counts reservations lost to a concurrent candidate
	SlotConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scheduling_slot_conflicts_total",
		Help: "Number of reservation attempts rejected because the slot was taken.",
	})

	// SweepTransitionsTotal counts lifecycle transitions made by the sweep
	SweepTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduling_sweep_transitions_total",
		Help: "Number of appointment transitions performed by the overdue sweep.",
	}, []string{"to_status"})

	// FactsEmittedTotal counts lifecycle facts handed to the dispatcher
	FactsEmittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduling_facts_emitted_total",
		Help: "Number of lifecycle facts emitted.",
	}, []string{"type"})
)
