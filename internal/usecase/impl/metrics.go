package impl

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels shared by the counters below.
const (
	outcomeSuccess  = "success"
	outcomeRejected = "rejected"
	outcomeConflict = "conflict"
	outcomeError    = "error"
)

var (
	registrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gaia",
		Name:      "registrations_total",
		Help:      "Registration attempts by outcome.",
	}, []string{"outcome"})

	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gaia",
		Name:      "logins_total",
		Help:      "Login attempts by outcome.",
	}, []string{"outcome"})

	charterSignaturesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gaia",
		Name:      "earth_charter_signatures_total",
		Help:      "Earth Charter signature requests that completed.",
	})

	locationUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gaia",
		Name:      "location_updates_total",
		Help:      "Stored location updates.",
	})
)
