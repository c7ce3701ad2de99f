package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ledger activity counters, exposed on /metrics.
var (
	PointsEarned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tally_points_earned_total",
		Help: "Points credited through task completions.",
	})

	PointsRedeemed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tally_points_redeemed_total",
		Help: "Points debited through reward redemptions.",
	})

	Redemptions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tally_redemptions_total",
		Help: "Reward redemption attempts by outcome.",
	}, []string{"outcome"})

	Resets = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tally_resets_total",
		Help: "Full point resets.",
	})
)

const (
	OutcomeRedeemed = "redeemed"
	OutcomeRejected = "rejected"
)
