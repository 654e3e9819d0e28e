// Package metrics defines the Prometheus counters maintained by the highs
// package. Counters are always updated; exposing them is up to the caller
// through Register.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "highs"

var (
	// ValidationFailures counts failed structural checks, labelled by check name.
	ValidationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Number of failed model consistency checks.",
		},
		[]string{"check"},
	)

	// UserScaleChanges counts applied user scale exponent changes, labelled
	// by kind ("bound" or "cost").
	UserScaleChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "user_scale_changes_total",
			Help:      "Number of applied user scale exponent changes.",
		},
		[]string{"kind"},
	)

	// Solves counts engine runs, labelled by resulting model status.
	Solves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Number of engine solves by model status.",
		},
		[]string{"status"},
	)
)

// Register registers all collectors with reg. Collectors that are already
// registered are not an error.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{ValidationFailures, UserScaleChanges, Solves} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
