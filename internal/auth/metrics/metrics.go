// Package metrics holds the Prometheus collectors of the auth server. They are
// registered with the default registry on import and exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "appsimple"

// Login outcomes.
const (
	LoginSuccess            = "success"
	LoginInvalidCredentials = "invalid_credentials"
	LoginError              = "error"
)

// LoginAttemptsTotal counts login attempts.
// Labels:
//   - outcome: "success", "invalid_credentials" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"outcome"},
)

// TokenValidationsTotal counts bearer token checks at the HTTP boundary.
// Labels:
//   - result: "valid" or "invalid"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of bearer token validations, labelled by result.",
	},
	[]string{"result"},
)

// PermissionDeniedTotal counts requests rejected by the permission table.
// Labels:
//   - permission: the permission that was missing
var PermissionDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "permission_denied_total",
		Help:      "Total number of requests rejected for a missing permission.",
	},
	[]string{"permission"},
)

// ResetsTotal counts completed database resets.
var ResetsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "database_resets_total",
		Help:      "Total number of destructive database resets performed.",
	},
)

// UsersTotal is the number of accounts after the most recent reset or seed.
var UsersTotal = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "users",
		Help:      "Number of user accounts observed after the last bootstrap or reset.",
	},
)
