// Package metrics defines and registers the custom Prometheus metrics of the
// fichedesk API. It is the single source of truth for metric names, labels,
// and help strings. HTTP request metrics come from echoprometheus.
//
// All metrics register with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fichedesk"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "invalid_payload" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Fiche metrics ─────────────────────────────────────────────────────────────

// FicheMutationsTotal counts fiche writes.
// Labels:
//   - operation: "status", "reassign" or "delete"
//   - role: role of the acting user
var FicheMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fiche_mutations_total",
		Help:      "Total number of applied fiche mutations, by operation and role.",
	},
	[]string{"operation", "role"},
)

// AccessDeniedTotal counts requests rejected by the access policy.
// Label:
//   - route: the echo route path (e.g. "/fiches/:id")
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected with 403.",
	},
	[]string{"route"},
)
