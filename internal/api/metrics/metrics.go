// Package metrics defines all custom Prometheus metrics for the FedMatch
// marketplace API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fedmatch"

// OpportunitiesCreatedTotal counts newly posted listings.
// Label:
//   - type: "procurement" or "teaming"
var OpportunitiesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "opportunities_created_total",
		Help:      "Total number of opportunities posted, by listing type.",
	},
	[]string{"type"},
)

// BidsSubmittedTotal counts submitted bids across all listings.
var BidsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bids_submitted_total",
		Help:      "Total number of bids submitted.",
	},
)

// BidsAwardedTotal counts bids moved to accepted by a poster.
var BidsAwardedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bids_awarded_total",
		Help:      "Total number of bids awarded.",
	},
)

// SavedToggleTotal counts bookmark toggles.
// Label:
//   - result: "saved" or "unsaved"
var SavedToggleTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "saved_toggle_total",
		Help:      "Total number of bookmark toggles, by resulting state.",
	},
	[]string{"result"},
)

// MessagesSentTotal counts delivered direct messages.
var MessagesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of direct messages sent.",
	},
)

// EventRegistrationsTotal counts successful event registrations.
var EventRegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_registrations_total",
		Help:      "Total number of event registrations.",
	},
)

// InboxConnectionsActive tracks currently open inbox websocket connections.
var InboxConnectionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "inbox_connections_active",
		Help:      "Number of currently open inbox websocket connections.",
	},
)

// InboxNoticesQueueDepth tracks notices waiting in each publisher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", ...)
var InboxNoticesQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "inbox_notices_queue_depth",
		Help:      "Current number of notices pending in each publisher worker channel.",
	},
	[]string{"worker_id"},
)
