// Package metrics defines all custom Prometheus metrics for the notes API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Metrics registered here use the default Prometheus registry via promauto and
// are exposed by the /metrics endpoint wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "technotes"

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersCreatedTotal counts successfully created user accounts.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user accounts created.",
	},
)

// UsersDeletedTotal counts permanently removed user accounts.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of user accounts deleted.",
	},
)

// ── Note metrics ──────────────────────────────────────────────────────────────

// NotesCreatedTotal counts successfully created notes.
var NotesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notes_created_total",
		Help:      "Total number of notes created.",
	},
)

// NotesDeletedTotal counts permanently removed notes.
var NotesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notes_deleted_total",
		Help:      "Total number of notes deleted.",
	},
)

// NoteListCacheTotal counts note-list cache lookups.
// Label:
//   - result: "hit" (served from cache) or "miss" (rebuilt from the database)
var NoteListCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "note_list_cache_total",
		Help:      "Total number of note list cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
