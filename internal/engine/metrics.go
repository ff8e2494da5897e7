package engine

import "github.com/prometheus/client_golang/prometheus"

var (
	// runsTotal counts generation runs by how they were triggered and
	// whether they were coalesced away.
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compliance_generation_runs_total",
			Help: "Total number of alert generation runs.",
		},
		[]string{"result"}, // completed | coalesced
	)

	// runDuration records how long a full generation run takes.
	runDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "compliance_generation_run_seconds",
			Help:    "Duration of alert generation runs in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	// alertsCreated / alertsUpdated count pipeline outcomes per alert type.
	alertsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compliance_alerts_created_total",
			Help: "Alerts created by the generation pipeline.",
		},
		[]string{"alert_type"},
	)
	alertsUpdated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compliance_alerts_updated_total",
			Help: "Alerts escalated in place by the generation pipeline.",
		},
		[]string{"alert_type"},
	)

	// scannerErrors counts isolated per-type scan or store failures.
	scannerErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compliance_scanner_errors_total",
			Help: "Scanner and store errors, isolated per alert type.",
		},
		[]string{"alert_type"},
	)

	// cleanupDeleted counts alerts purged by retention cleanup.
	cleanupDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "compliance_alerts_purged_total",
			Help: "Terminal alerts removed by retention cleanup.",
		},
	)
)

func init() {
	prometheus.MustRegister(runsTotal, runDuration, alertsCreated, alertsUpdated, scannerErrors, cleanupDeleted)
}
