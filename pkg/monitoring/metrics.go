package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

// Domain-specific metric collectors.
//
// These describe the outcome of a migration pass in terms the generic client
// metrics cannot: how many instances were inspected, which reference kinds
// were stale, and whether persisting the rewrites succeeded.
var (
	instancesScanned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "templateinstance_migrator_instances_scanned_total",
			Help: "Total number of TemplateInstances inspected across all runs.",
		},
	)

	instancesMigrated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "templateinstance_migrator_instances_migrated_total",
			Help: "Total number of TemplateInstances with at least one rewritten reference.",
		},
	)

	referencesRewritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "templateinstance_migrator_references_rewritten_total",
			Help: "Total number of stale object references rewritten, by kind.",
		},
		[]string{"kind"},
	)

	patchFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "templateinstance_migrator_patch_failures_total",
			Help: "Total number of failed status subresource patches.",
		},
	)

	runDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "templateinstance_migrator_run_duration_seconds",
			Help:    "Duration of completed migration runs in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"dry_run", "changed"},
	)
)

func init() {
	metrics.Registry.MustRegister(
		instancesScanned,
		instancesMigrated,
		referencesRewritten,
		patchFailures,
		runDuration,
	)
}

// Collectors returns all registered metric collectors. This is useful for
// testing that metrics are properly registered.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		instancesScanned,
		instancesMigrated,
		referencesRewritten,
		patchFailures,
		runDuration,
	}
}
