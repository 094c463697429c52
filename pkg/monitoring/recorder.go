package monitoring

import (
	"strconv"
	"time"
)

// RecordInstanceScanned counts one inspected TemplateInstance.
func RecordInstanceScanned() {
	instancesScanned.Inc()
}

// RecordInstanceMigrated counts one TemplateInstance whose references were
// rewritten, whether or not the rewrite was persisted (dry-run counts too).
func RecordInstanceMigrated() {
	instancesMigrated.Inc()
}

// RecordReferenceRewritten counts one stale object reference of the given
// kind. The kind label is bounded by the transform table, so cardinality is
// fixed.
func RecordReferenceRewritten(kind string) {
	referencesRewritten.WithLabelValues(kind).Inc()
}

// RecordPatchFailure counts one failed status patch.
func RecordPatchFailure() {
	patchFailures.Inc()
}

// RecordRun records the duration of a completed run.
func RecordRun(dryRun, changed bool, duration time.Duration) {
	runDuration.WithLabelValues(strconv.FormatBool(dryRun), strconv.FormatBool(changed)).
		Observe(duration.Seconds())
}
