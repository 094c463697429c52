// Package monitoring provides Prometheus metrics and OTel tracing helpers
// for the TemplateInstance migrator. It exposes domain-specific counters and
// a run-duration histogram that describe what a migration pass actually did:
// instances scanned, references rewritten per kind, instances migrated, and
// patch failures.
//
// All metrics follow the naming convention templateinstance_migrator_<metric>_<unit>
// and are registered against controller-runtime's default Prometheus registry
// on import. The tool itself serves no scrape endpoint; the collectors exist
// for embedders and for tests.
//
// Usage in the migrator:
//
//	monitoring.RecordInstanceScanned()
//	monitoring.RecordReferenceRewritten("Route")
//	monitoring.RecordRun(dryRun, changed, elapsed)
package monitoring
