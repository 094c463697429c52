// Package migrate rewrites stale group-version-kind references recorded in
// TemplateInstance status objects. It is the programmatic equivalent of
// `oc adm migrate template-instances`.
//
// A TemplateInstance records one object reference per object instantiated
// from its template. Older clusters recorded those references against legacy
// API versions; this package walks every reference, consults a fixed
// kind-to-canonical-version table, and patches the status subresource of any
// instance whose references were rewritten.
//
// Usage:
//
//	m := migrate.New(cl)
//	result, err := m.Run(ctx, migrate.Options{Namespace: "test", DryRun: false})
//
// The run is idempotent: once migrated, an instance has no stale references
// and a second run reports it unchanged. A failed run can therefore always be
// recovered by re-invocation.
package migrate
