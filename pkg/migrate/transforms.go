package migrate

import (
	templatev1 "github.com/openshift/api/template/v1"
	corev1 "k8s.io/api/core/v1"
)

// transforms maps an object reference kind to the canonical API version a
// current cluster serves it at. Kinds absent from this table are never
// touched. The table is the complete enumeration of kinds this tool knows
// how to migrate; it is fixed, not discovered from the cluster.
var transforms = map[string]string{
	"Build":            "build.openshift.io/v1.Build",
	"BuildConfig":      "build.openshift.io/v1.BuildConfig",
	"DeploymentConfig": "apps.openshift.io/v1.DeploymentConfig",
	"Route":            "route.openshift.io/v1.Route",
}

// Canonical returns the canonical API version for kind, and whether the kind
// is one this tool migrates.
func Canonical(kind string) (string, bool) {
	v, ok := transforms[kind]
	return v, ok
}

// needsRewrite reports the canonical API version a reference should carry,
// and whether the reference is stale. References to unmapped kinds and
// references already at the canonical version both report false.
func needsRewrite(ref corev1.ObjectReference) (string, bool) {
	canonical, ok := transforms[ref.Kind]
	if !ok || ref.APIVersion == canonical {
		return "", false
	}
	return canonical, true
}

// TransformInstance rewrites every stale object reference in the instance's
// status and reports whether anything changed. Each reference is visited
// exactly once, rewritten at most once, and the order and count of
// status.objects entries is preserved. An instance with no status objects is
// reported unmutated.
//
// The function is pure with respect to the transform table: no network or
// cluster state is consulted, so the same instance always produces the same
// result.
func TransformInstance(ti *templatev1.TemplateInstance) bool {
	mutated := false
	for i := range ti.Status.Objects {
		ref := &ti.Status.Objects[i].Ref
		canonical, stale := needsRewrite(*ref)
		if !stale {
			continue
		}
		ref.APIVersion = canonical
		mutated = true
	}
	return mutated
}
