package migrate_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	corev1 "k8s.io/api/core/v1"

	"github.com/alinabuzachis/templateinstance-migrator/pkg/migrate"
	"github.com/alinabuzachis/templateinstance-migrator/pkg/testutil"
)

func TestTransformInstance(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		refs        []corev1.ObjectReference
		wantMutated bool
		wantRefs    []corev1.ObjectReference
	}{
		"rewrites stale route reference": {
			refs: []corev1.ObjectReference{
				testutil.Ref("Route", "v1", "route", "test"),
			},
			wantMutated: true,
			wantRefs: []corev1.ObjectReference{
				testutil.Ref("Route", "route.openshift.io/v1.Route", "route", "test"),
			},
		},
		"leaves unmapped kind untouched": {
			refs: []corev1.ObjectReference{
				testutil.Ref("Secret", "v1", "secret", "test"),
			},
			wantMutated: false,
			wantRefs: []corev1.ObjectReference{
				testutil.Ref("Secret", "v1", "secret", "test"),
			},
		},
		"rewrites only stale in-table references in a mixed list": {
			refs: []corev1.ObjectReference{
				testutil.Ref("Secret", "v1", "secret", "test"),
				testutil.Ref("Deployment", "apps/v1", "deployment", "test"),
				testutil.Ref("Route", "v1", "route", "test"),
				testutil.Ref("BuildConfig", "v1", "bc", "test"),
			},
			wantMutated: true,
			wantRefs: []corev1.ObjectReference{
				testutil.Ref("Secret", "v1", "secret", "test"),
				testutil.Ref("Deployment", "apps/v1", "deployment", "test"),
				testutil.Ref("Route", "route.openshift.io/v1.Route", "route", "test"),
				testutil.Ref("BuildConfig", "build.openshift.io/v1.BuildConfig", "bc", "test"),
			},
		},
		"already canonical reference is unchanged": {
			refs: []corev1.ObjectReference{
				testutil.Ref("DeploymentConfig", "apps.openshift.io/v1.DeploymentConfig", "dc", "test"),
			},
			wantMutated: false,
			wantRefs: []corev1.ObjectReference{
				testutil.Ref("DeploymentConfig", "apps.openshift.io/v1.DeploymentConfig", "dc", "test"),
			},
		},
		"no status objects": {
			refs:        nil,
			wantMutated: false,
			wantRefs:    nil,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ti := testutil.NewTemplateInstance("demo", "test", tc.refs...)
			mutated := migrate.TransformInstance(ti)

			if mutated != tc.wantMutated {
				t.Errorf("TransformInstance() mutated = %v, want %v", mutated, tc.wantMutated)
			}

			var gotRefs []corev1.ObjectReference
			for _, obj := range ti.Status.Objects {
				gotRefs = append(gotRefs, obj.Ref)
			}
			if diff := cmp.Diff(tc.wantRefs, gotRefs); diff != "" {
				t.Errorf("status references mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTransformInstanceIdempotent(t *testing.T) {
	t.Parallel()

	ti := testutil.NewTemplateInstance("demo", "test",
		testutil.Ref("Build", "v1", "build", "test"),
		testutil.Ref("Route", "v1", "route", "test"),
	)

	if !migrate.TransformInstance(ti) {
		t.Fatal("first pass should mutate")
	}
	once := ti.DeepCopy()

	if migrate.TransformInstance(ti) {
		t.Error("second pass should find nothing stale")
	}
	if diff := cmp.Diff(once, ti); diff != "" {
		t.Errorf("second pass changed the instance (-want +got):\n%s", diff)
	}
}

func TestTransformInstancePreservesOrderAndCount(t *testing.T) {
	t.Parallel()

	refs := []corev1.ObjectReference{
		testutil.Ref("Secret", "v1", "a", "test"),
		testutil.Ref("Route", "v1", "b", "test"),
		testutil.Ref("Secret", "v1", "c", "test"),
		testutil.Ref("Build", "v1", "d", "test"),
	}
	ti := testutil.NewTemplateInstance("demo", "test", refs...)

	migrate.TransformInstance(ti)

	if len(ti.Status.Objects) != len(refs) {
		t.Fatalf("object count changed: got %d, want %d", len(ti.Status.Objects), len(refs))
	}
	for i, obj := range ti.Status.Objects {
		if obj.Ref.Name != refs[i].Name {
			t.Errorf("objects[%d] name = %q, want %q (order not preserved)", i, obj.Ref.Name, refs[i].Name)
		}
	}
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		kind   string
		want   string
		wantOK bool
	}{
		"Build":            {kind: "Build", want: "build.openshift.io/v1.Build", wantOK: true},
		"BuildConfig":      {kind: "BuildConfig", want: "build.openshift.io/v1.BuildConfig", wantOK: true},
		"DeploymentConfig": {kind: "DeploymentConfig", want: "apps.openshift.io/v1.DeploymentConfig", wantOK: true},
		"Route":            {kind: "Route", want: "route.openshift.io/v1.Route", wantOK: true},
		"Secret":           {kind: "Secret", want: "", wantOK: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, ok := migrate.Canonical(tc.kind)
			if got != tc.want || ok != tc.wantOK {
				t.Errorf("Canonical(%q) = (%q, %v), want (%q, %v)", tc.kind, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}
